package ecs

import (
	"testing"

	"github.com/phanxgames/thicket"

	"github.com/yohamta/donburi"
)

func TestNewDonburiSink(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)
	if sink == nil {
		t.Fatal("NewDonburiSink returned nil")
	}
}

func TestDonburiSink_EmitEvent(t *testing.T) {
	world := donburi.NewWorld()
	sink := NewDonburiSink(world)

	var received []thicket.ContactEvent
	ContactEventType.Subscribe(world, func(w donburi.World, e thicket.ContactEvent) {
		received = append(received, e)
	})

	sink.EmitEvent(thicket.ContactEvent{Type: thicket.ContactEnter, Object: 7, Other: 9, Name: "hero"})
	sink.EmitEvent(thicket.ContactEvent{Type: thicket.ContactExit, Object: 7})

	// Events are queued; process them.
	ContactEventType.ProcessEvents(world)

	if len(received) != 2 {
		t.Fatalf("expected 2 events, got %d", len(received))
	}
	if e := received[0]; e.Type != thicket.ContactEnter || e.Object != 7 || e.Other != 9 || e.Name != "hero" {
		t.Errorf("event 0: %+v", e)
	}
	if e := received[1]; e.Type != thicket.ContactExit || e.Object != 7 {
		t.Errorf("event 1: %+v", e)
	}
}

func TestDonburiSink_SceneContact(t *testing.T) {
	now := 0.0
	clock := thicket.NewClockWithSource(func() float64 { return now })
	scene := thicket.NewScene(thicket.SceneConfig{Clock: clock})

	world := donburi.NewWorld()
	scene.SetEventSink(NewDonburiSink(world))

	var received []thicket.ContactEvent
	ContactEventType.Subscribe(world, func(w donburi.World, e thicket.ContactEvent) {
		received = append(received, e)
	})

	ground := scene.NewGameObject("ground", nil)
	thicket.MustAdd(ground, thicket.NewBoxCollider(50, 5))

	body := scene.NewGameObject("body", nil)
	body.Transform().SetPosition(thicket.Vec3(0, 8, 0))
	thicket.MustAdd(body, thicket.NewBoxCollider(5, 5))
	thicket.MustAdd(body, thicket.NewRigidbody())

	scene.Start()
	now = 0.016
	clock.Update()
	scene.Update()
	ContactEventType.ProcessEvents(world)

	if len(received) != 1 {
		t.Fatalf("expected 1 event, got %d", len(received))
	}
	e := received[0]
	if e.Type != thicket.ContactEnter || e.Object != body.ID() || e.Other != ground.ID() {
		t.Errorf("event: %+v", e)
	}
}
