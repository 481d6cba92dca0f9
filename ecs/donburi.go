package ecs

import (
	"github.com/phanxgames/thicket"

	"github.com/yohamta/donburi"
	"github.com/yohamta/donburi/features/events"
)

// ContactEventType is the Donburi event type for rigidbody contact
// transitions.
var ContactEventType = events.NewEventType[thicket.ContactEvent]()

type donburiSink struct {
	world donburi.World
}

// NewDonburiSink creates an EventSink backed by a Donburi world. Events are
// queued on ContactEventType and delivered by ProcessEvents.
func NewDonburiSink(world donburi.World) thicket.EventSink {
	return &donburiSink{world: world}
}

func (s *donburiSink) EmitEvent(event thicket.ContactEvent) {
	ContactEventType.Publish(s.world, event)
}
