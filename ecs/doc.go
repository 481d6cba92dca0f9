// Package ecs forwards thicket contact events into an ECS world.
//
// [NewDonburiSink] publishes every [thicket.ContactEvent] to
// [ContactEventType] in a [Donburi] world. Subscribe to it in your systems
// and drain it with ProcessEvents once per frame:
//
//	sink := ecs.NewDonburiSink(world)
//	scene.SetEventSink(sink)
//
// [Donburi]: https://github.com/yohamta/donburi
package ecs
