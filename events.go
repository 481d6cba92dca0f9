package thicket

// EventSink is the interface for optional event forwarding, for example into
// an ECS world. When set on a Scene, contact transitions are emitted to it.
type EventSink interface {
	EmitEvent(event ContactEvent)
}

// ContactType identifies a contact transition.
type ContactType uint8

const (
	ContactEnter ContactType = iota // a rigidbody's collider started touching
	ContactExit                     // a rigidbody's collider stopped touching
)

func (t ContactType) String() string {
	switch t {
	case ContactEnter:
		return "enter"
	case ContactExit:
		return "exit"
	default:
		return "unknown"
	}
}

// ContactEvent carries a rigidbody grounding transition. Other is the
// collider found by the contact query; it is zero for ContactExit.
type ContactEvent struct {
	Type   ContactType
	Object EntityID
	Other  EntityID
	Name   string
}

func (s *Scene) emit(ev ContactEvent) {
	if s.sink != nil {
		s.sink.EmitEvent(ev)
	}
}
