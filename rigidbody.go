package thicket

// Rigidbody integrates its owner's position with explicit Euler steps and
// freezes on contact. The collider on the same object, if any, is linked
// once when the rigidbody is attached and is not looked up again.
type Rigidbody struct {
	ComponentBase

	Velocity     Vector3
	Acceleration Vector3
	Mass         float64

	collider *Collider
	grounded bool
}

// NewRigidbody returns a rigidbody at rest with unit mass.
func NewRigidbody() *Rigidbody {
	return &Rigidbody{Mass: 1}
}

// Kind implements Component.
func (r *Rigidbody) Kind() Kind { return KindRigidbody }

// Awake links the collider already attached to the owner.
func (r *Rigidbody) Awake() {
	if obj := r.GameObject(); obj != nil {
		if c, err := Get[*Collider](obj); err == nil {
			r.collider = c
		}
	}
}

// Collider returns the linked collider, or nil.
func (r *Rigidbody) Collider() *Collider {
	return r.collider
}

// IsGrounded reports whether the linked collider was touching something on
// the last update.
func (r *Rigidbody) IsGrounded() bool {
	return r.grounded
}

// ApplyForce adds f / Mass to the acceleration immediately.
func (r *Rigidbody) ApplyForce(f Vector3) {
	r.Acceleration = r.Acceleration.Add(f.Div(r.Mass))
}

// Update advances the body by one frame. While a solid collider touches
// anything the body does not move: the first contact tick also zeroes
// velocity and acceleration. Otherwise the position advances with the
// velocity from before this frame's acceleration is applied.
func (r *Rigidbody) Update() {
	if r.collider != nil && !r.collider.IsTrigger {
		if other := r.collider.Check(); other != nil {
			if !r.grounded {
				r.Velocity = Vector3{}
				r.Acceleration = Vector3{}
				r.grounded = true
				r.emitContact(ContactEnter, other.Owner())
			}
			return
		}
		if r.grounded {
			r.grounded = false
			r.emitContact(ContactExit, 0)
		}
	}
	t := r.Transform()
	s := r.Scene()
	if t == nil || s == nil {
		return
	}
	dt := s.Clock().DeltaTime()
	t.SetPosition(t.Position().Add(r.Velocity.Mul(dt)))
	r.Velocity = r.Velocity.Add(r.Acceleration.Mul(dt))
}

func (r *Rigidbody) emitContact(typ ContactType, other EntityID) {
	s := r.Scene()
	if s == nil {
		return
	}
	ev := ContactEvent{Type: typ, Object: r.Owner(), Other: other}
	if obj := r.GameObject(); obj != nil {
		ev.Name = obj.Name
	}
	s.emit(ev)
}
