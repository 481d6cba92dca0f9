package thicket

import "image"

// Component is a typed unit of per-object state or behavior. Concrete types
// embed ComponentBase (or Behaviour) and report a Kind declared in the
// scene's OrderTable.
type Component interface {
	Kind() Kind
	base() *ComponentBase
}

// Lifecycle components receive start, per-frame and fixed-step callbacks in
// scene dispatch order. ComponentBase provides no-op implementations.
type Lifecycle interface {
	Start()
	Update()
	FixedUpdate()
}

// Drawable components paint themselves during Camera.Render.
type Drawable interface {
	Draw()
}

// ScreenView maps between world, view and screen space and composites
// drawables into an output surface.
type ScreenView interface {
	WorldToView(pos Vector3) Vector3
	ViewToWorld(pos Vector3) Vector3
	WorldToScreen(pos Vector3) (Vector3, error)
	ScreenToWorld(pos Vector3) (Vector3, error)
	Render(surface Surface, components []Component)
	Show(img *image.NRGBA, pos Vector3)
}

// Enabler is implemented by components that can be switched off. Scene
// dispatch skips start/update/fixedUpdate of disabled components.
type Enabler interface {
	IsEnabled() bool
}

// Awaker components are notified once, right after they are attached.
type Awaker interface {
	Awake()
}

// Destroyer components are notified when their game object is destroyed.
type Destroyer interface {
	OnDestroy()
}

// Unique marks a component kind that may appear at most once per object.
type Unique interface {
	Unique()
}

// ComponentBase holds the back-reference from a component to its owner as an
// arena handle. Embed it in every component type.
type ComponentBase struct {
	owner EntityID
	scene *Scene
}

func (b *ComponentBase) base() *ComponentBase { return b }

func (b *ComponentBase) Start()       {}
func (b *ComponentBase) Update()      {}
func (b *ComponentBase) FixedUpdate() {}

// Owner returns the handle of the owning game object.
func (b *ComponentBase) Owner() EntityID {
	return b.owner
}

// Scene returns the scene the owning game object lives in, or nil while the
// component is unattached.
func (b *ComponentBase) Scene() *Scene {
	return b.scene
}

// GameObject resolves the owner. Returns nil once the owner is destroyed.
func (b *ComponentBase) GameObject() *GameObject {
	if b.scene == nil {
		return nil
	}
	return b.scene.Object(b.owner)
}

// Transform returns the owner's transform, or nil when unattached.
func (b *ComponentBase) Transform() *Transform {
	obj := b.GameObject()
	if obj == nil {
		return nil
	}
	return obj.transform
}

func (b *ComponentBase) attached() bool {
	return b.scene != nil
}

// Behaviour is a ComponentBase that can be switched off. The zero value is
// enabled.
type Behaviour struct {
	ComponentBase
	disabled bool
}

// IsEnabled reports whether scene dispatch should run this behaviour.
func (b *Behaviour) IsEnabled() bool {
	return !b.disabled
}

// SetEnabled switches the behaviour on or off.
func (b *Behaviour) SetEnabled(enabled bool) {
	b.disabled = !enabled
}

func isEnabled(c Component) bool {
	if e, ok := c.(Enabler); ok {
		return e.IsEnabled()
	}
	return true
}
