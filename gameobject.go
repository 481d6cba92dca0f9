package thicket

import (
	"fmt"
	"reflect"
	"sort"
)

// GameObject is a named container owning an ordered list of components.
// Its Transform is always the first component. An inactive object is
// skipped, together with its whole subtree, by traversal, collision queries
// and rendering, without losing any state.
type GameObject struct {
	Name string

	id         EntityID
	scene      *Scene
	tags       map[string]struct{}
	active     bool
	destroyed  bool
	transform  *Transform
	components []Component
}

// ID returns the object's arena handle.
func (o *GameObject) ID() EntityID {
	return o.id
}

// Scene returns the scene that owns the object.
func (o *GameObject) Scene() *Scene {
	return o.scene
}

// Transform returns the object's transform.
func (o *GameObject) Transform() *Transform {
	return o.transform
}

// IsActive reports whether the object takes part in traversal.
func (o *GameObject) IsActive() bool {
	return o.active
}

// SetActive includes or excludes the object and its subtree from traversal.
func (o *GameObject) SetActive(active bool) {
	o.active = active
}

// IsDestroyed reports whether the object was removed from its scene.
func (o *GameObject) IsDestroyed() bool {
	return o.destroyed
}

// --- Tags ---

// AddTag adds tag to the object's tag set.
func (o *GameObject) AddTag(tag string) {
	if o.tags == nil {
		o.tags = make(map[string]struct{})
	}
	o.tags[tag] = struct{}{}
}

// RemoveTag removes tag from the object's tag set.
func (o *GameObject) RemoveTag(tag string) {
	delete(o.tags, tag)
}

// HasTag reports whether the object carries tag.
func (o *GameObject) HasTag(tag string) bool {
	_, ok := o.tags[tag]
	return ok
}

// Tags returns the object's tags, sorted.
func (o *GameObject) Tags() []string {
	tags := make([]string, 0, len(o.tags))
	for t := range o.tags {
		tags = append(tags, t)
	}
	sort.Strings(tags)
	return tags
}

// --- Components ---

// Components returns the components in insertion order. The returned slice
// MUST NOT be mutated.
func (o *GameObject) Components() []Component {
	return o.components
}

// AddComponent attaches c to the object. It fails if c's kind is not
// declared in the scene's order table, if c is unique and the object already
// has one of its kind, or if c is already attached somewhere.
func (o *GameObject) AddComponent(c Component) error {
	if o.destroyed {
		return fmt.Errorf("add %s to %q: %w", c.Kind(), o.Name, ErrDestroyed)
	}
	b := c.base()
	if b.attached() {
		return fmt.Errorf("add %s to %q: %w", c.Kind(), o.Name, ErrAlreadyAttached)
	}
	kind := c.Kind()
	if !o.scene.order.Has(kind) {
		return fmt.Errorf("add %s to %q: %w", kind, o.Name, ErrUnregisteredKind)
	}
	if _, unique := c.(Unique); unique {
		for _, existing := range o.components {
			if existing.Kind() == kind {
				return fmt.Errorf("add %s to %q: %w", kind, o.Name, ErrDuplicateComponent)
			}
		}
	}
	b.owner = o.id
	b.scene = o.scene
	o.components = append(o.components, c)
	if a, ok := c.(Awaker); ok {
		a.Awake()
	}
	return nil
}

// MustAddComponent is like AddComponent but panics on error.
func (o *GameObject) MustAddComponent(c Component) {
	if err := o.AddComponent(c); err != nil {
		panic(err)
	}
}

// Add attaches c to o and returns it, so construction and configuration can
// be chained.
func Add[T Component](o *GameObject, c T) (T, error) {
	if err := o.AddComponent(c); err != nil {
		var zero T
		return zero, err
	}
	return c, nil
}

// MustAdd is like Add but panics on error.
func MustAdd[T Component](o *GameObject, c T) T {
	o.MustAddComponent(c)
	return c
}

// Get returns the first component of o assignable to T. T may be a concrete
// component pointer type or a capability interface such as Drawable.
func Get[T any](o *GameObject) (T, error) {
	for _, c := range o.components {
		if v, ok := c.(T); ok {
			return v, nil
		}
	}
	var zero T
	return zero, fmt.Errorf("get %s from %q: %w", reflect.TypeFor[T](), o.Name, ErrComponentNotFound)
}

// MustGet is like Get but panics when no component matches.
func MustGet[T any](o *GameObject) T {
	v, err := Get[T](o)
	if err != nil {
		panic(err)
	}
	return v
}

// GetAll returns every component of o assignable to T, in insertion order.
func GetAll[T any](o *GameObject) []T {
	var out []T
	for _, c := range o.components {
		if v, ok := c.(T); ok {
			out = append(out, v)
		}
	}
	return out
}

// Has reports whether o has a component assignable to T.
func Has[T any](o *GameObject) bool {
	for _, c := range o.components {
		if _, ok := c.(T); ok {
			return true
		}
	}
	return false
}

// Invoke calls the exported method named method with args on every component
// that has one, in insertion order. Components without the method, or whose
// method does not accept args, are skipped.
func (o *GameObject) Invoke(method string, args ...any) {
	in := make([]reflect.Value, len(args))
	for i, a := range args {
		in[i] = reflect.ValueOf(a)
	}
	for _, c := range o.components {
		m := reflect.ValueOf(c).MethodByName(method)
		if !m.IsValid() {
			continue
		}
		call, ok := bindArgs(m.Type(), in)
		if !ok {
			continue
		}
		m.Call(call)
	}
}

// bindArgs matches in against fn's parameters, substituting typed zero
// values for untyped nils.
func bindArgs(fn reflect.Type, in []reflect.Value) ([]reflect.Value, bool) {
	if fn.IsVariadic() || fn.NumIn() != len(in) {
		return nil, false
	}
	out := make([]reflect.Value, len(in))
	for i, v := range in {
		want := fn.In(i)
		if !v.IsValid() {
			switch want.Kind() {
			case reflect.Pointer, reflect.Interface, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
				out[i] = reflect.Zero(want)
				continue
			}
			return nil, false
		}
		if !v.Type().AssignableTo(want) {
			return nil, false
		}
		out[i] = v
	}
	return out, true
}
