package thicket

import "fmt"

// Positionable is a node of the scene graph: either a game object's
// Transform or the scene's synthetic root.
type Positionable interface {
	// Position returns the world-space position.
	Position() Vector3
	// Children returns the direct child transforms in insertion order.
	Children() []*Transform

	handle() EntityID
	childIDs() *[]EntityID
	ownerScene() *Scene
}

// --- SceneTransform ---

// SceneTransform is the synthetic root of a scene. Its position is fixed at
// its local position (the origin) and it has no parent.
type SceneTransform struct {
	localPosition Vector3
	scene         *Scene
	children      []EntityID
}

// Scene returns the scene this root belongs to.
func (r *SceneTransform) Scene() *Scene { return r.scene }

// Position returns the root's fixed position.
func (r *SceneTransform) Position() Vector3 { return r.localPosition }

// SetPosition always fails: the root cannot be moved.
func (r *SceneTransform) SetPosition(Vector3) error { return ErrRootImmutable }

// Children returns the top-level transforms of the scene.
func (r *SceneTransform) Children() []*Transform { return r.scene.resolveTransforms(r.children) }

// NumChildren returns the number of top-level transforms.
func (r *SceneTransform) NumChildren() int { return len(r.children) }

func (r *SceneTransform) handle() EntityID      { return RootID }
func (r *SceneTransform) childIDs() *[]EntityID { return &r.children }
func (r *SceneTransform) ownerScene() *Scene    { return r.scene }

// --- Transform ---

// Transform positions a game object relative to its parent. Every game
// object owns exactly one, always as its first component. Rotation and Scale
// are stored for scripts but do not enter the position math.
type Transform struct {
	ComponentBase

	LocalPosition Vector3
	Rotation      float64
	Scale         Vector3

	parent   EntityID
	children []EntityID
}

func newTransform() *Transform {
	return &Transform{Scale: One()}
}

// Kind implements Component.
func (t *Transform) Kind() Kind { return KindTransform }

// Unique implements Unique: an object has one transform.
func (t *Transform) Unique() {}

// Position returns the world position: LocalPosition plus the world position
// of every ancestor up to the scene root.
func (t *Transform) Position() Vector3 {
	pos := t.LocalPosition
	s := t.scene
	if s == nil {
		return pos
	}
	// A well-formed tree reaches the root within live-object steps.
	budget := s.pool.live
	for id := t.parent; id != RootID; budget-- {
		if budget < 0 {
			panic(fmt.Sprintf("thicket: transform of %s is not rooted in its scene", t.owner))
		}
		parent := s.pool.get(id)
		if parent == nil {
			panic(fmt.Sprintf("thicket: transform of %s has a dangling parent %s", t.owner, id))
		}
		pos = pos.Add(parent.transform.LocalPosition)
		id = parent.transform.parent
	}
	return pos.Add(s.root.Position())
}

// SetPosition moves the transform so that its world position becomes p.
func (t *Transform) SetPosition(p Vector3) {
	t.LocalPosition = p.Sub(t.parentPosition())
}

// Translate moves the transform by delta in world space.
func (t *Transform) Translate(delta Vector3) {
	t.LocalPosition = t.LocalPosition.Add(delta)
}

func (t *Transform) parentPosition() Vector3 {
	if p := t.Parent(); p != nil {
		return p.Position()
	}
	return Vector3{}
}

// Parent returns the parent node: another Transform or the SceneTransform.
// Returns nil for a transform that is not attached to a scene.
func (t *Transform) Parent() Positionable {
	if t.scene == nil {
		return nil
	}
	if t.parent == RootID {
		return t.scene.root
	}
	if obj := t.scene.pool.get(t.parent); obj != nil {
		return obj.transform
	}
	return nil
}

// SetParent moves t under p, appending it to p's children. Passing nil
// reparents to the scene root. Reparenting to the current parent is a no-op.
// The tree is left untouched when an error is returned.
func (t *Transform) SetParent(p Positionable) error {
	s := t.scene
	if s == nil {
		return fmt.Errorf("set parent: %w", ErrDestroyed)
	}
	if p == nil {
		p = s.root
	}
	if p.ownerScene() != s {
		return fmt.Errorf("set parent of %s: %w", t.owner, ErrForeignParent)
	}
	next := p.handle()
	if next == t.parent {
		return nil
	}
	for id := next; id != RootID; {
		if id == t.owner {
			return fmt.Errorf("set parent of %s to %s: %w", t.owner, next, ErrCycle)
		}
		obj := s.pool.get(id)
		if obj == nil {
			return fmt.Errorf("set parent of %s to %s: %w", t.owner, next, ErrDestroyed)
		}
		id = obj.transform.parent
	}

	old := s.childList(t.parent)
	*old = removeID(*old, t.owner)
	list := p.childIDs()
	*list = append(*list, t.owner)
	t.parent = next
	if s.debug {
		debugCheckTreeDepth(s, t)
		debugCheckChildCount(s, p)
	}
	return nil
}

// Children returns the child transforms in insertion order.
func (t *Transform) Children() []*Transform {
	if t.scene == nil {
		return nil
	}
	return t.scene.resolveTransforms(t.children)
}

// NumChildren returns the number of child transforms.
func (t *Transform) NumChildren() int {
	return len(t.children)
}

func (t *Transform) handle() EntityID      { return t.owner }
func (t *Transform) childIDs() *[]EntityID { return &t.children }
func (t *Transform) ownerScene() *Scene    { return t.scene }

// removeID deletes the first occurrence of id, preserving order.
func removeID(ids []EntityID, id EntityID) []EntityID {
	for i, c := range ids {
		if c == id {
			copy(ids[i:], ids[i+1:])
			ids[len(ids)-1] = 0
			return ids[:len(ids)-1]
		}
	}
	return ids
}
