package thicket

import (
	"errors"
	"testing"
)

func newTestScene() *Scene {
	now := 0.0
	return NewScene(SceneConfig{Clock: NewClockWithSource(func() float64 { return now })})
}

// childSum counts child links over the root and every live object.
func childSum(s *Scene) int {
	n := s.root.NumChildren()
	s.walk(false, func(o *GameObject) bool {
		n += o.transform.NumChildren()
		return true
	})
	return n
}

func TestTransformWorldPosition(t *testing.T) {
	s := newTestScene()
	a := s.NewGameObject("a", nil)
	a.Transform().LocalPosition = Vec3(10, 0, 0)
	b := s.NewGameObject("b", a.Transform())
	b.Transform().LocalPosition = Vec3(0, 5, 1)
	c := s.NewGameObject("c", b.Transform())
	c.Transform().LocalPosition = Vec3(1, 1, 1)

	assertVec(t, "a", a.Transform().Position(), Vec3(10, 0, 0))
	assertVec(t, "b", b.Transform().Position(), Vec3(10, 5, 1))
	assertVec(t, "c", c.Transform().Position(), Vec3(11, 6, 2))
}

func TestTransformSetPositionRoundTrip(t *testing.T) {
	s := newTestScene()
	a := s.NewGameObject("a", nil)
	a.Transform().LocalPosition = Vec3(3, -4, 0)
	b := s.NewGameObject("b", a.Transform())

	b.Transform().SetPosition(Vec3(12.5, 25, 1))
	assertVec(t, "world", b.Transform().Position(), Vec3(12.5, 25, 1))
	assertVec(t, "local", b.Transform().LocalPosition, Vec3(9.5, 29, 1))
}

func TestTransformTranslate(t *testing.T) {
	s := newTestScene()
	a := s.NewGameObject("a", nil)
	a.Transform().LocalPosition = Vec3(1, 1, 0)
	b := s.NewGameObject("b", a.Transform())
	b.Transform().Translate(Vec3(2, 3, 0))
	assertVec(t, "world", b.Transform().Position(), Vec3(3, 4, 0))
}

func TestTransformDefaults(t *testing.T) {
	s := newTestScene()
	tr := s.NewGameObject("a", nil).Transform()
	if tr.Scale != One() {
		t.Errorf("Scale = %v, want %v", tr.Scale, One())
	}
	if tr.Parent() != s.Root() {
		t.Error("top-level object should be parented to the scene root")
	}
}

func TestTransformReparent(t *testing.T) {
	s := newTestScene()
	a := s.NewGameObject("a", nil)
	b := s.NewGameObject("b", nil)
	c := s.NewGameObject("c", a.Transform())
	c.Transform().LocalPosition = Vec3(1, 0, 0)
	b.Transform().LocalPosition = Vec3(0, 10, 0)

	if err := c.Transform().SetParent(b.Transform()); err != nil {
		t.Fatalf("SetParent: %v", err)
	}
	if a.Transform().NumChildren() != 0 {
		t.Errorf("old parent still has %d children", a.Transform().NumChildren())
	}
	kids := b.Transform().Children()
	if len(kids) != 1 || kids[0] != c.Transform() {
		t.Errorf("new parent children = %v", kids)
	}
	if c.Transform().Parent() != Positionable(b.Transform()) {
		t.Error("Parent() not updated")
	}
	// Local position is kept, so the world position follows the new parent.
	assertVec(t, "world", c.Transform().Position(), Vec3(1, 10, 0))
	if got, want := childSum(s), s.Len(); got != want {
		t.Errorf("child links = %d, want %d", got, want)
	}
}

func TestTransformReparentSameParentNoop(t *testing.T) {
	s := newTestScene()
	a := s.NewGameObject("a", nil)
	b := s.NewGameObject("b", a.Transform())
	c := s.NewGameObject("c", a.Transform())

	if err := b.Transform().SetParent(a.Transform()); err != nil {
		t.Fatal(err)
	}
	kids := a.Transform().Children()
	if len(kids) != 2 || kids[0] != b.Transform() || kids[1] != c.Transform() {
		t.Error("same-parent reparent must not reorder children")
	}
}

func TestTransformReparentToRoot(t *testing.T) {
	s := newTestScene()
	a := s.NewGameObject("a", nil)
	b := s.NewGameObject("b", a.Transform())
	if err := b.Transform().SetParent(nil); err != nil {
		t.Fatal(err)
	}
	if s.Root().NumChildren() != 2 {
		t.Errorf("root children = %d, want 2", s.Root().NumChildren())
	}
	if b.Transform().Parent() != s.Root() {
		t.Error("parent should be the root")
	}
}

func TestTransformCycleRejected(t *testing.T) {
	s := newTestScene()
	a := s.NewGameObject("a", nil)
	b := s.NewGameObject("b", a.Transform())
	c := s.NewGameObject("c", b.Transform())

	for _, tc := range []struct {
		name   string
		parent Positionable
	}{
		{"self", a.Transform()},
		{"grandchild", c.Transform()},
	} {
		err := a.Transform().SetParent(tc.parent)
		if !errors.Is(err, ErrCycle) {
			t.Errorf("%s: err = %v, want ErrCycle", tc.name, err)
		}
	}
	// The tree is untouched.
	if a.Transform().Parent() != s.Root() || s.Root().NumChildren() != 1 {
		t.Error("rejected reparent mutated the tree")
	}
	if got, want := childSum(s), s.Len(); got != want {
		t.Errorf("child links = %d, want %d", got, want)
	}
}

func TestTransformForeignParentRejected(t *testing.T) {
	s1, s2 := newTestScene(), newTestScene()
	a := s1.NewGameObject("a", nil)
	b := s2.NewGameObject("b", nil)
	if err := a.Transform().SetParent(b.Transform()); !errors.Is(err, ErrForeignParent) {
		t.Errorf("err = %v, want ErrForeignParent", err)
	}
	if err := a.Transform().SetParent(s2.Root()); !errors.Is(err, ErrForeignParent) {
		t.Errorf("foreign root: err = %v, want ErrForeignParent", err)
	}
}

func TestNewGameObjectForeignParentPanics(t *testing.T) {
	s1, s2 := newTestScene(), newTestScene()
	a := s1.NewGameObject("a", nil)
	defer func() {
		if recover() == nil {
			t.Fatal("expected panic")
		}
	}()
	s2.NewGameObject("b", a.Transform())
}

func TestSceneRootImmutable(t *testing.T) {
	s := newTestScene()
	if err := s.Root().SetPosition(Vec3(1, 2, 3)); !errors.Is(err, ErrRootImmutable) {
		t.Errorf("err = %v, want ErrRootImmutable", err)
	}
	assertVec(t, "root", s.Root().Position(), Zero())
	if s.Root().Scene() != s {
		t.Error("root should report its scene")
	}
}

func TestChildLinkInvariant(t *testing.T) {
	s := newTestScene()
	var objs []*GameObject
	for i := 0; i < 20; i++ {
		var parent Positionable
		if i > 0 {
			parent = objs[(i*7)%i].Transform()
		}
		objs = append(objs, s.NewGameObject("o", parent))
	}
	// Shuffle some subtrees around; cycles are refused.
	for i := range objs {
		_ = objs[i].Transform().SetParent(objs[(i*3+5)%len(objs)].Transform())
	}
	if got, want := childSum(s), s.Len(); got != want {
		t.Errorf("child links = %d, want %d", got, want)
	}
	for _, o := range objs {
		_ = o.Transform().Position() // must not panic
	}
}
