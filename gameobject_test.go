package thicket

import (
	"errors"
	"testing"
)

// probe is a test component that records calls.
type probe struct {
	Behaviour
	name   string
	log    *[]string
	awoke  int
	gotArg int
	freed  bool
}

const kindProbe Kind = "probe"

func (p *probe) Kind() Kind    { return kindProbe }
func (p *probe) Awake()        { p.awoke++ }
func (p *probe) Start()        { p.record("start") }
func (p *probe) Update()       { p.record("update") }
func (p *probe) FixedUpdate()  { p.record("fixed") }
func (p *probe) OnDestroy()    { p.freed = true }
func (p *probe) Hit(n int)     { p.gotArg += n }
func (p *probe) Tag(s *string) { p.record("tag") }

func (p *probe) record(ev string) {
	if p.log != nil {
		*p.log = append(*p.log, p.name+":"+ev)
	}
}

type uniqueProbe struct {
	ComponentBase
}

func (u *uniqueProbe) Kind() Kind { return kindProbe }
func (u *uniqueProbe) Unique()    {}

func newProbeScene() *Scene {
	s := newTestScene()
	s.Order().Register(kindProbe, 10)
	return s
}

func TestAddComponentTransformFirst(t *testing.T) {
	s := newProbeScene()
	o := s.NewGameObject("o", nil)
	MustAdd(o, &probe{})
	comps := o.Components()
	if len(comps) != 2 {
		t.Fatalf("components = %d, want 2", len(comps))
	}
	if _, ok := comps[0].(*Transform); !ok {
		t.Errorf("first component is %T, want *Transform", comps[0])
	}
}

func TestAddComponentAwake(t *testing.T) {
	s := newProbeScene()
	o := s.NewGameObject("o", nil)
	p := MustAdd(o, &probe{})
	if p.awoke != 1 {
		t.Errorf("Awake called %d times, want 1", p.awoke)
	}
	if p.GameObject() != o || p.Owner() != o.ID() || p.Scene() != s {
		t.Error("back-references not set")
	}
	if p.Transform() != o.Transform() {
		t.Error("Transform() should be the owner's transform")
	}
}

func TestAddComponentErrors(t *testing.T) {
	s := newProbeScene()
	o := s.NewGameObject("o", nil)

	if err := o.AddComponent(newTransform()); !errors.Is(err, ErrDuplicateComponent) {
		t.Errorf("second transform: err = %v, want ErrDuplicateComponent", err)
	}

	MustAdd(o, &uniqueProbe{})
	if err := o.AddComponent(&uniqueProbe{}); !errors.Is(err, ErrDuplicateComponent) {
		t.Errorf("second unique: err = %v, want ErrDuplicateComponent", err)
	}

	// Non-unique kinds may repeat.
	MustAdd(o, &probe{})
	if err := o.AddComponent(&probe{}); err != nil {
		t.Errorf("second probe: %v", err)
	}

	p := &probe{}
	MustAdd(o, p)
	other := s.NewGameObject("other", nil)
	if err := other.AddComponent(p); !errors.Is(err, ErrAlreadyAttached) {
		t.Errorf("re-attach: err = %v, want ErrAlreadyAttached", err)
	}

	bare := NewScene(SceneConfig{Order: NewOrderTable()})
	obj := bare.NewGameObject("x", nil)
	if err := obj.AddComponent(NewCollider()); !errors.Is(err, ErrUnregisteredKind) {
		t.Errorf("undeclared kind: err = %v, want ErrUnregisteredKind", err)
	}
}

func TestGetHas(t *testing.T) {
	s := newProbeScene()
	o := s.NewGameObject("o", nil)
	a := MustAdd(o, &probe{name: "a"})
	b := MustAdd(o, &probe{name: "b"})

	got, err := Get[*probe](o)
	if err != nil || got != a {
		t.Errorf("Get = %v, %v; want first probe", got, err)
	}
	if all := GetAll[*probe](o); len(all) != 2 || all[1] != b {
		t.Errorf("GetAll = %v", all)
	}
	if !Has[*probe](o) || !Has[*Transform](o) {
		t.Error("Has should find attached components")
	}
	if Has[*Collider](o) {
		t.Error("Has should not find a missing component")
	}
	if _, err := Get[*Collider](o); !errors.Is(err, ErrComponentNotFound) {
		t.Errorf("missing: err = %v, want ErrComponentNotFound", err)
	}
	// Capability interfaces work as type parameters.
	if lc := GetAll[Lifecycle](o); len(lc) != 3 {
		t.Errorf("GetAll[Lifecycle] = %d, want 3", len(lc))
	}
}

func TestMustGetPanics(t *testing.T) {
	s := newProbeScene()
	o := s.NewGameObject("o", nil)
	defer func() {
		r := recover()
		err, ok := r.(error)
		if !ok || !errors.Is(err, ErrComponentNotFound) {
			t.Errorf("recovered %v, want ErrComponentNotFound", r)
		}
	}()
	MustGet[*Collider](o)
}

func TestInvoke(t *testing.T) {
	s := newProbeScene()
	o := s.NewGameObject("o", nil)
	a := MustAdd(o, &probe{})
	b := MustAdd(o, &probe{})

	o.Invoke("Hit", 3)
	if a.gotArg != 3 || b.gotArg != 3 {
		t.Errorf("Hit args = %d, %d; want 3, 3", a.gotArg, b.gotArg)
	}

	// Wrong argument types and unknown methods are skipped.
	o.Invoke("Hit", "three")
	o.Invoke("Missing")
	if a.gotArg != 3 {
		t.Errorf("mismatched Invoke changed state: %d", a.gotArg)
	}

	var log []string
	a.log, a.name = &log, "a"
	o.Invoke("Tag", nil)
	if len(log) != 1 || log[0] != "a:tag" {
		t.Errorf("nil argument Invoke log = %v", log)
	}
}

func TestTags(t *testing.T) {
	s := newTestScene()
	o := s.NewGameObject("o", nil)
	o.AddTag("enemy")
	o.AddTag("flying")
	o.AddTag("enemy")
	if !o.HasTag("enemy") || o.HasTag("player") {
		t.Error("HasTag mismatch")
	}
	if tags := o.Tags(); len(tags) != 2 || tags[0] != "enemy" || tags[1] != "flying" {
		t.Errorf("Tags() = %v", tags)
	}
	o.RemoveTag("enemy")
	if o.HasTag("enemy") {
		t.Error("RemoveTag did not remove")
	}
}

func TestBehaviourEnabledByDefault(t *testing.T) {
	var b Behaviour
	if !b.IsEnabled() {
		t.Error("zero Behaviour should be enabled")
	}
	b.SetEnabled(false)
	if b.IsEnabled() {
		t.Error("SetEnabled(false) did not disable")
	}
}
