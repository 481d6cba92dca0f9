package thicket

import (
	"fmt"
	"image"

	"go.uber.org/zap"
)

// Surface is the host output a view renders into. *ebiten.Image satisfies it.
type Surface interface {
	Bounds() image.Rectangle
	WritePixels(pixels []byte)
}

// SceneConfig carries the collaborators a scene is constructed with. Nil
// fields are replaced with defaults.
type SceneConfig struct {
	// Order is the kind → priority dispatch table. Defaults to DefaultOrder.
	// The table is shared, not copied: NewScene registers KindTransform
	// into it when missing, and scenes built from the same table see each
	// other's registrations.
	Order *OrderTable
	// Clock supplies DeltaTime to physics and scripts.
	Clock *Clock
	// Input is the per-key state scripts read.
	Input *Input
	// Logger receives warnings and debug stats. Defaults to a no-op logger.
	Logger *zap.Logger
}

// Scene owns the object arena, the root transform, the active view and the
// output surface of the last render.
type Scene struct {
	root  *SceneTransform
	order *OrderTable
	pool  objectPool

	view    ScreenView
	surface Surface

	clock *Clock
	input *Input
	log   *zap.Logger
	sink  EventSink
	debug bool

	pendingDestroy []EntityID

	// ScreenshotDir is where Screenshot writes PNG files.
	ScreenshotDir   string
	screenshotQueue []string
}

// NewScene creates an empty scene. The transform kind is always declared in
// the order table, since every object owns a transform.
func NewScene(cfg SceneConfig) *Scene {
	if cfg.Order == nil {
		cfg.Order = DefaultOrder()
	}
	if !cfg.Order.Has(KindTransform) {
		cfg.Order.Register(KindTransform, 0)
	}
	if cfg.Clock == nil {
		cfg.Clock = NewClock()
	}
	if cfg.Input == nil {
		cfg.Input = NewInput()
	}
	if cfg.Logger == nil {
		cfg.Logger = zap.NewNop()
	}
	s := &Scene{
		order:         cfg.Order,
		pool:          newObjectPool(),
		clock:         cfg.Clock,
		input:         cfg.Input,
		log:           cfg.Logger,
		ScreenshotDir: "screenshots",
	}
	s.root = &SceneTransform{scene: s}
	return s
}

// Root returns the scene's synthetic root transform.
func (s *Scene) Root() *SceneTransform { return s.root }

// Order returns the dispatch table.
func (s *Scene) Order() *OrderTable { return s.order }

// Clock returns the time service.
func (s *Scene) Clock() *Clock { return s.clock }

// Input returns the input service.
func (s *Scene) Input() *Input { return s.input }

// Logger returns the scene logger.
func (s *Scene) Logger() *zap.Logger { return s.log }

// SetLogger replaces the scene logger. Nil installs a no-op logger.
func (s *Scene) SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	s.log = l
}

// SetEventSink sets the optional receiver for contact events.
func (s *Scene) SetEventSink(sink EventSink) { s.sink = sink }

// SetDebugMode enables tree-shape warnings and per-frame stats logging.
func (s *Scene) SetDebugMode(enabled bool) { s.debug = enabled }

// DebugMode reports whether debug mode is on.
func (s *Scene) DebugMode() bool { return s.debug }

// View returns the active screen view, or nil.
func (s *Scene) View() ScreenView { return s.view }

// SetView makes v the active view. The last view set wins.
func (s *Scene) SetView(v ScreenView) {
	if s.view != nil && v != nil && s.view != v {
		s.log.Debug("replacing active scene view")
	}
	s.view = v
}

// Surface returns the surface of the most recent Render, or nil.
func (s *Scene) Surface() Surface { return s.surface }

// SetSurface records the output surface used by screen-space conversions.
func (s *Scene) SetSurface(surface Surface) { s.surface = surface }

// --- Objects ---

// NewGameObject creates an object with its Transform under parent. A nil
// parent places the object at the top level. Panics if parent belongs to a
// different scene.
func (s *Scene) NewGameObject(name string, parent Positionable) *GameObject {
	if parent == nil {
		parent = s.root
	}
	if parent.ownerScene() != s {
		panic(fmt.Sprintf("thicket: NewGameObject(%q): %v", name, ErrForeignParent))
	}
	obj := &GameObject{Name: name, scene: s, active: true}
	obj.id = s.pool.insert(obj)

	t := newTransform()
	t.parent = parent.handle()
	list := parent.childIDs()
	*list = append(*list, obj.id)
	obj.transform = t
	obj.MustAddComponent(t)
	if s.debug {
		debugCheckTreeDepth(s, t)
		debugCheckChildCount(s, parent)
	}
	return obj
}

// Object resolves a handle. Returns nil for stale or unknown handles.
func (s *Scene) Object(id EntityID) *GameObject {
	return s.pool.get(id)
}

// Len returns the number of live objects, excluding the root.
func (s *Scene) Len() int {
	return s.pool.live
}

// Find returns the first object named name in breadth-first order,
// including inactive objects, or nil.
func (s *Scene) Find(name string) *GameObject {
	var found *GameObject
	s.walk(false, func(o *GameObject) bool {
		if o.Name == name {
			found = o
			return false
		}
		return true
	})
	return found
}

// FindByTag returns every object carrying tag in breadth-first order,
// including inactive objects.
func (s *Scene) FindByTag(tag string) []*GameObject {
	var out []*GameObject
	s.walk(false, func(o *GameObject) bool {
		if o.HasTag(tag) {
			out = append(out, o)
		}
		return true
	})
	return out
}

// walk visits objects breadth-first from the root's children. When
// activeOnly is set, inactive objects and their subtrees are pruned. Returning
// false from fn stops the walk.
func (s *Scene) walk(activeOnly bool, fn func(*GameObject) bool) {
	queue := make([]*GameObject, 0, len(s.root.children))
	for _, id := range s.root.children {
		if o := s.pool.get(id); o != nil && (!activeOnly || o.active) {
			queue = append(queue, o)
		}
	}
	for i := 0; i < len(queue); i++ {
		cur := queue[i]
		for _, id := range cur.transform.children {
			if o := s.pool.get(id); o != nil && (!activeOnly || o.active) {
				queue = append(queue, o)
			}
		}
		if !fn(cur) {
			return
		}
	}
}

// Components collects the components of every active object, walking the
// tree breadth-first and pruning inactive subtrees, then orders them by the
// priority of their kind. Within a kind, discovery order is kept. This is
// the order used for start, update, fixed update and drawing.
func (s *Scene) Components() []Component {
	kinds := s.order.Kinds()
	buckets := make(map[Kind][]Component, len(kinds))
	n := 0
	s.walk(true, func(o *GameObject) bool {
		for _, c := range o.components {
			buckets[c.Kind()] = append(buckets[c.Kind()], c)
			n++
		}
		return true
	})
	out := make([]Component, 0, n)
	for _, k := range kinds {
		out = append(out, buckets[k]...)
	}
	return out
}

// --- Lifecycle dispatch ---

// Start calls Start on every enabled lifecycle component.
func (s *Scene) Start() {
	for _, c := range s.Components() {
		if lc, ok := c.(Lifecycle); ok && isEnabled(c) {
			lc.Start()
		}
	}
	s.flushDestroyed()
}

// Update calls Update on every enabled lifecycle component.
func (s *Scene) Update() {
	for _, c := range s.Components() {
		if lc, ok := c.(Lifecycle); ok && isEnabled(c) {
			lc.Update()
		}
	}
	s.flushDestroyed()
}

// FixedUpdate calls FixedUpdate on every enabled lifecycle component.
func (s *Scene) FixedUpdate() {
	for _, c := range s.Components() {
		if lc, ok := c.(Lifecycle); ok && isEnabled(c) {
			lc.FixedUpdate()
		}
	}
	s.flushDestroyed()
}

// --- Destruction ---

// Destroy schedules obj and its subtree for removal. Removal happens after
// the current Start/Update/FixedUpdate pass, so a traversal in progress never
// sees a half-removed tree. Handles to destroyed objects stop resolving.
func (s *Scene) Destroy(obj *GameObject) {
	if obj == nil || obj.scene != s || obj.destroyed {
		return
	}
	s.pendingDestroy = append(s.pendingDestroy, obj.id)
}

func (s *Scene) flushDestroyed() {
	for len(s.pendingDestroy) > 0 {
		pending := s.pendingDestroy
		s.pendingDestroy = nil
		for _, id := range pending {
			obj := s.pool.get(id)
			if obj == nil {
				continue
			}
			parent := s.childList(obj.transform.parent)
			*parent = removeID(*parent, id)
			s.destroySubtree(obj)
		}
	}
}

func (s *Scene) destroySubtree(obj *GameObject) {
	children := append([]EntityID(nil), obj.transform.children...)
	for _, id := range children {
		if child := s.pool.get(id); child != nil {
			s.destroySubtree(child)
		}
	}
	for _, c := range obj.components {
		if d, ok := c.(Destroyer); ok {
			d.OnDestroy()
		}
		if v, ok := c.(ScreenView); ok && s.view == v {
			s.view = nil
		}
	}
	for _, c := range obj.components {
		b := c.base()
		b.scene = nil
	}
	obj.transform.children = nil
	obj.destroyed = true
	s.pool.remove(obj.id)
}

// childList returns the child slice of the node addressed by id.
func (s *Scene) childList(id EntityID) *[]EntityID {
	if id == RootID {
		return &s.root.children
	}
	if obj := s.pool.get(id); obj != nil {
		return &obj.transform.children
	}
	var empty []EntityID
	return &empty
}

func (s *Scene) resolveTransforms(ids []EntityID) []*Transform {
	out := make([]*Transform, 0, len(ids))
	for _, id := range ids {
		if obj := s.pool.get(id); obj != nil {
			out = append(out, obj.transform)
		}
	}
	return out
}

// --- Rendering ---

// Render records surface and asks the active view to composite every
// drawable. Without a view nothing is drawn.
func (s *Scene) Render(surface Surface) {
	s.surface = surface
	if s.view == nil || surface == nil {
		return
	}
	s.view.Render(surface, s.Components())
	s.flushScreenshots()
}

// Show composites img centred at the world position pos through the active
// view. Used by sprites and by ad hoc overlays.
func (s *Scene) Show(img *image.NRGBA, pos Vector3) {
	if s.view == nil {
		s.log.Warn("show called without a scene view")
		return
	}
	s.view.Show(img, pos)
}

// --- Coordinate conversion ---

// ScreenToView converts a screen position (origin top-left, y down) to view
// space (origin at the surface centre, y up).
func (s *Scene) ScreenToView(pos Vector3) (Vector3, error) {
	if s.surface == nil {
		return Vector3{}, ErrNoSurface
	}
	w, h := surfaceSize(s.surface)
	return Vector3{pos.X - float64(w>>1), -pos.Y + float64(h>>1), pos.Z}, nil
}

// ViewToScreen is the inverse of ScreenToView.
func (s *Scene) ViewToScreen(pos Vector3) (Vector3, error) {
	if s.surface == nil {
		return Vector3{}, ErrNoSurface
	}
	w, h := surfaceSize(s.surface)
	return Vector3{pos.X + float64(w>>1), -pos.Y + float64(h>>1), pos.Z}, nil
}

// ScreenToWorld converts through the active view.
func (s *Scene) ScreenToWorld(pos Vector3) (Vector3, error) {
	if s.view == nil {
		return Vector3{}, ErrNoView
	}
	return s.view.ScreenToWorld(pos)
}

// WorldToScreen converts through the active view.
func (s *Scene) WorldToScreen(pos Vector3) (Vector3, error) {
	if s.view == nil {
		return Vector3{}, ErrNoView
	}
	return s.view.WorldToScreen(pos)
}

// WorldToView converts through the active view.
func (s *Scene) WorldToView(pos Vector3) (Vector3, error) {
	if s.view == nil {
		return Vector3{}, ErrNoView
	}
	return s.view.WorldToView(pos), nil
}

// ViewToWorld converts through the active view.
func (s *Scene) ViewToWorld(pos Vector3) (Vector3, error) {
	if s.view == nil {
		return Vector3{}, ErrNoView
	}
	return s.view.ViewToWorld(pos), nil
}

func surfaceSize(surface Surface) (int, int) {
	b := surface.Bounds()
	return b.Dx(), b.Dy()
}
