package thicket

import (
	"time"

	"go.uber.org/zap"
)

// Engine groups the per-process services a running game needs: the current
// scene, its clock and input table, and the logger. One frame is one Tick
// followed by one Draw.
type Engine struct {
	Scene  *Scene
	Clock  *Clock
	Input  *Input
	Logger *zap.Logger

	// InputSource, when set, feeds host events into the input table after
	// it has been aged and before the scene runs. Run installs Input.Poll.
	InputSource func(in *Input)

	runner  *TestRunner
	started bool
	stats   frameStats
}

// NewEngine creates an engine with a fresh scene built from cfg. Nil
// collaborators in cfg are filled in the same way NewScene does.
func NewEngine(cfg SceneConfig) *Engine {
	s := NewScene(cfg)
	return &Engine{
		Scene:  s,
		Clock:  s.Clock(),
		Input:  s.Input(),
		Logger: s.Logger(),
	}
}

// SetScene swaps the running scene. The new scene shares the engine's clock
// and input and is started on the next Tick.
func (e *Engine) SetScene(s *Scene) {
	e.Scene = s
	e.started = false
}

// NewScene returns an empty scene wired to the engine's services, with the
// order table of the current scene. It does not replace the current scene.
func (e *Engine) NewScene() *Scene {
	s := NewScene(SceneConfig{
		Order:  e.Scene.Order(),
		Clock:  e.Clock,
		Input:  e.Input,
		Logger: e.Logger,
	})
	s.SetDebugMode(e.Scene.DebugMode())
	s.ScreenshotDir = e.Scene.ScreenshotDir
	return s
}

// SetTestRunner attaches a scripted input runner; it is stepped once per
// Tick after host input.
func (e *Engine) SetTestRunner(r *TestRunner) {
	e.runner = r
}

// Start resets the clock and calls Start on the scene. Tick calls it on the
// first frame of each scene.
func (e *Engine) Start() {
	e.Clock.Start()
	e.Scene.Start()
	e.started = true
}

// Tick runs one frame of game logic: ages the input table, collects input,
// measures time, then runs Update and, when a fixed step is due,
// FixedUpdate.
func (e *Engine) Tick() {
	if !e.started {
		e.Start()
	}
	e.Input.BeginFrame()
	if e.InputSource != nil {
		e.InputSource(e.Input)
	}
	if e.runner != nil {
		e.runner.step(e)
	}

	fixed := e.Clock.Update()

	debug := e.Scene.DebugMode()
	var t0 time.Time
	if debug {
		t0 = time.Now()
	}
	e.Scene.Update()
	if debug {
		e.stats.updateTime = time.Since(t0)
		e.stats.fixedUpdateTime = 0
		e.stats.fixedTick = fixed
	}

	if fixed {
		if debug {
			t0 = time.Now()
		}
		e.Scene.FixedUpdate()
		if debug {
			e.stats.fixedUpdateTime = time.Since(t0)
		}
	}
}

// Draw renders the scene into surface.
func (e *Engine) Draw(surface Surface) {
	if !e.Scene.DebugMode() {
		e.Scene.Render(surface)
		return
	}
	t0 := time.Now()
	e.Scene.Render(surface)
	e.stats.renderTime = time.Since(t0)

	components := e.Scene.Components()
	e.stats.objectCount = e.Scene.Len()
	e.stats.componentCount = len(components)
	e.stats.drawableCount = countDrawables(components)
	e.Scene.debugLog(e.stats)
}
