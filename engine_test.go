package thicket

import (
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func newTestEngine() (*Engine, *float64) {
	now := new(float64)
	e := NewEngine(SceneConfig{Clock: NewClockWithSource(func() float64 { return *now })})
	e.Clock.FixedScale = 0.25
	e.Scene.Order().Register(kindProbe, 10)
	return e, now
}

func TestEngineTick(t *testing.T) {
	e, now := newTestEngine()
	var log []string
	MustAdd(e.Scene.NewGameObject("p", nil), &probe{name: "p", log: &log})

	e.Tick()
	*now = 0.25
	e.Tick()
	*now = 0.3
	e.Tick()

	want := "p:start p:update p:update p:fixed p:update"
	if got := strings.Join(log, " "); got != want {
		t.Errorf("log = %q, want %q", got, want)
	}
	assertNear(t, "dt", e.Clock.DeltaTime(), 0.05)
}

func TestEngineSetScene(t *testing.T) {
	e, now := newTestEngine()
	e.Tick()

	var log []string
	next := e.NewScene()
	if next.Clock() != e.Clock || next.Input() != e.Input || next.Order() != e.Scene.Order() {
		t.Fatal("NewScene should share the engine services")
	}
	MustAdd(next.NewGameObject("q", nil), &probe{name: "q", log: &log})
	e.SetScene(next)

	*now = 5
	e.Tick()
	if got := strings.Join(log, " "); got != "q:start q:update" {
		t.Errorf("log = %q", got)
	}
	if e.Clock.DeltaTime() != 0 {
		t.Errorf("dt after scene switch = %v, want 0", e.Clock.DeltaTime())
	}
}

func TestEngineInputSource(t *testing.T) {
	e, _ := newTestEngine()
	pressed := false
	e.InputSource = func(in *Input) {
		if !pressed {
			in.Press("key-q")
			pressed = true
		}
	}
	e.Tick()
	if !e.Input.IsDown("key-q") {
		t.Error("key should be down on the frame it was pressed")
	}
	e.Tick()
	if !e.Input.IsHold("key-q") {
		t.Error("key should be held on the next frame")
	}
}

func TestLoadTestScriptErrors(t *testing.T) {
	for name, src := range map[string]string{
		"bad json":       `{`,
		"no steps":       `{"steps": []}`,
		"press no key":   `{"steps": [{"action": "press"}]}`,
		"unknown action": `{"steps": [{"action": "jump"}]}`,
	} {
		if _, err := LoadTestScript([]byte(src)); err == nil {
			t.Errorf("%s: expected error", name)
		}
	}
}

func TestTestRunnerSequencing(t *testing.T) {
	e, _ := newTestEngine()
	r, err := LoadTestScript([]byte(`{"steps": [
		{"action": "mouse", "x": 10, "y": 20},
		{"action": "press", "key": "key-a"},
		{"action": "wait", "frames": 2},
		{"action": "release", "key": "key-a"},
		{"action": "screenshot", "label": "end"}
	]}`))
	if err != nil {
		t.Fatal(err)
	}
	e.SetTestRunner(r)

	e.Tick()
	if !e.Input.IsDown("key-a") {
		t.Errorf("frame 1: state = %v, want down", e.Input.State("key-a"))
	}
	assertVec(t, "mouse", e.Input.MousePosition(), Vec3(10, 20, 0))

	e.Tick()
	if !e.Input.IsHold("key-a") || r.Done() {
		t.Errorf("frame 2: state = %v, done = %v", e.Input.State("key-a"), r.Done())
	}

	e.Tick()
	if !e.Input.IsUp("key-a") {
		t.Errorf("frame 3: state = %v, want up", e.Input.State("key-a"))
	}
	if !r.Done() {
		t.Error("runner should be done after the last step")
	}
	if len(e.Scene.screenshotQueue) != 1 || e.Scene.screenshotQueue[0] != "end" {
		t.Errorf("screenshot queue = %v", e.Scene.screenshotQueue)
	}
}

func TestScreenshot(t *testing.T) {
	e, _ := newTestEngine()
	dir := t.TempDir()
	e.Scene.ScreenshotDir = dir
	MustAdd(e.Scene.NewGameObject("camera", nil), NewCamera())

	e.Scene.Screenshot("after jump/1")
	e.Tick()
	e.Draw(newFakeSurface(8, 6))

	matches, err := filepath.Glob(filepath.Join(dir, "*_after_jump_1.png"))
	if err != nil || len(matches) != 1 {
		t.Fatalf("screenshots = %v, %v", matches, err)
	}
	f, err := os.Open(matches[0])
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	img, err := png.Decode(f)
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 8 || b.Dy() != 6 {
		t.Errorf("screenshot size = %v, want 8x6", b)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0xffff {
		t.Errorf("screenshot alpha = %d, want opaque", a)
	}

	// The queue is drained after a render.
	e.Draw(newFakeSurface(8, 6))
	if matches, _ := filepath.Glob(filepath.Join(dir, "*.png")); len(matches) != 1 {
		t.Errorf("screenshots after second draw = %d, want 1", len(matches))
	}
}

func TestSanitizeLabel(t *testing.T) {
	for in, want := range map[string]string{
		"":          "unlabeled",
		"  ":        "unlabeled",
		"plain-1.0": "plain-1.0",
		"a b/c\\d":  "a_b_c_d",
		"über":      "_ber",
	} {
		if got := sanitizeLabel(in); got != want {
			t.Errorf("sanitizeLabel(%q) = %q, want %q", in, got, want)
		}
	}
}

func TestDebugModeLogs(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	e := NewEngine(SceneConfig{Logger: zap.New(core)})
	e.Scene.SetDebugMode(true)
	MustAdd(e.Scene.NewGameObject("camera", nil), NewCamera())

	var parent Positionable
	for i := 0; i <= debugMaxTreeDepth; i++ {
		o := e.Scene.NewGameObject("link", parent)
		parent = o.Transform()
	}
	if n := logs.FilterMessage("tree depth exceeds threshold").Len(); n != 1 {
		t.Errorf("depth warnings = %d, want 1", n)
	}

	e.Tick()
	e.Draw(newFakeSurface(4, 4))
	frames := logs.FilterMessage("frame").All()
	if len(frames) != 1 {
		t.Fatalf("frame logs = %d, want 1", len(frames))
	}
	fields := frames[0].ContextMap()
	if fields["objects"] != int64(debugMaxTreeDepth+2) {
		t.Errorf("objects = %v, want %d", fields["objects"], debugMaxTreeDepth+2)
	}
}

func TestShowWithoutViewWarns(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	s := NewScene(SceneConfig{Logger: zap.New(core)})
	s.Show(NewRectImage(1, 1, DefaultSpriteColor), Zero())
	if logs.Len() != 1 {
		t.Errorf("warnings = %d, want 1", logs.Len())
	}
}

func TestGameLoop(t *testing.T) {
	e, _ := newTestEngine()
	e.InputSource = func(*Input) {}
	cfg := DefaultConfig()
	cfg.Loop.FixedStep = 0.5
	cfg.Loop.Debug = true
	cfg.Window.Resizable = false

	g, err := NewGame(e, cfg)
	if err != nil {
		t.Fatal(err)
	}
	if e.Clock.FixedScale != 0.5 || !e.Scene.DebugMode() {
		t.Error("NewGame should apply the loop config")
	}
	if w, h := g.Layout(300, 200); w != cfg.Window.Width || h != cfg.Window.Height {
		t.Errorf("fixed layout = %dx%d", w, h)
	}
	cfg.Window.Resizable = true
	if w, h := g.Layout(300, 200); w != 300 || h != 200 {
		t.Errorf("resizable layout = %dx%d", w, h)
	}

	ticks := 0
	stop := errors.New("stop")
	g.BeforeTick = func(*Engine) error {
		ticks++
		if ticks == 2 {
			return stop
		}
		return nil
	}
	if err := g.Update(); err != nil {
		t.Fatal(err)
	}
	if err := g.Update(); !errors.Is(err, stop) {
		t.Errorf("err = %v, want BeforeTick error", err)
	}
	g.Quit()
	if err := g.Update(); !errors.Is(err, ebiten.Termination) {
		t.Errorf("err = %v, want ebiten.Termination", err)
	}

	cfg.Loop.ClearColor = "bogus"
	if _, err := NewGame(e, cfg); err == nil {
		t.Error("bad clear colour should fail")
	}
}
