package thicket

import (
	"errors"
	"fmt"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"go.uber.org/zap"
)

// Game adapts an Engine to ebiten.Game. Most programs call Run instead of
// using it directly.
type Game struct {
	Engine *Engine
	Config *RunConfig

	// BeforeTick runs at the start of every Update, before input is
	// polled. Returning an error stops the loop; ebiten.Termination stops
	// it cleanly.
	BeforeTick func(e *Engine) error

	bg   color.NRGBA
	quit bool
}

// NewGame applies cfg to e and returns the host adapter. A nil cfg uses
// DefaultConfig.
func NewGame(e *Engine, cfg *RunConfig) (*Game, error) {
	if cfg == nil {
		cfg = DefaultConfig()
	}
	bg, err := ParseColor(cfg.Loop.ClearColor)
	if err != nil {
		return nil, fmt.Errorf("clear color: %w", err)
	}
	e.Clock.FixedScale = cfg.Loop.FixedStep
	e.Scene.SetDebugMode(cfg.Loop.Debug)
	if cfg.Loop.ScreenshotDir != "" {
		e.Scene.ScreenshotDir = cfg.Loop.ScreenshotDir
	}
	if e.InputSource == nil {
		e.InputSource = (*Input).Poll
	}
	return &Game{Engine: e, Config: cfg, bg: bg}, nil
}

// Quit stops the loop after the current frame.
func (g *Game) Quit() { g.quit = true }

// Update implements ebiten.Game.
func (g *Game) Update() error {
	if g.quit {
		return ebiten.Termination
	}
	if g.BeforeTick != nil {
		if err := g.BeforeTick(g.Engine); err != nil {
			return err
		}
	}
	g.Engine.Tick()
	return nil
}

// Draw implements ebiten.Game.
func (g *Game) Draw(screen *ebiten.Image) {
	if g.Engine.Scene.View() == nil {
		screen.Fill(g.bg)
	}
	g.Engine.Draw(screen)
	if g.Config.Loop.ShowFPS {
		ebitenutil.DebugPrint(screen, fmt.Sprintf("FPS: %.1f\nTPS: %.1f",
			ebiten.ActualFPS(), ebiten.ActualTPS()))
	}
}

// Layout implements ebiten.Game. A resizable window renders at its outside
// size, so cameras resize their buffers with the window.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	if g.Config.Window.Resizable && outsideWidth > 0 && outsideHeight > 0 {
		return outsideWidth, outsideHeight
	}
	return g.Config.Window.Width, g.Config.Window.Height
}

// Run opens a window and drives e until the window closes or the loop is
// terminated. A nil cfg uses DefaultConfig.
func Run(e *Engine, cfg *RunConfig) error {
	g, err := NewGame(e, cfg)
	if err != nil {
		return err
	}
	return RunGame(g)
}

// RunGame opens a window for g and runs it.
func RunGame(g *Game) error {
	cfg := g.Config
	ebiten.SetWindowTitle(cfg.Window.Title)
	ebiten.SetWindowSize(cfg.Window.Width, cfg.Window.Height)
	if cfg.Window.Resizable {
		ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	}
	ebiten.SetTPS(cfg.Loop.TPS)

	g.Engine.Logger.Info("starting loop",
		zap.String("title", cfg.Window.Title),
		zap.Int("width", cfg.Window.Width),
		zap.Int("height", cfg.Window.Height),
		zap.Float64("fixed_step", cfg.Loop.FixedStep),
	)
	if err := ebiten.RunGame(g); err != nil && !errors.Is(err, ebiten.Termination) {
		return fmt.Errorf("run: %w", err)
	}
	return nil
}
