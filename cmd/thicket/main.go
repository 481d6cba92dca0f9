// Command thicket loads a YAML scene and runs it in a window.
//
//	thicket -scene level.yaml [-config engine.toml] [-watch] [-debug]
package main

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/phanxgames/thicket"
	"github.com/phanxgames/thicket/scenefile"
	"go.uber.org/zap"
)

func main() {
	scenePath := flag.String("scene", "", "scene file (.yaml)")
	configPath := flag.String("config", "", "engine config (.toml); defaults apply when empty")
	watch := flag.Bool("watch", false, "rebuild the scene when scene or script files change")
	debug := flag.Bool("debug", false, "enable debug mode (frame stats, tree checks)")
	testScript := flag.String("test", "", "JSON input script to replay; exits when it finishes")
	flag.Parse()

	if err := run(*scenePath, *configPath, *watch, *debug, *testScript); err != nil {
		fmt.Fprintf(os.Stderr, "thicket: %v\n", err)
		os.Exit(1)
	}
}

func run(scenePath, configPath string, watch, debug bool, testScript string) error {
	if scenePath == "" {
		return fmt.Errorf("-scene is required")
	}

	cfg := thicket.DefaultConfig()
	if configPath != "" {
		var err error
		if cfg, err = thicket.LoadConfig(configPath); err != nil {
			return err
		}
	}
	if debug {
		cfg.Loop.Debug = true
		cfg.Logging.Level = "debug"
	}

	log, err := thicket.NewLogger(cfg.Logging)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync()

	eng := thicket.NewEngine(thicket.SceneConfig{Logger: log})
	if _, err := scenefile.LoadScene(eng.Scene, scenePath); err != nil {
		return err
	}

	game, err := thicket.NewGame(eng, cfg)
	if err != nil {
		return err
	}

	var runner *thicket.TestRunner
	if testScript != "" {
		data, err := os.ReadFile(testScript)
		if err != nil {
			return fmt.Errorf("read test script: %w", err)
		}
		if runner, err = thicket.LoadTestScript(data); err != nil {
			return err
		}
		eng.SetTestRunner(runner)
	}

	var watcher *scenefile.Watcher
	if watch {
		dir := filepath.Dir(scenePath)
		if watcher, err = scenefile.NewWatcher(dir); err != nil {
			return fmt.Errorf("watch %s: %w", dir, err)
		}
		defer watcher.Close()
		log.Info("watching for changes", zap.String("dir", dir))
	}

	game.BeforeTick = func(e *thicket.Engine) error {
		if runner != nil && runner.Done() {
			return ebiten.Termination
		}
		if watcher == nil {
			return nil
		}
		select {
		case err := <-watcher.Errors:
			if err != nil {
				log.Warn("watcher error", zap.Error(err))
			}
		default:
		}
		changed := watcher.Drain()
		if len(changed) == 0 {
			return nil
		}
		log.Info("reloading scene", zap.Strings("changed", changed))
		reload(e, scenePath, log)
		return nil
	}

	return thicket.RunGame(game)
}

// reload rebuilds the scene from disk. A broken file keeps the running
// scene.
func reload(e *thicket.Engine, scenePath string, log *zap.Logger) {
	next := e.NewScene()
	if _, err := scenefile.LoadScene(next, scenePath); err != nil {
		log.Error("reload failed, keeping current scene", zap.Error(err))
		return
	}
	e.SetScene(next)
}
