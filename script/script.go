// Package script runs tengo gameplay scripts as thicket behaviours.
//
// A script defines any of the hooks start, update and fixed_update. Each
// takes the engine map:
//
//	speed := 120
//
//	update := func(engine) {
//		if engine.is_hold("key-arrowright") {
//			engine.translate(speed * engine.dt(), 0, 0)
//		}
//	}
//
// Top-level statements run again before every hook call, so values that
// must survive between frames belong in engine.state.
package script

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"
	"github.com/phanxgames/thicket"
	"go.uber.org/zap"
)

// Hook names a script may define.
const (
	HookStart       = "start"
	HookUpdate      = "update"
	HookFixedUpdate = "fixed_update"
)

var hookNames = []string{HookStart, HookUpdate, HookFixedUpdate}

// Behaviour is a component that forwards the scene lifecycle to a compiled
// tengo script. A script error is logged and disables the behaviour.
type Behaviour struct {
	thicket.Behaviour

	Name string

	compiled *tengo.Compiled
	hooks    map[string]bool
	state    *tengo.Map
	engine   *tengo.ImmutableMap
}

// New compiles src. name identifies the script in logs and errors.
func New(name string, src []byte) (*Behaviour, error) {
	hooks, err := definedHooks(src)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	compiled, err := compile(src, hooks)
	if err != nil {
		return nil, fmt.Errorf("script %s: %w", name, err)
	}
	return &Behaviour{
		Name:     name,
		compiled: compiled,
		hooks:    hooks,
		state:    &tengo.Map{Value: map[string]tengo.Object{}},
	}, nil
}

// Load reads and compiles the script at path.
func Load(path string) (*Behaviour, error) {
	src, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("script: load %s: %w", path, err)
	}
	return New(filepath.Base(path), src)
}

// Kind implements thicket.Component.
func (b *Behaviour) Kind() thicket.Kind { return thicket.KindScript }

// Defines reports whether the script defines hook.
func (b *Behaviour) Defines(hook string) bool {
	return b.hooks[hook]
}

// State returns the value stored under key in engine.state, converted to
// Go values, or nil.
func (b *Behaviour) State(key string) any {
	return objectToAny(b.state.Value[key])
}

// Awake builds the engine map bound to the owning object.
func (b *Behaviour) Awake() {
	b.engine = buildEngine(b)
}

func (b *Behaviour) Start()       { b.run(HookStart) }
func (b *Behaviour) Update()      { b.run(HookUpdate) }
func (b *Behaviour) FixedUpdate() { b.run(HookFixedUpdate) }

func (b *Behaviour) run(hook string) {
	if !b.hooks[hook] || b.engine == nil {
		return
	}
	if err := b.runPhase(hook); err != nil {
		b.logger().Error("script error, disabling",
			zap.String("script", b.Name),
			zap.String("hook", hook),
			zap.String("object", b.objectName()),
			zap.Error(err),
		)
		b.SetEnabled(false)
	}
}

func (b *Behaviour) runPhase(phase string) error {
	if err := b.compiled.Set("__phase", phase); err != nil {
		return err
	}
	if err := b.compiled.Set("__engine", b.engine); err != nil {
		return err
	}
	return b.compiled.Run()
}

func (b *Behaviour) logger() *zap.Logger {
	if s := b.Scene(); s != nil {
		return s.Logger()
	}
	return zap.NewNop()
}

func (b *Behaviour) objectName() string {
	if obj := b.GameObject(); obj != nil {
		return obj.Name
	}
	return ""
}

// definedHooks runs the bare source once and reports which hooks it
// defines. Referencing an undefined hook would not compile, so the dispatch
// code is only generated for these.
func definedHooks(src []byte) (map[string]bool, error) {
	s := tengo.NewScript(src)
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	compiled, err := s.Compile()
	if err != nil {
		return nil, err
	}
	if err := compiled.Run(); err != nil {
		return nil, err
	}
	hooks := make(map[string]bool, len(hookNames))
	for _, name := range hookNames {
		if !compiled.IsDefined(name) {
			continue
		}
		if _, ok := compiled.Get(name).Object().(*tengo.CompiledFunction); ok {
			hooks[name] = true
		}
	}
	return hooks, nil
}

func compile(src []byte, hooks map[string]bool) (*tengo.Compiled, error) {
	var dispatch strings.Builder
	for _, name := range hookNames {
		if !hooks[name] {
			continue
		}
		fmt.Fprintf(&dispatch, "if __phase == %q {\n\t%s(__engine)\n}\n", name, name)
	}

	full := string(src) + "\n" + dispatch.String()
	s := tengo.NewScript([]byte(full))
	_ = s.Add("__phase", "")
	_ = s.Add("__engine", map[string]any{})
	s.SetImports(stdlib.GetModuleMap(stdlib.AllModuleNames()...))
	return s.Compile()
}
