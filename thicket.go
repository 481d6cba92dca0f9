package thicket

import (
	"errors"
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"golang.org/x/image/colornames"
)

// Configuration errors. These indicate a scene-construction bug and are
// returned (or panicked by the Must helpers) as soon as they are detected.
var (
	ErrComponentNotFound  = errors.New("thicket: component not found")
	ErrDuplicateComponent = errors.New("thicket: duplicate unique component")
	ErrUnregisteredKind   = errors.New("thicket: component kind not in order table")
	ErrAlreadyAttached    = errors.New("thicket: component already attached")
	ErrRootImmutable      = errors.New("thicket: scene root cannot be moved")
	ErrCycle              = errors.New("thicket: reparenting would create a cycle")
	ErrForeignParent      = errors.New("thicket: parent belongs to another scene")
	ErrDestroyed          = errors.New("thicket: game object was destroyed")
)

// Soft errors returned by coordinate conversions when the scene has no
// surface or no active view yet. Rendering treats both as "draw nothing".
var (
	ErrNoSurface = errors.New("thicket: scene surface is not set")
	ErrNoView    = errors.New("thicket: scene view is not set")
)

// Built-in component kinds.
const (
	KindTransform          Kind = "transform"
	KindCamera             Kind = "camera"
	KindCollider           Kind = "collider"
	KindRigidbody          Kind = "rigidbody"
	KindSpriteRenderer     Kind = "sprite"
	KindColliderVisualizer Kind = "collider-visualizer"
	KindTween              Kind = "tween"
	KindScript             Kind = "script"
)

// ParseColor resolves a CSS color name ("black", "cornflowerblue") or a
// "#rrggbb" / "#rrggbbaa" hex string.
func ParseColor(s string) (color.NRGBA, error) {
	s = strings.TrimSpace(strings.ToLower(s))
	if s == "" {
		return color.NRGBA{}, fmt.Errorf("parse color: empty")
	}
	if c, ok := colornames.Map[s]; ok {
		return color.NRGBA{R: c.R, G: c.G, B: c.B, A: c.A}, nil
	}
	if s == "transparent" {
		return color.NRGBA{}, nil
	}
	if !strings.HasPrefix(s, "#") {
		return color.NRGBA{}, fmt.Errorf("parse color %q: unknown name", s)
	}
	hex := s[1:]
	if len(hex) != 6 && len(hex) != 8 {
		return color.NRGBA{}, fmt.Errorf("parse color %q: want #rrggbb or #rrggbbaa", s)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse color %q: %w", s, err)
	}
	if len(hex) == 6 {
		v = v<<8 | 0xff
	}
	return color.NRGBA{R: uint8(v >> 24), G: uint8(v >> 16), B: uint8(v >> 8), A: uint8(v)}, nil
}
