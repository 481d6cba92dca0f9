package thicket

import (
	"time"

	"go.uber.org/zap"
)

// frameStats holds per-frame timing and dispatch counts.
// Only populated when the scene is in debug mode.
type frameStats struct {
	updateTime      time.Duration
	fixedUpdateTime time.Duration
	renderTime      time.Duration
	fixedTick       bool
	objectCount     int
	componentCount  int
	drawableCount   int
}

// debugLog writes frame stats to the scene logger at debug level.
func (s *Scene) debugLog(stats frameStats) {
	if !s.debug {
		return
	}
	total := stats.updateTime + stats.fixedUpdateTime + stats.renderTime
	s.log.Debug("frame",
		zap.Duration("update", stats.updateTime),
		zap.Duration("fixed_update", stats.fixedUpdateTime),
		zap.Duration("render", stats.renderTime),
		zap.Duration("total", total),
		zap.Bool("fixed_tick", stats.fixedTick),
		zap.Int("objects", stats.objectCount),
		zap.Int("components", stats.componentCount),
		zap.Int("drawables", stats.drawableCount),
	)
}

// countDrawables counts the components that paint into the view.
func countDrawables(components []Component) int {
	n := 0
	for _, c := range components {
		if _, ok := c.(Drawable); ok {
			n++
		}
	}
	return n
}

// debugMaxTreeDepth is the ancestor depth above which a warning is logged.
const debugMaxTreeDepth = 32

func debugCheckTreeDepth(s *Scene, t *Transform) {
	depth := 1
	for id := t.parent; id != RootID; depth++ {
		obj := s.pool.get(id)
		if obj == nil {
			break
		}
		id = obj.transform.parent
	}
	if depth > debugMaxTreeDepth {
		s.log.Warn("tree depth exceeds threshold",
			zap.Int("depth", depth),
			zap.Int("threshold", debugMaxTreeDepth),
			zap.Stringer("object", t.owner),
		)
	}
}

// debugMaxChildCount is the child count above which a warning is logged.
const debugMaxChildCount = 1000

func debugCheckChildCount(s *Scene, p Positionable) {
	if n := len(*p.childIDs()); n > debugMaxChildCount {
		s.log.Warn("child count exceeds threshold",
			zap.Int("children", n),
			zap.Int("threshold", debugMaxChildCount),
			zap.Stringer("parent", p.handle()),
		)
	}
}
