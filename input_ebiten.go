package thicket

import (
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// mouseButtonNames maps ebiten mouse buttons to input key names.
var mouseButtonNames = map[ebiten.MouseButton]string{
	ebiten.MouseButtonLeft:   MouseLeft,
	ebiten.MouseButtonMiddle: MouseMiddle,
	ebiten.MouseButtonRight:  MouseRight,
	ebiten.MouseButton3:      MouseFn1,
	ebiten.MouseButton4:      MouseFn2,
}

// KeyName returns the input table name of an ebiten key, e.g. "key-space",
// "key-a", "key-arrowleft".
func KeyName(k ebiten.Key) string {
	return "key-" + strings.ToLower(k.String())
}

// Poll translates this frame's ebiten keyboard and mouse transitions into
// Press/Release events and records the cursor position. Call it once per
// frame after BeginFrame.
func (in *Input) Poll() {
	var keys []ebiten.Key
	keys = inpututil.AppendJustPressedKeys(keys[:0])
	for _, k := range keys {
		in.Press(KeyName(k))
	}
	keys = inpututil.AppendJustReleasedKeys(keys[:0])
	for _, k := range keys {
		in.Release(KeyName(k))
	}
	for b, name := range mouseButtonNames {
		if inpututil.IsMouseButtonJustPressed(b) {
			in.Press(name)
		}
		if inpututil.IsMouseButtonJustReleased(b) {
			in.Release(name)
		}
	}
	x, y := ebiten.CursorPosition()
	in.SetMousePosition(Vector3{X: float64(x), Y: float64(y)})
}
