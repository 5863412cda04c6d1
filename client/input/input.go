package input

import (
	"github.com/cbodonnell/swipeduel/pkg/kinematic"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// CursorPointer reports the mouse cursor while the left button is held,
// or the first touch, as the controlling pointer.
type CursorPointer struct {
	touchIDs []ebiten.TouchID
}

func NewCursorPointer() *CursorPointer {
	return &CursorPointer{}
}

// Poll must be called from ebiten's Update.
func (p *CursorPointer) Poll() (kinematic.Vector, bool) {
	if ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		return kinematic.Vector{X: float64(x), Y: float64(y)}, true
	}
	p.touchIDs = ebiten.AppendTouchIDs(p.touchIDs[:0])
	if len(p.touchIDs) > 0 {
		x, y := ebiten.TouchPosition(p.touchIDs[0])
		return kinematic.Vector{X: float64(x), Y: float64(y)}, true
	}
	return kinematic.Vector{}, false
}

// IsRestartJustPressed returns a boolean value indicating whether the restart key is just pressed.
func IsRestartJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyR)
}

// IsNegativeJustPressed returns a boolean value indicating whether the generic negative input is just pressed.
func IsNegativeJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyEscape)
}

// IsDebugJustPressed toggles the debug overlay.
func IsDebugJustPressed() bool {
	return inpututil.IsKeyJustPressed(ebiten.KeyF3)
}
