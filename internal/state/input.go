// internal/state/input.go
package state

import (
	"math"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"golang.org/x/time/rate"

	"go-tile-sandbox/internal/app"
)

// dragThreshold is how far the cursor must travel with the button held
// before a press counts as a drag instead of a click.
const dragThreshold = 5

// mouseTracker turns raw ebiten mouse state into app.Input.
type mouseTracker struct {
	clicks *rate.Limiter

	lastX, lastY   float64
	pressX, pressY float64
	pressed        bool
	dragging       bool
}

func newMouseTracker(cooldown time.Duration) *mouseTracker {
	return &mouseTracker{clicks: rate.NewLimiter(rate.Every(cooldown), 1)}
}

// poll reads the mouse. Clicks faster than the cooldown are dropped.
func (m *mouseTracker) poll() app.Input {
	cx, cy := ebiten.CursorPosition()
	x, y := float64(cx), float64(cy)
	in := app.Input{MouseX: x, MouseY: y, Moved: x != m.lastX || y != m.lastY}

	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		m.pressed, m.dragging = true, false
		m.pressX, m.pressY = x, y
	}
	if m.pressed && ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		if !m.dragging && math.Hypot(x-m.pressX, y-m.pressY) > dragThreshold {
			m.dragging = true
			// pan by the whole distance travelled so far
			in.DragDX, in.DragDY = x-m.pressX, y-m.pressY
		} else if m.dragging {
			in.DragDX, in.DragDY = x-m.lastX, y-m.lastY
		}
	}
	if inpututil.IsMouseButtonJustReleased(ebiten.MouseButtonLeft) {
		if m.pressed && !m.dragging && m.clicks.Allow() {
			in.Clicked = true
		}
		m.pressed, m.dragging = false, false
	}

	_, wy := ebiten.Wheel()
	in.Wheel = wy

	m.lastX, m.lastY = x, y
	return in
}
