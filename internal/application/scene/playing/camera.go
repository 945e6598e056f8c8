package playing

import (
	"math"

	"github.com/younwookim/tilejump/internal/domain/entity"
)

// Camera is the world-space top-left corner of the visible area
type Camera struct {
	X, Y    float64
	screenW float64
	screenH float64
}

// NewCamera creates a camera for a screen of the given size in world units
func NewCamera(screenW, screenH float64) Camera {
	return Camera{screenW: screenW, screenH: screenH}
}

// Follow centers the camera on target, clamped to the world bounds.
// A world smaller than the screen is pinned to the top-left corner.
func (c *Camera) Follow(target entity.Rect, worldW, worldH float64) {
	c.X = clamp(target.X+target.W/2-c.screenW/2, 0, worldW-c.screenW)
	c.Y = clamp(target.Y+target.H/2-c.screenH/2, 0, worldH-c.screenH)
}

// View returns the visible world rectangle
func (c Camera) View() entity.Rect {
	return entity.Rect{X: c.X, Y: c.Y, W: c.screenW, H: c.screenH}
}

// ToScreen translates a world rectangle to screen coordinates
func (c Camera) ToScreen(r entity.Rect) entity.Rect {
	r.X -= c.X
	r.Y -= c.Y
	return r
}

// VisibleCells returns the half-open cell range [r0,r1)x[c0,c1) under the view
func (c Camera) VisibleCells(g *entity.Grid) (r0, r1, c0, c1 int) {
	size := g.CellSize()
	c0 = max(int(math.Floor(c.X/size)), 0)
	r0 = max(int(math.Floor(c.Y/size)), 0)
	c1 = min(int(math.Ceil((c.X+c.screenW)/size)), g.Cols())
	r1 = min(int(math.Ceil((c.Y+c.screenH)/size)), g.Rows())
	return r0, r1, c0, c1
}

func clamp(v, lo, hi float64) float64 {
	if v > hi {
		v = hi
	}
	if v < lo {
		v = lo
	}
	return v
}
