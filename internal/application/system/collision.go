package system

import "github.com/younwookim/tilejump/internal/domain/entity"

// Touch is one solid cell the body intersected this frame
type Touch struct {
	Row, Col int
	ID       entity.TileID
}

// Result is the per-frame outcome of collision resolution.
// It is recomputed every frame and not retained.
type Result struct {
	Touched []Touch
	Enemies []EnemyTouch
}

// Collided reports whether the body intersected any solid cell this frame
func (r Result) Collided() bool {
	return len(r.Touched) > 0
}

// Resolver corrects an integrated body against the grid.
//
// Every nonzero cell is tested in row-major order and each intersecting cell
// corrects the body immediately, so with several overlaps the cell scanned
// last decides the final position. Horizontal correction follows the held
// direction, not the side that actually overlapped.
type Resolver struct{}

// NewResolver creates a collision resolver
func NewResolver() *Resolver {
	return &Resolver{}
}

// Resolve corrects body in place and returns every cell it touched
func (r *Resolver) Resolve(body *entity.Body, in entity.Controls, grid *entity.Grid) Result {
	var res Result

	grid.EachSolid(func(row, col int, id entity.TileID) bool {
		tile := grid.RectOf(row, col)
		if !body.Rect().Intersects(tile) {
			return true
		}

		if body.VY > 0 {
			body.Y = tile.Top() - body.Height
			body.VY = 0
		} else if body.VY < 0 {
			body.Y = tile.Bottom()
			body.VY = 0
		}

		// TODO: correct along the penetration side instead of the held direction
		if in.Left {
			body.X = tile.Right()
		}
		if in.Right {
			body.X = tile.Left() - body.Width
		}

		res.Touched = append(res.Touched, Touch{Row: row, Col: col, ID: id})
		return true
	})

	return res
}
