package entity

// TileID identifies a tile material in level data. 0 is empty.
type TileID int

// TileEmpty is the identifier of an empty cell
const TileEmpty TileID = 0

// Tag names an entity or tile class for trigger dispatch
type Tag string

const (
	TagPlayer      Tag = "player"
	TagEnemy       Tag = "enemy"
	TagHazard      Tag = "hazard"
	TagPlayerStart Tag = "player-start"
)

// Rect is an axis-aligned rectangle in world coordinates
type Rect struct {
	X, Y float64
	W, H float64
}

// Left returns the x coordinate of the left edge
func (r Rect) Left() float64 { return r.X }

// Right returns the x coordinate of the right edge
func (r Rect) Right() float64 { return r.X + r.W }

// Top returns the y coordinate of the top edge
func (r Rect) Top() float64 { return r.Y }

// Bottom returns the y coordinate of the bottom edge
func (r Rect) Bottom() float64 { return r.Y + r.H }

// Intersects reports whether two rectangles overlap.
// Rectangles that only share an edge do not intersect.
func (r Rect) Intersects(o Rect) bool {
	return r.X < o.X+o.W && r.X+r.W > o.X &&
		r.Y < o.Y+o.H && r.Y+r.H > o.Y
}
