package entity

// Controls is the per-frame input snapshot relevant to a body
type Controls struct {
	Left  bool
	Right bool
	Jump  bool
}

// BodyParams holds the fixed physical constants of a body
type BodyParams struct {
	Width       float64
	Height      float64
	Speed       float64 // horizontal displacement per frame
	Gravity     float64 // added to VY every frame
	JumpImpulse float64 // VY set on jump, negative is up
}

// Body is a kinematic axis-aligned box.
// Position is the top-left corner in world units. Horizontal velocity is
// not stored: it is derived from Controls each frame.
type Body struct {
	X, Y float64
	VY   float64

	BodyParams
}

// NewBody creates a resting body at (x, y)
func NewBody(x, y float64, params BodyParams) *Body {
	return &Body{X: x, Y: y, BodyParams: params}
}

// Rect returns the bounding rectangle at the current position
func (b *Body) Rect() Rect {
	return Rect{X: b.X, Y: b.Y, W: b.Width, H: b.Height}
}

// Grounded reports whether the body is resting vertically.
// A zero vertical velocity is the only grounded signal.
func (b *Body) Grounded() bool {
	return b.VY == 0
}

// Integrate advances the body by one fixed frame without looking at level
// geometry. Velocity is updated before position.
func (b *Body) Integrate(in Controls) {
	// Left then right: holding both cancels out.
	dx := 0.0
	if in.Left {
		dx -= b.Speed
	}
	if in.Right {
		dx += b.Speed
	}

	if in.Jump && b.Grounded() {
		b.VY = b.JumpImpulse
	}
	b.VY += b.Gravity

	b.X += dx
	b.Y += b.VY
}

// Place moves the body to (x, y) and clears its vertical velocity
func (b *Body) Place(x, y float64) {
	b.X = x
	b.Y = y
	b.VY = 0
}
