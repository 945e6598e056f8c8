package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func createTestBody(x, y float64) *Body {
	return NewBody(x, y, BodyParams{
		Width:       100,
		Height:      100,
		Speed:       5,
		Gravity:     0.5,
		JumpImpulse: -10,
	})
}

func TestBody_Integrate_Horizontal(t *testing.T) {
	tests := []struct {
		name  string
		in    Controls
		wantX float64
	}{
		{"no input", Controls{}, 50},
		{"left", Controls{Left: true}, 45},
		{"right", Controls{Right: true}, 55},
		{"left and right cancel", Controls{Left: true, Right: true}, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b := createTestBody(50, 50)
			b.Integrate(tt.in)
			assert.Equal(t, tt.wantX, b.X)
		})
	}
}

func TestBody_Integrate_GravityAccumulates(t *testing.T) {
	b := createTestBody(50, 50)

	for i := 1; i <= 10; i++ {
		before := b.VY
		b.Integrate(Controls{})
		assert.Equal(t, before+0.5, b.VY, "frame %d", i)
	}
	// 0.5 * (1+2+...+10)
	assert.InDelta(t, 50+27.5, b.Y, 1e-9)
}

func TestBody_Integrate_JumpWhenGrounded(t *testing.T) {
	b := createTestBody(0, 200)

	b.Integrate(Controls{Jump: true})

	assert.Equal(t, -9.5, b.VY, "impulse then gravity")
	assert.Equal(t, 190.5, b.Y)
}

func TestBody_Integrate_AirborneJumpIgnored(t *testing.T) {
	b := createTestBody(0, 200)
	b.VY = 3

	b.Integrate(Controls{Jump: true})

	assert.Equal(t, 3.5, b.VY)
}

func TestBody_Integrate_RisingJumpIgnored(t *testing.T) {
	b := createTestBody(0, 200)
	b.VY = -4

	b.Integrate(Controls{Jump: true})

	assert.Equal(t, -3.5, b.VY)
}

func TestBody_RectAndPlace(t *testing.T) {
	b := createTestBody(10, 20)
	b.VY = 7

	assert.Equal(t, Rect{X: 10, Y: 20, W: 100, H: 100}, b.Rect())
	assert.False(t, b.Grounded())

	b.Place(300, 400)
	assert.Equal(t, 300.0, b.X)
	assert.Equal(t, 400.0, b.Y)
	assert.True(t, b.Grounded())
}
