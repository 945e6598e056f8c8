// Package render provides the draw surface the gameplay scene draws through.
//
// Coordinates passed to a Renderer are screen coordinates: the caller has
// already applied the camera offset.
package render

import (
	"image"
	"image/color"

	"github.com/younwookim/tilejump/internal/domain/entity"
)

// Renderer is the per-frame drawing capability.
// It is write-only: callers never read pixels back.
type Renderer interface {
	Clear(c color.Color)
	DrawTile(ref string, x, y float64)
	// DrawSprite draws the image scaled to r
	DrawSprite(ref string, r entity.Rect)
	DrawRect(c color.Color, r entity.Rect)
	Present()
}

// TextDrawer is implemented by renderers that can print debug text
type TextDrawer interface {
	DrawText(s string, x, y float64)
}

// Images resolves asset references to decoded images.
// *asset.Library satisfies it.
type Images interface {
	Image(ref string) image.Image
}
