package entity

import "image/color"

// AppearanceKind selects how an entity is drawn
type AppearanceKind int

const (
	AppearanceRect AppearanceKind = iota
	AppearanceSprite
)

// String returns the string representation of the appearance kind
func (k AppearanceKind) String() string {
	switch k {
	case AppearanceRect:
		return "Rect"
	case AppearanceSprite:
		return "Sprite"
	default:
		return "Unknown"
	}
}

// Appearance is a tagged variant: a filled rectangle or a sprite image.
// Image is an opaque asset reference only meaningful for AppearanceSprite.
type Appearance struct {
	Kind  AppearanceKind
	Color color.RGBA
	Image string
}

// RectAppearance returns a filled-rectangle appearance
func RectAppearance(c color.RGBA) Appearance {
	return Appearance{Kind: AppearanceRect, Color: c}
}

// SpriteAppearance returns a sprite appearance for an image reference
func SpriteAppearance(ref string) Appearance {
	return Appearance{Kind: AppearanceSprite, Image: ref}
}
