package ecs

import (
	"image/color"

	"golang.org/x/image/colornames"

	"github.com/younwookim/tilejump/internal/domain/entity"
)

// DefaultEnemyColor is used for enemies drawn as plain rectangles
var DefaultEnemyColor = color.RGBA(colornames.Red)

// Bounds is the world-space box of a static entity
type Bounds = entity.Rect

// EnemyConfig holds configuration for creating an enemy
type EnemyConfig struct {
	X, Y          float64
	Width, Height float64
	Tag           entity.Tag
	Appearance    entity.Appearance
}

func (c EnemyConfig) tag() entity.Tag {
	if c.Tag == "" {
		return entity.TagEnemy
	}
	return c.Tag
}
