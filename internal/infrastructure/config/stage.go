package config

import (
	"errors"
	"fmt"
)

var (
	// ErrCellSizeMismatch is returned when a level's cell size differs from the game's
	ErrCellSizeMismatch = errors.New("level cell size does not match game cell size")
	// ErrInvalidRepeat is returned for a trigger repeat count that is not a bounded integer
	ErrInvalidRepeat = errors.New("invalid trigger repeat")
)

// LevelConfig is the root config for a level file (YAML or TMX)
type LevelConfig struct {
	ID          int                `yaml:"id"`
	Name        string             `yaml:"name"`
	CellSize    float64            `yaml:"cellSize,omitempty"`
	Tiles       [][]int            `yaml:"tiles"`
	Tileset     map[int]string     `yaml:"tileset"`
	TileTags    map[int]string     `yaml:"tileTags"`
	PlayerStart *PositionConfig    `yaml:"playerStart,omitempty"`
	Enemies     []EnemySpawnConfig `yaml:"enemies"`
	Triggers    []TriggerConfig    `yaml:"triggers"`
}

type PositionConfig struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

type EnemySpawnConfig struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
	Sprite string  `yaml:"sprite,omitempty"`
	Color  string  `yaml:"color,omitempty"`
	Tag    string  `yaml:"tag,omitempty"`
}

// TriggerConfig registers one reaction under (On, Tag).
// Which of Level, Target, Message and Script apply depends on Reaction.
type TriggerConfig struct {
	On       string `yaml:"on"`
	Tag      string `yaml:"tag"`
	Reaction string `yaml:"reaction"`
	Level    int    `yaml:"level,omitempty"`
	Target   string `yaml:"target,omitempty"`
	Message  string `yaml:"message,omitempty"`
	Script   string `yaml:"script,omitempty"`
	Repeat   int    `yaml:"repeat,omitempty"`
}

// ResolveCellSize returns the cell size the level must be built with.
// A level without its own cell size inherits the game's.
func (c *LevelConfig) ResolveCellSize(game float64) (float64, error) {
	if c.CellSize == 0 || c.CellSize == game {
		return game, nil
	}
	return 0, fmt.Errorf("%w: level %q uses %v, game uses %v", ErrCellSizeMismatch, c.Name, c.CellSize, game)
}
