package config

import (
	"fmt"
	"io/fs"
	"strconv"
	"strings"

	"github.com/lafriks/go-tiled"
)

// TMX level layout:
//   - tile layer "tiles": grid cells, the cell id is the tile GID
//   - tileset tile properties "image" and "tag": tileset and tileTags entries
//   - object group "playerStart": first object is the spawn point
//   - object group "enemies": one object per enemy (properties sprite, color, tag)
//   - object group "triggers": properties on, tag, reaction, level, target, message, script, repeat
const (
	tmxTileLayer    = "tiles"
	tmxSpawnGroup   = "playerStart"
	tmxEnemyGroup   = "enemies"
	tmxTriggerGroup = "triggers"
)

func loadTMX(fsys fs.FS, p string) (*LevelConfig, error) {
	levelMap, err := tiled.LoadFile(p, tiled.WithFileSystem(fsys))
	if err != nil {
		return nil, fmt.Errorf("load TMX %s: %w", p, err)
	}
	if levelMap.TileWidth != levelMap.TileHeight {
		return nil, fmt.Errorf("load TMX %s: tiles must be square, got %dx%d", p, levelMap.TileWidth, levelMap.TileHeight)
	}

	cfg := &LevelConfig{
		ID:       levelIDFromStem(levelStem(p)),
		CellSize: float64(levelMap.TileWidth),
		Tileset:  make(map[int]string),
		TileTags: make(map[int]string),
	}

	var layer *tiled.Layer
	for _, l := range levelMap.Layers {
		if l.Name == tmxTileLayer {
			layer = l
			break
		}
	}
	if layer == nil {
		return nil, fmt.Errorf("load TMX %s: missing %q tile layer", p, tmxTileLayer)
	}

	cfg.Tiles = make([][]int, levelMap.Height)
	for y := 0; y < levelMap.Height; y++ {
		cfg.Tiles[y] = make([]int, levelMap.Width)
		for x := 0; x < levelMap.Width; x++ {
			tile := layer.Tiles[y*levelMap.Width+x]
			if tile.IsNil() {
				continue
			}
			gid := int(tile.Tileset.FirstGID + tile.ID)
			cfg.Tiles[y][x] = gid

			if _, seen := cfg.Tileset[gid]; seen {
				continue
			}
			tilesetTile, err := tile.Tileset.GetTilesetTile(tile.ID)
			if err != nil {
				cfg.Tileset[gid] = ""
				continue
			}
			cfg.Tileset[gid] = tilesetTile.Properties.GetString("image")
			if tag := tilesetTile.Properties.GetString("tag"); tag != "" {
				cfg.TileTags[gid] = tag
			}
		}
	}

	for _, og := range levelMap.ObjectGroups {
		switch og.Name {
		case tmxSpawnGroup:
			if len(og.Objects) > 0 {
				o := og.Objects[0]
				cfg.PlayerStart = &PositionConfig{X: o.X, Y: o.Y}
			}
		case tmxEnemyGroup:
			for _, o := range og.Objects {
				cfg.Enemies = append(cfg.Enemies, EnemySpawnConfig{
					X:      o.X,
					Y:      o.Y,
					Width:  o.Width,
					Height: o.Height,
					Sprite: o.Properties.GetString("sprite"),
					Color:  o.Properties.GetString("color"),
					Tag:    o.Properties.GetString("tag"),
				})
			}
		case tmxTriggerGroup:
			for _, o := range og.Objects {
				repeat, err := parseRepeat(o.Properties.GetString("repeat"))
				if err != nil {
					return nil, fmt.Errorf("load TMX %s: trigger object %d: %w", p, o.ID, err)
				}
				cfg.Triggers = append(cfg.Triggers, TriggerConfig{
					On:       o.Properties.GetString("on"),
					Tag:      o.Properties.GetString("tag"),
					Reaction: o.Properties.GetString("reaction"),
					Level:    o.Properties.GetInt("level"),
					Target:   o.Properties.GetString("target"),
					Message:  o.Properties.GetString("message"),
					Script:   o.Properties.GetString("script"),
					Repeat:   repeat,
				})
			}
		}
	}

	return cfg, nil
}

// parseRepeat reads a trigger repeat property. Empty means unset.
// Unbounded ("*") and other non-integer values are rejected.
func parseRepeat(v string) (int, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", ErrInvalidRepeat, v)
	}
	return n, nil
}

// levelIDFromStem parses "level3" into 3; other stems yield 0
func levelIDFromStem(stem string) int {
	n, err := strconv.Atoi(strings.TrimPrefix(stem, "level"))
	if err != nil {
		return 0
	}
	return n
}
