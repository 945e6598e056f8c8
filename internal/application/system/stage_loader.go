package system

import (
	"errors"
	"fmt"
	"math"

	"github.com/charmbracelet/log"

	"github.com/younwookim/tilejump/internal/application/state"
	"github.com/younwookim/tilejump/internal/domain/entity"
	"github.com/younwookim/tilejump/internal/ecs"
	"github.com/younwookim/tilejump/internal/infrastructure/asset"
	"github.com/younwookim/tilejump/internal/infrastructure/config"
	"github.com/younwookim/tilejump/internal/infrastructure/palette"
)

// ErrSpawnBlocked is returned when the player would start inside solid cells
var ErrSpawnBlocked = errors.New("player spawn overlaps solid cells")

// AssetLoader resolves image paths to references, falling back to a placeholder
type AssetLoader interface {
	Load(path string) string
	LoadTileset(paths map[int]string) map[int]string
}

// Level is a validated level ready for the frame loop
type Level struct {
	ID   state.LevelID
	Name string

	Grid     *entity.Grid
	TileTags map[entity.TileID]entity.Tag
	tileRefs map[entity.TileID]string

	SpawnX, SpawnY float64
	Enemies        []ecs.EnemyConfig

	Dispatcher *Dispatcher
}

// TileRef returns the image reference for a tile id
func (l *Level) TileRef(id entity.TileID) string {
	if ref, ok := l.tileRefs[id]; ok {
		return ref
	}
	return asset.PlaceholderRef
}

// TagOf returns the tag of a tile id, if any
func (l *Level) TagOf(id entity.TileID) (entity.Tag, bool) {
	tag, ok := l.TileTags[id]
	return tag, ok
}

// LoadLevel converts a LevelConfig into a Level. Malformed data is rejected
// here so the frame loop never starts with an inconsistent grid.
func LoadLevel(cfg *config.LevelConfig, game *config.GameConfig, assets AssetLoader, logger *log.Logger) (*Level, error) {
	cellSize, err := cfg.ResolveCellSize(game.Physics.CellSize)
	if err != nil {
		return nil, err
	}

	level := &Level{
		ID:         state.LevelID(cfg.ID),
		Name:       cfg.Name,
		TileTags:   make(map[entity.TileID]entity.Tag, len(cfg.TileTags)),
		tileRefs:   make(map[entity.TileID]string, len(cfg.Tileset)),
		Dispatcher: NewDispatcher(logger),
	}
	for id, tag := range cfg.TileTags {
		level.TileTags[entity.TileID(id)] = entity.Tag(tag)
	}

	if cfg.PlayerStart != nil {
		level.SpawnX, level.SpawnY = cfg.PlayerStart.X, cfg.PlayerStart.Y
	}

	// Player-start cells set the spawn and become empty.
	rows := make([][]entity.TileID, len(cfg.Tiles))
	startFound := false
	for r, row := range cfg.Tiles {
		rows[r] = make([]entity.TileID, len(row))
		for c, v := range row {
			id := entity.TileID(v)
			if level.TileTags[id] == entity.TagPlayerStart {
				if startFound {
					logger.Warn("extra player-start cell ignored", "level", cfg.Name, "row", r, "col", c)
				} else {
					level.SpawnX, level.SpawnY = float64(c)*cellSize, float64(r)*cellSize
					startFound = true
				}
				id = entity.TileEmpty
			}
			rows[r][c] = id
		}
	}

	level.Grid, err = entity.NewGrid(rows, cellSize)
	if err != nil {
		return nil, fmt.Errorf("level %q: %w", cfg.Name, err)
	}

	spawn := entity.Rect{X: level.SpawnX, Y: level.SpawnY, W: game.Player.Width, H: game.Player.Height}
	if spawnBlocked(level.Grid, spawn) {
		return nil, fmt.Errorf("level %q: %w at (%v, %v)", cfg.Name, ErrSpawnBlocked, level.SpawnX, level.SpawnY)
	}

	for id, ref := range assets.LoadTileset(cfg.Tileset) {
		level.tileRefs[entity.TileID(id)] = ref
	}

	for i, e := range cfg.Enemies {
		level.Enemies = append(level.Enemies, buildEnemy(e, cellSize, assets, logger, cfg.Name, i))
	}

	for i, tc := range cfg.Triggers {
		trigger, err := BuildTrigger(tc)
		if err != nil {
			return nil, fmt.Errorf("level %q: trigger %d: %w", cfg.Name, i, err)
		}
		level.Dispatcher.Register(trigger.Kind, trigger.Tag, trigger.Reaction)
	}

	logger.Info("level loaded",
		"level", level.Name,
		"id", level.ID,
		"rows", level.Grid.Rows(),
		"cols", level.Grid.Cols(),
		"enemies", len(level.Enemies),
		"triggers", len(cfg.Triggers))

	return level, nil
}

// buildEnemy resolves the enemy appearance once: a sprite when a path is
// configured, otherwise a colored rectangle
func buildEnemy(e config.EnemySpawnConfig, cellSize float64, assets AssetLoader, logger *log.Logger, levelName string, index int) ecs.EnemyConfig {
	w, h := e.Width, e.Height
	if w <= 0 {
		w = cellSize
	}
	if h <= 0 {
		h = cellSize
	}

	var look entity.Appearance
	if e.Sprite != "" {
		look = entity.SpriteAppearance(assets.Load(e.Sprite))
	} else {
		c := ecs.DefaultEnemyColor
		if e.Color != "" {
			parsed, err := palette.Parse(e.Color)
			if err != nil {
				logger.Warn("enemy color ignored", "level", levelName, "enemy", index, "error", err)
			} else {
				c = parsed
			}
		}
		look = entity.RectAppearance(c)
	}

	return ecs.EnemyConfig{
		X:          e.X,
		Y:          e.Y,
		Width:      w,
		Height:     h,
		Tag:        entity.Tag(e.Tag),
		Appearance: look,
	}
}

// spawnBlocked reports whether r overlaps a solid or out-of-range cell
func spawnBlocked(g *entity.Grid, r entity.Rect) bool {
	cs := g.CellSize()
	r0 := int(math.Floor(r.Top() / cs))
	r1 := int(math.Ceil(r.Bottom()/cs)) - 1
	c0 := int(math.Floor(r.Left() / cs))
	c1 := int(math.Ceil(r.Right()/cs)) - 1

	for row := r0; row <= r1; row++ {
		for col := c0; col <= c1; col++ {
			if g.SolidAt(row, col) {
				return true
			}
		}
	}
	return false
}
