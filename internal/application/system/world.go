package system

import (
	"github.com/charmbracelet/log"

	"github.com/younwookim/tilejump/internal/application/state"
	"github.com/younwookim/tilejump/internal/domain/entity"
	"github.com/younwookim/tilejump/internal/ecs"
)

// World runs the per-frame update for one loaded level
type World struct {
	level      *Level
	entities   *ecs.World
	resolver   *Resolver
	touch      *TouchIndex
	params     entity.BodyParams
	playerLook entity.Appearance
	logger     *log.Logger

	// session is set for the duration of Step so that reactions fired from
	// nested destroys mutate the frame's session
	session *state.Session
}

// NewWorld creates a world for level with the player at the level spawn
func NewWorld(level *Level, params entity.BodyParams, playerLook entity.Appearance, logger *log.Logger) *World {
	w := &World{
		resolver:   NewResolver(),
		params:     params,
		playerLook: playerLook,
		logger:     logger,
	}
	w.Load(level)
	return w
}

// Load replaces the level wholesale and respawns every entity
func (w *World) Load(level *Level) {
	w.level = level
	w.Reset()
}

// Reset restores the player and enemies of the current level
func (w *World) Reset() {
	w.entities = ecs.NewWorld()
	w.touch = NewTouchIndex(w.level.Grid.Width(), w.level.Grid.Height(), w.level.Grid.CellSize())

	w.entities.CreatePlayer(entity.NewBody(w.level.SpawnX, w.level.SpawnY, w.params), w.playerLook)
	for _, e := range w.level.Enemies {
		id := w.entities.CreateEnemy(e)
		w.touch.Add(id, w.entities.Bounds[id])
	}
}

// Level returns the loaded level
func (w *World) Level() *Level {
	return w.level
}

// Entities returns the entity store
func (w *World) Entities() *ecs.World {
	return w.entities
}

// Player returns the player body
func (w *World) Player() *entity.Body {
	return w.entities.Player()
}

// Step advances one frame.
//
// Nothing runs unless the session is Playing. Otherwise the player is
// integrated and resolved against the grid, then onTouch fires for every
// touched cell (tag player, then the tile's own tag), then for every
// overlapped enemy, and finally onUpdate fires for the player if the
// session is still Playing. The session as changed by reactions is returned.
func (w *World) Step(s state.Session, in entity.Controls) (state.Session, Result) {
	if !s.Playing() {
		return s, Result{}
	}
	body := w.Player()
	if body == nil {
		return s, Result{}
	}

	w.session = &s
	defer func() { w.session = nil }()

	body.Integrate(in)
	res := w.resolver.Resolve(body, in, w.level.Grid)

	d := w.level.Dispatcher
	for _, t := range res.Touched {
		ctx := w.context()
		ctx.Row, ctx.Col, ctx.Tile = t.Row, t.Col, t.ID

		d.Fire(OnTouch, entity.TagPlayer, ctx)
		if tag, ok := w.level.TagOf(t.ID); ok {
			d.Fire(OnTouch, tag, ctx)
		}
	}

	for _, id := range w.touch.Query(body.Rect()) {
		// an earlier reaction may have destroyed it
		if !w.entities.Exists(id) {
			continue
		}
		tag := w.entities.Tag[id]
		res.Enemies = append(res.Enemies, EnemyTouch{ID: id, Tag: tag})

		ctx := w.context()
		ctx.Other = id
		d.Fire(OnTouch, tag, ctx)
	}

	if s.Playing() {
		d.Fire(OnUpdate, entity.TagPlayer, w.context())
	}

	return s, res
}

// DestroyEnemy removes an enemy and fires onDestroy for its tag
func (w *World) DestroyEnemy(id ecs.EntityID) bool {
	if _, ok := w.entities.IsEnemy[id]; !ok {
		return false
	}
	tag := w.entities.Tag[id]

	w.touch.Remove(id)
	w.entities.DestroyEntity(id)
	w.logger.Debug("enemy destroyed", "id", id, "tag", tag)

	ctx := w.context()
	ctx.Other = id
	w.level.Dispatcher.Fire(OnDestroy, tag, ctx)
	return true
}

// DestroyAllEnemies removes every enemy and returns how many were removed
func (w *World) DestroyAllEnemies() int {
	n := 0
	for _, id := range w.entities.Enemies() {
		if w.DestroyEnemy(id) {
			n++
		}
	}
	return n
}

func (w *World) context() ReactionContext {
	session := w.session
	if session == nil {
		// Outside Step reactions act on a scratch session that is discarded.
		scratch := state.NewSession(w.level.ID)
		session = &scratch
	}
	return ReactionContext{
		Session: session,
		World:   w,
		Player:  w.Player(),
		Logger:  w.logger,
	}
}
