package ecs

import (
	"sort"

	"github.com/younwookim/tilejump/internal/domain/entity"
)

// EntityID is a unique identifier for an entity (never recycled)
type EntityID uint64

// World holds all component maps and the next entity ID
type World struct {
	nextID EntityID

	// Components
	Body       map[EntityID]*entity.Body
	Bounds     map[EntityID]Bounds
	Appearance map[EntityID]entity.Appearance
	Tag        map[EntityID]entity.Tag

	// Tags
	IsPlayer map[EntityID]struct{}
	IsEnemy  map[EntityID]struct{}

	// Singleton references
	PlayerID EntityID
}

// NewWorld creates a new empty world
func NewWorld() *World {
	return &World{
		nextID:     1, // 0 is "nil"
		Body:       make(map[EntityID]*entity.Body),
		Bounds:     make(map[EntityID]Bounds),
		Appearance: make(map[EntityID]entity.Appearance),
		Tag:        make(map[EntityID]entity.Tag),
		IsPlayer:   make(map[EntityID]struct{}),
		IsEnemy:    make(map[EntityID]struct{}),
	}
}

// NewEntity returns a new unique entity ID
func (w *World) NewEntity() EntityID {
	id := w.nextID
	w.nextID++
	return id
}

// DestroyEntity removes all components for an entity
func (w *World) DestroyEntity(id EntityID) {
	delete(w.Body, id)
	delete(w.Bounds, id)
	delete(w.Appearance, id)
	delete(w.Tag, id)
	delete(w.IsPlayer, id)
	delete(w.IsEnemy, id)
	if w.PlayerID == id {
		w.PlayerID = 0
	}
}

// Exists checks if an entity has a Tag component
func (w *World) Exists(id EntityID) bool {
	_, ok := w.Tag[id]
	return ok
}

// CreatePlayer creates the player entity around an existing body
func (w *World) CreatePlayer(body *entity.Body, look entity.Appearance) EntityID {
	id := w.NewEntity()

	w.Body[id] = body
	w.Appearance[id] = look
	w.Tag[id] = entity.TagPlayer
	w.IsPlayer[id] = struct{}{}

	w.PlayerID = id
	return id
}

// CreateEnemy creates a static enemy entity
func (w *World) CreateEnemy(cfg EnemyConfig) EntityID {
	id := w.NewEntity()

	w.Bounds[id] = Bounds{X: cfg.X, Y: cfg.Y, W: cfg.Width, H: cfg.Height}
	w.Appearance[id] = cfg.Appearance
	w.Tag[id] = cfg.tag()
	w.IsEnemy[id] = struct{}{}

	return id
}

// Player returns the player body, or nil when there is none
func (w *World) Player() *entity.Body {
	return w.Body[w.PlayerID]
}

// Enemies returns enemy IDs in creation order
func (w *World) Enemies() []EntityID {
	ids := make([]EntityID, 0, len(w.IsEnemy))
	for id := range w.IsEnemy {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}

// CountEnemies returns the number of active enemies
func (w *World) CountEnemies() int {
	return len(w.IsEnemy)
}
