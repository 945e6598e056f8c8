package system

import (
	"math"
	"sort"

	"github.com/solarlune/resolv"

	"github.com/younwookim/tilejump/internal/domain/entity"
	"github.com/younwookim/tilejump/internal/ecs"
)

const (
	resolvPlayer = "player"
	resolvEnemy  = "enemy"
)

// EnemyTouch is one enemy the player overlapped this frame
type EnemyTouch struct {
	ID  ecs.EntityID
	Tag entity.Tag
}

// TouchIndex finds the static entities a body overlaps.
// A resolv space gives the candidates; the exact rectangle test decides.
type TouchIndex struct {
	space   *resolv.Space
	query   *resolv.Object
	objects map[ecs.EntityID]*resolv.Object
}

// NewTouchIndex creates an index covering width×height world units
func NewTouchIndex(width, height, cellSize float64) *TouchIndex {
	cs := int(math.Max(1, cellSize))
	space := resolv.NewSpace(int(math.Ceil(width)), int(math.Ceil(height)), cs, cs)

	query := resolv.NewObject(0, 0, 1, 1, resolvPlayer)
	query.SetShape(resolv.NewRectangle(0, 0, 1, 1))
	space.Add(query)

	return &TouchIndex{
		space:   space,
		query:   query,
		objects: make(map[ecs.EntityID]*resolv.Object),
	}
}

// Add registers an entity's bounds
func (t *TouchIndex) Add(id ecs.EntityID, b entity.Rect) {
	t.Remove(id)

	obj := resolv.NewObject(b.X, b.Y, b.W, b.H, resolvEnemy)
	obj.SetShape(resolv.NewRectangle(0, 0, b.W, b.H))
	obj.Data = id
	t.space.Add(obj)
	t.objects[id] = obj
}

// Remove forgets an entity. Unknown ids are ignored.
func (t *TouchIndex) Remove(id ecs.EntityID) {
	obj, ok := t.objects[id]
	if !ok {
		return
	}
	t.space.Remove(obj)
	delete(t.objects, id)
}

// Len returns the number of indexed entities
func (t *TouchIndex) Len() int {
	return len(t.objects)
}

// Query returns the ids of indexed entities that strictly overlap r, in
// ascending id order
func (t *TouchIndex) Query(r entity.Rect) []ecs.EntityID {
	if len(t.objects) == 0 {
		return nil
	}

	t.query.X, t.query.Y = r.X, r.Y
	t.query.W, t.query.H = r.W, r.H
	t.query.Update()

	check := t.query.Check(0, 0, resolvEnemy)
	if check == nil {
		return nil
	}

	var ids []ecs.EntityID
	seen := make(map[ecs.EntityID]bool)
	for _, obj := range check.Objects {
		id, ok := obj.Data.(ecs.EntityID)
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		bounds := entity.Rect{X: obj.X, Y: obj.Y, W: obj.W, H: obj.H}
		if r.Intersects(bounds) {
			ids = append(ids, id)
		}
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids
}
