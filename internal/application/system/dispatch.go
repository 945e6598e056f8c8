package system

import (
	"errors"
	"fmt"
	"strings"

	"github.com/charmbracelet/log"

	"github.com/younwookim/tilejump/internal/application/state"
	"github.com/younwookim/tilejump/internal/domain/entity"
	"github.com/younwookim/tilejump/internal/ecs"
)

// ErrUnknownTrigger is returned when a trigger kind name is not recognized
var ErrUnknownTrigger = errors.New("unknown trigger")

// TriggerKind is the event a reaction is registered for
type TriggerKind int

const (
	OnTouch TriggerKind = iota
	OnUpdate
	OnDestroy
)

// String returns the string representation of the trigger kind
func (k TriggerKind) String() string {
	switch k {
	case OnTouch:
		return "touch"
	case OnUpdate:
		return "update"
	case OnDestroy:
		return "destroy"
	default:
		return "unknown"
	}
}

// ParseTrigger accepts "touch" as well as the "onTouch" spelling
func ParseTrigger(s string) (TriggerKind, error) {
	name := strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "on")
	switch name {
	case "touch":
		return OnTouch, nil
	case "update":
		return OnUpdate, nil
	case "destroy":
		return OnDestroy, nil
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownTrigger, s)
}

// Destroyer removes entities on behalf of destroy reactions
type Destroyer interface {
	DestroyEnemy(id ecs.EntityID) bool
	DestroyAllEnemies() int
}

// ReactionContext is what a reaction may observe and mutate.
// Session is the only channel from a reaction into session control.
type ReactionContext struct {
	Session *state.Session
	World   Destroyer
	Player  *entity.Body
	Logger  *log.Logger

	Kind TriggerKind
	Tag  entity.Tag

	// Other is the entity that was touched or destroyed, 0 for tiles
	Other ecs.EntityID

	// Row, Col and Tile describe the touched cell when Other is 0
	Row, Col int
	Tile     entity.TileID
}

type triggerKey struct {
	kind TriggerKind
	tag  entity.Tag
}

// Dispatcher maps (trigger kind, tag) to an ordered list of reactions.
// Registrations are static for a level.
type Dispatcher struct {
	table  map[triggerKey][]Reaction
	logger *log.Logger
}

// NewDispatcher creates an empty dispatcher
func NewDispatcher(logger *log.Logger) *Dispatcher {
	return &Dispatcher{
		table:  make(map[triggerKey][]Reaction),
		logger: logger,
	}
}

// Register appends r to the reactions for (kind, tag)
func (d *Dispatcher) Register(kind TriggerKind, tag entity.Tag, r Reaction) {
	k := triggerKey{kind: kind, tag: tag}
	d.table[k] = append(d.table[k], r)
}

// Count returns how many reactions are registered for (kind, tag)
func (d *Dispatcher) Count(kind TriggerKind, tag entity.Tag) int {
	return len(d.table[triggerKey{kind: kind, tag: tag}])
}

// Fire runs every reaction for (kind, tag) in registration order on the
// calling goroutine. An unregistered key is a no-op.
func (d *Dispatcher) Fire(kind TriggerKind, tag entity.Tag, ctx ReactionContext) {
	reactions := d.table[triggerKey{kind: kind, tag: tag}]
	if len(reactions) == 0 {
		return
	}

	ctx.Kind = kind
	ctx.Tag = tag
	if ctx.Logger == nil {
		ctx.Logger = d.logger
	}

	for _, r := range reactions {
		ctx.Logger.Debug("reaction", "trigger", kind, "tag", tag, "reaction", r.Name())
		apply(r, &ctx)
	}
}
