package system

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/younwookim/tilejump/internal/application/state"
	"github.com/younwookim/tilejump/internal/domain/entity"
	"github.com/younwookim/tilejump/internal/ecs"
	"github.com/younwookim/tilejump/internal/infrastructure/config"
)

// ErrUnknownReaction is returned when a trigger names a reaction that does not exist
var ErrUnknownReaction = errors.New("unknown reaction")

// Reaction is a registered trigger response. The set of variants is closed.
type Reaction interface {
	Name() string
	isReaction()
}

// Kill ends the session
type Kill struct{}

func (Kill) Name() string { return "kill" }
func (Kill) isReaction()  {}

// Goto moves the session to another level
type Goto struct {
	Level state.LevelID
}

func (Goto) Name() string { return "goto" }
func (Goto) isReaction()  {}

// DestroyTarget selects which enemies a Destroy reaction removes
type DestroyTarget struct {
	All   bool
	Other bool // the entity that raised the trigger
	ID    ecs.EntityID
}

// Destroy removes enemies and fires onDestroy for each
type Destroy struct {
	Target DestroyTarget
}

func (Destroy) Name() string { return "destroy" }
func (Destroy) isReaction()  {}

// Log writes a message at info level
type Log struct {
	Message string
}

func (Log) Name() string { return "log" }
func (Log) isReaction()  {}

// Repeat runs Inner N times per fire
type Repeat struct {
	N     int
	Inner Reaction
}

func (r Repeat) Name() string { return fmt.Sprintf("repeat(%d, %s)", r.N, r.Inner.Name()) }
func (Repeat) isReaction()    {}

// ReactionFunc adapts a Go function. Used by tests and embedding code.
type ReactionFunc func(ctx *ReactionContext)

func (ReactionFunc) Name() string { return "func" }
func (ReactionFunc) isReaction()  {}

func apply(r Reaction, ctx *ReactionContext) {
	switch r := r.(type) {
	case Kill:
		if ctx.Session.Kill() {
			ctx.Logger.Info("game over", "level", ctx.Session.Level, "tag", ctx.Tag)
		}
	case Goto:
		if ctx.Session.Goto(r.Level) {
			ctx.Logger.Info("level change requested", "level", r.Level)
		}
	case Destroy:
		destroy(r.Target, ctx)
	case Log:
		ctx.Logger.Info(r.Message, "trigger", ctx.Kind, "tag", ctx.Tag)
	case Repeat:
		for i := 0; i < r.N; i++ {
			apply(r.Inner, ctx)
		}
	case *Script:
		r.run(ctx)
	case ReactionFunc:
		r(ctx)
	}
}

func destroy(target DestroyTarget, ctx *ReactionContext) {
	if ctx.World == nil {
		return
	}
	switch {
	case target.All:
		ctx.World.DestroyAllEnemies()
	case target.Other:
		if ctx.Other != 0 {
			ctx.World.DestroyEnemy(ctx.Other)
		}
	default:
		ctx.World.DestroyEnemy(target.ID)
	}
}

// ParseDestroyTarget accepts "all", "other" or an entity id
func ParseDestroyTarget(s string) (DestroyTarget, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "all":
		return DestroyTarget{All: true}, nil
	case "", "other":
		return DestroyTarget{Other: true}, nil
	}
	id, err := strconv.ParseUint(s, 10, 64)
	if err != nil || id == 0 {
		return DestroyTarget{}, fmt.Errorf("invalid destroy target %q", s)
	}
	return DestroyTarget{ID: ecs.EntityID(id)}, nil
}

// Trigger is a parsed registration ready for Dispatcher.Register
type Trigger struct {
	Kind     TriggerKind
	Tag      entity.Tag
	Reaction Reaction
}

// BuildTrigger converts a level trigger entry into a registration
func BuildTrigger(cfg config.TriggerConfig) (Trigger, error) {
	kind, err := ParseTrigger(cfg.On)
	if err != nil {
		return Trigger{}, err
	}
	if cfg.Tag == "" {
		return Trigger{}, fmt.Errorf("trigger %s: missing tag", kind)
	}

	var r Reaction
	switch strings.ToLower(cfg.Reaction) {
	case "kill":
		r = Kill{}
	case "goto":
		r = Goto{Level: state.LevelID(cfg.Level)}
	case "destroy":
		target, err := ParseDestroyTarget(cfg.Target)
		if err != nil {
			return Trigger{}, err
		}
		r = Destroy{Target: target}
	case "log":
		r = Log{Message: cfg.Message}
	case "script":
		s, err := NewScript(cfg.Script)
		if err != nil {
			return Trigger{}, err
		}
		r = s
	default:
		return Trigger{}, fmt.Errorf("%w: %q", ErrUnknownReaction, cfg.Reaction)
	}

	switch {
	case cfg.Repeat < 0:
		return Trigger{}, fmt.Errorf("trigger %s/%s: repeat must be a positive count, got %d", kind, cfg.Tag, cfg.Repeat)
	case cfg.Repeat > 1:
		r = Repeat{N: cfg.Repeat, Inner: r}
	}

	return Trigger{Kind: kind, Tag: entity.Tag(cfg.Tag), Reaction: r}, nil
}
