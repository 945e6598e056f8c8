package system

import (
	"fmt"
	"strings"

	"github.com/d5/tengo/v2"
	"github.com/d5/tengo/v2/stdlib"

	"github.com/younwookim/tilejump/internal/application/state"
	"github.com/younwookim/tilejump/internal/ecs"
)

var scriptModules = []string{"math", "text", "rand", "enum"}

// Script is a reaction written in tengo. It is compiled once at level load
// and run with these globals:
//
//	player  map with x, y, vy
//	other   touched or destroyed entity id (0 for tiles)
//	row, col, tile
//	tag     the tag the trigger fired for
//
// and these functions: kill(), goto(level), destroy(id | "all"), log(msg).
type Script struct {
	source   string
	compiled *tengo.Compiled
	ctx      *ReactionContext
}

func (*Script) Name() string { return "script" }
func (*Script) isReaction()  {}

// NewScript compiles src
func NewScript(src string) (*Script, error) {
	if strings.TrimSpace(src) == "" {
		return nil, fmt.Errorf("script reaction: empty source")
	}

	s := &Script{source: src}

	script := tengo.NewScript([]byte(src))
	_ = script.Add("player", map[string]interface{}{"x": 0.0, "y": 0.0, "vy": 0.0})
	_ = script.Add("other", 0)
	_ = script.Add("row", 0)
	_ = script.Add("col", 0)
	_ = script.Add("tile", 0)
	_ = script.Add("tag", "")
	for name, fn := range s.functions() {
		_ = script.Add(name, fn)
	}
	script.SetImports(stdlib.GetModuleMap(scriptModules...))

	compiled, err := script.Compile()
	if err != nil {
		return nil, fmt.Errorf("script reaction: %w", err)
	}
	s.compiled = compiled
	return s, nil
}

// Source returns the tengo source
func (s *Script) Source() string {
	return s.source
}

func (s *Script) run(ctx *ReactionContext) {
	if s.ctx != nil {
		ctx.Logger.Warn("script reaction re-entered, skipping", "tag", ctx.Tag)
		return
	}
	s.ctx = ctx
	defer func() { s.ctx = nil }()

	player := map[string]interface{}{"x": 0.0, "y": 0.0, "vy": 0.0}
	if ctx.Player != nil {
		player = map[string]interface{}{"x": ctx.Player.X, "y": ctx.Player.Y, "vy": ctx.Player.VY}
	}

	globals := map[string]interface{}{
		"player": player,
		"other":  int64(ctx.Other),
		"row":    ctx.Row,
		"col":    ctx.Col,
		"tile":   int(ctx.Tile),
		"tag":    string(ctx.Tag),
	}
	for name, v := range globals {
		if err := s.compiled.Set(name, v); err != nil {
			ctx.Logger.Warn("script reaction: set global failed", "name", name, "error", err)
			return
		}
	}

	if err := s.compiled.Run(); err != nil {
		ctx.Logger.Warn("script reaction failed", "tag", ctx.Tag, "error", err)
	}
}

func (s *Script) functions() map[string]*tengo.UserFunction {
	return map[string]*tengo.UserFunction{
		"kill": {Name: "kill", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if s.ctx == nil {
				return tengo.FalseValue, nil
			}
			apply(Kill{}, s.ctx)
			return tengo.TrueValue, nil
		}},
		"goto": {Name: "goto", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if s.ctx == nil || len(args) != 1 {
				return nil, tengo.ErrWrongNumArguments
			}
			level, ok := tengo.ToInt(args[0])
			if !ok {
				return nil, tengo.ErrInvalidArgumentType{Name: "level", Expected: "int", Found: args[0].TypeName()}
			}
			apply(Goto{Level: state.LevelID(level)}, s.ctx)
			return tengo.TrueValue, nil
		}},
		"destroy": {Name: "destroy", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if s.ctx == nil {
				return tengo.FalseValue, nil
			}
			target := DestroyTarget{Other: true}
			if len(args) > 0 {
				switch v := args[0].(type) {
				case *tengo.String:
					t, err := ParseDestroyTarget(v.Value)
					if err != nil {
						return nil, err
					}
					target = t
				default:
					id, ok := tengo.ToInt64(v)
					if !ok || id <= 0 {
						return tengo.FalseValue, nil
					}
					target = DestroyTarget{ID: ecs.EntityID(id)}
				}
			}
			apply(Destroy{Target: target}, s.ctx)
			return tengo.TrueValue, nil
		}},
		"log": {Name: "log", Value: func(args ...tengo.Object) (tengo.Object, error) {
			if s.ctx == nil {
				return tengo.UndefinedValue, nil
			}
			parts := make([]string, 0, len(args))
			for _, a := range args {
				str, _ := tengo.ToString(a)
				parts = append(parts, str)
			}
			apply(Log{Message: strings.Join(parts, " ")}, s.ctx)
			return tengo.UndefinedValue, nil
		}},
	}
}
