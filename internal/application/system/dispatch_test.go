package system

import (
	"bytes"
	"io"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/tilejump/internal/application/state"
	"github.com/younwookim/tilejump/internal/domain/entity"
	"github.com/younwookim/tilejump/internal/ecs"
	"github.com/younwookim/tilejump/internal/infrastructure/config"
)

func testLogger() *log.Logger {
	return log.New(io.Discard)
}

type fakeDestroyer struct {
	destroyed []ecs.EntityID
	all       int
}

func (f *fakeDestroyer) DestroyEnemy(id ecs.EntityID) bool {
	f.destroyed = append(f.destroyed, id)
	return true
}

func (f *fakeDestroyer) DestroyAllEnemies() int {
	f.all++
	return 0
}

func newTestContext(s *state.Session) ReactionContext {
	return ReactionContext{Session: s, Logger: testLogger()}
}

func TestParseTrigger(t *testing.T) {
	tests := []struct {
		in      string
		want    TriggerKind
		wantErr bool
	}{
		{"touch", OnTouch, false},
		{"onTouch", OnTouch, false},
		{"update", OnUpdate, false},
		{"OnUpdate", OnUpdate, false},
		{"destroy", OnDestroy, false},
		{"onDestroy", OnDestroy, false},
		{"spawn", 0, true},
		{"", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseTrigger(tt.in)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownTrigger)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, got, mustParse(t, got.String()))
		})
	}
}

func mustParse(t *testing.T, s string) TriggerKind {
	t.Helper()
	k, err := ParseTrigger(s)
	require.NoError(t, err)
	return k
}

func TestDispatcher_FireInRegistrationOrder(t *testing.T) {
	d := NewDispatcher(testLogger())
	var calls []string

	d.Register(OnTouch, entity.TagPlayer, ReactionFunc(func(*ReactionContext) { calls = append(calls, "first") }))
	d.Register(OnTouch, entity.TagPlayer, ReactionFunc(func(*ReactionContext) { calls = append(calls, "second") }))
	d.Register(OnTouch, entity.TagEnemy, ReactionFunc(func(*ReactionContext) { calls = append(calls, "enemy") }))
	d.Register(OnUpdate, entity.TagPlayer, ReactionFunc(func(*ReactionContext) { calls = append(calls, "update") }))

	s := state.NewSession(0)
	d.Fire(OnTouch, entity.TagPlayer, newTestContext(&s))

	assert.Equal(t, []string{"first", "second"}, calls)
	assert.Equal(t, 2, d.Count(OnTouch, entity.TagPlayer))
	assert.Equal(t, 1, d.Count(OnUpdate, entity.TagPlayer))
	assert.Equal(t, 0, d.Count(OnDestroy, entity.TagPlayer))
}

func TestDispatcher_UnregisteredKeyIsNoop(t *testing.T) {
	d := NewDispatcher(testLogger())
	d.Register(OnTouch, entity.TagEnemy, Kill{})

	s := state.NewSession(3)
	assert.NotPanics(t, func() {
		d.Fire(OnTouch, entity.TagPlayer, newTestContext(&s))
		d.Fire(OnDestroy, entity.TagEnemy, newTestContext(&s))
	})
	assert.Equal(t, state.NewSession(3), s)
}

func TestDispatcher_ContextCarriesKindAndTag(t *testing.T) {
	d := NewDispatcher(testLogger())
	var got ReactionContext
	d.Register(OnDestroy, "guard", ReactionFunc(func(ctx *ReactionContext) { got = *ctx }))

	s := state.NewSession(0)
	ctx := ReactionContext{Session: &s, Other: 7}
	d.Fire(OnDestroy, "guard", ctx)

	assert.Equal(t, OnDestroy, got.Kind)
	assert.Equal(t, entity.Tag("guard"), got.Tag)
	assert.Equal(t, ecs.EntityID(7), got.Other)
	assert.NotNil(t, got.Logger, "dispatcher logger is used when the context has none")
}

func TestKill_TransitionsOnce(t *testing.T) {
	d := NewDispatcher(testLogger())
	d.Register(OnTouch, entity.TagPlayer, Kill{})

	s := state.NewSession(1)
	d.Fire(OnTouch, entity.TagPlayer, newTestContext(&s))
	require.Equal(t, state.StateGameOver, s.State)

	d.Fire(OnTouch, entity.TagPlayer, newTestContext(&s))
	assert.Equal(t, state.StateGameOver, s.State)
	assert.Equal(t, state.LevelID(1), s.Level)
}

func TestGoto_ChangesLevel(t *testing.T) {
	d := NewDispatcher(testLogger())
	d.Register(OnTouch, "exit", Goto{Level: 2})

	s := state.NewSession(0)
	d.Fire(OnTouch, "exit", newTestContext(&s))

	assert.Equal(t, state.Session{State: state.StatePlaying, Level: 2}, s)

	t.Run("ignored after game over", func(t *testing.T) {
		s := state.Session{State: state.StateGameOver, Level: 0}
		d.Fire(OnTouch, "exit", newTestContext(&s))
		assert.Equal(t, state.LevelID(0), s.Level)
	})
}

func TestDestroy_Targets(t *testing.T) {
	tests := []struct {
		name    string
		target  DestroyTarget
		other   ecs.EntityID
		wantIDs []ecs.EntityID
		wantAll int
	}{
		{"other", DestroyTarget{Other: true}, 4, []ecs.EntityID{4}, 0},
		{"other from a tile does nothing", DestroyTarget{Other: true}, 0, nil, 0},
		{"explicit id", DestroyTarget{ID: 9}, 4, []ecs.EntityID{9}, 0},
		{"all", DestroyTarget{All: true}, 0, nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeDestroyer{}
			s := state.NewSession(0)
			ctx := newTestContext(&s)
			ctx.World = fake
			ctx.Other = tt.other

			apply(Destroy{Target: tt.target}, &ctx)

			assert.Equal(t, tt.wantIDs, fake.destroyed)
			assert.Equal(t, tt.wantAll, fake.all)
		})
	}
}

func TestParseDestroyTarget(t *testing.T) {
	tests := []struct {
		in      string
		want    DestroyTarget
		wantErr bool
	}{
		{"all", DestroyTarget{All: true}, false},
		{"ALL", DestroyTarget{All: true}, false},
		{"", DestroyTarget{Other: true}, false},
		{"other", DestroyTarget{Other: true}, false},
		{"12", DestroyTarget{ID: 12}, false},
		{"0", DestroyTarget{}, true},
		{"guard", DestroyTarget{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseDestroyTarget(tt.in)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestLog_WritesMessage(t *testing.T) {
	var buf bytes.Buffer
	logger := log.New(&buf)

	d := NewDispatcher(logger)
	d.Register(OnTouch, entity.TagEnemy, Log{Message: "enemy bumped"})

	s := state.NewSession(0)
	d.Fire(OnTouch, entity.TagEnemy, ReactionContext{Session: &s})

	assert.Contains(t, buf.String(), "enemy bumped")
	assert.Contains(t, buf.String(), "tag=enemy")
}

func TestRepeat_RunsInnerNTimes(t *testing.T) {
	count := 0
	r := Repeat{N: 3, Inner: ReactionFunc(func(*ReactionContext) { count++ })}

	s := state.NewSession(0)
	ctx := newTestContext(&s)
	apply(r, &ctx)

	assert.Equal(t, 3, count)
	assert.Equal(t, "repeat(3, func)", r.Name())
}

func TestBuildTrigger(t *testing.T) {
	t.Run("kill", func(t *testing.T) {
		trig, err := BuildTrigger(config.TriggerConfig{On: "touch", Tag: "hazard", Reaction: "kill"})
		require.NoError(t, err)
		assert.Equal(t, Trigger{Kind: OnTouch, Tag: entity.TagHazard, Reaction: Kill{}}, trig)
	})

	t.Run("goto", func(t *testing.T) {
		trig, err := BuildTrigger(config.TriggerConfig{On: "onTouch", Tag: "exit", Reaction: "goto", Level: 2})
		require.NoError(t, err)
		assert.Equal(t, Goto{Level: 2}, trig.Reaction)
	})

	t.Run("destroy all on update", func(t *testing.T) {
		trig, err := BuildTrigger(config.TriggerConfig{On: "update", Tag: "player", Reaction: "destroy", Target: "all"})
		require.NoError(t, err)
		assert.Equal(t, OnUpdate, trig.Kind)
		assert.Equal(t, Destroy{Target: DestroyTarget{All: true}}, trig.Reaction)
	})

	t.Run("repeat wraps the reaction", func(t *testing.T) {
		trig, err := BuildTrigger(config.TriggerConfig{On: "touch", Tag: "enemy", Reaction: "log", Message: "hi", Repeat: 2})
		require.NoError(t, err)
		assert.Equal(t, Repeat{N: 2, Inner: Log{Message: "hi"}}, trig.Reaction)
	})

	t.Run("script compiles", func(t *testing.T) {
		trig, err := BuildTrigger(config.TriggerConfig{On: "touch", Tag: "guard", Reaction: "script", Script: "kill()"})
		require.NoError(t, err)
		assert.IsType(t, &Script{}, trig.Reaction)
	})

	errCases := []struct {
		name string
		cfg  config.TriggerConfig
		is   error
	}{
		{"unknown reaction", config.TriggerConfig{On: "touch", Tag: "x", Reaction: "explode"}, ErrUnknownReaction},
		{"unknown trigger", config.TriggerConfig{On: "spawn", Tag: "x", Reaction: "kill"}, ErrUnknownTrigger},
		{"missing tag", config.TriggerConfig{On: "touch", Reaction: "kill"}, nil},
		{"negative repeat", config.TriggerConfig{On: "touch", Tag: "x", Reaction: "kill", Repeat: -1}, nil},
		{"bad destroy target", config.TriggerConfig{On: "touch", Tag: "x", Reaction: "destroy", Target: "guard"}, nil},
		{"bad script", config.TriggerConfig{On: "touch", Tag: "x", Reaction: "script", Script: "if {"}, nil},
	}
	for _, tt := range errCases {
		t.Run(tt.name, func(t *testing.T) {
			_, err := BuildTrigger(tt.cfg)
			require.Error(t, err)
			if tt.is != nil {
				assert.ErrorIs(t, err, tt.is)
			}
		})
	}
}
