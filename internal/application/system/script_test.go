package system

import (
	"bytes"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/younwookim/tilejump/internal/application/state"
	"github.com/younwookim/tilejump/internal/domain/entity"
	"github.com/younwookim/tilejump/internal/ecs"
)

func runScript(t *testing.T, src string, ctx ReactionContext) {
	t.Helper()
	s, err := NewScript(src)
	require.NoError(t, err)
	if ctx.Logger == nil {
		ctx.Logger = testLogger()
	}
	apply(s, &ctx)
}

func TestScript_Kill(t *testing.T) {
	s := state.NewSession(0)

	runScript(t, `kill()`, ReactionContext{Session: &s})

	assert.Equal(t, state.StateGameOver, s.State)
}

func TestScript_Goto(t *testing.T) {
	s := state.NewSession(0)

	runScript(t, `goto(2)`, ReactionContext{Session: &s})

	assert.Equal(t, state.LevelID(2), s.Level)
	assert.True(t, s.Playing())
}

func TestScript_Destroy(t *testing.T) {
	tests := []struct {
		name    string
		src     string
		wantIDs []ecs.EntityID
		wantAll int
	}{
		{"no argument destroys other", `destroy()`, []ecs.EntityID{5}, 0},
		{"other id", `destroy(other)`, []ecs.EntityID{5}, 0},
		{"explicit id", `destroy(3)`, []ecs.EntityID{3}, 0},
		{"all", `destroy("all")`, nil, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fake := &fakeDestroyer{}
			s := state.NewSession(0)

			runScript(t, tt.src, ReactionContext{Session: &s, World: fake, Other: 5})

			assert.Equal(t, tt.wantIDs, fake.destroyed)
			assert.Equal(t, tt.wantAll, fake.all)
		})
	}
}

func TestScript_SeesPlayerAndTouch(t *testing.T) {
	src := `
if player.vy > 0 && tag == "guard" && other == 5 {
	destroy(other)
} else {
	kill()
}
`
	t.Run("stomp from above", func(t *testing.T) {
		fake := &fakeDestroyer{}
		s := state.NewSession(0)
		body := createTestBody(0, 0)
		body.VY = 2

		runScript(t, src, ReactionContext{Session: &s, World: fake, Player: body, Other: 5, Tag: "guard"})

		assert.Equal(t, []ecs.EntityID{5}, fake.destroyed)
		assert.True(t, s.Playing())
	})

	t.Run("walk into it", func(t *testing.T) {
		fake := &fakeDestroyer{}
		s := state.NewSession(0)
		body := createTestBody(0, 0)

		runScript(t, src, ReactionContext{Session: &s, World: fake, Player: body, Other: 5, Tag: "guard"})

		assert.Empty(t, fake.destroyed)
		assert.Equal(t, state.StateGameOver, s.State)
	})
}

func TestScript_TileGlobals(t *testing.T) {
	s := state.NewSession(0)

	runScript(t, `if row == 3 && col == 1 && tile == 7 { goto(4) }`,
		ReactionContext{Session: &s, Row: 3, Col: 1, Tile: entity.TileID(7)})

	assert.Equal(t, state.LevelID(4), s.Level)
}

func TestScript_Log(t *testing.T) {
	var buf bytes.Buffer
	s := state.NewSession(0)

	runScript(t, `log("hello", 42)`, ReactionContext{Session: &s, Logger: log.New(&buf)})

	assert.Contains(t, buf.String(), "hello 42")
}

func TestScript_Stdlib(t *testing.T) {
	s := state.NewSession(0)

	runScript(t, `
math := import("math")
goto(math.abs(-3))
`, ReactionContext{Session: &s})

	assert.Equal(t, state.LevelID(3), s.Level)
}

func TestScript_RuntimeErrorIsLogged(t *testing.T) {
	var buf bytes.Buffer
	s := state.NewSession(0)

	assert.NotPanics(t, func() {
		runScript(t, `goto("nowhere")`, ReactionContext{Session: &s, Logger: log.New(&buf)})
	})

	assert.True(t, s.Playing())
	assert.Contains(t, buf.String(), "script reaction failed")
}

func TestScript_RunsRepeatedly(t *testing.T) {
	s, err := NewScript(`destroy(other)`)
	require.NoError(t, err)

	fake := &fakeDestroyer{}
	session := state.NewSession(0)
	for id := ecs.EntityID(1); id <= 3; id++ {
		ctx := ReactionContext{Session: &session, World: fake, Other: id, Logger: testLogger()}
		apply(s, &ctx)
	}

	assert.Equal(t, []ecs.EntityID{1, 2, 3}, fake.destroyed)
}

func TestNewScript_Errors(t *testing.T) {
	_, err := NewScript("   ")
	assert.Error(t, err)

	_, err = NewScript(`if {`)
	assert.Error(t, err)

	_, err = NewScript(`undefined_function()`)
	assert.Error(t, err)
}
