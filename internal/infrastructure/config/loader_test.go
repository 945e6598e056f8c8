package config

import (
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const configsDir = "../../../cmd/game/configs"

func TestLoader_LoadGame(t *testing.T) {
	loader := NewLoader(configsDir)

	cfg, err := loader.LoadGame()
	require.NoError(t, err)

	assert.Equal(t, 800, cfg.Display.ScreenWidth)
	assert.Equal(t, 600, cfg.Display.ScreenHeight)
	assert.Equal(t, 60, cfg.Display.Framerate)
	assert.Equal(t, 100.0, cfg.Physics.CellSize)
	assert.Equal(t, 0.5, cfg.Physics.Gravity)
	assert.Equal(t, 5.0, cfg.Player.Speed)
	assert.Equal(t, -10.0, cfg.Player.JumpImpulse)
	assert.Equal(t, "sprites/error.png", cfg.Assets.Placeholder)
}

func TestLoader_BasePath(t *testing.T) {
	assert.Equal(t, configsDir, NewLoader(configsDir).BasePath())
	assert.Empty(t, NewFSLoader(fstest.MapFS{}, "").BasePath(), "embedded configs have no directory")
}

func TestLoader_LoadLevel_YAML(t *testing.T) {
	loader := NewLoader(configsDir)

	cfg, err := loader.LoadLevel("level0")
	require.NoError(t, err)

	assert.Equal(t, 0, cfg.ID)
	assert.Equal(t, "meadow", cfg.Name)
	require.Len(t, cfg.Tiles, 5)
	assert.Equal(t, []int{1, 1, 1, 1, 0}, cfg.Tiles[3])
	assert.Equal(t, "tiles/grass.png", cfg.Tileset[1])
	require.NotNil(t, cfg.PlayerStart)
	require.Len(t, cfg.Enemies, 1)
	assert.Equal(t, "sprites/enemy/enemy1.png", cfg.Enemies[0].Sprite)
}

func TestLoader_LoadLevel_Level1(t *testing.T) {
	loader := NewLoader(configsDir)

	cfg, err := loader.LoadLevel(LevelName(1))
	require.NoError(t, err)

	require.Len(t, cfg.Tiles, 7)
	for _, row := range cfg.Tiles {
		assert.Len(t, row, 64)
	}
	assert.Equal(t, "hazard", cfg.TileTags[3])
	assert.Equal(t, "player-start", cfg.TileTags[9])

	require.NotEmpty(t, cfg.Triggers)
	assert.Equal(t, TriggerConfig{On: "touch", Tag: "hazard", Reaction: "kill"}, cfg.Triggers[0])
}

func TestLoader_LoadLevel_TMX(t *testing.T) {
	loader := NewLoader(configsDir)

	cfg, err := loader.LoadLevel("level2")
	require.NoError(t, err)

	assert.Equal(t, 2, cfg.ID)
	assert.Equal(t, "level2", cfg.Name)
	assert.Equal(t, 100.0, cfg.CellSize)
	require.Len(t, cfg.Tiles, 6)
	assert.Equal(t, []int{1, 1, 1, 1, 1, 3, 1, 1}, cfg.Tiles[4])
	assert.Equal(t, 4, cfg.Tiles[3][7])

	assert.Equal(t, "tiles/lava.png", cfg.Tileset[3])
	assert.Equal(t, "hazard", cfg.TileTags[3])
	assert.Equal(t, "exit", cfg.TileTags[4])

	require.NotNil(t, cfg.PlayerStart)
	assert.Equal(t, PositionConfig{X: 0, Y: 100}, *cfg.PlayerStart)

	require.Len(t, cfg.Enemies, 1)
	assert.Equal(t, "orange", cfg.Enemies[0].Color)

	require.Len(t, cfg.Triggers, 2)
	assert.Equal(t, "goto", cfg.Triggers[1].Reaction)
	assert.Equal(t, 0, cfg.Triggers[1].Level)
}

func createTriggerTMX(repeat string) string {
	prop := ""
	if repeat != "" {
		prop = `<property name="repeat" value="` + repeat + `"/>`
	}
	return `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" renderorder="right-down" width="2" height="2" tilewidth="100" tileheight="100" infinite="0">
 <tileset firstgid="1" name="terrain" tilewidth="100" tileheight="100" tilecount="1" columns="1">
  <tile id="0"/>
 </tileset>
 <layer id="1" name="tiles" width="2" height="2">
  <data encoding="csv">
0,0,
1,1
</data>
 </layer>
 <objectgroup id="2" name="triggers">
  <object id="3" x="0" y="0">
   <properties>
    <property name="on" value="touch"/>
    <property name="tag" value="player"/>
    <property name="reaction" value="log"/>
    ` + prop + `
   </properties>
  </object>
 </objectgroup>
</map>`
}

func TestLoader_LoadLevel_TMXRepeat(t *testing.T) {
	tests := []struct {
		name    string
		repeat  string
		want    int
		wantErr bool
	}{
		{"unset", "", 0, false},
		{"bounded", "3", 3, false},
		{"unbounded", "*", 0, true},
		{"not a number", "twice", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			fsys := fstest.MapFS{
				"levels/level5.tmx": {Data: []byte(createTriggerTMX(tt.repeat))},
			}
			loader := NewFSLoader(fsys, "mem")

			cfg, err := loader.LoadLevel("level5")
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidRepeat)
				return
			}
			require.NoError(t, err)
			require.Len(t, cfg.Triggers, 1)
			assert.Equal(t, tt.want, cfg.Triggers[0].Repeat)
		})
	}
}

func TestLoader_LoadLevel_Unknown(t *testing.T) {
	loader := NewLoader(configsDir)

	_, err := loader.LoadLevel("nope")
	assert.ErrorIs(t, err, ErrUnknownLevel)
}

func TestLoader_ListLevels(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/level0.yaml": {Data: []byte("id: 0\n")},
		"levels/level2.tmx":  {Data: []byte("<map/>")},
		"levels/level1.yml":  {Data: []byte("id: 1\n")},
		"levels/notes.txt":   {Data: []byte("ignored")},
	}
	loader := NewFSLoader(fsys, "mem")

	names, err := loader.ListLevels()
	require.NoError(t, err)
	assert.Equal(t, []string{"level0", "level1", "level2"}, names)
}

func TestLoader_LoadLevel_BadYAML(t *testing.T) {
	fsys := fstest.MapFS{
		"levels/broken.yaml": {Data: []byte("tiles: [[1, 2\n")},
	}
	loader := NewFSLoader(fsys, "mem")

	_, err := loader.LoadLevel("broken")
	assert.Error(t, err)
}

func TestLoader_LoadGame_Missing(t *testing.T) {
	loader := NewFSLoader(fstest.MapFS{}, "mem")

	_, err := loader.LoadGame()
	assert.Error(t, err)
}

func TestLevelConfig_ResolveCellSize(t *testing.T) {
	cfg := &LevelConfig{Name: "x"}
	size, err := cfg.ResolveCellSize(100)
	require.NoError(t, err)
	assert.Equal(t, 100.0, size)

	cfg.CellSize = 16
	_, err = cfg.ResolveCellSize(100)
	assert.ErrorIs(t, err, ErrCellSizeMismatch)
}

func TestLevelIDFromStem(t *testing.T) {
	assert.Equal(t, 3, levelIDFromStem("level3"))
	assert.Equal(t, 0, levelIDFromStem("castle"))
	assert.Equal(t, "level7", LevelName(7))
}

func TestIsLevelFile(t *testing.T) {
	assert.True(t, IsLevelFile("a/level1.YAML"))
	assert.True(t, IsLevelFile("level2.tmx"))
	assert.False(t, IsLevelFile("level2.tmx~"))
}
