package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/spf13/cobra"

	"github.com/younwookim/tilejump/internal/application/game"
	"github.com/younwookim/tilejump/internal/application/scene/playing"
	"github.com/younwookim/tilejump/internal/application/state"
	"github.com/younwookim/tilejump/internal/infrastructure/config"
)

var (
	flagLevel  int
	flagRecord string
	flagWatch  bool
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Play in a window",
	Long: `Open the game window on a level.

Controls:
  Left/A, Right/D   - Move
  Space/Up/W        - Jump (and retry after game over)
  Q/Esc             - Quit

Examples:
  game run
  game run --level 2
  game run --record run.json
  game run --configs ./cmd/game/configs --watch`,
	Args: cobra.NoArgs,
	RunE: runRun,
}

func init() {
	runCmd.Flags().IntVar(&flagLevel, "level", -1, "Start level (default: player.startLevel from game.json)")
	runCmd.Flags().StringVar(&flagRecord, "record", "", "Record input to file (e.g., --record replay.json)")
	runCmd.Flags().BoolVar(&flagWatch, "watch", false, "Reload the active level when its file changes (needs --configs)")
}

func runRun(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	level := flagLevel
	if level < 0 {
		level = e.game.Player.StartLevel
	}

	opts := playing.Options{
		Game:       e.game,
		Loader:     e.loader,
		Assets:     e.assets,
		Level:      state.LevelID(level),
		Logger:     e.logger,
		RecordPath: flagRecord,
	}

	if flagWatch {
		if dir := e.loader.BasePath(); dir == "" {
			e.logger.Warn("--watch needs --configs, embedded configs never change")
		} else {
			w, err := config.NewWatcher(dir)
			if err != nil {
				return err
			}
			defer func() { _ = w.Close() }()
			opts.Changes = w
			e.logger.Info("watching levels", "dir", dir)
		}
	}

	scene, err := playing.New(opts)
	if err != nil {
		return err
	}
	return runWindow(e, game.New(scene, e.game.Display.ScreenWidth, e.game.Display.ScreenHeight), "tilejump")
}

func runWindow(e *env, g *game.Game, title string) error {
	display := e.game.Display
	ebiten.SetWindowSize(display.ScreenWidth*max(display.Scale, 1), display.ScreenHeight*max(display.Scale, 1))
	ebiten.SetWindowTitle(title)
	ebiten.SetTPS(display.Framerate)
	g.SetDT(1 / float64(max(display.Framerate, 1)))

	// Closing the window skips Update, so stop the scene here too
	defer g.Stop()
	return ebiten.RunGame(g)
}
