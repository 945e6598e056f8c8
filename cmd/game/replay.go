package main

import (
	"errors"
	"fmt"
	"sync/atomic"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/spf13/cobra"

	"github.com/younwookim/tilejump/internal/application/game"
	"github.com/younwookim/tilejump/internal/application/replay"
	"github.com/younwookim/tilejump/internal/application/scene"
	"github.com/younwookim/tilejump/internal/application/scene/playing"
	"github.com/younwookim/tilejump/internal/application/state"
	"github.com/younwookim/tilejump/internal/infrastructure/render"
)

var flagTUI bool

var replayCmd = &cobra.Command{
	Use:   "replay <file>",
	Short: "Play back a recorded run",
	Long: `Play back input recorded with 'game run --record'.

The step is frame-coupled, so a recording reproduces the run exactly on the
same level files. With --tui the replay is drawn in the terminal instead of
a window; press q, Esc or Ctrl+C to stop.`,
	Args: cobra.ExactArgs(1),
	RunE: runReplay,
}

func init() {
	replayCmd.Flags().BoolVar(&flagTUI, "tui", false, "Draw the replay in the terminal")
}

func runReplay(cmd *cobra.Command, args []string) error {
	e, err := loadEnv()
	if err != nil {
		return err
	}

	data, err := replay.LoadReplay(args[0])
	if err != nil {
		return err
	}
	e.logger.Info("replaying", "file", args[0], "level", data.Level, "frames", len(data.Frames))

	p, err := playing.New(playing.Options{
		Game:   e.game,
		Loader: e.loader,
		Assets: e.assets,
		Level:  state.LevelID(data.Level),
		Logger: e.logger,
		Input:  playing.NewReplaySource(replay.NewReplayer(*data)),
	})
	if err != nil {
		return err
	}

	if !flagTUI {
		return runWindow(e, game.New(p, e.game.Display.ScreenWidth, e.game.Display.ScreenHeight), "tilejump replay")
	}

	screen, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("failed to open terminal: %w", err)
	}
	if err := screen.Init(); err != nil {
		return fmt.Errorf("failed to init terminal: %w", err)
	}
	defer screen.Fini()

	cell := e.game.Physics.CellSize
	r := render.NewTerminalRenderer(screen, e.assets, cell, cell/4, cell/2)

	var stop atomic.Bool
	go watchStopKeys(screen, &stop)

	fps := max(e.game.Display.Framerate, 1)
	ticker := time.NewTicker(time.Second / time.Duration(fps))
	defer ticker.Stop()

	frames, err := playTerminal(p, r, &stop, ticker.C)
	e.logger.Info("replay finished", "frames", frames, "session", p.Session().State)
	return err
}

// watchStopKeys sets stop when a quit key is pressed.
// It returns once the screen is finalized.
func watchStopKeys(screen tcell.Screen, stop *atomic.Bool) {
	for {
		ev := screen.PollEvent()
		if ev == nil {
			return
		}
		if key, ok := ev.(*tcell.EventKey); ok && isStopKey(key) {
			stop.Store(true)
		}
	}
}

func isStopKey(ev *tcell.EventKey) bool {
	switch ev.Key() {
	case tcell.KeyEscape, tcell.KeyCtrlC:
		return true
	case tcell.KeyRune:
		return ev.Rune() == 'q' || ev.Rune() == 'Q'
	}
	return false
}

// playTerminal updates and draws p once per tick until the scene quits or
// stop is set. The stop flag is checked once per frame before the update.
func playTerminal(p *playing.Playing, r *render.TerminalRenderer, stop *atomic.Bool, tick <-chan time.Time) (int, error) {
	w, h := r.Viewport()
	p.SetViewport(float64(w), float64(h))

	frames := 0
	for range tick {
		if stop.Load() {
			return frames, nil
		}

		_, err := p.Update(1.0 / 60.0)
		if errors.Is(err, scene.ErrQuit) {
			return frames, nil
		}
		if err != nil {
			return frames, err
		}
		frames++

		p.Render(r)
	}
	return frames, nil
}
