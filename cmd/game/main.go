// game is a tile platformer with level files, trigger scripts and input replays.
//
// Usage:
//
//	game run [--level n] [--record file] [--watch]   - Play in a window
//	game replay <file> [--tui]                        - Play back a recording
//	game validate [level...]                          - Check level files
//	game levels                                       - List level files
//
// Global flags:
//
//	--configs <dir>     - Read configs from a directory instead of the embedded set
//	--log-level <lvl>   - debug, info, warn or error (default: info)
package main

import (
	"fmt"
	"io/fs"
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/younwookim/tilejump/internal/infrastructure/asset"
	"github.com/younwookim/tilejump/internal/infrastructure/config"
)

var (
	// Global flags
	flagConfigs  string
	flagLogLevel string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "game",
	Short: "Tile platformer",
	Long: `A tile platformer driven by level files.

Levels are YAML or Tiled TMX files under configs/levels. Triggers in a level
register reactions (kill, goto, destroy, log, script) for a trigger kind and
a tag.

Examples:
  game run
  game run --level 1 --record run.json
  game run --configs ./cmd/game/configs --watch
  game replay run.json --tui
  game validate`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagConfigs, "configs", "", "Config directory (default: embedded configs)")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(validateCmd)
	rootCmd.AddCommand(levelsCmd)
}

func newLogger() (*log.Logger, error) {
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		return nil, fmt.Errorf("invalid --log-level: %w", err)
	}
	return log.NewWithOptions(os.Stderr, log.Options{
		ReportTimestamp: true,
		Prefix:          "tilejump",
		Level:           level,
	}), nil
}

// configSource returns the config filesystem and the directory to watch.
// The directory is empty for the embedded configs.
func configSource() (fs.FS, string, error) {
	if flagConfigs != "" {
		return os.DirFS(flagConfigs), flagConfigs, nil
	}
	fsys, err := fs.Sub(configFS, "configs")
	if err != nil {
		return nil, "", fmt.Errorf("failed to get config subfs: %w", err)
	}
	return fsys, "", nil
}

// env is what every command needs before it does anything
type env struct {
	loader *config.Loader
	game   *config.GameConfig
	assets *asset.Library
	logger *log.Logger
}

func loadEnv() (*env, error) {
	logger, err := newLogger()
	if err != nil {
		return nil, err
	}
	fsys, dir, err := configSource()
	if err != nil {
		return nil, err
	}
	return newEnv(fsys, dir, logger)
}

func newEnv(fsys fs.FS, dir string, logger *log.Logger) (*env, error) {
	loader := config.NewFSLoader(fsys, dir)
	game, err := loader.LoadGame()
	if err != nil {
		return nil, err
	}

	return &env{
		loader: loader,
		game:   game,
		assets: asset.NewLibrary(fsys, game.Assets.Placeholder, logger),
		logger: logger,
	}, nil
}
