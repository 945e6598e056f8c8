package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrUnknownLevel is returned when no level file matches a name
var ErrUnknownLevel = errors.New("unknown level")

// LevelsDir is the directory holding level files inside the config root
const LevelsDir = "levels"

var levelExtensions = []string{".yaml", ".yml", ".tmx"}

// Loader loads game configuration and levels using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the path the loader was created with
func (l *Loader) BasePath() string {
	return l.basePath
}

// LoadGame loads game.json
func (l *Loader) LoadGame() (*GameConfig, error) {
	data, err := fs.ReadFile(l.fsys, "game.json")
	if err != nil {
		return nil, fmt.Errorf("failed to read game.json: %w", err)
	}

	var cfg GameConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse game.json: %w", err)
	}

	return &cfg, nil
}

// LevelName returns the file stem used for a numeric level id
func LevelName(id int) string {
	return fmt.Sprintf("level%d", id)
}

// LoadLevel loads a level by file stem, trying each supported format
func (l *Loader) LoadLevel(name string) (*LevelConfig, error) {
	for _, ext := range levelExtensions {
		p := path.Join(LevelsDir, name+ext)
		if _, err := fs.Stat(l.fsys, p); err != nil {
			continue
		}
		return l.LoadLevelFile(p)
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownLevel, name)
}

// LoadLevelFile loads a level from an explicit path inside the loader's fs
func (l *Loader) LoadLevelFile(p string) (*LevelConfig, error) {
	var (
		cfg *LevelConfig
		err error
	)
	switch strings.ToLower(path.Ext(p)) {
	case ".tmx":
		cfg, err = loadTMX(l.fsys, p)
	case ".yaml", ".yml":
		cfg, err = l.loadYAML(p)
	default:
		return nil, fmt.Errorf("unsupported level format %s", p)
	}
	if err != nil {
		return nil, err
	}

	if cfg.Name == "" {
		cfg.Name = levelStem(p)
	}
	return cfg, nil
}

func (l *Loader) loadYAML(p string) (*LevelConfig, error) {
	data, err := fs.ReadFile(l.fsys, p)
	if err != nil {
		return nil, fmt.Errorf("failed to read level %s: %w", p, err)
	}

	var cfg LevelConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse level %s: %w", p, err)
	}
	return &cfg, nil
}

// ListLevels returns the stems of all level files, sorted
func (l *Loader) ListLevels() ([]string, error) {
	entries, err := fs.ReadDir(l.fsys, LevelsDir)
	if err != nil {
		return nil, fmt.Errorf("failed to list levels: %w", err)
	}

	seen := make(map[string]bool)
	var names []string
	for _, e := range entries {
		if e.IsDir() || !IsLevelFile(e.Name()) {
			continue
		}
		stem := levelStem(e.Name())
		if seen[stem] {
			continue
		}
		seen[stem] = true
		names = append(names, stem)
	}

	sort.Strings(names)
	return names, nil
}

// IsLevelFile reports whether a file name has a supported level extension
func IsLevelFile(name string) bool {
	ext := strings.ToLower(path.Ext(name))
	for _, e := range levelExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

func levelStem(p string) string {
	base := path.Base(p)
	return strings.TrimSuffix(base, path.Ext(base))
}
