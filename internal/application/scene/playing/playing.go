// Package playing provides the main gameplay scene.
package playing

import (
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"

	"github.com/younwookim/tilejump/internal/application/scene"
	"github.com/younwookim/tilejump/internal/application/state"
	"github.com/younwookim/tilejump/internal/application/system"
	"github.com/younwookim/tilejump/internal/domain/entity"
	"github.com/younwookim/tilejump/internal/infrastructure/asset"
	"github.com/younwookim/tilejump/internal/infrastructure/config"
	"github.com/younwookim/tilejump/internal/infrastructure/palette"
	"github.com/younwookim/tilejump/internal/infrastructure/render"
)

// gameOverFade is the overlay fade-in duration in seconds
const gameOverFade = 0.5

// Options configures a Playing scene
type Options struct {
	Game   *config.GameConfig
	Loader *config.Loader
	Assets *asset.Library
	Level  state.LevelID
	Logger *log.Logger

	// Input defaults to the keyboard
	Input InputSource
	// Changes enables hot reload of the active level when set
	Changes LevelChanges
	// RecordPath enables input recording, saved when the scene exits
	RecordPath string
}

// Playing is the main gameplay scene
type Playing struct {
	game    *config.GameConfig
	loader  *config.Loader
	assets  *asset.Library
	input   InputSource
	changes LevelChanges
	logger  *log.Logger

	session   state.Session
	world     *system.World
	loaded    state.LevelID
	levelName string
	camera    Camera
	renderer  *render.EbitenRenderer
	frame     int

	// Game over overlay
	fade     *gween.Tween
	overlay  float32
	jumpHeld bool

	// Input recording
	recorder       *Recorder
	recordFilename string
}

// New creates a new Playing scene on opts.Level.
// The level is built before the first frame so malformed data fails here.
func New(opts Options) (*Playing, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}
	input := opts.Input
	if input == nil {
		input = NewKeyboard()
	}

	display := opts.Game.Display
	p := &Playing{
		game:           opts.Game,
		loader:         opts.Loader,
		assets:         opts.Assets,
		input:          input,
		changes:        opts.Changes,
		logger:         logger,
		session:        state.NewSession(opts.Level),
		camera:         NewCamera(float64(display.ScreenWidth), float64(display.ScreenHeight)),
		renderer:       render.NewEbitenRenderer(opts.Assets, opts.Game.Physics.CellSize),
		recordFilename: opts.RecordPath,
	}

	level, name, err := p.buildLevel(opts.Level)
	if err != nil {
		return nil, err
	}
	p.world = system.NewWorld(level, bodyParams(opts.Game), p.playerLook(), logger)
	p.loaded = opts.Level
	p.levelName = name

	if opts.RecordPath != "" {
		p.recorder = NewRecorder(int(opts.Level))
		logger.Info("recording enabled", "path", opts.RecordPath, "level", opts.Level)
	}

	p.updateCamera()
	return p, nil
}

func bodyParams(cfg *config.GameConfig) entity.BodyParams {
	return entity.BodyParams{
		Width:       cfg.Player.Width,
		Height:      cfg.Player.Height,
		Speed:       cfg.Player.Speed,
		Gravity:     cfg.Physics.Gravity,
		JumpImpulse: cfg.Player.JumpImpulse,
	}
}

func (p *Playing) playerLook() entity.Appearance {
	if p.game.Player.Sprite == "" {
		return entity.RectAppearance(palette.Player)
	}
	return entity.SpriteAppearance(p.assets.Load(p.game.Player.Sprite))
}

// buildLevel loads and builds the level file for id
func (p *Playing) buildLevel(id state.LevelID) (*system.Level, string, error) {
	name := config.LevelName(int(id))
	cfg, err := p.loader.LoadLevel(name)
	if err != nil {
		return nil, name, err
	}
	level, err := system.LoadLevel(cfg, p.game, p.assets, p.logger)
	if err != nil {
		return nil, name, fmt.Errorf("level %s: %w", name, err)
	}
	return level, name, nil
}

// Update proceeds the game state (implements scene.Scene)
func (p *Playing) Update(dt float64) (scene.Scene, error) {
	p.applyLevelChanges()

	in := p.input.GetInput()
	if p.recorder != nil {
		p.recorder.RecordFrame(in)
	}
	p.frame++

	if in.StopRequested() {
		p.logger.Info("stop requested", "frame", p.frame)
		return nil, scene.ErrQuit
	}

	switch p.session.State {
	case state.StatePlaying:
		p.step(in)
	case state.StateGameOver:
		if p.fade != nil {
			p.overlay, _ = p.fade.Update(float32(dt))
		}
		if in.Jump && !p.jumpHeld {
			p.restart()
		}
	}
	p.jumpHeld = in.Jump

	p.updateCamera()
	return nil, nil // nil = stay on this scene
}

func (p *Playing) step(in system.InputState) {
	p.session, _ = p.world.Step(p.session, in.Controls())

	switch {
	case p.session.State == state.StateGameOver:
		p.logger.Info("game over", "level", p.session.Level, "frame", p.frame)
		p.fade = gween.New(0, 1, gameOverFade, ease.OutQuad)
		p.overlay = 0
	case p.session.Level != p.loaded:
		p.changeLevel(p.session.Level)
	}
}

// changeLevel swaps the grid wholesale after a goto reaction
func (p *Playing) changeLevel(id state.LevelID) {
	level, name, err := p.buildLevel(id)
	if err != nil {
		p.logger.Error("level change failed, staying on current level", "level", id, "error", err)
		p.session.Level = p.loaded
		return
	}

	p.world.Load(level)
	p.loaded = id
	p.levelName = name
	p.logger.Info("level changed", "level", id, "name", level.Name)
}

func (p *Playing) applyLevelChanges() {
	if p.changes == nil {
		return
	}
	for {
		name, ok := p.changes.Poll()
		if !ok {
			return
		}
		if name != p.levelName {
			p.logger.Debug("ignoring change to inactive level", "level", name)
			continue
		}

		level, _, err := p.buildLevel(p.loaded)
		if err != nil {
			p.logger.Warn("reload failed, keeping current level", "level", name, "error", err)
			continue
		}
		p.world.Load(level)
		p.session.Select(p.loaded)
		p.fade = nil
		p.overlay = 0
		p.logger.Info("level reloaded", "level", name)
	}
}

// restart leaves GameOver and respawns everything on the current level
func (p *Playing) restart() {
	p.session.Reset()
	p.world.Reset()
	p.fade = nil
	p.overlay = 0
	p.logger.Info("restarted", "level", p.session.Level, "frame", p.frame)
}

func (p *Playing) updateCamera() {
	grid := p.world.Level().Grid
	if player := p.world.Player(); player != nil {
		p.camera.Follow(player.Rect(), grid.Width(), grid.Height())
	}
}

// SetViewport resizes the camera, in world units
func (p *Playing) SetViewport(w, h float64) {
	p.camera = NewCamera(w, h)
	p.updateCamera()
}

// Session returns the current session value
func (p *Playing) Session() state.Session {
	return p.session
}

// World returns the running world
func (p *Playing) World() *system.World {
	return p.world
}

// Frame returns the number of frames updated so far
func (p *Playing) Frame() int {
	return p.frame
}

// saveRecording saves the current recording to file
func (p *Playing) saveRecording() {
	if p.recorder == nil || !p.recorder.IsRecording() {
		return
	}
	p.recorder.Stop()

	filename := p.recordFilename
	if filename == "" {
		filename = GenerateFilename()
	}

	if err := p.recorder.Save(filename); err != nil {
		p.logger.Error("failed to save recording", "path", filename, "error", err)
		return
	}
	p.logger.Info("recording saved", "path", filename, "frames", p.recorder.FrameCount())
}

// Draw renders the game screen
func (p *Playing) Draw(screen *ebiten.Image) {
	p.renderer.Begin(screen)
	p.Render(p.renderer)
}

// Render draws the current frame through r.
// It only reads state, so it is safe to call any number of times per frame.
func (p *Playing) Render(r render.Renderer) {
	r.Clear(palette.Background)
	p.drawTiles(r)
	p.drawEntities(r)
	p.drawOverlay(r)
	r.Present()
}

func (p *Playing) drawTiles(r render.Renderer) {
	level := p.world.Level()
	grid := level.Grid

	r0, r1, c0, c1 := p.camera.VisibleCells(grid)
	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			id := grid.At(row, col)
			if id == entity.TileEmpty {
				continue
			}
			cell := p.camera.ToScreen(grid.RectOf(row, col))
			r.DrawTile(level.TileRef(id), cell.X, cell.Y)
		}
	}
}

func (p *Playing) drawEntities(r render.Renderer) {
	ents := p.world.Entities()
	view := p.camera.View()

	for _, id := range ents.Enemies() {
		b := ents.Bounds[id]
		if !b.Intersects(view) {
			continue
		}
		drawAppearance(r, ents.Appearance[id], p.camera.ToScreen(b))
	}

	if player := p.world.Player(); player != nil {
		drawAppearance(r, ents.Appearance[ents.PlayerID], p.camera.ToScreen(player.Rect()))
	}
}

func drawAppearance(r render.Renderer, look entity.Appearance, at entity.Rect) {
	switch look.Kind {
	case entity.AppearanceSprite:
		r.DrawSprite(look.Image, at)
	default:
		r.DrawRect(look.Color, at)
	}
}

func (p *Playing) drawOverlay(r render.Renderer) {
	gameOver := p.session.State == state.StateGameOver
	if gameOver {
		view := p.camera.View()
		r.DrawRect(palette.Fade(palette.GameOver, float64(p.overlay)), entity.Rect{W: view.W, H: view.H})
	}

	text, ok := r.(render.TextDrawer)
	if !ok {
		return
	}
	text.DrawText(fmt.Sprintf("%s  frame %d", p.world.Level().Name, p.frame), 8, 8)
	if gameOver {
		text.DrawText("GAME OVER - press jump to retry", 8, 28)
	}
}

// OnEnter is called when entering the scene
func (p *Playing) OnEnter() {
	p.logger.Info("playing", "level", p.session.Level, "name", p.world.Level().Name)
}

// OnExit saves the recording, if any
func (p *Playing) OnExit() {
	p.saveRecording()
}
