package render

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"

	"github.com/younwookim/tilejump/internal/domain/entity"
)

// EbitenRenderer draws onto the ebiten screen image handed to Begin
type EbitenRenderer struct {
	images   Images
	tileSize float64
	cache    map[string]*ebiten.Image
	screen   *ebiten.Image
}

// NewEbitenRenderer creates a renderer drawing tiles scaled to tileSize
func NewEbitenRenderer(images Images, tileSize float64) *EbitenRenderer {
	return &EbitenRenderer{
		images:   images,
		tileSize: tileSize,
		cache:    make(map[string]*ebiten.Image),
	}
}

// Begin sets the target for this frame
func (r *EbitenRenderer) Begin(screen *ebiten.Image) {
	r.screen = screen
}

func (r *EbitenRenderer) Clear(c color.Color) {
	r.screen.Fill(c)
}

func (r *EbitenRenderer) DrawTile(ref string, x, y float64) {
	r.DrawSprite(ref, entity.Rect{X: x, Y: y, W: r.tileSize, H: r.tileSize})
}

// DrawSprite scales the image to fill rect
func (r *EbitenRenderer) DrawSprite(ref string, rect entity.Rect) {
	img := r.image(ref)
	w, h := img.Bounds().Dx(), img.Bounds().Dy()

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(rect.W/float64(w), rect.H/float64(h))
	op.GeoM.Translate(rect.X, rect.Y)
	r.screen.DrawImage(img, op)
}

func (r *EbitenRenderer) DrawRect(c color.Color, rect entity.Rect) {
	ebitenutil.DrawRect(r.screen, rect.X, rect.Y, rect.W, rect.H, c)
}

func (r *EbitenRenderer) DrawText(s string, x, y float64) {
	ebitenutil.DebugPrintAt(r.screen, s, int(x), int(y))
}

// Present is a no-op: ebiten flips the screen after Draw returns
func (r *EbitenRenderer) Present() {}

func (r *EbitenRenderer) image(ref string) *ebiten.Image {
	if img, ok := r.cache[ref]; ok {
		return img
	}
	img := ebiten.NewImageFromImage(r.images.Image(ref))
	r.cache[ref] = img
	return img
}
