package render

import (
	"image"
	"image/color"
	"math"

	"github.com/gdamore/tcell/v2"

	"github.com/younwookim/tilejump/internal/domain/entity"
)

// TerminalRenderer draws into a tcell screen. Each terminal cell covers
// cellW×cellH screen units; tiles are shown as blocks of their average color.
type TerminalRenderer struct {
	screen   tcell.Screen
	images   Images
	tileSize float64
	cellW    float64
	cellH    float64
	swatches map[string]tcell.Color
}

// NewTerminalRenderer creates a renderer for an initialized screen
func NewTerminalRenderer(screen tcell.Screen, images Images, tileSize, cellW, cellH float64) *TerminalRenderer {
	return &TerminalRenderer{
		screen:   screen,
		images:   images,
		tileSize: tileSize,
		cellW:    cellW,
		cellH:    cellH,
		swatches: make(map[string]tcell.Color),
	}
}

// Viewport returns the screen size in screen units
func (r *TerminalRenderer) Viewport() (w, h int) {
	cols, rows := r.screen.Size()
	return int(float64(cols) * r.cellW), int(float64(rows) * r.cellH)
}

func (r *TerminalRenderer) Clear(c color.Color) {
	r.screen.Fill(' ', tcell.StyleDefault.Background(toTcell(c)))
}

func (r *TerminalRenderer) DrawTile(ref string, x, y float64) {
	r.DrawSprite(ref, entity.Rect{X: x, Y: y, W: r.tileSize, H: r.tileSize})
}

// DrawSprite fills rect with the image's swatch color
func (r *TerminalRenderer) DrawSprite(ref string, rect entity.Rect) {
	r.fill(r.swatch(ref), 255, rect)
}

func (r *TerminalRenderer) DrawRect(c color.Color, rect entity.Rect) {
	_, _, _, a := c.RGBA()
	r.fill(toTcell(c), uint8(a>>8), rect)
}

func (r *TerminalRenderer) DrawText(s string, x, y float64) {
	col, row := int(x/r.cellW), int(y/r.cellH)
	for i, ch := range []rune(s) {
		_, _, style, _ := r.screen.GetContent(col+i, row)
		r.screen.SetContent(col+i, row, ch, nil, style.Foreground(tcell.ColorWhite))
	}
}

func (r *TerminalRenderer) Present() {
	r.screen.Show()
}

func (r *TerminalRenderer) fill(c tcell.Color, alpha uint8, rect entity.Rect) {
	if alpha == 0 {
		return
	}
	cols, rows := r.screen.Size()
	c0 := clampInt(int(math.Floor(rect.X/r.cellW)), 0, cols)
	c1 := clampInt(int(math.Ceil((rect.X+rect.W)/r.cellW)), 0, cols)
	r0 := clampInt(int(math.Floor(rect.Y/r.cellH)), 0, rows)
	r1 := clampInt(int(math.Ceil((rect.Y+rect.H)/r.cellH)), 0, rows)

	for row := r0; row < r1; row++ {
		for col := c0; col < c1; col++ {
			bg := c
			if alpha < 255 {
				_, _, style, _ := r.screen.GetContent(col, row)
				_, under, _ := style.Decompose()
				bg = blend(under, c, alpha)
			}
			r.screen.SetContent(col, row, ' ', nil, tcell.StyleDefault.Background(bg))
		}
	}
}

func (r *TerminalRenderer) swatch(ref string) tcell.Color {
	if c, ok := r.swatches[ref]; ok {
		return c
	}
	c := toTcell(averageColor(r.images.Image(ref)))
	r.swatches[ref] = c
	return c
}

func averageColor(img image.Image) color.Color {
	b := img.Bounds()
	if b.Empty() {
		return color.Black
	}
	var rs, gs, bs, n uint64
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			r, g, bb, _ := img.At(x, y).RGBA()
			rs += uint64(r >> 8)
			gs += uint64(g >> 8)
			bs += uint64(bb >> 8)
			n++
		}
	}
	return color.RGBA{R: uint8(rs / n), G: uint8(gs / n), B: uint8(bs / n), A: 255}
}

func toTcell(c color.Color) tcell.Color {
	r, g, b, _ := c.RGBA()
	return tcell.NewRGBColor(int32(r>>8), int32(g>>8), int32(b>>8))
}

// blend mixes over onto under. over is premultiplied by alpha.
func blend(under, over tcell.Color, alpha uint8) tcell.Color {
	ur, ug, ub := under.RGB()
	if ur < 0 {
		ur, ug, ub = 0, 0, 0
	}
	or, og, ob := over.RGB()
	keep := int32(255 - alpha)
	return tcell.NewRGBColor(
		clamp8(or+ur*keep/255),
		clamp8(og+ug*keep/255),
		clamp8(ob+ub*keep/255),
	)
}

func clamp8(v int32) int32 {
	if v > 255 {
		return 255
	}
	return v
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
