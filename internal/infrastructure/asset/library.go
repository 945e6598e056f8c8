// Package asset resolves image references for tiles and sprites.
//
// Images are decoded once at level load and cached by path. A path that is
// missing or cannot be decoded resolves to the placeholder image instead of
// failing.
package asset

import (
	"image"
	"image/color"
	"image/draw"
	_ "image/png"
	"io/fs"
	"sort"
	"sync"

	"github.com/charmbracelet/log"
	_ "golang.org/x/image/bmp"
	"golang.org/x/image/colornames"
	_ "golang.org/x/image/webp"
)

// PlaceholderRef is the reference returned for assets that failed to load
const PlaceholderRef = "placeholder"

const placeholderSize = 16

// Library caches decoded images keyed by their path
type Library struct {
	fsys   fs.FS
	logger *log.Logger

	mu     sync.RWMutex
	images map[string]image.Image
}

// NewLibrary creates a library reading from fsys. placeholderPath is tried
// first for the placeholder image; a generated checkerboard is used if it
// cannot be decoded either.
func NewLibrary(fsys fs.FS, placeholderPath string, logger *log.Logger) *Library {
	l := &Library{
		fsys:   fsys,
		logger: logger,
		images: make(map[string]image.Image),
	}

	placeholder, err := l.decode(placeholderPath)
	if err != nil {
		if placeholderPath != "" {
			logger.Warn("placeholder image unavailable, using generated one", "path", placeholderPath, "error", err)
		}
		placeholder = Checkerboard(placeholderSize)
	}
	l.images[PlaceholderRef] = placeholder

	return l
}

// Load decodes path and returns its reference. Failures are logged and
// resolve to PlaceholderRef.
func (l *Library) Load(path string) string {
	if path == "" {
		return PlaceholderRef
	}

	l.mu.RLock()
	_, ok := l.images[path]
	l.mu.RUnlock()
	if ok {
		return path
	}

	img, err := l.decode(path)
	if err != nil {
		l.logger.Warn("asset load failed, using placeholder", "path", path, "error", err)
		return PlaceholderRef
	}

	l.mu.Lock()
	l.images[path] = img
	l.mu.Unlock()
	return path
}

// LoadTileset resolves every entry of a tile id → path mapping
func (l *Library) LoadTileset(paths map[int]string) map[int]string {
	refs := make(map[int]string, len(paths))
	for id, p := range paths {
		refs[id] = l.Load(p)
	}
	return refs
}

// Image returns the decoded image for ref. Unknown refs return the placeholder.
func (l *Library) Image(ref string) image.Image {
	l.mu.RLock()
	defer l.mu.RUnlock()

	if img, ok := l.images[ref]; ok {
		return img
	}
	return l.images[PlaceholderRef]
}

// Refs returns every loaded reference, sorted
func (l *Library) Refs() []string {
	l.mu.RLock()
	defer l.mu.RUnlock()

	refs := make([]string, 0, len(l.images))
	for ref := range l.images {
		refs = append(refs, ref)
	}
	sort.Strings(refs)
	return refs
}

func (l *Library) decode(path string) (image.Image, error) {
	f, err := l.fsys.Open(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = f.Close() }()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, err
	}
	return img, nil
}

// Checkerboard returns a magenta/black checker image of size×size pixels
func Checkerboard(size int) image.Image {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: colornames.Black}, image.Point{}, draw.Src)

	half := size / 2
	if half == 0 {
		half = 1
	}
	var magenta color.Color = colornames.Magenta
	for y := 0; y < size; y++ {
		for x := 0; x < size; x++ {
			if (x/half+y/half)%2 == 0 {
				img.Set(x, y, magenta)
			}
		}
	}
	return img
}
