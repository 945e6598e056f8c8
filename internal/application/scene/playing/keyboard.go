package playing

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/younwookim/tilejump/internal/application/system"
)

// Keyboard polls the ebiten keyboard once per frame
type Keyboard struct {
	left, right, jump []ebiten.Key
}

// NewKeyboard creates a keyboard source with the default key bindings
func NewKeyboard() *Keyboard {
	return &Keyboard{
		left:  []ebiten.Key{ebiten.KeyArrowLeft, ebiten.KeyA},
		right: []ebiten.Key{ebiten.KeyArrowRight, ebiten.KeyD},
		jump:  []ebiten.Key{ebiten.KeySpace, ebiten.KeyArrowUp, ebiten.KeyW},
	}
}

// GetInput reads the current input state
func (k *Keyboard) GetInput() system.InputState {
	return system.InputState{
		Left:   anyPressed(k.left),
		Right:  anyPressed(k.right),
		Jump:   anyPressed(k.jump),
		Quit:   ebiten.IsKeyPressed(ebiten.KeyQ),
		Escape: ebiten.IsKeyPressed(ebiten.KeyEscape),
	}
}

func anyPressed(keys []ebiten.Key) bool {
	for _, k := range keys {
		if ebiten.IsKeyPressed(k) {
			return true
		}
	}
	return false
}
