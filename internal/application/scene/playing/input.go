package playing

import (
	"github.com/younwookim/tilejump/internal/application/replay"
	"github.com/younwookim/tilejump/internal/application/system"
)

// InputSource yields one input snapshot per frame.
// *Keyboard reads the ebiten keyboard.
type InputSource interface {
	GetInput() system.InputState
}

// LevelChanges reports level files changed on disk.
// *config.Watcher satisfies it.
type LevelChanges interface {
	Poll() (string, bool)
}

// ReplaySource feeds recorded input back into the scene.
// Once the recording is exhausted it requests a stop.
type ReplaySource struct {
	replayer *replay.Replayer
}

// NewReplaySource creates an input source over a replayer
func NewReplaySource(r *replay.Replayer) *ReplaySource {
	return &ReplaySource{replayer: r}
}

// GetInput returns the next recorded frame
func (s *ReplaySource) GetInput() system.InputState {
	in, ok := s.replayer.GetInput()
	if !ok {
		return system.InputState{Quit: true}
	}
	return system.InputState{
		Left:   in.Left,
		Right:  in.Right,
		Jump:   in.Jump,
		Quit:   in.Quit,
		Escape: in.Escape,
	}
}

// Progress returns played and total frame counts
func (s *ReplaySource) Progress() (int, int) {
	return s.replayer.CurrentFrame(), s.replayer.TotalFrames()
}
