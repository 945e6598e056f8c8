package system

import "github.com/younwookim/tilejump/internal/domain/entity"

// InputState is the per-frame key snapshot
type InputState struct {
	Left   bool
	Right  bool
	Jump   bool
	Quit   bool
	Escape bool
}

// Controls returns the part of the snapshot the player body consumes
func (in InputState) Controls() entity.Controls {
	return entity.Controls{Left: in.Left, Right: in.Right, Jump: in.Jump}
}

// StopRequested reports whether the frame loop should end
func (in InputState) StopRequested() bool {
	return in.Quit || in.Escape
}
