package replay

// FormatVersion is written to every recording and checked on load
const FormatVersion = "1.0"

// FrameInput records input state for a single frame
type FrameInput struct {
	F   int  `json:"f"`             // Frame number
	L   bool `json:"l,omitempty"`   // Left
	R   bool `json:"r,omitempty"`   // Right
	J   bool `json:"j,omitempty"`   // Jump
	Q   bool `json:"q,omitempty"`   // Quit
	Esc bool `json:"esc,omitempty"` // Escape
}

// ReplayData contains all data needed to replay a game session.
// The step is frame-coupled, so the start level and the inputs are enough.
type ReplayData struct {
	Version   string       `json:"version"`
	Level     int          `json:"level"`
	StartTime string       `json:"startTime"`
	Frames    []FrameInput `json:"frames"`
}
