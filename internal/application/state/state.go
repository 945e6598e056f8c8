package state

// GameState represents the current state of the game
type GameState int

const (
	StatePlaying GameState = iota
	StateGameOver
)

// String returns the string representation of the game state
func (s GameState) String() string {
	switch s {
	case StatePlaying:
		return "Playing"
	case StateGameOver:
		return "GameOver"
	default:
		return "Unknown"
	}
}

// LevelID identifies a level selectable at startup or by a goto reaction
type LevelID int

// Session is the session state machine value: Playing(level) or GameOver.
// It is owned by the frame loop and passed explicitly through each update.
type Session struct {
	State GameState
	Level LevelID
}

// NewSession starts a session playing the given level
func NewSession(level LevelID) Session {
	return Session{State: StatePlaying, Level: level}
}

// Playing reports whether physics should run this frame
func (s Session) Playing() bool {
	return s.State == StatePlaying
}

// Kill ends the session. Killing a finished session is a no-op.
func (s *Session) Kill() bool {
	if s.State != StatePlaying {
		return false
	}
	s.State = StateGameOver
	return true
}

// Goto requests a level change while playing
func (s *Session) Goto(level LevelID) bool {
	if s.State != StatePlaying {
		return false
	}
	s.Level = level
	return true
}

// Reset leaves GameOver and restarts the current level
func (s *Session) Reset() {
	s.State = StatePlaying
}

// Select switches to a level from any state
func (s *Session) Select(level LevelID) {
	s.State = StatePlaying
	s.Level = level
}
