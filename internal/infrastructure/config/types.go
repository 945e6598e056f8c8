package config

// GameConfig is the root config for game.json
type GameConfig struct {
	Display DisplayConfig   `json:"display"`
	Physics PhysicsSettings `json:"physics"`
	Player  PlayerConfig    `json:"player"`
	Assets  AssetsConfig    `json:"assets"`
}

type DisplayConfig struct {
	ScreenWidth  int `json:"screenWidth"`
	ScreenHeight int `json:"screenHeight"`
	Scale        int `json:"scale"`
	Framerate    int `json:"framerate"`
}

// PhysicsSettings holds per-frame constants. There is no delta time:
// one integration step is one frame.
type PhysicsSettings struct {
	CellSize float64 `json:"cellSize"`
	Gravity  float64 `json:"gravity"`
}

type PlayerConfig struct {
	Width       float64 `json:"width"`
	Height      float64 `json:"height"`
	Speed       float64 `json:"speed"`
	JumpImpulse float64 `json:"jumpImpulse"`
	Sprite      string  `json:"sprite"`
	StartLevel  int     `json:"startLevel"`
}

type AssetsConfig struct {
	Placeholder string `json:"placeholder"`
}
