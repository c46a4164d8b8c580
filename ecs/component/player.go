package component

// Player carries the movement tuning of a player-controlled body.
type Player struct {
	MoveSpeed             float64
	JumpImpulse           float64
	JumpVelocityThreshold float64
	EyeHeight             float64
}

var PlayerComponent = NewComponent[Player]()
