package component

import "github.com/milk9111/fpsplayground/common"

// Look holds the view angles in radians. Yaw is unbounded; pitch stays
// within ±MaxPitch.
type Look struct {
	Yaw   float64
	Pitch float64

	InvertY     bool
	Sensitivity float64
	MaxPitch    float64
}

// Turn applies a pointer delta in pixels. Moving right decreases yaw and
// moving down pitches down unless InvertY is set.
func (l *Look) Turn(dx, dy float64) {
	l.Yaw -= dx * l.Sensitivity
	sign := -1.0
	if l.InvertY {
		sign = 1
	}
	l.Pitch = common.ClampAbs(l.Pitch+dy*l.Sensitivity*sign, l.MaxPitch)
}

var LookComponent = NewComponent[Look]()
