package component

import "github.com/go-gl/mathgl/mgl64"

// Camera is the first-person view derived from the player body and look
// angles each frame.
type Camera struct {
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

var CameraComponent = NewComponent[Camera]()
