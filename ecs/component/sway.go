package component

import "github.com/go-gl/mathgl/mgl64"

// GunSway offsets the held weapon against horizontal motion.
type GunSway struct {
	Current mgl64.Vec3
	Target  mgl64.Vec3

	Intensity float64
	// Smoothing is the exponential approach rate per second.
	Smoothing float64
}

var GunSwayComponent = NewComponent[GunSway]()

// WeaponMount is where the held weapon is drawn. Offset is in camera
// space; Position and Orientation are written each frame.
type WeaponMount struct {
	Offset      mgl64.Vec3
	Position    mgl64.Vec3
	Orientation mgl64.Quat
}

var WeaponMountComponent = NewComponent[WeaponMount]()
