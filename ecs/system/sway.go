package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsplayground/common"
	"github.com/milk9111/fpsplayground/ecs"
	"github.com/milk9111/fpsplayground/ecs/component"
)

// SwaySystem lags the held weapon opposite to horizontal motion and poses
// the weapon mount in front of the camera. Entities without a mount are
// skipped.
type SwaySystem struct{}

func NewSwaySystem() *SwaySystem {
	return &SwaySystem{}
}

func (s *SwaySystem) Update(w *ecs.World) {
	if w == nil {
		return
	}
	dt := w.DeltaSeconds()

	ecs.ForEach4(w,
		component.GunSwayComponent,
		component.WeaponMountComponent,
		component.CameraComponent,
		component.PhysicsBodyComponent,
		func(_ ecs.Entity, sway *component.GunSway, mount *component.WeaponMount, cam *component.Camera, pb *component.PhysicsBody) {
			if pb.Body == nil || pb.Body.Removed() {
				return
			}
			StepSway(sway, pb.Body.Linvel(), dt)
			mount.Position = cam.Position.Add(cam.Orientation.Rotate(mount.Offset.Add(sway.Current)))
			mount.Orientation = cam.Orientation
		})
}

// StepSway retargets sway from the velocity and moves the current offset
// toward it by the frame-rate independent factor 1 - e^(-k*dt).
func StepSway(sway *component.GunSway, vel mgl64.Vec3, dt float64) {
	sway.Target = mgl64.Vec3{-vel.X(), 0, -vel.Z()}.Mul(sway.Intensity)
	f := common.Damp(sway.Smoothing, dt)
	sway.Current = sway.Current.Add(sway.Target.Sub(sway.Current).Mul(f))
}
