package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsplayground/ecs"
	"github.com/milk9111/fpsplayground/ecs/component"
)

// CameraSystem places the first-person camera at eye height above the
// body and orients it from the look angles, yaw then pitch, with no roll.
type CameraSystem struct{}

func NewCameraSystem() *CameraSystem {
	return &CameraSystem{}
}

func (s *CameraSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach4(w,
		component.PlayerComponent,
		component.LookComponent,
		component.PhysicsBodyComponent,
		component.CameraComponent,
		func(_ ecs.Entity, p *component.Player, look *component.Look, pb *component.PhysicsBody, cam *component.Camera) {
			if pb.Body == nil || pb.Body.Removed() {
				return
			}
			cam.Position = pb.Body.Translation().Add(mgl64.Vec3{0, p.EyeHeight, 0})
			cam.Orientation = LookOrientation(look.Yaw, look.Pitch)
		})
}

// LookOrientation is the camera rotation for the given yaw and pitch.
func LookOrientation(yaw, pitch float64) mgl64.Quat {
	return mgl64.QuatRotate(yaw, mgl64.Vec3{0, 1, 0}).Mul(mgl64.QuatRotate(pitch, mgl64.Vec3{1, 0, 0}))
}
