package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsplayground/ecs"
	"github.com/milk9111/fpsplayground/ecs/component"
)

// MovementSystem turns held keys and look yaw into a horizontal velocity.
// Vertical velocity is left to physics; releasing all keys stops at once.
type MovementSystem struct{}

func NewMovementSystem() *MovementSystem {
	return &MovementSystem{}
}

func (s *MovementSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach4(w,
		component.PlayerComponent,
		component.InputComponent,
		component.LookComponent,
		component.PhysicsBodyComponent,
		func(_ ecs.Entity, p *component.Player, in *component.Input, look *component.Look, pb *component.PhysicsBody) {
			if pb.Body == nil || pb.Body.Removed() {
				return
			}
			dir := MoveDirection(in, look.Yaw).Mul(p.MoveSpeed)
			vel := pb.Body.Linvel()
			pb.Body.SetLinvel(mgl64.Vec3{dir.X(), vel.Y(), dir.Z()}, true)
			pb.Body.SetAngvel(mgl64.Vec3{}, true)
		})
}

// MoveDirection returns the unit horizontal direction for the held keys at
// the given yaw, or zero when they cancel out or none are held.
func MoveDirection(in *component.Input, yaw float64) mgl64.Vec3 {
	rot := mgl64.Rotate3DY(yaw)
	front := rot.Mul3x1(mgl64.Vec3{0, 0, -1})
	side := rot.Mul3x1(mgl64.Vec3{-1, 0, 0})

	var dir mgl64.Vec3
	if in.Forward {
		dir = dir.Add(front)
	}
	if in.Backward {
		dir = dir.Sub(front)
	}
	if in.Left {
		dir = dir.Add(side)
	}
	if in.Right {
		dir = dir.Sub(side)
	}
	if dir.Len() < 1e-9 {
		return mgl64.Vec3{}
	}
	return dir.Normalize()
}
