package system

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsplayground/ecs"
	"github.com/milk9111/fpsplayground/ecs/component"
)

// JumpSystem applies the jump impulse when a jump was requested this frame
// while grounded and not already moving vertically. The request is
// consumed every frame.
type JumpSystem struct{}

func NewJumpSystem() *JumpSystem {
	return &JumpSystem{}
}

func (s *JumpSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	ecs.ForEach4(w,
		component.PlayerComponent,
		component.InputComponent,
		component.ContactsComponent,
		component.PhysicsBodyComponent,
		func(_ ecs.Entity, p *component.Player, in *component.Input, contacts *component.Contacts, pb *component.PhysicsBody) {
			requested := in.JumpRequested
			in.JumpRequested = false
			if !requested || !contacts.Grounded() || pb.Body == nil || pb.Body.Removed() {
				return
			}
			if math.Abs(pb.Body.Linvel().Y()) >= p.JumpVelocityThreshold {
				return
			}
			pb.Body.ApplyImpulse(mgl64.Vec3{0, p.JumpImpulse, 0}, true)
		})
}
