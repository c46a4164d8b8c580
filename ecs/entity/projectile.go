package entity

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsplayground/ecs"
	"github.com/milk9111/fpsplayground/ecs/component"
	"github.com/milk9111/fpsplayground/physics"
)

// ProjectileSpec describes one shot.
type ProjectileSpec struct {
	ID        uint64
	Owner     ecs.Entity
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
	Speed     float64
	Radius    float64
}

// NewProjectile builds a projectile entity. Its body ignores gravity, is
// undamped, sweeps against statics and collides with nothing else.
func NewProjectile(w *ecs.World, spec ProjectileSpec) (ecs.Entity, error) {
	dir := spec.Direction
	if dir.Len() > 0 {
		dir = dir.Normalize()
	}
	body := &component.PhysicsBody{Def: physics.BodyDef{
		Position:     spec.Origin,
		Velocity:     dir.Mul(spec.Speed),
		Shape:        physics.ShapeSphere,
		Radius:       spec.Radius,
		GravityScale: 0,
		CCD:          true,
		Category:     physics.CategoryProjectile,
		Mask:         physics.CategoryStatic,
	}}

	return buildEntity(w, "projectile",
		with(component.ProjectileTagComponent, &component.ProjectileTag{}),
		with(component.ProjectileComponent, &component.Projectile{
			ID:        spec.ID,
			Origin:    spec.Origin,
			Direction: dir,
			Owner:     uint64(spec.Owner),
		}),
		with(component.TransformComponent, &component.Transform{Position: spec.Origin, Rotation: mgl64.QuatIdent()}),
		with(component.PhysicsBodyComponent, body),
	)
}
