package component

import "github.com/go-gl/mathgl/mgl64"

// Transform is an entity's world pose. Physics bodies write it back every
// step; rotation only ever carries yaw for bodies.
type Transform struct {
	Position mgl64.Vec3
	Rotation mgl64.Quat
}

var TransformComponent = NewComponent[Transform]()
