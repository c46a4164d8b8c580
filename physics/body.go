package physics

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// ShapeKind selects the collider of a dynamic body.
type ShapeKind int

const (
	ShapeCapsule ShapeKind = iota
	ShapeSphere
)

// Collision categories used in BodyDef.Category and BodyDef.Mask.
const (
	CategoryStatic uint = 1 << iota
	CategoryPlayer
	CategoryProjectile
)

// BodyDef describes a dynamic body to mount.
type BodyDef struct {
	Position mgl64.Vec3
	Velocity mgl64.Vec3

	Shape ShapeKind
	// Radius of the sphere, or of the capsule's hemispheres.
	Radius float64
	// HalfHeight is the half length of the capsule's cylindrical part.
	HalfHeight float64

	Mass          float64
	Friction      float64
	LinearDamping float64
	// GravityScale multiplies world gravity. Zero disables gravity.
	GravityScale float64
	CCD          bool

	Category uint
	Mask     uint

	UserData any
}

// Body is a live dynamic body.
type Body struct {
	world *World
	def   BodyDef

	body  *cp.Body
	shape *cp.Shape

	y          float64
	vy         float64
	angvel     mgl64.Vec3
	halfExtent float64
	removed    bool
}

// Translation returns the body's center.
func (b *Body) Translation() mgl64.Vec3 {
	if b == nil || b.body == nil {
		return mgl64.Vec3{}
	}
	p := b.body.Position()
	return mgl64.Vec3{p.X, b.y, p.Y}
}

// SetTranslation teleports the body.
func (b *Body) SetTranslation(pos mgl64.Vec3) {
	if b == nil || b.removed {
		return
	}
	b.body.SetPosition(cp.Vector{X: pos.X(), Y: pos.Z()})
	b.y = pos.Y()
}

// Linvel returns the linear velocity.
func (b *Body) Linvel() mgl64.Vec3 {
	if b == nil || b.body == nil {
		return mgl64.Vec3{}
	}
	v := b.body.Velocity()
	return mgl64.Vec3{v.X, b.vy, v.Y}
}

// SetLinvel replaces the linear velocity. wake activates a sleeping body.
func (b *Body) SetLinvel(v mgl64.Vec3, wake bool) {
	if b == nil || b.removed {
		return
	}
	b.body.SetVelocity(v.X(), v.Z())
	b.vy = v.Y()
	if wake {
		b.body.Activate()
	}
}

// Angvel returns the angular velocity.
func (b *Body) Angvel() mgl64.Vec3 {
	if b == nil {
		return mgl64.Vec3{}
	}
	return b.angvel
}

// SetAngvel replaces the angular velocity. Only rotation about the vertical
// axis is simulated; the other components are recorded and reported back.
func (b *Body) SetAngvel(v mgl64.Vec3, wake bool) {
	if b == nil || b.removed {
		return
	}
	b.angvel = v
	b.body.SetAngularVelocity(-v.Y())
	if wake {
		b.body.Activate()
	}
}

// ApplyImpulse changes the velocity by impulse/mass.
func (b *Body) ApplyImpulse(impulse mgl64.Vec3, wake bool) {
	if b == nil || b.removed {
		return
	}
	b.vy += impulse.Y() / b.def.Mass
	if impulse.X() != 0 || impulse.Z() != 0 {
		b.body.ApplyImpulseAtWorldPoint(cp.Vector{X: impulse.X(), Y: impulse.Z()}, b.body.Position())
	}
	if wake {
		b.body.Activate()
	}
}

// Mass returns the body's mass.
func (b *Body) Mass() float64 {
	if b == nil {
		return 0
	}
	return b.def.Mass
}

// HalfExtent is the vertical distance from the center to the bottom.
func (b *Body) HalfExtent() float64 {
	if b == nil {
		return 0
	}
	return b.halfExtent
}

// Radius returns the horizontal collision radius.
func (b *Body) Radius() float64 {
	if b == nil {
		return 0
	}
	return b.def.Radius
}

// UserData returns the value given in BodyDef.UserData.
func (b *Body) UserData() any {
	if b == nil {
		return nil
	}
	return b.def.UserData
}

// Removed reports whether the body has left its world.
func (b *Body) Removed() bool {
	return b == nil || b.removed
}

// Remove takes the body out of its world. Removing twice is a no-op.
func (b *Body) Remove() {
	if b == nil || b.removed {
		return
	}
	b.world.removeBody(b)
}

func (b *Body) span() (float64, float64) {
	return b.y - b.halfExtent, b.y + b.halfExtent
}

func (b *Body) gravityScale() float64 {
	return b.def.GravityScale
}
