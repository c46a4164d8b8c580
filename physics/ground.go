package physics

import (
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
)

// GroundProvider is a walkable surface registered with a World.
type GroundProvider interface {
	// HeightAt returns the surface height over (x, z).
	HeightAt(x, z float64) (float64, bool)
	// Raycast returns the first intersection of the segment from→to.
	Raycast(from, to mgl64.Vec3) (mgl64.Vec3, bool)
}

// GroundBox is a flat axis-aligned slab whose top face is walkable.
type GroundBox struct {
	bb cube.BBox
}

// NewGroundBox creates a slab of the given size whose top face is centered
// on top.
func NewGroundBox(top mgl64.Vec3, width, depth, thickness float64) *GroundBox {
	hw, hd := width/2, depth/2
	return &GroundBox{bb: cube.Box(
		float32(top.X()-hw), float32(top.Y()-thickness), float32(top.Z()-hd),
		float32(top.X()+hw), float32(top.Y()), float32(top.Z()+hd),
	)}
}

// Bounds returns the slab's min and max corners.
func (g *GroundBox) Bounds() (mgl64.Vec3, mgl64.Vec3) {
	return vec64(g.bb.Min()), vec64(g.bb.Max())
}

func (g *GroundBox) HeightAt(x, z float64) (float64, bool) {
	lo, hi := g.bb.Min(), g.bb.Max()
	if x < float64(lo.X()) || x > float64(hi.X()) || z < float64(lo.Z()) || z > float64(hi.Z()) {
		return 0, false
	}
	return float64(hi.Y()), true
}

func (g *GroundBox) Raycast(from, to mgl64.Vec3) (mgl64.Vec3, bool) {
	res, ok := trace.BBoxIntercept(g.bb, vec32(from), vec32(to))
	if !ok {
		return mgl64.Vec3{}, false
	}
	return vec64(res.Position()), true
}

func vec32(v mgl64.Vec3) mgl32.Vec3 {
	return mgl32.Vec3{float32(v.X()), float32(v.Y()), float32(v.Z())}
}

func vec64(v mgl32.Vec3) mgl64.Vec3 {
	return mgl64.Vec3{float64(v.X()), float64(v.Y()), float64(v.Z())}
}
