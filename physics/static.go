package physics

import (
	"math"

	"github.com/ethaniccc/float32-cube/cube"
	"github.com/ethaniccc/float32-cube/cube/trace"
	"github.com/go-gl/mathgl/mgl32"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
)

// StaticDef describes an immovable box collider. The box is HalfExtents
// around Center in the local frame, rotated by Yaw about the vertical axis
// and placed at Position.
type StaticDef struct {
	Position    mgl64.Vec3
	Yaw         float64
	Center      mgl64.Vec3
	HalfExtents mgl64.Vec3
	Friction    float64
	UserData    any
}

// Static is a mounted static collider.
type Static struct {
	world   *World
	def     StaticDef
	body    *cp.Body
	shape   *cp.Shape
	minY    float64
	maxY    float64
	removed bool
}

// Top returns the height of the box's upper face.
func (s *Static) Top() float64 {
	if s == nil {
		return 0
	}
	return s.maxY
}

// Bottom returns the height of the box's lower face.
func (s *Static) Bottom() float64 {
	if s == nil {
		return 0
	}
	return s.minY
}

// UserData returns the value given in StaticDef.UserData.
func (s *Static) UserData() any {
	if s == nil {
		return nil
	}
	return s.def.UserData
}

// Def returns the definition the collider was created from.
func (s *Static) Def() StaticDef {
	if s == nil {
		return StaticDef{}
	}
	return s.def
}

// Remove takes the collider out of its world. Removing twice is a no-op.
func (s *Static) Remove() {
	if s == nil || s.removed {
		return
	}
	s.world.removeStatic(s)
}

// containsXZ reports whether the world point (x, z) lies over the box.
func (s *Static) containsXZ(x, z float64) bool {
	return s.localBB().ContainsVect(s.body.WorldToLocal(cp.Vector{X: x, Y: z}))
}

func (s *Static) localBB() cp.BB {
	c, h := s.def.Center, s.def.HalfExtents
	return cp.BB{L: c.X() - h.X(), B: c.Z() - h.Z(), R: c.X() + h.X(), T: c.Z() + h.Z()}
}

// raycast intersects the segment with the oriented box in the box's frame.
func (s *Static) raycast(from, to mgl64.Vec3) (mgl64.Vec3, bool) {
	toLocal := func(p mgl64.Vec3) mgl32.Vec3 {
		d := p.Sub(s.def.Position)
		sin, cos := math.Sincos(-s.def.Yaw)
		return mgl32.Vec3{
			float32(d.X()*cos + d.Z()*sin),
			float32(d.Y()),
			float32(-d.X()*sin + d.Z()*cos),
		}
	}
	c, h := s.def.Center, s.def.HalfExtents
	bb := cube.Box(
		float32(c.X()-h.X()), float32(c.Y()-h.Y()), float32(c.Z()-h.Z()),
		float32(c.X()+h.X()), float32(c.Y()+h.Y()), float32(c.Z()+h.Z()),
	)
	res, ok := trace.BBoxIntercept(bb, toLocal(from), toLocal(to))
	if !ok {
		return mgl64.Vec3{}, false
	}
	hit := res.Position()
	sin, cos := math.Sincos(s.def.Yaw)
	lx, ly, lz := float64(hit.X()), float64(hit.Y()), float64(hit.Z())
	return s.def.Position.Add(mgl64.Vec3{lx*cos + lz*sin, ly, -lx*sin + lz*cos}), true
}
