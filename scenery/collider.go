package scenery

import (
	"github.com/chewxy/math32"
	"github.com/ethaniccc/float32-cube/cube"
	"github.com/go-gl/mathgl/mgl64"
)

// Collider is an axis-aligned box in model space.
type Collider struct {
	HalfExtents mgl64.Vec3
	Center      mgl64.Vec3
}

// Bounds returns the box enclosing every vertex of every mesh of m. It
// reports false for a model without vertices.
func Bounds(m Model) (cube.BBox, bool) {
	if m == nil {
		return cube.BBox{}, false
	}
	var (
		lo, hi [3]float32
		found  bool
	)
	for _, mesh := range m.Meshes() {
		for _, v := range mesh.Vertices {
			if !found {
				lo, hi = [3]float32(v), [3]float32(v)
				found = true
				continue
			}
			for i := 0; i < 3; i++ {
				lo[i] = math32.Min(lo[i], v[i])
				hi[i] = math32.Max(hi[i], v[i])
			}
		}
	}
	if !found {
		return cube.BBox{}, false
	}
	return cube.Box(lo[0], lo[1], lo[2], hi[0], hi[1], hi[2]), true
}

// ColliderFor synthesizes the collider of a model from its combined
// geometry bounds.
func ColliderFor(m Model) (Collider, bool) {
	bb, ok := Bounds(m)
	if !ok {
		return Collider{}, false
	}
	lo, hi := bb.Min(), bb.Max()
	var c Collider
	for i := 0; i < 3; i++ {
		c.HalfExtents[i] = float64(hi[i]-lo[i]) / 2
		c.Center[i] = float64(hi[i]+lo[i]) / 2
	}
	return c, true
}
