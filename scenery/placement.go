// Package scenery scatters decorative model instances around a point.
//
// Placement is deterministic for a given seed and parameter set: angles are
// uniform, radial distances use a square-root transform so instances are
// uniform over the disk's area, and each instance is snapped to the ground
// with a downward raycast when a ground is available.
package scenery

import (
	"math"
	"math/rand/v2"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/zeebo/xxh3"
)

// RayStartHeight is how far above the cluster center ground rays start.
// Rays travel twice this distance downward.
const RayStartHeight = 100.0

// seedStream decorrelates the second PCG word from the seed.
const seedStream = 0x9e3779b97f4a7c15

// ClusterParams configures one cluster.
type ClusterParams struct {
	// Name identifies the cluster; it seeds placement when Seed is zero.
	Name string
	// Model is the registered model name instances are realized from.
	Model  string
	Count  int
	Radius float64
	Center mgl64.Vec3
	Seed   uint64

	CastShadow    bool
	ReceiveShadow bool
}

// EffectiveSeed returns Seed, or a hash of Name when Seed is zero.
func (p ClusterParams) EffectiveSeed() uint64 {
	if p.Seed != 0 {
		return p.Seed
	}
	return xxh3.HashString(p.Name)
}

// Placement is the pose of one instance.
type Placement struct {
	Position mgl64.Vec3
	Yaw      float64
}

// Ground answers downward raycasts for height snapping.
type Ground interface {
	Raycast(from, to mgl64.Vec3) (mgl64.Vec3, bool)
}

// GroundFunc adapts a function to Ground.
type GroundFunc func(from, to mgl64.Vec3) (mgl64.Vec3, bool)

func (f GroundFunc) Raycast(from, to mgl64.Vec3) (mgl64.Vec3, bool) { return f(from, to) }

// Place computes the instance poses of a cluster. A non-positive count
// yields no instances. ground may be nil, in which case every instance sits
// at height zero; instances whose ray misses also fall back to zero.
func Place(p ClusterParams, ground Ground) []Placement {
	if p.Count <= 0 {
		return nil
	}
	radius := math.Abs(p.Radius)
	seed := p.EffectiveSeed()
	rng := rand.New(rand.NewPCG(seed, seed^seedStream))

	out := make([]Placement, 0, p.Count)
	for i := 0; i < p.Count; i++ {
		angle := rng.Float64() * 2 * math.Pi
		r := radius * math.Sqrt(rng.Float64())
		yaw := rng.Float64() * 2 * math.Pi

		sin, cos := math.Sincos(angle)
		x := p.Center.X() + r*cos
		z := p.Center.Z() + r*sin
		out = append(out, Placement{
			Position: mgl64.Vec3{x, groundHeight(ground, x, p.Center.Y(), z), z},
			Yaw:      yaw,
		})
	}
	return out
}

func groundHeight(ground Ground, x, centerY, z float64) float64 {
	if ground == nil {
		return 0
	}
	from := mgl64.Vec3{x, centerY + RayStartHeight, z}
	to := mgl64.Vec3{x, centerY - RayStartHeight, z}
	hit, ok := ground.Raycast(from, to)
	if !ok {
		return 0
	}
	return hit.Y()
}
