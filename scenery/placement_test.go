package scenery

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zeebo/xxh3"
)

func TestPlaceIsDeterministic(t *testing.T) {
	p := ClusterParams{Name: "rocks", Model: "rock", Count: 64, Radius: 12, Center: mgl64.Vec3{3, 0, -4}, Seed: 42}

	first := Place(p, nil)
	second := Place(p, nil)
	require.Len(t, first, 64)
	assert.Equal(t, first, second)

	p.Seed = 43
	assert.NotEqual(t, first, Place(p, nil))
}

func TestPlaceSeedFallsBackToName(t *testing.T) {
	p := ClusterParams{Name: "trees", Count: 8, Radius: 5}
	assert.Equal(t, xxh3.HashString("trees"), p.EffectiveSeed())

	withSeed := p
	withSeed.Seed = xxh3.HashString("trees")
	assert.Equal(t, Place(withSeed, nil), Place(p, nil))

	renamed := p
	renamed.Name = "bushes"
	assert.NotEqual(t, Place(p, nil), Place(renamed, nil))
}

func TestPlaceStaysInsideDisk(t *testing.T) {
	center := mgl64.Vec3{10, 0, -10}
	p := ClusterParams{Count: 500, Radius: 7, Center: center, Seed: 9}

	for _, pl := range Place(p, nil) {
		d := math.Hypot(pl.Position.X()-center.X(), pl.Position.Z()-center.Z())
		assert.LessOrEqual(t, d, 7.0+1e-9)
		assert.GreaterOrEqual(t, pl.Yaw, 0.0)
		assert.Less(t, pl.Yaw, 2*math.Pi)
	}
}

func TestPlaceIsAreaUniform(t *testing.T) {
	const (
		n       = 20000
		radius  = 10.0
		buckets = 10
	)
	p := ClusterParams{Count: n, Radius: radius, Seed: 7}

	var hist [buckets]int
	for _, pl := range Place(p, nil) {
		r2 := pl.Position.X()*pl.Position.X() + pl.Position.Z()*pl.Position.Z()
		i := int(r2 / (radius * radius) * buckets)
		if i == buckets {
			i--
		}
		hist[i]++
	}

	expected := float64(n) / buckets
	for i, got := range hist {
		assert.InDelta(t, expected, float64(got), expected*0.1, "bucket %d", i)
	}
}

func TestPlaceDegenerateCount(t *testing.T) {
	for _, count := range []int{0, -1, -100} {
		assert.Empty(t, Place(ClusterParams{Count: count, Radius: 5, Seed: 1}, nil))
	}
}

func TestPlaceSnapsToGround(t *testing.T) {
	var rays [][2]mgl64.Vec3
	ground := GroundFunc(func(from, to mgl64.Vec3) (mgl64.Vec3, bool) {
		rays = append(rays, [2]mgl64.Vec3{from, to})
		if from.X() < 0 {
			return mgl64.Vec3{}, false
		}
		return mgl64.Vec3{from.X(), 2.5, from.Z()}, true
	})

	center := mgl64.Vec3{0, 1, 0}
	placements := Place(ClusterParams{Count: 200, Radius: 5, Center: center, Seed: 3}, ground)
	require.Len(t, rays, 200)

	for i, pl := range placements {
		assert.Equal(t, center.Y()+RayStartHeight, rays[i][0].Y())
		assert.Less(t, rays[i][1].Y(), rays[i][0].Y())
		if pl.Position.X() < 0 {
			assert.Equal(t, 0.0, pl.Position.Y())
		} else {
			assert.Equal(t, 2.5, pl.Position.Y())
		}
	}
}

func TestPlaceWithoutGroundDefaultsToZero(t *testing.T) {
	for _, pl := range Place(ClusterParams{Count: 10, Radius: 5, Center: mgl64.Vec3{0, 9, 0}, Seed: 1}, nil) {
		assert.Equal(t, 0.0, pl.Position.Y())
	}
}
