package entity

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsplayground/config"
	"github.com/milk9111/fpsplayground/ecs"
	"github.com/milk9111/fpsplayground/ecs/component"
	"github.com/milk9111/fpsplayground/physics"
	"github.com/milk9111/fpsplayground/scenery"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newWorlds(t *testing.T) (*ecs.World, *physics.World, *config.Config) {
	t.Helper()
	cfg, err := config.Default()
	require.NoError(t, err)
	logger, _ := test.NewNullLogger()
	pw := physics.NewWorld(logrus.NewEntry(logger))
	w := ecs.NewWorld()
	t.Cleanup(func() {
		w.Close()
		pw.Close()
	})
	return w, pw, cfg
}

func TestNewPlayerAppliesController(t *testing.T) {
	w, _, cfg := newWorlds(t)

	e, err := NewPlayer(w, cfg.Player, cfg.Controller)
	require.NoError(t, err)

	p, ok := ecs.Get(w, e, component.PlayerComponent)
	require.True(t, ok)
	assert.Equal(t, 4.5, p.MoveSpeed)
	assert.Equal(t, cfg.Controller.EyeHeight, p.EyeHeight)

	look, _ := ecs.Get(w, e, component.LookComponent)
	assert.Equal(t, cfg.Controller.LookSensitivity, look.Sensitivity)

	pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
	assert.Nil(t, pb.Body, "bodies are created by the physics system")
	assert.Equal(t, physics.ShapeCapsule, pb.Def.Shape)
	assert.Equal(t, cfg.Player.Spawn, pb.Def.Position)
	assert.Equal(t, 1.0, pb.Def.GravityScale)

	wp, _ := ecs.Get(w, e, component.WeaponComponent)
	require.NotNil(t, wp.Active)
	assert.Equal(t, cfg.Controller.FireInterval, wp.FireInterval)
	assert.True(t, wp.AutoFire)
}

func TestApplyControllerReclampsPitch(t *testing.T) {
	w, _, cfg := newWorlds(t)
	e, err := NewPlayer(w, cfg.Player, cfg.Controller)
	require.NoError(t, err)

	look, _ := ecs.Get(w, e, component.LookComponent)
	look.Pitch = 1.4
	look.Yaw = 3

	ctl := cfg.Controller
	ctl.MaxPitch = 1
	ctl.InvertY = true
	ApplyController(w, e, ctl)

	assert.Equal(t, 1.0, look.Pitch)
	assert.Equal(t, 3.0, look.Yaw)
	assert.True(t, look.InvertY)
}

func TestNewPlayerInClosedWorld(t *testing.T) {
	w, _, cfg := newWorlds(t)
	w.Close()

	_, err := NewPlayer(w, cfg.Player, cfg.Controller)
	assert.ErrorIs(t, err, component.ErrWorldClosed)
}

func TestGroundRegistersAndReleases(t *testing.T) {
	w, pw, cfg := newWorlds(t)

	e, err := NewGround(w, pw, cfg.Scene.Ground)
	require.NoError(t, err)
	assert.Equal(t, 1, pw.Grounds())

	hit, ok := pw.RaycastGround(mgl64.Vec3{3, 10, 4}, mgl64.Vec3{3, -10, 4})
	require.True(t, ok)
	assert.InDelta(t, 0, hit.Position.Y(), 1e-5)
	assert.Equal(t, e, hit.Collider.UserData())

	ecs.DestroyEntity(w, e)
	assert.Zero(t, pw.Grounds())
}

func TestSceneryClusterMountsColliders(t *testing.T) {
	w, pw, cfg := newWorlds(t)
	_, err := NewGround(w, pw, cfg.Scene.Ground)
	require.NoError(t, err)

	params := scenery.ClusterParams{Name: "crates", Model: "crate", Count: 4, Radius: 5, Seed: 7, CastShadow: true}
	e, err := NewSceneryCluster(w, pw, params)
	require.NoError(t, err)
	assert.Equal(t, 4, pw.Statics())

	sc, ok := ecs.Get(w, e, component.SceneryComponent)
	require.True(t, ok)
	require.Len(t, sc.Instances, 4)
	assert.Equal(t, "crate", sc.Model.Name())
	for _, inst := range sc.Instances {
		assert.True(t, inst.HasCollider)
		assert.InDelta(t, 0, inst.Position.Y(), 1e-5, "snapped to the ground top")
	}

	r, _ := ecs.Get(w, e, component.RenderableComponent)
	assert.True(t, r.CastShadow)

	ecs.DestroyEntity(w, e)
	assert.Zero(t, pw.Statics())
}

func TestUpdateSceneryCluster(t *testing.T) {
	w, pw, _ := newWorlds(t)

	params := scenery.ClusterParams{Name: "rocks", Model: "rock", Count: 3, Radius: 5, Seed: 1}
	e, err := NewSceneryCluster(w, pw, params)
	require.NoError(t, err)
	sc, _ := ecs.Get(w, e, component.SceneryComponent)
	before := sc.Instances

	shadows := params
	shadows.ReceiveShadow = true
	changed, err := UpdateSceneryCluster(w, pw, e, shadows)
	require.NoError(t, err)
	assert.False(t, changed)
	r, _ := ecs.Get(w, e, component.RenderableComponent)
	assert.True(t, r.ReceiveShadow)

	more := shadows
	more.Count = 6
	changed, err = UpdateSceneryCluster(w, pw, e, more)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Len(t, sc.Instances, 6)
	assert.Equal(t, 6, pw.Statics())
	assert.Equal(t, before[0].Position, sc.Instances[0].Position, "same seed keeps the first placements")

	none := more
	none.Count = 0
	changed, err = UpdateSceneryCluster(w, pw, e, none)
	require.NoError(t, err)
	assert.True(t, changed)
	assert.Zero(t, pw.Statics())
}

func TestSceneryClusterUnknownModel(t *testing.T) {
	w, pw, _ := newWorlds(t)

	_, err := NewSceneryCluster(w, pw, scenery.ClusterParams{Name: "x", Model: "statue", Count: 1})
	assert.ErrorIs(t, err, scenery.ErrUnknownModel)
	assert.Empty(t, ecs.Entities(w))
}

func TestNewProjectile(t *testing.T) {
	w, _, _ := newWorlds(t)

	e, err := NewProjectile(w, ProjectileSpec{
		ID:        9,
		Owner:     3,
		Origin:    mgl64.Vec3{1, 2, 3},
		Direction: mgl64.Vec3{0, 0, -2},
		Speed:     30,
		Radius:    0.05,
	})
	require.NoError(t, err)

	p, ok := ecs.Get(w, e, component.ProjectileComponent)
	require.True(t, ok)
	assert.Equal(t, uint64(9), p.ID)
	assert.Equal(t, uint64(3), p.Owner)
	assert.Equal(t, mgl64.Vec3{0, 0, -1}, p.Direction)

	pb, _ := ecs.Get(w, e, component.PhysicsBodyComponent)
	assert.Equal(t, mgl64.Vec3{0, 0, -30}, pb.Def.Velocity)
	assert.Zero(t, pb.Def.GravityScale)
	assert.True(t, pb.Def.CCD)
	assert.Equal(t, physics.ShapeSphere, pb.Def.Shape)
	assert.Equal(t, physics.CategoryStatic, pb.Def.Mask)
}
