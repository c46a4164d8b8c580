package system

import (
	"math"
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsplayground/ecs"
	"github.com/milk9111/fpsplayground/ecs/component"
	"github.com/milk9111/fpsplayground/ecs/entity"
	"github.com/milk9111/fpsplayground/input"
	"github.com/milk9111/fpsplayground/physics"
	"github.com/milk9111/fpsplayground/scenery"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMoveDirection(t *testing.T) {
	tests := []struct {
		name string
		in   component.Input
		yaw  float64
		want mgl64.Vec3
	}{
		{name: "idle", want: mgl64.Vec3{}},
		{name: "forward", in: component.Input{Forward: true}, want: mgl64.Vec3{0, 0, -1}},
		{name: "backward", in: component.Input{Backward: true}, want: mgl64.Vec3{0, 0, 1}},
		{name: "left", in: component.Input{Left: true}, want: mgl64.Vec3{-1, 0, 0}},
		{name: "right", in: component.Input{Right: true}, want: mgl64.Vec3{1, 0, 0}},
		{name: "cancel", in: component.Input{Forward: true, Backward: true}, want: mgl64.Vec3{}},
		{name: "diagonal", in: component.Input{Forward: true, Right: true}, want: mgl64.Vec3{math.Sqrt2 / 2, 0, -math.Sqrt2 / 2}},
		{name: "turned_left", in: component.Input{Forward: true}, yaw: math.Pi / 2, want: mgl64.Vec3{-1, 0, 0}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MoveDirection(&tt.in, tt.yaw)
			assertVecInDelta(t, tt.want, got, 1e-9, "got %v want %v", got, tt.want)
		})
	}
}

func TestForwardThenStop(t *testing.T) {
	h := newHarness(t, nil)
	h.settle()

	start := h.body().Translation()
	h.frame(frameDT, input.KeyDown{Code: input.CodeKeyW})
	for i := 0; i < 60; i++ {
		if i > 0 {
			h.frame(frameDT)
		}
		v := h.body().Linvel()
		assert.InDelta(t, 0, v.X(), 1e-9, "frame %d", i)
		assert.InDelta(t, -4.5, v.Z(), 1e-9, "frame %d", i)
	}
	assert.InDelta(t, -4.5, h.body().Translation().Z()-start.Z(), 1e-6)

	h.frame(frameDT, input.KeyUp{Code: input.CodeKeyW})
	v := h.body().Linvel()
	assert.InDelta(t, 0, v.X(), 1e-9)
	assert.InDelta(t, 0, v.Z(), 1e-9)
}

func TestMovementPreservesVerticalVelocity(t *testing.T) {
	h := newHarness(t, nil)
	h.frame(frameDT)

	body := h.body()
	body.SetLinvel(mgl64.Vec3{3, -2, 1}, true)
	h.input().Forward = true
	NewMovementSystem().Update(h.w)

	v := body.Linvel()
	assert.Equal(t, -2.0, v.Y())
	assert.InDelta(t, -4.5, v.Z(), 1e-9)
	assert.InDelta(t, 0, v.X(), 1e-9)
	assert.Equal(t, mgl64.Vec3{}, body.Angvel())
}

func TestJumpGating(t *testing.T) {
	t.Run("grounded_and_still", func(t *testing.T) {
		h := newHarness(t, nil)
		h.settle()

		h.frame(frameDT, input.KeyDown{Code: input.CodeSpace})
		assert.Greater(t, h.body().Linvel().Y(), 4.0)
		assert.False(t, h.input().JumpRequested)

		h.run(100*time.Millisecond, frameDT)
		assert.False(t, h.contacts().Grounded(), "jump should leave the ground")
	})

	t.Run("airborne", func(t *testing.T) {
		h := newHarness(t, nil)
		h.frame(frameDT)
		assert.False(t, h.contacts().Grounded())

		h.input().JumpRequested = true
		before := h.body().Linvel().Y()
		NewJumpSystem().Update(h.w)
		assert.Equal(t, before, h.body().Linvel().Y())
		assert.False(t, h.input().JumpRequested, "request is consumed even when it cannot fire")
	})

	t.Run("moving_vertically", func(t *testing.T) {
		h := newHarness(t, nil)
		h.settle()

		h.body().SetLinvel(mgl64.Vec3{0, 0.25, 0}, true)
		h.input().JumpRequested = true
		NewJumpSystem().Update(h.w)
		assert.Equal(t, 0.25, h.body().Linvel().Y())
	})
}

func TestContactCountFloorsAtZero(t *testing.T) {
	h := newHarness(t, nil)
	h.frame(frameDT)

	h.w.Events().Push(contactExit(h))
	h.w.Events().Push(contactExit(h))
	NewContactSystem().Update(h.w)
	assert.Zero(t, h.contacts().Count)

	h.w.Events().Push(contactEnter(h))
	h.w.Events().Push(contactEnter(h))
	h.w.Events().Push(contactExit(h))
	NewContactSystem().Update(h.w)
	assert.Equal(t, 1, h.contacts().Count)
}

func TestCameraFollowsBody(t *testing.T) {
	h := newHarness(t, nil)
	h.settle()
	h.lock.locked = true
	h.frame(frameDT, input.PointerMove{DX: -100})

	cam := h.camera()
	eye := h.body().Translation().Add(mgl64.Vec3{0, h.cfg.Controller.EyeHeight, 0})
	assertVecInDelta(t, eye, cam.Position, 1e-9)

	forward := cam.Orientation.Rotate(mgl64.Vec3{0, 0, -1})
	assert.InDelta(t, -math.Sin(0.35), forward.X(), 1e-9)
	assert.InDelta(t, 0, forward.Y(), 1e-9)
}

func TestPlayerStopsAtSceneryCollider(t *testing.T) {
	h := newHarness(t, nil)
	crate, err := entity.NewSceneryCluster(h.w, h.pw, scenery.ClusterParams{
		Name:   "crate",
		Model:  "crate",
		Count:  1,
		Center: mgl64.Vec3{0, 0, 1},
		Seed:   7,
	})
	require.NoError(t, err)
	statics, ok := ecs.Get(h.w, crate, component.StaticCollidersComponent)
	require.True(t, ok)
	require.Len(t, statics.Statics, 1)
	box := statics.Statics[0].Def()

	h.settle()
	radius := h.body().Radius()

	touched := false
	h.frame(frameDT, input.KeyDown{Code: input.CodeKeyW})
	for i := 0; i < 90; i++ {
		h.frame(frameDT)
		if h.contacts().Count > 1 {
			touched = true
		}
		gap := distanceToBoxXZ(box, h.body().Translation())
		// at most one frame of travel inside before the contact pushes back
		assert.GreaterOrEqual(t, gap, radius-4.5/60-0.015, "frame %d", i)
	}
	assert.True(t, touched, "player should have run into the crate")
}

// distanceToBoxXZ is the horizontal distance from p to the static box.
func distanceToBoxXZ(def physics.StaticDef, p mgl64.Vec3) float64 {
	d := p.Sub(def.Position)
	sin, cos := math.Sincos(-def.Yaw)
	lx := d.X()*cos + d.Z()*sin - def.Center.X()
	lz := -d.X()*sin + d.Z()*cos - def.Center.Z()
	dx := math.Max(math.Abs(lx)-def.HalfExtents.X(), 0)
	dz := math.Max(math.Abs(lz)-def.HalfExtents.Z(), 0)
	return math.Hypot(dx, dz)
}
