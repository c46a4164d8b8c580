package system

import (
	"testing"
	"time"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsplayground/config"
	"github.com/milk9111/fpsplayground/ecs"
	"github.com/milk9111/fpsplayground/ecs/component"
	"github.com/milk9111/fpsplayground/ecs/entity"
	"github.com/milk9111/fpsplayground/input"
	"github.com/milk9111/fpsplayground/physics"
	"github.com/milk9111/fpsplayground/timer"
	"github.com/sirupsen/logrus"
	"github.com/sirupsen/logrus/hooks/test"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const frameDT = time.Second / 60

type fakeLock struct {
	locked   bool
	requests int
}

func (l *fakeLock) Request() {
	l.requests++
	l.locked = true
}

func (l *fakeLock) Release() { l.locked = false }

func (l *fakeLock) Locked() bool { return l.locked }

type queueSource struct {
	events []input.Event
}

func (s *queueSource) Poll(d *input.Dispatcher) {
	events := s.events
	s.events = nil
	for _, ev := range events {
		d.Dispatch(ev)
	}
}

type harness struct {
	t          *testing.T
	cfg        *config.Config
	w          *ecs.World
	pw         *physics.World
	timers     *timer.Scheduler
	dispatcher *input.Dispatcher
	lock       *fakeLock
	src        *queueSource
	weapons    *WeaponSystem
	inputs     *InputSystem
	sched      *ecs.Scheduler
	player     ecs.Entity
}

func newHarness(t *testing.T, mutate func(*config.Config)) *harness {
	t.Helper()

	cfg, err := config.Default()
	require.NoError(t, err)
	if mutate != nil {
		mutate(cfg)
	}

	logger, _ := test.NewNullLogger()
	log := logrus.NewEntry(logger)

	h := &harness{
		t:          t,
		cfg:        cfg,
		w:          ecs.NewWorld(),
		pw:         physics.NewWorld(log),
		timers:     timer.NewScheduler(),
		dispatcher: input.NewDispatcher(),
		lock:       &fakeLock{},
		src:        &queueSource{},
	}
	h.pw.SetGravity(cfg.Scene.Gravity)

	_, err = entity.NewGround(h.w, h.pw, cfg.Scene.Ground)
	require.NoError(t, err)
	h.player, err = entity.NewPlayer(h.w, cfg.Player, cfg.Controller)
	require.NoError(t, err)

	h.weapons = NewWeaponSystem(h.timers, log)
	h.inputs = NewInputSystem(h.dispatcher, h.src, h.lock, h.weapons, log)
	h.sched = ecs.NewScheduler(
		h.inputs,
		NewMovementSystem(),
		NewJumpSystem(),
		NewPhysicsSystem(h.pw, log),
		NewContactSystem(),
		NewCameraSystem(),
		NewSwaySystem(),
		h.weapons,
	)
	t.Cleanup(func() {
		h.w.Close()
		h.timers.Close()
		h.pw.Close()
	})
	return h
}

// frame runs one frame the way the game loop does: timers first, then the
// systems.
func (h *harness) frame(dt time.Duration, events ...input.Event) {
	h.src.events = append(h.src.events, events...)
	h.timers.Advance(dt)
	h.w.Tick(dt)
	h.sched.Update(h.w)
}

func (h *harness) run(total, dt time.Duration) {
	for elapsed := time.Duration(0); elapsed < total; elapsed += dt {
		h.frame(dt)
	}
}

// settle lets the player fall onto the ground.
func (h *harness) settle() {
	h.run(2*time.Second, frameDT)
	require.True(h.t, h.contacts().Grounded(), "player should be standing after settling")
}

func (h *harness) body() *physics.Body {
	pb, ok := ecs.Get(h.w, h.player, component.PhysicsBodyComponent)
	require.True(h.t, ok)
	require.NotNil(h.t, pb.Body)
	return pb.Body
}

func (h *harness) input() *component.Input {
	in, ok := ecs.Get(h.w, h.player, component.InputComponent)
	require.True(h.t, ok)
	return in
}

func (h *harness) look() *component.Look {
	look, ok := ecs.Get(h.w, h.player, component.LookComponent)
	require.True(h.t, ok)
	return look
}

func (h *harness) contacts() *component.Contacts {
	c, ok := ecs.Get(h.w, h.player, component.ContactsComponent)
	require.True(h.t, ok)
	return c
}

func (h *harness) weapon() *component.Weapon {
	wp, ok := ecs.Get(h.w, h.player, component.WeaponComponent)
	require.True(h.t, ok)
	return wp
}

func (h *harness) projectiles() []ecs.Entity {
	return h.w.Query(component.ProjectileTagComponent)
}

func (h *harness) camera() *component.Camera {
	cam, ok := ecs.Get(h.w, h.player, component.CameraComponent)
	require.True(h.t, ok)
	return cam
}

func contactEnter(h *harness) ecs.ContactEvent {
	return ecs.ContactEvent{Entity: h.player, Enter: true}
}

func contactExit(h *harness) ecs.ContactEvent {
	return ecs.ContactEvent{Entity: h.player}
}

func assertVecInDelta(t *testing.T, want, got mgl64.Vec3, delta float64, msgAndArgs ...any) {
	t.Helper()
	for i := range want {
		assert.InDelta(t, want[i], got[i], delta, msgAndArgs...)
	}
}
