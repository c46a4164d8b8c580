package system

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsplayground/ecs"
	"github.com/milk9111/fpsplayground/ecs/component"
	"github.com/milk9111/fpsplayground/ecs/entity"
	"github.com/milk9111/fpsplayground/timer"
	"github.com/sirupsen/logrus"
)

// WeaponSystem fires projectiles and schedules their expiry. Press and
// Release are driven by pointer events; Update forgets projectiles whose
// entities were destroyed by something other than their expiry.
type WeaponSystem struct {
	timers *timer.Scheduler
	log    *logrus.Entry
}

func NewWeaponSystem(timers *timer.Scheduler, log *logrus.Entry) *WeaponSystem {
	return &WeaponSystem{timers: timers, log: systemLog(log, "weapon")}
}

func (ws *WeaponSystem) Update(w *ecs.World) {
	if ws == nil || w == nil {
		return
	}

	ecs.ForEach(w, component.WeaponComponent, func(_ ecs.Entity, wp *component.Weapon) {
		if wp.Active == nil {
			return
		}
		var stale []uint64
		for el := wp.Active.Front(); el != nil; el = el.Next() {
			if !w.IsAlive(ecs.Entity(el.Value)) {
				stale = append(stale, el.Key)
			}
		}
		for _, id := range stale {
			wp.Active.Delete(id)
		}
	})
}

// Press fires once and, with auto-fire on, keeps firing every interval
// until Release.
func (ws *WeaponSystem) Press(w *ecs.World, e ecs.Entity) {
	if ws == nil {
		return
	}
	wp, ok := ecs.Get(w, e, component.WeaponComponent)
	if !ok {
		return
	}
	wp.Held = true
	ws.Fire(w, e)

	if !wp.AutoFire || (wp.Repeat != nil && wp.Repeat.Active()) {
		return
	}
	wp.Repeat = ws.timers.Every(wp.FireInterval, func() {
		if w.Closed() || !w.IsAlive(e) {
			return
		}
		ws.Fire(w, e)
	})
	ws.log.WithField("entity", e.String()).Debug("auto-fire started")
}

// Release stops auto-fire. It is safe to call when nothing is held.
func (ws *WeaponSystem) Release(w *ecs.World, e ecs.Entity) {
	if ws == nil {
		return
	}
	wp, ok := ecs.Get(w, e, component.WeaponComponent)
	if !ok {
		return
	}
	wp.Held = false
	if wp.StopRepeat() {
		ws.log.WithField("entity", e.String()).Debug("auto-fire stopped")
	}
}

// Fire spawns one projectile from e's camera and returns its id.
func (ws *WeaponSystem) Fire(w *ecs.World, e ecs.Entity) (uint64, bool) {
	if ws == nil || w.Closed() {
		return 0, false
	}
	wp, ok := ecs.Get(w, e, component.WeaponComponent)
	if !ok {
		return 0, false
	}
	cam, ok := ecs.Get(w, e, component.CameraComponent)
	if !ok {
		return 0, false
	}

	local := wp.MuzzleOffset
	if mount, ok := ecs.Get(w, e, component.WeaponMountComponent); ok {
		local = local.Add(mount.Offset)
	}
	if sway, ok := ecs.Get(w, e, component.GunSwayComponent); ok {
		local = local.Add(sway.Current)
	}

	wp.NextID++
	id := wp.NextID
	p, err := entity.NewProjectile(w, entity.ProjectileSpec{
		ID:        id,
		Owner:     e,
		Origin:    cam.Position.Add(cam.Orientation.Rotate(local)),
		Direction: cam.Orientation.Rotate(mgl64.Vec3{0, 0, -1}),
		Speed:     wp.ProjectileSpeed,
		Radius:    wp.ProjectileRadius,
	})
	if err != nil {
		ws.log.WithError(err).Warn("fire")
		return 0, false
	}

	handle := ws.timers.After(wp.ProjectileLifetime, func() { ws.expire(w, e, p, id) })
	if err := ecs.Add(w, p, component.LifetimeComponent, &component.Lifetime{
		Expires: ws.timers.Now() + wp.ProjectileLifetime,
		Handle:  handle,
	}); err != nil {
		handle.Stop()
		ecs.DestroyEntity(w, p)
		ws.log.WithError(err).Warn("fire")
		return 0, false
	}
	if wp.Active != nil {
		wp.Active.Set(id, uint64(p))
	}
	return id, true
}

// expire removes a projectile. It runs from the timer and does nothing
// once the world or the projectile is gone.
func (ws *WeaponSystem) expire(w *ecs.World, owner, p ecs.Entity, id uint64) {
	if w.Closed() {
		return
	}
	if wp, ok := ecs.Get(w, owner, component.WeaponComponent); ok && wp.Active != nil {
		wp.Active.Delete(id)
	}
	if ecs.DestroyEntity(w, p) {
		ws.log.WithField("projectile", id).Trace("projectile expired")
	}
}
