package component

import (
	"time"

	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsplayground/timer"
)

// Weapon fires projectiles from the camera while the trigger is held.
type Weapon struct {
	AutoFire     bool
	FireInterval time.Duration
	MuzzleOffset mgl64.Vec3

	ProjectileSpeed    float64
	ProjectileRadius   float64
	ProjectileLifetime time.Duration

	Held   bool
	Repeat *timer.Handle

	// NextID is the id the next projectile receives.
	NextID uint64
	// Active maps live projectile ids to their entities, oldest first.
	Active *orderedmap.OrderedMap[uint64, uint64]
}

// StopRepeat cancels the auto-fire timer if one is running.
func (wp *Weapon) StopRepeat() bool {
	if wp == nil || wp.Repeat == nil {
		return false
	}
	stopped := wp.Repeat.Stop()
	wp.Repeat = nil
	return stopped
}

func (wp *Weapon) Release() {
	if wp == nil {
		return
	}
	wp.StopRepeat()
	wp.Held = false
}

var WeaponComponent = NewComponent[Weapon]()

// Projectile is an in-flight shot. Direction is fixed at spawn.
type Projectile struct {
	ID        uint64
	Origin    mgl64.Vec3
	Direction mgl64.Vec3
	Owner     uint64
}

var ProjectileComponent = NewComponent[Projectile]()

// Lifetime removes its entity when the handle fires.
type Lifetime struct {
	Expires time.Duration
	Handle  *timer.Handle
}

var LifetimeComponent = NewComponent[Lifetime]()
