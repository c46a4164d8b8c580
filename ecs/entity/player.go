package entity

import (
	"github.com/elliotchance/orderedmap/v2"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsplayground/common"
	"github.com/milk9111/fpsplayground/config"
	"github.com/milk9111/fpsplayground/ecs"
	"github.com/milk9111/fpsplayground/ecs/component"
	"github.com/milk9111/fpsplayground/physics"
)

// NewPlayer builds the first-person player: a capsule body at the spawn
// point with look, input, contact, camera, sway and weapon state.
func NewPlayer(w *ecs.World, player config.PlayerConfig, ctl config.ControllerConfig) (ecs.Entity, error) {
	body := &component.PhysicsBody{Def: physics.BodyDef{
		Position:      player.Spawn,
		Shape:         physics.ShapeCapsule,
		Radius:        player.Radius,
		HalfHeight:    player.HalfHeight,
		Mass:          player.Mass,
		Friction:      player.Friction,
		LinearDamping: player.LinearDamping,
		GravityScale:  1,
		Category:      physics.CategoryPlayer,
		Mask:          physics.CategoryStatic | physics.CategoryPlayer,
	}}

	e, err := buildEntity(w, "player",
		with(component.PlayerTagComponent, &component.PlayerTag{}),
		with(component.PlayerComponent, &component.Player{}),
		with(component.InputComponent, &component.Input{}),
		with(component.LookComponent, &component.Look{}),
		with(component.ContactsComponent, &component.Contacts{}),
		with(component.TransformComponent, &component.Transform{Position: player.Spawn, Rotation: mgl64.QuatIdent()}),
		with(component.CameraComponent, &component.Camera{Position: player.Spawn, Orientation: mgl64.QuatIdent()}),
		with(component.PhysicsBodyComponent, body),
		with(component.GunSwayComponent, &component.GunSway{}),
		with(component.WeaponMountComponent, &component.WeaponMount{Orientation: mgl64.QuatIdent()}),
		with(component.WeaponComponent, &component.Weapon{Active: orderedmap.NewOrderedMap[uint64, uint64]()}),
	)
	if err != nil {
		return 0, err
	}
	ApplyController(w, e, ctl)
	return e, nil
}

// ApplyController copies controller tuning onto e's components. Look
// angles, sway state and live projectiles are kept; the pitch is clamped
// again in case the limit shrank.
func ApplyController(w *ecs.World, e ecs.Entity, ctl config.ControllerConfig) {
	if p, ok := ecs.Get(w, e, component.PlayerComponent); ok {
		p.MoveSpeed = ctl.MoveSpeed
		p.JumpImpulse = ctl.JumpImpulse
		p.JumpVelocityThreshold = ctl.JumpVelocityThreshold
		p.EyeHeight = ctl.EyeHeight
	}
	if look, ok := ecs.Get(w, e, component.LookComponent); ok {
		look.InvertY = ctl.InvertY
		look.Sensitivity = ctl.LookSensitivity
		look.MaxPitch = ctl.MaxPitch
		look.Pitch = common.ClampAbs(look.Pitch, look.MaxPitch)
	}
	if sway, ok := ecs.Get(w, e, component.GunSwayComponent); ok {
		sway.Intensity = ctl.SwayIntensity
		sway.Smoothing = ctl.SwaySmoothing
	}
	if mount, ok := ecs.Get(w, e, component.WeaponMountComponent); ok {
		mount.Offset = ctl.MountOffset
	}
	if wp, ok := ecs.Get(w, e, component.WeaponComponent); ok {
		if wp.FireInterval != ctl.FireInterval || !ctl.AutoFire {
			wp.StopRepeat()
		}
		wp.AutoFire = ctl.AutoFire
		wp.FireInterval = ctl.FireInterval
		wp.MuzzleOffset = ctl.MuzzleOffset
		wp.ProjectileSpeed = ctl.ProjectileSpeed
		wp.ProjectileRadius = ctl.ProjectileRadius
		wp.ProjectileLifetime = ctl.ProjectileLifetime
	}
}
