package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsplayground/ecs"
	"github.com/milk9111/fpsplayground/ecs/component"
	"github.com/milk9111/fpsplayground/physics"
	"github.com/milk9111/fpsplayground/scenery"
)

// GroundOf exposes pw's registered grounds as a scenery raycast target.
func GroundOf(pw *physics.World) scenery.Ground {
	return scenery.GroundFunc(func(from, to mgl64.Vec3) (mgl64.Vec3, bool) {
		hit, ok := pw.RaycastGround(from, to)
		return hit.Position, ok
	})
}

// NewSceneryCluster places a cluster and mounts one static box collider per
// instance.
func NewSceneryCluster(w *ecs.World, pw *physics.World, p scenery.ClusterParams) (ecs.Entity, error) {
	cluster := scenery.NewCluster(p, GroundOf(pw))
	model, instances, err := cluster.Mount()
	if err != nil {
		return 0, fmt.Errorf("scenery %q: %w", p.Name, err)
	}

	sc := &component.Scenery{Cluster: cluster, Model: model, Instances: instances}
	e, err := buildEntity(w, "scenery "+p.Name,
		with(component.SceneryComponent, sc),
		with(component.RenderableComponent, &component.Renderable{CastShadow: p.CastShadow, ReceiveShadow: p.ReceiveShadow}),
		with(component.TransformComponent, &component.Transform{Position: p.Center, Rotation: mgl64.QuatIdent()}),
	)
	if err != nil {
		return 0, err
	}
	if err := mountColliders(w, pw, e, instances); err != nil {
		ecs.DestroyEntity(w, e)
		return 0, fmt.Errorf("scenery %q: %w", p.Name, err)
	}
	return e, nil
}

// UpdateSceneryCluster applies new params to a cluster entity. Placements
// and colliders are rebuilt only when the placement inputs changed; the
// result reports whether that happened.
func UpdateSceneryCluster(w *ecs.World, pw *physics.World, e ecs.Entity, p scenery.ClusterParams) (bool, error) {
	sc, ok := ecs.Get(w, e, component.SceneryComponent)
	if !ok || sc.Cluster == nil {
		return false, component.ErrEntityNotAlive
	}
	if r, ok := ecs.Get(w, e, component.RenderableComponent); ok {
		r.CastShadow = p.CastShadow
		r.ReceiveShadow = p.ReceiveShadow
	}
	if !sc.Cluster.SetParams(p) {
		return false, nil
	}

	model, instances, err := sc.Cluster.Mount()
	if err != nil {
		return false, fmt.Errorf("scenery %q: %w", p.Name, err)
	}
	sc.Model = model
	sc.Instances = instances
	if t, ok := ecs.Get(w, e, component.TransformComponent); ok {
		t.Position = p.Center
	}
	if err := mountColliders(w, pw, e, instances); err != nil {
		return true, fmt.Errorf("scenery %q: %w", p.Name, err)
	}
	return true, nil
}

// mountColliders replaces e's static colliders; the previous set is
// released by the component store.
func mountColliders(w *ecs.World, pw *physics.World, e ecs.Entity, instances []scenery.Instance) error {
	statics := &component.StaticColliders{}
	for _, inst := range instances {
		if !inst.HasCollider {
			continue
		}
		st, err := pw.AddStatic(physics.StaticDef{
			Position:    inst.Position,
			Yaw:         inst.Yaw,
			Center:      inst.Collider.Center,
			HalfExtents: inst.Collider.HalfExtents,
			UserData:    e,
		})
		if err != nil {
			statics.Release()
			return err
		}
		statics.Statics = append(statics.Statics, st)
	}
	return ecs.Add(w, e, component.StaticCollidersComponent, statics)
}
