package entity

import (
	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsplayground/config"
	"github.com/milk9111/fpsplayground/ecs"
	"github.com/milk9111/fpsplayground/ecs/component"
	"github.com/milk9111/fpsplayground/physics"
)

// NewGround builds the ground slab and registers it with pw so bodies can
// stand on it and scenery can raycast against it.
func NewGround(w *ecs.World, pw *physics.World, cfg config.GroundConfig) (ecs.Entity, error) {
	box := physics.NewGroundBox(cfg.Center, cfg.Width, cfg.Depth, cfg.Thickness)
	g := &component.Ground{Provider: box}

	e, err := buildEntity(w, "ground",
		with(component.TransformComponent, &component.Transform{Position: cfg.Center, Rotation: mgl64.QuatIdent()}),
		with(component.RenderableComponent, &component.Renderable{ReceiveShadow: true}),
		with(component.GroundComponent, g),
	)
	if err != nil {
		return 0, err
	}
	g.Unregister = pw.RegisterGround(box, e)
	return e, nil
}
