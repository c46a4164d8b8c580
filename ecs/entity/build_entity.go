package entity

import (
	"fmt"

	"github.com/milk9111/fpsplayground/ecs"
	"github.com/milk9111/fpsplayground/ecs/component"
)

type componentBuildFn func(w *ecs.World, e ecs.Entity) error

func with[T any](handle component.ComponentHandle[T], value *T) componentBuildFn {
	return func(w *ecs.World, e ecs.Entity) error {
		return ecs.Add(w, e, handle, value)
	}
}

// buildEntity creates an entity and adds components in order. If any add
// fails the entity is destroyed, releasing what was already attached.
func buildEntity(w *ecs.World, name string, fns ...componentBuildFn) (ecs.Entity, error) {
	e := ecs.CreateEntity(w)
	if !e.Valid() {
		return 0, fmt.Errorf("%s: %w", name, component.ErrWorldClosed)
	}
	for _, fn := range fns {
		if err := fn(w, e); err != nil {
			ecs.DestroyEntity(w, e)
			return 0, fmt.Errorf("%s: %w", name, err)
		}
	}
	return e, nil
}
