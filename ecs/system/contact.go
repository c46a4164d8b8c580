package system

import (
	"github.com/milk9111/fpsplayground/ecs"
	"github.com/milk9111/fpsplayground/ecs/component"
)

// ContactSystem folds contact events into each entity's contact count.
type ContactSystem struct{}

func NewContactSystem() *ContactSystem {
	return &ContactSystem{}
}

func (s *ContactSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	for _, ev := range w.Events().Drain() {
		c, ok := ecs.Get(w, ev.Entity, component.ContactsComponent)
		if !ok {
			continue
		}
		if ev.Enter {
			c.Count++
		} else if c.Count > 0 {
			c.Count--
		}
	}
}
