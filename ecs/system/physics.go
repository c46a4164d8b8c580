package system

import (
	"github.com/milk9111/fpsplayground/ecs"
	"github.com/milk9111/fpsplayground/ecs/component"
	"github.com/milk9111/fpsplayground/physics"
	"github.com/sirupsen/logrus"
)

// PhysicsSystem creates bodies for new PhysicsBody components, steps the
// physics world by the frame delta, writes poses back to transforms and
// queues contact changes as world events.
type PhysicsSystem struct {
	world *physics.World
	log   *logrus.Entry
}

func NewPhysicsSystem(pw *physics.World, log *logrus.Entry) *PhysicsSystem {
	return &PhysicsSystem{world: pw, log: systemLog(log, "physics")}
}

func (ps *PhysicsSystem) World() *physics.World {
	if ps == nil {
		return nil
	}
	return ps.world
}

func (ps *PhysicsSystem) Update(w *ecs.World) {
	if ps == nil || ps.world == nil || w == nil {
		return
	}

	ps.syncEntities(w)
	events := ps.world.Step(w.DeltaSeconds())
	ps.syncTransforms(w)
	ps.pushContacts(w, events)
}

func (ps *PhysicsSystem) syncEntities(w *ecs.World) {
	ecs.ForEach(w, component.PhysicsBodyComponent, func(e ecs.Entity, pb *component.PhysicsBody) {
		if pb.Body != nil {
			return
		}
		def := pb.Def
		def.UserData = e
		body, err := ps.world.CreateBody(def)
		if err != nil {
			ps.log.WithError(err).WithField("entity", e.String()).Warn("body rejected")
			ecs.Remove(w, e, component.PhysicsBodyComponent)
			return
		}
		pb.Body = body
	})
}

func (ps *PhysicsSystem) syncTransforms(w *ecs.World) {
	ecs.ForEach2(w,
		component.PhysicsBodyComponent,
		component.TransformComponent,
		func(_ ecs.Entity, pb *component.PhysicsBody, t *component.Transform) {
			if pb.Body == nil || pb.Body.Removed() {
				return
			}
			t.Position = pb.Body.Translation()
		})
}

func (ps *PhysicsSystem) pushContacts(w *ecs.World, events []physics.ContactEvent) {
	for _, ev := range events {
		e, ok := ev.Body.UserData().(ecs.Entity)
		if !ok {
			continue
		}
		var other ecs.Entity
		if ev.Other != nil {
			other, _ = ev.Other.UserData().(ecs.Entity)
		}
		w.Events().Push(ecs.ContactEvent{Entity: e, Other: other, Enter: ev.Kind == physics.ContactEnter})
	}
}
