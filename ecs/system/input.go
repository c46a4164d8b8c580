package system

import (
	"github.com/milk9111/fpsplayground/ecs"
	"github.com/milk9111/fpsplayground/ecs/component"
	"github.com/milk9111/fpsplayground/input"
	"github.com/sirupsen/logrus"
)

// InputSystem subscribes every player entity to the device dispatcher and
// polls the device source once per frame. Events reach the player's
// listener synchronously during Poll.
type InputSystem struct {
	dispatcher *input.Dispatcher
	source     input.Source
	lock       input.PointerLock
	weapons    *WeaponSystem
	log        *logrus.Entry
}

func NewInputSystem(d *input.Dispatcher, source input.Source, lock input.PointerLock, weapons *WeaponSystem, log *logrus.Entry) *InputSystem {
	return &InputSystem{
		dispatcher: d,
		source:     source,
		lock:       lock,
		weapons:    weapons,
		log:        systemLog(log, "input"),
	}
}

func (s *InputSystem) Update(w *ecs.World) {
	if s == nil || w == nil {
		return
	}

	for _, e := range w.Query(component.PlayerTagComponent, component.InputComponent, component.LookComponent) {
		if ecs.Has(w, e, component.InputBindingComponent) {
			continue
		}
		l := &playerListener{w: w, e: e, lock: s.lock, weapons: s.weapons, log: s.log.WithField("entity", e.String())}
		sub := s.dispatcher.Subscribe(l)
		if err := ecs.Add(w, e, component.InputBindingComponent, &component.InputBinding{Sub: sub}); err != nil {
			sub.Close()
			s.log.WithError(err).Warn("bind input")
		}
	}

	if s.source != nil {
		s.source.Poll(s.dispatcher)
	}
}

// Suspend forgets held keys and releases the trigger of every player. Key
// releases that happen while the source is not polled would otherwise be
// lost and leave actions stuck on.
func (s *InputSystem) Suspend(w *ecs.World) {
	if s == nil || w == nil {
		return
	}
	ecs.ForEach2(w, component.PlayerTagComponent, component.InputComponent, func(e ecs.Entity, _ *component.PlayerTag, in *component.Input) {
		in.Clear()
		s.weapons.Release(w, e)
	})
}

// playerListener routes device events to one player entity.
type playerListener struct {
	w       *ecs.World
	e       ecs.Entity
	lock    input.PointerLock
	weapons *WeaponSystem
	log     *logrus.Entry
}

func (l *playerListener) locked() bool {
	return l.lock != nil && l.lock.Locked()
}

func (l *playerListener) HandleEvent(ev input.Event) {
	if !l.w.IsAlive(l.e) {
		return
	}

	switch ev := ev.(type) {
	case input.KeyDown:
		if ev.Repeat {
			return
		}
		if in, ok := ecs.Get(l.w, l.e, component.InputComponent); ok {
			in.Set(input.ActionFor(ev.Code), true)
		}
	case input.KeyUp:
		if in, ok := ecs.Get(l.w, l.e, component.InputComponent); ok {
			in.Set(input.ActionFor(ev.Code), false)
		}
	case input.PointerMove:
		if !l.locked() {
			return
		}
		if look, ok := ecs.Get(l.w, l.e, component.LookComponent); ok {
			look.Turn(ev.DX, ev.DY)
		}
	case input.PointerDown:
		if ev.Button != input.ButtonPrimary {
			return
		}
		locked := l.locked()
		if !locked && ev.OnSurface && l.lock != nil {
			l.lock.Request()
		}
		if locked || ev.OnSurface {
			l.weapons.Press(l.w, l.e)
		}
	case input.PointerUp:
		if ev.Button == input.ButtonPrimary {
			l.weapons.Release(l.w, l.e)
		}
	case input.PointerCancel, input.PointerLeave:
		l.weapons.Release(l.w, l.e)
	case input.PointerLockChange:
		l.log.WithField("locked", ev.Locked).Debug("pointer lock changed")
		if !ev.Locked {
			l.weapons.Release(l.w, l.e)
		}
	}
}
