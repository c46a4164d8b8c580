package component

import "github.com/milk9111/fpsplayground/physics"

// PhysicsBody mounts a dynamic body. Body is created from Def by the
// physics system on its next update.
type PhysicsBody struct {
	Def  physics.BodyDef
	Body *physics.Body
}

func (p *PhysicsBody) Release() {
	if p != nil && p.Body != nil {
		p.Body.Remove()
	}
}

var PhysicsBodyComponent = NewComponent[PhysicsBody]()

// StaticColliders are the immovable boxes owned by an entity.
type StaticColliders struct {
	Statics []*physics.Static
}

func (s *StaticColliders) Release() {
	if s == nil {
		return
	}
	for _, st := range s.Statics {
		st.Remove()
	}
	s.Statics = nil
}

var StaticCollidersComponent = NewComponent[StaticColliders]()

// Ground is a registered ground surface.
type Ground struct {
	Provider   *physics.GroundBox
	Unregister func()
}

func (g *Ground) Release() {
	if g != nil && g.Unregister != nil {
		g.Unregister()
	}
}

var GroundComponent = NewComponent[Ground]()
