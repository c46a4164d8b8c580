// Package physics is a small rigid-body world for the playground.
//
// The horizontal plane is simulated by Chipmunk (world X maps to cp X,
// world Z maps to cp Y). Heights are integrated per body against support
// surfaces: registered grounds and the tops of static boxes. Horizontal
// contacts only count when the vertical spans of the two colliders overlap,
// so a body standing on a box can walk across it.
package physics

import (
	"errors"
	"fmt"
	"io"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/jakecoffman/cp"
	"github.com/sirupsen/logrus"
)

// DefaultGravity is the vertical acceleration applied to bodies with a
// gravity scale of one.
const DefaultGravity = -9.81

const (
	// supportSkin is how far above a surface a body still touches it.
	supportSkin = 0.02
	// stepTolerance is how far a surface may rise above the previous feet
	// height and still be stepped onto instead of blocking.
	stepTolerance = 0.05
	// spanSkin shrinks vertical overlaps so a surface low enough to step
	// onto never blocks horizontal motion.
	spanSkin = stepTolerance
	// ccdBackoff keeps swept bodies just short of the surface they hit.
	ccdBackoff = 1e-3
)

const (
	collisionTypeDynamic cp.CollisionType = iota + 1
	collisionTypeStatic
)

var (
	ErrInvalidBody   = errors.New("physics: invalid body definition")
	ErrInvalidStatic = errors.New("physics: invalid static definition")
	ErrWorldClosed   = errors.New("physics: world closed")
)

// Collider is anything a body can touch: a *Body, a *Static or a registered
// ground.
type Collider interface {
	UserData() any
}

// ContactKind tells contact enter from contact exit.
type ContactKind int

const (
	ContactEnter ContactKind = iota
	ContactExit
)

func (k ContactKind) String() string {
	if k == ContactExit {
		return "exit"
	}
	return "enter"
}

// ContactEvent reports that Body started or stopped touching Other.
type ContactEvent struct {
	Kind  ContactKind
	Body  *Body
	Other Collider
}

// RayHit is the nearest intersection found by a raycast.
type RayHit struct {
	Position mgl64.Vec3
	// Fraction of the segment travelled before the hit, in [0, 1].
	Fraction float64
	Collider Collider
}

type contactPair struct {
	body  *Body
	other Collider
}

type ground struct {
	provider GroundProvider
	userData any
}

func (g *ground) UserData() any { return g.userData }

// World owns every body, static collider and ground.
type World struct {
	log           *logrus.Entry
	space         *cp.Space
	gravity       float64
	handlersReady bool
	closed        bool

	bodies  []*Body
	statics []*Static
	grounds []*ground
	shapes  map[*cp.Shape]Collider

	prev         map[contactPair]struct{}
	prevOrder    []contactPair
	current      map[contactPair]struct{}
	currentOrder []contactPair
}

// NewWorld creates an empty world with DefaultGravity. log may be nil.
func NewWorld(log *logrus.Entry) *World {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}
	space := cp.NewSpace()
	space.Iterations = 20
	space.SetGravity(cp.Vector{})
	space.SetCollisionSlop(0.01)
	return &World{
		log:     log.WithField("system", "physics"),
		space:   space,
		gravity: DefaultGravity,
		shapes:  make(map[*cp.Shape]Collider),
		prev:    make(map[contactPair]struct{}),
		current: make(map[contactPair]struct{}),
	}
}

// SetGravity replaces the vertical acceleration.
func (w *World) SetGravity(g float64) {
	if w == nil {
		return
	}
	w.gravity = g
}

// Gravity returns the vertical acceleration.
func (w *World) Gravity() float64 {
	if w == nil {
		return 0
	}
	return w.gravity
}

// CreateBody mounts a dynamic body. A non-positive mass defaults to one.
func (w *World) CreateBody(def BodyDef) (*Body, error) {
	if w == nil || w.closed {
		return nil, ErrWorldClosed
	}
	if def.Radius <= 0 || math.IsNaN(def.Radius) {
		return nil, fmt.Errorf("%w: radius %v", ErrInvalidBody, def.Radius)
	}
	if def.Shape == ShapeCapsule && def.HalfHeight < 0 {
		return nil, fmt.Errorf("%w: half height %v", ErrInvalidBody, def.HalfHeight)
	}
	if def.Mass <= 0 {
		def.Mass = 1
	}
	if def.Category == 0 {
		def.Category = cp.ALL_CATEGORIES
	}
	if def.Mask == 0 {
		def.Mask = cp.ALL_CATEGORIES
	}

	body := cp.NewBody(def.Mass, cp.INFINITY)
	body.SetPosition(cp.Vector{X: def.Position.X(), Y: def.Position.Z()})
	body.SetVelocity(def.Velocity.X(), def.Velocity.Z())
	damping := def.LinearDamping
	body.SetVelocityUpdateFunc(func(body *cp.Body, gravity cp.Vector, _ float64, dt float64) {
		cp.BodyUpdateVelocity(body, gravity, 1/(1+dt*damping), dt)
	})
	// Positions are integrated after the solver in Step. Chipmunk's default
	// integrates before it, using the velocity written by the caller.
	body.SetPositionUpdateFunc(func(*cp.Body, float64) {})

	shape := cp.NewCircle(body, def.Radius, cp.Vector{})
	shape.SetFriction(def.Friction)
	shape.SetCollisionType(collisionTypeDynamic)
	shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, def.Category, def.Mask))

	b := &Body{
		world:      w,
		def:        def,
		body:       body,
		shape:      shape,
		y:          def.Position.Y(),
		vy:         def.Velocity.Y(),
		halfExtent: def.Radius,
	}
	if def.Shape == ShapeCapsule {
		b.halfExtent += def.HalfHeight
	}
	body.UserData = b
	shape.UserData = b

	w.space.AddBody(body)
	w.space.AddShape(shape)
	w.shapes[shape] = b
	w.bodies = append(w.bodies, b)
	return b, nil
}

// AddStatic mounts an immovable box collider.
func (w *World) AddStatic(def StaticDef) (*Static, error) {
	if w == nil || w.closed {
		return nil, ErrWorldClosed
	}
	h := def.HalfExtents
	if h.X() <= 0 || h.Y() <= 0 || h.Z() <= 0 {
		return nil, fmt.Errorf("%w: half extents %v", ErrInvalidStatic, h)
	}

	s := &Static{
		world: w,
		def:   def,
		body:  cp.NewStaticBody(),
		minY:  def.Position.Y() + def.Center.Y() - h.Y(),
		maxY:  def.Position.Y() + def.Center.Y() + h.Y(),
	}
	s.body.SetPosition(cp.Vector{X: def.Position.X(), Y: def.Position.Z()})
	s.body.SetAngle(-def.Yaw)
	s.shape = cp.NewBox2(s.body, s.localBB(), 0)
	s.shape.SetFriction(def.Friction)
	s.shape.SetCollisionType(collisionTypeStatic)
	s.shape.SetFilter(cp.NewShapeFilter(cp.NO_GROUP, CategoryStatic, cp.ALL_CATEGORIES))
	s.body.UserData = s
	s.shape.UserData = s

	w.space.AddBody(s.body)
	w.space.AddShape(s.shape)
	w.shapes[s.shape] = s
	w.statics = append(w.statics, s)
	w.log.WithFields(logrus.Fields{"top": s.maxY, "bottom": s.minY}).Trace("static added")
	return s, nil
}

// RegisterGround adds a walkable surface. The returned function unregisters
// it; calling it more than once is a no-op.
func (w *World) RegisterGround(provider GroundProvider, userData any) func() {
	if w == nil || w.closed || provider == nil {
		return func() {}
	}
	g := &ground{provider: provider, userData: userData}
	w.grounds = append(w.grounds, g)
	return func() {
		for i, other := range w.grounds {
			if other == g {
				w.grounds = append(w.grounds[:i], w.grounds[i+1:]...)
				return
			}
		}
	}
}

// Bodies returns the number of mounted dynamic bodies.
func (w *World) Bodies() int {
	if w == nil {
		return 0
	}
	return len(w.bodies)
}

// Statics returns the number of mounted static colliders.
func (w *World) Statics() int {
	if w == nil {
		return 0
	}
	return len(w.statics)
}

// Grounds returns the number of registered grounds.
func (w *World) Grounds() int {
	if w == nil {
		return 0
	}
	return len(w.grounds)
}

// Touching returns how many colliders b touched during the last step.
func (w *World) Touching(b *Body) int {
	if w == nil || b == nil {
		return 0
	}
	n := 0
	for _, p := range w.prevOrder {
		if p.body == b {
			n++
		}
	}
	return n
}

// RaycastGround returns the nearest hit of the segment against registered
// grounds only.
func (w *World) RaycastGround(from, to mgl64.Vec3) (RayHit, bool) {
	if w == nil {
		return RayHit{}, false
	}
	best := RayHit{Fraction: math.Inf(1)}
	found := false
	length := to.Sub(from).Len()
	for _, g := range w.grounds {
		pos, ok := g.provider.Raycast(from, to)
		if !ok {
			continue
		}
		if f := fraction(from, pos, length); f < best.Fraction {
			best = RayHit{Position: pos, Fraction: f, Collider: g}
			found = true
		}
	}
	return best, found
}

// Raycast returns the nearest hit of the segment against grounds and static
// colliders.
func (w *World) Raycast(from, to mgl64.Vec3) (RayHit, bool) {
	best, found := w.RaycastGround(from, to)
	if w == nil {
		return best, found
	}
	if !found {
		best.Fraction = math.Inf(1)
	}
	length := to.Sub(from).Len()
	for _, s := range w.statics {
		pos, ok := s.raycast(from, to)
		if !ok {
			continue
		}
		if f := fraction(from, pos, length); f < best.Fraction {
			best = RayHit{Position: pos, Fraction: f, Collider: s}
			found = true
		}
	}
	return best, found
}

func fraction(from, hit mgl64.Vec3, length float64) float64 {
	if length == 0 {
		return 0
	}
	return mgl64.Clamp(hit.Sub(from).Len()/length, 0, 1)
}

// Step advances the simulation by dt seconds and returns the contact
// transitions it caused, exits first.
func (w *World) Step(dt float64) []ContactEvent {
	if w == nil || w.closed || dt <= 0 {
		return nil
	}
	w.ensureHandlers()

	clear(w.current)
	w.currentOrder = w.currentOrder[:0]

	for _, b := range w.bodies {
		prevFeet := b.y - b.halfExtent
		if b.def.CCD {
			w.sweep(b, dt)
		}
		b.vy += w.gravity * b.gravityScale() * dt
		b.vy *= 1 / (1 + dt*b.def.LinearDamping)
		b.y += b.vy * dt
		w.resolveSupport(b, prevFeet)
	}

	w.space.Step(dt)
	for _, b := range w.bodies {
		cp.BodyUpdatePosition(b.body, dt)
	}
	return w.diffContacts()
}

// Close removes everything from the world. Later calls are no-ops.
func (w *World) Close() {
	if w == nil || w.closed {
		return
	}
	for len(w.bodies) > 0 {
		w.bodies[len(w.bodies)-1].Remove()
	}
	for len(w.statics) > 0 {
		w.statics[len(w.statics)-1].Remove()
	}
	w.grounds = nil
	clear(w.prev)
	w.prevOrder = nil
	w.closed = true
	w.log.Debug("world closed")
}

func (w *World) ensureHandlers() {
	if w.handlersReady {
		return
	}
	for _, typeB := range []cp.CollisionType{collisionTypeStatic, collisionTypeDynamic} {
		handler := w.space.NewCollisionHandler(collisionTypeDynamic, typeB)
		handler.UserData = w
		handler.PreSolveFunc = preSolve
	}
	w.handlersReady = true
}

func preSolve(arb *cp.Arbiter, _ *cp.Space, userData interface{}) bool {
	w, ok := userData.(*World)
	if !ok || w == nil {
		return true
	}
	shapeA, shapeB := arb.Shapes()
	a, b := w.shapes[shapeA], w.shapes[shapeB]
	if a == nil || b == nil {
		return true
	}
	loA, hiA := verticalSpan(a)
	loB, hiB := verticalSpan(b)
	if !spansOverlap(loA, hiA, loB, hiB) {
		return false
	}
	if body, ok := a.(*Body); ok {
		w.touch(body, b)
	}
	if body, ok := b.(*Body); ok {
		w.touch(body, a)
	}
	return true
}

func verticalSpan(c Collider) (float64, float64) {
	switch v := c.(type) {
	case *Body:
		return v.span()
	case *Static:
		return v.minY, v.maxY
	}
	return math.Inf(-1), math.Inf(1)
}

func spansOverlap(loA, hiA, loB, hiB float64) bool {
	return loA < hiB-spanSkin && hiA > loB+spanSkin
}

// sweep stops a fast body at the first static collider along its
// horizontal path and removes the velocity component pointing into it.
func (w *World) sweep(b *Body, dt float64) {
	v := b.body.Velocity()
	if v.LengthSq() == 0 {
		return
	}
	start := b.body.Position()
	end := start.Add(v.Mult(dt))
	lo, hi := b.span()
	filter := cp.NewShapeFilter(cp.NO_GROUP, b.def.Category, b.def.Mask&CategoryStatic)

	best := math.Inf(1)
	var normal cp.Vector
	w.space.SegmentQuery(start, end, b.def.Radius, filter, func(shape *cp.Shape, _, n cp.Vector, alpha float64, _ interface{}) {
		s, ok := w.shapes[shape].(*Static)
		if !ok || !spansOverlap(lo, hi, s.minY, s.maxY) {
			return
		}
		if alpha < best {
			best = alpha
			normal = n
		}
	}, nil)
	if math.IsInf(best, 1) || v.Dot(normal) >= 0 {
		return
	}

	t := math.Max(best-ccdBackoff, 0)
	b.body.SetPosition(start.Lerp(end, t))
	b.body.SetVelocityVector(v.Sub(normal.Mult(v.Dot(normal))))
}

type support struct {
	collider Collider
	height   float64
}

// resolveSupport keeps b on top of the highest surface under it that it
// could have stepped onto, and records the surfaces it rests on.
func (w *World) resolveSupport(b *Body, prevFeet float64) {
	pos := b.body.Position()
	limit := prevFeet + stepTolerance

	var supports []support
	top := math.Inf(-1)
	for _, g := range w.grounds {
		h, ok := g.provider.HeightAt(pos.X, pos.Y)
		if !ok || h > limit {
			continue
		}
		supports = append(supports, support{collider: g, height: h})
		top = math.Max(top, h)
	}
	for _, s := range w.statics {
		if s.maxY > limit || !s.containsXZ(pos.X, pos.Y) {
			continue
		}
		supports = append(supports, support{collider: s, height: s.maxY})
		top = math.Max(top, s.maxY)
	}
	if len(supports) == 0 {
		return
	}

	feet := b.y - b.halfExtent
	if feet < top {
		b.y = top + b.halfExtent
		feet = top
		if b.vy < 0 {
			b.vy = 0
		}
	}
	for _, sup := range supports {
		if feet <= sup.height+supportSkin {
			w.touch(b, sup.collider)
		}
	}
}

func (w *World) touch(b *Body, other Collider) {
	p := contactPair{body: b, other: other}
	if _, ok := w.current[p]; ok {
		return
	}
	w.current[p] = struct{}{}
	w.currentOrder = append(w.currentOrder, p)
}

func (w *World) diffContacts() []ContactEvent {
	var events []ContactEvent
	for _, p := range w.prevOrder {
		if _, ok := w.current[p]; ok || p.body.removed {
			continue
		}
		events = append(events, ContactEvent{Kind: ContactExit, Body: p.body, Other: p.other})
	}
	for _, p := range w.currentOrder {
		if _, ok := w.prev[p]; ok {
			continue
		}
		events = append(events, ContactEvent{Kind: ContactEnter, Body: p.body, Other: p.other})
	}

	w.prev, w.current = w.current, w.prev
	w.prevOrder, w.currentOrder = w.currentOrder, w.prevOrder
	return events
}

func (w *World) removeBody(b *Body) {
	w.space.RemoveShape(b.shape)
	w.space.RemoveBody(b.body)
	delete(w.shapes, b.shape)
	for i, other := range w.bodies {
		if other == b {
			w.bodies = append(w.bodies[:i], w.bodies[i+1:]...)
			break
		}
	}
	b.removed = true
	w.pruneContacts(func(p contactPair) bool { return p.body == b })
}

func (w *World) removeStatic(s *Static) {
	w.space.RemoveShape(s.shape)
	w.space.RemoveBody(s.body)
	delete(w.shapes, s.shape)
	for i, other := range w.statics {
		if other == s {
			w.statics = append(w.statics[:i], w.statics[i+1:]...)
			break
		}
	}
	s.removed = true
}

// pruneContacts forgets contacts without reporting an exit.
func (w *World) pruneContacts(drop func(contactPair) bool) {
	kept := w.prevOrder[:0]
	for _, p := range w.prevOrder {
		if drop(p) {
			delete(w.prev, p)
			continue
		}
		kept = append(kept, p)
	}
	w.prevOrder = kept
}
