package render

import (
	"image/color"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"github.com/milk9111/fpsplayground/ecs"
	"github.com/milk9111/fpsplayground/ecs/component"
	"github.com/milk9111/fpsplayground/scenery"
)

const gridStep = 4.0

var (
	skyColor        = color.RGBA{0x1b, 0x22, 0x30, 0xff}
	gridColor       = color.RGBA{0x3a, 0x5a, 0x3a, 0xff}
	shadowColor     = color.RGBA{0x10, 0x16, 0x10, 0xff}
	sceneryColor    = color.RGBA{0xc8, 0xc0, 0xa8, 0xff}
	projectileColor = color.RGBA{0xff, 0xd0, 0x40, 0xff}
	weaponColor     = color.RGBA{0x90, 0xb0, 0xd0, 0xff}
	crosshairColor  = color.RGBA{0xff, 0xff, 0xff, 0xc0}
)

// Renderer draws the world as wireframe from the player camera.
type Renderer struct {
	width, height int
	weapon        scenery.Mesh
}

func NewRenderer(width, height int) *Renderer {
	return &Renderer{width: width, height: height, weapon: weaponMesh()}
}

func (r *Renderer) Draw(screen *ebiten.Image, w *ecs.World, player ecs.Entity) {
	screen.Fill(skyColor)

	cam, ok := ecs.Get(w, player, component.CameraComponent)
	if !ok {
		return
	}
	v := newView(*cam, r.width, r.height)

	r.drawGround(screen, w, v)
	r.drawScenery(screen, w, v)
	r.drawProjectiles(screen, w, v)
	if mount, ok := ecs.Get(w, player, component.WeaponMountComponent); ok {
		model := mgl64.Translate3D(mount.Position.X(), mount.Position.Y(), mount.Position.Z()).Mul4(mount.Orientation.Mat4())
		r.drawMesh(screen, v, r.weapon, model, weaponColor)
	}
	r.drawCrosshair(screen)
}

func (r *Renderer) line(screen *ebiten.Image, v view, a, b mgl64.Vec3, clr color.Color) {
	x0, y0, x1, y1, ok := v.segment(a, b)
	if !ok {
		return
	}
	vector.StrokeLine(screen, float32(x0), float32(y0), float32(x1), float32(y1), 1, clr, true)
}

func (r *Renderer) drawGround(screen *ebiten.Image, w *ecs.World, v view) {
	ecs.ForEach(w, component.GroundComponent, func(_ ecs.Entity, g *component.Ground) {
		if g.Provider == nil {
			return
		}
		lo, hi := g.Provider.Bounds()
		y := hi.Y()
		for x := lo.X(); x <= hi.X(); x += gridStep {
			r.line(screen, v, mgl64.Vec3{x, y, lo.Z()}, mgl64.Vec3{x, y, hi.Z()}, gridColor)
		}
		for z := lo.Z(); z <= hi.Z(); z += gridStep {
			r.line(screen, v, mgl64.Vec3{lo.X(), y, z}, mgl64.Vec3{hi.X(), y, z}, gridColor)
		}
	})
}

func (r *Renderer) drawScenery(screen *ebiten.Image, w *ecs.World, v view) {
	ecs.ForEach2(w,
		component.SceneryComponent,
		component.RenderableComponent,
		func(_ ecs.Entity, sc *component.Scenery, rd *component.Renderable) {
			if sc.Model == nil {
				return
			}
			for _, inst := range sc.Instances {
				model := mgl64.Translate3D(inst.Position.X(), inst.Position.Y(), inst.Position.Z()).Mul4(mgl64.HomogRotate3DY(inst.Yaw))
				if rd.CastShadow && inst.HasCollider {
					r.drawShadow(screen, v, inst, model)
				}
				for _, mesh := range sc.Model.Meshes() {
					r.drawMesh(screen, v, mesh, model, sceneryColor)
				}
			}
		})
}

// drawShadow outlines the collider footprint just above the ground.
func (r *Renderer) drawShadow(screen *ebiten.Image, v view, inst scenery.Instance, model mgl64.Mat4) {
	c, h := inst.Collider.Center, inst.Collider.HalfExtents
	const lift = 0.01
	corners := [4]mgl64.Vec3{
		{c.X() - h.X(), 0, c.Z() - h.Z()},
		{c.X() + h.X(), 0, c.Z() - h.Z()},
		{c.X() + h.X(), 0, c.Z() + h.Z()},
		{c.X() - h.X(), 0, c.Z() + h.Z()},
	}
	for i := range corners {
		corners[i] = mgl64.TransformCoordinate(corners[i], model)
		corners[i][1] = inst.Position.Y() + lift
	}
	for i := range corners {
		r.line(screen, v, corners[i], corners[(i+1)%len(corners)], shadowColor)
	}
}

func (r *Renderer) drawMesh(screen *ebiten.Image, v view, mesh scenery.Mesh, model mgl64.Mat4, clr color.Color) {
	for _, e := range mesh.Edges() {
		a := mgl64.TransformCoordinate(vec64(mesh.Vertices[e[0]]), model)
		b := mgl64.TransformCoordinate(vec64(mesh.Vertices[e[1]]), model)
		r.line(screen, v, a, b, clr)
	}
}

func (r *Renderer) drawProjectiles(screen *ebiten.Image, w *ecs.World, v view) {
	const size = 0.08
	ecs.ForEach2(w,
		component.ProjectileTagComponent,
		component.TransformComponent,
		func(_ ecs.Entity, _ *component.ProjectileTag, t *component.Transform) {
			p := t.Position
			for axis := 0; axis < 3; axis++ {
				var d mgl64.Vec3
				d[axis] = size
				r.line(screen, v, p.Sub(d), p.Add(d), projectileColor)
			}
		})
}

func (r *Renderer) drawCrosshair(screen *ebiten.Image) {
	cx, cy := float32(r.width)/2, float32(r.height)/2
	vector.StrokeLine(screen, cx-6, cy, cx+6, cy, 1, crosshairColor, false)
	vector.StrokeLine(screen, cx, cy-6, cx, cy+6, 1, crosshairColor, false)
}
