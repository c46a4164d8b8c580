package render

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/fpsplayground/ecs/component"
)

const (
	fovY  = 70 * math.Pi / 180
	zNear = 0.05
	zFar  = 400
)

// view projects world points onto the screen for one camera pose.
type view struct {
	mvp           mgl64.Mat4
	width, height float64
}

func newView(cam component.Camera, width, height int) view {
	rot := cam.Orientation.Normalize().Mat4()
	eye := mgl64.Translate3D(cam.Position.X(), cam.Position.Y(), cam.Position.Z())
	viewMat := eye.Mul4(rot).Inv()
	proj := mgl64.Perspective(fovY, float64(width)/float64(height), zNear, zFar)
	return view{mvp: proj.Mul4(viewMat), width: float64(width), height: float64(height)}
}

// clip returns p in clip space.
func (v view) clip(p mgl64.Vec3) mgl64.Vec4 {
	return v.mvp.Mul4x1(p.Vec4(1))
}

// segment returns the screen coordinates of a-b clipped against the near
// plane. It reports false when the whole segment is behind the camera.
func (v view) segment(a, b mgl64.Vec3) (x0, y0, x1, y1 float64, ok bool) {
	ca, cb := v.clip(a), v.clip(b)
	if ca.W() < zNear && cb.W() < zNear {
		return 0, 0, 0, 0, false
	}
	if ca.W() < zNear {
		ca = ca.Add(cb.Sub(ca).Mul((zNear - ca.W()) / (cb.W() - ca.W())))
	} else if cb.W() < zNear {
		cb = cb.Add(ca.Sub(cb).Mul((zNear - cb.W()) / (ca.W() - cb.W())))
	}
	x0, y0 = v.screen(ca)
	x1, y1 = v.screen(cb)
	return x0, y0, x1, y1, true
}

func (v view) screen(c mgl64.Vec4) (float64, float64) {
	x := c.X() / c.W()
	y := c.Y() / c.W()
	return (x + 1) / 2 * v.width, (1 - y) / 2 * v.height
}
