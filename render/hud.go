package render

import (
	"fmt"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/milk9111/fpsplayground/ecs"
	"github.com/milk9111/fpsplayground/ecs/component"
)

const maxListedProjectiles = 8

// DrawHUD prints frame rate and player state in the top-left corner.
func DrawHUD(screen *ebiten.Image, w *ecs.World, player ecs.Entity, debug bool) {
	var b strings.Builder
	fmt.Fprintf(&b, "FPS: %.1f\n", ebiten.ActualFPS())

	if c, ok := ecs.Get(w, player, component.ContactsComponent); ok {
		fmt.Fprintf(&b, "grounded: %t (%d contacts)\n", c.Grounded(), c.Count)
	}
	if !debug {
		ebitenutil.DebugPrint(screen, b.String())
		return
	}

	if t, ok := ecs.Get(w, player, component.TransformComponent); ok {
		p := t.Position
		fmt.Fprintf(&b, "pos: %.2f %.2f %.2f\n", p.X(), p.Y(), p.Z())
	}
	if look, ok := ecs.Get(w, player, component.LookComponent); ok {
		fmt.Fprintf(&b, "yaw: %.3f pitch: %.3f invert: %t\n", look.Yaw, look.Pitch, look.InvertY)
	}
	if wp, ok := ecs.Get(w, player, component.WeaponComponent); ok && wp.Active != nil {
		fmt.Fprintf(&b, "projectiles: %d", wp.Active.Len())
		n := 0
		for el := wp.Active.Front(); el != nil && n < maxListedProjectiles; el = el.Next() {
			fmt.Fprintf(&b, " #%d", el.Key)
			n++
		}
		b.WriteString("\n")
	}
	ebitenutil.DebugPrint(screen, b.String())
}
