package main

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/milk9111/fpsplayground/input"
)

var keyCodes = map[ebiten.Key]input.Code{
	ebiten.KeyW:          input.CodeKeyW,
	ebiten.KeyA:          input.CodeKeyA,
	ebiten.KeyS:          input.CodeKeyS,
	ebiten.KeyD:          input.CodeKeyD,
	ebiten.KeyArrowUp:    input.CodeArrowUp,
	ebiten.KeyArrowDown:  input.CodeArrowDown,
	ebiten.KeyArrowLeft:  input.CodeArrowLeft,
	ebiten.KeyArrowRight: input.CodeArrowRight,
	ebiten.KeySpace:      input.CodeSpace,
}

var buttons = map[ebiten.MouseButton]input.Button{
	ebiten.MouseButtonLeft:   input.ButtonPrimary,
	ebiten.MouseButtonRight:  input.ButtonSecondary,
	ebiten.MouseButtonMiddle: input.ButtonMiddle,
}

// device turns Ebiten's polled keyboard and mouse state into input events.
type device struct {
	width, height int

	cursorX, cursorY int
	hasCursor        bool
	inside           bool
	locked           bool
	focused          bool
}

func newDevice(width, height int) *device {
	return &device{width: width, height: height, focused: true}
}

func (d *device) Poll(disp *input.Dispatcher) {
	for key, code := range keyCodes {
		if inpututil.IsKeyJustPressed(key) {
			disp.Dispatch(input.KeyDown{Code: code})
		}
		if inpututil.IsKeyJustReleased(key) {
			disp.Dispatch(input.KeyUp{Code: code})
		}
	}

	locked := ebiten.CursorMode() == ebiten.CursorModeCaptured
	if locked != d.locked {
		d.locked = locked
		disp.Dispatch(input.PointerLockChange{Locked: locked})
	}

	focused := ebiten.IsFocused()
	if !focused && d.focused {
		disp.Dispatch(input.PointerCancel{})
	}
	d.focused = focused

	x, y := ebiten.CursorPosition()
	if d.hasCursor && (x != d.cursorX || y != d.cursorY) {
		disp.Dispatch(input.PointerMove{DX: float64(x - d.cursorX), DY: float64(y - d.cursorY)})
	}
	d.cursorX, d.cursorY, d.hasCursor = x, y, true

	inside := locked || (x >= 0 && y >= 0 && x < d.width && y < d.height)
	if d.inside && !inside {
		disp.Dispatch(input.PointerLeave{})
	}
	d.inside = inside

	for mb, b := range buttons {
		if inpututil.IsMouseButtonJustPressed(mb) {
			disp.Dispatch(input.PointerDown{Button: b, OnSurface: inside})
		}
		if inpututil.IsMouseButtonJustReleased(mb) {
			disp.Dispatch(input.PointerUp{Button: b})
		}
	}
}

// cursorLock captures the cursor. In browsers this is the Pointer Lock API.
type cursorLock struct{}

func (cursorLock) Request() {
	ebiten.SetCursorMode(ebiten.CursorModeCaptured)
}

func (cursorLock) Release() {
	ebiten.SetCursorMode(ebiten.CursorModeVisible)
}

func (cursorLock) Locked() bool {
	return ebiten.CursorMode() == ebiten.CursorModeCaptured
}
