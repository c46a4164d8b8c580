// Package input models the device layer consumed by the player controller:
// keyboard and pointer events, a dispatcher delivering them to listeners and
// the pointer lock contract of the render surface.
package input

// Code is a physical key code such as "KeyW", "ArrowUp" or "Space".
type Code string

const (
	CodeKeyW       Code = "KeyW"
	CodeKeyA       Code = "KeyA"
	CodeKeyS       Code = "KeyS"
	CodeKeyD       Code = "KeyD"
	CodeArrowUp    Code = "ArrowUp"
	CodeArrowDown  Code = "ArrowDown"
	CodeArrowLeft  Code = "ArrowLeft"
	CodeArrowRight Code = "ArrowRight"
	CodeSpace      Code = "Space"
	CodeEscape     Code = "Escape"
)

// Button identifies a pointer button.
type Button int

const (
	ButtonPrimary Button = iota
	ButtonSecondary
	ButtonMiddle
)

// Event is one device event. The concrete types below are the only events.
type Event interface {
	isEvent()
}

// KeyDown reports a key press. Repeat is set for auto-repeat presses.
type KeyDown struct {
	Code   Code
	Repeat bool
}

// KeyUp reports a key release.
type KeyUp struct {
	Code Code
}

// PointerMove carries relative pointer motion in pixels.
type PointerMove struct {
	DX, DY float64
}

// PointerDown reports a button press. OnSurface is set when the press landed
// on the render surface.
type PointerDown struct {
	Button    Button
	OnSurface bool
}

// PointerUp reports a button release.
type PointerUp struct {
	Button Button
}

// PointerCancel reports that the device aborted the current pointer
// interaction, for example because the window lost focus.
type PointerCancel struct{}

// PointerLeave reports that the pointer left the render surface.
type PointerLeave struct{}

// PointerLockChange reports a pointer lock transition.
type PointerLockChange struct {
	Locked bool
}

func (KeyDown) isEvent()           {}
func (KeyUp) isEvent()             {}
func (PointerMove) isEvent()       {}
func (PointerDown) isEvent()       {}
func (PointerUp) isEvent()         {}
func (PointerCancel) isEvent()     {}
func (PointerLeave) isEvent()      {}
func (PointerLockChange) isEvent() {}
