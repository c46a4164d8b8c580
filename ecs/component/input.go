package component

import "github.com/milk9111/fpsplayground/input"

// Input is the held state of the movement and jump keys. Flags change only
// on key events; a key held across frames stays true.
type Input struct {
	Forward  bool
	Backward bool
	Left     bool
	Right    bool
	Jump     bool

	// JumpRequested is set by a jump key press and cleared by the jump
	// system every frame, whether or not the jump happened.
	JumpRequested bool
}

// Set records the held state of an action. Unmapped actions are ignored.
func (in *Input) Set(a input.Action, down bool) {
	switch a {
	case input.ActionForward:
		in.Forward = down
	case input.ActionBackward:
		in.Backward = down
	case input.ActionLeft:
		in.Left = down
	case input.ActionRight:
		in.Right = down
	case input.ActionJump:
		in.Jump = down
		if down {
			in.JumpRequested = true
		}
	}
}

// Clear drops every held key and a pending jump request.
func (in *Input) Clear() {
	*in = Input{}
}

var InputComponent = NewComponent[Input]()

// InputBinding holds an entity's device subscription. Releasing it
// unsubscribes.
type InputBinding struct {
	Sub *input.Subscription
}

func (b *InputBinding) Release() {
	if b != nil && b.Sub != nil {
		b.Sub.Close()
	}
}

var InputBindingComponent = NewComponent[InputBinding]()
