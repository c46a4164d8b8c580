package input

// Action is a logical player action bound to one or more key codes.
type Action int

const (
	ActionNone Action = iota
	ActionForward
	ActionBackward
	ActionLeft
	ActionRight
	ActionJump
)

var actionNames = map[Action]string{
	ActionNone:     "none",
	ActionForward:  "forward",
	ActionBackward: "backward",
	ActionLeft:     "left",
	ActionRight:    "right",
	ActionJump:     "jump",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

var defaultBindings = map[Code]Action{
	CodeKeyW:       ActionForward,
	CodeArrowUp:    ActionForward,
	CodeKeyS:       ActionBackward,
	CodeArrowDown:  ActionBackward,
	CodeKeyA:       ActionLeft,
	CodeArrowLeft:  ActionLeft,
	CodeKeyD:       ActionRight,
	CodeArrowRight: ActionRight,
	CodeSpace:      ActionJump,
}

// ActionFor maps a physical key code to its action. Unbound codes map to
// ActionNone.
func ActionFor(code Code) Action {
	return defaultBindings[code]
}
