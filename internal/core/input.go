package core

// Action represents a semantic learner action, abstracted from physical key presses.
// This allows the session to work with high-level intents rather than raw input.
type Action int

const (
	ActionNone    Action = iota
	ActionRun            // R - run the whole script
	ActionStep           // S, Space - record or replay one step
	ActionReset          // X - back to the lesson checkpoint
	ActionHint           // H - show a random lesson hint
	ActionNext           // N, Right - next lesson
	ActionPrev           // P, Left - previous lesson
	ActionReload         // L - reload the script file
	ActionEdit           // Tab, E - focus the script editor
	ActionHelp           // ? - toggle full help
	ActionBack           // B, Escape - back to the lesson picker
	ActionQuit           // Q, Ctrl+C - exit the session
)

// String returns a human-readable name for the action.
func (a Action) String() string {
	switch a {
	case ActionNone:
		return "None"
	case ActionRun:
		return "Run"
	case ActionStep:
		return "Step"
	case ActionReset:
		return "Reset"
	case ActionHint:
		return "Hint"
	case ActionNext:
		return "Next"
	case ActionPrev:
		return "Prev"
	case ActionReload:
		return "Reload"
	case ActionEdit:
		return "Edit"
	case ActionHelp:
		return "Help"
	case ActionBack:
		return "Back"
	case ActionQuit:
		return "Quit"
	default:
		return "Unknown"
	}
}
