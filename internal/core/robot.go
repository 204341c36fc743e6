package core

import "fmt"

// Robot is the avatar driven by learner scripts.
type Robot struct {
	Pos Position
	Dir Direction
}

// NewRobot creates a robot at (x, y) facing dir.
func NewRobot(x, y int, dir Direction) Robot {
	return Robot{Pos: P(x, y), Dir: dir}
}

// Ahead returns the cell directly in front of the robot.
func (r Robot) Ahead() Position {
	return r.Pos.Step(r.Dir)
}

// String returns a compact description such as "(1,1) facing North".
func (r Robot) String() string {
	return fmt.Sprintf("%s facing %s", r.Pos, r.Dir)
}

// Command is the name of one movement primitive as it appears in scripts
// and in the step-mode command log.
type Command string

const (
	CmdMoveForward Command = "moveForward"
	CmdTurnRight   Command = "turnRight"
	CmdTurnLeft    Command = "turnLeft"
)

// Block kinds used by lesson rules. They match the block editor's type names.
const (
	BlockMoveForward = "move_forward"
	BlockTurnRight   = "turn_right"
	BlockTurnLeft    = "turn_left"
	BlockRepeat      = "controls_repeat_ext"
)

// Valid reports whether c names a known primitive.
func (c Command) Valid() bool {
	switch c {
	case CmdMoveForward, CmdTurnRight, CmdTurnLeft:
		return true
	}
	return false
}

// Block returns the block kind that generates this command.
func (c Command) Block() string {
	switch c {
	case CmdMoveForward:
		return BlockMoveForward
	case CmdTurnRight:
		return BlockTurnRight
	case CmdTurnLeft:
		return BlockTurnLeft
	default:
		return ""
	}
}
