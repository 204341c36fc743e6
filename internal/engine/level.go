package engine

import (
	"fmt"

	"github.com/elliotchance/orderedmap/v2"

	"github.com/vovakirdan/robot-academy/internal/core"
)

// Level is the checkpoint a run starts from.
type Level struct {
	Robot     core.Robot
	Goal      core.Position
	Obstacles []core.Position
	GridSize  int // 0 uses the engine's configured grid size
}

// Validate checks that the level can be played on a board of the given size.
// A goal placed on an obstacle is accepted; such a level simply cannot be solved.
func (l Level) Validate(gridSize int) error {
	if gridSize <= 0 {
		return LevelError{Code: "GRID_SIZE", Message: fmt.Sprintf("grid size must be positive, got %d", gridSize)}
	}
	if !l.Robot.Dir.Valid() {
		return LevelError{Code: "DIRECTION", Message: fmt.Sprintf("robot direction %d is not 0..3", l.Robot.Dir)}
	}
	if !l.Robot.Pos.Within(gridSize) {
		return LevelError{Code: "ROBOT_BOUNDS", Message: fmt.Sprintf("robot start %s is outside the %dx%d grid", l.Robot.Pos, gridSize, gridSize)}
	}
	if !l.Goal.Within(gridSize) {
		return LevelError{Code: "GOAL_BOUNDS", Message: fmt.Sprintf("goal %s is outside the %dx%d grid", l.Goal, gridSize, gridSize)}
	}
	for _, o := range l.Obstacles {
		if !o.Within(gridSize) {
			return LevelError{Code: "OBSTACLE_BOUNDS", Message: fmt.Sprintf("obstacle %s is outside the %dx%d grid", o, gridSize, gridSize)}
		}
		if o == l.Robot.Pos {
			return LevelError{Code: "ROBOT_ON_OBSTACLE", Message: fmt.Sprintf("robot starts on obstacle %s", o)}
		}
	}
	return nil
}

// obstacleSet keeps obstacles in the order the level listed them,
// dropping duplicates.
type obstacleSet struct {
	cells *orderedmap.OrderedMap[core.Position, struct{}]
}

func newObstacleSet(cells []core.Position) obstacleSet {
	m := orderedmap.NewOrderedMap[core.Position, struct{}]()
	for _, c := range cells {
		m.Set(c, struct{}{})
	}
	return obstacleSet{cells: m}
}

func (s obstacleSet) Has(p core.Position) bool {
	if s.cells == nil {
		return false
	}
	_, ok := s.cells.Get(p)
	return ok
}

func (s obstacleSet) Len() int {
	if s.cells == nil {
		return 0
	}
	return s.cells.Len()
}

// List returns a fresh slice of obstacle cells.
func (s obstacleSet) List() []core.Position {
	if s.cells == nil {
		return nil
	}
	return s.cells.Keys()
}
