package engine

import (
	"errors"
	"fmt"

	"github.com/vovakirdan/robot-academy/internal/core"
)

var (
	// ErrOutOfBounds is returned when a move would leave the grid.
	ErrOutOfBounds = errors.New("out of bounds")

	// ErrObstacleCollision is returned when a move would enter an obstacle cell.
	ErrObstacleCollision = errors.New("obstacle collision")

	// ErrBusy is returned by LoadLevel while a run is in progress.
	ErrBusy = errors.New("engine is running")

	// ErrNoLevel is returned by Run and Step before any level was loaded.
	ErrNoLevel = errors.New("no level loaded")
)

// MoveError describes a rejected moveForward.
// It matches ErrOutOfBounds or ErrObstacleCollision via errors.Is.
type MoveError struct {
	Kind error
	From core.Position
	To   core.Position
}

func (e *MoveError) Error() string {
	return fmt.Sprintf("move %s -> %s: %v", e.From, e.To, e.Kind)
}

func (e *MoveError) Unwrap() error {
	return e.Kind
}

// LevelError reports why a level was rejected by LoadLevel.
type LevelError struct {
	Code    string
	Message string
}

func (e LevelError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Message returns the learner-facing text for an error that aborted a run.
func Message(err error) string {
	switch {
	case errors.Is(err, ErrOutOfBounds):
		return "Error: Robot hit the wall! 🧱"
	case errors.Is(err, ErrObstacleCollision):
		return "Error: Robot hit an obstacle! 🚧"
	default:
		return "Error: " + err.Error()
	}
}
