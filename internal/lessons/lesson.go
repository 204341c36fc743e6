// Package lessons provides the lesson catalog: built-in lessons embedded in
// the binary plus optional lesson files loaded from a directory.
package lessons

import (
	"errors"
	"fmt"
	"math/rand"
	"strings"

	"github.com/samber/lo"

	"github.com/vovakirdan/robot-academy/internal/core"
	"github.com/vovakirdan/robot-academy/internal/engine"
	"github.com/vovakirdan/robot-academy/internal/script"
)

// NoHints is shown when a lesson has no hints.
const NoHints = "No hints available for this lesson"

// Lesson is a puzzle: a level plus the teaching material around it.
type Lesson struct {
	ID             int
	Title          string
	Description    string
	GridSize       int // 0 means the configured board size
	Robot          core.Robot
	Goal           core.Position
	Obstacles      []core.Position
	Hints          []string
	MaxBlocks      int
	RequiredBlocks []string
	Solution       string // Reference script, may be empty
	Source         string // File the lesson came from
}

// ValidationError contains details about a rejected lesson.
type ValidationError struct {
	Code    string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Size returns the grid size the lesson is played on.
func (l Lesson) Size(defaultGrid int) int {
	if l.GridSize > 0 {
		return l.GridSize
	}
	return defaultGrid
}

// Level converts the lesson to an engine checkpoint.
func (l Lesson) Level(defaultGrid int) engine.Level {
	return engine.Level{
		Robot:     l.Robot,
		Goal:      l.Goal,
		Obstacles: append([]core.Position(nil), l.Obstacles...),
		GridSize:  l.Size(defaultGrid),
	}
}

// Validate checks that the lesson can be loaded into an engine.
func (l Lesson) Validate(defaultGrid int) error {
	if l.ID <= 0 {
		return ValidationError{Code: "ID", Message: fmt.Sprintf("lesson id must be positive, got %d", l.ID)}
	}
	if strings.TrimSpace(l.Title) == "" {
		return ValidationError{Code: "TITLE", Message: fmt.Sprintf("lesson %d has no title", l.ID)}
	}

	if err := l.Level(defaultGrid).Validate(l.Size(defaultGrid)); err != nil {
		var le engine.LevelError
		if errors.As(err, &le) {
			return ValidationError{Code: le.Code, Message: fmt.Sprintf("lesson %d: %s", l.ID, le.Message)}
		}
		return err
	}

	known := []string{core.BlockMoveForward, core.BlockTurnRight, core.BlockTurnLeft, core.BlockRepeat}
	if unknown := lo.Without(l.RequiredBlocks, known...); len(unknown) > 0 {
		return ValidationError{
			Code:    "BLOCKS",
			Message: fmt.Sprintf("lesson %d requires unknown blocks %s", l.ID, strings.Join(unknown, ", ")),
		}
	}
	if l.MaxBlocks < 0 {
		return ValidationError{Code: "BLOCKS", Message: fmt.Sprintf("lesson %d: max_blocks must not be negative", l.ID)}
	}
	return nil
}

// Hint returns a random hint, or NoHints.
func (l Lesson) Hint(rng *rand.Rand) string {
	if len(l.Hints) == 0 {
		return NoHints
	}
	return l.Hints[rng.Intn(len(l.Hints))]
}

// Review compares the blocks a program used with the lesson rules and
// returns notes for the learner. No notes means the rules were met.
func (l Lesson) Review(stats script.BlockStats) []string {
	var notes []string

	if l.MaxBlocks > 0 && stats.Total > l.MaxBlocks {
		notes = append(notes, fmt.Sprintf("You used %d blocks. Can you solve it with %d or fewer?", stats.Total, l.MaxBlocks))
	}

	missing := lo.Without(lo.Uniq(l.RequiredBlocks), stats.KindList()...)
	for _, b := range missing {
		notes = append(notes, fmt.Sprintf("Try using the %s block.", BlockLabel(b)))
	}
	return notes
}

// BlockLabel returns the palette name of a block kind.
func BlockLabel(kind string) string {
	switch kind {
	case core.BlockMoveForward:
		return "'move forward'"
	case core.BlockTurnRight:
		return "'turn right'"
	case core.BlockTurnLeft:
		return "'turn left'"
	case core.BlockRepeat:
		return "'repeat'"
	default:
		return kind
	}
}
