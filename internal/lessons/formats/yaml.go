// Package formats provides lesson file format parsers.
package formats

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/vovakirdan/robot-academy/internal/core"
)

// YAMLLesson represents the YAML structure for a lesson file.
type YAMLLesson struct {
	ID             int             `yaml:"id"`
	Title          string          `yaml:"title"`
	Description    string          `yaml:"description"`
	GridSize       int             `yaml:"grid_size,omitempty"`
	Robot          YAMLRobot       `yaml:"robot"`
	Goal           core.Position   `yaml:"goal"`
	Obstacles      []core.Position `yaml:"obstacles,omitempty"`
	Hints          []string        `yaml:"hints,omitempty"`
	MaxBlocks      int             `yaml:"max_blocks,omitempty"`
	RequiredBlocks []string        `yaml:"required_blocks,omitempty"`
	Solution       string          `yaml:"solution,omitempty"`
}

// YAMLRobot is the robot start. Direction is a name or 0..3.
type YAMLRobot struct {
	X         int    `yaml:"x"`
	Y         int    `yaml:"y"`
	Direction string `yaml:"direction"`
}

// Lesson represents a parsed lesson ready for use.
type Lesson struct {
	ID             int
	Title          string
	Description    string
	GridSize       int
	Robot          core.Robot
	Goal           core.Position
	Obstacles      []core.Position
	Hints          []string
	MaxBlocks      int
	RequiredBlocks []string
	Solution       string
}

// ParseYAML parses a YAML lesson file.
func ParseYAML(data []byte) (Lesson, error) {
	var yl YAMLLesson
	if err := yaml.Unmarshal(data, &yl); err != nil {
		return Lesson{}, fmt.Errorf("yaml unmarshal: %w", err)
	}

	if yl.ID <= 0 {
		return Lesson{}, fmt.Errorf("lesson id must be positive, got %d", yl.ID)
	}

	dir := core.North
	if yl.Robot.Direction != "" {
		d, ok := core.ParseDirection(yl.Robot.Direction)
		if !ok {
			return Lesson{}, fmt.Errorf("lesson %d: unknown robot direction %q", yl.ID, yl.Robot.Direction)
		}
		dir = d
	}

	return Lesson{
		ID:             yl.ID,
		Title:          yl.Title,
		Description:    yl.Description,
		GridSize:       yl.GridSize,
		Robot:          core.NewRobot(yl.Robot.X, yl.Robot.Y, dir),
		Goal:           yl.Goal,
		Obstacles:      yl.Obstacles,
		Hints:          yl.Hints,
		MaxBlocks:      yl.MaxBlocks,
		RequiredBlocks: yl.RequiredBlocks,
		Solution:       yl.Solution,
	}, nil
}

// FormatExtensions returns supported file extensions.
func FormatExtensions() []string {
	return []string{".yaml", ".yml"}
}
