package core

import (
	"strconv"
	"strings"
)

// Direction is the way the robot is facing.
// The numeric values are part of the lesson file format: adding one (mod 4)
// turns clockwise.
type Direction uint8

const (
	North Direction = iota
	East
	South
	West
)

// AllDirections returns every valid direction in clockwise order.
func AllDirections() []Direction {
	return []Direction{North, East, South, West}
}

// String returns the string representation of a direction.
func (d Direction) String() string {
	switch d {
	case North:
		return "North"
	case East:
		return "East"
	case South:
		return "South"
	case West:
		return "West"
	default:
		return "Unknown"
	}
}

// Valid returns true if the direction is one of the four cardinal directions.
func (d Direction) Valid() bool {
	return d <= West
}

// Right returns the direction after a clockwise quarter turn.
func (d Direction) Right() Direction {
	return (d + 1) % 4
}

// Left returns the direction after a counter-clockwise quarter turn.
func (d Direction) Left() Direction {
	return (d + 3) % 4
}

// Delta returns the (dx, dy) offset for moving one cell in this direction.
// North decreases Y, South increases Y.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case North:
		return 0, -1
	case East:
		return 1, 0
	case South:
		return 0, 1
	case West:
		return -1, 0
	default:
		return 0, 0
	}
}

// Arrow returns a single rune pointing in this direction.
func (d Direction) Arrow() rune {
	switch d {
	case North:
		return '▲'
	case East:
		return '▶'
	case South:
		return '▼'
	case West:
		return '◀'
	default:
		return '?'
	}
}

// ParseDirection accepts a direction name ("north", "N") or its numeric code ("0".."3").
func ParseDirection(s string) (Direction, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	switch s {
	case "north", "n", "up":
		return North, true
	case "east", "e", "right":
		return East, true
	case "south", "s", "down":
		return South, true
	case "west", "w", "left":
		return West, true
	}

	n, err := strconv.Atoi(s)
	if err != nil || n < 0 || n > 3 {
		return 0, false
	}
	return Direction(n), true
}
