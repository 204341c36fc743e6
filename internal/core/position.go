// Package core provides the board primitives shared by the simulation engine,
// the script interpreter and the terminal front end. It has no dependencies
// on Bubble Tea so the simulation stays pure and testable.
package core

import "fmt"

// Position is a cell on the board.
// X increases to the right, Y increases downward (screen coordinates).
type Position struct {
	X int `yaml:"x"`
	Y int `yaml:"y"`
}

// P is a convenience constructor for Position.
func P(x, y int) Position {
	return Position{X: x, Y: y}
}

// String returns a string representation of the position.
func (p Position) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}

// Add returns a new Position offset by (dx, dy).
func (p Position) Add(dx, dy int) Position {
	return Position{X: p.X + dx, Y: p.Y + dy}
}

// Step returns the neighbouring cell in the given direction.
func (p Position) Step(d Direction) Position {
	dx, dy := d.Delta()
	return p.Add(dx, dy)
}

// Within reports whether the position lies on a square board of the given size.
func (p Position) Within(size int) bool {
	return NewRect(0, 0, size, size).Contains(p.X, p.Y)
}

// Manhattan returns the Manhattan distance to another position.
func (p Position) Manhattan(other Position) int {
	return Abs(p.X-other.X) + Abs(p.Y-other.Y)
}
