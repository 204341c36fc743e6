package tui

import (
	"github.com/vovakirdan/robot-academy/internal/core"
	"github.com/vovakirdan/robot-academy/internal/engine"
)

// Each board cell is cellW runes wide so the grid looks square in a terminal.
const cellW = 3

// Board glyphs.
const (
	glyphEmpty    = '·'
	glyphObstacle = '█'
	glyphGoal     = '★'
)

// BoardSize returns the screen size needed to draw a board of gridSize cells,
// border included.
func BoardSize(gridSize int) (w, h int) {
	return gridSize*cellW + 2, gridSize + 2
}

// DrawBoard draws a snapshot onto the screen with its top-left corner at (ox, oy).
func DrawBoard(s *core.Screen, snap engine.Snapshot, ox, oy int) {
	w, h := BoardSize(snap.GridSize)

	frameColor := core.ColorGray
	switch {
	case snap.IsRunning:
		frameColor = core.ColorBrightBlue
	case snap.StepMode:
		frameColor = core.ColorCyan
	}
	s.DrawBox(core.NewRect(ox, oy, w, h), frameColor)

	for y := range snap.GridSize {
		for x := range snap.GridSize {
			drawCell(s, ox+1+x*cellW, oy+1+y, glyphEmpty, core.ColorGray)
		}
	}

	for _, o := range snap.Obstacles {
		drawCell(s, ox+1+o.X*cellW, oy+1+o.Y, glyphObstacle, core.ColorOrange)
	}

	g := snap.Goal
	goalColor := core.ColorBrightYellow
	if snap.AtGoal() {
		goalColor = core.ColorGreen
	}
	drawCell(s, ox+1+g.X*cellW, oy+1+g.Y, glyphGoal, goalColor)

	r := snap.Robot
	robotColor := core.ColorBrightBlue
	if snap.AtGoal() {
		robotColor = core.ColorGreen
	}
	drawCell(s, ox+1+r.Pos.X*cellW, oy+1+r.Pos.Y, r.Dir.Arrow(), robotColor)
}

// drawCell centers a glyph in a board cell. Obstacles fill the whole cell.
func drawCell(s *core.Screen, x, y int, glyph rune, c core.Color) {
	if glyph == glyphObstacle {
		for i := range cellW {
			s.SetColored(x+i, y, glyph, c)
		}
		return
	}
	s.SetColored(x, y, ' ', core.ColorDefault)
	s.SetColored(x+1, y, glyph, c)
	s.SetColored(x+2, y, ' ', core.ColorDefault)
}
