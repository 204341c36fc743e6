package core

import "testing"

func TestTurnsAreInverse(t *testing.T) {
	for _, d := range AllDirections() {
		if got := d.Right().Left(); got != d {
			t.Errorf("%v: Right then Left = %v", d, got)
		}
		if got := d.Left().Right(); got != d {
			t.Errorf("%v: Left then Right = %v", d, got)
		}
	}
}

func TestFourTurnsComeBack(t *testing.T) {
	for _, d := range AllDirections() {
		r, l := d, d
		for i := 0; i < 4; i++ {
			r = r.Right()
			l = l.Left()
		}
		if r != d || l != d {
			t.Errorf("%v: four turns gave right=%v left=%v", d, r, l)
		}
	}
}

func TestTurnRightIsClockwise(t *testing.T) {
	tests := []struct {
		from, right, left Direction
	}{
		{North, East, West},
		{East, South, North},
		{South, West, East},
		{West, North, South},
	}

	for _, tc := range tests {
		if got := tc.from.Right(); got != tc.right {
			t.Errorf("%v.Right() = %v, expected %v", tc.from, got, tc.right)
		}
		if got := tc.from.Left(); got != tc.left {
			t.Errorf("%v.Left() = %v, expected %v", tc.from, got, tc.left)
		}
	}
}

func TestPositionStep(t *testing.T) {
	origin := P(3, 3)
	tests := []struct {
		dir      Direction
		expected Position
	}{
		{North, P(3, 2)},
		{East, P(4, 3)},
		{South, P(3, 4)},
		{West, P(2, 3)},
	}

	for _, tc := range tests {
		t.Run(tc.dir.String(), func(t *testing.T) {
			if got := origin.Step(tc.dir); got != tc.expected {
				t.Errorf("Step(%v) = %v, expected %v", tc.dir, got, tc.expected)
			}
		})
	}
}

func TestPositionWithin(t *testing.T) {
	tests := []struct {
		pos      Position
		expected bool
	}{
		{P(0, 0), true},
		{P(7, 7), true},
		{P(8, 0), false},
		{P(0, 8), false},
		{P(-1, 3), false},
		{P(3, -1), false},
	}

	for _, tc := range tests {
		if got := tc.pos.Within(8); got != tc.expected {
			t.Errorf("%v.Within(8) = %v, expected %v", tc.pos, got, tc.expected)
		}
	}
}

func TestParseDirection(t *testing.T) {
	tests := []struct {
		in   string
		want Direction
		ok   bool
	}{
		{"north", North, true},
		{"E", East, true},
		{" South ", South, true},
		{"3", West, true},
		{"0", North, true},
		{"4", 0, false},
		{"sideways", 0, false},
	}

	for _, tc := range tests {
		got, ok := ParseDirection(tc.in)
		if ok != tc.ok || (ok && got != tc.want) {
			t.Errorf("ParseDirection(%q) = %v, %v; expected %v, %v", tc.in, got, ok, tc.want, tc.ok)
		}
	}
}

func TestCommandBlocks(t *testing.T) {
	if CmdMoveForward.Block() != BlockMoveForward {
		t.Errorf("moveForward block = %q", CmdMoveForward.Block())
	}
	if Command("jump").Valid() {
		t.Error("unknown command should not be valid")
	}
	if Command("jump").Block() != "" {
		t.Error("unknown command should have no block")
	}
}
