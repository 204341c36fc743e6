package lessons

import (
	"math/rand"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/robot-academy/internal/core"
	"github.com/vovakirdan/robot-academy/internal/engine"
	"github.com/vovakirdan/robot-academy/internal/script"
)

const testGrid = 8

func TestBuiltinLessons(t *testing.T) {
	lessons, err := Builtin(testGrid)
	require.NoError(t, err)
	require.Len(t, lessons, 5)

	titles := []string{"First Steps", "Turn and Move", "Use a Loop", "Maze Navigator", "Loop Master"}
	for i, l := range lessons {
		assert.Equal(t, i+1, l.ID)
		assert.Equal(t, titles[i], l.Title)
		assert.Equal(t, core.NewRobot(1, 1, core.North), l.Robot)
		assert.Len(t, l.Hints, 4)
		assert.NotEmpty(t, l.Solution)
	}

	maze := lessons[3]
	assert.Equal(t, core.P(5, 5), maze.Goal)
	assert.Len(t, maze.Obstacles, 9)
	assert.Equal(t, 15, maze.MaxBlocks)
}

func TestBuiltinSolutionsSolveAndPassReview(t *testing.T) {
	lessons, err := Builtin(testGrid)
	require.NoError(t, err)

	for _, l := range lessons {
		t.Run(l.Title, func(t *testing.T) {
			e := engine.New(engine.DefaultOptions(), nil)
			require.NoError(t, e.LoadLevel(l.Level(testGrid)))

			res := e.Run(l.Solution)
			require.NoError(t, res.Err)
			assert.Equal(t, engine.StatusSolved, res.Status)

			prog, err := script.Parse(l.Solution)
			require.NoError(t, err)
			assert.Empty(t, l.Review(prog.Blocks()))
		})
	}
}

func TestLoaderSkipsInvalidFiles(t *testing.T) {
	loader := NewLoader(filepath.Join("testdata", "lessons"), testGrid)

	var skipped []string
	loader.OnSkip = func(path string, err error) {
		skipped = append(skipped, path)
	}

	lessons, err := loader.LoadAll()
	require.NoError(t, err)

	ids := make([]int, len(lessons))
	for i, l := range lessons {
		ids[i] = l.ID
	}
	assert.Equal(t, []int{1, 6}, ids)
	assert.ElementsMatch(t, []string{"broken-robot-on-obstacle.yaml", "broken-syntax.yaml"}, skipped)

	spiral := lessons[1]
	assert.Equal(t, core.East, spiral.Robot.Dir)
	assert.Equal(t, filepath.Join("testdata", "lessons", "extra", "06-spiral.yml"), filepath.FromSlash(spiral.Source))
}

func TestLoaderLoadByID(t *testing.T) {
	loader := NewLoader(filepath.Join("testdata", "lessons"), testGrid)

	l, err := loader.LoadByID(1)
	require.NoError(t, err)
	assert.Equal(t, 5, l.GridSize)
	assert.Equal(t, 5, l.Level(testGrid).GridSize)

	_, err = loader.LoadByID(42)
	assert.Error(t, err)
}

func TestLoadCatalogWithOverrides(t *testing.T) {
	c, err := Load(filepath.Join("testdata", "lessons"), testGrid, nil)
	require.NoError(t, err)
	assert.Equal(t, 6, c.Len())

	first, ok := c.ByID(1)
	require.True(t, ok)
	assert.Equal(t, "First Steps (Classroom)", first.Title)

	second, ok := c.ByID(2)
	require.True(t, ok)
	assert.Equal(t, "Turn and Move", second.Title)
}

func TestCatalogNavigation(t *testing.T) {
	c := NewCatalog([]Lesson{{ID: 3, Title: "c"}, {ID: 1, Title: "a"}, {ID: 10, Title: "z"}})

	first, ok := c.First()
	require.True(t, ok)
	assert.Equal(t, 1, first.ID)

	next, ok := c.Next(1)
	require.True(t, ok)
	assert.Equal(t, 3, next.ID)

	next, ok = c.Next(3)
	require.True(t, ok)
	assert.Equal(t, 10, next.ID)

	_, ok = c.Next(10)
	assert.False(t, ok)

	prev, ok := c.Prev(10)
	require.True(t, ok)
	assert.Equal(t, 3, prev.ID)

	_, ok = c.Prev(1)
	assert.False(t, ok)

	_, ok = c.Next(2)
	assert.False(t, ok)

	_, ok = NewCatalog().First()
	assert.False(t, ok)
}

func TestValidate(t *testing.T) {
	valid := Lesson{ID: 1, Title: "ok", Robot: core.NewRobot(0, 0, core.East), Goal: core.P(2, 0)}

	tests := []struct {
		name   string
		mutate func(*Lesson)
		code   string
	}{
		{"valid", func(*Lesson) {}, ""},
		{"goal on obstacle is allowed", func(l *Lesson) { l.Obstacles = []core.Position{core.P(2, 0)} }, ""},
		{"bad id", func(l *Lesson) { l.ID = 0 }, "ID"},
		{"no title", func(l *Lesson) { l.Title = " " }, "TITLE"},
		{"robot on obstacle", func(l *Lesson) { l.Obstacles = []core.Position{core.P(0, 0)} }, "ROBOT_ON_OBSTACLE"},
		{"goal outside own grid", func(l *Lesson) { l.GridSize = 2 }, "GOAL_BOUNDS"},
		{"unknown block", func(l *Lesson) { l.RequiredBlocks = []string{"jump"} }, "BLOCKS"},
		{"negative max blocks", func(l *Lesson) { l.MaxBlocks = -1 }, "BLOCKS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			l := valid
			tt.mutate(&l)
			err := l.Validate(testGrid)
			if tt.code == "" {
				assert.NoError(t, err)
				return
			}
			var ve ValidationError
			require.ErrorAs(t, err, &ve)
			assert.Equal(t, tt.code, ve.Code)
		})
	}
}

func TestHint(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	l := Lesson{Hints: []string{"one", "two"}}
	for i := 0; i < 10; i++ {
		assert.Contains(t, l.Hints, l.Hint(rng))
	}

	assert.Equal(t, NoHints, Lesson{}.Hint(rng))
}

func TestReview(t *testing.T) {
	l := Lesson{
		MaxBlocks:      3,
		RequiredBlocks: []string{core.BlockMoveForward, core.BlockRepeat},
	}

	prog, err := script.Parse("turnRight(); moveForward(); moveForward(); moveForward();")
	require.NoError(t, err)

	notes := l.Review(prog.Blocks())
	assert.Equal(t, []string{
		"You used 4 blocks. Can you solve it with 3 or fewer?",
		"Try using the 'repeat' block.",
	}, notes)

	prog, err = script.Parse("turnRight(); repeat 3 { moveForward(); }")
	require.NoError(t, err)
	assert.Empty(t, l.Review(prog.Blocks()))
}
