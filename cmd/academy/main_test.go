package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vovakirdan/robot-academy/internal/lessons"
	"github.com/vovakirdan/robot-academy/internal/script"
)

func builtinLesson(t *testing.T, id int) lessons.Lesson {
	t.Helper()
	builtin, err := lessons.Builtin(8)
	require.NoError(t, err)
	l, ok := lessons.NewCatalog(builtin).ByID(id)
	require.True(t, ok)
	return l
}

func TestCheckScriptReport(t *testing.T) {
	l := builtinLesson(t, 1)

	var out bytes.Buffer
	err := checkScript(&out, l, "turnRight(); repeat 3 { moveForward(); }", script.DefaultLimits())
	require.NoError(t, err)

	report := out.String()
	assert.Contains(t, report, "Commands (4):")
	assert.Contains(t, report, "Blocks: 3 of 5")
	assert.Contains(t, report, "'repeat' x1")
	assert.Contains(t, report, "Review: no notes")
}

func TestCheckScriptReviewNotes(t *testing.T) {
	l := builtinLesson(t, 3)

	var out bytes.Buffer
	err := checkScript(&out, l, "turnRight();", script.DefaultLimits())
	require.NoError(t, err)
	assert.Contains(t, out.String(), "Try using the 'repeat' block.")
}

func TestCheckScriptSyntaxError(t *testing.T) {
	l := builtinLesson(t, 1)

	err := checkScript(&bytes.Buffer{}, l, "moveForward(;", script.DefaultLimits())
	require.Error(t, err)
	assert.ErrorIs(t, err, script.ErrSyntax)
	assert.Contains(t, err.Error(), "syntax error at line 1")
}

func TestFileSource(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1-first.robot"), []byte("moveForward();"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "02-turn.robot"), []byte("turnLeft();"), 0o644))

	src := fileSource(dir)

	got, err := src(lessons.Lesson{ID: 1})
	require.NoError(t, err)
	assert.Equal(t, "moveForward();", got)

	got, err = src(lessons.Lesson{ID: 2})
	require.NoError(t, err)
	assert.Equal(t, "turnLeft();", got)

	_, err = src(lessons.Lesson{ID: 3})
	assert.Error(t, err)

	single := fileSource(filepath.Join(dir, "1-first.robot"))
	got, err = single(lessons.Lesson{ID: 5})
	require.NoError(t, err)
	assert.Equal(t, "moveForward();", got)
}

func TestPortOf(t *testing.T) {
	assert.Equal(t, "23235", portOf(":23235"))
	assert.Equal(t, "2222", portOf("0.0.0.0:2222"))
	assert.Equal(t, "bogus", portOf("bogus"))
}
