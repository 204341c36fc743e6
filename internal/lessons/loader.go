package lessons

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"

	"github.com/vovakirdan/robot-academy/internal/lessons/formats"
)

// Loader handles loading lessons from a directory tree.
type Loader struct {
	FS       fs.FS
	Root     string
	GridSize int // Board size used to validate lessons without their own

	// OnSkip, when set, is told about files that were ignored.
	OnSkip func(path string, err error)
}

// NewLoader creates a loader for a directory on disk.
func NewLoader(root string, gridSize int) *Loader {
	return &Loader{FS: os.DirFS(root), Root: root, GridSize: gridSize}
}

// LoadAll recursively scans and loads all lesson files.
// Invalid files are skipped. Returns lessons sorted by ID.
func (l *Loader) LoadAll() ([]Lesson, error) {
	var lessons []Lesson

	err := fs.WalkDir(l.FS, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			return nil
		}

		ext := strings.ToLower(path.Ext(p))
		if !isSupportedExtension(ext) {
			return nil
		}

		lesson, err := l.LoadFile(p)
		if err != nil {
			if l.OnSkip != nil {
				l.OnSkip(p, err)
			}
			return nil
		}

		lessons = append(lessons, lesson)
		return nil
	})

	if err != nil {
		return nil, fmt.Errorf("walking directory %s: %w", l.Root, err)
	}

	// Sort by ID for determinism
	sort.SliceStable(lessons, func(i, j int) bool {
		return lessons[i].ID < lessons[j].ID
	})

	return lessons, nil
}

// LoadFile loads and validates a single lesson file.
func (l *Loader) LoadFile(p string) (Lesson, error) {
	data, err := fs.ReadFile(l.FS, p)
	if err != nil {
		return Lesson{}, fmt.Errorf("reading file %s: %w", p, err)
	}

	ext := strings.ToLower(path.Ext(p))
	parsed, err := parseByExtension(data, ext)
	if err != nil {
		return Lesson{}, fmt.Errorf("parsing file %s: %w", p, err)
	}

	lesson := Lesson{
		ID:             parsed.ID,
		Title:          parsed.Title,
		Description:    parsed.Description,
		GridSize:       parsed.GridSize,
		Robot:          parsed.Robot,
		Goal:           parsed.Goal,
		Obstacles:      parsed.Obstacles,
		Hints:          parsed.Hints,
		MaxBlocks:      parsed.MaxBlocks,
		RequiredBlocks: parsed.RequiredBlocks,
		Solution:       parsed.Solution,
		Source:         path.Join(l.Root, p),
	}
	if err := lesson.Validate(l.GridSize); err != nil {
		return Lesson{}, fmt.Errorf("validating file %s: %w", p, err)
	}
	return lesson, nil
}

// LoadByID loads a specific lesson by ID.
func (l *Loader) LoadByID(id int) (Lesson, error) {
	lessons, err := l.LoadAll()
	if err != nil {
		return Lesson{}, err
	}

	for _, lesson := range lessons {
		if lesson.ID == id {
			return lesson, nil
		}
	}

	return Lesson{}, fmt.Errorf("lesson not found: %d", id)
}

// isSupportedExtension checks if extension is supported.
func isSupportedExtension(ext string) bool {
	for _, supported := range formats.FormatExtensions() {
		if ext == supported {
			return true
		}
	}
	return false
}

// parseByExtension routes to the correct parser.
func parseByExtension(data []byte, ext string) (formats.Lesson, error) {
	switch ext {
	case ".yaml", ".yml":
		return formats.ParseYAML(data)
	default:
		return formats.Lesson{}, fmt.Errorf("unsupported extension: %s", ext)
	}
}
