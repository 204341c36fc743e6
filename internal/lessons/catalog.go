package lessons

import (
	"embed"
	"fmt"
	"io/fs"
	"sort"

	"github.com/samber/lo"
)

//go:embed defaults/*.yaml
var builtinFS embed.FS

// Catalog is an ordered set of lessons.
type Catalog struct {
	lessons []Lesson
	index   map[int]int // lesson id -> position
}

// NewCatalog builds a catalog. When two lessons share an id the later one wins.
func NewCatalog(lessons ...[]Lesson) *Catalog {
	byID := make(map[int]Lesson)
	for _, set := range lessons {
		for _, l := range set {
			byID[l.ID] = l
		}
	}

	list := lo.Values(byID)
	sort.Slice(list, func(i, j int) bool {
		return list[i].ID < list[j].ID
	})

	c := &Catalog{lessons: list, index: make(map[int]int, len(list))}
	for i, l := range list {
		c.index[l.ID] = i
	}
	return c
}

// Builtin returns the lessons shipped with the binary.
func Builtin(gridSize int) ([]Lesson, error) {
	sub, err := fs.Sub(builtinFS, "defaults")
	if err != nil {
		return nil, err
	}
	loader := &Loader{FS: sub, Root: "builtin", GridSize: gridSize}
	return loader.LoadAll()
}

// Load builds the catalog from the built-in lessons and, when dir is not
// empty, the lessons found there. Lessons from dir replace built-ins with
// the same id.
func Load(dir string, gridSize int, onSkip func(path string, err error)) (*Catalog, error) {
	builtin, err := Builtin(gridSize)
	if err != nil {
		return nil, fmt.Errorf("loading built-in lessons: %w", err)
	}
	if dir == "" {
		return NewCatalog(builtin), nil
	}

	loader := NewLoader(dir, gridSize)
	loader.OnSkip = onSkip
	extra, err := loader.LoadAll()
	if err != nil {
		return nil, fmt.Errorf("loading lessons: %w", err)
	}
	return NewCatalog(builtin, extra), nil
}

// List returns all lessons in id order.
func (c *Catalog) List() []Lesson {
	return append([]Lesson(nil), c.lessons...)
}

// Len returns the number of lessons.
func (c *Catalog) Len() int {
	return len(c.lessons)
}

// First returns the lesson with the lowest id.
func (c *Catalog) First() (Lesson, bool) {
	if len(c.lessons) == 0 {
		return Lesson{}, false
	}
	return c.lessons[0], true
}

// ByID returns the lesson with the given id.
func (c *Catalog) ByID(id int) (Lesson, bool) {
	i, ok := c.index[id]
	if !ok {
		return Lesson{}, false
	}
	return c.lessons[i], true
}

// Next returns the lesson after id.
func (c *Catalog) Next(id int) (Lesson, bool) {
	i, ok := c.index[id]
	if !ok || i+1 >= len(c.lessons) {
		return Lesson{}, false
	}
	return c.lessons[i+1], true
}

// Prev returns the lesson before id.
func (c *Catalog) Prev(id int) (Lesson, bool) {
	i, ok := c.index[id]
	if !ok || i == 0 {
		return Lesson{}, false
	}
	return c.lessons[i-1], true
}
