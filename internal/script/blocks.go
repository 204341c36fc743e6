package script

import (
	"sort"

	"github.com/vovakirdan/robot-academy/internal/core"
)

// BlockStats counts the blocks a learner placed to build a program.
// A loop counts as one block regardless of how often it runs.
type BlockStats struct {
	Total int
	Kinds map[string]int
}

// Has reports whether at least one block of the given kind was used.
func (b BlockStats) Has(kind string) bool {
	return b.Kinds[kind] > 0
}

// KindList returns the used block kinds in sorted order.
func (b BlockStats) KindList() []string {
	kinds := make([]string, 0, len(b.Kinds))
	for k := range b.Kinds {
		kinds = append(kinds, k)
	}
	sort.Strings(kinds)
	return kinds
}

// Blocks returns block statistics for the program.
func (p *Program) Blocks() BlockStats {
	stats := BlockStats{Kinds: make(map[string]int)}
	countBlocks(p.Statements, &stats)
	return stats
}

func countBlocks(stmts []*Statement, stats *BlockStats) {
	for _, s := range stmts {
		stats.Total++
		switch {
		case s.Call != nil:
			stats.Kinds[core.Command(s.Call.Name).Block()]++
		case s.Repeat != nil:
			stats.Kinds[core.BlockRepeat]++
			countBlocks(s.Repeat.Body, stats)
		case s.For != nil:
			stats.Kinds[core.BlockRepeat]++
			countBlocks(s.For.Body, stats)
		}
	}
}
