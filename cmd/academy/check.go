package main

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/samber/lo"
	"github.com/spf13/cobra"

	"github.com/vovakirdan/robot-academy/internal/lessons"
	"github.com/vovakirdan/robot-academy/internal/script"
)

var checkCmd = &cobra.Command{
	Use:   "check <lesson> <script>",
	Short: "Parse a script and review it against a lesson",
	Long: `Parse a script without moving the robot. Prints the unrolled command
list, the blocks the script uses and the lesson's notes about them.
Use "-" to read the script from stdin.

Examples:
  academy check 3 ./loop.robot
  academy check 5 - < spiral.robot`,
	Args: cobra.ExactArgs(2),
	Run:  runCheck,
}

func runCheck(_ *cobra.Command, args []string) {
	lesson, err := lessonArg(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	src, err := readScript(args[1])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if err := checkScript(os.Stdout, lesson, src, app.cfg.Script.Limits()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

// checkScript writes the check report for src to w.
func checkScript(w io.Writer, lesson lessons.Lesson, src string, lim script.Limits) error {
	prog, err := script.NewCompiler(lim).Compile(src)
	if err != nil {
		if errors.Is(err, script.ErrSyntax) {
			return fmt.Errorf("syntax error at %w", err)
		}
		return err
	}

	cmds, err := prog.Flatten(lim)
	if err != nil {
		return err
	}

	fmt.Fprintf(w, "Lesson %d: %s\n\n", lesson.ID, lesson.Title)

	fmt.Fprintf(w, "Commands (%d):\n", len(cmds))
	for i, c := range cmds {
		fmt.Fprintf(w, "  %3d  %s\n", i+1, c)
	}
	fmt.Fprintln(w)

	stats := prog.Blocks()
	kinds := lo.Map(stats.KindList(), func(k string, _ int) string {
		return fmt.Sprintf("%s x%d", lessons.BlockLabel(k), stats.Kinds[k])
	})
	budget := ""
	if lesson.MaxBlocks > 0 {
		budget = fmt.Sprintf(" of %d", lesson.MaxBlocks)
	}
	fmt.Fprintf(w, "Blocks: %d%s (%s)\n", stats.Total, budget, strings.Join(kinds, ", "))

	notes := lesson.Review(stats)
	if len(notes) == 0 {
		fmt.Fprintln(w, "Review: no notes")
		return nil
	}
	fmt.Fprintln(w, "Review:")
	for _, n := range notes {
		fmt.Fprintf(w, "  - %s\n", n)
	}
	return nil
}
