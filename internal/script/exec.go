package script

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"

	"github.com/vovakirdan/robot-academy/internal/core"
)

// Machine is the capability a script runs against.
// Each method performs one primitive and reports why it could not.
type Machine interface {
	MoveForward() error
	TurnRight() error
	TurnLeft() error
}

// Limits bounds what a script may ask for. A field <= 0 means no limit.
type Limits struct {
	MaxRepeat int // Iterations of a single loop
	MaxCalls  int // Primitive invocations per execution
	MaxDepth  int // Loop nesting
	MaxSteps  int // Loop iterations plus primitive invocations per execution
}

// DefaultLimits returns the limits used when configuration does not say otherwise.
func DefaultLimits() Limits {
	return Limits{
		MaxRepeat: 100,
		MaxCalls:  1000,
		MaxDepth:  8,
		MaxSteps:  10000,
	}
}

// Parse parses a script. Malformed input yields a *SyntaxError.
func Parse(src string) (*Program, error) {
	prog, err := parser.ParseString("script", src)
	if err != nil {
		var perr participle.Error
		if errors.As(err, &perr) {
			return nil, &SyntaxError{Pos: perr.Position(), Msg: perr.Message()}
		}
		return nil, &SyntaxError{Msg: err.Error()}
	}

	if err := checkLoopVars(prog.Statements); err != nil {
		return nil, err
	}
	return prog, nil
}

// checkLoopVars rejects for-loops whose three clauses name different variables.
func checkLoopVars(stmts []*Statement) error {
	for _, s := range stmts {
		switch {
		case s.For != nil:
			f := s.For
			if f.CondVar != f.Var || f.StepVar != f.Var {
				return &SyntaxError{
					Pos: f.Pos,
					Msg: fmt.Sprintf("loop must count with one variable, got %q, %q and %q", f.Var, f.CondVar, f.StepVar),
				}
			}
			if err := checkLoopVars(f.Body); err != nil {
				return err
			}
		case s.Repeat != nil:
			if err := checkLoopVars(s.Repeat.Body); err != nil {
				return err
			}
		}
	}
	return nil
}

// Validate checks repeat counts and nesting against the limits without running anything.
func (p *Program) Validate(lim Limits) error {
	return validate(p.Statements, lim, 1)
}

func validate(stmts []*Statement, lim Limits, depth int) error {
	for _, s := range stmts {
		var (
			times int
			body  []*Statement
		)
		switch {
		case s.Repeat != nil:
			times, body = s.Repeat.Times, s.Repeat.Body
		case s.For != nil:
			times, body = s.For.Times(), s.For.Body
		default:
			continue
		}

		if lim.MaxDepth > 0 && depth > lim.MaxDepth {
			return limitError(s.Pos, "loops nested deeper than %d", lim.MaxDepth)
		}
		if lim.MaxRepeat > 0 && times > lim.MaxRepeat {
			return limitError(s.Pos, "repeat count %d is above the limit of %d", times, lim.MaxRepeat)
		}
		if err := validate(body, lim, depth+1); err != nil {
			return err
		}
	}
	return nil
}

// Exec runs the program against m, stopping at the first failing primitive.
// The error from m is returned unchanged so callers can inspect it.
func (p *Program) Exec(m Machine, lim Limits) error {
	if err := p.Validate(lim); err != nil {
		return err
	}
	r := &runner{machine: m, limits: lim}
	return r.block(p.Statements)
}

// Flatten returns the fully unrolled list of primitive calls.
func (p *Program) Flatten(lim Limits) ([]core.Command, error) {
	rec := &recorder{}
	if err := p.Exec(rec, lim); err != nil {
		return nil, err
	}
	return rec.cmds, nil
}

type runner struct {
	machine Machine
	limits  Limits
	calls   int
	steps   int
}

func (r *runner) block(stmts []*Statement) error {
	for _, s := range stmts {
		if err := r.statement(s); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) statement(s *Statement) error {
	switch {
	case s.Call != nil:
		return r.call(s.Call)
	case s.Repeat != nil:
		return r.loop(s.Pos, s.Repeat.Times, s.Repeat.Body)
	case s.For != nil:
		return r.loop(s.Pos, s.For.Times(), s.For.Body)
	}
	return nil
}

func (r *runner) loop(pos lexer.Position, times int, body []*Statement) error {
	for i := 0; i < times; i++ {
		if err := r.step(pos); err != nil {
			return err
		}
		if err := r.block(body); err != nil {
			return err
		}
	}
	return nil
}

func (r *runner) call(c *Call) error {
	if r.limits.MaxCalls > 0 && r.calls >= r.limits.MaxCalls {
		return limitError(c.Pos, "script makes more than %d moves", r.limits.MaxCalls)
	}
	r.calls++
	if err := r.step(c.Pos); err != nil {
		return err
	}

	switch core.Command(c.Name) {
	case core.CmdMoveForward:
		return r.machine.MoveForward()
	case core.CmdTurnRight:
		return r.machine.TurnRight()
	case core.CmdTurnLeft:
		return r.machine.TurnLeft()
	}
	return &SyntaxError{Pos: c.Pos, Msg: fmt.Sprintf("unknown command %q", c.Name)}
}

// step charges one unit of work. Empty loop bodies still cost a step per
// iteration, so nested loops cannot spin without bound.
func (r *runner) step(pos lexer.Position) error {
	if r.limits.MaxSteps > 0 && r.steps >= r.limits.MaxSteps {
		return limitError(pos, "script runs more than %d steps", r.limits.MaxSteps)
	}
	r.steps++
	return nil
}

// recorder is a Machine that only remembers what it was asked to do.
type recorder struct {
	cmds []core.Command
}

func (r *recorder) MoveForward() error {
	r.cmds = append(r.cmds, core.CmdMoveForward)
	return nil
}

func (r *recorder) TurnRight() error {
	r.cmds = append(r.cmds, core.CmdTurnRight)
	return nil
}

func (r *recorder) TurnLeft() error {
	r.cmds = append(r.cmds, core.CmdTurnLeft)
	return nil
}
