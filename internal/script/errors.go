package script

import (
	"errors"
	"fmt"

	"github.com/alecthomas/participle/v2/lexer"
)

var (
	// ErrSyntax matches every *SyntaxError.
	ErrSyntax = errors.New("syntax error")

	// ErrLimitExceeded is returned when a script asks for more repeats,
	// nesting or primitive calls than the configured Limits allow.
	ErrLimitExceeded = errors.New("limit exceeded")
)

// SyntaxError describes a malformed script.
type SyntaxError struct {
	Pos lexer.Position
	Msg string
}

func (e *SyntaxError) Error() string {
	if e.Pos.Line == 0 {
		return e.Msg
	}
	return fmt.Sprintf("line %d, column %d: %s", e.Pos.Line, e.Pos.Column, e.Msg)
}

// Unwrap lets errors.Is(err, ErrSyntax) match.
func (e *SyntaxError) Unwrap() error {
	return ErrSyntax
}

func limitError(pos lexer.Position, format string, args ...any) error {
	return fmt.Errorf("%w: line %d: %s", ErrLimitExceeded, pos.Line, fmt.Sprintf(format, args...))
}
