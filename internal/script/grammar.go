// Package script parses and runs learner movement scripts.
//
// The language is deliberately tiny: the three movement primitives and a
// bounded counted repeat. Two spellings of the repeat are accepted, the
// compact one and the for-loop the block editor generates:
//
//	moveForward();
//	repeat 3 {
//	    turnRight();
//	}
//	for (var count = 0; count < 3; count++) {
//	    moveForward();
//	}
//
// Scripts never see a general purpose evaluator; they run against a Machine
// that exposes exactly the three primitives.
package script

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Program is a parsed script.
type Program struct {
	Pos lexer.Position

	Statements []*Statement `parser:"@@*"`
}

// Statement is one line of a script: a primitive call or a loop.
type Statement struct {
	Pos lexer.Position

	Repeat *Repeat  `parser:"  @@"`
	For    *ForLoop `parser:"| @@"`
	Call   *Call    `parser:"| @@"`
}

// Call invokes a movement primitive.
type Call struct {
	Pos lexer.Position

	Name string `parser:"@('moveForward' | 'turnRight' | 'turnLeft') '(' ')' ';'?"`
}

// Repeat is the compact counted loop: repeat N { ... }.
type Repeat struct {
	Pos lexer.Position

	Times int          `parser:"'repeat' @Int"`
	Body  []*Statement `parser:"'{' @@* '}'"`
}

// ForLoop is the counted loop emitted by the block editor:
// for (var i = 0; i < N; i++) { ... }.
type ForLoop struct {
	Pos lexer.Position

	Var     string       `parser:"'for' '(' ('var' | 'let')? @Ident '='"`
	From    int          `parser:"@Int ';'"`
	CondVar string       `parser:"@Ident '<'"`
	To      int          `parser:"@Int ';'"`
	StepVar string       `parser:"@Ident '++' ')'"`
	Body    []*Statement `parser:"'{' @@* '}'"`
}

// Times returns how many times the loop body runs.
func (f *ForLoop) Times() int {
	return max(0, f.To-f.From)
}

var scriptLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Comment", Pattern: `//[^\n]*`},
	{Name: "Whitespace", Pattern: `\s+`},
	{Name: "Ident", Pattern: `[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Int", Pattern: `\d+`},
	{Name: "Incr", Pattern: `\+\+`},
	{Name: "Punct", Pattern: `[(){};=<]`},
})

var parser = participle.MustBuild[Program](
	participle.Lexer(scriptLexer),
	participle.Elide("Comment", "Whitespace"),
	participle.UseLookahead(2),
)
