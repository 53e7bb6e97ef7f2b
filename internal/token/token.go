// Package token carries source positions through the AST so that
// diagnostics emitted by the analyzer can point back at the program text.
//
// This package intentionally has no notion of token *type* or a keyword
// table: lexing and parsing are external collaborators (see spec §1), so
// the analyzer only ever needs to read the position a parser already
// recorded on a node, never classify or produce one.
package token

import "fmt"

// Token is a source position plus the lexeme that produced it.
type Token struct {
	Line   int
	Column int
	Lexeme string
}

func (t Token) String() string {
	return fmt.Sprintf("%d:%d", t.Line, t.Column)
}
