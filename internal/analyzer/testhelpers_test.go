package analyzer_test

import (
	"github.com/fmarani/coolc/internal/ast"
	"github.com/fmarani/coolc/internal/token"
)

// These helpers build *ast.ClassDecl / *ast.Expression fixtures by hand:
// this repository has no lexer or parser, so tests exercise the analyzer
// directly against hand-assembled trees, the same way the teacher's own
// analyzer tests build fixtures straight from its internal/ast package
// rather than round-tripping through source text.

func tok() token.Token { return token.Token{Line: 1, Column: 1} }

func class(name, parent string, features ...ast.Feature) *ast.ClassDecl {
	return &ast.ClassDecl{Tok: tok(), Name: name, Parent: parent, Features: features}
}

func attr(name, declaredType string, init ast.Expression) *ast.AttrDecl {
	return &ast.AttrDecl{Tok: tok(), Name: name, DeclaredType: declaredType, Init: init}
}

func method(name string, formals []*ast.Formal, returnType string, body ast.Expression) *ast.MethodDecl {
	return &ast.MethodDecl{Tok: tok(), Name: name, Formals: formals, ReturnType: returnType, Body: body}
}

func formal(name, declaredType string) *ast.Formal {
	return &ast.Formal{Tok: tok(), Name: name, DeclaredType: declaredType}
}

func intLit(v int64) *ast.IntLit      { return ast.NewIntLit(tok(), v) }
func strLit(v string) *ast.StrLit    { return ast.NewStrLit(tok(), v) }
func boolLit(v bool) *ast.BoolLit    { return ast.NewBoolLit(tok(), v) }
func ref(name string) *ast.ObjectRef { return ast.NewObjectRef(tok(), name) }

// newExpr builds a `new Type` node. New's embedded exprBase is
// unexported, but its promoted Tok field is still settable from outside
// the package, so a zero-value literal plus a field assignment is all
// that's needed.
func newExpr(typeName string) *ast.New {
	n := &ast.New{Type: typeName}
	n.Tok = tok()
	return n
}
