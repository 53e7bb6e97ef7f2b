// Package ast defines the tagged-variant AST the analyzer consumes: class
// declarations, features and expressions. Every node implements Node and
// carries the token.Token the parser recorded for it, the same GetToken()
// convention the teacher's internal/ast package uses throughout
// ast_core.go.
//
// Expression nodes additionally carry an InferredType field, written
// exactly once (by the scope/inference phase) and read thereafter
// (conformance phase, code generator). Per spec §9 design notes, this
// package favors one concrete struct per variant plus exhaustive type
// switches in the analyzer over a Visitor/Accept indirection: the source
// language's expression grammar is closed and small, and a type switch is
// the idiomatic Go way to get a compile-time-checkable "did I handle every
// case" shape for it.
package ast

import "github.com/fmarani/coolc/internal/token"

// Node is the base interface implemented by every AST node.
type Node interface {
	GetToken() token.Token
}

// SelfTypeName is the pseudo-type standing for "the dynamic type of the
// enclosing class". It is resolved to a concrete class name at every use
// site that requires one (spec Glossary).
const SelfTypeName = "SELF_TYPE"

// SelfVarName is the name self-references use in the source AST.
const SelfVarName = "self"

// Formal is a single (name, declared type) method parameter.
type Formal struct {
	Tok          token.Token
	Name         string
	DeclaredType string
}

func (f *Formal) GetToken() token.Token { return f.Tok }

// Feature is either an AttrDecl or a MethodDecl.
type Feature interface {
	Node
	FeatureName() string
	featureNode()
}

// AttrDecl is a class attribute: `name : declared_type [<- init]`.
type AttrDecl struct {
	Tok          token.Token
	Name         string
	DeclaredType string
	Init         Expression // optional
}

func (a *AttrDecl) GetToken() token.Token { return a.Tok }
func (a *AttrDecl) FeatureName() string   { return a.Name }
func (a *AttrDecl) featureNode()          {}

// MethodDecl is a class method: `name(formals) : return_type [{ body }]`.
// Body is nil for built-in methods (spec §4.1: "trust the declared
// signature").
type MethodDecl struct {
	Tok        token.Token
	Name       string
	Formals    []*Formal
	ReturnType string
	Body       Expression // optional
}

func (m *MethodDecl) GetToken() token.Token { return m.Tok }
func (m *MethodDecl) FeatureName() string   { return m.Name }
func (m *MethodDecl) featureNode()          {}

// ClassDecl is one class declaration. Parent is empty only for Object.
type ClassDecl struct {
	Tok      token.Token
	Name     string
	Parent   string
	Features []Feature
}

func (c *ClassDecl) GetToken() token.Token { return c.Tok }

// Attrs/Methods are small convenience views used by the analyzer
// and by tests; they do not mutate Features.
func (c *ClassDecl) Attrs() []*AttrDecl {
	var out []*AttrDecl
	for _, f := range c.Features {
		if a, ok := f.(*AttrDecl); ok {
			out = append(out, a)
		}
	}
	return out
}

func (c *ClassDecl) Methods() []*MethodDecl {
	var out []*MethodDecl
	for _, f := range c.Features {
		if m, ok := f.(*MethodDecl); ok {
			out = append(out, m)
		}
	}
	return out
}

// FindMethod returns the method named name directly defined on c (not
// inherited — callers walking the feature list after P4 will find
// inherited methods copied in directly).
func (c *ClassDecl) FindMethod(name string) (*MethodDecl, bool) {
	for _, f := range c.Features {
		if m, ok := f.(*MethodDecl); ok && m.Name == name {
			return m, true
		}
	}
	return nil, false
}

// FindAttr returns the attribute named name directly on c.
func (c *ClassDecl) FindAttr(name string) (*AttrDecl, bool) {
	for _, f := range c.Features {
		if a, ok := f.(*AttrDecl); ok && a.Name == name {
			return a, true
		}
	}
	return nil, false
}

// Expression is implemented by every expression-node variant enumerated
// in spec §3. InferredType is written once, by the scope/inference phase.
type Expression interface {
	Node
	InferredTypeSlot() *string
	expressionNode()
}

// exprBase factors the InferredType bookkeeping every variant shares.
type exprBase struct {
	Tok          token.Token
	InferredType string
}

func (e *exprBase) GetToken() token.Token     { return e.Tok }
func (e *exprBase) InferredTypeSlot() *string { return &e.InferredType }
func (e *exprBase) expressionNode()           {}

// ObjectRef is a bare identifier reference, including the literal "self".
type ObjectRef struct {
	exprBase
	Name string
}

// IntLit, BoolLit, StrLit are primitive literals.
type IntLit struct {
	exprBase
	Value int64
}

type BoolLit struct {
	exprBase
	Value bool
}

type StrLit struct {
	exprBase
	Value string
}

// Block is a sequence of expressions; its value is the last one's.
type Block struct {
	exprBase
	Exprs []Expression
}

// Assign is `target <- body`. Target is always an *ObjectRef so it can be
// traversed uniformly (spec §3).
type Assign struct {
	exprBase
	Target *ObjectRef
	Body   Expression
}

// Dispatch is a (possibly self-) virtual method call: recv.Method(args).
// Recv is nil to mean an implicit self receiver written as bare
// `m(args)`; callers may also encode self-dispatch as an *ObjectRef whose
// Name is "self" (spec §6: "Implementers must handle both encodings of
// self").
type Dispatch struct {
	exprBase
	Recv   Expression // nil for implicit self; otherwise any receiver expression
	Method string
	Args   []Expression
}

// StaticDispatch is recv@Type.Method(args).
type StaticDispatch struct {
	exprBase
	Recv   Expression
	Type   string
	Method string
	Args   []Expression
}

// Binary arithmetic/comparison nodes.
type Plus struct {
	exprBase
	Left, Right Expression
}
type Sub struct {
	exprBase
	Left, Right Expression
}
type Mult struct {
	exprBase
	Left, Right Expression
}
type Div struct {
	exprBase
	Left, Right Expression
}
type Lt struct {
	exprBase
	Left, Right Expression
}
type Le struct {
	exprBase
	Left, Right Expression
}
type Eq struct {
	exprBase
	Left, Right Expression
}

// If is `if Pred then Then else Else fi`.
type If struct {
	exprBase
	Pred, Then, Else Expression
}

// While is `while Pred loop Body pool`.
type While struct {
	exprBase
	Pred, Body Expression
}

// Let is a single binding `let Name : DeclaredType [<- Init] in Body`.
// Multi-binding `let` is modeled by the parser as nested Let nodes.
type Let struct {
	exprBase
	Name         string
	DeclaredType string
	Init         Expression // optional
	Body         Expression
}

// CaseBranch is one `Name : DeclaredType => Expr` arm.
type CaseBranch struct {
	Tok          token.Token
	Name         string
	DeclaredType string
	Expr         Expression
}

// Case is `case Subject of branches esac`.
type Case struct {
	exprBase
	Subject  Expression
	Branches []*CaseBranch
}

// New is `new Type`.
type New struct {
	exprBase
	Type string
}

// IsVoid, Neg, Not are unary operators.
type IsVoid struct {
	exprBase
	Expr Expression
}
type Neg struct {
	exprBase
	Expr Expression
}
type Not struct {
	exprBase
	Expr Expression
}

// BinaryExpr is implemented by every two-operand node (Plus, Sub, Mult,
// Div, Lt, Le, Eq), letting the analyzer handle all seven with one type
// switch case instead of seven near-identical ones.
type BinaryExpr interface {
	Expression
	Operands() (Expression, Expression)
}

func (n *Plus) Operands() (Expression, Expression) { return n.Left, n.Right }
func (n *Sub) Operands() (Expression, Expression)  { return n.Left, n.Right }
func (n *Mult) Operands() (Expression, Expression) { return n.Left, n.Right }
func (n *Div) Operands() (Expression, Expression)  { return n.Left, n.Right }
func (n *Lt) Operands() (Expression, Expression)   { return n.Left, n.Right }
func (n *Le) Operands() (Expression, Expression)   { return n.Left, n.Right }
func (n *Eq) Operands() (Expression, Expression)   { return n.Left, n.Right }

// NewObjectRef/NewIntLit/... small constructors keep test fixtures
// terse.

func NewObjectRef(tok token.Token, name string) *ObjectRef {
	return &ObjectRef{exprBase: exprBase{Tok: tok}, Name: name}
}

func NewIntLit(tok token.Token, v int64) *IntLit {
	return &IntLit{exprBase: exprBase{Tok: tok}, Value: v}
}

func NewBoolLit(tok token.Token, v bool) *BoolLit {
	return &BoolLit{exprBase: exprBase{Tok: tok}, Value: v}
}

func NewStrLit(tok token.Token, v string) *StrLit {
	return &StrLit{exprBase: exprBase{Tok: tok}, Value: v}
}
