package analyzer_test

import (
	"testing"

	"github.com/fmarani/coolc/internal/analyzer"
	"github.com/fmarani/coolc/internal/ast"
	"github.com/fmarani/coolc/internal/symbols"
)

func buildExpanded(t *testing.T, a *analyzer.Analyzer, user []*ast.ClassDecl) *symbols.ClassEnvironment {
	t.Helper()
	env := buildEnv(t, a, user)
	if err := a.ExpandInheritance(env); err != nil {
		t.Fatalf("ExpandInheritance failed: %v", err)
	}
	return env
}

func block(exprs ...ast.Expression) *ast.Block {
	b := &ast.Block{Exprs: exprs}
	b.Tok = tok()
	return b
}

func assign(target *ast.ObjectRef, body ast.Expression) *ast.Assign {
	a := &ast.Assign{Target: target, Body: body}
	a.Tok = tok()
	return a
}

func ifExpr(pred, then, els ast.Expression) *ast.If {
	n := &ast.If{Pred: pred, Then: then, Else: els}
	n.Tok = tok()
	return n
}

func whileExpr(pred, body ast.Expression) *ast.While {
	n := &ast.While{Pred: pred, Body: body}
	n.Tok = tok()
	return n
}

func letExpr(name, declaredType string, init, body ast.Expression) *ast.Let {
	n := &ast.Let{Name: name, DeclaredType: declaredType, Init: init, Body: body}
	n.Tok = tok()
	return n
}

func negExpr(e ast.Expression) *ast.Neg {
	n := &ast.Neg{Expr: e}
	n.Tok = tok()
	return n
}

func notExpr(e ast.Expression) *ast.Not {
	n := &ast.Not{Expr: e}
	n.Tok = tok()
	return n
}

func plus(l, r ast.Expression) *ast.Plus {
	n := &ast.Plus{Left: l, Right: r}
	n.Tok = tok()
	return n
}

func lt(l, r ast.Expression) *ast.Lt {
	n := &ast.Lt{Left: l, Right: r}
	n.Tok = tok()
	return n
}

func dispatch(recv ast.Expression, methodName string, args ...ast.Expression) *ast.Dispatch {
	n := &ast.Dispatch{Recv: recv, Method: methodName, Args: args}
	n.Tok = tok()
	return n
}

func caseExpr(subject ast.Expression, branches ...*ast.CaseBranch) *ast.Case {
	n := &ast.Case{Subject: subject, Branches: branches}
	n.Tok = tok()
	return n
}

func branch(name, declaredType string, expr ast.Expression) *ast.CaseBranch {
	return &ast.CaseBranch{Tok: tok(), Name: name, DeclaredType: declaredType, Expr: expr}
}

func TestCheckScopesAndInfer_DuplicateAttribute(t *testing.T) {
	a := analyzer.New()
	env := buildExpanded(t, a, []*ast.ClassDecl{
		class("A", "Object", attr("x", "Int", nil), attr("x", "Int", nil)),
	})
	err := a.CheckScopesAndInfer(env)
	if err == nil || err.Code != "S006" {
		t.Fatalf("got %v, want DuplicateAttribute (S006)", err)
	}
}

func TestCheckScopesAndInfer_DuplicateMethod(t *testing.T) {
	a := analyzer.New()
	env := buildExpanded(t, a, []*ast.ClassDecl{
		class("A", "Object",
			method("f", nil, "Int", intLit(1)),
			method("f", nil, "Int", intLit(2)),
		),
	})
	err := a.CheckScopesAndInfer(env)
	if err == nil || err.Code != "S007" {
		t.Fatalf("got %v, want DuplicateMethod (S007)", err)
	}
}

func TestCheckScopesAndInfer_DuplicateFormal(t *testing.T) {
	a := analyzer.New()
	env := buildExpanded(t, a, []*ast.ClassDecl{
		class("A", "Object",
			method("f", []*ast.Formal{formal("x", "Int"), formal("x", "Int")}, "Int", intLit(1)),
		),
	})
	err := a.CheckScopesAndInfer(env)
	if err == nil || err.Code != "S008" {
		t.Fatalf("got %v, want DuplicateFormal (S008)", err)
	}
}

func TestCheckScopesAndInfer_VariableNotInScope(t *testing.T) {
	a := analyzer.New()
	env := buildExpanded(t, a, []*ast.ClassDecl{
		class("A", "Object", method("f", nil, "Int", ref("nope"))),
	})
	err := a.CheckScopesAndInfer(env)
	if err == nil || err.Code != "S009" {
		t.Fatalf("got %v, want VariableNotInScope (S009)", err)
	}
}

func TestCheckScopesAndInfer_MethodNotFound(t *testing.T) {
	a := analyzer.New()
	env := buildExpanded(t, a, []*ast.ClassDecl{
		class("A", "Object", method("f", nil, "Object", dispatch(nil, "nope"))),
	})
	err := a.CheckScopesAndInfer(env)
	if err == nil || err.Code != "S010" {
		t.Fatalf("got %v, want MethodNotFound (S010)", err)
	}
}

// Literal types.
func TestInferExpr_LiteralTypes(t *testing.T) {
	a := analyzer.New()
	i, s, bo := intLit(1), strLit("hi"), boolLit(true)
	env := buildExpanded(t, a, []*ast.ClassDecl{
		class("A", "Object", method("f", nil, "Object", block(i, s, bo))),
	})
	if err := a.CheckScopesAndInfer(env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *i.InferredTypeSlot() != "Int" {
		t.Errorf("IntLit inferred %s, want Int", *i.InferredTypeSlot())
	}
	if *s.InferredTypeSlot() != "String" {
		t.Errorf("StrLit inferred %s, want String", *s.InferredTypeSlot())
	}
	if *bo.InferredTypeSlot() != "Bool" {
		t.Errorf("BoolLit inferred %s, want Bool", *bo.InferredTypeSlot())
	}
}

// Open question: Neg is Int -> Int.
func TestInferExpr_NegIsIntToInt(t *testing.T) {
	a := analyzer.New()
	n := negExpr(intLit(1))
	env := buildExpanded(t, a, []*ast.ClassDecl{
		class("A", "Object", method("f", nil, "Int", n)),
	})
	if err := a.CheckScopesAndInfer(env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *n.InferredTypeSlot() != "Int" {
		t.Errorf("Neg inferred %s, want Int", *n.InferredTypeSlot())
	}
}

// Open question: While is typed Object.
func TestInferExpr_WhileIsObject(t *testing.T) {
	a := analyzer.New()
	w := whileExpr(boolLit(true), intLit(1))
	env := buildExpanded(t, a, []*ast.ClassDecl{
		class("A", "Object", method("f", nil, "Object", w)),
	})
	if err := a.CheckScopesAndInfer(env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *w.InferredTypeSlot() != "Object" {
		t.Errorf("While inferred %s, want Object", *w.InferredTypeSlot())
	}
}

// Open question: Assign's type is its right-hand side's type.
func TestInferExpr_AssignIsRHSType(t *testing.T) {
	a := analyzer.New()
	asn := assign(ref("x"), strLit("hi"))
	env := buildExpanded(t, a, []*ast.ClassDecl{
		class("A", "Object", attr("x", "String", nil), method("f", nil, "String", asn)),
	})
	if err := a.CheckScopesAndInfer(env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *asn.InferredTypeSlot() != "String" {
		t.Errorf("Assign inferred %s, want String", *asn.InferredTypeSlot())
	}
}

// Scenario 5 from spec §8: If's type is the LCA of its branches, and an
// attribute of the LCA's own type may be initialized with it.
func TestInferExpr_IfIsLCAOfBranches(t *testing.T) {
	a := analyzer.New()
	ifNode := ifExpr(boolLit(true), newExpr("SubAA"), newExpr("SubAB"))
	env := buildExpanded(t, a, []*ast.ClassDecl{
		class("TypeA", "Object"),
		class("SubAA", "TypeA"),
		class("SubAB", "TypeA"),
		class("Main", "Object", attr("x", "TypeA", ifNode)),
	})
	if err := a.CheckScopesAndInfer(env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *ifNode.InferredTypeSlot() != "TypeA" {
		t.Errorf("If inferred %s, want TypeA", *ifNode.InferredTypeSlot())
	}
	if err := a.CheckConformance(env); err != nil {
		t.Fatalf("expected conformant attribute init, got error: %v", err)
	}
}

func TestInferExpr_CaseIsLCAOfBranches(t *testing.T) {
	a := analyzer.New()
	c := caseExpr(newExpr("SubAA"),
		branch("v1", "SubAA", newExpr("SubAA")),
		branch("v2", "SubAB", newExpr("SubAB")),
	)
	env := buildExpanded(t, a, []*ast.ClassDecl{
		class("TypeA", "Object"),
		class("SubAA", "TypeA"),
		class("SubAB", "TypeA"),
		class("Main", "Object", method("f", nil, "TypeA", c)),
	})
	if err := a.CheckScopesAndInfer(env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *c.InferredTypeSlot() != "TypeA" {
		t.Errorf("Case inferred %s, want TypeA", *c.InferredTypeSlot())
	}
}

func TestInferExpr_LetBindsNameInBody(t *testing.T) {
	a := analyzer.New()
	l := letExpr("v", "Int", intLit(5), plus(ref("v"), intLit(1)))
	env := buildExpanded(t, a, []*ast.ClassDecl{
		class("A", "Object", method("f", nil, "Int", l)),
	})
	if err := a.CheckScopesAndInfer(env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *l.InferredTypeSlot() != "Int" {
		t.Errorf("Let inferred %s, want Int", *l.InferredTypeSlot())
	}
}

func TestInferExpr_SelfDispatchBothEncodings(t *testing.T) {
	a := analyzer.New()
	implicit := dispatch(nil, "helper")
	explicit := dispatch(ref("self"), "helper")
	env := buildExpanded(t, a, []*ast.ClassDecl{
		class("A", "Object",
			method("helper", nil, "Int", intLit(1)),
			method("f", nil, "Int", implicit),
			method("g", nil, "Int", explicit),
		),
	})
	if err := a.CheckScopesAndInfer(env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *implicit.InferredTypeSlot() != "Int" {
		t.Errorf("implicit self-dispatch inferred %s, want Int", *implicit.InferredTypeSlot())
	}
	if *explicit.InferredTypeSlot() != "Int" {
		t.Errorf("explicit self-dispatch inferred %s, want Int", *explicit.InferredTypeSlot())
	}
}

func TestInferExpr_DispatchSelfTypeReturnResolvesToReceiver(t *testing.T) {
	a := analyzer.New()
	d := dispatch(newExpr("B"), "copy")
	env := buildExpanded(t, a, []*ast.ClassDecl{
		class("B", "Object"),
		class("A", "Object", method("f", nil, "Object", d)),
	})
	if err := a.CheckScopesAndInfer(env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *d.InferredTypeSlot() != "B" {
		t.Errorf("copy() on a B receiver inferred %s, want B (SELF_TYPE resolved)", *d.InferredTypeSlot())
	}
}

func TestInferExpr_NotYieldsBool(t *testing.T) {
	a := analyzer.New()
	n := notExpr(boolLit(false))
	env := buildExpanded(t, a, []*ast.ClassDecl{
		class("A", "Object", method("f", nil, "Bool", n)),
	})
	if err := a.CheckScopesAndInfer(env); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if *n.InferredTypeSlot() != "Bool" {
		t.Errorf("Not inferred %s, want Bool", *n.InferredTypeSlot())
	}
}
