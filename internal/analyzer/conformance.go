package analyzer

import (
	"github.com/fmarani/coolc/internal/ast"
	"github.com/fmarani/coolc/internal/diagnostics"
	"github.com/fmarani/coolc/internal/symbols"
	"github.com/fmarani/coolc/internal/token"
	"github.com/fmarani/coolc/internal/typesystem"
)

// CheckConformance is P6: a re-walk of the now fully type-decorated AST
// verifying every declared/inferred conformance rule in spec §4.6.
func (a *Analyzer) CheckConformance(env *symbols.ClassEnvironment) *diagnostics.DiagnosticError {
	for _, name := range env.ClassNames() {
		class, _ := env.Lookup(name)
		if err := checkClassConformance(env, class); err != nil {
			return err
		}
	}
	return nil
}

func checkClassConformance(env *symbols.ClassEnvironment, class *ast.ClassDecl) *diagnostics.DiagnosticError {
	for _, attr := range class.Attrs() {
		if attr.Init == nil {
			continue
		}
		declared := resolveSelfType(attr.DeclaredType, class)
		initType := *attr.Init.InferredTypeSlot()
		if !typesystem.Conforms(env, initType, declared) {
			return diagnostics.NewError(
				diagnostics.PhaseConformance, diagnostics.ErrAttributeTypeMismatch,
				attr.GetToken(), initType, attr.Name, declared,
			).InClass(class.Name).InFeature(attr.Name)
		}
		if err := checkExprConformance(env, class, attr.Init); err != nil {
			return err
		}
	}

	for _, method := range class.Methods() {
		for _, f := range method.Formals {
			if f.DeclaredType == ast.SelfTypeName {
				return diagnostics.NewError(
					diagnostics.PhaseConformance, diagnostics.ErrFormalSelfType,
					f.GetToken(), f.Name, method.Name,
				).InClass(class.Name).InFeature(method.Name)
			}
			if !env.IsKnownClass(f.DeclaredType) {
				return diagnostics.NewError(
					diagnostics.PhaseConformance, diagnostics.ErrFormalUnknownType,
					f.GetToken(), f.Name, method.Name, f.DeclaredType,
				).InClass(class.Name).InFeature(method.Name)
			}
		}

		if method.Body == nil {
			continue
		}
		declaredReturn := resolveSelfType(method.ReturnType, class)
		bodyType := *method.Body.InferredTypeSlot()
		if !typesystem.Conforms(env, bodyType, declaredReturn) {
			return diagnostics.NewError(
				diagnostics.PhaseConformance, diagnostics.ErrMethodReturnMismatch,
				method.GetToken(), bodyType, method.Name, declaredReturn,
			).InClass(class.Name).InFeature(method.Name)
		}
		if err := checkExprConformance(env, class, method.Body); err != nil {
			return err
		}
	}

	return nil
}

func isBasicType(t string) bool {
	return t == "Int" || t == "Bool" || t == "String"
}

// checkExprConformance descends into every sub-expression, applying the
// conformance rule for each node kind the spec names and recursing
// everywhere else purely to reach nested checks (spec §4.6: "Conformance
// checks descend into all sub-expressions").
func checkExprConformance(env *symbols.ClassEnvironment, class *ast.ClassDecl, e ast.Expression) *diagnostics.DiagnosticError {
	switch n := e.(type) {

	case *ast.IntLit, *ast.StrLit, *ast.BoolLit, *ast.ObjectRef, *ast.New:
		// Leaves; nothing to check or descend into.

	case *ast.Block:
		for _, sub := range n.Exprs {
			if err := checkExprConformance(env, class, sub); err != nil {
				return err
			}
		}

	case *ast.Assign:
		if err := checkExprConformance(env, class, n.Target); err != nil {
			return err
		}
		if err := checkExprConformance(env, class, n.Body); err != nil {
			return err
		}
		// n.Target is an *ObjectRef; P5 set its InferredType to the
		// variable's *declared* type (a scope lookup result, never
		// narrowed), so it doubles as the declared type here.
		declared := *n.Target.InferredTypeSlot()
		bodyType := *n.Body.InferredTypeSlot()
		if !typesystem.Conforms(env, bodyType, declared) {
			return diagnostics.NewError(
				diagnostics.PhaseConformance, diagnostics.ErrAssignNonConformant,
				n.GetToken(), bodyType, declared, n.Target.Name,
			).InClass(class.Name)
		}

	case *ast.If:
		if err := checkExprConformance(env, class, n.Pred); err != nil {
			return err
		}
		if err := checkExprConformance(env, class, n.Then); err != nil {
			return err
		}
		if err := checkExprConformance(env, class, n.Else); err != nil {
			return err
		}
		if *n.Pred.InferredTypeSlot() != "Bool" {
			return diagnostics.NewError(
				diagnostics.PhaseConformance, diagnostics.ErrIfPredicateNotBool,
				n.GetToken(), *n.Pred.InferredTypeSlot(),
			).InClass(class.Name)
		}

	case *ast.While:
		if err := checkExprConformance(env, class, n.Pred); err != nil {
			return err
		}
		if err := checkExprConformance(env, class, n.Body); err != nil {
			return err
		}
		if *n.Pred.InferredTypeSlot() != "Bool" {
			return diagnostics.NewError(
				diagnostics.PhaseConformance, diagnostics.ErrWhilePredicateNotBool,
				n.GetToken(), *n.Pred.InferredTypeSlot(),
			).InClass(class.Name)
		}

	case *ast.Not:
		if err := checkExprConformance(env, class, n.Expr); err != nil {
			return err
		}
		if *n.Expr.InferredTypeSlot() != "Bool" {
			return diagnostics.NewError(
				diagnostics.PhaseConformance, diagnostics.ErrNotOperandNotBool,
				n.GetToken(), *n.Expr.InferredTypeSlot(),
			).InClass(class.Name)
		}

	case *ast.Neg:
		if err := checkExprConformance(env, class, n.Expr); err != nil {
			return err
		}
		if *n.Expr.InferredTypeSlot() != "Int" {
			return diagnostics.NewError(
				diagnostics.PhaseConformance, diagnostics.ErrNegOperandNotInt,
				n.GetToken(), *n.Expr.InferredTypeSlot(),
			).InClass(class.Name)
		}

	case *ast.IsVoid:
		if err := checkExprConformance(env, class, n.Expr); err != nil {
			return err
		}

	case *ast.Plus, *ast.Sub, *ast.Mult, *ast.Div:
		b := e.(ast.BinaryExpr)
		l, r := b.Operands()
		if err := checkExprConformance(env, class, l); err != nil {
			return err
		}
		if err := checkExprConformance(env, class, r); err != nil {
			return err
		}
		if *l.InferredTypeSlot() != "Int" {
			return diagnostics.NewError(diagnostics.PhaseConformance, diagnostics.ErrArithOperandNotInt, e.GetToken(), *l.InferredTypeSlot()).InClass(class.Name)
		}
		if *r.InferredTypeSlot() != "Int" {
			return diagnostics.NewError(diagnostics.PhaseConformance, diagnostics.ErrArithOperandNotInt, e.GetToken(), *r.InferredTypeSlot()).InClass(class.Name)
		}

	case *ast.Lt, *ast.Le:
		b := e.(ast.BinaryExpr)
		l, r := b.Operands()
		if err := checkExprConformance(env, class, l); err != nil {
			return err
		}
		if err := checkExprConformance(env, class, r); err != nil {
			return err
		}
		if *l.InferredTypeSlot() != "Int" {
			return diagnostics.NewError(diagnostics.PhaseConformance, diagnostics.ErrComparisonOperandNotInt, e.GetToken(), *l.InferredTypeSlot()).InClass(class.Name)
		}
		if *r.InferredTypeSlot() != "Int" {
			return diagnostics.NewError(diagnostics.PhaseConformance, diagnostics.ErrComparisonOperandNotInt, e.GetToken(), *r.InferredTypeSlot()).InClass(class.Name)
		}

	case *ast.Eq:
		b := e.(ast.BinaryExpr)
		l, r := b.Operands()
		if err := checkExprConformance(env, class, l); err != nil {
			return err
		}
		if err := checkExprConformance(env, class, r); err != nil {
			return err
		}
		lt, rt := *l.InferredTypeSlot(), *r.InferredTypeSlot()
		if (isBasicType(lt) || isBasicType(rt)) && lt != rt {
			return diagnostics.NewError(
				diagnostics.PhaseConformance, diagnostics.ErrEqComparisonBasicMismatch,
				e.GetToken(), lt, rt,
			).InClass(class.Name)
		}

	case *ast.Let:
		if n.Init != nil {
			if err := checkExprConformance(env, class, n.Init); err != nil {
				return err
			}
		}
		if err := checkExprConformance(env, class, n.Body); err != nil {
			return err
		}

	case *ast.Case:
		if err := checkExprConformance(env, class, n.Subject); err != nil {
			return err
		}
		for _, br := range n.Branches {
			if err := checkExprConformance(env, class, br.Expr); err != nil {
				return err
			}
		}

	case *ast.Dispatch:
		recvClass := class.Name
		if !isSelfReceiver(n.Recv) {
			if err := checkExprConformance(env, class, n.Recv); err != nil {
				return err
			}
			recvClass = *n.Recv.InferredTypeSlot()
		}
		for _, arg := range n.Args {
			if err := checkExprConformance(env, class, arg); err != nil {
				return err
			}
		}
		method, ok := env.FindMethod(recvClass, n.Method)
		if !ok {
			return diagnostics.NewError(
				diagnostics.PhaseConformance, diagnostics.ErrMethodNotFound,
				n.GetToken(), recvClass, n.Method,
			).InClass(class.Name)
		}
		if err := checkCallArgs(env, class, n.GetToken(), n.Method, n.Args, method); err != nil {
			return err
		}

	case *ast.StaticDispatch:
		if err := checkExprConformance(env, class, n.Recv); err != nil {
			return err
		}
		for _, arg := range n.Args {
			if err := checkExprConformance(env, class, arg); err != nil {
				return err
			}
		}
		recvType := *n.Recv.InferredTypeSlot()
		if !typesystem.Conforms(env, recvType, n.Type) {
			return diagnostics.NewError(
				diagnostics.PhaseConformance, diagnostics.ErrStaticDispatchNonConform,
				n.GetToken(), recvType, n.Type,
			).InClass(class.Name)
		}
		method, ok := env.FindMethod(n.Type, n.Method)
		if !ok {
			return diagnostics.NewError(
				diagnostics.PhaseConformance, diagnostics.ErrMethodNotFound,
				n.GetToken(), n.Type, n.Method,
			).InClass(class.Name)
		}
		if err := checkCallArgs(env, class, n.GetToken(), n.Method, n.Args, method); err != nil {
			return err
		}
	}

	return nil
}

// checkCallArgs verifies arity and per-argument conformance for a
// resolved Dispatch/StaticDispatch call (spec §4.6: ArityMismatch,
// ArgumentNonConformant).
func checkCallArgs(env *symbols.ClassEnvironment, class *ast.ClassDecl, tok token.Token, method string, args []ast.Expression, decl *ast.MethodDecl) *diagnostics.DiagnosticError {
	if len(args) != len(decl.Formals) {
		return diagnostics.NewError(
			diagnostics.PhaseConformance, diagnostics.ErrArityMismatch,
			tok, method, len(args), len(decl.Formals),
		).InClass(class.Name)
	}
	for i, arg := range args {
		formalType := decl.Formals[i].DeclaredType
		argType := *arg.InferredTypeSlot()
		if !typesystem.Conforms(env, argType, formalType) {
			return diagnostics.NewError(
				diagnostics.PhaseConformance, diagnostics.ErrArgumentNonConformant,
				tok, i+1, argType, formalType,
			).InClass(class.Name).InFeature(method)
		}
	}
	return nil
}
