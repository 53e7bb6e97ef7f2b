package analyzer

import (
	"github.com/fmarani/coolc/internal/ast"
	"github.com/fmarani/coolc/internal/diagnostics"
	"github.com/fmarani/coolc/internal/symbols"
	"github.com/fmarani/coolc/internal/typesystem"
)

// inferCtx bundles the per-class-visit state the inference rules need:
// the environment (for method lookup and LCA), the enclosing class (for
// "self" and SELF_TYPE resolution) and the live scope stack.
type inferCtx struct {
	env   *symbols.ClassEnvironment
	class *ast.ClassDecl
	scope *symbols.VariableScope
}

// CheckScopesAndInfer is P5: for every class, in environment order, a
// fresh VariableScope is built and each feature is walked, decorating
// every expression node's InferredType slot (spec §4.5).
func (a *Analyzer) CheckScopesAndInfer(env *symbols.ClassEnvironment) *diagnostics.DiagnosticError {
	for _, name := range env.ClassNames() {
		class, _ := env.Lookup(name)
		if err := checkClassScopes(env, class); err != nil {
			return err
		}
	}
	return nil
}

func checkClassScopes(env *symbols.ClassEnvironment, class *ast.ClassDecl) *diagnostics.DiagnosticError {
	scope := symbols.NewVariableScope()
	scope.PushFrame()
	defer scope.PopFrame()
	ctx := &inferCtx{env: env, class: class, scope: scope}

	seenAttrs := make(map[string]bool)
	for _, attr := range class.Attrs() {
		if seenAttrs[attr.Name] {
			return diagnostics.NewError(
				diagnostics.PhaseScopeInfer, diagnostics.ErrDuplicateAttribute,
				attr.GetToken(), class.Name, attr.Name,
			).InClass(class.Name)
		}
		seenAttrs[attr.Name] = true

		resolved := resolveSelfType(attr.DeclaredType, class)
		scope.Insert(attr.Name, resolved)

		if attr.Init != nil {
			if err := inferExpr(attr.Init, ctx); err != nil {
				return err
			}
		}
	}

	seenMethods := make(map[string]bool)
	for _, method := range class.Methods() {
		if seenMethods[method.Name] {
			return diagnostics.NewError(
				diagnostics.PhaseScopeInfer, diagnostics.ErrDuplicateMethod,
				method.GetToken(), class.Name, method.Name,
			).InClass(class.Name)
		}
		seenMethods[method.Name] = true

		if err := checkMethodScope(ctx, method); err != nil {
			return err
		}
	}

	return nil
}

func checkMethodScope(ctx *inferCtx, method *ast.MethodDecl) *diagnostics.DiagnosticError {
	ctx.scope.PushFrame()
	defer ctx.scope.PopFrame()

	seenFormals := make(map[string]bool)
	for _, f := range method.Formals {
		if seenFormals[f.Name] {
			return diagnostics.NewError(
				diagnostics.PhaseScopeInfer, diagnostics.ErrDuplicateFormal,
				f.GetToken(), method.Name, f.Name,
			).InClass(ctx.class.Name).InFeature(method.Name)
		}
		seenFormals[f.Name] = true
		ctx.scope.Insert(f.Name, f.DeclaredType)
	}

	if method.Body == nil {
		return nil
	}
	return inferExpr(method.Body, ctx)
}

func resolveSelfType(declared string, class *ast.ClassDecl) string {
	if declared == ast.SelfTypeName {
		return class.Name
	}
	return declared
}

func isSelfReceiver(recv ast.Expression) bool {
	if recv == nil {
		return true
	}
	ref, ok := recv.(*ast.ObjectRef)
	return ok && ref.Name == ast.SelfVarName
}

// inferExpr decorates e.InferredType and recurses into every child,
// always bottom-up (spec §4.5: "All composite forms must recursively
// infer their children BEFORE computing their own type").
func inferExpr(e ast.Expression, ctx *inferCtx) *diagnostics.DiagnosticError {
	switch n := e.(type) {

	case *ast.IntLit:
		*n.InferredTypeSlot() = "Int"

	case *ast.StrLit:
		*n.InferredTypeSlot() = "String"

	case *ast.BoolLit:
		*n.InferredTypeSlot() = "Bool"

	case *ast.ObjectRef:
		if n.Name == ast.SelfVarName {
			*n.InferredTypeSlot() = ctx.class.Name
			return nil
		}
		t, ok := ctx.scope.Lookup(n.Name)
		if !ok {
			return diagnostics.NewError(
				diagnostics.PhaseScopeInfer, diagnostics.ErrVariableNotInScope,
				n.GetToken(), n.Name,
			).InClass(ctx.class.Name)
		}
		*n.InferredTypeSlot() = t

	case *ast.New:
		if n.Type == ast.SelfTypeName {
			*n.InferredTypeSlot() = ctx.class.Name
		} else {
			*n.InferredTypeSlot() = n.Type
		}

	case *ast.IsVoid:
		if err := inferExpr(n.Expr, ctx); err != nil {
			return err
		}
		*n.InferredTypeSlot() = "Bool"

	case *ast.Not:
		if err := inferExpr(n.Expr, ctx); err != nil {
			return err
		}
		*n.InferredTypeSlot() = "Bool"

	case *ast.Neg:
		if err := inferExpr(n.Expr, ctx); err != nil {
			return err
		}
		// Open question resolved in favor of Int -> Int (spec §9): the
		// source's inference table said Bool, but its own conformance
		// rule demands an Int operand, so Bool cannot be right.
		*n.InferredTypeSlot() = "Int"

	case *ast.Plus, *ast.Sub, *ast.Mult, *ast.Div:
		b := e.(ast.BinaryExpr)
		l, r := b.Operands()
		if err := inferExpr(l, ctx); err != nil {
			return err
		}
		if err := inferExpr(r, ctx); err != nil {
			return err
		}
		*e.InferredTypeSlot() = "Int"

	case *ast.Lt, *ast.Le, *ast.Eq:
		b := e.(ast.BinaryExpr)
		l, r := b.Operands()
		if err := inferExpr(l, ctx); err != nil {
			return err
		}
		if err := inferExpr(r, ctx); err != nil {
			return err
		}
		*e.InferredTypeSlot() = "Bool"

	case *ast.Block:
		for _, sub := range n.Exprs {
			if err := inferExpr(sub, ctx); err != nil {
				return err
			}
		}
		if len(n.Exprs) > 0 {
			*n.InferredTypeSlot() = *n.Exprs[len(n.Exprs)-1].InferredTypeSlot()
		}

	case *ast.Assign:
		if err := inferExpr(n.Target, ctx); err != nil {
			return err
		}
		if err := inferExpr(n.Body, ctx); err != nil {
			return err
		}
		// Canonical semantics (spec §9, Open Questions): the type of an
		// assignment is the type of its right-hand side.
		*n.InferredTypeSlot() = *n.Body.InferredTypeSlot()

	case *ast.While:
		if err := inferExpr(n.Pred, ctx); err != nil {
			return err
		}
		if err := inferExpr(n.Body, ctx); err != nil {
			return err
		}
		// Open question resolved (spec §9): While is given Object so
		// every reachable node ends up decorated.
		*n.InferredTypeSlot() = "Object"

	case *ast.If:
		if err := inferExpr(n.Pred, ctx); err != nil {
			return err
		}
		if err := inferExpr(n.Then, ctx); err != nil {
			return err
		}
		if err := inferExpr(n.Else, ctx); err != nil {
			return err
		}
		*n.InferredTypeSlot() = typesystem.LCA(ctx.env, *n.Then.InferredTypeSlot(), *n.Else.InferredTypeSlot())

	case *ast.Let:
		if n.Init != nil {
			if err := inferExpr(n.Init, ctx); err != nil {
				return err
			}
		}
		ctx.scope.PushFrame()
		defer ctx.scope.PopFrame()
		ctx.scope.Insert(n.Name, resolveSelfType(n.DeclaredType, ctx.class))
		if err := inferExpr(n.Body, ctx); err != nil {
			return err
		}
		*n.InferredTypeSlot() = *n.Body.InferredTypeSlot()

	case *ast.Case:
		if err := inferExpr(n.Subject, ctx); err != nil {
			return err
		}
		branchTypes := make([]string, 0, len(n.Branches))
		for _, br := range n.Branches {
			ctx.scope.PushFrame()
			ctx.scope.Insert(br.Name, resolveSelfType(br.DeclaredType, ctx.class))
			err := inferExpr(br.Expr, ctx)
			ctx.scope.PopFrame()
			if err != nil {
				return err
			}
			branchTypes = append(branchTypes, *br.Expr.InferredTypeSlot())
		}
		*n.InferredTypeSlot() = typesystem.LCAAll(ctx.env, branchTypes)

	case *ast.Dispatch:
		recvClass := ctx.class.Name
		if !isSelfReceiver(n.Recv) {
			if err := inferExpr(n.Recv, ctx); err != nil {
				return err
			}
			recvClass = *n.Recv.InferredTypeSlot()
		}
		for _, arg := range n.Args {
			if err := inferExpr(arg, ctx); err != nil {
				return err
			}
		}
		method, ok := ctx.env.FindMethod(recvClass, n.Method)
		if !ok {
			return diagnostics.NewError(
				diagnostics.PhaseScopeInfer, diagnostics.ErrMethodNotFound,
				n.GetToken(), recvClass, n.Method,
			).InClass(ctx.class.Name)
		}
		if method.ReturnType == ast.SelfTypeName {
			*n.InferredTypeSlot() = recvClass
		} else {
			*n.InferredTypeSlot() = method.ReturnType
		}

	case *ast.StaticDispatch:
		if err := inferExpr(n.Recv, ctx); err != nil {
			return err
		}
		for _, arg := range n.Args {
			if err := inferExpr(arg, ctx); err != nil {
				return err
			}
		}
		method, ok := ctx.env.FindMethod(n.Type, n.Method)
		if !ok {
			return diagnostics.NewError(
				diagnostics.PhaseScopeInfer, diagnostics.ErrMethodNotFound,
				n.GetToken(), n.Type, n.Method,
			).InClass(ctx.class.Name)
		}
		if method.ReturnType == ast.SelfTypeName {
			*n.InferredTypeSlot() = *n.Recv.InferredTypeSlot()
		} else {
			*n.InferredTypeSlot() = method.ReturnType
		}
	}

	return nil
}
