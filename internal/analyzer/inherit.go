package analyzer

import (
	"github.com/fmarani/coolc/internal/ast"
	"github.com/fmarani/coolc/internal/diagnostics"
	"github.com/fmarani/coolc/internal/symbols"
)

// ExpandInheritance is P4: a recursive pre-order descent from Object that
// copies each parent's (already fully materialized) features down into
// every child, after checking attribute redefinition and method override
// signatures (spec §4.4).
func (a *Analyzer) ExpandInheritance(env *symbols.ClassEnvironment) *diagnostics.DiagnosticError {
	return expandChildrenOf(env, "Object")
}

func expandChildrenOf(env *symbols.ClassEnvironment, name string) *diagnostics.DiagnosticError {
	parent, _ := env.Lookup(name)
	for _, childName := range env.Children(name) {
		child, _ := env.Lookup(childName)
		if err := expandOne(child, parent); err != nil {
			return err
		}
		if err := expandChildrenOf(env, childName); err != nil {
			return err
		}
	}
	return nil
}

// expandOne folds parent's materialized features into child, rejecting
// attribute redefinition and signature-mismatched method overrides. The
// result is ordered attributes-then-methods (spec §3: "After P4, a
// class's feature list is the full materialized inherited view"), built
// as parent-attrs + child-own-attrs, then parent-methods-not-overridden +
// child-own-methods (overrides included, by construction, since they
// already live in child's own method list).
func expandOne(child, parent *ast.ClassDecl) *diagnostics.DiagnosticError {
	childAttrs := child.Attrs()
	childMethods := child.Methods()
	parentAttrs := parent.Attrs()
	parentMethods := parent.Methods()

	for _, ca := range childAttrs {
		for _, pa := range parentAttrs {
			if pa.Name == ca.Name {
				return diagnostics.NewError(
					diagnostics.PhaseInheritance, diagnostics.ErrAttributeRedefined,
					ca.GetToken(), child.Name, ca.Name,
				).InClass(child.Name).InFeature(ca.Name)
			}
		}
	}

	for _, cm := range childMethods {
		for _, pm := range parentMethods {
			if pm.Name != cm.Name {
				continue
			}
			if !sameSignature(pm, cm) {
				return diagnostics.NewError(
					diagnostics.PhaseInheritance, diagnostics.ErrMethodSignatureMismatch,
					cm.GetToken(), child.Name, cm.Name,
				).InClass(child.Name).InFeature(cm.Name)
			}
		}
	}

	features := make([]ast.Feature, 0, len(parentAttrs)+len(childAttrs)+len(parentMethods)+len(childMethods))
	for _, pa := range parentAttrs {
		features = append(features, pa)
	}
	for _, ca := range childAttrs {
		features = append(features, ca)
	}
	for _, pm := range parentMethods {
		if _, overridden := child.FindMethod(pm.Name); !overridden {
			features = append(features, pm)
		}
	}
	for _, cm := range childMethods {
		features = append(features, cm)
	}

	child.Features = features
	return nil
}

func sameSignature(a, b *ast.MethodDecl) bool {
	if a.ReturnType != b.ReturnType {
		return false
	}
	if len(a.Formals) != len(b.Formals) {
		return false
	}
	for i := range a.Formals {
		if a.Formals[i].DeclaredType != b.Formals[i].DeclaredType {
			return false
		}
	}
	return true
}
