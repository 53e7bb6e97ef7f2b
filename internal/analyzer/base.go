package analyzer

import (
	"github.com/fmarani/coolc/internal/ast"
	"github.com/fmarani/coolc/internal/config"
)

// InstallBuiltins is P1: it appends the five mandatory built-in classes
// to the class list, after any user classes (spec §4.1, §4.2). It never
// mutates classes in place — callers that hold on to the original slice
// are unaffected.
func (a *Analyzer) InstallBuiltins(classes []*ast.ClassDecl) []*ast.ClassDecl {
	out := make([]*ast.ClassDecl, len(classes), len(classes)+len(config.BuiltinClasses))
	copy(out, classes)
	for _, sig := range config.BuiltinClasses {
		out = append(out, buildBuiltinClass(sig))
	}
	return out
}

func buildBuiltinClass(sig config.ClassSig) *ast.ClassDecl {
	cd := &ast.ClassDecl{Name: sig.Name, Parent: sig.Parent}
	for _, as := range sig.Attrs {
		cd.Features = append(cd.Features, &ast.AttrDecl{
			Name:         as.Name,
			DeclaredType: as.DeclaredType,
		})
	}
	for _, ms := range sig.Methods {
		md := &ast.MethodDecl{
			Name:       ms.Name,
			ReturnType: ms.ReturnType,
			// Body intentionally nil: built-in methods have no source
			// body, so later phases "trust the declared signature"
			// (spec §4.1).
		}
		for _, f := range ms.Formals {
			md.Formals = append(md.Formals, &ast.Formal{
				Name:         f.Name,
				DeclaredType: f.Type,
			})
		}
		cd.Features = append(cd.Features, md)
	}
	return cd
}
