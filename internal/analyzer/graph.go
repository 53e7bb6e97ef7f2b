package analyzer

import (
	"github.com/fmarani/coolc/internal/ast"
	"github.com/fmarani/coolc/internal/diagnostics"
	"github.com/fmarani/coolc/internal/symbols"
)

// BuildGraph is P2: it inserts every class into a fresh ClassEnvironment,
// failing with DuplicateClass the first time a name collides (spec
// §4.2). classes must already include the built-ins (run InstallBuiltins
// first).
func (a *Analyzer) BuildGraph(classes []*ast.ClassDecl) (*symbols.ClassEnvironment, *diagnostics.DiagnosticError) {
	env := symbols.NewClassEnvironment()
	for _, c := range classes {
		if err := env.AddClass(c); err != nil {
			return nil, err
		}
	}
	return env, nil
}
