// Package analyzer implements the six-phase semantic analysis pipeline:
// base installation, graph construction, well-formedness, inheritance
// expansion, scope check & type inference, and type conformance. Phases
// run in strict order over a single, shared symbols.ClassEnvironment,
// mirroring the teacher's internal/analyzer package, whose Analyzer
// exposes both a one-shot Analyze and the individual naming / headers /
// instances / bodies passes for callers that need finer-grained control.
package analyzer

import (
	"github.com/fmarani/coolc/internal/ast"
	"github.com/fmarani/coolc/internal/diagnostics"
	"github.com/fmarani/coolc/internal/symbols"
)

// Analyzer runs the pipeline and holds the resulting environment.
type Analyzer struct {
	Env *symbols.ClassEnvironment
}

// New creates an Analyzer with no environment yet; one is built fresh by
// each call to Analyze.
func New() *Analyzer {
	return &Analyzer{}
}

// Analyze runs P1 through P6 over classes and returns the resulting
// environment. On success the returned error slice holds only
// non-fatal warnings (currently just re-parented undefined-parent
// notices from P3). On the first fatal error, analysis aborts
// immediately and the slice holds exactly that one error (spec §7:
// "the first detected error aborts analysis").
func (a *Analyzer) Analyze(classes []*ast.ClassDecl) (*symbols.ClassEnvironment, []*diagnostics.DiagnosticError) {
	withBuiltins := a.InstallBuiltins(classes)

	env, err := a.BuildGraph(withBuiltins)
	if err != nil {
		return nil, []*diagnostics.DiagnosticError{err}
	}
	a.Env = env

	warnings, err := a.CheckWellFormed(env)
	if err != nil {
		return nil, []*diagnostics.DiagnosticError{err}
	}

	if err := a.ExpandInheritance(env); err != nil {
		return nil, []*diagnostics.DiagnosticError{err}
	}

	if err := a.CheckScopesAndInfer(env); err != nil {
		return nil, []*diagnostics.DiagnosticError{err}
	}

	if err := a.CheckConformance(env); err != nil {
		return nil, []*diagnostics.DiagnosticError{err}
	}

	return env, warnings
}
