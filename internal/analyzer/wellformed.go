package analyzer

import (
	"github.com/fmarani/coolc/internal/config"
	"github.com/fmarani/coolc/internal/diagnostics"
	"github.com/fmarani/coolc/internal/symbols"
)

// CheckWellFormed is P3: three sub-checks run in order against env,
// which was just populated by P2 (spec §4.3).
//
//  1. Undefined parents are a non-fatal warning: their children are
//     re-parented under Object.
//  2. Forbidden base inheritance (String/Int/Bool as a parent) is fatal.
//  3. Any class not reachable from Object via the (now-repaired) graph
//     is in a cycle, which is fatal.
func (a *Analyzer) CheckWellFormed(env *symbols.ClassEnvironment) ([]*diagnostics.DiagnosticError, *diagnostics.DiagnosticError) {
	var warnings []*diagnostics.DiagnosticError

	for _, parentName := range env.ParentKeys() {
		if parentName == "Object" || env.IsKnownClass(parentName) {
			continue
		}
		warnings = append(warnings, env.ReparentUnderObject(parentName)...)
	}

	for _, base := range config.ForbiddenBaseParents {
		children := env.Children(base)
		if len(children) == 0 {
			continue
		}
		childClass, _ := env.Lookup(children[0])
		return warnings, diagnostics.NewError(
			diagnostics.PhaseWellFormed, diagnostics.ErrIllegalBaseInheritance,
			childClass.GetToken(), children[0], base,
		)
	}

	reachable := env.ReachableFromObject()
	for _, name := range env.ClassNames() {
		if reachable[name] {
			continue
		}
		c, _ := env.Lookup(name)
		return warnings, diagnostics.NewError(
			diagnostics.PhaseWellFormed, diagnostics.ErrInheritanceCycle,
			c.GetToken(), name,
		)
	}

	return warnings, nil
}
