// Package symbols holds the two pieces of mutable state the analyzer
// phases thread through the pipeline: the ClassEnvironment (class table
// plus inheritance graph, built by P2, mutated through P4, read-only
// after) and VariableScope (the per-class-visit lexical scope stack used
// by P5). Named and shaped after the teacher's internal/symbols package,
// which plays the same "one authoritative table the analyzer consults"
// role for its own (very different) type system.
package symbols

import (
	"github.com/fmarani/coolc/internal/ast"
	"github.com/fmarani/coolc/internal/diagnostics"
)

// ClassEnvironment is the class_table + inheritance_graph pair from
// spec §3, plus enough bookkeeping to iterate both deterministically.
type ClassEnvironment struct {
	classOrder []string
	classTable map[string]*ast.ClassDecl

	childrenOrder []string            // parent names, in first-seen order
	children      map[string][]string // parent -> ordered immediate children
}

// NewClassEnvironment returns an empty environment, ready for P2.
func NewClassEnvironment() *ClassEnvironment {
	return &ClassEnvironment{
		classTable: make(map[string]*ast.ClassDecl),
		children:   make(map[string][]string),
	}
}

// AddClass inserts c into the class table (P2). Fails with
// DuplicateClass if the name is already present; otherwise registers c
// as a child of its parent (skipped for Object, which has none).
func (e *ClassEnvironment) AddClass(c *ast.ClassDecl) *diagnostics.DiagnosticError {
	if _, exists := e.classTable[c.Name]; exists {
		return diagnostics.NewError(diagnostics.PhaseGraph, diagnostics.ErrDuplicateClass, c.GetToken(), c.Name)
	}
	e.classTable[c.Name] = c
	e.classOrder = append(e.classOrder, c.Name)
	if c.Name != "Object" {
		e.addChild(c.Parent, c.Name)
	}
	return nil
}

func (e *ClassEnvironment) addChild(parent, child string) {
	if _, seen := e.children[parent]; !seen {
		e.childrenOrder = append(e.childrenOrder, parent)
	}
	e.children[parent] = append(e.children[parent], child)
}

// Lookup returns the ClassDecl named name, if known.
func (e *ClassEnvironment) Lookup(name string) (*ast.ClassDecl, bool) {
	c, ok := e.classTable[name]
	return c, ok
}

// IsKnownClass reports whether name is a registered class.
func (e *ClassEnvironment) IsKnownClass(name string) bool {
	_, ok := e.classTable[name]
	return ok
}

// ClassNames returns every registered class name, in insertion order —
// the order the analyzer must iterate in for deterministic diagnostics
// (spec §5, "Ordering guarantees").
func (e *ClassEnvironment) ClassNames() []string {
	out := make([]string, len(e.classOrder))
	copy(out, e.classOrder)
	return out
}

// Children returns the ordered immediate children of parent (possibly
// empty).
func (e *ClassEnvironment) Children(parent string) []string {
	return e.children[parent]
}

// ParentKeys returns every distinct parent name that appears in the
// inheritance graph, in first-seen order — including names that are not
// (yet) registered classes, which is exactly what P3's undefined-parent
// check needs to walk.
func (e *ClassEnvironment) ParentKeys() []string {
	out := make([]string, len(e.childrenOrder))
	copy(out, e.childrenOrder)
	return out
}

// Parent implements typesystem.ParentLookup: it returns the declared
// parent of a registered, non-Object class.
func (e *ClassEnvironment) Parent(class string) (string, bool) {
	c, ok := e.classTable[class]
	if !ok || c.Parent == "" {
		return "", false
	}
	return c.Parent, true
}

// ReparentUnderObject implements P3 rule 1: the children of an undefined
// parent name are merged into Object's child list and each child's own
// ClassDecl.Parent is rewritten to "Object". Returns one warning per
// reparented child, in child order.
func (e *ClassEnvironment) ReparentUnderObject(undefinedParent string) []*diagnostics.DiagnosticError {
	kids := e.children[undefinedParent]
	var warnings []*diagnostics.DiagnosticError
	for _, childName := range kids {
		child := e.classTable[childName]
		warnings = append(warnings, diagnostics.NewWarning(
			diagnostics.PhaseWellFormed, diagnostics.ErrUndefinedParent,
			child.GetToken(), childName, undefinedParent,
		))
		child.Parent = "Object"
		e.addChild("Object", childName)
	}
	delete(e.children, undefinedParent)
	for i, p := range e.childrenOrder {
		if p == undefinedParent {
			e.childrenOrder = append(e.childrenOrder[:i:i], e.childrenOrder[i+1:]...)
			break
		}
	}
	return warnings
}

// ReachableFromObject returns the set of class names reachable from
// Object via the inheritance graph (P3 rule 3).
func (e *ClassEnvironment) ReachableFromObject() map[string]bool {
	seen := map[string]bool{"Object": true}
	queue := []string{"Object"}
	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]
		for _, child := range e.children[cur] {
			if !seen[child] {
				seen[child] = true
				queue = append(queue, child)
			}
		}
	}
	return seen
}

// FindMethod resolves methodName on class className, including any
// feature copied in by P4's inheritance expansion (after which every
// class's feature list is already the fully materialized view).
func (e *ClassEnvironment) FindMethod(className, methodName string) (*ast.MethodDecl, bool) {
	c, ok := e.classTable[className]
	if !ok {
		return nil, false
	}
	return c.FindMethod(methodName)
}
