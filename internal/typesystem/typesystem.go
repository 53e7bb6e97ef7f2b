// Package typesystem implements the subtyping lattice induced by single
// inheritance rooted at Object: conformance and lowest-common-ancestor.
// It depends only on a minimal ParentLookup interface rather than on
// symbols.ClassEnvironment directly — the same low-level/high-level
// split the teacher keeps between its own internal/typesystem (Type,
// Subst, unification) and internal/symbols (the table that stores
// typesystem.Type values), just inverted here: our environment is the
// thing with the graph, and typesystem stays a pure function of it.
package typesystem

// ParentLookup is satisfied by symbols.ClassEnvironment. Parent returns
// the immediate parent of class, and false for Object (which has none).
type ParentLookup interface {
	Parent(class string) (string, bool)
}

// Conforms reports whether child conforms to parent: child == parent, or
// child's ancestor chain reaches parent (spec §4.6).
func Conforms(env ParentLookup, child, parent string) bool {
	if child == parent {
		return true
	}
	cur := child
	for {
		p, ok := env.Parent(cur)
		if !ok {
			return false
		}
		if p == parent {
			return true
		}
		cur = p
	}
}

// PathToObject returns the chain of class names from Object down to
// class, inclusive. Single inheritance guarantees this path is unique
// (spec §4.5, LCA algorithm note).
func PathToObject(env ParentLookup, class string) []string {
	var reversed []string
	cur := class
	for {
		reversed = append(reversed, cur)
		p, ok := env.Parent(cur)
		if !ok {
			break
		}
		cur = p
	}
	path := make([]string, len(reversed))
	for i, name := range reversed {
		path[len(reversed)-1-i] = name
	}
	return path
}

// LCA computes the lowest common ancestor of a and b by walking their
// Object-rooted paths in lockstep and returning the last position at
// which they agree (spec §4.5).
func LCA(env ParentLookup, a, b string) string {
	pa := PathToObject(env, a)
	pb := PathToObject(env, b)

	lca := "Object"
	for i := 0; i < len(pa) && i < len(pb); i++ {
		if pa[i] != pb[i] {
			break
		}
		lca = pa[i]
	}
	return lca
}

// LCAAll generalizes LCA to N class names (spec §4.5, "Case(_, branches)").
// Panics if names is empty — callers (Case inference) always have at
// least one branch.
func LCAAll(env ParentLookup, names []string) string {
	result := names[0]
	for _, n := range names[1:] {
		result = LCA(env, result, n)
	}
	return result
}
