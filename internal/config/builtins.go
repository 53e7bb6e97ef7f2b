// Package config is the single source of truth for the fixed built-in
// classes the source language ships with. Modeled on the teacher's
// internal/config/builtins.go, which plays the same role for its own
// builtin types/traits/operators: one declarative table that both the
// analyzer's installer and tests read from, so the two can never drift.
package config

// MethodSig describes one built-in method's signature, declarative
// enough for the P1 installer to turn straight into an *ast.MethodDecl
// with a nil body.
type MethodSig struct {
	Name       string
	Formals    []FormalSig
	ReturnType string
}

// FormalSig is a (name, type) formal parameter in a built-in signature.
type FormalSig struct {
	Name string
	Type string
}

// AttrSig describes one built-in attribute.
type AttrSig struct {
	Name         string
	DeclaredType string
}

// ClassSig is the declarative shape of one built-in class.
type ClassSig struct {
	Name    string
	Parent  string // "" for Object
	Attrs   []AttrSig
	Methods []MethodSig
}

// BuiltinClasses lists the five mandatory, immutable base classes in the
// order P1 installs them (spec §4.1). Object must come first: every
// other builtin's Parent field names it.
var BuiltinClasses = []ClassSig{
	{
		Name: "Object",
		Methods: []MethodSig{
			{Name: "abort", ReturnType: "Object"},
			{Name: "type_name", ReturnType: "String"},
			{Name: "copy", ReturnType: "SELF_TYPE"},
		},
	},
	{
		Name:   "IO",
		Parent: "Object",
		Methods: []MethodSig{
			{Name: "out_string", Formals: []FormalSig{{Name: "arg", Type: "String"}}, ReturnType: "SELF_TYPE"},
			{Name: "out_int", Formals: []FormalSig{{Name: "arg", Type: "Int"}}, ReturnType: "SELF_TYPE"},
			{Name: "in_string", ReturnType: "String"},
			{Name: "in_int", ReturnType: "Int"},
		},
	},
	{
		Name:   "Int",
		Parent: "Object",
	},
	{
		Name:   "Bool",
		Parent: "Object",
	},
	{
		Name:   "String",
		Parent: "Object",
		Attrs: []AttrSig{
			{Name: "length_val", DeclaredType: "Int"},
			{Name: "str_field", DeclaredType: "Object"},
		},
		Methods: []MethodSig{
			{Name: "length", ReturnType: "Int"},
			{Name: "concat", Formals: []FormalSig{{Name: "arg", Type: "String"}}, ReturnType: "String"},
			{Name: "substr", Formals: []FormalSig{{Name: "arg1", Type: "Int"}, {Name: "arg2", Type: "Int"}}, ReturnType: "String"},
		},
	},
}

// ForbiddenBaseParents is the ordered list of classes no user class may
// inherit from (spec §4.3 rule 2: "forbidden base inheritance"). Kept as
// a slice rather than a map so callers iterate deterministically.
var ForbiddenBaseParents = []string{"String", "Int", "Bool"}

// IsBuiltinClassName reports whether name is one of the five mandatory
// base classes.
func IsBuiltinClassName(name string) bool {
	for _, c := range BuiltinClasses {
		if c.Name == name {
			return true
		}
	}
	return false
}
