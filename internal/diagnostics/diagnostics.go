// Package diagnostics defines the single error type returned by every
// analyzer phase: a code, a phase tag, a source position and a rendered,
// human-readable message. Modeled on the teacher's
// internal/diagnostics package: a fixed enum of error codes, one
// fmt-style template per code, and constructors that attach position
// information automatically.
package diagnostics

import (
	"fmt"
	"io"
	"strings"

	"github.com/fmarani/coolc/internal/token"
	"github.com/mattn/go-isatty"
)

// Phase identifies which analyzer pass produced a diagnostic.
type Phase string

const (
	PhaseBaseInstall  Phase = "base-install"
	PhaseGraph        Phase = "graph"
	PhaseWellFormed   Phase = "wellformed"
	PhaseInheritance  Phase = "inheritance"
	PhaseScopeInfer   Phase = "scope-infer"
	PhaseConformance  Phase = "conformance"
)

// Severity distinguishes fatal (abort analysis) from advisory diagnostics.
type Severity string

const (
	SeverityError   Severity = "error"
	SeverityWarning Severity = "warning"
)

// ErrorCode is a stable identifier for one SemantError kind from spec §7.
type ErrorCode string

const (
	ErrDuplicateClass            ErrorCode = "S001"
	ErrIllegalBaseInheritance    ErrorCode = "S002"
	ErrInheritanceCycle          ErrorCode = "S003"
	ErrAttributeRedefined        ErrorCode = "S004"
	ErrMethodSignatureMismatch   ErrorCode = "S005"
	ErrDuplicateAttribute        ErrorCode = "S006"
	ErrDuplicateMethod           ErrorCode = "S007"
	ErrDuplicateFormal           ErrorCode = "S008"
	ErrVariableNotInScope        ErrorCode = "S009"
	ErrMethodNotFound            ErrorCode = "S010"
	ErrAttributeTypeMismatch     ErrorCode = "S011"
	ErrMethodReturnMismatch      ErrorCode = "S012"
	ErrFormalSelfType            ErrorCode = "S013"
	ErrFormalUnknownType         ErrorCode = "S014"
	ErrIfPredicateNotBool        ErrorCode = "S015"
	ErrWhilePredicateNotBool     ErrorCode = "S016"
	ErrNotOperandNotBool         ErrorCode = "S017"
	ErrNegOperandNotInt          ErrorCode = "S018"
	ErrArithOperandNotInt        ErrorCode = "S019"
	ErrComparisonOperandNotInt   ErrorCode = "S020"
	ErrEqComparisonBasicMismatch ErrorCode = "S021"
	ErrStaticDispatchNonConform  ErrorCode = "S022"
	ErrArityMismatch             ErrorCode = "S023"
	ErrArgumentNonConformant     ErrorCode = "S024"
	ErrAssignNonConformant       ErrorCode = "S025"
	ErrUndefinedParent           ErrorCode = "S026" // non-fatal, re-parented to Object
)

var errorTemplates = map[ErrorCode]string{
	ErrDuplicateClass:            "class %s is already defined",
	ErrIllegalBaseInheritance:    "class %s cannot inherit from %s",
	ErrInheritanceCycle:          "class %s is part of an inheritance cycle",
	ErrAttributeRedefined:        "class %s redefines inherited attribute %s",
	ErrMethodSignatureMismatch:   "class %s overrides method %s with a different signature",
	ErrDuplicateAttribute:        "class %s declares attribute %s more than once",
	ErrDuplicateMethod:           "class %s declares method %s more than once",
	ErrDuplicateFormal:           "method %s declares formal %s more than once",
	ErrVariableNotInScope:        "variable %s is not in scope",
	ErrMethodNotFound:            "class %s has no method %s",
	ErrAttributeTypeMismatch:     "%s for attribute %s not conformant to declared type %s",
	ErrMethodReturnMismatch:      "inferred return type %s of method %s not conformant to declared return type %s",
	ErrFormalSelfType:            "formal %s of method %s cannot be declared SELF_TYPE",
	ErrFormalUnknownType:         "formal %s of method %s has unknown type %s",
	ErrIfPredicateNotBool:        "if predicate has type %s instead of Bool",
	ErrWhilePredicateNotBool:     "while predicate has type %s instead of Bool",
	ErrNotOperandNotBool:         "not operand has type %s instead of Bool",
	ErrNegOperandNotInt:          "~ operand has type %s instead of Int",
	ErrArithOperandNotInt:        "arithmetic operand has type %s instead of Int",
	ErrComparisonOperandNotInt:   "comparison operand has type %s instead of Int",
	ErrEqComparisonBasicMismatch: "cannot compare %s with %s",
	ErrStaticDispatchNonConform:  "receiver of type %s does not conform to static dispatch target %s",
	ErrArityMismatch:             "method %s called with %d argument(s), expected %d",
	ErrArgumentNonConformant:     "argument %d of type %s not conformant to formal type %s",
	ErrAssignNonConformant:       "%s not conformant to declared type %s of %s",
	ErrUndefinedParent:           "class %s inherits from undefined class %s; re-parented under Object",
}

// DiagnosticError is the concrete type returned by every analyzer phase.
type DiagnosticError struct {
	Code     ErrorCode
	Phase    Phase
	Severity Severity
	Args     []interface{}
	Token    token.Token
	Class    string // enclosing class, when available
	Feature  string // enclosing attribute/method, when available
}

func (e *DiagnosticError) Error() string {
	template, ok := errorTemplates[e.Code]
	if !ok {
		return fmt.Sprintf("unknown diagnostic code: %s", e.Code)
	}
	message := fmt.Sprintf(template, e.Args...)

	sev := e.Severity
	if sev == "" {
		sev = SeverityError
	}

	var loc string
	if e.Token.Line > 0 {
		loc = fmt.Sprintf(" at %d:%d", e.Token.Line, e.Token.Column)
	}

	return fmt.Sprintf("[%s] %s%s [%s]: %s", sev, e.Phase, loc, e.Code, message)
}

// NewError builds a fatal DiagnosticError for the given phase.
func NewError(phase Phase, code ErrorCode, tok token.Token, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:     code,
		Phase:    phase,
		Severity: SeverityError,
		Token:    tok,
		Args:     args,
	}
}

// NewWarning builds a non-fatal DiagnosticError.
func NewWarning(phase Phase, code ErrorCode, tok token.Token, args ...interface{}) *DiagnosticError {
	return &DiagnosticError{
		Code:     code,
		Phase:    phase,
		Severity: SeverityWarning,
		Token:    tok,
		Args:     args,
	}
}

// InClass/InFeature set the enclosing class/feature name on the error in
// place and return the same pointer, for callers that want richer context
// without threading it through every constructor call.
func (e *DiagnosticError) InClass(class string) *DiagnosticError {
	e.Class = class
	return e
}

func (e *DiagnosticError) InFeature(feature string) *DiagnosticError {
	e.Feature = feature
	return e
}

// Render writes errs to w, one per line. When w is a terminal (detected
// via go-isatty, the same library the sibling funvibe-funxy evaluator
// uses to decide whether to colorize IO output), fatal errors are rendered in red and
// warnings in yellow.
func Render(w io.Writer, errs []*DiagnosticError) {
	colorize := false
	if f, ok := w.(interface{ Fd() uintptr }); ok {
		colorize = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	var b strings.Builder
	for _, e := range errs {
		line := e.Error()
		if colorize {
			code := "31" // red
			if e.Severity == SeverityWarning {
				code = "33" // yellow
			}
			line = "\x1b[" + code + "m" + line + "\x1b[0m"
		}
		b.WriteString(line)
		b.WriteByte('\n')
	}
	io.WriteString(w, b.String())
}
