// Package evalerr defines the closed error taxonomy (spec §7) produced by
// every layer of the hierarchical evaluator. Modeled on the teacher repo's
// category-tagged InterpreterError (internal/interp/errors.InterpreterError,
// with its ErrorCategory discriminator): a single concrete type carrying a
// Kind discriminator instead of ad-hoc sentinel errors or per-package string
// errors.
package evalerr

import (
	"fmt"
)

// Kind is the closed taxonomy from spec §7.
type Kind string

const (
	ExpressionSyntax Kind = "ExpressionSyntax"
	NotFound         Kind = "NotFound"
	PathOverreach    Kind = "PathOverreach"
	DependencyCycle  Kind = "DependencyCycle"
	TypeMismatch     Kind = "TypeMismatch"
	DivisionByZero   Kind = "DivisionByZero"
	UnknownFunction  Kind = "UnknownFunction"
	UnknownSeries    Kind = "UnknownSeries"
	IndexOutOfBounds Kind = "IndexOutOfBounds"
	SolverEvalError  Kind = "SolverEvalError"
	NoSolution       Kind = "NoSolution"
	SolverTooLarge   Kind = "SolverTooLarge"
	DuplicateAttr    Kind = "DuplicateAttribute"
	NamespaceCollide Kind = "NamespaceCollision"
)

// Error is the single concrete error type for the evaluator core. Path and
// Identifier identify the offending location when known; Inner carries the
// wrapped cause for SolverEvalError (and, more generally, any error that
// wraps another).
type Error struct {
	Kind       Kind
	Message    string
	Path       string
	Identifier string
	Divisor    string // set for DivisionByZero, the offending divisor's textual value
	Inner      error
}

func (e *Error) Error() string {
	loc := ""
	switch {
	case e.Path != "":
		loc = fmt.Sprintf(" at %q", e.Path)
	case e.Identifier != "":
		loc = fmt.Sprintf(" for %q", e.Identifier)
	}

	msg := e.Message
	if msg == "" {
		msg = string(e.Kind)
	}

	if e.Inner != nil {
		return fmt.Sprintf("%s%s: %s: %v", e.Kind, loc, msg, e.Inner)
	}
	return fmt.Sprintf("%s%s: %s", e.Kind, loc, msg)
}

// Unwrap exposes the wrapped cause, if any, to errors.Is/errors.As.
func (e *Error) Unwrap() error { return e.Inner }

// New builds a Kind-tagged error with a formatted message.
func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// AtPath attaches the offending resolved path to an error for context.
func AtPath(kind Kind, path, format string, args ...any) *Error {
	return &Error{Kind: kind, Path: path, Message: fmt.Sprintf(format, args...)}
}

// AtIdentifier attaches the offending free-variable identifier to an error.
func AtIdentifier(kind Kind, identifier, format string, args ...any) *Error {
	return &Error{Kind: kind, Identifier: identifier, Message: fmt.Sprintf(format, args...)}
}

// Wrap produces a SolverEvalError carrying inner as its cause, per spec §4.8
// step 4 ("any other evaluation error is fatal and must propagate (as
// SolverEvalError, carrying the inner error)").
func Wrap(inner error) *Error {
	return &Error{Kind: SolverEvalError, Message: "voltage divider candidate evaluation failed", Inner: inner}
}

// DivByZero builds the DivisionByZero error carrying the divisor's textual
// value, as spec §4.1 requires ("a DivisionByZero error containing the
// divisor Value").
func DivByZero(divisor string) *Error {
	return &Error{Kind: DivisionByZero, Message: "division by zero", Divisor: divisor}
}

// Is reports whether err (or any error it wraps) carries the given Kind.
func Is(err error, kind Kind) bool {
	for err != nil {
		if e, ok := err.(*Error); ok {
			if e.Kind == kind {
				return true
			}
			err = e.Inner
			continue
		}
		return false
	}
	return false
}
