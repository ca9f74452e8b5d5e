package errors

import (
	"fmt"
	"io"
)

// CminusError is implemented by every error the compiler can report:
// four analyzer kinds (Scope, Type, Argument, Semantic) plus SyntaxError
// for the lexer/parser.
type CminusError interface {
	error
	Pos() Position
	Kind() string // "Scope", "Type", "Argument", "Semantic", "Syntax"
	Message() string
}

// SyntaxError is raised by the lexer or parser.
type SyntaxError struct {
	Position
	Msg string
}

func (e *SyntaxError) Error() string {
	return fmt.Sprintf("Syntax error at line %d: %s", e.Line, e.Msg)
}
func (e *SyntaxError) Pos() Position   { return e.Position }
func (e *SyntaxError) Kind() string    { return "Syntax" }
func (e *SyntaxError) Message() string { return e.Msg }

// ScopeError is an undeclared use or a redeclaration in the same scope.
type ScopeError struct {
	Position
	Msg string
}

func (e *ScopeError) Error() string {
	return fmt.Sprintf("Scope Error at line %d: %s", e.Line, e.Msg)
}
func (e *ScopeError) Pos() Position   { return e.Position }
func (e *ScopeError) Kind() string    { return "Scope" }
func (e *ScopeError) Message() string { return e.Msg }

// TypeError covers non-integer operands, assignment mismatches, void
// declarations, and function/array/scalar confusion.
type TypeError struct {
	Position
	Msg string
}

func (e *TypeError) Error() string {
	return fmt.Sprintf("Type error at line %d: %s", e.Line, e.Msg)
}
func (e *TypeError) Pos() Position   { return e.Position }
func (e *TypeError) Kind() string    { return "Type" }
func (e *TypeError) Message() string { return e.Msg }

// ArgumentError covers arity and argument-kind mismatches at a call
// site. Function names the called function, per the listing format
// "Argument error for function F at line N:".
type ArgumentError struct {
	Position
	Function string
	Msg      string
}

func (e *ArgumentError) Error() string {
	return fmt.Sprintf("Argument error for function %s at line %d: %s", e.Function, e.Line, e.Msg)
}
func (e *ArgumentError) Pos() Position   { return e.Position }
func (e *ArgumentError) Kind() string    { return "Argument" }
func (e *ArgumentError) Message() string { return e.Msg }

// SemanticError covers missing/ill-typed main, globals after main, an
// integer function missing a return, and EOF before main.
type SemanticError struct {
	Position
	Msg string
}

func (e *SemanticError) Error() string {
	return fmt.Sprintf("Semantic error at line %d: %s", e.Line, e.Msg)
}
func (e *SemanticError) Pos() Position   { return e.Position }
func (e *SemanticError) Kind() string    { return "Semantic" }
func (e *SemanticError) Message() string { return e.Msg }

// LineFunc returns the 1-based source line n, or "" if unavailable.
// Satisfied by *source.SourceFile.Line; kept as a function type here so
// pkg/errors never has to import pkg/source.
type LineFunc func(n int) string

// Listing writes one line per error to w, one error per line. When line
// is non-nil, each diagnostic is followed by the quoted source line it
// points at (blank lines are suppressed so an out-of-range position
// doesn't print an empty indented line). This is the plain-text
// counterpart to the lipgloss-rendered listing in pkg/driver.
func Listing(w io.Writer, errs []CminusError, line LineFunc) {
	for _, e := range errs {
		fmt.Fprintln(w, e.Error())
		if line == nil {
			continue
		}
		if src := line(e.Pos().Line); src != "" {
			fmt.Fprintf(w, "    %s\n", src)
		}
	}
}
