// Package checker implements the C-Minus two-pass semantic analyzer: a
// preorder walk that builds the symbol table and a postorder walk that
// type-checks and annotates every expression. State that would
// otherwise live as file-scope statics — the current function under
// analysis, the function-just-declared flag, the call-argument depth —
// are instead fields on the Analyzer object.
package checker

import (
	"cminus/pkg/ast"
	"cminus/pkg/errors"
	"cminus/pkg/symtab"
	"fmt"
	"io"
)

// Analyzer runs both passes over a parsed program and accumulates
// CminusErrors in listing order.
type Analyzer struct {
	Table *symtab.Table

	// Trace, when non-nil, receives a symbol-table dump at every scope
	// close during the build pass (the -trace-analyze debug flag).
	Trace io.Writer

	errs []errors.CminusError

	functionJustDeclared bool
	inArgs               int
	currentFunction      *ast.Node
	sawReturn            bool
}

// New creates an Analyzer with a fresh symbol table (input/output
// already registered).
func New() *Analyzer {
	return &Analyzer{Table: symtab.NewTable()}
}

// Analyze runs the full two-pass analysis over program (the sibling
// chain of top-level declarations ParseProgram returns) and returns
// every error found: build errors first, then type errors, then the
// main-function check.
func (a *Analyzer) Analyze(program *ast.Node) []errors.CminusError {
	a.buildSymbols(program)
	a.typeCheck(program)
	a.checkMain(program)
	return a.errs
}

func (a *Analyzer) addErr(e errors.CminusError) {
	if e != nil {
		a.errs = append(a.errs, e)
	}
}

func (a *Analyzer) typeErrorf(n *ast.Node, format string, args ...interface{}) {
	a.addErr(&errors.TypeError{Position: errors.Position{Line: n.Line}, Msg: fmt.Sprintf(format, args...)})
}

func (a *Analyzer) semanticErrorf(n *ast.Node, format string, args ...interface{}) {
	a.addErr(&errors.SemanticError{Position: errors.Position{Line: n.Line}, Msg: fmt.Sprintf(format, args...)})
}

func (a *Analyzer) argumentErrorf(fn string, n *ast.Node, format string, args ...interface{}) {
	a.addErr(&errors.ArgumentError{Position: errors.Position{Line: n.Line}, Function: fn, Msg: fmt.Sprintf(format, args...)})
}

// classFor returns the declaration class a var/array declaration gets at
// the current nesting depth.
func (a *Analyzer) classFor() symtab.SymbolClass {
	if a.Table.IsGlobal() {
		return symtab.Global
	}
	return symtab.Local
}
