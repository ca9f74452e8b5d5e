package checker

import (
	"cminus/pkg/ast"
	"cminus/pkg/symtab"
	"fmt"
)

// buildSymbols is the preorder walk that inserts declarations into the
// symbol table and resolves every identifier use.
func (a *Analyzer) buildSymbols(n *ast.Node) {
	for t := n; t != nil; t = t.Sibling {
		switch t.Kind {
		case ast.StmtK:
			a.buildStmt(t)
		case ast.ExpK:
			a.buildExp(t)
		case ast.DeclK:
			a.buildDecl(t)
		case ast.ParamK:
			a.buildParam(t)
		}
	}
}

func (a *Analyzer) buildStmt(t *ast.Node) {
	switch t.Sub {
	case ast.Compound:
		scopeOpened := false
		functionScope := true
		if !a.functionJustDeclared {
			a.Table.EnterScope()
			scopeOpened = true
			functionScope = false
		}
		a.functionJustDeclared = false

		a.buildSymbols(t.Child[0])
		a.buildSymbols(t.Child[1])

		if a.Trace != nil {
			if functionScope {
				fmt.Fprintf(a.Trace, "\n** Symbol table for scope of function %s declared at line %d\n",
					a.currentFunction.Name, a.currentFunction.Line)
			} else {
				fmt.Fprintf(a.Trace, "\n** Symbol table for nested scope closed at line %d\n", t.Line)
			}
			a.Table.Print(a.Trace)
		}
		if scopeOpened {
			a.Table.LeaveScope()
		}
	case ast.Selection:
		a.buildSymbols(t.Child[0])
		a.buildSymbols(t.Child[1])
		a.buildSymbols(t.Child[2])
	case ast.Iteration:
		a.buildSymbols(t.Child[0])
		a.buildSymbols(t.Child[1])
	case ast.Return:
		a.buildSymbols(t.Child[0])
	}
}

func (a *Analyzer) buildExp(t *ast.Node) {
	switch t.Sub {
	case ast.Assign:
		a.buildSymbols(t.Child[1])
		a.buildSymbols(t.Child[0])
	case ast.Op:
		a.buildSymbols(t.Child[0])
		a.buildSymbols(t.Child[1])
	case ast.Const:
	case ast.Var:
		sym, err := a.Table.Lookup(t)
		if err != nil {
			a.addErr(err)
			return
		}
		if sym.Class == symtab.Function {
			a.typeErrorf(t, "used a function like a variable")
		} else if a.inArgs == 0 && sym.IsArray {
			a.typeErrorf(t, "used an array like a variable")
		}
	case ast.Arr:
		sym, err := a.Table.Lookup(t)
		if err != nil {
			a.addErr(err)
		} else if !sym.IsArray {
			a.typeErrorf(t, "used a non-array like an array")
		}
		a.buildSymbols(t.Child[0])
	case ast.Call:
		sym, err := a.Table.Lookup(t)
		if err != nil {
			a.addErr(err)
		} else if sym.Class != symtab.Function {
			a.typeErrorf(t, "used a non-function like a function")
		}
		a.inArgs++
		a.buildSymbols(t.Child[0])
		a.inArgs--
	}
}

func (a *Analyzer) buildDecl(t *ast.Node) {
	switch t.Sub {
	case ast.VarDecl:
		if _, err := a.Table.Register(t, a.classFor(), false, t.Child[0].Type); err != nil {
			a.addErr(err)
		}
		a.buildSymbols(t.Child[0])
	case ast.ArrDecl:
		if _, err := a.Table.Register(t, a.classFor(), true, t.Child[0].Type); err != nil {
			a.addErr(err)
		}
		a.buildSymbols(t.Child[0])
		a.buildSymbols(t.Child[1])
	case ast.FunDecl:
		a.currentFunction = t
		if _, err := a.Table.Register(t, symtab.Function, false, t.Child[0].Type); err != nil {
			a.addErr(err)
		}
		a.Table.EnterScope()
		a.Table.SetEnclosingParamCount(symtab.CountParams(t.Child[1]))
		a.buildSymbols(t.Child[0])

		a.Table.SetOffsetCursor(0)
		a.buildSymbols(t.Child[1]) // parameters

		a.Table.SetOffsetCursor(-symtab.WordSize)
		a.Table.ResetFrameFloor(-symtab.WordSize)
		a.functionJustDeclared = true
		a.buildSymbols(t.Child[2]) // body, reusing the function's own scope

		if sym := a.Table.Symbol(t.SymbolID); sym != nil {
			// The code generator computes frameSize = -Memloc; store
			// the raw most-negative offset reached, not its magnitude.
			sym.Memloc = a.Table.FrameFloor()
		}
		a.Table.LeaveScope()
		a.Table.SetEnclosingParamCount(0)
		a.currentFunction = nil
	}
}

func (a *Analyzer) buildParam(t *ast.Node) {
	switch t.Sub {
	case ast.VarParam:
		if _, err := a.Table.Register(t, symtab.Parameter, false, t.Child[0].Type); err != nil {
			a.addErr(err)
		}
		a.buildSymbols(t.Child[0])
	case ast.ArrParam:
		if _, err := a.Table.Register(t, symtab.Parameter, true, t.Child[0].Type); err != nil {
			a.addErr(err)
		}
		a.buildSymbols(t.Child[0])
	case ast.VoidParam:
	}
}
