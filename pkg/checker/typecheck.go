package checker

import "cminus/pkg/ast"

// typeCheck is the postorder walk that assigns each expression's Type
// and reports type mismatches.
func (a *Analyzer) typeCheck(n *ast.Node) {
	for t := n; t != nil; t = t.Sibling {
		switch t.Kind {
		case ast.StmtK:
			a.typeCheckStmt(t)
		case ast.ExpK:
			a.typeCheckExp(t)
		case ast.DeclK:
			a.typeCheckDecl(t)
		case ast.ParamK:
			a.typeCheckParam(t)
		}
	}
}

func (a *Analyzer) typeCheckStmt(t *ast.Node) {
	switch t.Sub {
	case ast.Compound:
		a.typeCheck(t.Child[0])
		a.typeCheck(t.Child[1])
	case ast.Selection:
		a.typeCheck(t.Child[0])
		a.typeCheck(t.Child[1])
		a.typeCheck(t.Child[2])
		if t.Child[0].Type != ast.Integer {
			a.typeErrorf(t.Child[0], "If-condition is not int")
		}
	case ast.Iteration:
		a.typeCheck(t.Child[0])
		a.typeCheck(t.Child[1])
		if t.Child[0].Type != ast.Integer {
			a.typeErrorf(t.Child[0], "While-condition is not int")
		}
	case ast.Return:
		a.sawReturn = true
		a.typeCheck(t.Child[0])
		retType := ast.Void
		if t.Child[0] != nil {
			retType = t.Child[0].Type
		}
		if a.currentFunction != nil && retType != a.currentFunction.Type {
			if t.Child[0] != nil {
				a.typeErrorf(t.Child[0], "Return value does not match function type")
			} else {
				a.typeErrorf(t, "Return value does not match function type")
			}
		}
	}
}

func (a *Analyzer) typeCheckExp(t *ast.Node) {
	switch t.Sub {
	case ast.Assign:
		a.typeCheck(t.Child[0])
		a.typeCheck(t.Child[1])
		if t.Child[0].Type != t.Child[1].Type {
			a.typeErrorf(t.Child[1], "Assign type does not match")
		}
		t.Type = t.Child[0].Type
	case ast.Op:
		a.typeCheck(t.Child[0])
		a.typeCheck(t.Child[1])
		if t.Child[0].Type != ast.Integer || t.Child[1].Type != ast.Integer {
			a.typeErrorf(t, "Op applied to non-integer")
		}
		t.Type = ast.Integer
	case ast.Const:
		t.Type = ast.Integer
	case ast.Var:
		if sym := a.Table.Symbol(t.SymbolID); sym != nil {
			t.Type = sym.Type
		} else {
			// Already reported as a scope error; typed as int so the
			// undeclared name does not cascade into further type errors.
			t.Type = ast.Integer
		}
	case ast.Arr:
		a.typeCheck(t.Child[0])
		if t.Child[0].Type != ast.Integer {
			a.typeErrorf(t, "Array index is not integer")
		}
		if sym := a.Table.Symbol(t.SymbolID); sym != nil {
			t.Type = sym.Type
		}
	case ast.Call:
		a.typeCheck(t.Child[0])
		sym := a.Table.Symbol(t.SymbolID)
		if sym == nil {
			return
		}
		t.Type = sym.Type
		a.checkArguments(sym.Decl, t)
	}
}

func (a *Analyzer) typeCheckDecl(t *ast.Node) {
	switch t.Sub {
	case ast.VarDecl:
		a.typeCheck(t.Child[0])
		if t.Child[0].Type == ast.Void {
			a.typeErrorf(t, "Invalid variable declaration of type void")
		}
	case ast.ArrDecl:
		a.typeCheck(t.Child[0])
		if t.Child[0].Type == ast.Void {
			a.typeErrorf(t, "Invalid array declaration of type void")
		}
		a.typeCheck(t.Child[1])
	case ast.FunDecl:
		a.currentFunction = t
		prevSawReturn := a.sawReturn
		a.sawReturn = false

		a.typeCheck(t.Child[0])
		t.Type = t.Child[0].Type
		a.typeCheck(t.Child[1])
		a.typeCheck(t.Child[2])

		if t.Type == ast.Integer && !a.sawReturn {
			a.semanticErrorf(t, "integer function missing return")
		}
		a.sawReturn = prevSawReturn
		a.currentFunction = nil
	}
}

func (a *Analyzer) typeCheckParam(t *ast.Node) {
	switch t.Sub {
	case ast.VarParam:
		a.typeCheck(t.Child[0])
		if t.Child[0].Type == ast.Void {
			a.typeErrorf(t, "Invalid parameter of type void")
		}
	case ast.ArrParam:
		a.typeCheck(t.Child[0])
		if t.Child[0].Type == ast.Void {
			a.typeErrorf(t, "Invalid array parameter of type void")
		}
	case ast.VoidParam:
	}
}
