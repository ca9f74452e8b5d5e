package checker

import "cminus/pkg/ast"

// checkArguments checks a call's arguments against the called function's
// declared parameters: arity and per-argument kind compatibility. Each
// argument's kind mismatch is reported against the argument's own
// resolved symbol, not the parameter it's being checked against.
func (a *Analyzer) checkArguments(function, call *ast.Node) {
	params := function.Child[1]
	args := call.Child[0]

	if params != nil && params.Sub == ast.VoidParam {
		if args != nil {
			a.argumentErrorf(function.Name, args, "This function does not take arguments.")
		}
		return
	}

	counterParams, counterArgs := 0, 0
	if params != nil {
		counterParams++
	}
	if args != nil {
		counterArgs++
	}

	for params != nil && args != nil {
		switch params.Sub {
		case ast.VoidParam:
			a.argumentErrorf(function.Name, args, "This function does not take arguments.")
			return
		case ast.VarParam:
			switch args.Sub {
			case ast.Var:
				if sym := a.Table.Symbol(args.SymbolID); sym != nil && sym.IsArray {
					a.argumentErrorf(function.Name, args, "Expected integer for argument %d, but received array.", counterArgs)
					return
				}
			case ast.Call:
				if sym := a.Table.Symbol(args.SymbolID); sym != nil && sym.Type != ast.Integer {
					a.argumentErrorf(function.Name, args, "Expected integer for argument %d, but received void function call.", counterArgs)
					return
				}
			}
		case ast.ArrParam:
			if args.Sub != ast.Var {
				a.argumentErrorf(function.Name, args, "Expected array for argument %d, but received something else.", counterArgs)
				return
			}
			if sym := a.Table.Symbol(args.SymbolID); sym != nil && !sym.IsArray {
				a.argumentErrorf(function.Name, args, "Expected array for argument %d, but received variable.", counterArgs)
				return
			}
		}

		params = params.Sibling
		args = args.Sibling
		if params != nil {
			counterParams++
		}
		if args != nil {
			counterArgs++
		}
	}

	if params == nil && args != nil {
		for extra := args.Sibling; extra != nil; extra = extra.Sibling {
			counterArgs++
		}
		a.argumentErrorf(function.Name, call, "Too many arguments. %d expected, %d given.", counterParams, counterArgs)
		return
	}
	if params != nil && args == nil {
		for extra := params.Sibling; extra != nil; extra = extra.Sibling {
			counterParams++
		}
		a.argumentErrorf(function.Name, call, "Too few arguments. %d expected, %d given.", counterParams, counterArgs)
		return
	}
}
