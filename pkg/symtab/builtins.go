package symtab

import "cminus/pkg/ast"

// registerBuiltins seeds the two I/O functions every C-Minus program may
// call without declaring: "int input(void)" and "void output(int x)".
// It synthesizes FunDecl/Param tree nodes at line 0 and inserts them
// directly into the global table before any user code is analyzed.
func (t *Table) registerBuiltins() {
	inputDecl := ast.NewNode(ast.DeclK, ast.FunDecl, 0)
	inputDecl.Name = "input"
	inputDecl.Type = ast.Integer
	inputDecl.Child[1] = ast.NewNode(ast.ParamK, ast.VoidParam, 0)
	t.Register(inputDecl, Function, false, ast.Integer)

	outputDecl := ast.NewNode(ast.DeclK, ast.FunDecl, 0)
	outputDecl.Name = "output"
	outputDecl.Type = ast.Void
	param := ast.NewNode(ast.ParamK, ast.VarParam, 0)
	param.Name = "x"
	outputDecl.Child[1] = param
	t.Register(outputDecl, Function, false, ast.Void)
}
