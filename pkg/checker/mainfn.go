package checker

import "cminus/pkg/ast"

// checkMain walks the top-level declaration list looking for "main" and
// asserts it is well-formed: void return type, a void parameter list,
// and no further global declarations after it.
func (a *Analyzer) checkMain(program *ast.Node) {
	for n := program; n != nil; n = n.Sibling {
		if n.Sub != ast.FunDecl || n.Name != "main" {
			continue
		}
		if n.Type != ast.Void {
			a.semanticErrorf(n, "Return type of function 'main' must be void.")
		} else if n.Child[1] == nil || n.Child[1].Sub != ast.VoidParam {
			a.semanticErrorf(n, "Parameter of function 'main' must be void.")
		} else if n.Sibling != nil {
			a.semanticErrorf(n, "Illegal global definition after function 'main'.")
		}
		return
	}
	last := program.LastSibling()
	if last == nil {
		last = &ast.Node{Line: 0}
	}
	a.semanticErrorf(last, "Reached EOF before find function 'main'.")
}
