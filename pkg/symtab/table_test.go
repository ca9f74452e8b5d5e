package symtab

import (
	"cminus/pkg/ast"
	"testing"
)

func declNode(sub ast.SubKind, name string, line int) *ast.Node {
	n := ast.NewNode(ast.DeclK, sub, line)
	n.Name = name
	return n
}

func TestBuiltinsRegistered(t *testing.T) {
	tbl := NewTable()
	use := ast.NewNode(ast.ExpK, ast.Call, 5)
	use.Name = "output"
	sym, err := tbl.Lookup(use)
	if err != nil {
		t.Fatalf("expected output to resolve, got %v", err)
	}
	if sym.Class != Function || sym.Size != 1 {
		t.Fatalf("expected output/1, got %+v", sym)
	}
}

func TestRedeclarationInSameScopeFails(t *testing.T) {
	tbl := NewTable()
	x := declNode(ast.VarDecl, "x", 3)
	if _, err := tbl.Register(x, Global, false, ast.Integer); err != nil {
		t.Fatalf("first declaration should succeed: %v", err)
	}
	x2 := declNode(ast.VarDecl, "x", 4)
	if _, err := tbl.Register(x2, Global, false, ast.Integer); err == nil {
		t.Fatalf("expected a ScopeError for redeclaring x")
	}
}

func TestShadowingInNestedScopeSucceeds(t *testing.T) {
	tbl := NewTable()
	x := declNode(ast.VarDecl, "x", 1)
	tbl.Register(x, Global, false, ast.Integer)

	tbl.EnterScope()
	tbl.SetOffsetCursor(-4)
	inner := declNode(ast.VarDecl, "x", 2)
	if _, err := tbl.Register(inner, Local, false, ast.Integer); err != nil {
		t.Fatalf("shadowing an outer x should succeed: %v", err)
	}
	tbl.LeaveScope()

	use := ast.NewNode(ast.ExpK, ast.Var, 5)
	use.Name = "x"
	sym, err := tbl.Lookup(use)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if sym.Class != Global {
		t.Fatalf("expected the outer global x to resolve after LeaveScope, got %+v", sym)
	}
}

func TestUndeclaredUseFails(t *testing.T) {
	tbl := NewTable()
	use := ast.NewNode(ast.ExpK, ast.Var, 9)
	use.Name = "y"
	if _, err := tbl.Lookup(use); err == nil {
		t.Fatalf("expected a ScopeError for undeclared y")
	} else if err.Error() != "Scope Error at line 9: Variable y used without declaration" {
		t.Fatalf("unexpected message: %s", err.Error())
	}
}

func TestLocalArrayMemlocIsArrayBase(t *testing.T) {
	tbl := NewTable()
	tbl.EnterScope()
	tbl.SetOffsetCursor(-4)
	n := declNode(ast.ArrDecl, "a", 1)
	n.Child[1] = &ast.Node{Kind: ast.ExpK, Sub: ast.Const, Val: 5}
	sym, err := tbl.Register(n, Local, true, ast.Integer)
	if err != nil {
		t.Fatalf("unexpected: %v", err)
	}
	if sym.Memloc != -20 {
		t.Fatalf("expected array base memloc -20, got %d", sym.Memloc)
	}
	if tbl.OffsetCursor() != -24 {
		t.Fatalf("expected cursor advanced to -24, got %d", tbl.OffsetCursor())
	}
}

func TestParameterRegistration(t *testing.T) {
	tbl := NewTable()
	tbl.EnterScope()
	tbl.SetOffsetCursor(0)
	names := []string{"a", "b", "c", "d", "e"}
	var syms []*Symbol
	for i, name := range names {
		p := declNode(ast.VarParam, name, 1)
		sym, err := tbl.Register(p, Parameter, false, ast.Integer)
		if err != nil {
			t.Fatalf("param %d: %v", i, err)
		}
		syms = append(syms, sym)
	}
	for i := 0; i < 4; i++ {
		if !syms[i].IsRegisteredArgument || syms[i].Memloc != i {
			t.Fatalf("param %d should be register arg %d, got %+v", i, i, syms[i])
		}
	}
	if syms[4].IsRegisteredArgument || syms[4].Memloc != 0 {
		t.Fatalf("5th param should be stack-passed at offset 0, got %+v", syms[4])
	}
}
