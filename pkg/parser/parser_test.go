package parser

import (
	"cminus/pkg/ast"
	"cminus/pkg/source"
	"testing"
)

func parse(t *testing.T, src string) *ast.Node {
	t.Helper()
	prog, errs := ParseProgram(source.NewSourceFile("t.c-", "", src))
	if len(errs) != 0 {
		t.Fatalf("unexpected parse errors: %v", errs)
	}
	return prog
}

func TestParseMinimalMain(t *testing.T) {
	prog := parse(t, `void main(void) { }`)
	if prog == nil || prog.Sub != ast.FunDecl || prog.Name != "main" {
		t.Fatalf("expected a single FunDecl 'main', got %+v", prog)
	}
	if prog.Child[1].Sub != ast.VoidParam {
		t.Fatalf("expected VoidParam, got %+v", prog.Child[1])
	}
	if prog.Sibling != nil {
		t.Fatalf("expected no further top-level declarations")
	}
}

func TestParseGlobalsAndArrayDecl(t *testing.T) {
	prog := parse(t, `int x; int a[10]; void main(void) { }`)
	if prog.Sub != ast.VarDecl || prog.Name != "x" {
		t.Fatalf("expected VarDecl 'x', got %+v", prog)
	}
	arr := prog.Sibling
	if arr.Sub != ast.ArrDecl || arr.Name != "a" || arr.Child[1].Val != 10 {
		t.Fatalf("expected ArrDecl 'a' of size 10, got %+v", arr)
	}
}

func TestParseExpressionPrecedence(t *testing.T) {
	prog := parse(t, `void main(void) { int x; x = 1 + 2 * 3; }`)
	body := prog.Child[2]
	assign := body.Child[1] // statement list: just the assignment
	if assign.Sub != ast.Assign {
		t.Fatalf("expected Assign statement, got %+v", assign)
	}
	rhs := assign.Child[1]
	if rhs.Sub != ast.Op || rhs.Op != "+" {
		t.Fatalf("expected top-level '+' op, got %+v", rhs)
	}
	if rhs.Child[1].Op != "*" {
		t.Fatalf("expected '*' to bind tighter than '+', got %+v", rhs.Child[1])
	}
}

func TestParseIfElseAndWhile(t *testing.T) {
	prog := parse(t, `void main(void) {
		int i;
		i = 0;
		while (i < 3) {
			if (i == 1) { i = i + 1; } else { i = i + 2; }
		}
	}`)
	stmts := prog.Child[2].Child[1]
	// stmts: assign(i=0) -> while
	whileStmt := stmts.Sibling
	if whileStmt.Sub != ast.Iteration {
		t.Fatalf("expected Iteration, got %+v", whileStmt)
	}
	ifStmt := whileStmt.Child[1].Child[1]
	if ifStmt.Sub != ast.Selection || ifStmt.Child[2] == nil {
		t.Fatalf("expected Selection with an else branch, got %+v", ifStmt)
	}
}

func TestParseCallWithArguments(t *testing.T) {
	prog := parse(t, `void main(void) { int a[5]; output(min(a[0], 1)); }`)
	call := prog.Child[2].Child[1]
	if call.Sub != ast.Call || call.Name != "output" {
		t.Fatalf("expected Call 'output', got %+v", call)
	}
	inner := call.Child[0]
	if inner.Sub != ast.Call || inner.Name != "min" {
		t.Fatalf("expected nested Call 'min', got %+v", inner)
	}
	if inner.Child[0].Sub != ast.Arr || inner.Child[0].Sibling.Val != 1 {
		t.Fatalf("expected args (a[0], 1), got %+v", inner.Child[0])
	}
}

func TestParseErrorRecoveryContinuesCollectingErrors(t *testing.T) {
	_, errs := ParseProgram(source.NewSourceFile("t.c-", "", `int 5; void main(void) { }`))
	if len(errs) == 0 {
		t.Fatalf("expected a syntax error for 'int 5;'")
	}
}
