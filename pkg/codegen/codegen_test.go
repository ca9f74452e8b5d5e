package codegen

import (
	"bytes"
	"strings"
	"testing"

	"cminus/pkg/checker"
	"cminus/pkg/parser"
	"cminus/pkg/source"
)

func generate(t *testing.T, src string) string {
	t.Helper()
	prog, perrs := parser.ParseProgram(source.NewSourceFile("t.c-", "", src))
	if len(perrs) != 0 {
		t.Fatalf("unexpected parse errors: %v", perrs)
	}
	a := checker.New()
	if errs := a.Analyze(prog); len(errs) != 0 {
		t.Fatalf("unexpected analysis errors: %v", errs)
	}
	var buf bytes.Buffer
	e := NewEmitter(&buf, false)
	g := NewGenerator(e, a.Table)
	g.Program(prog)
	return buf.String()
}

func TestGlobalVariableGetsUnderscorePrefixedLabel(t *testing.T) {
	out := generate(t, `
		int x;
		void main(void) { x = 1; }
	`)
	if !strings.Contains(out, "_x:") {
		t.Fatalf("expected a _x: data label, got:\n%s", out)
	}
	if !strings.Contains(out, ".space 4") {
		t.Fatalf("expected a 4-byte reservation for the scalar global, got:\n%s", out)
	}
}

func TestGlobalArrayReservesElementCount(t *testing.T) {
	out := generate(t, `
		int a[10];
		void main(void) { a[0] = 1; }
	`)
	if !strings.Contains(out, "_a:") || !strings.Contains(out, ".space 40") {
		t.Fatalf("expected a 40-byte reservation for a 10-element array, got:\n%s", out)
	}
}

func TestFunctionLabelHasNoPrefix(t *testing.T) {
	out := generate(t, `
		int f(int a) { return a; }
		void main(void) { f(1); }
	`)
	if !strings.Contains(out, "f:") {
		t.Fatalf("expected a bare f: label, got:\n%s", out)
	}
	if strings.Contains(out, "_f:") {
		t.Fatalf("function labels must not carry the global-variable underscore prefix, got:\n%s", out)
	}
}

func TestMainGetsGloblDirectiveAndBareLabel(t *testing.T) {
	out := generate(t, `void main(void) { }`)
	if !strings.Contains(out, ".globl main") || !strings.Contains(out, "main:") {
		t.Fatalf("expected .globl main and a main: label, got:\n%s", out)
	}
}

func TestProgramEndsWithExitSyscall(t *testing.T) {
	out := generate(t, `void main(void) { }`)
	lines := strings.Split(strings.TrimRight(out, "\n"), "\n")
	last := lines[len(lines)-1]
	if last != "syscall" {
		t.Fatalf("expected the program to end with a bare syscall, got %q", last)
	}
	found := false
	for _, l := range lines {
		if strings.TrimSpace(l) == "li $v0, 10" {
			found = true
		}
	}
	if !found {
		t.Fatalf("expected an exit syscall code (li $v0, 10), got:\n%s", out)
	}
}

func TestArithmeticEmitsExpectedOpcodes(t *testing.T) {
	out := generate(t, `
		void main(void) { int x; x = 1 + 2 * 3; }
	`)
	if !strings.Contains(out, "mul") || !strings.Contains(out, "add") {
		t.Fatalf("expected both mul and add in arithmetic codegen, got:\n%s", out)
	}
}

func TestComparisonUsesStandardSPIMMnemonics(t *testing.T) {
	out := generate(t, `
		void main(void) { int x; if (x <= 1) { x = 1; } if (x >= 1) { x = 2; } }
	`)
	if !strings.Contains(out, "sle") || !strings.Contains(out, "sge") {
		t.Fatalf("expected sle/sge comparison opcodes, got:\n%s", out)
	}
	if strings.Contains(out, "slte") || strings.Contains(out, "sgte") {
		t.Fatalf("must not emit the original's non-standard slte/sgte mnemonics, got:\n%s", out)
	}
}

func TestDivisionSavesAndRestoresLO(t *testing.T) {
	out := generate(t, `
		void main(void) { int x; x = 10 / 2; }
	`)
	if !strings.Contains(out, "div") || !strings.Contains(out, "mflo") || !strings.Contains(out, "mtlo") {
		t.Fatalf("expected div/mflo/mtlo sequence for division, got:\n%s", out)
	}
}

func TestWhileLoopBranchesBackToConditionLabel(t *testing.T) {
	out := generate(t, `
		void main(void) { int x; while (x) { x = 0; } }
	`)
	if strings.Count(out, "L") < 2 {
		t.Fatalf("expected at least two generated labels for a while loop, got:\n%s", out)
	}
	// main's return label is L0, so the loop's condition label is L1.
	if !strings.Contains(out, "L1:") || !strings.Contains(out, "b L1") {
		t.Fatalf("expected the loop to branch back to its condition label L1, got:\n%s", out)
	}
}

func TestFunctionCallUsesArgumentRegister(t *testing.T) {
	out := generate(t, `
		int f(int a) { return a; }
		void main(void) { f(7); }
	`)
	if !strings.Contains(out, "jal f") {
		t.Fatalf("expected a jal f call instruction, got:\n%s", out)
	}
	if !strings.Contains(out, "$a0") {
		t.Fatalf("expected the sole argument to travel through $a0, got:\n%s", out)
	}
}

// A 5-argument call spills its 5th argument to the stack. The caller
// must reserve that slot with a single subu and fill it by direct
// offset, and must never push $fp/$ra itself — that's the callee's own
// prologue's job, and doing it twice shifts every spilled argument one
// push-pair away from where the callee reads it.
func TestFiveArgumentCallSpillsAndReadsBackAtCalleeFrameOffset(t *testing.T) {
	out := generate(t, `
		int f(int a, int b, int c, int d, int e) { return e; }
		void main(void) { f(1, 2, 3, 4, 5); }
	`)
	if !strings.Contains(out, "jal f") {
		t.Fatalf("expected a jal f call instruction, got:\n%s", out)
	}
	if !strings.Contains(out, "subu $sp, $sp, 4") {
		t.Fatalf("expected the caller to reserve exactly one spill word with subu, got:\n%s", out)
	}
	if !strings.Contains(out, "sw $v0, 0($sp)") {
		t.Fatalf("expected the 5th argument stored at offset 0 of the spill region, got:\n%s", out)
	}
	if !strings.Contains(out, "addiu $sp, $sp, 4") {
		t.Fatalf("expected the caller to deallocate the spill region after the call, got:\n%s", out)
	}

	mainPrologue := "move $fp, $sp"
	bodyStart := strings.Index(out, mainPrologue)
	jalIdx := strings.Index(out, "jal f")
	if bodyStart < 0 || jalIdx < 0 || jalIdx < bodyStart {
		t.Fatalf("expected main's prologue followed later by jal f, got:\n%s", out)
	}
	callSite := out[bodyStart+len(mainPrologue) : jalIdx]
	if strings.Contains(callSite, "$fp") || strings.Contains(callSite, "$ra") {
		t.Fatalf("caller must not touch $fp/$ra before jal — that's the callee's own prologue's job, got call site:\n%s", callSite)
	}

	if !strings.Contains(out, "f:") {
		t.Fatalf("expected an f: function label, got:\n%s", out)
	}
	body := out[strings.Index(out, "f:"):]
	if !strings.Contains(body, "addiu $t0, $fp, 0") {
		t.Fatalf("expected the callee to read its 5th (spilled) parameter at offset 0 of FP, got:\n%s", body)
	}
}
