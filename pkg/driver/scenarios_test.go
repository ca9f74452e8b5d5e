package driver

import (
	"bytes"
	"strings"
	"testing"

	"cminus/pkg/source"
)

// End-to-end scenarios and negative cases covering the full compiler
// pipeline. Without a SPIM-style simulator in this module these assert
// the generated assembly's structure rather than its simulated output;
// two of the fixtures are the classic min/max and even-count C-Minus
// sample programs.

func compileOK(t *testing.T, src string) *Result {
	t.Helper()
	r := Compile(source.NewSourceFile("t.c-", "", src), Options{}, &bytes.Buffer{})
	if !r.OK() {
		t.Fatalf("unexpected errors compiling %q: %v", src, r.Errs)
	}
	return r
}

func TestScenarioMinimalOutput(t *testing.T) {
	r := compileOK(t, `void main(void){ output(42); }`)
	if !strings.Contains(r.Assembly, "li $v0, 42") {
		t.Fatalf("expected constant 42 loaded into V, got:\n%s", r.Assembly)
	}
}

func TestScenarioArithmeticPrecedenceViaParens(t *testing.T) {
	r := compileOK(t, `void main(void){ output((1+2)*3); }`)
	if !strings.Contains(r.Assembly, "add") || !strings.Contains(r.Assembly, "mul") {
		t.Fatalf("expected both add and mul opcodes, got:\n%s", r.Assembly)
	}
}

func TestScenarioWhileLoop(t *testing.T) {
	r := compileOK(t, `void main(void){ int i; i=0; while(i<3){ output(i); i=i+1; } }`)
	if !strings.Contains(r.Assembly, "beqz") {
		t.Fatalf("expected a beqz loop-exit branch, got:\n%s", r.Assembly)
	}
}

func TestScenarioFunctionCallWithArray(t *testing.T) {
	const test1 = `
int min(int a, int b) {
    if (a < b) { return a; }
    return b;
}
int max(int a, int b) {
    if (a > b) { return a; }
    return b;
}
void read(int a[], int n) {
    int i;
    i = 0;
    while (i < n) {
        a[i] = input();
        i = i + 1;
    }
}
void main(void) {
    int x[5];
    int i;
    int maximum;
    int minimum;
    read(x, 5);
    maximum = 0;
    minimum = 2147483647;
    i = 0;
    while (i < 5) {
        minimum = min(minimum, x[i]);
        maximum = max(maximum, x[i]);
        i = i + 1;
    }
    output(minimum);
    output(maximum);
}`
	r := compileOK(t, test1)
	if !strings.Contains(r.Assembly, "min:") || !strings.Contains(r.Assembly, "max:") || !strings.Contains(r.Assembly, "read:") {
		t.Fatalf("expected min/max/read function labels, got:\n%s", r.Assembly)
	}
	if !strings.Contains(r.Assembly, "jal min") || !strings.Contains(r.Assembly, "jal max") || !strings.Contains(r.Assembly, "jal read") {
		t.Fatalf("expected calls to min/max/read, got:\n%s", r.Assembly)
	}
}

func TestScenarioEvenCount(t *testing.T) {
	const test2 = `
int mod(int a, int b) {
    return a - a / b * b;
}
void read(int a[], int n) {
    int i;
    i = 0;
    while (i < n) {
        a[i] = input();
        i = i + 1;
    }
}
void main(void) {
    int x[5];
    int i;
    int count;
    read(x, 5);
    count = 0;
    i = 0;
    while (i < 5) {
        if (mod(x[i], 2) == 0) {
            count = count + 1;
        }
        i = i + 1;
    }
    output(count);
}`
	r := compileOK(t, test2)
	if !strings.Contains(r.Assembly, "div") {
		t.Fatalf("expected a div instruction from mod's a/b, got:\n%s", r.Assembly)
	}
	if !strings.Contains(r.Assembly, "seq") {
		t.Fatalf("expected seq from the == comparison, got:\n%s", r.Assembly)
	}
}

func TestScenarioScopeShadowing(t *testing.T) {
	var trace bytes.Buffer
	src := source.NewSourceFile("t.c-", "", `
int x;
void main(void) {
    int x;
    x = 1;
}`)
	r := Compile(src, Options{TraceAnalyze: true}, &trace)
	if !r.OK() {
		t.Fatalf("unexpected errors: %v", r.Errs)
	}
	if !strings.Contains(trace.String(), "function main") {
		t.Fatalf("expected a function-scope symbol dump for main, got:\n%s", trace.String())
	}
}

func TestNegativeUndeclaredVariable(t *testing.T) {
	r := Compile(source.NewSourceFile("t.c-", "", `void main(void){ y = 1; }`), Options{}, &bytes.Buffer{})
	if r.OK() {
		t.Fatalf("expected a scope error")
	}
	if !strings.Contains(r.Errs[0].Error(), "used without declaration") {
		t.Fatalf("unexpected error: %v", r.Errs[0])
	}
}

func TestNegativeAssignVoidCallToInt(t *testing.T) {
	r := Compile(source.NewSourceFile("t.c-", "", `int v; void main(void){ v = output(1); }`), Options{}, &bytes.Buffer{})
	if r.OK() {
		t.Fatalf("expected a type error")
	}
}

func TestNegativeRedeclarationInSameScope(t *testing.T) {
	r := Compile(source.NewSourceFile("t.c-", "", `int x; int x; void main(void){ }`), Options{}, &bytes.Buffer{})
	if r.OK() {
		t.Fatalf("expected a scope error for redeclaring x")
	}
}

func TestNegativeMissingReturn(t *testing.T) {
	r := Compile(source.NewSourceFile("t.c-", "", `int f(void){ } void main(void){ }`), Options{}, &bytes.Buffer{})
	if r.OK() {
		t.Fatalf("expected a semantic error for the missing return")
	}
}

func TestNegativeMainMustReturnVoid(t *testing.T) {
	r := Compile(source.NewSourceFile("t.c-", "", `int main(void){ return 0; }`), Options{}, &bytes.Buffer{})
	if r.OK() {
		t.Fatalf("expected a semantic error: main must be void")
	}
}
