// Package driver orchestrates the C-Minus pipeline — lex, parse,
// analyze, generate — behind a handful of entry points a thin cmd/
// package calls into. There's no REPL or persistent session: cminus is
// a single-shot batch pipeline, so each call starts from a fresh
// source.SourceFile and returns once.
package driver

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"cminus/pkg/ast"
	"cminus/pkg/checker"
	"cminus/pkg/codegen"
	"cminus/pkg/errors"
	"cminus/pkg/parser"
	"cminus/pkg/source"
)

// Options configures the optional debug/rendering behavior the CLI's
// debug flags drive.
type Options struct {
	ShowAST      bool // -ast: dump the parsed tree
	TraceAnalyze bool // -trace-analyze: dump the symbol table at each scope close
	Pretty       bool // -pretty: lipgloss-styled error listing (symbol dumps stay plain)
}

// Result is everything one compilation produced: the source it ran
// over (so a listing can quote the offending line), the parsed tree,
// the analyzer that ran over it (nil if parsing failed), the generated
// assembly (empty if any error occurred), and the accumulated errors in
// listing order.
type Result struct {
	Src      *source.SourceFile
	Program  *ast.Node
	Analyzer *checker.Analyzer
	Assembly string
	Errs     []errors.CminusError
}

// OK reports whether the compilation produced no errors at all (the
// only case in which Assembly is populated).
func (r *Result) OK() bool { return len(r.Errs) == 0 }

// Compile runs the full pipeline over src, writing any -ast/-trace-analyze
// debug output to trace as it goes. Code generation is skipped entirely
// once any pass reports an error: a program that fails to compile emits
// no assembly.
func Compile(src *source.SourceFile, opts Options, trace io.Writer) *Result {
	program, perrs := parser.ParseProgram(src)
	if len(perrs) > 0 {
		return &Result{Src: src, Errs: perrs}
	}

	if opts.ShowAST {
		ast.Print(trace, program)
	}

	a := checker.New()
	if opts.TraceAnalyze {
		a.Trace = trace
	}
	errs := a.Analyze(program)
	r := &Result{Src: src, Program: program, Analyzer: a, Errs: errs}
	if len(errs) > 0 {
		return r
	}

	var buf bytes.Buffer
	e := codegen.NewEmitter(&buf, opts.TraceAnalyze)
	g := codegen.NewGenerator(e, a.Table)
	g.Program(program)
	r.Assembly = buf.String()
	return r
}

// CompileFile reads path, appending ".c" when it has no extension, and
// runs Compile over its contents.
func CompileFile(path string, opts Options, trace io.Writer) (*Result, error) {
	if !strings.Contains(filepath.Base(path), ".") {
		path += ".c"
	}
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	src := source.FromFile(path, string(content))
	return Compile(src, opts, trace), nil
}

// OutputPath derives the ".tm" assembly filename from the (possibly
// extension-bearing) input path.
func OutputPath(inputPath string) string {
	base := filepath.Base(inputPath)
	if dot := strings.LastIndex(base, "."); dot >= 0 {
		base = base[:dot]
	}
	return base + ".tm"
}

// RenderListing writes one line per error to w, the plain-text listing
// format when pretty is false, or the lipgloss-styled variant (see
// pretty.go) when true. src, if non-nil, is used to quote the offending
// source line under each diagnostic.
func RenderListing(w io.Writer, errs []errors.CminusError, src *source.SourceFile, pretty bool) {
	if pretty {
		renderListingPretty(w, errs, src)
		return
	}
	errors.Listing(w, errs, sourceLine(src))
}

// sourceLine adapts a possibly-nil SourceFile into the errors.LineFunc
// errors.Listing quotes each diagnostic's source line with.
func sourceLine(src *source.SourceFile) errors.LineFunc {
	if src == nil {
		return nil
	}
	return src.Line
}

// WriteAssembly writes r's generated assembly to path, failing if r
// isn't OK (callers should check r.OK() and render the listing instead).
func WriteAssembly(path string, r *Result) error {
	if !r.OK() {
		return fmt.Errorf("cannot write assembly: compilation has %d error(s)", len(r.Errs))
	}
	return os.WriteFile(path, []byte(r.Assembly), 0o644)
}
