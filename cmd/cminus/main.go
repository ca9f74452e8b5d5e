// Command cminus compiles a single C-Minus source file to SPIM-style
// MIPS assembly: a stdlib flag set, no config framework, one
// positional argument.
package main

import (
	"flag"
	"fmt"
	"os"

	"cminus/pkg/driver"
)

func main() {
	astFlag := flag.Bool("ast", false, "dump the parsed tree")
	traceFlag := flag.Bool("trace-analyze", false, "dump the symbol table at each scope close")
	prettyFlag := flag.Bool("pretty", false, "render the error listing with lipgloss styling")
	flag.Parse()

	if flag.NArg() != 1 {
		fmt.Fprintf(os.Stderr, "Usage: cminus [-ast] [-trace-analyze] [-pretty] <input>\n")
		os.Exit(64)
	}
	args := flag.Args()

	opts := driver.Options{ShowAST: *astFlag, TraceAnalyze: *traceFlag, Pretty: *prettyFlag}
	r, err := driver.CompileFile(args[0], opts, os.Stdout)
	if err != nil {
		fmt.Fprintf(os.Stderr, "cminus: %s\n", err)
		os.Exit(1)
	}

	if !r.OK() {
		driver.RenderListing(os.Stdout, r.Errs, r.Src, opts.Pretty)
		return
	}

	outPath := driver.OutputPath(args[0])
	if err := driver.WriteAssembly(outPath, r); err != nil {
		fmt.Fprintf(os.Stderr, "cminus: %s\n", err)
		os.Exit(1)
	}
}
