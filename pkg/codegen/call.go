package codegen

import (
	"cminus/pkg/ast"
	"cminus/pkg/symtab"
)

// genCall emits a function call. input/output are the two built-ins
// with a fixed syscall sequence; every other call goes through the
// general calling sequence.
func (g *Generator) genCall(n *ast.Node) {
	switch n.Name {
	case "input":
		g.genInputCall()
	case "output":
		g.genOutputCall(n.Child[0])
	default:
		g.genGeneralCall(n)
	}
}

func (g *Generator) genInputCall() {
	g.e.EmitComment("->input")
	g.e.EmitRegAddr("la", argRegs[0], "_inputStr", nil, "")
	g.e.EmitRegImm("li", regV, 4)
	g.e.EmitCode("syscall")
	g.e.EmitRegImm("li", regV, 5)
	g.e.EmitCode("syscall")
	g.e.EmitComment("<-input")
}

func (g *Generator) genOutputCall(arg *ast.Node) {
	g.e.EmitComment("->output")
	g.genExpr(arg)
	g.push(regV)
	g.e.EmitRegAddr("la", argRegs[0], "_outputStr", nil, "")
	g.e.EmitRegImm("li", regV, 4)
	g.e.EmitCode("syscall")
	g.pop(argRegs[0])
	g.e.EmitRegImm("li", regV, 1)
	g.e.EmitCode("syscall")
	g.e.EmitRegAddr("la", argRegs[0], "_newline", nil, "")
	g.e.EmitRegImm("li", regV, 4)
	g.e.EmitCode("syscall")
	g.e.EmitComment("<-output")
}

// genGeneralCall implements the general calling sequence: save live
// argument registers, reserve and fill the stack-argument spill region
// by direct offset (not push, since the callee's own prologue is the
// only place that pushes RA/FP around the call), then evaluate
// register-passed arguments left to right and distribute into a0-a3,
// call, then unwind in the reverse order.
//
// The spill region must sit at exactly the address SP holds at the
// jal — that's the address the callee's own prologue (genFunDecl)
// anchors FP to (FP := SP + 2*WordSize after its own push(RA)/push(FP)
// pair), so a stack argument stored at SP+k*WordSize before the call
// reads back at FP+k*WordSize inside the callee, matching the
// parameter layout the symbol table assigns to arguments past the
// fourth. A caller-side push(FP)/push(RA) here would shift SP by two
// more words before the callee's own prologue runs its own pushes,
// putting every spilled argument one push-pair off from where the
// callee expects it — so this call sequence must never push FP or RA
// itself.
func (g *Generator) genGeneralCall(n *ast.Node) {
	g.e.EmitComment("->call " + n.Name)

	var args []*ast.Node
	for a := n.Child[0]; a != nil; a = a.Sibling {
		args = append(args, a)
	}
	nArgs := len(args)
	nSpill := 0
	if nArgs > 4 {
		nSpill = nArgs - 4
	}
	nRegArgs := nArgs
	if nRegArgs > 4 {
		nRegArgs = 4
	}

	for _, r := range argRegs {
		g.push(r)
	}

	if nSpill > 0 {
		g.e.EmitRegRegImm("subu", regSP, regSP, nSpill*symtab.WordSize)
	}
	for i := 4; i < nArgs; i++ {
		g.genExpr(args[i])
		g.e.EmitRegAddr("sw", regV, "", intPtr((i-4)*symtab.WordSize), regSP)
	}

	for i := 0; i < nRegArgs; i++ {
		g.genExpr(args[i])
		g.push(regV)
	}
	for i := nRegArgs - 1; i >= 0; i-- {
		g.pop(argRegs[i])
	}

	g.e.EmitCode("jal " + n.Name)

	if nSpill > 0 {
		g.e.EmitRegRegImm("addiu", regSP, regSP, nSpill*symtab.WordSize)
	}
	for i := len(argRegs) - 1; i >= 0; i-- {
		g.pop(argRegs[i])
	}
	g.e.EmitComment("<-call " + n.Name)
}
