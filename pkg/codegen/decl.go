package codegen

import (
	"cminus/pkg/ast"
	"cminus/pkg/symtab"
	"fmt"
)

// globalName returns the data-section label for a global variable or
// array: its source name prefixed with "_", so it can never collide
// with a function label or reserved assembler mnemonic.
func globalName(name string) string { return "_" + name }

// Program generates the whole assembly program for an analyzed AST:
// the fixed IO-string preamble, then one block per top-level
// declaration, then the exit sequence.
func (g *Generator) Program(program *ast.Node) {
	g.e.EmitComment("C-Minus compilation to SPIM code")
	g.emitIOStrings()
	for t := program; t != nil; t = t.Sibling {
		g.genGlobal(t)
	}
	g.e.EmitComment("end of execution")
	g.e.EmitRegImm("li", regV, 10)
	g.e.EmitCode("syscall")
}

// emitIOStrings emits the fixed DATA block for input()/output()'s
// prompt strings.
func (g *Generator) emitIOStrings() {
	g.e.EmitComment("strings reserved for IO")
	g.e.SetDataMode()
	g.e.EmitSymbolDecl("_inputStr")
	g.e.EmitCode(".asciiz \"input: \"")
	g.e.EmitSymbolDecl("_outputStr")
	g.e.EmitCode(".asciiz \"output: \"")
	g.e.EmitSymbolDecl("_newline")
	g.e.EmitCode(".asciiz \"\\n\"")
	g.e.EmitBlank()
}

func (g *Generator) genGlobal(t *ast.Node) {
	switch t.Sub {
	case ast.VarDecl:
		g.genGlobalVarDecl(t.Name, symtab.WordSize)
	case ast.ArrDecl:
		sym := g.table.Symbol(t.SymbolID)
		g.genGlobalVarDecl(t.Name, symtab.WordSize*sym.Size)
	case ast.FunDecl:
		g.genFunDecl(t)
	}
}

func (g *Generator) genGlobalVarDecl(name string, size int) {
	g.e.EmitComment("global variable " + name)
	g.e.SetDataMode()
	g.e.EmitCode(".align 2")
	g.e.EmitSymbolDecl(globalName(name))
	g.e.EmitCode(fmt.Sprintf(".space %d", size))
	g.e.EmitBlank()
}

// genFunDecl emits a function's prologue, body, and epilogue. main is
// special-cased: no saved control link, FP simply tracks SP, and the
// label carries no prefix beyond ".globl main" (the same bare-name
// convention every other function label uses).
func (g *Generator) genFunDecl(t *ast.Node) {
	g.e.SetTextMode()
	g.e.EmitComment("function " + t.Name)

	g.inMain = t.Name == "main"
	g.returnLabel = g.newLabel()

	if g.inMain {
		g.e.EmitCode(".globl main")
		g.e.EmitSymbolDecl("main")
		g.e.EmitRegReg("move", regFP, regSP)
		g.genCompound(t.Child[2])
		g.e.EmitLabelDecl(g.returnLabel)
		g.e.EmitBlank()
		return
	}

	sym := g.table.Symbol(t.SymbolID)
	frameSize := -sym.Memloc

	g.e.EmitSymbolDecl(t.Name)
	g.push(regRA)
	g.push(regFP)
	g.e.EmitRegRegImm("addiu", regFP, regSP, 2*symtab.WordSize)
	g.e.EmitRegRegImm("subu", regSP, regSP, frameSize+symtab.WordSize)

	g.genCompound(t.Child[2])

	g.e.EmitLabelDecl(g.returnLabel)
	g.e.EmitRegRegImm("addiu", regSP, regFP, -2*symtab.WordSize)
	g.pop(regFP)
	g.pop(regRA)
	g.e.EmitReg("jr", regRA)
	g.e.EmitBlank()
}
