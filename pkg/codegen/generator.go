package codegen

import "cminus/pkg/symtab"

// Generator walks an analyzed AST and emits MIPS assembly through an
// Emitter. State that would otherwise be file-scope statics — the
// emission mode (held inside Emitter), the current return label, the
// label counter — are instead fields on the Generator object.
type Generator struct {
	e     *Emitter
	table *symtab.Table

	labelCounter int
	returnLabel  int
	inMain       bool
}

// NewGenerator creates a Generator that resolves ast.Node.SymbolID
// handles against table and writes assembly to e.
func NewGenerator(e *Emitter, table *symtab.Table) *Generator {
	return &Generator{e: e, table: table}
}

func (g *Generator) newLabel() int {
	g.labelCounter++
	return g.labelCounter - 1
}

func intPtr(n int) *int { return &n }

// push stores reg at the current stack top and advances SP downward
// ($sp always addresses the next free slot).
func (g *Generator) push(reg string) {
	g.e.EmitRegAddr("sw", reg, "", intPtr(0), regSP)
	g.e.EmitRegRegImm("subu", regSP, regSP, symtab.WordSize)
}

// pop restores SP upward and loads the top of stack into reg.
func (g *Generator) pop(reg string) {
	g.e.EmitRegRegImm("addu", regSP, regSP, symtab.WordSize)
	g.e.EmitRegAddr("lw", reg, "", intPtr(0), regSP)
}
