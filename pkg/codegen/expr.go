package codegen

import (
	"cminus/pkg/ast"
	"cminus/pkg/symtab"
)

func (g *Generator) genExpr(n *ast.Node) {
	switch n.Sub {
	case ast.Const:
		g.e.EmitRegImm("li", regV, n.Val)
	case ast.Var:
		g.genVar(n)
	case ast.Arr:
		g.genArr(n)
	case ast.Op:
		g.genOp(n)
	case ast.Assign:
		g.genAssign(n)
	case ast.Call:
		g.genCall(n)
	}
}

// genVar emits a Var node's value into V. An array-typed Var yields
// its base address rather than a load.
func (g *Generator) genVar(n *ast.Node) {
	sym := g.table.Symbol(n.SymbolID)
	g.e.EmitComment("->Var " + n.Name)
	if sym.IsArray {
		g.genArrayAddress(sym)
	} else {
		switch {
		case sym.Class == symtab.Global:
			g.e.EmitRegAddr("lw", regV, globalName(n.Name), nil, "")
		case sym.IsRegisteredArgument:
			g.e.EmitRegReg("move", regV, argRegs[sym.Memloc])
		default:
			g.loadFromFrame(regV, sym.Memloc)
		}
	}
	g.e.EmitComment("<-Var " + n.Name)
}

// genArrayAddress computes a symbol's base address into V.
func (g *Generator) genArrayAddress(sym *symtab.Symbol) {
	switch {
	case sym.Class == symtab.Global:
		g.e.EmitRegAddr("la", regV, globalName(sym.Name), nil, "")
	case sym.Class == symtab.Parameter && sym.IsRegisteredArgument:
		g.e.EmitRegReg("move", regV, argRegs[sym.Memloc])
	case sym.Class == symtab.Parameter:
		g.loadFromFrame(regV, sym.Memloc)
	default:
		g.e.EmitRegRegImm("addiu", regV, regFP, sym.Memloc)
	}
}

// loadFromFrame loads the word at FP+memloc into reg, always computing
// the address in regT0 first.
func (g *Generator) loadFromFrame(reg string, memloc int) {
	g.e.EmitRegRegImm("addiu", regT0, regFP, memloc)
	g.e.EmitRegAddr("lw", reg, "", intPtr(0), regT0)
}

// genArr evaluates an array-element reference: base address, index,
// then the scaled load.
func (g *Generator) genArr(n *ast.Node) {
	sym := g.table.Symbol(n.SymbolID)
	g.e.EmitComment("->Arr " + n.Name)
	g.genArrayAddress(sym)
	g.push(regV)
	g.genExpr(n.Child[0])
	g.pop(regT0)
	g.e.EmitRegRegImm("mul", regV, regV, symtab.WordSize)
	g.e.EmitRegRegReg("add", regV, regT0, regV)
	g.e.EmitRegAddr("lw", regV, "", intPtr(0), regV)
	g.e.EmitComment("<-Arr " + n.Name)
}

// genOp evaluates a binary operator, using the op map: `+`->add,
// `-`->sub, `*`->mul, `/`->div, `<`->slt, `<=`->sle, `>`->sgt,
// `>=`->sge, `==`->seq, `!=`->sne.
func (g *Generator) genOp(n *ast.Node) {
	g.e.EmitComment("->Op " + n.Op)
	g.genExpr(n.Child[0])
	g.push(regV)
	g.genExpr(n.Child[1])
	g.e.EmitRegReg("move", regT1, regV)
	g.pop(regT0)

	switch n.Op {
	case "+":
		g.e.EmitRegRegReg("add", regV, regT0, regT1)
	case "-":
		g.e.EmitRegRegReg("sub", regV, regT0, regT1)
	case "*":
		g.e.EmitRegRegReg("mul", regV, regT0, regT1)
	case "/":
		g.e.EmitReg("mflo", regT2)
		g.e.EmitRegReg("div", regT0, regT1)
		g.e.EmitReg("mflo", regV)
		g.e.EmitReg("mtlo", regT2)
	case "<":
		g.e.EmitRegRegReg("slt", regV, regT0, regT1)
	case "<=":
		g.e.EmitRegRegReg("sle", regV, regT0, regT1)
	case ">":
		g.e.EmitRegRegReg("sgt", regV, regT0, regT1)
	case ">=":
		g.e.EmitRegRegReg("sge", regV, regT0, regT1)
	case "==":
		g.e.EmitRegRegReg("seq", regV, regT0, regT1)
	case "!=":
		g.e.EmitRegRegReg("sne", regV, regT0, regT1)
	}
	g.e.EmitComment("<-Op " + n.Op)
}

// genAssign evaluates the RHS, computes the LHS address (or, for a
// registered scalar parameter, its direct home register), and stores.
// The stored value is left in V.
func (g *Generator) genAssign(n *ast.Node) {
	lhs, rhs := n.Child[0], n.Child[1]
	g.e.EmitComment("->Assign")
	g.genExpr(rhs)

	if lhs.Sub == ast.Var {
		sym := g.table.Symbol(lhs.SymbolID)
		if !sym.IsArray && sym.Class != symtab.Global && sym.IsRegisteredArgument {
			g.e.EmitRegReg("move", argRegs[sym.Memloc], regV)
			g.e.EmitComment("<-Assign")
			return
		}
	}

	g.push(regV)
	g.genLValueAddress(lhs)
	g.e.EmitRegReg("move", regT0, regV)
	g.pop(regV)
	g.e.EmitRegAddr("sw", regV, "", intPtr(0), regT0)
	g.e.EmitComment("<-Assign")
}

// genLValueAddress computes the address an assignment target refers
// to, into V: a bare Var's scalar address, or an Arr's element
// address.
func (g *Generator) genLValueAddress(n *ast.Node) {
	sym := g.table.Symbol(n.SymbolID)
	switch {
	case n.Sub == ast.Arr:
		g.genArrayAddress(sym)
		g.push(regV)
		g.genExpr(n.Child[0])
		g.pop(regT0)
		g.e.EmitRegRegImm("mul", regV, regV, symtab.WordSize)
		g.e.EmitRegRegReg("add", regV, regT0, regV)
	case sym.Class == symtab.Global:
		g.e.EmitRegAddr("la", regV, globalName(n.Name), nil, "")
	default:
		g.e.EmitRegRegImm("addiu", regV, regFP, sym.Memloc)
	}
}
