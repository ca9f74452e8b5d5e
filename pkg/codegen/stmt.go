package codegen

import "cminus/pkg/ast"

// genCompound emits a compound statement's statement list. Its
// declaration child produces no code — locals already have offsets
// from the analyzer pass.
func (g *Generator) genCompound(n *ast.Node) {
	g.genStmtList(n.Child[1])
}

// genStmtList walks a sibling chain mixing StmtK and bare ExpK nodes
// (the parser never wraps a bare expression statement in its own
// kind), emitting each in turn.
func (g *Generator) genStmtList(n *ast.Node) {
	for s := n; s != nil; s = s.Sibling {
		g.genStmt(s)
	}
}

func (g *Generator) genStmt(n *ast.Node) {
	if n.Kind == ast.ExpK {
		g.genExpr(n)
		return
	}
	switch n.Sub {
	case ast.Compound:
		g.genCompound(n)
	case ast.Selection:
		g.genSelection(n)
	case ast.Iteration:
		g.genIteration(n)
	case ast.Return:
		g.genReturn(n)
	}
}

func (g *Generator) genSelection(n *ast.Node) {
	g.e.EmitComment("->if")
	g.genExpr(n.Child[0])

	followingLabel := g.newLabel()
	if n.Child[2] != nil {
		elseLabel := g.newLabel()
		g.e.EmitRegLabel("beqz", regV, elseLabel)
		g.genStmt(n.Child[1])
		g.e.EmitLabel("b", followingLabel)
		g.e.EmitLabelDecl(elseLabel)
		g.genStmt(n.Child[2])
	} else {
		g.e.EmitRegLabel("beqz", regV, followingLabel)
		g.genStmt(n.Child[1])
	}
	g.e.EmitLabelDecl(followingLabel)
	g.e.EmitComment("<-if")
}

func (g *Generator) genIteration(n *ast.Node) {
	g.e.EmitComment("->while")
	conditionLabel := g.newLabel()
	followingLabel := g.newLabel()

	g.e.EmitLabelDecl(conditionLabel)
	g.genExpr(n.Child[0])
	g.e.EmitRegLabel("beqz", regV, followingLabel)
	g.genStmt(n.Child[1])
	g.e.EmitLabel("b", conditionLabel)
	g.e.EmitLabelDecl(followingLabel)
	g.e.EmitComment("<-while")
}

func (g *Generator) genReturn(n *ast.Node) {
	g.e.EmitComment("->return")
	if n.Child[0] != nil {
		g.genExpr(n.Child[0])
	}
	g.e.EmitLabel("b", g.returnLabel)
	g.e.EmitComment("<-return")
}
