package ast

import (
	"fmt"
	"io"
	"strings"
)

// Print renders the tree rooted at n to w, indented by nesting depth:
// one line per node, children before siblings. Invoked by the -ast
// debug flag.
func Print(w io.Writer, n *Node) {
	printNode(w, n, 0)
}

func printNode(w io.Writer, n *Node, depth int) {
	for cur := n; cur != nil; cur = cur.Sibling {
		indent := strings.Repeat("  ", depth)
		fmt.Fprintf(w, "%s%s\n", indent, describe(cur))
		for _, child := range cur.Child {
			if child != nil {
				printNode(w, child, depth+1)
			}
		}
	}
}

func describe(n *Node) string {
	switch n.Kind {
	case StmtK:
		switch n.Sub {
		case Compound:
			return fmt.Sprintf("Compound (line %d)", n.Line)
		case Selection:
			return fmt.Sprintf("If (line %d)", n.Line)
		case Iteration:
			return fmt.Sprintf("While (line %d)", n.Line)
		case Return:
			return fmt.Sprintf("Return (line %d)", n.Line)
		}
	case ExpK:
		switch n.Sub {
		case Assign:
			return fmt.Sprintf("Assign (line %d)", n.Line)
		case Op:
			return fmt.Sprintf("Op '%s' (line %d)", n.Op, n.Line)
		case Const:
			return fmt.Sprintf("Const %d (line %d)", n.Val, n.Line)
		case Var:
			return fmt.Sprintf("Var '%s' (line %d)", n.Name, n.Line)
		case Arr:
			return fmt.Sprintf("Arr '%s' (line %d)", n.Name, n.Line)
		case Call:
			return fmt.Sprintf("Call '%s' (line %d)", n.Name, n.Line)
		}
	case DeclK:
		switch n.Sub {
		case VarDecl:
			return fmt.Sprintf("VarDecl '%s' (line %d)", n.Name, n.Line)
		case ArrDecl:
			return fmt.Sprintf("ArrDecl '%s' (line %d)", n.Name, n.Line)
		case FunDecl:
			return fmt.Sprintf("FunDecl '%s' (line %d)", n.Name, n.Line)
		}
	case TypeK:
		return fmt.Sprintf("Type %s (line %d)", n.Type, n.Line)
	case ParamK:
		switch n.Sub {
		case VarParam:
			return fmt.Sprintf("VarParam '%s' (line %d)", n.Name, n.Line)
		case ArrParam:
			return fmt.Sprintf("ArrParam '%s' (line %d)", n.Name, n.Line)
		case VoidParam:
			return fmt.Sprintf("VoidParam (line %d)", n.Line)
		}
	}
	return fmt.Sprintf("<unknown node kind=%s sub=%s line=%d>", n.Kind, n.Sub, n.Line)
}
