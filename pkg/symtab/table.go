package symtab

import (
	"cminus/pkg/ast"
	"cminus/pkg/errors"
)

// Table is the scope stack: a live chain of scopes rooted at the global
// scope, plus the arena that backs ast.Node.SymbolID handles.
type Table struct {
	current *scope
	arena   []*Symbol // arena[0] is a sentinel; real symbols start at 1

	// frameFloor tracks the most negative local offset reached so far
	// within the function currently being walked, across every nested
	// compound scope it opens — a function's Symbol.Memloc is set to
	// frameFloor (the negative frame size) once the whole body has been
	// visited.
	frameFloor int

	// enclosingParamCount is the arity of the function whose scope is
	// currently open (0 at global scope), set by the analyzer on
	// function entry. Surfaced by DumpRows/Print's "param count" column.
	enclosingParamCount int
}

// NewTable allocates an empty Table with only the global scope, then
// seeds the input/output builtins.
func NewTable() *Table {
	t := &Table{arena: make([]*Symbol, 1)}
	t.current = newScope(nil)
	t.registerBuiltins()
	return t
}

// EnterScope pushes a new nested scope. Its cursor starts at the
// enclosing scope's current cursor value (compound statements nested
// inside a function continue the same frame's offset sequence); the
// analyzer resets the cursor explicitly on function entry via
// SetOffsetCursor.
func (t *Table) EnterScope() {
	t.current = newScope(t.current)
}

// LeaveScope pops the innermost scope. The popped scope's symbols stay
// reachable through the arena (and through any ast.Node.SymbolID that
// referenced them); only name resolution in that scope is gone.
func (t *Table) LeaveScope() {
	if t.current.prev != nil {
		t.current = t.current.prev
	}
}

// SetOffsetCursor resets the current scope's memory-offset cursor, used
// by the analyzer when opening a function body (locals start at -WordSize)
// and when registering parameters (start at +0).
func (t *Table) SetOffsetCursor(v int) { t.current.cursor = v }

// OffsetCursor returns the current scope's memory-offset cursor.
func (t *Table) OffsetCursor() int { return t.current.cursor }

// ResetFrameFloor starts a new frame-floor measurement at v, called when
// the analyzer opens a function body (v is the starting local cursor,
// -WordSize).
func (t *Table) ResetFrameFloor(v int) { t.frameFloor = v }

// FrameFloor returns the most negative offset reached since the last
// ResetFrameFloor.
func (t *Table) FrameFloor() int { return t.frameFloor }

// SetEnclosingParamCount records the arity of the function whose scope
// the analyzer is currently walking, so a debug dump taken anywhere
// inside that function's body can report it. Reset to 0 on leaving the
// function.
func (t *Table) SetEnclosingParamCount(n int) { t.enclosingParamCount = n }

// EnclosingParamCount returns the arity most recently set by
// SetEnclosingParamCount.
func (t *Table) EnclosingParamCount() int { return t.enclosingParamCount }

// IsGlobal reports whether the current scope is the outermost one.
func (t *Table) IsGlobal() bool { return t.current.depth == 0 }

// Depth returns the current scope's nesting depth (0 = global).
func (t *Table) Depth() int { return t.current.depth }

// Symbol dereferences a SymbolID handle. Returns nil for 0 (unresolved).
func (t *Table) Symbol(id int) *Symbol {
	if id <= 0 || id >= len(t.arena) {
		return nil
	}
	return t.arena[id]
}

func (t *Table) alloc(sym *Symbol) int {
	t.arena = append(t.arena, sym)
	id := len(t.arena) - 1
	sym.id = id
	return id
}

// Register declares node's name as a new Symbol in the current scope and
// sets node.SymbolID to its handle. It fails with a ScopeError if the
// name is already bound in the current (innermost) scope — shadowing an
// outer scope is allowed, since the name search only ever looks at the
// innermost scope.
func (t *Table) Register(node *ast.Node, class SymbolClass, isArray bool, typ ast.ExpType) (*Symbol, *errors.ScopeError) {
	if t.current.find(node.Name) != nil {
		return nil, &errors.ScopeError{
			Position: errors.Position{Line: node.Line},
			Msg:      kindLabel(node) + " " + node.Name + " already declared.",
		}
	}

	sym := &Symbol{Name: node.Name, Decl: node, Class: class, IsArray: isArray, Type: typ}

	if class == Parameter {
		idx := t.current.paramIndex
		t.current.paramIndex++
		if idx < 4 {
			sym.IsRegisteredArgument = true
			sym.Memloc = idx
		} else {
			sym.Memloc = (idx - 4) * WordSize
		}
		t.current.cursor += WordSize
	} else {
		location := t.current.cursor
		coeff := -1
		if !t.IsGlobal() {
			if isArray {
				size := node.Child[1].Val
				sym.Size = size
				t.current.cursor += coeff * WordSize * size
			} else {
				t.current.cursor += coeff * WordSize
			}
			if t.current.cursor < t.frameFloor {
				t.frameFloor = t.current.cursor
			}
		}
		sym.Memloc = location
		if isArray {
			if sym.Size == 0 {
				sym.Size = node.Child[1].Val
			}
			sym.Memloc -= (sym.Size - 1) * WordSize
		}
	}

	if class == Function {
		sym.Size = CountParams(node.Child[1])
	}

	t.current.insert(node.Name, sym)
	node.SymbolID = t.alloc(sym)
	return sym, nil
}

// Lookup resolves node.Name against the scope chain, innermost first. On
// success it records the reference line on the Symbol and sets
// node.SymbolID. On failure it returns a ScopeError ("used without
// declaration") and leaves node.SymbolID at 0.
func (t *Table) Lookup(node *ast.Node) (*Symbol, *errors.ScopeError) {
	for s := t.current; s != nil; s = s.prev {
		if sym := s.find(node.Name); sym != nil {
			sym.Reference(node.Line)
			node.SymbolID = sym.id
			return sym, nil
		}
	}
	return nil, &errors.ScopeError{
		Position: errors.Position{Line: node.Line},
		Msg:      kindLabel(node) + " " + node.Name + " used without declaration",
	}
}

// kindLabel derives the listing-line noun for a declaration or use site.
func kindLabel(n *ast.Node) string {
	switch n.Sub {
	case ast.ArrDecl, ast.Arr:
		return "Array"
	case ast.FunDecl, ast.Call:
		return "Function"
	case ast.ArrParam:
		return "Array Parameter"
	case ast.VarParam:
		return "Variable Parameter"
	default:
		return "Variable"
	}
}

// CountParams counts a function's declared parameters, treating a sole
// VoidParam node as zero.
func CountParams(params *ast.Node) int {
	if params == nil || params.Sub == ast.VoidParam {
		return 0
	}
	n := 0
	for p := params; p != nil; p = p.Sibling {
		n++
	}
	return n
}
