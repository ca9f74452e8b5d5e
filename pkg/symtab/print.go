package symtab

import (
	"fmt"
	"io"
)

// DumpHeader is the column header row for the current scope's symbol
// dump.
var DumpHeader = []string{"Variable Name", "Variable Class", "Data Type", "Array Size", "Loc.", "Scope Depth", "Param Count", "Line Numbers"}

// DumpRows returns one row per binding in the current scope, in the
// same order Print walks them. Shared by the plain-text Print and
// pkg/driver's lipgloss-styled table so both render identical data.
// Scope depth and param count are scope-wide, not per-binding — every
// row in a given dump carries the same two values: how deeply nested
// the scope is, and the arity of the function whose scope it is (0 at
// global scope).
func (t *Table) DumpRows() [][]string {
	depth := fmt.Sprintf("%d", t.current.depth)
	params := fmt.Sprintf("%d", t.enclosingParamCount)

	var rows [][]string
	for h := 0; h < hashSize; h++ {
		for b := t.current.table[h]; b != nil; b = b.next {
			s := b.sym
			arraySize := "-"
			if s.IsArray {
				arraySize = fmt.Sprintf("%d", s.Size)
			}
			loc := fmt.Sprintf("%d", s.Memloc)
			if s.IsRegisteredArgument {
				loc = fmt.Sprintf("$a%d", s.Memloc)
			}
			rows = append(rows, []string{s.Name, s.Class.String(), s.Type.String(), arraySize, loc, depth, params, fmt.Sprint(s.Lines)})
		}
	}
	return rows
}

// Print dumps the current scope's bindings in DumpRows order (hash-bucket
// order, most recent first within a bucket, not declaration order). Used
// by the -trace-analyze debug flag; the styled variant for interactive
// terminals lives in pkg/driver.
func (t *Table) Print(w io.Writer) {
	fmt.Fprintf(w, "%-14s %-15s %-10s %-11s %-5s %-12s %-12s %s\n",
		DumpHeader[0], DumpHeader[1], DumpHeader[2], DumpHeader[3], DumpHeader[4], DumpHeader[5], DumpHeader[6], DumpHeader[7])
	for _, row := range t.DumpRows() {
		fmt.Fprintf(w, "%-14s %-15s %-10s %-11s %-5s %-12s %-12s %s\n",
			row[0], row[1], row[2], row[3], row[4], row[5], row[6], row[7])
	}
}
