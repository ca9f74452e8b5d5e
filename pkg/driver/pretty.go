package driver

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"cminus/pkg/errors"
	"cminus/pkg/source"
	"cminus/pkg/symtab"
)

var (
	errorStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("9"))
	kindStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("13"))
	sourceStyle = lipgloss.NewStyle().Faint(true)
)

// renderListingPretty colorizes each listing line's error kind,
// matching the plain format of errors.Listing but styled for an
// interactive terminal (the -pretty debug flag). src, if non-nil,
// dims in the quoted source line under each diagnostic.
func renderListingPretty(w io.Writer, errs []errors.CminusError, src *source.SourceFile) {
	for _, e := range errs {
		fmt.Fprintf(w, "%s %s\n", kindStyle.Render(e.Kind()+" error"), errorStyle.Render(e.Error()))
		if src == nil {
			continue
		}
		if line := src.Line(e.Pos().Line); line != "" {
			fmt.Fprintf(w, "    %s\n", sourceStyle.Render(line))
		}
	}
}

// PrettyPrintSymbols renders t's current-scope symbol dump as a
// lipgloss table instead of symtab.Table.Print's fixed-width columns
// (the -pretty debug flag). Kept in pkg/driver rather than
// pkg/symtab so the symbol table itself never depends on a styling
// library.
func PrettyPrintSymbols(w io.Writer, t *symtab.Table) {
	tbl := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(symtab.DumpHeader...).
		Rows(t.DumpRows()...)
	fmt.Fprintln(w, tbl.Render())
}
