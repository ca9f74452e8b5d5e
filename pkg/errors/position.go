package errors

import "cminus/pkg/source"

// Position identifies a specific location in the source code. The
// listing format only ever prints the line number, but Column/Source
// are kept around since nothing stops a future listing from using them.
type Position struct {
	Line   int // 1-based line number
	Column int // 1-based column number (rune index within the line)
	Source *source.SourceFile
}
