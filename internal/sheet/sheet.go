// Package sheet defines the tabular collaborators the engine reads prompts
// and rows from and writes results to, plus the sequential output-row ID
// allocator. The engine only ever addresses a sheet by ID, worksheet name and
// A1-style range; the backing implementation is injected.
//
// A CSV-file-backed implementation is included so the tool runs end to end
// against a local directory of worksheets.
package sheet

import "context"

// Source reads prompt templates and input rows.
type Source interface {
	// GetCell returns the first cell of the first row of the given range,
	// e.g. GetCell(ctx, id, "Prompts!C2"). An empty cell is returned as "".
	GetCell(ctx context.Context, sheetID, rangeRef string) (string, error)

	// GetRows returns the rows of the given worksheet with the header row
	// excluded, in sheet order.
	GetRows(ctx context.Context, sheetID, rangeRef string) ([][]string, error)
}

// OutputLog is the append-only record of published carousels.
type OutputLog interface {
	// AppendRow appends one row to the named worksheet.
	AppendRow(ctx context.Context, sheetID, worksheet string, row []string) error

	// ColumnValues returns every cell of the 1-based column, top to bottom,
	// including blanks.
	ColumnValues(ctx context.Context, sheetID, worksheet string, column int) ([]string, error)
}
