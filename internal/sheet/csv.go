package sheet

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"
)

// CSVStore backs Source and OutputLog with a local directory of CSV files,
// one file per worksheet ("<worksheet>.csv"). The sheet ID is the directory
// path. It exists so the tool runs without a hosted spreadsheet; the row and
// range semantics match the hosted case.
type CSVStore struct{}

var (
	_ Source    = CSVStore{}
	_ OutputLog = CSVStore{}
)

// GetCell resolves an A1-style range like "Prompts!C2" and returns that cell,
// or "" when the sheet is shorter than the reference.
func (CSVStore) GetCell(_ context.Context, sheetID, rangeRef string) (string, error) {
	worksheet, cellRef, found := strings.Cut(rangeRef, "!")
	if !found {
		return "", fmt.Errorf("range %q has no worksheet qualifier", rangeRef)
	}

	col, row, err := parseA1(cellRef)
	if err != nil {
		return "", err
	}

	rows, err := readWorksheet(sheetID, worksheet)
	if err != nil {
		return "", err
	}
	if row >= len(rows) || col >= len(rows[row]) {
		return "", nil
	}
	return rows[row][col], nil
}

// GetRows returns the worksheet's rows with the header excluded.
func (CSVStore) GetRows(_ context.Context, sheetID, rangeRef string) ([][]string, error) {
	worksheet := rangeRef
	if ws, _, found := strings.Cut(rangeRef, "!"); found {
		worksheet = ws
	}

	rows, err := readWorksheet(sheetID, worksheet)
	if err != nil {
		return nil, err
	}
	if len(rows) <= 1 {
		return nil, nil
	}
	return rows[1:], nil
}

// AppendRow appends one CSV record, creating the worksheet file if needed.
func (CSVStore) AppendRow(_ context.Context, sheetID, worksheet string, row []string) error {
	path := worksheetPath(sheetID, worksheet)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open worksheet %s: %w", path, err)
	}
	defer f.Close()

	w := csv.NewWriter(f)
	if err := w.Write(row); err != nil {
		return fmt.Errorf("failed to append row to %s: %w", path, err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to flush row to %s: %w", path, err)
	}

	log.Debug().Str("worksheet", worksheet).Int("cells", len(row)).Msg("Row appended to output log")
	return nil
}

// ColumnValues returns the 1-based column of the worksheet, including blanks.
// A missing worksheet file is an empty log, not an error.
func (CSVStore) ColumnValues(_ context.Context, sheetID, worksheet string, column int) ([]string, error) {
	rows, err := readWorksheet(sheetID, worksheet)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	values := make([]string, 0, len(rows))
	for _, row := range rows {
		if column-1 < len(row) {
			values = append(values, row[column-1])
		} else {
			values = append(values, "")
		}
	}
	return values, nil
}

func worksheetPath(sheetID, worksheet string) string {
	return filepath.Join(sheetID, worksheet+".csv")
}

func readWorksheet(sheetID, worksheet string) ([][]string, error) {
	f, err := os.Open(worksheetPath(sheetID, worksheet))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to open worksheet: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1 // ragged rows are normal in hand-edited sheets
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read worksheet %s: %w", worksheet, err)
	}
	return rows, nil
}

// parseA1 converts a cell reference like "C2" to zero-based column and row.
func parseA1(ref string) (col, row int, err error) {
	i := 0
	for i < len(ref) && ref[i] >= 'A' && ref[i] <= 'Z' {
		col = col*26 + int(ref[i]-'A') + 1
		i++
	}
	if i == 0 || i == len(ref) {
		return 0, 0, fmt.Errorf("invalid cell reference %q", ref)
	}
	r, err := strconv.Atoi(ref[i:])
	if err != nil || r < 1 {
		return 0, 0, fmt.Errorf("invalid cell reference %q", ref)
	}
	return col - 1, r - 1, nil
}
