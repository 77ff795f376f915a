package sheet

import (
	"context"
	"os"
	"path/filepath"
	"testing"
)

func writeWorksheet(t *testing.T, dir, worksheet, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, worksheet+".csv"), []byte(content), 0o644); err != nil {
		t.Fatalf("failed to write worksheet: %v", err)
	}
}

func TestCSVStoreGetCell(t *testing.T) {
	dir := t.TempDir()
	writeWorksheet(t, dir, "Prompts", "hook,,non-hook\nRewrite as a hook: {original},,Rewrite: {original}\n")

	store := CSVStore{}
	ctx := context.Background()

	got, err := store.GetCell(ctx, dir, "Prompts!A2")
	if err != nil {
		t.Fatalf("GetCell() error = %v", err)
	}
	if want := "Rewrite as a hook: {original}"; got != want {
		t.Errorf("GetCell(A2) = %q, want %q", got, want)
	}

	got, err = store.GetCell(ctx, dir, "Prompts!C2")
	if err != nil {
		t.Fatalf("GetCell() error = %v", err)
	}
	if want := "Rewrite: {original}"; got != want {
		t.Errorf("GetCell(C2) = %q, want %q", got, want)
	}

	// Out-of-bounds cells read as empty, matching hosted-sheet behavior.
	got, err = store.GetCell(ctx, dir, "Prompts!Z99")
	if err != nil {
		t.Fatalf("GetCell() error = %v", err)
	}
	if got != "" {
		t.Errorf("GetCell(Z99) = %q, want empty", got)
	}
}

func TestCSVStoreGetRowsExcludesHeader(t *testing.T) {
	dir := t.TempDir()
	writeWorksheet(t, dir, "Sheet1", "slide1,slide2\nHook text,Body A\n,\n")

	rows, err := CSVStore{}.GetRows(context.Background(), dir, "Sheet1")
	if err != nil {
		t.Fatalf("GetRows() error = %v", err)
	}

	if len(rows) != 2 {
		t.Fatalf("len(rows) = %d, want 2", len(rows))
	}
	if rows[0][0] != "Hook text" || rows[0][1] != "Body A" {
		t.Errorf("rows[0] = %v, want [Hook text Body A]", rows[0])
	}
}

func TestCSVStoreAppendAndColumnValues(t *testing.T) {
	dir := t.TempDir()
	store := CSVStore{}
	ctx := context.Background()

	// ColumnValues on a missing worksheet is an empty log.
	values, err := store.ColumnValues(ctx, dir, "Carousel Outputs", 1)
	if err != nil {
		t.Fatalf("ColumnValues() error = %v", err)
	}
	if len(values) != 0 {
		t.Errorf("ColumnValues() = %v, want empty", values)
	}

	if err := store.AppendRow(ctx, dir, "Carousel Outputs", []string{"#1", "slide", "caption"}); err != nil {
		t.Fatalf("AppendRow() error = %v", err)
	}
	if err := store.AppendRow(ctx, dir, "Carousel Outputs", []string{"#2", "slide"}); err != nil {
		t.Fatalf("AppendRow() error = %v", err)
	}

	values, err = store.ColumnValues(ctx, dir, "Carousel Outputs", 1)
	if err != nil {
		t.Fatalf("ColumnValues() error = %v", err)
	}
	if len(values) != 2 || values[0] != "#1" || values[1] != "#2" {
		t.Errorf("ColumnValues() = %v, want [#1 #2]", values)
	}

	// Allocation reads the appended log end to end.
	id, err := NextID(ctx, store, dir, "Carousel Outputs")
	if err != nil {
		t.Fatalf("NextID() error = %v", err)
	}
	if id != "#3" {
		t.Errorf("NextID() = %q, want #3", id)
	}
}

func TestParseA1(t *testing.T) {
	tests := []struct {
		ref  string
		col  int
		row  int
		fail bool
	}{
		{ref: "A1", col: 0, row: 0},
		{ref: "C2", col: 2, row: 1},
		{ref: "AA10", col: 26, row: 9},
		{ref: "12", fail: true},
		{ref: "C", fail: true},
		{ref: "C0", fail: true},
	}

	for _, tt := range tests {
		col, row, err := parseA1(tt.ref)
		if tt.fail {
			if err == nil {
				t.Errorf("parseA1(%q) error = nil, want error", tt.ref)
			}
			continue
		}
		if err != nil {
			t.Errorf("parseA1(%q) error = %v", tt.ref, err)
			continue
		}
		if col != tt.col || row != tt.row {
			t.Errorf("parseA1(%q) = (%d, %d), want (%d, %d)", tt.ref, col, row, tt.col, tt.row)
		}
	}
}
