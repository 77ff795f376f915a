package sheet

import (
	"context"
	"errors"
	"testing"
)

// fakeLog serves canned column values and records appended rows.
type fakeLog struct {
	column []string
	rows   [][]string
	err    error
}

func (f *fakeLog) AppendRow(_ context.Context, _, _ string, row []string) error {
	f.rows = append(f.rows, row)
	return f.err
}

func (f *fakeLog) ColumnValues(_ context.Context, _, _ string, _ int) ([]string, error) {
	return f.column, f.err
}

func TestNextID(t *testing.T) {
	tests := []struct {
		name   string
		column []string
		want   string
	}{
		{"empty log", nil, "#1"},
		{"blank cells ignored", []string{"#1", "#2", "", "#2"}, "#3"},
		{"single entry", []string{"#41"}, "#42"},
		{"surrounding whitespace", []string{" #7 "}, "#8"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := NextID(context.Background(), &fakeLog{column: tt.column}, "sheet", "Carousel Outputs")
			if err != nil {
				t.Fatalf("NextID() error = %v", err)
			}
			if got != tt.want {
				t.Errorf("NextID() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestNextIDParseError(t *testing.T) {
	for _, bad := range []string{"carousel-3", "#", "#12x"} {
		_, err := NextID(context.Background(), &fakeLog{column: []string{"#1", bad}}, "sheet", "Carousel Outputs")

		var pe *ParseError
		if !errors.As(err, &pe) {
			t.Errorf("NextID() with last value %q: error = %v, want *ParseError", bad, err)
		}
	}
}

func TestNextIDPropagatesLogError(t *testing.T) {
	_, err := NextID(context.Background(), &fakeLog{err: errors.New("offline")}, "sheet", "Carousel Outputs")
	if err == nil {
		t.Error("NextID() error = nil, want wrapped log error")
	}
}
