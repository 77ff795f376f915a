package sheet

import (
	"context"
	"fmt"
	"strconv"
	"strings"
)

// ParseError reports an output-log ID cell that does not match the "#<n>"
// shape. Allocating past a corrupt cell would mint wrong IDs, so callers
// treat this as fatal.
type ParseError struct {
	Value string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("output log ID %q does not match #<integer>", e.Value)
}

// NextID mints the next human-readable sequential ID by reading the first
// column of the output log, ignoring blank cells, and incrementing the
// numeric suffix of the last entry. An empty column yields "#1".
func NextID(ctx context.Context, log OutputLog, sheetID, worksheet string) (string, error) {
	values, err := log.ColumnValues(ctx, sheetID, worksheet, 1)
	if err != nil {
		return "", fmt.Errorf("failed to read output log IDs: %w", err)
	}

	last := ""
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			last = v
		}
	}
	if last == "" {
		return "#1", nil
	}

	numeric, ok := strings.CutPrefix(strings.TrimSpace(last), "#")
	if !ok {
		return "", &ParseError{Value: last}
	}
	n, err := strconv.Atoi(numeric)
	if err != nil {
		return "", &ParseError{Value: last}
	}

	return fmt.Sprintf("#%d", n+1), nil
}
