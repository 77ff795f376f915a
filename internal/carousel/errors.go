package carousel

import "fmt"

// ConfigError reports a required configuration value (flag, config field, or
// well-known sheet cell) that is missing or malformed. Raised before any
// model spend; always fatal to the run.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("configuration error: %s: %s", e.Field, e.Reason)
}

// CompletenessError reports a variation set of the wrong shape. Publishing a
// partial variant set would silently ship incomplete content, so this is
// fatal to the entire run.
type CompletenessError struct {
	Got  int
	Want int
}

func (e *CompletenessError) Error() string {
	return fmt.Sprintf("variation set has %d elements, want %d", e.Got, e.Want)
}
