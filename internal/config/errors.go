package config

import "fmt"

// ValidationError describes a single configuration validation problem: an
// unknown/conflicting flag, an out-of-range numeric, or an unsupported
// output extension (spec.md §7). Validate accumulates every violation it
// finds before returning, rather than stopping at the first one, so the
// caller can report all offending options at once.
type ValidationError struct {
	// Field names the offending option, e.g. "--output" or "--level".
	Field string
	// Message describes what is wrong with it.
	Message string
}

// Error implements the error interface.
func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}
