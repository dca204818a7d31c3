package config

import (
	"errors"
	"path/filepath"

	"github.com/clarkmcc/treepp/internal/serialize"
)

// defaultThreads is the worker-pool size used when --thread is not
// supplied, per spec.md §9 ("the spec takes 8, matching the most recent
// option table").
const defaultThreads = 8

// Validate checks cfg for the configuration errors spec.md §7 names
// (unsupported output extension, --silent without --output, out-of-range
// --level/--thread), accumulating every violation before returning rather
// than stopping at the first. Violations are surfaced as a single error
// (via errors.Join) identifying every offending option, per spec.md §7's
// "a single message identifying the offending option".
//
// On success, Validate also resolves the facts spec.md §9 says must be
// decided once and fixed thereafter: Mode (streaming vs. batch), the
// default Threads count, and the output Format implied by cfg.Output's
// extension. cfg is mutated in place with these resolved values.
func Validate(cfg *Config) error {
	var errs []error

	format, ok := serialize.FormatFromExtension(filepath.Ext(cfg.Output))
	if !ok {
		errs = append(errs, ValidationError{
			Field:   "--output",
			Message: "unsupported output extension, expected .txt/.json/.yml/.yaml/.toml",
		})
	}
	cfg.Format = format

	if cfg.Silent && cfg.Output == "" {
		errs = append(errs, ValidationError{
			Field:   "--silent",
			Message: "requires --output",
		})
	}

	if cfg.LevelLimit < -1 {
		errs = append(errs, ValidationError{
			Field:   "--level",
			Message: "must be a non-negative integer",
		})
	}

	if cfg.ThreadsSet && cfg.Threads <= 0 {
		errs = append(errs, ValidationError{
			Field:   "--thread",
			Message: "must be a positive integer",
		})
	}

	if len(errs) > 0 {
		return errors.Join(errs...)
	}

	// Implied flags (spec.md §9): --human-readable and --disk-usage both
	// imply --size.
	if cfg.HumanReadable || cfg.DiskUsage {
		cfg.ShowSize = true
	}

	// Default thread count, applied only when the user never supplied
	// --thread; ThreadsSet (not the value) is what forces batch mode below.
	if !cfg.ThreadsSet {
		cfg.Threads = defaultThreads
	}

	// Mode selection (spec.md §4.8/§7/§9): streaming is the default;
	// --disk-usage, --prune, --thread, --batch, or a non-TXT --output each
	// silently upgrade to batch.
	cfg.Mode = ModeStreaming
	if cfg.Batch || cfg.DiskUsage || cfg.Prune || cfg.ThreadsSet || cfg.Format != serialize.TXT {
		cfg.Mode = ModeBatch
	}

	return nil
}
