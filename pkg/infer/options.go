package infer

import "log/slog"

// DefaultMaxDepth bounds container nesting in samples and schema documents.
const DefaultMaxDepth = 256

// SchemaHintSuffix is appended to property keys when they name a record
// built from a schema, keeping schema-derived hints apart from
// sample-derived ones until merge-by-name runs.
const SchemaHintSuffix = "Schema"

// Options controls inference.
type Options struct {
	// RootName becomes a name hint on the root record.
	RootName string
	// MaxDepth limits container nesting; deeper input fails with ErrTooDeep.
	// Default: DefaultMaxDepth
	MaxDepth int
	// Logger receives debug summaries and skip warnings.
	// Default: slog.Default()
	Logger *slog.Logger
}

// DefaultOptions returns the default inference options.
func DefaultOptions() *Options {
	return &Options{
		MaxDepth: DefaultMaxDepth,
		Logger:   slog.Default(),
	}
}

func (o *Options) withDefaults() *Options {
	out := DefaultOptions()
	if o == nil {
		return out
	}
	out.RootName = o.RootName
	if o.MaxDepth > 0 {
		out.MaxDepth = o.MaxDepth
	}
	if o.Logger != nil {
		out.Logger = o.Logger
	}
	return out
}
