// Package optimize rewrites an inferred type graph in place, collapsing
// equivalent nodes and redirecting every reference to the survivor.
package optimize

import (
	"log/slog"

	tg "github.com/usestring/json2types/pkg/typegraph"
)

// Config selects the passes to run. Enabled passes run in field order.
type Config struct {
	// MergeSimilar collapses structurally equal records.
	MergeSimilar bool
	// MergeByName collapses records sharing a name hint, keeping the fields
	// of the first one encountered.
	MergeByName bool
	// MergeUnions collapses unions with equal member sets.
	MergeUnions bool
	// Logger receives a debug summary per pass. Default: slog.Default()
	Logger *slog.Logger
}

// DefaultConfig enables merge-by-name only.
func DefaultConfig() Config {
	return Config{MergeByName: true}
}

type pass struct {
	name    string
	enabled func(Config) bool
	// group returns the redirects of one round; an empty result means the
	// graph is at a fixed point for this pass.
	group func(s *tg.Schema) redirects
}

var passes = []pass{
	{"merge_similar", func(c Config) bool { return c.MergeSimilar }, groupSimilar},
	{"merge_by_name", func(c Config) bool { return c.MergeByName }, groupByName},
	{"merge_unions", func(c Config) bool { return c.MergeUnions }, groupUnions},
}

// Optimize runs the passes enabled in cfg over s. The root may be redirected
// to a representative; it always resolves afterwards. A zero Config changes
// nothing.
func Optimize(s *tg.Schema, cfg Config) {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}
	for _, p := range passes {
		if !p.enabled(cfg) {
			continue
		}
		n := run(s, p.group)
		logger.Debug("optimizer pass",
			slog.String("pass", p.name),
			slog.Int("redirected", n),
			slog.Int("reachable", int(s.Graph.Reachable(s.Root).GetCardinality())),
		)
	}
}

// run repeats group and redirect until group finds nothing more to merge.
// Every round makes at least one reachable node unreachable, so it
// terminates. It returns the number of nodes redirected.
func run(s *tg.Schema, group func(*tg.Schema) redirects) int {
	total := 0
	for {
		r := group(s)
		if len(r) == 0 {
			return total
		}
		total += len(r)
		apply(s, r)
	}
}
