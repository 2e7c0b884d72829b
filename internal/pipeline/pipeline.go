// Package pipeline runs one inference request end to end: decode, select,
// infer, optimize, render and optionally verify. The CLI and the MCP tools
// share it.
package pipeline

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/invopop/jsonschema"

	"github.com/usestring/json2types/internal/input"
	"github.com/usestring/json2types/internal/verify"
	"github.com/usestring/json2types/pkg/document"
	"github.com/usestring/json2types/pkg/infer"
	"github.com/usestring/json2types/pkg/optimize"
	"github.com/usestring/json2types/pkg/render"
	tg "github.com/usestring/json2types/pkg/typegraph"
)

// Mode selects what the input documents are.
type Mode string

const (
	// ModeSamples treats every decoded value as a sample.
	ModeSamples Mode = "samples"
	// ModeSchema treats the single input document as a JSON Schema.
	ModeSchema Mode = "schema"
	// ModeSchemaSet treats each input document as an object mapping names
	// to schemas.
	ModeSchemaSet Mode = "schema-set"
)

// ParseMode validates a user-supplied mode name. An empty name means
// ModeSamples.
func ParseMode(s string) (Mode, error) {
	switch m := Mode(strings.ToLower(strings.TrimSpace(s))); m {
	case "":
		return ModeSamples, nil
	case ModeSamples, ModeSchema, ModeSchemaSet:
		return m, nil
	default:
		return "", fmt.Errorf("unknown mode %q (want samples, schema or schema-set)", s)
	}
}

// ErrVerifyNeedsSamples is returned when verification is requested outside
// samples mode.
var ErrVerifyNeedsSamples = errors.New("verification requires samples mode")

// Request describes one run.
type Request struct {
	Mode  Mode
	Files []input.File
	// Format forces the input format; empty means detect per file.
	Format document.Format
	// Select is an optional jq expression applied to every decoded document.
	Select   string
	RootName string
	Optimize optimize.Config
	MaxDepth int
	// Verify validates the samples against the rendered schema.
	Verify bool
	Logger *slog.Logger
}

// Result holds the inferred graph and its renderings.
type Result struct {
	Schema     *tg.Schema
	JSONSchema *jsonschema.Schema
	Text       string
	Stats      tg.Stats
	// Verify is set only when the request asked for verification.
	Verify *verify.Report
}

// Run executes req.
func Run(req Request) (*Result, error) {
	if req.Mode == "" {
		req.Mode = ModeSamples
	}
	if req.Logger == nil {
		req.Logger = slog.Default()
	}
	if req.Verify && req.Mode != ModeSamples {
		return nil, ErrVerifyNeedsSamples
	}

	docs, err := decodeAll(req.Files, req.Format)
	if err != nil {
		return nil, err
	}
	if req.Select != "" {
		sel, err := document.NewSelector(req.Select)
		if err != nil {
			return nil, err
		}
		if docs, err = sel.Apply(docs); err != nil {
			return nil, err
		}
	}

	opts := &infer.Options{RootName: req.RootName, MaxDepth: req.MaxDepth, Logger: req.Logger}
	s, err := inferSchema(req.Mode, docs, opts)
	if err != nil {
		return nil, err
	}

	optCfg := req.Optimize
	if optCfg.Logger == nil {
		optCfg.Logger = req.Logger
	}
	optimize.Optimize(s, optCfg)

	var text strings.Builder
	if err := render.Text(&text, s); err != nil {
		return nil, fmt.Errorf("rendering text: %w", err)
	}
	res := &Result{
		Schema:     s,
		JSONSchema: render.JSONSchema(s),
		Text:       text.String(),
		Stats:      s.Graph.Stats(s.Root),
	}

	if req.Verify {
		v, err := verify.New(res.JSONSchema)
		if err != nil {
			return nil, err
		}
		if res.Verify, err = v.Check(docs); err != nil {
			return nil, err
		}
	}

	req.Logger.Debug("pipeline finished",
		slog.String("mode", string(req.Mode)),
		slog.Int("documents", len(docs)),
		slog.Int("records", res.Stats.Records),
		slog.Int("nodes", res.Stats.Nodes),
	)
	return res, nil
}

// decodeAll decodes every file in order and concatenates the values.
func decodeAll(files []input.File, format document.Format) ([]any, error) {
	var docs []any
	for _, f := range files {
		values, err := document.Decode(f.Name, f.Data, format)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", f.Name, err)
		}
		docs = append(docs, values...)
	}
	return docs, nil
}

func inferSchema(mode Mode, docs []any, opts *infer.Options) (*tg.Schema, error) {
	switch mode {
	case ModeSamples:
		return infer.FromSamples(docs, opts)
	case ModeSchema:
		if len(docs) != 1 {
			return nil, fmt.Errorf("schema mode expects exactly one document, got %d", len(docs))
		}
		return infer.FromSchema(docs[0], opts)
	case ModeSchemaSet:
		var entries []infer.NamedSchema
		for i, doc := range docs {
			named, err := infer.NamedSchemasFromDocument(doc)
			if err != nil {
				return nil, fmt.Errorf("document %d: %w", i, err)
			}
			entries = append(entries, named...)
		}
		return infer.FromSchemaSet(entries, opts)
	default:
		return nil, fmt.Errorf("unknown mode %q", mode)
	}
}
