// Command json2types infers named types from JSON samples or JSON Schema
// documents and prints them as a JSON Schema or a plain text listing.
//
// Usage:
//
//	json2types [flags] [file ...]
//	json2types mcp
//
// With no files, a single document is read from standard input. The mcp
// subcommand serves the same inference as MCP tools over stdio.
package main

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/mattn/go-isatty"

	"github.com/usestring/json2types/internal/config"
	"github.com/usestring/json2types/internal/input"
	"github.com/usestring/json2types/internal/logging"
	"github.com/usestring/json2types/internal/pipeline"
	"github.com/usestring/json2types/pkg/document"
	"github.com/usestring/json2types/pkg/mcpsrv"
	"github.com/usestring/json2types/pkg/optimize"
	"github.com/usestring/json2types/pkg/types"
)

// Exit codes.
const (
	exitOK           = 0
	exitError        = 1
	exitUsage        = 2
	exitVerifyFailed = 3
)

// Output formats.
const (
	formatJSONSchema = "jsonschema"
	formatText       = "text"
	formatJSON       = "json"
)

var errNoInput = errors.New("no input: pass files or pipe a document on stdin")

func main() {
	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer cancel()

	if len(os.Args) > 1 && os.Args[1] == "mcp" {
		os.Exit(serveMCP(ctx))
	}
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

// serveMCP runs the MCP server on stdio until ctx is canceled. Logging is
// configured by the server from the environment.
func serveMCP(ctx context.Context) int {
	server, err := mcpsrv.NewServer()
	if err != nil {
		slog.Error("failed to create MCP server", "error", err)
		return exitError
	}
	defer server.Close()

	slog.Info("starting json2types MCP server on stdio")
	if err := server.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("server error", "error", err)
		return exitError
	}
	slog.Info("server stopped")
	return exitOK
}

type options struct {
	mode         string
	root         string
	format       string
	inputFormat  string
	selectExpr   string
	mergeSimilar bool
	mergeNames   bool
	mergeUnions  bool
	verify       bool
}

func parseFlags(args []string, cfg *config.Config, stderr io.Writer) (*options, []string, error) {
	o := &options{}
	defaults := cfg.Optimize()

	fs := flag.NewFlagSet("json2types", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.mode, "mode", string(pipeline.ModeSamples), "input kind: samples, schema or schema-set")
	fs.StringVar(&o.root, "root", "", "name of the root type")
	fs.StringVar(&o.format, "format", formatText, "output format: text, jsonschema or json")
	fs.StringVar(&o.inputFormat, "input-format", "", "input format: json or yaml (default: detect per file)")
	fs.StringVar(&o.selectExpr, "select", "", "jq expression applied to every input document")
	fs.BoolVar(&o.mergeSimilar, "merge-similar", defaults.MergeSimilar, "collapse structurally equal records")
	fs.BoolVar(&o.mergeNames, "merge-names", defaults.MergeByName, "collapse records sharing a name")
	fs.BoolVar(&o.mergeUnions, "merge-unions", defaults.MergeUnions, "collapse unions with equal members")
	fs.BoolVar(&o.verify, "verify", false, "validate the samples against the inferred schema")
	fs.Usage = func() {
		fmt.Fprintf(fs.Output(), "Usage: json2types [flags] [file ...]\n       json2types mcp\n\nFlags:\n")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return nil, nil, err
	}
	switch o.format {
	case formatText, formatJSONSchema, formatJSON:
	default:
		return nil, nil, fmt.Errorf("unknown output format %q", o.format)
	}
	return o, fs.Args(), nil
}

// run executes one CLI invocation and returns the process exit code.
func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	cfg := config.Load()
	logCfg := logging.FromConfig(cfg)
	logCfg.Stderr = stderr
	cleanup, err := logging.Setup(logCfg)
	if err != nil {
		fmt.Fprintf(stderr, "json2types: %v\n", err)
		return exitError
	}
	defer cleanup()

	o, paths, err := parseFlags(args, cfg, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return exitOK
	}
	if err != nil {
		slog.Error("invalid arguments", "error", err)
		return exitUsage
	}

	req, err := buildRequest(o, cfg)
	if err != nil {
		slog.Error("invalid arguments", "error", err)
		return exitUsage
	}

	req.Files, err = readInputs(ctx, paths, stdin, cfg.LoadWorkers)
	if err != nil {
		slog.Error("failed to read input", "error", err)
		if errors.Is(err, errNoInput) {
			return exitUsage
		}
		return exitError
	}

	res, err := pipeline.Run(req)
	if err != nil {
		slog.Error("inference failed", "error", err)
		return exitError
	}

	if err := write(stdout, o.format, res); err != nil {
		slog.Error("failed to write output", "error", err)
		return exitError
	}

	if res.Verify != nil && !res.Verify.OK() {
		for _, f := range res.Verify.Failures {
			slog.Warn("sample does not match the inferred schema",
				slog.Int("sample", f.Index),
				slog.Any("errors", f.Errors),
			)
		}
		return exitVerifyFailed
	}
	return exitOK
}

func buildRequest(o *options, cfg *config.Config) (pipeline.Request, error) {
	mode, err := pipeline.ParseMode(o.mode)
	if err != nil {
		return pipeline.Request{}, err
	}
	format, err := document.ParseFormat(o.inputFormat)
	if err != nil {
		return pipeline.Request{}, err
	}
	return pipeline.Request{
		Mode:     mode,
		Format:   format,
		Select:   o.selectExpr,
		RootName: o.root,
		Optimize: optimize.Config{
			MergeSimilar: o.mergeSimilar,
			MergeByName:  o.mergeNames,
			MergeUnions:  o.mergeUnions,
		},
		MaxDepth: cfg.MaxDepth,
		Verify:   o.verify,
	}, nil
}

// readInputs loads the named files, or stdin when there are none. An
// interactive terminal on stdin is refused rather than waited on.
func readInputs(ctx context.Context, paths []string, stdin io.Reader, workers int) ([]input.File, error) {
	if len(paths) > 0 {
		return input.LoadFiles(ctx, paths, workers)
	}
	if f, ok := stdin.(*os.File); ok && (isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())) {
		return nil, errNoInput
	}
	f, err := input.ReadStdin(stdin)
	if err != nil {
		return nil, err
	}
	return []input.File{f}, nil
}

func write(w io.Writer, format string, res *pipeline.Result) error {
	switch format {
	case formatText:
		_, err := io.WriteString(w, res.Text)
		return err
	case formatJSONSchema:
		return writeJSON(w, res.JSONSchema)
	default:
		return writeJSON(w, types.InferOutput{
			JSONSchema: res.JSONSchema,
			Text:       res.Text,
			Stats:      res.Stats,
			Verify:     res.Verify.Summary(),
		})
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
