// Package input loads the raw documents a run works on.
package input

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	"golang.org/x/sync/errgroup"
)

// StdinName names the document read from standard input.
const StdinName = "<stdin>"

// File is one raw input document.
type File struct {
	Name string
	Data []byte
}

// LoadFiles reads paths concurrently, at most workers at a time, and returns
// them in the order given. The first read error cancels the remaining reads.
func LoadFiles(ctx context.Context, paths []string, workers int) ([]File, error) {
	files := make([]File, len(paths))

	g, ctx := errgroup.WithContext(ctx)
	if workers > 0 {
		g.SetLimit(workers)
	}
	for i, path := range paths {
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			data, err := os.ReadFile(path)
			if err != nil {
				return fmt.Errorf("reading %s: %w", path, err)
			}
			files[i] = File{Name: path, Data: data}
			slog.Debug("loaded input",
				slog.String("path", path),
				slog.Int("bytes", len(data)),
			)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return files, nil
}

// ReadStdin reads the whole of r as a single document.
func ReadStdin(r io.Reader) (File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return File{}, fmt.Errorf("reading stdin: %w", err)
	}
	return File{Name: StdinName, Data: data}, nil
}
