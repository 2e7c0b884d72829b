package input

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFiles_KeepsOrder(t *testing.T) {
	dir := t.TempDir()
	var paths []string
	for i := range 20 {
		p := filepath.Join(dir, fmt.Sprintf("sample-%02d.json", i))
		require.NoError(t, os.WriteFile(p, []byte(fmt.Sprintf(`{"n": %d}`, i)), 0o644))
		paths = append(paths, p)
	}

	files, err := LoadFiles(context.Background(), paths, 4)
	require.NoError(t, err)
	require.Len(t, files, 20)
	for i, f := range files {
		assert.Equal(t, paths[i], f.Name)
		assert.Equal(t, fmt.Sprintf(`{"n": %d}`, i), string(f.Data))
	}
}

func TestLoadFiles_MissingFile(t *testing.T) {
	dir := t.TempDir()
	ok := filepath.Join(dir, "ok.json")
	require.NoError(t, os.WriteFile(ok, []byte(`{}`), 0o644))

	_, err := LoadFiles(context.Background(), []string{ok, filepath.Join(dir, "missing.json")}, 2)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "missing.json")
}

func TestLoadFiles_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := LoadFiles(ctx, []string{"a.json"}, 1)
	assert.ErrorIs(t, err, context.Canceled)
}

func TestReadStdin(t *testing.T) {
	f, err := ReadStdin(strings.NewReader(`[1, 2]`))
	require.NoError(t, err)
	assert.Equal(t, StdinName, f.Name)
	assert.Equal(t, "[1, 2]", string(f.Data))
}
