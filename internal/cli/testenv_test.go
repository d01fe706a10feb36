// Shared helpers for in-process CLI tests.
package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	fcolor "github.com/fatih/color"
	"github.com/stretchr/testify/require"
)

func TestMain(m *testing.M) {
	fcolor.NoColor = true
	os.Exit(m.Run())
}

// testEnv provides an isolated config and data directory.
type testEnv struct {
	t       *testing.T
	TempDir string
	Config  string
	DataDir string
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	t.Setenv("CANVAS_LOG_LEVEL", "error")

	tempDir := t.TempDir()
	dataDir := filepath.Join(tempDir, "data")
	configDir := filepath.Join(tempDir, "config")

	require.NoError(t, os.MkdirAll(configDir, 0o755))
	configContent := "backend: sqlite\ndata_dir: " + dataDir + "\n"
	require.NoError(t, os.WriteFile(filepath.Join(configDir, "config.yaml"), []byte(configContent), 0o644))

	return &testEnv{t: t, TempDir: tempDir, Config: configDir, DataDir: dataDir}
}

// cmdResult holds the result of a command execution.
type cmdResult struct {
	Stdout   string
	Err      error
	ExitCode int
}

func (e *testEnv) run(args ...string) cmdResult {
	e.t.Helper()
	return e.runContext(context.Background(), args...)
}

func (e *testEnv) runContext(ctx context.Context, args ...string) cmdResult {
	e.t.Helper()

	root := NewRootCmd()
	var stdout, stderr bytes.Buffer
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(append([]string{"--config-dir", e.Config}, args...))

	err := root.ExecuteContext(ctx)
	return cmdResult{Stdout: stdout.String(), Err: err, ExitCode: exitCode(err)}
}

func (e *testEnv) mustRun(args ...string) cmdResult {
	e.t.Helper()
	result := e.run(args...)
	require.NoError(e.t, result.Err, "canvas %v", args)
	return result
}

// writeImage writes a w x h PNG into the env's temp dir.
func (e *testEnv) writeImage(name string, w, h int) string {
	e.t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x * 7), G: uint8(y * 5), B: 90, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(e.t, png.Encode(&buf, img))
	path := filepath.Join(e.TempDir, name)
	require.NoError(e.t, os.WriteFile(path, buf.Bytes(), 0o644))
	return path
}

func parseJSON[T any](t *testing.T, s string) T {
	t.Helper()
	var out T
	require.NoError(t, json.Unmarshal([]byte(s), &out), "output: %s", s)
	return out
}
