package main

import (
	"bytes"
	"errors"
	"image/png"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/Genius6942/pathgen/document"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testdoc = `{
  "config": {"algorithm": "cubic-spline", "background": "over-under", "autosave": false, "flags": {}},
  "points": [
    {"x": 10, "y": 0, "flags": {}, "handles": [{"x": 3, "y": 0}], "reverse": false, "layers": [0]},
    {"x": 20, "y": 0, "flags": {}, "handles": [{"x": -3, "y": 0}], "reverse": false, "layers": [0]}
  ],
  "version": "%s"
}`

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func doc(version string) string {
	return strings.Replace(testdoc, "%s", version, 1)
}

func TestRunCSV(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	in := writeTemp(t, "path.pp", doc(document.Version))
	var stdout, stderr bytes.Buffer
	require.NoError(t, run([]string{"-in", in, "-format", "csv"}, nil, &stdout, &stderr))
	lines := strings.Split(strings.TrimSpace(stdout.String()), "\n")
	assert.Equal(t, "x,y,speed,index", lines[0])
	assert.GreaterOrEqual(t, len(lines), 10)
	last := strings.Split(lines[len(lines)-1], ",")
	require.Len(t, last, 4)
	x, err := strconv.ParseFloat(last[0], 64)
	require.NoError(t, err)
	assert.InDelta(t, 20, x, 1e-9)
	assert.Equal(t, "0", last[2], "robot stops at the end")
	assert.Empty(t, stderr.String())
}

func TestRunVersionMismatch(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	in := writeTemp(t, "old.pp", doc("0.0.1"))
	var stdout, stderr bytes.Buffer
	err := run([]string{"-in", in}, nil, &stdout, &stderr)
	assert.True(t, errors.Is(err, document.ErrVersionDeclined))
	assert.Contains(t, stderr.String(), "-yes")
	assert.Empty(t, stdout.String())
	//
	stderr.Reset()
	require.NoError(t, run([]string{"-in", in, "-yes"}, nil, &stdout, &stderr))
	assert.True(t, strings.HasPrefix(stdout.String(), "[{"))
}

func TestRunSettingsAndPreview(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	settings := writeTemp(t, "bot.nt", "path:\n    algorithm: catmull-rom\n")
	out := filepath.Join(t.TempDir(), "path.csv")
	pic := filepath.Join(t.TempDir(), "preview.png")
	stdin := strings.NewReader(doc(document.Version))
	var stdout, stderr bytes.Buffer
	args := []string{"-in", "-", "-settings", settings, "-format", "csv", "-out", out, "-png", pic}
	require.NoError(t, run(args, stdin, &stdout, &stderr))
	data, err := os.ReadFile(out)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	assert.Len(t, lines, 12, "catmull-rom samples 10 steps plus the end point")
	f, err := os.Open(pic)
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 720, img.Bounds().Dx())
}

func TestRunErrors(t *testing.T) {
	teardown := gotestingadapter.RedirectTracing(t)
	defer teardown()
	//
	var stdout, stderr bytes.Buffer
	assert.Error(t, run(nil, nil, &stdout, &stderr), "no input")
	in := writeTemp(t, "path.pp", doc(document.Version))
	out := filepath.Join(t.TempDir(), "path.xml")
	err := run([]string{"-in", in, "-format", "xml", "-out", out}, nil, &stdout, &stderr)
	assert.True(t, errors.Is(err, document.ErrFormat))
	_, err = os.Stat(out)
	assert.True(t, os.IsNotExist(err), "no output file for an unknown format")
	bad := writeTemp(t, "bot.nt", "path:\n    k: steep\n")
	assert.Error(t, run([]string{"-in", in, "-settings", bad}, nil, &stdout, &stderr))
}
