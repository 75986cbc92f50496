package main

import (
	"bytes"
	"context"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const star = `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 24 24">
	<title>Star</title>
	<polygon points="12,2 15,9 22,9 16,14 18,21 12,17 6,21 8,14 2,9 9,9" fill="gold" stroke="orange"/>
</svg>`

func writeInput(t *testing.T) string {
	t.Helper()
	file := filepath.Join(t.TempDir(), "star.svg")
	require.NoError(t, os.WriteFile(file, []byte(star), 0o644))
	return file
}

func TestRunPNG(t *testing.T) {
	input := writeInput(t)
	out := filepath.Join(t.TempDir(), "frames")
	var stderr bytes.Buffer
	err := run(context.Background(), []string{"-frames", "4", "-width", "64", "-height", "64", "-o", out, input}, &stderr)
	require.NoError(t, err, stderr.String())

	entries, err := os.ReadDir(out)
	require.NoError(t, err)
	assert.Len(t, entries, 4)

	f, err := os.Open(filepath.Join(out, "frame_0003.png"))
	require.NoError(t, err)
	defer f.Close()
	img, err := png.Decode(f)
	require.NoError(t, err)
	assert.Equal(t, 64, img.Bounds().Dx())
	assert.Contains(t, stderr.String(), "frames exported")
}

func TestRunPDF(t *testing.T) {
	input := writeInput(t)
	var stderr bytes.Buffer
	err := run(context.Background(), []string{"-format", "pdf", "-frames", "3", input}, &stderr)
	require.NoError(t, err, stderr.String())

	data, err := os.ReadFile(filepath.Join(filepath.Dir(input), "star.pdf"))
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(data, []byte("%PDF")))
}

func TestDefaultOutput(t *testing.T) {
	assert.Equal(t, filepath.Join("in", "star_frames"), defaultOutput(filepath.Join("in", "star.svg"), "png"))
	assert.Equal(t, "star.pdf", defaultOutput("star.svg", "pdf"))
	// without extension, the input itself is never reused
	assert.Equal(t, "star_frames", defaultOutput("star", "png"))
	assert.Equal(t, "star.pdf", defaultOutput("star", "pdf"))
}

func TestRunNoExtension(t *testing.T) {
	input := filepath.Join(t.TempDir(), "star")
	require.NoError(t, os.WriteFile(input, []byte(star), 0o644))
	var stderr bytes.Buffer
	err := run(context.Background(), []string{"-frames", "2", "-width", "64", "-height", "64", input}, &stderr)
	require.NoError(t, err, stderr.String())

	entries, err := os.ReadDir(input + "_frames")
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}

func TestRunErrors(t *testing.T) {
	var stderr bytes.Buffer
	assert.Error(t, run(context.Background(), nil, &stderr))
	assert.Error(t, run(context.Background(), []string{"-frames", "1", "in.svg"}, &stderr))
	assert.Error(t, run(context.Background(), []string{filepath.Join(t.TempDir(), "missing.svg")}, &stderr))

	notSVG := filepath.Join(t.TempDir(), "page.html")
	require.NoError(t, os.WriteFile(notSVG, []byte("<html></html>"), 0o644))
	assert.ErrorContains(t, run(context.Background(), []string{notSVG}, &stderr), "no svg element")
}
