package main

import (
	"bytes"
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSweep(t *testing.T) {
	dir := t.TempDir()
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{
		"-out-dir", dir, "-radius", "4", "-max-steps", "200",
		"-states-min", "1", "-states-max", "2", "-colors-min", "2", "-colors-max", "2", "-workers", "2",
	}, &stdout, &stderr)
	require.NoError(t, err, stderr.String())

	out := stdout.String()
	assert.Contains(t, out, "Sweeping 2 parameter points over square (2 workers, 200 steps, radius 4)")
	assert.Contains(t, out, "1s 2c: error: ")
	assert.Contains(t, out, "2s 2c: 8000 machines")
	assert.Contains(t, out, "Best overall: 2s 2c")
	assert.FileExists(t, filepath.Join(dir, "found_2d_absolute_2s_2c.txt"))
	assert.Contains(t, stderr.String(), "Sweep point failed.")
}

func TestSweepRejectsEmptyRange(t *testing.T) {
	var stdout, stderr bytes.Buffer
	err := run(context.Background(), []string{"-states-min", "3", "-states-max", "2"}, &stdout, &stderr)
	require.Error(t, err)

	err = run(context.Background(), []string{"-workers", "0"}, &stdout, &stderr)
	require.Error(t, err)
}

func TestSweepStopsOnCancel(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	var stdout, stderr bytes.Buffer
	err := run(ctx, []string{
		"-out-dir", t.TempDir(), "-states-min", "2", "-states-max", "2", "-colors-min", "2", "-colors-max", "2",
		"-print-every", "10",
	}, &stdout, &stderr)
	require.ErrorIs(t, err, context.Canceled)
}
