// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package querylog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestWriter(t *testing.T) {
	dir := t.TempDir()
	w := NewWriter(dir)
	require.True(t, w.Enabled())

	require.NoError(t, w.Record("A", `INSERT INTO "orders" (amount) VALUES ($1)`))
	require.NoError(t, w.Record("A", `INSERT INTO "orders" (amount) VALUES (5)`))
	require.NoError(t, w.Record("B", "BEGIN"))
	require.NoError(t, w.Record("A", "COMMIT"))
	require.NoError(t, w.Close("A"))
	require.NoError(t, w.Close("C"))
	require.NoError(t, w.CloseAll())

	assert.Equal(t, "INSERT INTO \"orders\" (amount) VALUES (5)\nCOMMIT\n", readFile(t, filepath.Join(dir, "A-queries.txt")))
	assert.Equal(t, "BEGIN\n", readFile(t, filepath.Join(dir, "B-queries.txt")))
	assert.Equal(t, "", readFile(t, filepath.Join(dir, "C-queries.txt")))

	// Closing twice is a no-op, recording after close is an error.
	assert.NoError(t, w.Close("A"))
	assert.Error(t, w.Record("A", "SELECT 1"))
}

func TestWriterTruncates(t *testing.T) {
	dir := t.TempDir()
	path := Path(dir, "A")
	require.NoError(t, os.WriteFile(path, []byte("stale\n"), 0666))

	w := NewWriter(dir)
	require.NoError(t, w.Record("A", "SELECT 1"))
	require.NoError(t, w.CloseAll())
	assert.Equal(t, "SELECT 1\n", readFile(t, path))
}

func TestWriterDisabled(t *testing.T) {
	w := NewWriter("")
	assert.False(t, w.Enabled())
	assert.NoError(t, w.Record("A", "SELECT 1"))
	assert.NoError(t, w.Close("A"))
	_, err := os.Stat("A-queries.txt")
	assert.True(t, os.IsNotExist(err))
}

func TestPath(t *testing.T) {
	assert.Equal(t, filepath.Join("out", "9.1-queries.txt"), Path("out", "9.1"))
	assert.Equal(t, filepath.Join("out", "rel_2-queries.txt"), Path("out", "rel/2"))
	assert.Equal(t, Path("out", "9.1"), NewWriter("out").Path("9.1"))
}

func TestBuffer(t *testing.T) {
	var b Buffer
	require.NoError(t, b.Record("A", "SELECT $1"))
	require.NoError(t, b.Record("A", "SELECT 1"))
	require.NoError(t, b.Record("B", "SELECT 2"))
	assert.Equal(t, 2, b.Len())

	var got Buffer
	require.NoError(t, b.ReplayTo(&got))
	assert.Equal(t, b.entries, got.entries)
}
