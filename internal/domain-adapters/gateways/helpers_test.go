package gateways

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/klauspost/compress/zip"
	"github.com/stretchr/testify/require"
)

// writeStoredZip writes an uncompressed zip so that compressed sizes equal content sizes
func writeStoredZip(t *testing.T, path string, entries map[string]int) {
	t.Helper()

	var buf bytes.Buffer
	w := zip.NewWriter(&buf)
	for name, size := range entries {
		h := &zip.FileHeader{Name: name, Method: zip.Store}
		f, err := w.CreateHeader(h)
		require.NoError(t, err)
		if size > 0 {
			_, err = f.Write(bytes.Repeat([]byte{'x'}, size))
			require.NoError(t, err)
		}
	}
	require.NoError(t, w.Close())
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o750))
	require.NoError(t, os.WriteFile(path, buf.Bytes(), 0o600))
}

// writeFiles creates files of the given sizes under root
func writeFiles(t *testing.T, root string, files map[string]int) {
	t.Helper()

	for rel, size := range files {
		p := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(p), 0o750))
		require.NoError(t, os.WriteFile(p, bytes.Repeat([]byte{'x'}, size), 0o600))
	}
}
