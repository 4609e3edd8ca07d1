package ingest

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDocument(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "report.txt")
	require.NoError(t, os.WriteFile(path, []byte("MEDICAL REPORT"), 0o600))

	loaded, err := LoadDocument(path)
	require.NoError(t, err)
	assert.Equal(t, "report.txt", loaded.Doc.Name)
	assert.Equal(t, "text/plain", loaded.Doc.MediaType)
	assert.Equal(t, 14, loaded.FileSize)
	assert.Len(t, loaded.ContentHash, 32)

	data, err := io.ReadAll(loaded.Doc.Data)
	require.NoError(t, err)
	assert.Equal(t, "MEDICAL REPORT", string(data))
}

func TestLoadDocument_MediaTypeFromExt(t *testing.T) {
	dir := t.TempDir()
	cases := map[string]string{
		"scan.PNG":  "image/png",
		"visit.pdf": "application/pdf",
		"blob.bin":  "application/octet-stream",
	}
	for name, want := range cases {
		path := filepath.Join(dir, name)
		require.NoError(t, os.WriteFile(path, []byte("x"), 0o600))
		loaded, err := LoadDocument(path)
		require.NoError(t, err)
		assert.Equal(t, want, loaded.Doc.MediaType, name)
	}
}

func TestLoadDocument_Missing(t *testing.T) {
	_, err := LoadDocument(filepath.Join(t.TempDir(), "nope.txt"))
	require.Error(t, err)
}

func TestWatch_InitialScan(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "existing.txt"), []byte("x"), 0o600))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "skipped.xyz"), []byte("x"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := Watch(ctx, WatchConfig{Roots: []string{dir}, InitialScan: true}, nil)
	require.NoError(t, err)

	select {
	case p := <-evCh:
		assert.Equal(t, "existing.txt", filepath.Base(p))
	case <-time.After(2 * time.Second):
		t.Fatal("expected initial-scan event")
	}
}

func TestWatch_DebouncedBurstDeliversEveryFile(t *testing.T) {
	dir := t.TempDir()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := Watch(ctx, WatchConfig{Roots: []string{dir}, Debounce: time.Millisecond}, nil)
	require.NoError(t, err)

	const n = 200
	go func() {
		for i := 0; i < n; i++ {
			_ = os.WriteFile(filepath.Join(dir, fmt.Sprintf("doc-%03d.txt", i)), []byte("x"), 0o600)
		}
	}()

	seen := map[string]struct{}{}
	deadline := time.After(15 * time.Second)
	for len(seen) < n {
		select {
		case p := <-evCh:
			seen[p] = struct{}{}
		case <-deadline:
			t.Fatalf("received %d of %d files", len(seen), n)
		}
	}
}

func TestWatch_InitialScanLargerThanBuffer(t *testing.T) {
	dir := t.TempDir()
	const n = 300 // more than the event channel can hold
	for i := 0; i < n; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, fmt.Sprintf("old-%03d.txt", i)), []byte("x"), 0o600))
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	evCh, _, err := Watch(ctx, WatchConfig{Roots: []string{dir}, InitialScan: true}, nil)
	require.NoError(t, err)

	seen := map[string]struct{}{}
	deadline := time.After(15 * time.Second)
	for len(seen) < n {
		select {
		case p := <-evCh:
			seen[p] = struct{}{}
		case <-deadline:
			t.Fatalf("received %d of %d files", len(seen), n)
		}
	}
}

func TestWatch_NoRoots(t *testing.T) {
	_, _, err := Watch(context.Background(), WatchConfig{}, nil)
	require.Error(t, err)
}
