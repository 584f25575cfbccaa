package watch

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestNewRequiresPaths(t *testing.T) {
	_, err := New(0)
	require.Error(t, err)
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New(0, filepath.Join(t.TempDir(), "missing", "fonts.yaml"))
	require.Error(t, err)
}

func TestRunCallsBackAfterWrite(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "fonts.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("version: \"1.0\"\n"), 0o600))

	w, err := New(20*time.Millisecond, cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(context.Context) { changed <- struct{}{} })
	}()

	require.NoError(t, os.WriteFile(cfg, []byte("version: \"1.0\"\nfonts: []\n"), 0o600))

	select {
	case <-changed:
	case <-time.After(5 * time.Second):
		t.Fatal("expected change callback")
	}

	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return after cancel")
	}
}

func TestRunIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "fonts.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("version: \"1.0\"\n"), 0o600))

	w, err := New(20*time.Millisecond, cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 300*time.Millisecond)
	defer cancel()

	calls := 0
	go func() {
		time.Sleep(20 * time.Millisecond)
		_ = os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600)
	}()
	require.NoError(t, w.Run(ctx, func(context.Context) { calls++ }))
	require.Zero(t, calls)
}

func TestRunDebouncesBursts(t *testing.T) {
	dir := t.TempDir()
	cfg := filepath.Join(dir, "fonts.yaml")
	require.NoError(t, os.WriteFile(cfg, []byte("a"), 0o600))

	w, err := New(150*time.Millisecond, cfg)
	require.NoError(t, err)

	ctx, cancel := context.WithTimeout(context.Background(), 1200*time.Millisecond)
	defer cancel()

	calls := 0
	go func() {
		for i := 0; i < 5; i++ {
			_ = os.WriteFile(cfg, []byte{byte('a' + i)}, 0o600)
			time.Sleep(10 * time.Millisecond)
		}
	}()
	require.NoError(t, w.Run(ctx, func(context.Context) { calls++ }))
	require.Equal(t, 1, calls)
}
