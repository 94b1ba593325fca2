package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func runWatcher(t *testing.T, w *Watcher, build func() error) (cancel func()) {
	t.Helper()
	ctx, stop := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx, build) }()
	return func() {
		stop()
		select {
		case err := <-done:
			require.NoError(t, err)
		case <-time.After(5 * time.Second):
			t.Fatal("watcher did not stop")
		}
	}
}

func TestRebuildOnChange(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "Bug_Reports_Template.csv")
	require.NoError(t, os.WriteFile(src, []byte("ID\n"), 0644))

	w, err := New([]string{src}, 50*time.Millisecond, nil)
	require.NoError(t, err)

	builds := make(chan struct{}, 10)
	stop := runWatcher(t, w, func() error {
		builds <- struct{}{}
		return nil
	})
	defer stop()

	for i := 0; i < 3; i++ {
		require.NoError(t, os.WriteFile(src, []byte("ID\nBUG-1\n"), 0644))
	}

	select {
	case <-builds:
	case <-time.After(5 * time.Second):
		t.Fatal("no rebuild after change")
	}
}

func TestIgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "source.csv")
	require.NoError(t, os.WriteFile(src, []byte("ID\n"), 0644))

	w, err := New([]string{src}, 20*time.Millisecond, nil)
	require.NoError(t, err)

	builds := make(chan struct{}, 10)
	stop := runWatcher(t, w, func() error {
		builds <- struct{}{}
		return nil
	})
	defer stop()

	require.NoError(t, os.WriteFile(filepath.Join(dir, "tracker.xlsx"), []byte("x"), 0644))

	select {
	case <-builds:
		t.Fatal("rebuilt for an unwatched file")
	case <-time.After(300 * time.Millisecond):
	}
}

func TestBuildErrorKeepsWatching(t *testing.T) {
	dir := t.TempDir()
	src := filepath.Join(dir, "source.csv")
	require.NoError(t, os.WriteFile(src, []byte("ID\n"), 0644))

	w, err := New([]string{src}, 20*time.Millisecond, nil)
	require.NoError(t, err)

	builds := make(chan struct{}, 10)
	stop := runWatcher(t, w, func() error {
		builds <- struct{}{}
		return errors.New("source read error")
	})
	defer stop()

	for i := 0; i < 2; i++ {
		require.NoError(t, os.WriteFile(src, []byte("ID\n1\n"), 0644))
		select {
		case <-builds:
		case <-time.After(5 * time.Second):
			t.Fatalf("no rebuild %d", i+1)
		}
	}
}

func TestNewMissingDirectory(t *testing.T) {
	_, err := New([]string{filepath.Join(t.TempDir(), "gone", "source.csv")}, 0, nil)
	require.Error(t, err)
}
