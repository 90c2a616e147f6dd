package watch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func startWatcher(t *testing.T, w *Watcher) (<-chan []string, context.CancelFunc, <-chan error) {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	batches := make(chan []string, 8)
	done := make(chan error, 1)
	go func() {
		done <- w.Run(ctx, func(_ context.Context, changed []string) error {
			batches <- changed
			return nil
		})
	}()
	// Give the watcher time to register directories.
	time.Sleep(100 * time.Millisecond)
	return batches, cancel, done
}

func waitBatch(t *testing.T, batches <-chan []string) []string {
	t.Helper()
	select {
	case b := <-batches:
		return b
	case <-time.After(5 * time.Second):
		t.Fatal("timed out waiting for change batch")
		return nil
	}
}

func TestWatcher_DebouncesChanges(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	batches, cancel, done := startWatcher(t, New(50*time.Millisecond, nil, dir))

	a := filepath.Join(dir, "a.md")
	b := filepath.Join(dir, "b.md")
	require.NoError(t, os.WriteFile(a, []byte("# A"), 0o644))
	require.NoError(t, os.WriteFile(b, []byte("# B"), 0o644))

	got := waitBatch(t, batches)
	assert.Contains(t, got, a)
	assert.Contains(t, got, b)

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_WatchesNewSubdirectories(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	batches, cancel, done := startWatcher(t, New(50*time.Millisecond, nil, dir))

	sub := filepath.Join(dir, "pages")
	require.NoError(t, os.Mkdir(sub, 0o755))
	waitBatch(t, batches)

	page := filepath.Join(sub, "usage.md")
	require.NoError(t, os.WriteFile(page, []byte("# Usage"), 0o644))
	assert.Contains(t, waitBatch(t, batches), page)

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_IgnoresHiddenFiles(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	batches, cancel, done := startWatcher(t, New(50*time.Millisecond, nil, dir))

	require.NoError(t, os.WriteFile(filepath.Join(dir, ".swp"), []byte("x"), 0o644))
	visible := filepath.Join(dir, "v.md")
	require.NoError(t, os.WriteFile(visible, []byte("x"), 0o644))

	assert.Equal(t, []string{visible}, waitBatch(t, batches))

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_HandlerErrorKeepsWatching(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	calls := make(chan struct{}, 4)
	done := make(chan error, 1)
	go func() {
		done <- New(20*time.Millisecond, nil, dir).Run(ctx, func(context.Context, []string) error {
			calls <- struct{}{}
			return errors.New("check failed")
		})
	}()
	time.Sleep(100 * time.Millisecond)

	for i := 0; i < 2; i++ {
		require.NoError(t, os.WriteFile(filepath.Join(dir, "f.md"), []byte{byte(i)}, 0o644))
		select {
		case <-calls:
		case <-time.After(5 * time.Second):
			t.Fatalf("handler not called for change %d", i)
		}
	}

	cancel()
	require.NoError(t, <-done)
}

func TestWatcher_Errors(t *testing.T) {
	err := New(time.Millisecond, nil).Run(context.Background(), nil)
	assert.True(t, errors.Is(err, ErrNoPaths))

	err = New(time.Millisecond, nil, filepath.Join(t.TempDir(), "missing")).Run(context.Background(), nil)
	assert.Error(t, err)
}
