package config

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type reload struct {
	cfg *Config
	err error
}

func startWatcher(t *testing.T, path string) <-chan reload {
	t.Helper()
	ch := make(chan reload, 8)
	w, err := NewWatcher(path, func(cfg *Config, err error) {
		ch <- reload{cfg, err}
	}, WithDebounce(20*time.Millisecond))
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- w.Run(ctx) }()
	t.Cleanup(func() {
		cancel()
		<-done
	})
	return ch
}

func next(t *testing.T, ch <-chan reload) reload {
	t.Helper()
	select {
	case r := <-ch:
		return r
	case <-time.After(5 * time.Second):
		t.Fatal("no reload delivered")
		return reload{}
	}
}

func TestWatchReloadsOnWrite(t *testing.T) {
	path := writeFile(t, "caret.toml", "[caret]\nwidth = 2.0\n")
	ch := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte("[caret]\nwidth = 4.0\n"), 0o644))

	r := next(t, ch)
	require.NoError(t, r.err)
	assert.Equal(t, 4.0, r.cfg.Caret.Width)
}

func TestWatchReportsBadFile(t *testing.T) {
	path := writeFile(t, "caret.toml", "[caret]\nwidth = 2.0\n")
	ch := startWatcher(t, path)

	require.NoError(t, os.WriteFile(path, []byte("[caret\n"), 0o644))

	r := next(t, ch)
	var pe *ParseError
	assert.ErrorAs(t, r.err, &pe)
	assert.Nil(t, r.cfg)
}

func TestWatchIgnoresSiblings(t *testing.T) {
	path := writeFile(t, "caret.toml", "[caret]\nwidth = 2.0\n")
	ch := startWatcher(t, path)

	require.NoError(t, os.WriteFile(filepath.Join(filepath.Dir(path), "other.toml"), []byte("x = 1\n"), 0o644))

	select {
	case r := <-ch:
		t.Fatalf("unexpected reload: %+v", r)
	case <-time.After(200 * time.Millisecond):
	}
}

func TestWatchStopsWithContext(t *testing.T) {
	path := writeFile(t, "caret.toml", "")
	w, err := NewWatcher(path, func(*Config, error) {})
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	assert.ErrorIs(t, w.Run(ctx), context.Canceled)
}

func TestNewWatcherMissingDirectory(t *testing.T) {
	_, err := NewWatcher(filepath.Join(t.TempDir(), "missing", "caret.toml"), func(*Config, error) {})
	assert.Error(t, err)
}
