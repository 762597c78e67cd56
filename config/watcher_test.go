package config

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// configSink collects configs delivered by Watch in a goroutine-safe way.
type configSink struct {
	mu   sync.Mutex
	cfgs []*Base
}

func (s *configSink) onChange(cfg *Base) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cfgs = append(s.cfgs, cfg)
}

func (s *configSink) last() *Base {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.cfgs) == 0 {
		return nil
	}
	return s.cfgs[len(s.cfgs)-1]
}

func TestWatch_DeliversUpdatedConfig(t *testing.T) {
	// Arrange
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("logging:\n  level: info\n"), 0o600))

	sink := &configSink{}
	require.NoError(t, Watch(ctx, p, sink.onChange))

	// Act
	require.NoError(t, os.WriteFile(p, []byte("logging:\n  level: debug\n"), 0o600))

	// Assert
	assert.Eventually(t, func() bool {
		cfg := sink.last()
		return cfg != nil && cfg.Logging.Level == "debug"
	}, 3*time.Second, 20*time.Millisecond)
}

func TestWatch_SkipsUnparseableWrite(t *testing.T) {
	// Arrange
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	p := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("logging:\n  level: info\n"), 0o600))

	sink := &configSink{}
	require.NoError(t, Watch(ctx, p, sink.onChange))

	// Act: a torn write first, then a valid one.
	require.NoError(t, os.WriteFile(p, []byte("logging: [broken"), 0o600))
	time.Sleep(300 * time.Millisecond)
	require.NoError(t, os.WriteFile(p, []byte("logging:\n  level: warn\n"), 0o600))

	// Assert: only valid configs ever reach the callback.
	assert.Eventually(t, func() bool {
		cfg := sink.last()
		return cfg != nil && cfg.Logging.Level == "warn"
	}, 3*time.Second, 20*time.Millisecond)

	sink.mu.Lock()
	defer sink.mu.Unlock()
	for _, cfg := range sink.cfgs {
		assert.NotEmpty(t, cfg.Logging.Level)
	}
}

func TestWatch_IgnoresOtherFilesInDirectory(t *testing.T) {
	// Arrange
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	dir := t.TempDir()
	p := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(p, []byte("logging:\n  level: info\n"), 0o600))

	sink := &configSink{}
	require.NoError(t, Watch(ctx, p, sink.onChange))

	// Act
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other.yaml"), []byte("x: y\n"), 0o600))

	// Assert
	time.Sleep(300 * time.Millisecond)
	assert.Nil(t, sink.last())
}

func TestWatch_MissingDirectory(t *testing.T) {
	err := Watch(context.Background(), "/nonexistent/dir/config.yaml", func(*Base) {})
	assert.Error(t, err)
}
