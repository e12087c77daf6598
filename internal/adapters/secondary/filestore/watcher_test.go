package filestore

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"co2-predictor-service/internal/core/domain"
)

func TestWatch_ReportsReplacement(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "co2_model.json")

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan *domain.ModelArtifact, 16)
	done := make(chan error, 1)
	go func() {
		done <- Watch(ctx, path, func(a *domain.ModelArtifact) { changes <- a })
	}()

	want := newArtifact(time.Now().UTC(), 0.7)
	var got *domain.ModelArtifact
	assert.Eventually(t, func() bool {
		if err := WriteFile(path, want); err != nil {
			return false
		}
		select {
		case got = <-changes:
			return true
		case <-time.After(100 * time.Millisecond):
			return false
		}
	}, 5*time.Second, 50*time.Millisecond)
	require.NotNil(t, got)
	assert.Equal(t, want.ID, got.ID)

	// Garbage in the watched file is skipped rather than reported.
	require.NoError(t, os.WriteFile(path, []byte("not json"), 0o644))
	select {
	case a := <-changes:
		assert.Equal(t, want.ID, a.ID, "only stale events for the previous artifact are allowed")
	case <-time.After(200 * time.Millisecond):
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("watcher did not stop")
	}
}
