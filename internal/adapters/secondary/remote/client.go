package remote

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"time"

	log "github.com/sirupsen/logrus"

	"co2-predictor-service/internal/config"
	"co2-predictor-service/internal/core/domain"
	output "co2-predictor-service/internal/core/ports/output"
)

type client struct {
	httpClient *http.Client
}

// NewClient returns a Fetcher. Failed downloads are not retried.
func NewClient(cfg *config.RemoteConfig) output.Fetcher {
	timeout := cfg.Timeout
	if timeout == 0 {
		timeout = 30 * time.Second
	}
	return &client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}
}

// Fetch downloads url into dstPath. The body is streamed to a temp file next to
// dstPath and renamed over it only after a complete read, so a failed download
// leaves any existing file untouched.
func (c *client) Fetch(ctx context.Context, url string, dstPath string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("%w: create request: %v", domain.ErrFetchFailed, err)
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("%w: %v", domain.ErrFetchFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("%w: GET %s: status %d", domain.ErrFetchFailed, url, resp.StatusCode)
	}

	dir := filepath.Dir(dstPath)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create destination dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(dstPath)+".download-*")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	n, err := io.Copy(tmp, resp.Body)
	if err != nil {
		tmp.Close()
		return fmt.Errorf("%w: read body: %v", domain.ErrFetchFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmpName, 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	if err := os.Rename(tmpName, dstPath); err != nil {
		return fmt.Errorf("replace %s: %w", dstPath, err)
	}

	log.WithFields(log.Fields{
		"url":        url,
		"path":       dstPath,
		"bytes":      n,
		"latency_ms": time.Since(start).Milliseconds(),
	}).Info("remote file downloaded")

	return nil
}

var _ output.Fetcher = (*client)(nil)
