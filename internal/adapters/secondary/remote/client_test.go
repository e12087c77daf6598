package remote

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"co2-predictor-service/internal/config"
	"co2-predictor-service/internal/core/domain"
)

func TestFetch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/data.csv":
			w.Write([]byte("Weight,Volume,CO2\n790,1000,99\n"))
		default:
			http.NotFound(w, r)
		}
	}))
	defer srv.Close()

	c := NewClient(&config.RemoteConfig{Timeout: 5 * time.Second})
	dir := t.TempDir()
	dst := filepath.Join(dir, "sub", "data.csv")

	require.NoError(t, c.Fetch(context.Background(), srv.URL+"/data.csv", dst))
	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "Weight,Volume,CO2\n790,1000,99\n", string(data))
}

func TestFetch_NotFoundKeepsExistingFile(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	defer srv.Close()

	dst := filepath.Join(t.TempDir(), "co2_model.json")
	require.NoError(t, os.WriteFile(dst, []byte("previous"), 0o644))

	c := NewClient(&config.RemoteConfig{})
	err := c.Fetch(context.Background(), srv.URL+"/co2_model.json", dst)
	assert.ErrorIs(t, err, domain.ErrFetchFailed)

	data, err := os.ReadFile(dst)
	require.NoError(t, err)
	assert.Equal(t, "previous", string(data))

	entries, err := os.ReadDir(filepath.Dir(dst))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "temp file must be cleaned up")
}

func TestFetch_Cancelled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		<-r.Context().Done()
	}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := NewClient(&config.RemoteConfig{Timeout: time.Second})
	err := c.Fetch(ctx, srv.URL, filepath.Join(t.TempDir(), "x.csv"))
	assert.ErrorIs(t, err, domain.ErrFetchFailed)
}
