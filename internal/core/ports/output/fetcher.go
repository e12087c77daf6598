package ports

import "context"

// Fetcher downloads a remote file and replaces dstPath with it as a whole.
type Fetcher interface {
	Fetch(ctx context.Context, url string, dstPath string) error
}
