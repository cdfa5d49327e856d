// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"context"
	"fmt"
	"net/http"

	"github.com/pdiddy/paper-harvester/internal/store"
)

// download fetches url into destPath through a temporary file, so an
// interrupted transfer never shows up as a completed artifact on re-run.
// The HTTP client handles redirect following.
func download(ctx context.Context, client *http.Client, url, destPath, userAgent string) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)
	req.Header.Set("Accept", "application/pdf")

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("HTTP request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("HTTP %d from %s", resp.StatusCode, url)
	}

	return store.WriteStreamAtomic(destPath, resp.Body)
}
