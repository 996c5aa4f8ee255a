// Package clients provides the HTTP plumbing shared by the price providers.
package clients

import (
	"context"
	"io"
	"net/http"
	"time"

	"github.com/pkg/errors"
)

const userAgent = "VaultChain-Tracker/0.1 (+https://github.com/vaultchain/tracker)"

// New returns an HTTP client with a hard cap on total request time.
// Individual fetchers additionally bound each call with a context timeout.
func New(timeout time.Duration) *http.Client {
	return &http.Client{Timeout: timeout}
}

// GetJSON performs a context-aware GET and returns the raw response body.
// Any non-200 status is an error; providers that embed rate-limit notices
// in 200 responses are handled by the callers.
func GetJSON(ctx context.Context, client *http.Client, addr string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, addr, nil)
	if err != nil {
		return nil, errors.Wrap(err, "build request")
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", userAgent)

	resp, err := client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, errors.Errorf("GET %s%s: %s", req.URL.Host, req.URL.Path, resp.Status)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, errors.Wrap(err, "read response body")
	}
	return body, nil
}
