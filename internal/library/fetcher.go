package library

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/handiism/lessondl/internal/http"
)

// DefaultBaseURL is the library host serving player pages.
const DefaultBaseURL = "https://library.michelthomas.com"

var itemsMarker = []byte("<items>")

// Fetcher downloads player pages for playlist ids.
//
// Example usage:
//
//	fetcher := NewFetcher(http.NewClient(), DefaultBaseURL)
//	page, err := fetcher.Fetch(ctx, "abc123", creds)
//	if errors.Is(err, ErrMalformedResponse) {
//	    fmt.Println("session expired, copy fresh cookies from the browser")
//	}
type Fetcher struct {
	client  *http.Client
	baseURL string
}

// NewFetcher creates a Fetcher. An empty baseURL means DefaultBaseURL.
func NewFetcher(client *http.Client, baseURL string) *Fetcher {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Fetcher{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
	}
}

// URL returns the player page URL for id.
func (f *Fetcher) URL(id string) string {
	return f.baseURL + "/" + strings.TrimLeft(id, "/")
}

// Fetch retrieves the raw player page for id.
//
// Returns:
//   - *http.TransportError if the status is not 2xx
//   - an error wrapping ErrMalformedResponse if the body has no <items> marker
func (f *Fetcher) Fetch(ctx context.Context, id string, creds Credentials) ([]byte, error) {
	body, err := f.client.GetPage(ctx, f.URL(id), creds.Cookies())
	if err != nil {
		return nil, fmt.Errorf("fetch player page %s: %w", id, err)
	}

	if !bytes.Contains(body, itemsMarker) {
		return nil, fmt.Errorf("playlist %s: %w", id, ErrMalformedResponse)
	}

	return body, nil
}
