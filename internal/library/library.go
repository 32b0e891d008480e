package library

import (
	"context"

	"github.com/handiism/lessondl/internal/http"
	"github.com/handiism/lessondl/internal/model"
)

// Library resolves playlist ids into playlists by fetching and parsing
// their player pages.
type Library struct {
	fetcher *Fetcher
	parser  *Parser
}

// New creates a Library talking to baseURL through client.
func New(client *http.Client, baseURL string) *Library {
	return &Library{
		fetcher: NewFetcher(client, baseURL),
		parser:  NewParser(),
	}
}

// Resolve fetches the player page for id and parses it.
//
// Errors from either stage are returned unchanged; see Fetcher.Fetch and
// Parser.Parse.
func (l *Library) Resolve(ctx context.Context, id string, creds Credentials) (*model.Playlist, error) {
	page, err := l.fetcher.Fetch(ctx, id, creds)
	if err != nil {
		return nil, err
	}
	return l.parser.Parse(id, page)
}

// PageURL returns the player page URL for id.
func (l *Library) PageURL(id string) string {
	return l.fetcher.URL(id)
}
