package nina

import (
	"context"
	"fmt"
	"net/http"
	"strings"
)

// Search looks up accounts, releases, hubs and artists matching query
func (c *Client) Search(ctx context.Context, query string) (*SearchResult, error) {
	const op = "Search"
	if strings.TrimSpace(query) == "" {
		return nil, fmt.Errorf("%s: %w", op, ErrEmptyQuery)
	}

	result, err := fetch(ctx, c, request{
		op:     op,
		method: http.MethodPost,
		path:   "/search",
		body:   map[string]string{"query": query},
	}, document[SearchResult])
	if err != nil {
		return nil, err
	}

	c.logger.Debug().
		Str("query", query).
		Int("accounts", len(result.Accounts)).
		Int("releases", len(result.Releases)).
		Int("hubs", len(result.Hubs)).
		Int("artists", len(result.Artists)).
		Msg("Search completed")

	return &result, nil
}
