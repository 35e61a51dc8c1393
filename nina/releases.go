package nina

import "context"

// ListReleases returns one page of releases. A limit of 0 selects the default.
func (c *Client) ListReleases(ctx context.Context, limit int) (*Page[Release], error) {
	return list[Release](ctx, c, "ListReleases", "/releases", "releases", limit)
}

// GetRelease retrieves a single release
func (c *Client) GetRelease(ctx context.Context, publicKey string) (*Release, error) {
	const op = "GetRelease"
	if err := requireKey(op, publicKey); err != nil {
		return nil, err
	}

	release, err := get(ctx, c, op, resourcePath("releases", publicKey), member[Release]("release"))
	if err != nil {
		return nil, err
	}
	return &release, nil
}

// GetReleaseCollectors retrieves the accounts that collected a release
func (c *Client) GetReleaseCollectors(ctx context.Context, publicKey string) ([]AccountRef, error) {
	const op = "GetReleaseCollectors"
	if err := requireKey(op, publicKey); err != nil {
		return nil, err
	}
	return get(ctx, c, op, resourcePath("releases", publicKey, "collectors"), member[[]AccountRef]("collectors"))
}

// GetReleaseHubs retrieves the hubs a release has been posted to
func (c *Client) GetReleaseHubs(ctx context.Context, publicKey string) ([]Hub, error) {
	const op = "GetReleaseHubs"
	if err := requireKey(op, publicKey); err != nil {
		return nil, err
	}
	return get(ctx, c, op, resourcePath("releases", publicKey, "hubs"), member[[]Hub]("hubs"))
}

// GetReleaseExchanges retrieves the exchanges opened for a release
func (c *Client) GetReleaseExchanges(ctx context.Context, publicKey string) ([]Exchange, error) {
	const op = "GetReleaseExchanges"
	if err := requireKey(op, publicKey); err != nil {
		return nil, err
	}
	return get(ctx, c, op, resourcePath("releases", publicKey, "exchanges"), member[[]Exchange]("exchanges"))
}
