package nina

import "context"

// ListAccounts returns one page of accounts. A limit of 0 selects the default.
func (c *Client) ListAccounts(ctx context.Context, limit int) (*Page[AccountRef], error) {
	return list[AccountRef](ctx, c, "ListAccounts", "/accounts", "accounts", limit)
}

// GetAccount retrieves an account with its releases, exchanges, hubs and posts
func (c *Client) GetAccount(ctx context.Context, publicKey string) (*Account, error) {
	const op = "GetAccount"
	if err := requireKey(op, publicKey); err != nil {
		return nil, err
	}

	account, err := get(ctx, c, op, resourcePath("accounts", publicKey), document[Account])
	if err != nil {
		return nil, err
	}

	// The account document does not always echo its own key
	if account.PublicKey == "" {
		account.PublicKey = publicKey
	}
	return &account, nil
}

// GetAccountCollected retrieves the releases collected by an account
func (c *Client) GetAccountCollected(ctx context.Context, publicKey string) ([]Release, error) {
	return c.accountReleases(ctx, "GetAccountCollected", publicKey, "collected")
}

// GetAccountPublished retrieves the releases published by an account
func (c *Client) GetAccountPublished(ctx context.Context, publicKey string) ([]Release, error) {
	return c.accountReleases(ctx, "GetAccountPublished", publicKey, "published")
}

// GetAccountExchanges retrieves the exchanges an account initialized or completed
func (c *Client) GetAccountExchanges(ctx context.Context, publicKey string) ([]Exchange, error) {
	const op = "GetAccountExchanges"
	if err := requireKey(op, publicKey); err != nil {
		return nil, err
	}
	return get(ctx, c, op, resourcePath("accounts", publicKey, "exchanges"), member[[]Exchange]("exchanges"))
}

// GetAccountHubs retrieves the hubs an account collaborates on
func (c *Client) GetAccountHubs(ctx context.Context, publicKey string) ([]Hub, error) {
	const op = "GetAccountHubs"
	if err := requireKey(op, publicKey); err != nil {
		return nil, err
	}
	return get(ctx, c, op, resourcePath("accounts", publicKey, "hubs"), member[[]Hub]("hubs"))
}

// GetAccountPosts retrieves the posts made by an account
func (c *Client) GetAccountPosts(ctx context.Context, publicKey string) ([]Post, error) {
	const op = "GetAccountPosts"
	if err := requireKey(op, publicKey); err != nil {
		return nil, err
	}
	return get(ctx, c, op, resourcePath("accounts", publicKey, "posts"), member[[]Post]("posts"))
}

func (c *Client) accountReleases(ctx context.Context, op, publicKey, collection string) ([]Release, error) {
	if err := requireKey(op, publicKey); err != nil {
		return nil, err
	}
	return get(ctx, c, op, resourcePath("accounts", publicKey, collection), member[[]Release](collection))
}
