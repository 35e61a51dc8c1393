package nina

import "context"

// ListExchanges returns one page of exchanges. A limit of 0 selects the default.
func (c *Client) ListExchanges(ctx context.Context, limit int) (*Page[Exchange], error) {
	return list[Exchange](ctx, c, "ListExchanges", "/exchanges", "exchanges", limit)
}

// GetExchange retrieves a single exchange
func (c *Client) GetExchange(ctx context.Context, publicKey string) (*Exchange, error) {
	const op = "GetExchange"
	if err := requireKey(op, publicKey); err != nil {
		return nil, err
	}

	exchange, err := get(ctx, c, op, resourcePath("exchanges", publicKey), member[Exchange]("exchange"))
	if err != nil {
		return nil, err
	}
	return &exchange, nil
}
