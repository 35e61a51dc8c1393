package nina

import "context"

// ListPosts returns one page of posts. A limit of 0 selects the default.
func (c *Client) ListPosts(ctx context.Context, limit int) (*Page[Post], error) {
	return list[Post](ctx, c, "ListPosts", "/posts", "posts", limit)
}

// GetPost retrieves a single post
func (c *Client) GetPost(ctx context.Context, publicKey string) (*Post, error) {
	const op = "GetPost"
	if err := requireKey(op, publicKey); err != nil {
		return nil, err
	}

	post, err := get(ctx, c, op, resourcePath("posts", publicKey), member[Post]("post"))
	if err != nil {
		return nil, err
	}
	return &post, nil
}
