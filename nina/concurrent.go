package nina

import (
	"context"
	"encoding/json"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// BatchResult contains the results of a batch fetch. Items keeps the order
// of the requested keys, minus the ones that failed.
type BatchResult[T any] struct {
	Requested int
	Items     []T
	Failed    []FetchError
}

// FetchError contains information about a failed fetch in a batch
type FetchError struct {
	Key string
	Err error
}

// Error implements the error interface
func (e FetchError) Error() string {
	return fmt.Sprintf("failed to fetch %s: %v", e.Key, e.Err)
}

// Unwrap returns the underlying error
func (e FetchError) Unwrap() error {
	return e.Err
}

// MarshalJSON encodes the key and the error message
func (e FetchError) MarshalJSON() ([]byte, error) {
	return json.Marshal(struct {
		Key   string `json:"key"`
		Error string `json:"error"`
	}{Key: e.Key, Error: fmt.Sprint(e.Err)})
}

// BatchGetReleases fetches releases concurrently
func (c *Client) BatchGetReleases(ctx context.Context, publicKeys []string) BatchResult[Release] {
	return batchFetch(ctx, c, publicKeys, c.GetRelease)
}

// BatchGetHubs fetches hubs concurrently by public key or handle
func (c *Client) BatchGetHubs(ctx context.Context, publicKeysOrHandles []string) BatchResult[Hub] {
	return batchFetch(ctx, c, publicKeysOrHandles, func(ctx context.Context, key string) (*Hub, error) {
		data, err := c.GetHub(ctx, key)
		if err != nil {
			return nil, err
		}
		return &data.Hub, nil
	})
}

// batchFetch runs fetchOne for every key with bounded concurrency. Failures
// are logged and collected; they never cancel the remaining fetches.
func batchFetch[T any](ctx context.Context, c *Client, keys []string, fetchOne func(context.Context, string) (*T, error)) BatchResult[T] {
	result := BatchResult[T]{
		Requested: len(keys),
		Items:     []T{},
	}
	if len(keys) == 0 {
		return result
	}

	items := make([]*T, len(keys))
	errs := make([]error, len(keys))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(c.concurrency)

	for i, key := range keys {
		g.Go(func() error {
			item, err := fetchOne(ctx, key)
			if err != nil {
				c.logger.Warn().
					Err(err).
					Str("key", key).
					Msg("Failed to fetch item in batch")
				// Continue with the other keys
				errs[i] = err
				return nil
			}
			items[i] = item
			return nil
		})
	}

	g.Wait()

	for i, key := range keys {
		if errs[i] != nil {
			result.Failed = append(result.Failed, FetchError{Key: key, Err: errs[i]})
			continue
		}
		result.Items = append(result.Items, *items[i])
	}

	return result
}

// ExpandHub retrieves a hub and fills in its collaborators and releases.
// Hub posts have no endpoint of their own; they are whatever the hub
// document carried.
func (c *Client) ExpandHub(ctx context.Context, publicKeyOrHandle string) (*HubData, error) {
	data, err := c.GetHub(ctx, publicKeyOrHandle)
	if err != nil {
		return nil, err
	}

	key := data.Hub.PublicKey
	if key == "" {
		key = publicKeyOrHandle
	}

	g, ctx := errgroup.WithContext(ctx)

	var (
		collaborators *HubCollaborators
		releases      *HubReleases
	)
	g.Go(func() error {
		var err error
		collaborators, err = c.GetHubCollaborators(ctx, key)
		return err
	})
	g.Go(func() error {
		var err error
		releases, err = c.GetHubReleases(ctx, key)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to expand hub %s: %w", publicKeyOrHandle, err)
	}

	data.Collaborators = collaborators.Collaborators
	data.Releases = releases.Releases
	return data, nil
}

// ResolvedSearch is a search result with releases and hubs fetched in full
type ResolvedSearch struct {
	Accounts []string     `json:"accounts"`
	Artists  []string     `json:"artists"`
	Releases []Release    `json:"releases"`
	Hubs     []Hub        `json:"hubs"`
	Failed   []FetchError `json:"failed,omitempty"`
}

// ResolveSearch fetches the releases and hubs referenced by a search result
func (c *Client) ResolveSearch(ctx context.Context, result *SearchResult) (*ResolvedSearch, error) {
	if result == nil {
		return nil, fmt.Errorf("ResolveSearch: nil search result")
	}

	var (
		releases BatchResult[Release]
		hubs     BatchResult[Hub]
	)

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		releases = c.BatchGetReleases(ctx, result.Releases)
		return nil
	})
	g.Go(func() error {
		hubs = c.BatchGetHubs(ctx, result.Hubs)
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	resolved := &ResolvedSearch{
		Accounts: result.Accounts,
		Artists:  result.Artists,
		Releases: releases.Items,
		Hubs:     hubs.Items,
	}
	resolved.Failed = append(resolved.Failed, releases.Failed...)
	resolved.Failed = append(resolved.Failed, hubs.Failed...)

	return resolved, nil
}
