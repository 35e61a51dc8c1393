package nina

import (
	"context"
	"net/http"
)

// ListHubs returns one page of hubs. A limit of 0 selects the default.
func (c *Client) ListHubs(ctx context.Context, limit int) (*Page[Hub], error) {
	return list[Hub](ctx, c, "ListHubs", "/hubs", "hubs", limit)
}

// GetHub retrieves a hub by public key or handle
func (c *Client) GetHub(ctx context.Context, publicKeyOrHandle string) (*HubData, error) {
	const op = "GetHub"
	if err := requireKey(op, publicKeyOrHandle); err != nil {
		return nil, err
	}

	hub, err := get(ctx, c, op, resourcePath("hubs", publicKeyOrHandle), document[HubData])
	if err != nil {
		return nil, err
	}
	return &hub, nil
}

// GetHubCollaborators retrieves the collaborators of a hub
func (c *Client) GetHubCollaborators(ctx context.Context, publicKeyOrHandle string) (*HubCollaborators, error) {
	const op = "GetHubCollaborators"
	if err := requireKey(op, publicKeyOrHandle); err != nil {
		return nil, err
	}

	return fetch(ctx, c, request{
		op:     op,
		method: http.MethodGet,
		path:   resourcePath("hubs", publicKeyOrHandle, "collaborators"),
	}, func(data []byte) (*HubCollaborators, error) {
		envelope, err := decodeEnvelope(data)
		if err != nil {
			return nil, err
		}
		var result HubCollaborators
		if err := decodeMember(envelope, "collaborators", &result.Collaborators); err != nil {
			return nil, err
		}
		if err := decodeMember(envelope, "publicKey", &result.PublicKey); err != nil {
			return nil, err
		}
		result.Collaborators = orEmpty(result.Collaborators)
		return &result, nil
	})
}

// GetHubReleases retrieves the releases posted to a hub
func (c *Client) GetHubReleases(ctx context.Context, publicKeyOrHandle string) (*HubReleases, error) {
	const op = "GetHubReleases"
	if err := requireKey(op, publicKeyOrHandle); err != nil {
		return nil, err
	}

	return fetch(ctx, c, request{
		op:     op,
		method: http.MethodGet,
		path:   resourcePath("hubs", publicKeyOrHandle, "releases"),
	}, func(data []byte) (*HubReleases, error) {
		envelope, err := decodeEnvelope(data)
		if err != nil {
			return nil, err
		}
		var result HubReleases
		if err := decodeMember(envelope, "releases", &result.Releases); err != nil {
			return nil, err
		}
		if err := decodeMember(envelope, "publicKey", &result.PublicKey); err != nil {
			return nil, err
		}
		result.Releases = orEmpty(result.Releases)
		return &result, nil
	})
}
