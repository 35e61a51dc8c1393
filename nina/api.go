package nina

import (
	"context"
)

// API defines the interface for Nina operations
type API interface {
	// TestConnection verifies the client can reach the API
	TestConnection(ctx context.Context) error

	// Accounts
	ListAccounts(ctx context.Context, limit int) (*Page[AccountRef], error)
	GetAccount(ctx context.Context, publicKey string) (*Account, error)
	GetAccountCollected(ctx context.Context, publicKey string) ([]Release, error)
	GetAccountExchanges(ctx context.Context, publicKey string) ([]Exchange, error)
	GetAccountHubs(ctx context.Context, publicKey string) ([]Hub, error)
	GetAccountPosts(ctx context.Context, publicKey string) ([]Post, error)
	GetAccountPublished(ctx context.Context, publicKey string) ([]Release, error)

	// Exchanges
	ListExchanges(ctx context.Context, limit int) (*Page[Exchange], error)
	GetExchange(ctx context.Context, publicKey string) (*Exchange, error)

	// Hubs
	ListHubs(ctx context.Context, limit int) (*Page[Hub], error)
	GetHub(ctx context.Context, publicKeyOrHandle string) (*HubData, error)
	GetHubCollaborators(ctx context.Context, publicKeyOrHandle string) (*HubCollaborators, error)
	GetHubReleases(ctx context.Context, publicKeyOrHandle string) (*HubReleases, error)

	// Posts
	ListPosts(ctx context.Context, limit int) (*Page[Post], error)
	GetPost(ctx context.Context, publicKey string) (*Post, error)

	// Releases
	ListReleases(ctx context.Context, limit int) (*Page[Release], error)
	GetRelease(ctx context.Context, publicKey string) (*Release, error)
	GetReleaseCollectors(ctx context.Context, publicKey string) ([]AccountRef, error)
	GetReleaseHubs(ctx context.Context, publicKey string) ([]Hub, error)
	GetReleaseExchanges(ctx context.Context, publicKey string) ([]Exchange, error)

	// Search
	Search(ctx context.Context, query string) (*SearchResult, error)
}

// BatchFetcher provides concurrent fan-out over the single-resource endpoints
type BatchFetcher interface {
	BatchGetReleases(ctx context.Context, publicKeys []string) BatchResult[Release]
	BatchGetHubs(ctx context.Context, publicKeysOrHandles []string) BatchResult[Hub]
	ExpandHub(ctx context.Context, publicKeyOrHandle string) (*HubData, error)
	ResolveSearch(ctx context.Context, result *SearchResult) (*ResolvedSearch, error)
}
