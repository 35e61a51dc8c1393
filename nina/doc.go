// Package nina provides a client for the Nina Protocol REST API.
//
// Nina is a music publishing protocol. Its public API exposes accounts,
// releases, exchanges (buy offers and sale listings), hubs (curated
// publishing channels) and posts. This package maps every read endpoint
// onto one Client method and decodes the responses into typed values.
//
// # Usage
//
//	logger := zerolog.New(os.Stderr)
//	client, err := nina.NewClient(nina.DefaultBaseURL, logger,
//		nina.WithTimeout(10*time.Second),
//		nina.WithDefaultLimit(50),
//	)
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	hub, err := client.GetHub(ctx, "ninas-picks")
//	if errors.Is(err, nina.ErrNotFound) {
//		// no such hub
//	}
//
//	page, err := client.ListReleases(ctx, 10)
//	fmt.Println(len(page.Items), "of", page.Total)
//
// # Decoding
//
// Every entity implements json.Unmarshaler and can be decoded without a
// Client. Required fields that are absent produce a *MissingFieldError;
// optional ones (publishedThroughHub, duration, completedBy, descriptionHtml,
// bodyHtml, reference, md5Digest) fall back to their zero value and lists
// fall back to empty slices.
//
// # Error Handling
//
// A non-200 answer is logged with the endpoint name and returned as an
// *APIError alongside a nil result. Transport failures are wrapped and
// returned as-is. Nothing is retried.
//
//	var apiErr *nina.APIError
//	if errors.As(err, &apiErr) && apiErr.IsServerError() {
//		// try again later
//	}
//
// # Concurrency
//
// A Client is safe for concurrent use. BatchGetReleases, BatchGetHubs,
// ExpandHub and ResolveSearch fan out with a bounded errgroup.
package nina
