// Package filter evaluates expr-lang boolean expressions against Nina
// releases, hubs, posts and exchanges.
//
// Every expression can use these helpers:
//
//	daysSince(t), daysAgo(n), monthsAgo(n), yearsAgo(n), parseDate("2006-01-02"), now()
//	contains(s, sub), startsWith(s, p), endsWith(s, suf), lower(s), upper(s)
//
// Release filters can also call hasFile(mimeType) and hasTrack(title).
// The variables available per entity are listed on ReleaseEnv, HubEnv,
// PostEnv and ExchangeEnv.
//
//	Artist == "Surf Curse" and daysSince(Published) < 30
//	IsSale and Open and Price <= 5
package filter
