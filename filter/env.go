package filter

import (
	"strings"
	"time"

	"github.com/s0up4200/nina/nina"
)

// Env is the variable set a filter is evaluated against
type Env map[string]any

// Key returns the public key of the entity behind the environment
func (e Env) Key() string {
	key, _ := e["Key"].(string)
	return key
}

// commonHelpers are available to every filter
func commonHelpers(env Env) {
	env["daysSince"] = func(t time.Time) int {
		if t.IsZero() {
			return -1
		}
		return int(time.Since(t).Hours() / 24)
	}
	env["daysAgo"] = func(days int) time.Time {
		return time.Now().AddDate(0, 0, -days)
	}
	env["monthsAgo"] = func(months int) time.Time {
		return time.Now().AddDate(0, -months, 0)
	}
	env["yearsAgo"] = func(years int) time.Time {
		return time.Now().AddDate(-years, 0, 0)
	}
	env["parseDate"] = func(s string) time.Time {
		t, _ := time.Parse("2006-01-02", s)
		return t
	}
	env["contains"] = func(s, substr string) bool {
		return strings.Contains(strings.ToLower(s), strings.ToLower(substr))
	}
	env["startsWith"] = func(s, prefix string) bool {
		return strings.HasPrefix(strings.ToLower(s), strings.ToLower(prefix))
	}
	env["endsWith"] = func(s, suffix string) bool {
		return strings.HasSuffix(strings.ToLower(s), strings.ToLower(suffix))
	}
	env["lower"] = strings.ToLower
	env["upper"] = strings.ToUpper
	env["now"] = time.Now
}

// compileEnv declares every helper so calls are type-checked at compile
// time. Entity-bound helpers are replaced per evaluation.
func compileEnv() Env {
	env := make(Env, 24)
	commonHelpers(env)
	env["hasFile"] = func(string) bool { return false }
	env["hasTrack"] = func(string) bool { return false }
	return env
}

// ReleaseEnv exposes a release to filters.
//
//	Key, Mint, Name, Title, Artist, Symbol, Category, Publisher, Hub,
//	Published, Tracks, Duration (seconds), Description
//
// hasFile(type) matches a file MIME type prefix, hasTrack(title) a track title.
func ReleaseEnv(r nina.Release) Env {
	env := make(Env, 32)
	commonHelpers(env)

	props := r.Metadata.Properties
	env["Key"] = r.PublicKey
	env["Mint"] = r.Mint
	env["Name"] = r.Metadata.Name
	env["Title"] = props.Title
	env["Artist"] = props.Artist
	env["Symbol"] = r.Metadata.Symbol
	env["Category"] = props.Category
	env["Description"] = r.Metadata.Description
	env["Publisher"] = r.Publisher
	env["Hub"] = r.PublishedThroughHub
	env["Published"] = r.PublishedAt()
	env["Tracks"] = len(props.Files)
	env["Duration"] = r.Duration().Seconds()

	files := props.Files
	env["hasFile"] = func(mimeType string) bool {
		for _, f := range files {
			if strings.HasPrefix(strings.ToLower(f.Type), strings.ToLower(mimeType)) {
				return true
			}
		}
		return false
	}
	env["hasTrack"] = func(title string) bool {
		for _, f := range files {
			if strings.Contains(strings.ToLower(f.TrackTitle), strings.ToLower(title)) {
				return true
			}
		}
		return false
	}

	return env
}

// HubEnv exposes a hub to filters: Key, Handle, Name, Description,
// Authority, URL, Created.
func HubEnv(h nina.Hub) Env {
	env := make(Env, 24)
	commonHelpers(env)

	env["Key"] = h.PublicKey
	env["Handle"] = h.Handle
	env["Name"] = h.DisplayName
	env["Description"] = h.Description
	env["Authority"] = h.Authority
	env["URL"] = h.ExternalURL
	env["Created"] = h.CreatedAt()

	return env
}

// PostEnv exposes a post to filters: Key, Title, Body, Publisher, Hub,
// Reference, HasReference, Published.
func PostEnv(p nina.Post) Env {
	env := make(Env, 24)
	commonHelpers(env)

	env["Key"] = p.PublicKey
	env["Title"] = p.Title
	env["Body"] = p.Body
	env["Publisher"] = p.Publisher
	env["Hub"] = p.PublishedThroughHub
	env["Reference"] = p.Reference
	env["HasReference"] = p.HasReference()
	env["Published"] = p.PublishedAt()

	return env
}

// ExchangeEnv exposes an exchange to filters: Key, Release, Initializer,
// CompletedBy, IsSale, Cancelled, Completed, Open, Price.
func ExchangeEnv(e nina.Exchange) Env {
	env := make(Env, 24)
	commonHelpers(env)

	env["Key"] = e.PublicKey
	env["Release"] = e.Release
	env["Initializer"] = e.Initializer
	env["CompletedBy"] = e.CompletedBy
	env["IsSale"] = e.IsSale
	env["Cancelled"] = e.Cancelled
	env["Completed"] = e.IsCompleted()
	env["Open"] = e.IsOpen()
	env["Price"] = e.Price().Float64()

	return env
}
