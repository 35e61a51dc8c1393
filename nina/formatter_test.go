package nina

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatReleases(t *testing.T) {
	var envelope struct {
		Release Release `json:"release"`
	}
	require.NoError(t, json.Unmarshal(loadFixture(t, "release.json"), &envelope))

	formatter := NewConsoleFormatter()

	t.Run("empty", func(t *testing.T) {
		assert.Equal(t, "No releases found", formatter.FormatReleases(nil, 0, FormatOptions{}))
	})

	t.Run("headings only", func(t *testing.T) {
		out := formatter.FormatReleases([]Release{envelope.Release}, 1, FormatOptions{})
		assert.Contains(t, out, "Release (1):")
		assert.Contains(t, out, "╰── "+envelope.Release.Metadata.Name)
		assert.NotContains(t, out, "Key: ")
	})

	t.Run("details and partial page", func(t *testing.T) {
		out := formatter.FormatReleases([]Release{envelope.Release, envelope.Release}, 10, FormatOptions{ShowDetails: true})
		assert.Contains(t, out, "Releases (2 of 10):")
		assert.Contains(t, out, "├── ")
		assert.Contains(t, out, "Key: "+envelope.Release.PublicKey)
		assert.Contains(t, out, "Tracks: 2")
	})
}

func TestFormatExchanges(t *testing.T) {
	exchanges := []Exchange{
		{PublicKey: "e1", IsSale: true, ExpectedAmount: "5", InitializerAmount: "1", Release: "r1"},
		{PublicKey: "e2", InitializerAmount: "3", ExpectedAmount: "1", Release: "r2", Cancelled: true},
		{PublicKey: "e3", InitializerAmount: "4", ExpectedAmount: "1", Release: "r3", CompletedBy: "buyer"},
	}

	out := NewConsoleFormatter().FormatExchanges(exchanges, 3, FormatOptions{})
	assert.Contains(t, out, "Sale of r1 for 5 USDC [open]")
	assert.Contains(t, out, "Buy offer of r2 for 3 USDC [cancelled]")
	assert.Contains(t, out, "Buy offer of r3 for 4 USDC [completed by buyer]")
}

func TestFormatSearch(t *testing.T) {
	formatter := NewConsoleFormatter()

	assert.Equal(t, "No results found", formatter.FormatSearch(&SearchResult{}))

	out := formatter.FormatSearch(&SearchResult{
		Releases: []string{"r1", "r2"},
		Artists:  []string{"a1"},
	})
	assert.Contains(t, out, "Releases (2):")
	assert.Contains(t, out, "Artist (1):")
	assert.NotContains(t, out, "Hub")
	assert.Less(t, strings.Index(out, "Release"), strings.Index(out, "Artist"))
}

func TestFormatHubData(t *testing.T) {
	var data HubData
	require.NoError(t, json.Unmarshal(loadFixture(t, "hub.json"), &data))
	data.Collaborators = []Collaborator{{PublicKey: "c1", CanAddContent: true}}

	out := NewConsoleFormatter().FormatHubData(&data, FormatOptions{})
	assert.Contains(t, out, "Nina's Picks (@ninas-picks)")
	assert.Contains(t, out, "Collaborator (1):")
	assert.Contains(t, out, "Can add: content")
	assert.NotContains(t, out, "Releases (")
}
