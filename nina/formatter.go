package nina

import (
	"fmt"
	"strings"
	"time"
)

// FormatOptions contains options for formatting output
type FormatOptions struct {
	ShowDetails bool
}

// ConsoleFormatter provides console output formatting for Nina entities
type ConsoleFormatter struct{}

// NewConsoleFormatter creates a new console formatter
func NewConsoleFormatter() *ConsoleFormatter {
	return &ConsoleFormatter{}
}

// treeEntry is one node of the console tree
type treeEntry struct {
	heading string
	details []string
}

// writeTree renders entries under a "<noun>s (n):" header
func writeTree(sb *strings.Builder, noun string, total int, entries []treeEntry, showDetails bool) {
	sb.WriteString("\n" + noun)
	if len(entries) != 1 {
		sb.WriteString("s")
	}
	if total > len(entries) {
		fmt.Fprintf(sb, " (%d of %d):\n\n", len(entries), total)
	} else {
		fmt.Fprintf(sb, " (%d):\n\n", len(entries))
	}

	for i, entry := range entries {
		isLast := i == len(entries)-1
		prefix := "\u251c"
		if isLast {
			prefix = "\u2570"
		}

		fmt.Fprintf(sb, "%s\u2500\u2500 %s\n", prefix, entry.heading)

		indent := "\u2502   "
		if isLast {
			indent = "    "
		}

		if showDetails {
			for _, line := range entry.details {
				if line != "" {
					fmt.Fprintf(sb, "%s%s\n", indent, line)
				}
			}
		}

		if !isLast {
			sb.WriteString("\u2502\n")
		}
	}

	sb.WriteString("\n")
}

// FormatReleases formats a list of releases
func (f *ConsoleFormatter) FormatReleases(releases []Release, total int, options FormatOptions) string {
	if len(releases) == 0 {
		return "No releases found"
	}

	entries := make([]treeEntry, 0, len(releases))
	for _, r := range releases {
		entries = append(entries, releaseEntry(r))
	}

	var sb strings.Builder
	writeTree(&sb, "Release", total, entries, options.ShowDetails)
	return sb.String()
}

func releaseEntry(r Release) treeEntry {
	heading := r.Metadata.Name
	if heading == "" {
		heading = r.Metadata.Properties.Artist + " - " + r.Metadata.Properties.Title
	}

	details := []string{
		"Key: " + r.PublicKey,
		"Publisher: " + r.Publisher,
	}
	if published := r.PublishedAt(); !published.IsZero() {
		details = append(details, "Published: "+published.Format("2006-01-02"))
	}
	if r.PublishedThroughHub != "" {
		details = append(details, "Hub: "+r.PublishedThroughHub)
	}
	if files := r.Metadata.Properties.Files; len(files) > 0 {
		tracks := fmt.Sprintf("Tracks: %d", len(files))
		if d := r.Duration(); d > 0 {
			tracks += fmt.Sprintf(" (%s)", d.Round(time.Second))
		}
		details = append(details, tracks)
	}

	return treeEntry{heading: heading, details: details}
}

// FormatRelease formats a single release with its track listing
func (f *ConsoleFormatter) FormatRelease(r *Release) string {
	var sb strings.Builder
	entry := releaseEntry(*r)

	fmt.Fprintf(&sb, "\n%s\n", entry.heading)
	for _, line := range entry.details {
		fmt.Fprintf(&sb, "  %s\n", line)
	}
	if r.Metadata.Description != "" {
		fmt.Fprintf(&sb, "  Description: %s\n", r.Metadata.Description)
	}
	if r.Metadata.ExternalURL != "" {
		fmt.Fprintf(&sb, "  URL: %s\n", r.Metadata.ExternalURL)
	}
	for _, file := range r.Metadata.Properties.Files {
		fmt.Fprintf(&sb, "  %02d. %s", file.Track, file.TrackTitle)
		if file.Duration > 0 {
			fmt.Fprintf(&sb, " [%s]", time.Duration(file.Duration)*time.Second)
		}
		sb.WriteString("\n")
	}

	return sb.String()
}

// FormatHubs formats a list of hubs
func (f *ConsoleFormatter) FormatHubs(hubs []Hub, total int, options FormatOptions) string {
	if len(hubs) == 0 {
		return "No hubs found"
	}

	entries := make([]treeEntry, 0, len(hubs))
	for _, h := range hubs {
		entries = append(entries, hubEntry(h))
	}

	var sb strings.Builder
	writeTree(&sb, "Hub", total, entries, options.ShowDetails)
	return sb.String()
}

func hubEntry(h Hub) treeEntry {
	details := []string{
		"Key: " + h.PublicKey,
		"Authority: " + h.Authority,
	}
	if created := h.CreatedAt(); !created.IsZero() {
		details = append(details, "Created: "+created.Format("2006-01-02"))
	}
	if h.ExternalURL != "" {
		details = append(details, "URL: "+h.ExternalURL)
	}

	return treeEntry{
		heading: fmt.Sprintf("%s (@%s)", h.DisplayName, h.Handle),
		details: details,
	}
}

// FormatHubData formats a hub and whatever collaborators and releases it carries
func (f *ConsoleFormatter) FormatHubData(data *HubData, options FormatOptions) string {
	var sb strings.Builder
	entry := hubEntry(data.Hub)

	fmt.Fprintf(&sb, "\n%s\n", entry.heading)
	for _, line := range entry.details {
		fmt.Fprintf(&sb, "  %s\n", line)
	}
	if data.Hub.Description != "" {
		fmt.Fprintf(&sb, "  Description: %s\n", data.Hub.Description)
	}

	if len(data.Collaborators) > 0 {
		sb.WriteString(f.FormatCollaborators(data.Collaborators))
	}
	if len(data.Releases) > 0 {
		sb.WriteString(f.FormatReleases(data.Releases, len(data.Releases), options))
	}

	return sb.String()
}

// FormatCollaborators formats hub collaborators
func (f *ConsoleFormatter) FormatCollaborators(collaborators []Collaborator) string {
	if len(collaborators) == 0 {
		return "No collaborators found"
	}

	entries := make([]treeEntry, 0, len(collaborators))
	for _, c := range collaborators {
		var perms []string
		if c.CanAddContent {
			perms = append(perms, "content")
		}
		if c.CanAddCollaborator {
			perms = append(perms, "collaborators")
		}

		var details []string
		if len(perms) > 0 {
			details = append(details, "Can add: "+strings.Join(perms, ", "))
		}
		entries = append(entries, treeEntry{heading: c.PublicKey, details: details})
	}

	var sb strings.Builder
	writeTree(&sb, "Collaborator", len(collaborators), entries, true)
	return sb.String()
}

// FormatExchanges formats a list of exchanges
func (f *ConsoleFormatter) FormatExchanges(exchanges []Exchange, total int, options FormatOptions) string {
	if len(exchanges) == 0 {
		return "No exchanges found"
	}

	entries := make([]treeEntry, 0, len(exchanges))
	for _, e := range exchanges {
		kind := "Buy offer"
		if e.IsSale {
			kind = "Sale"
		}

		status := "open"
		switch {
		case e.Cancelled:
			status = "cancelled"
		case e.IsCompleted():
			status = "completed by " + e.CompletedBy
		}

		entries = append(entries, treeEntry{
			heading: fmt.Sprintf("%s of %s for %s USDC [%s]", kind, e.Release, e.Price(), status),
			details: []string{
				"Key: " + e.PublicKey,
				"Initializer: " + e.Initializer,
				"Created: " + e.CreatedAt,
				"Updated: " + e.UpdatedAt,
			},
		})
	}

	var sb strings.Builder
	writeTree(&sb, "Exchange", total, entries, options.ShowDetails)
	return sb.String()
}

// FormatPosts formats a list of posts
func (f *ConsoleFormatter) FormatPosts(posts []Post, total int, options FormatOptions) string {
	if len(posts) == 0 {
		return "No posts found"
	}

	entries := make([]treeEntry, 0, len(posts))
	for _, p := range posts {
		details := []string{
			"Key: " + p.PublicKey,
			"Publisher: " + p.Publisher,
			"Hub: " + p.PublishedThroughHub,
		}
		if p.HasReference() {
			details = append(details, "Release: "+p.Reference)
		}
		entries = append(entries, treeEntry{heading: p.Title, details: details})
	}

	var sb strings.Builder
	writeTree(&sb, "Post", total, entries, options.ShowDetails)
	return sb.String()
}

// FormatAccount formats an account summary
func (f *ConsoleFormatter) FormatAccount(a *Account) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "\nAccount %s\n", a.PublicKey)
	fmt.Fprintf(&sb, "  Published: %d\n", len(a.Published))
	fmt.Fprintf(&sb, "  Collected: %d\n", len(a.Collected))
	fmt.Fprintf(&sb, "  Exchanges: %d\n", len(a.Exchanges))
	fmt.Fprintf(&sb, "  Hubs: %d\n", len(a.Hubs))
	fmt.Fprintf(&sb, "  Posts: %d\n", len(a.Posts))
	fmt.Fprintf(&sb, "  Revenue shares: %d\n", len(a.RevenueShares))
	return sb.String()
}

// FormatKeys formats a plain list of public keys
func (f *ConsoleFormatter) FormatKeys(noun string, keys []string, total int) string {
	if len(keys) == 0 {
		return fmt.Sprintf("No %ss found", strings.ToLower(noun))
	}

	entries := make([]treeEntry, 0, len(keys))
	for _, k := range keys {
		entries = append(entries, treeEntry{heading: k})
	}

	var sb strings.Builder
	writeTree(&sb, noun, total, entries, false)
	return sb.String()
}

// FormatSearch formats the four key lists of a search result
func (f *ConsoleFormatter) FormatSearch(result *SearchResult) string {
	if result.IsEmpty() {
		return "No results found"
	}

	var sb strings.Builder
	for _, group := range []struct {
		noun string
		keys []string
	}{
		{"Account", result.Accounts},
		{"Release", result.Releases},
		{"Hub", result.Hubs},
		{"Artist", result.Artists},
	} {
		if len(group.keys) > 0 {
			sb.WriteString(f.FormatKeys(group.noun, group.keys, len(group.keys)))
		}
	}
	return sb.String()
}
