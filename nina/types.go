package nina

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// Account represents a Nina account and everything attached to it
type Account struct {
	PublicKey     string     `json:"publicKey"`
	Published     []Release  `json:"published"`
	Collected     []Release  `json:"collected"`
	Exchanges     []Exchange `json:"exchanges"`
	Hubs          []Hub      `json:"hubs"`
	Posts         []Post     `json:"posts"`
	RevenueShares []Release  `json:"revenueShares"`
}

// UnmarshalJSON decodes an account document. Every list is optional and
// decodes to an empty, non-nil slice when absent.
func (a *Account) UnmarshalJSON(data []byte) error {
	var raw struct {
		PublicKey     string     `json:"publicKey"`
		Published     []Release  `json:"published"`
		Collected     []Release  `json:"collected"`
		Exchanges     []Exchange `json:"exchanges"`
		Hubs          []Hub      `json:"hubs"`
		Posts         []Post     `json:"posts"`
		RevenueShares []Release  `json:"revenueShares"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("account: %w", err)
	}

	*a = Account{
		PublicKey:     raw.PublicKey,
		Published:     orEmpty(raw.Published),
		Collected:     orEmpty(raw.Collected),
		Exchanges:     orEmpty(raw.Exchanges),
		Hubs:          orEmpty(raw.Hubs),
		Posts:         orEmpty(raw.Posts),
		RevenueShares: orEmpty(raw.RevenueShares),
	}
	return nil
}

// AccountRef identifies an account. The API sends it either as a bare
// public key string or as an object carrying a publicKey.
type AccountRef struct {
	PublicKey string `json:"publicKey"`
}

// UnmarshalJSON accepts both the string and the object form.
func (r *AccountRef) UnmarshalJSON(data []byte) error {
	if key, ok := bareString(data); ok {
		*r = AccountRef{PublicKey: key}
		return nil
	}

	var raw struct {
		PublicKey *string `json:"publicKey"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("account ref: %w", err)
	}
	if err := requireFields("account ref", field{"publicKey", raw.PublicKey != nil}); err != nil {
		return err
	}

	*r = AccountRef{PublicKey: *raw.PublicKey}
	return nil
}

// File is a single track of a release
type File struct {
	URI        string `json:"uri"`
	Track      int    `json:"track"`
	TrackTitle string `json:"track_title"`
	Duration   int    `json:"duration"` // seconds, 0 when unknown
	Type       string `json:"type"`
}

// UnmarshalJSON decodes a file entry; duration defaults to 0.
func (f *File) UnmarshalJSON(data []byte) error {
	var raw struct {
		URI        *string  `json:"uri"`
		Track      *flexInt `json:"track"`
		TrackTitle *string  `json:"track_title"`
		Duration   flexInt  `json:"duration"`
		Type       *string  `json:"type"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("file: %w", err)
	}
	if err := requireFields("file",
		field{"uri", raw.URI != nil},
		field{"track", raw.Track != nil},
		field{"track_title", raw.TrackTitle != nil},
		field{"type", raw.Type != nil},
	); err != nil {
		return err
	}

	*f = File{
		URI:        *raw.URI,
		Track:      int(*raw.Track),
		TrackTitle: *raw.TrackTitle,
		Duration:   int(raw.Duration),
		Type:       *raw.Type,
	}
	return nil
}

// Collection names the collection a release belongs to
type Collection struct {
	Name   string `json:"name"`
	Family string `json:"family"`
}

// Properties holds the artist-facing properties of a release
type Properties struct {
	Artist    string `json:"artist"`
	Title     string `json:"title"`
	Date      string `json:"date"`
	MD5Digest string `json:"md5Digest,omitempty"`
	Files     []File `json:"files"`
	Category  string `json:"category"`
}

// Metadata is the static descriptive metadata of a release
type Metadata struct {
	Name            string            `json:"name"`
	Symbol          string            `json:"symbol"`
	Description     string            `json:"description"`
	DescriptionHTML string            `json:"descriptionHtml,omitempty"`
	Image           string            `json:"image"`
	AnimationURL    string            `json:"animation_url"`
	ExternalURL     string            `json:"external_url"`
	Attributes      []json.RawMessage `json:"attributes"`
	Collection      Collection        `json:"collection"`
	Properties      Properties        `json:"properties"`
}

// UnmarshalJSON decodes release metadata. md5Digest and descriptionHtml are
// optional; descriptionHtml is read from the metadata root or, failing that,
// from properties.
func (m *Metadata) UnmarshalJSON(data []byte) error {
	var raw struct {
		Name            *string            `json:"name"`
		Symbol          *string            `json:"symbol"`
		Description     *string            `json:"description"`
		DescriptionHTML string             `json:"descriptionHtml"`
		Image           *string            `json:"image"`
		AnimationURL    *string            `json:"animation_url"`
		ExternalURL     *string            `json:"external_url"`
		Attributes      *[]json.RawMessage `json:"attributes"`
		Collection      *struct {
			Name   *string `json:"name"`
			Family *string `json:"family"`
		} `json:"collection"`
		Properties *struct {
			Artist          *string `json:"artist"`
			Title           *string `json:"title"`
			Date            *string `json:"date"`
			MD5Digest       string  `json:"md5Digest"`
			Files           *[]File `json:"files"`
			Category        *string `json:"category"`
			DescriptionHTML string  `json:"descriptionHtml"`
		} `json:"properties"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("metadata: %w", err)
	}
	if err := requireFields("metadata",
		field{"name", raw.Name != nil},
		field{"symbol", raw.Symbol != nil},
		field{"description", raw.Description != nil},
		field{"image", raw.Image != nil},
		field{"animation_url", raw.AnimationURL != nil},
		field{"external_url", raw.ExternalURL != nil},
		field{"attributes", raw.Attributes != nil},
		field{"collection", raw.Collection != nil},
		field{"properties", raw.Properties != nil},
	); err != nil {
		return err
	}

	c, p := raw.Collection, raw.Properties
	if err := requireFields("metadata.collection",
		field{"name", c.Name != nil},
		field{"family", c.Family != nil},
	); err != nil {
		return err
	}
	if err := requireFields("metadata.properties",
		field{"artist", p.Artist != nil},
		field{"title", p.Title != nil},
		field{"date", p.Date != nil},
		field{"files", p.Files != nil},
		field{"category", p.Category != nil},
	); err != nil {
		return err
	}

	descriptionHTML := raw.DescriptionHTML
	if descriptionHTML == "" {
		descriptionHTML = p.DescriptionHTML
	}

	*m = Metadata{
		Name:            *raw.Name,
		Symbol:          *raw.Symbol,
		Description:     *raw.Description,
		DescriptionHTML: descriptionHTML,
		Image:           *raw.Image,
		AnimationURL:    *raw.AnimationURL,
		ExternalURL:     *raw.ExternalURL,
		Attributes:      orEmpty(*raw.Attributes),
		Collection:      Collection{Name: *c.Name, Family: *c.Family},
		Properties: Properties{
			Artist:    *p.Artist,
			Title:     *p.Title,
			Date:      *p.Date,
			MD5Digest: p.MD5Digest,
			Files:     orEmpty(*p.Files),
			Category:  *p.Category,
		},
	}
	return nil
}

// Release represents a published release
type Release struct {
	PublicKey           string   `json:"publicKey"`
	Mint                string   `json:"mint"`
	Metadata            Metadata `json:"metadata"`
	Datetime            string   `json:"datetime"`
	PublishedThroughHub string   `json:"publishedThroughHub,omitempty"`
	Publisher           string   `json:"publisher"`
}

// UnmarshalJSON decodes a release; publishedThroughHub is optional.
func (r *Release) UnmarshalJSON(data []byte) error {
	var raw struct {
		PublicKey           *string   `json:"publicKey"`
		Mint                *string   `json:"mint"`
		Metadata            *Metadata `json:"metadata"`
		Datetime            *string   `json:"datetime"`
		PublishedThroughHub string    `json:"publishedThroughHub"`
		Publisher           *string   `json:"publisher"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("release: %w", err)
	}
	if err := requireFields("release",
		field{"publicKey", raw.PublicKey != nil},
		field{"mint", raw.Mint != nil},
		field{"metadata", raw.Metadata != nil},
		field{"datetime", raw.Datetime != nil},
		field{"publisher", raw.Publisher != nil},
	); err != nil {
		return err
	}

	*r = Release{
		PublicKey:           *raw.PublicKey,
		Mint:                *raw.Mint,
		Metadata:            *raw.Metadata,
		Datetime:            *raw.Datetime,
		PublishedThroughHub: raw.PublishedThroughHub,
		Publisher:           *raw.Publisher,
	}
	return nil
}

// PublishedAt returns the parsed release datetime, or the zero time
func (r *Release) PublishedAt() time.Time {
	return parseTime(r.Datetime)
}

// Duration returns the summed duration of all files
func (r *Release) Duration() time.Duration {
	var seconds int
	for _, f := range r.Metadata.Properties.Files {
		seconds += f.Duration
	}
	return time.Duration(seconds) * time.Second
}

// Amount is a token amount. The API sends amounts as numbers or as
// numeric strings; both are kept verbatim.
type Amount string

// UnmarshalJSON accepts a JSON string or number
func (a *Amount) UnmarshalJSON(data []byte) error {
	if s, ok := bareString(data); ok {
		*a = Amount(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("amount: %w", err)
	}
	*a = Amount(n.String())
	return nil
}

// Float64 returns the numeric value, 0 when it cannot be parsed
func (a Amount) Float64() float64 {
	f, err := strconv.ParseFloat(string(a), 64)
	if err != nil {
		return 0
	}
	return f
}

// Exchange is a buy offer or sale listing for a release.
//
// When IsSale is true ExpectedAmount is the USDC the seller expects and
// InitializerAmount the number of releases sold (always 1). For buy offers
// the meaning swaps.
type Exchange struct {
	PublicKey         string `json:"publicKey"`
	IsSale            bool   `json:"isSale"`
	ExpectedAmount    Amount `json:"expectedAmount"`
	InitializerAmount Amount `json:"initializerAmount"`
	Cancelled         bool   `json:"cancelled"`
	CreatedAt         string `json:"createdAt"`
	UpdatedAt         string `json:"updatedAt"`
	CompletedBy       string `json:"completedBy,omitempty"`
	Release           string `json:"release"`
	Initializer       string `json:"initializer"`
}

// UnmarshalJSON decodes an exchange; completedBy is optional.
func (e *Exchange) UnmarshalJSON(data []byte) error {
	var raw struct {
		PublicKey         *string `json:"publicKey"`
		IsSale            *bool   `json:"isSale"`
		ExpectedAmount    *Amount `json:"expectedAmount"`
		InitializerAmount *Amount `json:"initializerAmount"`
		Cancelled         *bool   `json:"cancelled"`
		CreatedAt         *string `json:"createdAt"`
		UpdatedAt         *string `json:"updatedAt"`
		CompletedBy       string  `json:"completedBy"`
		Release           *string `json:"release"`
		Initializer       *string `json:"initializer"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("exchange: %w", err)
	}
	if err := requireFields("exchange",
		field{"publicKey", raw.PublicKey != nil},
		field{"isSale", raw.IsSale != nil},
		field{"expectedAmount", raw.ExpectedAmount != nil},
		field{"initializerAmount", raw.InitializerAmount != nil},
		field{"cancelled", raw.Cancelled != nil},
		field{"createdAt", raw.CreatedAt != nil},
		field{"updatedAt", raw.UpdatedAt != nil},
		field{"release", raw.Release != nil},
		field{"initializer", raw.Initializer != nil},
	); err != nil {
		return err
	}

	*e = Exchange{
		PublicKey:         *raw.PublicKey,
		IsSale:            *raw.IsSale,
		ExpectedAmount:    *raw.ExpectedAmount,
		InitializerAmount: *raw.InitializerAmount,
		Cancelled:         *raw.Cancelled,
		CreatedAt:         *raw.CreatedAt,
		UpdatedAt:         *raw.UpdatedAt,
		CompletedBy:       raw.CompletedBy,
		Release:           *raw.Release,
		Initializer:       *raw.Initializer,
	}
	return nil
}

// IsCompleted checks if another account completed the exchange
func (e *Exchange) IsCompleted() bool {
	return e.CompletedBy != ""
}

// IsOpen checks if the exchange can still be completed
func (e *Exchange) IsOpen() bool {
	return !e.Cancelled && !e.IsCompleted()
}

// Price returns the USDC side of the exchange
func (e *Exchange) Price() Amount {
	if e.IsSale {
		return e.ExpectedAmount
	}
	return e.InitializerAmount
}

// Hub is a curated publishing channel. Its JSON form nests the display
// fields under "data", as the API does.
type Hub struct {
	PublicKey       string
	Handle          string
	DisplayName     string
	Description     string
	DescriptionHTML string
	ExternalURL     string
	Image           string
	Datetime        string
	Authority       string
}

type hubDocument struct {
	PublicKey string  `json:"publicKey"`
	Handle    string  `json:"handle"`
	Data      hubBody `json:"data"`
	Datetime  string  `json:"datetime"`
	Authority string  `json:"authority"`
}

type hubBody struct {
	DisplayName     string `json:"displayName"`
	Description     string `json:"description"`
	DescriptionHTML string `json:"descriptionHtml,omitempty"`
	ExternalURL     string `json:"externalUrl"`
	Image           string `json:"image"`
}

// MarshalJSON encodes the hub in the API document shape
func (h Hub) MarshalJSON() ([]byte, error) {
	return json.Marshal(hubDocument{
		PublicKey: h.PublicKey,
		Handle:    h.Handle,
		Data: hubBody{
			DisplayName:     h.DisplayName,
			Description:     h.Description,
			DescriptionHTML: h.DescriptionHTML,
			ExternalURL:     h.ExternalURL,
			Image:           h.Image,
		},
		Datetime:  h.Datetime,
		Authority: h.Authority,
	})
}

// UnmarshalJSON decodes a hub; data.descriptionHtml is optional.
func (h *Hub) UnmarshalJSON(data []byte) error {
	var raw struct {
		PublicKey *string `json:"publicKey"`
		Handle    *string `json:"handle"`
		Data      *struct {
			DisplayName     *string `json:"displayName"`
			Description     *string `json:"description"`
			DescriptionHTML string  `json:"descriptionHtml"`
			ExternalURL     *string `json:"externalUrl"`
			Image           *string `json:"image"`
		} `json:"data"`
		Datetime  *string `json:"datetime"`
		Authority *string `json:"authority"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("hub: %w", err)
	}
	if err := requireFields("hub",
		field{"publicKey", raw.PublicKey != nil},
		field{"handle", raw.Handle != nil},
		field{"data", raw.Data != nil},
		field{"datetime", raw.Datetime != nil},
		field{"authority", raw.Authority != nil},
	); err != nil {
		return err
	}
	d := raw.Data
	if err := requireFields("hub.data",
		field{"displayName", d.DisplayName != nil},
		field{"description", d.Description != nil},
		field{"externalUrl", d.ExternalURL != nil},
		field{"image", d.Image != nil},
	); err != nil {
		return err
	}

	*h = Hub{
		PublicKey:       *raw.PublicKey,
		Handle:          *raw.Handle,
		DisplayName:     *d.DisplayName,
		Description:     *d.Description,
		DescriptionHTML: d.DescriptionHTML,
		ExternalURL:     *d.ExternalURL,
		Image:           *d.Image,
		Datetime:        *raw.Datetime,
		Authority:       *raw.Authority,
	}
	return nil
}

// CreatedAt returns the parsed hub datetime, or the zero time
func (h *Hub) CreatedAt() time.Time {
	return parseTime(h.Datetime)
}

// Collaborator is an account with publishing rights on a hub
type Collaborator struct {
	PublicKey                string `json:"publicKey"`
	HubCollaboratorPublicKey string `json:"hubCollaboratorPublicKey,omitempty"`
	CanAddContent            bool   `json:"canAddContent"`
	CanAddCollaborator       bool   `json:"canAddCollaborator"`
	Allowance                int    `json:"allowance"`
	Datetime                 string `json:"datetime,omitempty"`
}

// UnmarshalJSON accepts a bare public key or a collaborator object
func (c *Collaborator) UnmarshalJSON(data []byte) error {
	if key, ok := bareString(data); ok {
		*c = Collaborator{PublicKey: key}
		return nil
	}

	var raw struct {
		PublicKey                *string `json:"publicKey"`
		HubCollaboratorPublicKey string  `json:"hubCollaboratorPublicKey"`
		CanAddContent            bool    `json:"canAddContent"`
		CanAddCollaborator       bool    `json:"canAddCollaborator"`
		Allowance                flexInt `json:"allowance"`
		Datetime                 string  `json:"datetime"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("collaborator: %w", err)
	}
	if err := requireFields("collaborator", field{"publicKey", raw.PublicKey != nil}); err != nil {
		return err
	}

	*c = Collaborator{
		PublicKey:                *raw.PublicKey,
		HubCollaboratorPublicKey: raw.HubCollaboratorPublicKey,
		CanAddContent:            raw.CanAddContent,
		CanAddCollaborator:       raw.CanAddCollaborator,
		Allowance:                int(raw.Allowance),
		Datetime:                 raw.Datetime,
	}
	return nil
}

// HubData wraps a hub with its collaborators, releases and posts. The lists
// stay empty unless filled by Client.ExpandHub.
type HubData struct {
	Hub           Hub            `json:"hub"`
	Collaborators []Collaborator `json:"collaborators"`
	Releases      []Release      `json:"releases"`
	Posts         []Post         `json:"posts"`
}

// UnmarshalJSON decodes the /hubs/{keyOrHandle} document. The lists are
// optional and decode to empty slices when absent.
func (h *HubData) UnmarshalJSON(data []byte) error {
	var raw struct {
		Hub           *Hub           `json:"hub"`
		Collaborators []Collaborator `json:"collaborators"`
		Releases      []Release      `json:"releases"`
		Posts         []Post         `json:"posts"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("hub data: %w", err)
	}
	if err := requireFields("hub data", field{"hub", raw.Hub != nil}); err != nil {
		return err
	}

	*h = HubData{
		Hub:           *raw.Hub,
		Collaborators: orEmpty(raw.Collaborators),
		Releases:      orEmpty(raw.Releases),
		Posts:         orEmpty(raw.Posts),
	}
	return nil
}

// HubCollaborators is the response of /hubs/{keyOrHandle}/collaborators
type HubCollaborators struct {
	PublicKey     string         `json:"publicKey"`
	Collaborators []Collaborator `json:"collaborators"`
}

// HubReleases is the response of /hubs/{keyOrHandle}/releases
type HubReleases struct {
	PublicKey string    `json:"publicKey"`
	Releases  []Release `json:"releases"`
}

// Post is a text update published through a hub. Like Hub, its JSON form
// nests the content under "data".
type Post struct {
	PublicKey           string
	Title               string
	Body                string
	BodyHTML            string
	Reference           string
	Datetime            string
	Publisher           string
	PublishedThroughHub string
}

type postDocument struct {
	PublicKey           string   `json:"publicKey"`
	Data                postBody `json:"data"`
	Datetime            string   `json:"datetime"`
	Publisher           string   `json:"publisher"`
	PublishedThroughHub string   `json:"publishedThroughHub"`
}

type postBody struct {
	Title     string `json:"title"`
	Body      string `json:"body"`
	BodyHTML  string `json:"bodyHtml,omitempty"`
	Reference string `json:"reference,omitempty"`
}

// MarshalJSON encodes the post in the API document shape
func (p Post) MarshalJSON() ([]byte, error) {
	return json.Marshal(postDocument{
		PublicKey: p.PublicKey,
		Data: postBody{
			Title:     p.Title,
			Body:      p.Body,
			BodyHTML:  p.BodyHTML,
			Reference: p.Reference,
		},
		Datetime:            p.Datetime,
		Publisher:           p.Publisher,
		PublishedThroughHub: p.PublishedThroughHub,
	})
}

// UnmarshalJSON decodes a post; data.bodyHtml and data.reference are optional.
func (p *Post) UnmarshalJSON(data []byte) error {
	var raw struct {
		PublicKey *string `json:"publicKey"`
		Data      *struct {
			Title     *string `json:"title"`
			Body      *string `json:"body"`
			BodyHTML  string  `json:"bodyHtml"`
			Reference string  `json:"reference"`
		} `json:"data"`
		Datetime            *string `json:"datetime"`
		Publisher           *string `json:"publisher"`
		PublishedThroughHub *string `json:"publishedThroughHub"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("post: %w", err)
	}
	if err := requireFields("post",
		field{"publicKey", raw.PublicKey != nil},
		field{"data", raw.Data != nil},
		field{"datetime", raw.Datetime != nil},
		field{"publisher", raw.Publisher != nil},
		field{"publishedThroughHub", raw.PublishedThroughHub != nil},
	); err != nil {
		return err
	}
	d := raw.Data
	if err := requireFields("post.data",
		field{"title", d.Title != nil},
		field{"body", d.Body != nil},
	); err != nil {
		return err
	}

	*p = Post{
		PublicKey:           *raw.PublicKey,
		Title:               *d.Title,
		Body:                *d.Body,
		BodyHTML:            d.BodyHTML,
		Reference:           d.Reference,
		Datetime:            *raw.Datetime,
		Publisher:           *raw.Publisher,
		PublishedThroughHub: *raw.PublishedThroughHub,
	}
	return nil
}

// HasReference checks if the post points at a release
func (p *Post) HasReference() bool {
	return p.Reference != ""
}

// PublishedAt returns the parsed post datetime, or the zero time
func (p *Post) PublishedAt() time.Time {
	return parseTime(p.Datetime)
}

// Page is one page of a list endpoint together with the server-side total
type Page[T any] struct {
	Items []T `json:"items"`
	Total int `json:"total"`
}

// SearchResult holds the keys matched by a search query
type SearchResult struct {
	Accounts []string
	Releases []string
	Hubs     []string
	Artists  []string
}

type searchKey struct {
	PublicKey string `json:"publicKey"`
}

type searchAccount struct {
	Account string `json:"account"`
}

type searchArtist struct {
	Account searchKey `json:"account"`
}

// MarshalJSON encodes the result in the /search document shape
func (s SearchResult) MarshalJSON() ([]byte, error) {
	doc := struct {
		Accounts []searchAccount `json:"accounts"`
		Releases []searchKey     `json:"releases"`
		Hubs     []searchKey     `json:"hubs"`
		Artists  []searchArtist  `json:"artists"`
	}{
		Accounts: make([]searchAccount, 0, len(s.Accounts)),
		Releases: make([]searchKey, 0, len(s.Releases)),
		Hubs:     make([]searchKey, 0, len(s.Hubs)),
		Artists:  make([]searchArtist, 0, len(s.Artists)),
	}
	for _, k := range s.Accounts {
		doc.Accounts = append(doc.Accounts, searchAccount{Account: k})
	}
	for _, k := range s.Releases {
		doc.Releases = append(doc.Releases, searchKey{PublicKey: k})
	}
	for _, k := range s.Hubs {
		doc.Hubs = append(doc.Hubs, searchKey{PublicKey: k})
	}
	for _, k := range s.Artists {
		doc.Artists = append(doc.Artists, searchArtist{Account: searchKey{PublicKey: k}})
	}
	return json.Marshal(doc)
}

// UnmarshalJSON decodes the /search document. Artist keys come from the
// nested account object.
func (s *SearchResult) UnmarshalJSON(data []byte) error {
	type keyed struct {
		PublicKey *string `json:"publicKey"`
	}
	var raw struct {
		Accounts []struct {
			Account *string `json:"account"`
		} `json:"accounts"`
		Releases []keyed `json:"releases"`
		Hubs     []keyed `json:"hubs"`
		Artists  []struct {
			Account *keyed `json:"account"`
		} `json:"artists"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("search: %w", err)
	}

	result := SearchResult{
		Accounts: make([]string, 0, len(raw.Accounts)),
		Releases: make([]string, 0, len(raw.Releases)),
		Hubs:     make([]string, 0, len(raw.Hubs)),
		Artists:  make([]string, 0, len(raw.Artists)),
	}
	for _, a := range raw.Accounts {
		if a.Account == nil {
			return &MissingFieldError{Type: "search.accounts", Field: "account"}
		}
		result.Accounts = append(result.Accounts, *a.Account)
	}
	for _, r := range raw.Releases {
		if r.PublicKey == nil {
			return &MissingFieldError{Type: "search.releases", Field: "publicKey"}
		}
		result.Releases = append(result.Releases, *r.PublicKey)
	}
	for _, h := range raw.Hubs {
		if h.PublicKey == nil {
			return &MissingFieldError{Type: "search.hubs", Field: "publicKey"}
		}
		result.Hubs = append(result.Hubs, *h.PublicKey)
	}
	for _, a := range raw.Artists {
		if a.Account == nil || a.Account.PublicKey == nil {
			return &MissingFieldError{Type: "search.artists", Field: "account.publicKey"}
		}
		result.Artists = append(result.Artists, *a.Account.PublicKey)
	}

	*s = result
	return nil
}

// IsEmpty checks if the search matched nothing
func (s *SearchResult) IsEmpty() bool {
	return len(s.Accounts) == 0 && len(s.Releases) == 0 && len(s.Hubs) == 0 && len(s.Artists) == 0
}

// flexInt decodes integers sent as numbers, floats or numeric strings.
// Fractional values round to the nearest integer.
type flexInt int

func (n *flexInt) UnmarshalJSON(data []byte) error {
	s := strings.Trim(string(data), `"`)
	if s == "" || s == "null" {
		*n = 0
		return nil
	}
	if i, err := strconv.Atoi(s); err == nil {
		*n = flexInt(i)
		return nil
	}

	f, err := strconv.ParseFloat(s, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("invalid number %s", data)
	}
	f = math.Round(f)
	if f < math.MinInt || f >= -math.MinInt {
		return fmt.Errorf("number %s out of range", data)
	}
	*n = flexInt(f)
	return nil
}

// bareString returns the value if data is a JSON string literal
func bareString(data []byte) (string, bool) {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || data[0] != '"' {
		return "", false
	}
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return "", false
	}
	return s, true
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}

// parseTime parses the datetime formats the API is known to emit
func parseTime(s string) time.Time {
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
