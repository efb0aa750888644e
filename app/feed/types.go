package feed

import (
	"time"
)

// Mode selects how much of a post body ends up in the feed.
type Mode string

const (
	// ModeSummary produces feeds carrying only the post summary.
	ModeSummary Mode = "summary"
	// ModeFull additionally embeds the full post body
	// (content:encoded in RSS, content in Atom and JSON Feed).
	ModeFull Mode = "full"
)

// Item is a format-neutral feed entry. All text fields (Title, Summary,
// Content, Author, Categories) are XML-escaped by the Adapter exactly
// once; encoders write them verbatim and never escape again.
type Item struct {
	GUID        string
	PermaLink   bool // whether GUID is a dereferenceable URL
	Title       string
	Link        string
	Summary     string
	Content     string
	PublishedAt time.Time
	UpdatedAt   time.Time
	Author      string
	Categories  []string
	Enclosure   *Enclosure
}

// Enclosure is an attached media resource, typically the post cover
// image. Size is unknown to the content API, so encoders emit length 0.
type Enclosure struct {
	URL  string
	Type string // MIME type inferred from the URL extension
}

// Channel carries feed-level metadata. Values come from the site
// profile and deployment config, not from post content, so encoders
// escape them at write time.
type Channel struct {
	Title          string
	Description    string
	Link           string // site home page
	FeedURL        string // canonical URL of this feed document
	Language       string
	Copyright      string
	ManagingEditor string
	Generator      string
}
