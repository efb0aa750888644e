package sitemap

import (
	"fmt"
	"time"
)

// ChangeFreq is the crawl frequency hint from the Sitemap protocol.
type ChangeFreq string

const (
	Always  ChangeFreq = "always"
	Hourly  ChangeFreq = "hourly"
	Daily   ChangeFreq = "daily"
	Weekly  ChangeFreq = "weekly"
	Monthly ChangeFreq = "monthly"
	Yearly  ChangeFreq = "yearly"
	Never   ChangeFreq = "never"
)

func (f ChangeFreq) valid() bool {
	switch f {
	case Always, Hourly, Daily, Weekly, Monthly, Yearly, Never:
		return true
	}
	return false
}

// ValidationError reports an entry that violates a protocol
// constraint. Offending values are rejected at construction, never
// clamped.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid sitemap %s: %s", e.Field, e.Reason)
}

// URLEntry is one url element of a basic sitemap. A zero LastMod
// suppresses the lastmod element.
type URLEntry struct {
	Loc        string
	LastMod    time.Time
	ChangeFreq ChangeFreq
	Priority   float64
}

// NewURLEntry validates the protocol constraints up front: loc must be
// present, changefreq (when set) must be a known enum value, and
// priority must lie in [0.0, 1.0].
func NewURLEntry(loc string, lastMod time.Time, changeFreq ChangeFreq, priority float64) (URLEntry, error) {
	if loc == "" {
		return URLEntry{}, &ValidationError{Field: "loc", Reason: "must not be empty"}
	}
	if changeFreq != "" && !changeFreq.valid() {
		return URLEntry{}, &ValidationError{Field: "changefreq", Reason: fmt.Sprintf("unknown value %q", changeFreq)}
	}
	if priority < 0.0 || priority > 1.0 {
		return URLEntry{}, &ValidationError{Field: "priority", Reason: fmt.Sprintf("%.2f is outside [0.0, 1.0]", priority)}
	}

	return URLEntry{Loc: loc, LastMod: lastMod, ChangeFreq: changeFreq, Priority: priority}, nil
}

// NewsEntry is one url element of a Google News sitemap.
type NewsEntry struct {
	Loc             string
	PublicationName string
	PublicationLang string
	Title           string
	PublishedAt     time.Time
	Keywords        []string
}

// ImageEntry groups the images published on one page.
type ImageEntry struct {
	Loc    string
	Images []Image
}

// Image is a single image:image child.
type Image struct {
	Loc     string
	Caption string
	Title   string
}

// IndexEntry points at one child sitemap from a sitemapindex.
type IndexEntry struct {
	Loc     string
	LastMod time.Time
}

// Document is a rendered sitemap file together with the path it is
// published under.
type Document struct {
	Path string
	XML  string
}
