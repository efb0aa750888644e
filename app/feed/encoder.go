package feed

import (
	"fmt"
	"slices"
)

// Format identifies a syndication output format.
type Format string

const (
	FormatRSS  Format = "rss"
	FormatAtom Format = "atom"
	FormatJSON Format = "json"
)

// Encoder serializes format-neutral items into one concrete
// syndication document. Encoders are stateless after construction and
// safe for concurrent use.
type Encoder interface {
	// Format reports which output format the encoder produces.
	Format() Format
	// ContentType is the HTTP Content-Type of the produced document.
	ContentType() string
	// Encode serializes items into a complete document. Output is
	// ordered newest-first by publication date regardless of input
	// order.
	Encode(items []Item) (string, error)
}

var _ Encoder = (*RSSEncoder)(nil)
var _ Encoder = (*AtomEncoder)(nil)
var _ Encoder = (*JSONEncoder)(nil)

// NewEncoder builds the encoder for the requested format.
func NewEncoder(format Format, channel Channel, mode Mode) (Encoder, error) {
	switch format {
	case FormatRSS:
		return NewRSSEncoder(channel, mode), nil
	case FormatAtom:
		return NewAtomEncoder(channel, mode), nil
	case FormatJSON:
		return NewJSONEncoder(channel, channel.FeedURL, mode)
	default:
		return nil, &ValidationError{Field: "format", Reason: fmt.Sprintf("unknown format %q", format)}
	}
}

// sortByNewest returns a copy of items ordered newest-first by
// publication date. Input order never leaks into documents.
func sortByNewest(items []Item) []Item {
	sorted := make([]Item, len(items))
	copy(sorted, items)
	slices.SortStableFunc(sorted, func(a, b Item) int {
		return b.PublishedAt.Compare(a.PublishedAt)
	})
	return sorted
}
