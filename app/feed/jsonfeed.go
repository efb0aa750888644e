package feed

import (
	"cmp"
	"encoding/json"
	"time"
)

const jsonFeedVersion = "https://jsonfeed.org/version/1.1"

type jsonFeed struct {
	Version     string       `json:"version"`
	Title       string       `json:"title"`
	HomePageURL string       `json:"home_page_url,omitempty"`
	FeedURL     string       `json:"feed_url"`
	Description string       `json:"description,omitempty"`
	Language    string       `json:"language,omitempty"`
	Authors     []jsonAuthor `json:"authors,omitempty"`
	Items       []jsonItem   `json:"items"`
}

type jsonAuthor struct {
	Name string `json:"name"`
}

type jsonItem struct {
	ID            string       `json:"id"`
	URL           string       `json:"url,omitempty"`
	Title         string       `json:"title,omitempty"`
	ContentHTML   string       `json:"content_html,omitempty"`
	ContentText   string       `json:"content_text,omitempty"`
	Summary       string       `json:"summary,omitempty"`
	Image         string       `json:"image,omitempty"`
	DatePublished string       `json:"date_published,omitempty"`
	DateModified  string       `json:"date_modified,omitempty"`
	Author        *jsonAuthor  `json:"author,omitempty"`
	Authors       []jsonAuthor `json:"authors,omitempty"`
	Tags          []string     `json:"tags,omitempty"`
}

// JSONEncoder produces JSON Feed 1.1 documents.
type JSONEncoder struct {
	channel Channel
	feedURL string
	mode    Mode
}

// NewJSONEncoder builds a JSON Feed encoder. feed_url is mandatory in
// JSON Feed, so an empty feedURL is rejected before any encoding.
func NewJSONEncoder(channel Channel, feedURL string, mode Mode) (*JSONEncoder, error) {
	if feedURL == "" {
		return nil, &ValidationError{Field: "feed_url", Reason: "feed URL is required"}
	}
	return &JSONEncoder{channel: channel, feedURL: feedURL, mode: mode}, nil
}

func (e *JSONEncoder) Format() Format {
	return FormatJSON
}

func (e *JSONEncoder) ContentType() string {
	return "application/feed+json; charset=utf-8"
}

func (e *JSONEncoder) Encode(items []Item) (string, error) {
	sorted := sortByNewest(items)

	doc := jsonFeed{
		Version:     jsonFeedVersion,
		Title:       e.channel.Title,
		HomePageURL: e.channel.Link,
		FeedURL:     e.feedURL,
		Description: e.channel.Description,
		Language:    e.channel.Language,
		Items:       make([]jsonItem, 0, len(sorted)),
	}

	if e.channel.ManagingEditor != "" {
		doc.Authors = []jsonAuthor{{Name: e.channel.ManagingEditor}}
	}

	for _, item := range sorted {
		if item.GUID == "" {
			return "", &EncodingError{Format: FormatJSON, Reason: "item has no id"}
		}
		doc.Items = append(doc.Items, e.buildItem(item))
	}

	data, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return "", &EncodingError{Format: FormatJSON, Reason: err.Error()}
	}

	return string(data), nil
}

func (e *JSONEncoder) buildItem(item Item) jsonItem {
	out := jsonItem{
		ID:            item.GUID,
		URL:           item.Link,
		Title:         item.Title,
		Summary:       item.Summary,
		DatePublished: item.PublishedAt.UTC().Format(time.RFC3339),
		DateModified:  cmp.Or(item.UpdatedAt, item.PublishedAt).UTC().Format(time.RFC3339),
		Tags:          item.Categories,
	}

	if e.mode == ModeFull && item.Content != "" {
		out.ContentHTML = item.Content
	} else {
		out.ContentText = item.Summary
	}

	if item.Author != "" {
		author := jsonAuthor{Name: item.Author}
		// Both forms: author for 1.0-era readers, authors per 1.1.
		out.Author = &author
		out.Authors = []jsonAuthor{author}
	}

	if item.Enclosure != nil {
		out.Image = item.Enclosure.URL
	}

	return out
}
