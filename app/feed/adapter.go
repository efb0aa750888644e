package feed

import (
	"cmp"
	"html"
	"path"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/google/uuid"

	"github.com/madink-frank/reddit-sub006/app/content"
)

// summaryLength caps summaries derived from the post body, in runes.
const summaryLength = 300

// Adapter converts canonical posts into format-neutral feed items. It
// is the single place where textual fields get XML-escaped; every
// encoder downstream consumes its output verbatim.
type Adapter struct {
	baseURL string
}

func NewAdapter(baseURL string) *Adapter {
	return &Adapter{baseURL: strings.TrimRight(baseURL, "/")}
}

func (a *Adapter) Run(post content.Post, mode Mode) (Item, error) {
	if post.Slug == "" {
		return Item{}, &AdaptationError{PostID: post.ID, Reason: "missing slug"}
	}
	if post.Title == "" {
		return Item{}, &AdaptationError{PostID: post.ID, Reason: "missing title"}
	}
	if post.PublishedAt.IsZero() {
		return Item{}, &AdaptationError{PostID: post.ID, Reason: "missing publication date"}
	}

	link := a.baseURL + "/posts/" + post.Slug

	item := Item{
		GUID:        itemGUID(link),
		PermaLink:   false,
		Title:       escapeText(post.Title),
		Link:        link,
		Summary:     a.summarize(post),
		PublishedAt: post.PublishedAt,
		UpdatedAt:   cmp.Or(post.UpdatedAt, post.PublishedAt),
		Author:      escapeText(post.Author),
		Categories:  a.categories(post),
		Enclosure:   enclosureFor(post.CoverImageURL),
	}

	if mode == ModeFull {
		item.Content = escapeText(post.Content)
	}

	return item, nil
}

// itemGUID derives a stable urn:uuid identifier from the post
// permalink. UUIDv5 keeps regeneration of an unchanged dataset
// byte-identical.
func itemGUID(link string) string {
	return "urn:uuid:" + uuid.NewSHA1(uuid.NameSpaceURL, []byte(link)).String()
}

// summarize picks the item summary: the editorial excerpt when present,
// otherwise plain text derived from the post body, otherwise the title.
func (a *Adapter) summarize(post content.Post) string {
	if post.Excerpt != "" {
		return escapeText(post.Excerpt)
	}
	if text := plainText(post.Content); text != "" {
		return escapeText(truncate(text, summaryLength))
	}
	return escapeText(post.Title)
}

func (a *Adapter) categories(post content.Post) []string {
	var categories []string

	if post.Category != "" {
		categories = append(categories, escapeText(post.Category))
	}
	for _, tag := range post.Tags {
		if tag != "" {
			categories = append(categories, escapeText(tag))
		}
	}

	return categories
}

// escapeText escapes the five XML-special characters (& < > " ').
// Applied exactly once here; encoders never escape item text again.
func escapeText(s string) string {
	return html.EscapeString(s)
}

// plainText strips markup from an HTML fragment and collapses
// whitespace runs into single spaces.
func plainText(markup string) string {
	if markup == "" {
		return ""
	}

	doc, err := goquery.NewDocumentFromReader(strings.NewReader(markup))
	if err != nil {
		return strings.Join(strings.Fields(markup), " ")
	}

	return strings.Join(strings.Fields(doc.Text()), " ")
}

// truncate cuts s to at most limit runes, backing up to the last word
// boundary so no word is split mid-way.
func truncate(s string, limit int) string {
	runes := []rune(s)
	if len(runes) <= limit {
		return s
	}

	cut := string(runes[:limit])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}

	return cut + "..."
}

func enclosureFor(coverURL string) *Enclosure {
	if coverURL == "" {
		return nil
	}
	return &Enclosure{URL: coverURL, Type: imageMIME(coverURL)}
}

// imageMIME infers the image MIME type from the URL path extension,
// defaulting to JPEG for unknown or missing extensions.
func imageMIME(rawURL string) string {
	trimmed := rawURL
	if idx := strings.IndexAny(trimmed, "?#"); idx >= 0 {
		trimmed = trimmed[:idx]
	}

	switch strings.ToLower(path.Ext(trimmed)) {
	case ".png":
		return "image/png"
	case ".gif":
		return "image/gif"
	case ".webp":
		return "image/webp"
	case ".svg":
		return "image/svg+xml"
	case ".avif":
		return "image/avif"
	default:
		return "image/jpeg"
	}
}
