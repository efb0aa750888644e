package feed

import (
	"bytes"
	"cmp"
	"fmt"
	"html"
	"time"
)

// AtomEncoder produces Atom 1.0 documents. Summary and content carry
// type="html" since item text holds escaped markup.
type AtomEncoder struct {
	channel Channel
	mode    Mode
}

func NewAtomEncoder(channel Channel, mode Mode) *AtomEncoder {
	return &AtomEncoder{channel: channel, mode: mode}
}

func (e *AtomEncoder) Format() Format {
	return FormatAtom
}

func (e *AtomEncoder) ContentType() string {
	return "application/atom+xml; charset=utf-8"
}

func (e *AtomEncoder) Encode(items []Item) (string, error) {
	sorted := sortByNewest(items)

	var buf bytes.Buffer

	buf.WriteString(xmlHeader)
	buf.WriteString(`<feed xmlns="http://www.w3.org/2005/Atom">`)
	buf.WriteString("\n")

	writeElement(&buf, "id", e.channel.FeedURL, 2)
	writeElement(&buf, "title", e.channel.Title, 2)
	writeElement(&buf, "subtitle", e.channel.Description, 2)
	writeElement(&buf, "updated", feedUpdated(sorted).Format(time.RFC3339), 2)

	buf.WriteString(fmt.Sprintf("  <link href=\"%s\" rel=\"self\" type=\"application/atom+xml\" />\n",
		html.EscapeString(e.channel.FeedURL)))
	buf.WriteString(fmt.Sprintf("  <link href=\"%s\" rel=\"alternate\" type=\"text/html\" />\n",
		html.EscapeString(e.channel.Link)))

	writeElement(&buf, "generator", e.channel.Generator, 2)
	writeElement(&buf, "rights", e.channel.Copyright, 2)

	// Atom requires a feed-level author even when entries carry none.
	buf.WriteString("  <author>\n")
	writeElement(&buf, "name", cmp.Or(e.channel.ManagingEditor, e.channel.Title), 4)
	buf.WriteString("  </author>\n")

	for _, item := range sorted {
		if err := e.writeEntry(&buf, item); err != nil {
			return "", err
		}
	}

	buf.WriteString("</feed>")

	return buf.String(), nil
}

// feedUpdated is the maximum update timestamp across items, or the
// generation time when the feed is empty.
func feedUpdated(items []Item) time.Time {
	var updated time.Time
	for _, item := range items {
		ts := cmp.Or(item.UpdatedAt, item.PublishedAt)
		if ts.After(updated) {
			updated = ts
		}
	}

	if updated.IsZero() {
		return time.Now().UTC()
	}
	return updated.UTC()
}

func (e *AtomEncoder) writeEntry(buf *bytes.Buffer, item Item) error {
	if item.GUID == "" {
		return &EncodingError{Format: FormatAtom, Reason: "entry has no id"}
	}

	buf.WriteString("  <entry>\n")

	writeElement(buf, "id", item.GUID, 4)
	writeRawElement(buf, "title", item.Title, 4)

	updated := cmp.Or(item.UpdatedAt, item.PublishedAt)
	writeElement(buf, "updated", updated.UTC().Format(time.RFC3339), 4)
	writeElement(buf, "published", item.PublishedAt.UTC().Format(time.RFC3339), 4)

	buf.WriteString(fmt.Sprintf("    <link href=\"%s\" rel=\"alternate\" type=\"text/html\" />\n",
		html.EscapeString(item.Link)))

	if item.Author != "" {
		buf.WriteString("    <author>\n")
		writeRawElement(buf, "name", item.Author, 6)
		buf.WriteString("    </author>\n")
	}

	if item.Summary != "" {
		buf.WriteString("    <summary type=\"html\">")
		buf.WriteString(item.Summary)
		buf.WriteString("</summary>\n")
	}

	if e.mode == ModeFull && item.Content != "" {
		buf.WriteString("    <content type=\"html\">")
		buf.WriteString(item.Content)
		buf.WriteString("</content>\n")
	}

	for _, category := range item.Categories {
		buf.WriteString(fmt.Sprintf("    <category term=\"%s\" />\n", category))
	}

	buf.WriteString("  </entry>\n")

	return nil
}
