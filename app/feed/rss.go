package feed

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"html"
	"time"
)

// rssTimeFormat is RFC 822 with a four-digit year and a literal GMT
// zone. Timestamps are normalized to UTC before formatting.
const rssTimeFormat = "Mon, 02 Jan 2006 15:04:05 GMT"

// RSSEncoder produces RSS 2.0 documents. The channel carries an
// atom:link self reference; in full mode item bodies ride in
// content:encoded with the content namespace declared on the root.
type RSSEncoder struct {
	channel Channel
	mode    Mode
}

func NewRSSEncoder(channel Channel, mode Mode) *RSSEncoder {
	return &RSSEncoder{channel: channel, mode: mode}
}

func (e *RSSEncoder) Format() Format {
	return FormatRSS
}

func (e *RSSEncoder) ContentType() string {
	return "application/rss+xml; charset=utf-8"
}

func (e *RSSEncoder) Encode(items []Item) (string, error) {
	sorted := sortByNewest(items)

	var buf bytes.Buffer

	buf.WriteString(xmlHeader)
	if e.mode == ModeFull {
		buf.WriteString(`<rss version="2.0" xmlns:content="http://purl.org/rss/1.0/modules/content/" xmlns:atom="http://www.w3.org/2005/Atom">`)
	} else {
		buf.WriteString(`<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`)
	}
	buf.WriteString("\n  <channel>\n")

	writeElement(&buf, "title", e.channel.Title, 4)
	writeElement(&buf, "link", e.channel.Link, 4)
	writeElement(&buf, "description", e.channel.Description, 4)
	writeElement(&buf, "language", e.channel.Language, 4)
	writeElement(&buf, "copyright", e.channel.Copyright, 4)
	writeElement(&buf, "managingEditor", e.channel.ManagingEditor, 4)

	lastBuildDate := time.Now().UTC()
	if len(sorted) > 0 {
		lastBuildDate = sorted[0].PublishedAt
	}
	writeElement(&buf, "lastBuildDate", lastBuildDate.UTC().Format(rssTimeFormat), 4)
	writeElement(&buf, "generator", e.channel.Generator, 4)

	buf.WriteString(fmt.Sprintf("    <atom:link href=\"%s\" rel=\"self\" type=\"application/rss+xml\" />\n",
		html.EscapeString(e.channel.FeedURL)))

	for _, item := range sorted {
		if err := e.writeItem(&buf, item); err != nil {
			return "", err
		}
	}

	buf.WriteString("  </channel>\n</rss>")

	return buf.String(), nil
}

func (e *RSSEncoder) writeItem(buf *bytes.Buffer, item Item) error {
	if item.GUID == "" {
		return &EncodingError{Format: FormatRSS, Reason: "item has no GUID"}
	}

	buf.WriteString("    <item>\n")

	writeRawElement(buf, "title", item.Title, 6)
	writeElement(buf, "link", item.Link, 6)

	buf.WriteString(fmt.Sprintf("      <guid isPermaLink=\"%t\">", item.PermaLink))
	xml.EscapeText(buf, []byte(item.GUID))
	buf.WriteString("</guid>\n")

	writeElement(buf, "pubDate", item.PublishedAt.UTC().Format(rssTimeFormat), 6)
	writeRawElement(buf, "description", item.Summary, 6)

	if e.mode == ModeFull && item.Content != "" {
		writeRawElement(buf, "content:encoded", item.Content, 6)
	}

	writeRawElement(buf, "author", item.Author, 6)

	for _, category := range item.Categories {
		writeRawElement(buf, "category", category, 6)
	}

	if item.Enclosure != nil {
		buf.WriteString(fmt.Sprintf("      <enclosure url=\"%s\" length=\"0\" type=\"%s\" />\n",
			html.EscapeString(item.Enclosure.URL),
			html.EscapeString(item.Enclosure.Type)))
	}

	buf.WriteString("    </item>\n")

	return nil
}
