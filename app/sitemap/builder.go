package sitemap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
	"time"

	"github.com/madink-frank/reddit-sub006/app/content"
)

const (
	xmlHeader = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"

	sitemapNS = "http://www.sitemaps.org/schemas/sitemap/0.9"
	newsNS    = "http://www.google.com/schemas/sitemap-news/0.9"
	imageNS   = "http://www.google.com/schemas/sitemap-image/1.1"

	// Hard caps per document from the Sitemap protocol. Exceeding
	// either forces a split across multiple documents.
	maxURLsPerDocument  = 50000
	maxBytesPerDocument = 50 * 1024 * 1024
)

// Published paths of the sitemap artifacts.
const (
	PrimaryPath = "/sitemap.xml"
	NewsPath    = "/sitemap-news.xml"
	ImagesPath  = "/sitemap-images.xml"
	IndexPath   = "/sitemap-index.xml"
)

// ChunkPath is where the n-th child of a split sitemap is served,
// counting from 1.
func ChunkPath(n int) string {
	return fmt.Sprintf("/sitemaps/sitemap-%d.xml", n)
}

// Publication identifies the site in Google News sitemaps.
type Publication struct {
	Name     string
	Language string
}

// Builder assembles and renders sitemap documents for the site's
// public pages. Entries are built from raw URLs and labels, so all
// values are escaped at write time.
type Builder struct {
	baseURL     string
	publication Publication
}

func NewBuilder(baseURL string, publication Publication) *Builder {
	return &Builder{
		baseURL:     strings.TrimRight(baseURL, "/"),
		publication: publication,
	}
}

// Build renders the basic sitemap for the full URL inventory. The
// result is a single urlset document, or a sitemapindex primary plus
// numbered children when the inventory exceeds the protocol caps.
func (b *Builder) Build(posts []content.Post, categories []content.Category, tags []content.Tag) ([]Document, error) {
	entries, err := b.URLEntries(posts, categories, tags)
	if err != nil {
		return nil, err
	}

	rendered := Render(entries)
	if len(rendered) == 1 {
		return []Document{{Path: PrimaryPath, XML: rendered[0]}}, nil
	}

	lastMod := latestChange(posts)
	documents := make([]Document, 1, len(rendered)+1)
	children := make([]IndexEntry, 0, len(rendered))
	for i, chunk := range rendered {
		path := ChunkPath(i + 1)
		documents = append(documents, Document{Path: path, XML: chunk})
		children = append(children, IndexEntry{Loc: b.baseURL + path, LastMod: lastMod})
	}
	documents[0] = Document{Path: PrimaryPath, XML: RenderIndex(children)}

	return documents, nil
}

// Render serializes entries into urlset documents, splitting whenever
// a protocol cap would be exceeded. Every call returns at least one
// document.
func Render(entries []URLEntry) []string {
	open := xmlHeader + `<urlset xmlns="` + sitemapNS + `">` + "\n"
	const closing = "</urlset>"

	var (
		documents []string
		buf       bytes.Buffer
		count     int
	)
	buf.WriteString(open)

	flush := func() {
		buf.WriteString(closing)
		documents = append(documents, buf.String())
		buf.Reset()
		buf.WriteString(open)
		count = 0
	}

	for _, entry := range entries {
		block := renderURLBlock(entry)
		if count > 0 && (count >= maxURLsPerDocument || buf.Len()+len(block)+len(closing) > maxBytesPerDocument) {
			flush()
		}
		buf.WriteString(block)
		count++
	}
	flush()

	return documents
}

func renderURLBlock(entry URLEntry) string {
	var buf bytes.Buffer

	buf.WriteString("  <url>\n")
	writeElement(&buf, "loc", entry.Loc, 4)
	if !entry.LastMod.IsZero() {
		writeElement(&buf, "lastmod", w3cTime(entry.LastMod), 4)
	}
	writeElement(&buf, "changefreq", string(entry.ChangeFreq), 4)
	writeElement(&buf, "priority", fmt.Sprintf("%.1f", entry.Priority), 4)
	buf.WriteString("  </url>\n")

	return buf.String()
}

// writeElement writes an indented XML element, escaping the content.
// Empty content suppresses the element.
func writeElement(buf *bytes.Buffer, tag, content string, indent int) {
	if content == "" {
		return
	}

	for i := 0; i < indent; i++ {
		buf.WriteByte(' ')
	}

	buf.WriteString("<")
	buf.WriteString(tag)
	buf.WriteString(">")
	xml.EscapeText(buf, []byte(content))
	buf.WriteString("</")
	buf.WriteString(tag)
	buf.WriteString(">\n")
}

// w3cTime renders a W3C datetime: date-only at midnight UTC, full
// RFC 3339 otherwise.
func w3cTime(t time.Time) string {
	utc := t.UTC()
	if utc.Hour() == 0 && utc.Minute() == 0 && utc.Second() == 0 && utc.Nanosecond() == 0 {
		return utc.Format("2006-01-02")
	}
	return utc.Format(time.RFC3339)
}
