package sitemap

import (
	"bytes"
	"strings"
	"time"

	"github.com/madink-frank/reddit-sub006/app/content"
)

// newsWindow is the News sitemap recency constraint: only articles
// published within the trailing 48 hours may appear.
const newsWindow = 48 * time.Hour

// maxNewsKeywords caps news:keywords per the protocol.
const maxNewsKeywords = 10

// News renders the Google News sitemap. Posts outside the recency
// window are dropped entirely, not flagged; now anchors the window.
func (b *Builder) News(posts []content.Post, now time.Time) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(xmlHeader)
	buf.WriteString(`<urlset xmlns="` + sitemapNS + `" xmlns:news="` + newsNS + `">`)
	buf.WriteString("\n")

	for _, post := range posts {
		if !withinNewsWindow(post.PublishedAt, now) {
			continue
		}
		if post.Slug == "" {
			return "", &ValidationError{Field: "loc", Reason: "post " + post.ID + " has no slug"}
		}

		writeNewsEntry(&buf, NewsEntry{
			Loc:             b.baseURL + "/posts/" + post.Slug,
			PublicationName: b.publication.Name,
			PublicationLang: b.publication.Language,
			Title:           post.Title,
			PublishedAt:     post.PublishedAt,
			Keywords:        newsKeywords(post),
		})
	}

	buf.WriteString("</urlset>")

	return buf.String(), nil
}

func withinNewsWindow(publishedAt, now time.Time) bool {
	if publishedAt.IsZero() || publishedAt.After(now) {
		return false
	}
	return now.Sub(publishedAt) <= newsWindow
}

// newsKeywords joins the post category and tags, capped at ten.
func newsKeywords(post content.Post) []string {
	keywords := make([]string, 0, 1+len(post.Tags))

	if post.Category != "" {
		keywords = append(keywords, post.Category)
	}
	for _, tag := range post.Tags {
		if tag != "" {
			keywords = append(keywords, tag)
		}
	}

	if len(keywords) > maxNewsKeywords {
		keywords = keywords[:maxNewsKeywords]
	}
	return keywords
}

func writeNewsEntry(buf *bytes.Buffer, entry NewsEntry) {
	buf.WriteString("  <url>\n")
	writeElement(buf, "loc", entry.Loc, 4)
	buf.WriteString("    <news:news>\n")
	buf.WriteString("      <news:publication>\n")
	writeElement(buf, "news:name", entry.PublicationName, 8)
	writeElement(buf, "news:language", entry.PublicationLang, 8)
	buf.WriteString("      </news:publication>\n")
	writeElement(buf, "news:publication_date", entry.PublishedAt.UTC().Format(time.RFC3339), 6)
	writeElement(buf, "news:title", entry.Title, 6)
	if len(entry.Keywords) > 0 {
		writeElement(buf, "news:keywords", strings.Join(entry.Keywords, ", "), 6)
	}
	buf.WriteString("    </news:news>\n")
	buf.WriteString("  </url>\n")
}
