package sitemap

import (
	"bytes"
	"cmp"
	"time"

	"github.com/madink-frank/reddit-sub006/app/content"
)

// RenderIndex serializes a sitemapindex over child sitemaps.
func RenderIndex(children []IndexEntry) string {
	var buf bytes.Buffer

	buf.WriteString(xmlHeader)
	buf.WriteString(`<sitemapindex xmlns="` + sitemapNS + `">`)
	buf.WriteString("\n")

	for _, child := range children {
		buf.WriteString("  <sitemap>\n")
		writeElement(&buf, "loc", child.Loc, 4)
		if !child.LastMod.IsZero() {
			writeElement(&buf, "lastmod", w3cTime(child.LastMod), 4)
		}
		buf.WriteString("  </sitemap>\n")
	}

	buf.WriteString("</sitemapindex>")

	return buf.String()
}

// DiscoveryIndex renders the aggregate index pointing crawlers at the
// basic, news and image sitemaps.
func (b *Builder) DiscoveryIndex(posts []content.Post) string {
	lastMod := latestChange(posts)

	return RenderIndex([]IndexEntry{
		{Loc: b.baseURL + PrimaryPath, LastMod: lastMod},
		{Loc: b.baseURL + NewsPath, LastMod: lastMod},
		{Loc: b.baseURL + ImagesPath, LastMod: lastMod},
	})
}

// latestChange is the most recent update timestamp across posts, zero
// when there are none.
func latestChange(posts []content.Post) time.Time {
	var latest time.Time
	for _, post := range posts {
		if ts := cmp.Or(post.UpdatedAt, post.PublishedAt); ts.After(latest) {
			latest = ts
		}
	}
	return latest
}
