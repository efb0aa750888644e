package sitemap

import (
	"bytes"

	"github.com/madink-frank/reddit-sub006/app/content"
)

// Images renders the image sitemap: one url per post that exposes a
// cover image. Posts without images are omitted.
func (b *Builder) Images(posts []content.Post) (string, error) {
	var buf bytes.Buffer

	buf.WriteString(xmlHeader)
	buf.WriteString(`<urlset xmlns="` + sitemapNS + `" xmlns:image="` + imageNS + `">`)
	buf.WriteString("\n")

	for _, post := range posts {
		if post.CoverImageURL == "" {
			continue
		}
		if post.Slug == "" {
			return "", &ValidationError{Field: "loc", Reason: "post " + post.ID + " has no slug"}
		}

		writeImageEntry(&buf, ImageEntry{
			Loc: b.baseURL + "/posts/" + post.Slug,
			Images: []Image{{
				Loc:     post.CoverImageURL,
				Caption: post.Excerpt,
				Title:   post.Title,
			}},
		})
	}

	buf.WriteString("</urlset>")

	return buf.String(), nil
}

func writeImageEntry(buf *bytes.Buffer, entry ImageEntry) {
	buf.WriteString("  <url>\n")
	writeElement(buf, "loc", entry.Loc, 4)

	for _, image := range entry.Images {
		buf.WriteString("    <image:image>\n")
		writeElement(buf, "image:loc", image.Loc, 6)
		writeElement(buf, "image:caption", image.Caption, 6)
		writeElement(buf, "image:title", image.Title, 6)
		buf.WriteString("    </image:image>\n")
	}

	buf.WriteString("  </url>\n")
}
