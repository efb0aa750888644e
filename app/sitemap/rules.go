package sitemap

import (
	"cmp"
	"time"

	"github.com/gosimple/slug"

	"github.com/madink-frank/reddit-sub006/app/content"
)

// Priorities for each page kind. Every page kind changes weekly.
const (
	homePriority     = 1.0
	postPriority     = 0.8
	categoryPriority = 0.6
	tagPriority      = 0.5
)

// URLEntries applies the URL rule set: the home page, one entry per
// post detail page (lastmod from the post), one per category page and
// one per tag page.
func (b *Builder) URLEntries(posts []content.Post, categories []content.Category, tags []content.Tag) ([]URLEntry, error) {
	entries := make([]URLEntry, 0, 1+len(posts)+len(categories)+len(tags))

	home, err := NewURLEntry(b.baseURL+"/", time.Time{}, Weekly, homePriority)
	if err != nil {
		return nil, err
	}
	entries = append(entries, home)

	for _, post := range posts {
		if post.Slug == "" {
			return nil, &ValidationError{Field: "loc", Reason: "post " + post.ID + " has no slug"}
		}

		entry, err := NewURLEntry(b.baseURL+"/posts/"+post.Slug,
			cmp.Or(post.UpdatedAt, post.PublishedAt), Weekly, postPriority)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	for _, category := range categories {
		entry, err := NewURLEntry(b.baseURL+"/category/"+pathSlug(category.Slug, category.Name),
			time.Time{}, Weekly, categoryPriority)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	for _, tag := range tags {
		entry, err := NewURLEntry(b.baseURL+"/tag/"+pathSlug(tag.Slug, tag.Name),
			time.Time{}, Weekly, tagPriority)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}

	return entries, nil
}

// pathSlug prefers the slug assigned by the content API and derives
// one from the label otherwise.
func pathSlug(apiSlug, label string) string {
	if apiSlug != "" {
		return apiSlug
	}
	return slug.Make(label)
}
