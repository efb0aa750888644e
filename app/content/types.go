package content

import (
	"time"
)

// Post is a canonical post record as served by the content API. The
// syndication subsystem never mutates it.
type Post struct {
	ID            string    `json:"id"`
	Title         string    `json:"title"`
	Slug          string    `json:"slug"`
	Excerpt       string    `json:"excerpt"`
	Content       string    `json:"content"`
	Author        string    `json:"author"`
	PublishedAt   time.Time `json:"publishedAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
	Category      string    `json:"category"`
	Tags          []string  `json:"tags"`
	CoverImageURL string    `json:"coverImageUrl"`
}

// Category is a category record from the content API.
type Category struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	PostCount int    `json:"postCount"`
}

// Tag is a tag record from the content API.
type Tag struct {
	Name      string `json:"name"`
	Slug      string `json:"slug"`
	PostCount int    `json:"postCount"`
}

// PostPage is one page of the paginated post listing.
type PostPage struct {
	Posts []Post `json:"posts"`
	Total int    `json:"total"`
}

// ListOptions narrows a post listing. Zero values mean "no filter" and
// "use the client default page size".
type ListOptions struct {
	Page     int
	PageSize int
	Category string
	Tag      string
}
