package sitemap

import (
	"errors"
	"fmt"
	"strings"
	"testing"
	"time"

	"github.com/madink-frank/reddit-sub006/app/content"
)

func testBuilder() *Builder {
	return NewBuilder("https://blog.example.com/", Publication{Name: "Example Blog", Language: "en"})
}

func testPosts() []content.Post {
	return []content.Post{
		{
			ID:          "p1",
			Title:       "First",
			Slug:        "first",
			PublishedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
			UpdatedAt:   time.Date(2025, 6, 2, 9, 15, 0, 0, time.UTC),
		},
		{
			ID:          "p2",
			Title:       "Second",
			Slug:        "second",
			PublishedAt: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC),
		},
	}
}

func TestURLEntriesRuleSet(t *testing.T) {
	builder := testBuilder()

	entries, err := builder.URLEntries(testPosts(),
		[]content.Category{{Name: "Tech", Slug: "tech"}},
		[]content.Tag{{Name: "Level Design"}})
	if err != nil {
		t.Fatalf("URLEntries() error = %v", err)
	}

	if len(entries) != 5 {
		t.Fatalf("Expected 5 entries, got %d", len(entries))
	}

	home := entries[0]
	if home.Loc != "https://blog.example.com/" {
		t.Errorf("Unexpected home loc: %q", home.Loc)
	}
	if home.Priority != 1.0 || home.ChangeFreq != Weekly {
		t.Errorf("Unexpected home rule: priority=%v changefreq=%q", home.Priority, home.ChangeFreq)
	}
	if !home.LastMod.IsZero() {
		t.Error("Expected no lastmod on the home entry")
	}

	post := entries[1]
	if post.Loc != "https://blog.example.com/posts/first" {
		t.Errorf("Unexpected post loc: %q", post.Loc)
	}
	if post.Priority != 0.8 {
		t.Errorf("Expected post priority 0.8, got %v", post.Priority)
	}
	if !post.LastMod.Equal(time.Date(2025, 6, 2, 9, 15, 0, 0, time.UTC)) {
		t.Errorf("Expected lastmod from UpdatedAt, got %v", post.LastMod)
	}

	// The second post has never been updated.
	if !entries[2].LastMod.Equal(time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC)) {
		t.Errorf("Expected lastmod fallback to PublishedAt, got %v", entries[2].LastMod)
	}

	category := entries[3]
	if category.Loc != "https://blog.example.com/category/tech" {
		t.Errorf("Unexpected category loc: %q", category.Loc)
	}
	if category.Priority != 0.6 {
		t.Errorf("Expected category priority 0.6, got %v", category.Priority)
	}

	tag := entries[4]
	if tag.Loc != "https://blog.example.com/tag/level-design" {
		t.Errorf("Expected slugified tag path, got %q", tag.Loc)
	}
	if tag.Priority != 0.5 {
		t.Errorf("Expected tag priority 0.5, got %v", tag.Priority)
	}
}

func TestURLEntriesRequireLabelSlugs(t *testing.T) {
	builder := testBuilder()

	posts := []content.Post{{ID: "p9", Title: "No slug", PublishedAt: time.Now()}}

	_, err := builder.URLEntries(posts, nil, nil)
	if err == nil {
		t.Fatal("Expected an error for a post without a slug")
	}

	var validationErr *ValidationError
	if !errors.As(err, &validationErr) {
		t.Fatalf("Expected ValidationError, got %T", err)
	}
	if !strings.Contains(validationErr.Error(), "p9") {
		t.Errorf("Expected the error to name the post, got %q", validationErr.Error())
	}
}

func TestRenderSingleDocument(t *testing.T) {
	entries := []URLEntry{
		{Loc: "https://blog.example.com/", ChangeFreq: Weekly, Priority: 1.0},
		{Loc: "https://blog.example.com/posts/first", LastMod: time.Date(2025, 6, 2, 9, 15, 0, 0, time.UTC), ChangeFreq: Weekly, Priority: 0.8},
		{Loc: "https://blog.example.com/posts/second", LastMod: time.Date(2025, 6, 10, 0, 0, 0, 0, time.UTC), ChangeFreq: Weekly, Priority: 0.8},
	}

	documents := Render(entries)
	if len(documents) != 1 {
		t.Fatalf("Expected a single document, got %d", len(documents))
	}
	output := documents[0]

	if !strings.HasPrefix(output, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("Expected XML declaration at the start of the document")
	}
	if !strings.Contains(output, `<urlset xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`) {
		t.Error("Expected urlset root with the sitemap namespace")
	}

	expectations := []string{
		"<loc>https://blog.example.com/</loc>",
		"<changefreq>weekly</changefreq>",
		"<priority>1.0</priority>",
		"<priority>0.8</priority>",
		"<lastmod>2025-06-02T09:15:00Z</lastmod>",
		"<lastmod>2025-06-10</lastmod>",
	}
	for _, want := range expectations {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}

	if strings.Count(output, "<url>") != 3 {
		t.Errorf("Expected 3 url elements, got %d", strings.Count(output, "<url>"))
	}
}

func TestRenderEscapesValues(t *testing.T) {
	entries := []URLEntry{
		{Loc: "https://blog.example.com/search?q=go&page=2", ChangeFreq: Weekly, Priority: 0.5},
	}

	output := Render(entries)[0]

	if !strings.Contains(output, "<loc>https://blog.example.com/search?q=go&amp;page=2</loc>") {
		t.Error("Expected ampersands in loc escaped")
	}
}

func TestBuildSingleDocument(t *testing.T) {
	builder := testBuilder()

	documents, err := builder.Build(testPosts(), nil, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(documents) != 1 {
		t.Fatalf("Expected a single document, got %d", len(documents))
	}
	if documents[0].Path != "/sitemap.xml" {
		t.Errorf("Unexpected path: %q", documents[0].Path)
	}
	if strings.Contains(documents[0].XML, "<sitemapindex") {
		t.Error("Expected a urlset document, not a sitemapindex")
	}
}

func TestBuildSplitsLargeInventory(t *testing.T) {
	builder := testBuilder()

	posts := make([]content.Post, 60000)
	for i := range posts {
		posts[i] = content.Post{
			ID:          fmt.Sprintf("p%d", i),
			Title:       fmt.Sprintf("Post %d", i),
			Slug:        fmt.Sprintf("post-%d", i),
			PublishedAt: time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC),
		}
	}

	documents, err := builder.Build(posts, nil, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(documents) != 3 {
		t.Fatalf("Expected index plus 2 chunks, got %d documents", len(documents))
	}

	index := documents[0]
	if index.Path != "/sitemap.xml" {
		t.Errorf("Expected the index at /sitemap.xml, got %q", index.Path)
	}
	if !strings.Contains(index.XML, `<sitemapindex xmlns="http://www.sitemaps.org/schemas/sitemap/0.9">`) {
		t.Error("Expected a sitemapindex primary document")
	}
	if !strings.Contains(index.XML, "<loc>https://blog.example.com/sitemaps/sitemap-1.xml</loc>") {
		t.Error("Expected the index to reference the first chunk")
	}
	if !strings.Contains(index.XML, "<loc>https://blog.example.com/sitemaps/sitemap-2.xml</loc>") {
		t.Error("Expected the index to reference the second chunk")
	}

	total := 0
	for i, doc := range documents[1:] {
		wantPath := fmt.Sprintf("/sitemaps/sitemap-%d.xml", i+1)
		if doc.Path != wantPath {
			t.Errorf("Expected chunk path %q, got %q", wantPath, doc.Path)
		}

		count := strings.Count(doc.XML, "<url>")
		if count > 50000 {
			t.Errorf("Chunk %d has %d url entries, above the protocol cap", i+1, count)
		}
		total += count
	}

	// 60,000 posts plus the home page.
	if total != 60001 {
		t.Errorf("Expected 60001 url entries across chunks, got %d", total)
	}
}

func TestBuildIsIdempotent(t *testing.T) {
	builder := testBuilder()

	first, err := builder.Build(testPosts(), []content.Category{{Name: "Tech", Slug: "tech"}}, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}
	second, err := builder.Build(testPosts(), []content.Category{{Name: "Tech", Slug: "tech"}}, nil)
	if err != nil {
		t.Fatalf("Build() error = %v", err)
	}

	if len(first) != len(second) {
		t.Fatalf("Expected identical document counts, got %d and %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("Expected document %d to be byte-identical across runs", i)
		}
	}
}
