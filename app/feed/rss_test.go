package feed

import (
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/mmcdole/gofeed"
)

func TestRSSEncoderChannelMetadata(t *testing.T) {
	encoder := NewRSSEncoder(testChannel(), ModeSummary)

	output, err := encoder.Encode(testItems())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if !strings.HasPrefix(output, `<?xml version="1.0" encoding="UTF-8"?>`) {
		t.Error("Expected XML declaration at the start of the document")
	}
	if !strings.Contains(output, `<rss version="2.0" xmlns:atom="http://www.w3.org/2005/Atom">`) {
		t.Error("Expected rss root element with atom namespace")
	}

	expectations := []string{
		"<title>Example Blog</title>",
		"<link>https://blog.example.com</link>",
		"<description>Notes from the example team</description>",
		"<language>en</language>",
		"<copyright>Copyright 2025 Example</copyright>",
		"<managingEditor>editor@example.com (Casey Lin)</managingEditor>",
		"<generator>Feedsmith/1.0</generator>",
		`<atom:link href="https://blog.example.com/rss.xml" rel="self" type="application/rss+xml" />`,
	}
	for _, want := range expectations {
		if !strings.Contains(output, want) {
			t.Errorf("Expected output to contain %q", want)
		}
	}
}

func TestRSSEncoderChannelElementOrder(t *testing.T) {
	encoder := NewRSSEncoder(testChannel(), ModeSummary)

	output, err := encoder.Encode(nil)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	ordered := []string{
		"<title>",
		"<link>",
		"<description>",
		"<language>",
		"<copyright>",
		"<managingEditor>",
		"<lastBuildDate>",
		"<generator>",
		"<atom:link",
	}

	last := -1
	for _, tag := range ordered {
		idx := strings.Index(output, tag)
		if idx < 0 {
			t.Fatalf("Expected output to contain %q", tag)
		}
		if idx < last {
			t.Errorf("Expected %q to appear later in the channel, got index %d", tag, idx)
		}
		last = idx
	}
}

func TestRSSEncoderItemsNewestFirst(t *testing.T) {
	encoder := NewRSSEncoder(testChannel(), ModeSummary)

	output, err := encoder.Encode(testItems())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	newest := strings.Index(output, "<title>Second post</title>")
	oldest := strings.Index(output, "<title>First post</title>")
	if newest < 0 || oldest < 0 {
		t.Fatal("Expected both item titles in the output")
	}
	if newest > oldest {
		t.Error("Expected the newest item to appear first")
	}
}

func TestRSSEncoderLastBuildDateFromNewestItem(t *testing.T) {
	encoder := NewRSSEncoder(testChannel(), ModeSummary)

	output, err := encoder.Encode(testItems())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if !strings.Contains(output, "<lastBuildDate>Tue, 10 Jun 2025 09:00:00 GMT</lastBuildDate>") {
		t.Error("Expected lastBuildDate to match the newest item publication time")
	}
}

func TestRSSEncoderPubDateFormat(t *testing.T) {
	encoder := NewRSSEncoder(testChannel(), ModeSummary)

	items := []Item{{
		GUID:        "urn:uuid:33333333-3333-5333-8333-333333333333",
		Title:       "Zoned",
		Link:        "https://blog.example.com/posts/zoned",
		Summary:     "s",
		PublishedAt: time.Date(2025, 3, 5, 18, 30, 0, 0, time.FixedZone("CET", 3600)),
	}}

	output, err := encoder.Encode(items)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if !strings.Contains(output, "<pubDate>Wed, 05 Mar 2025 17:30:00 GMT</pubDate>") {
		t.Error("Expected pubDate normalized to GMT in RFC 822 format")
	}
}

func TestRSSEncoderGUIDNotPermaLink(t *testing.T) {
	encoder := NewRSSEncoder(testChannel(), ModeSummary)

	output, err := encoder.Encode(testItems())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := `<guid isPermaLink="false">urn:uuid:22222222-2222-5222-8222-222222222222</guid>`
	if !strings.Contains(output, want) {
		t.Errorf("Expected output to contain %q", want)
	}
}

func TestRSSEncoderDoesNotDoubleEscape(t *testing.T) {
	encoder := NewRSSEncoder(testChannel(), ModeSummary)

	items := []Item{{
		GUID:        "urn:uuid:44444444-4444-5444-8444-444444444444",
		Title:       "Q&amp;A: 10 &lt;strong&gt; tips",
		Link:        "https://blog.example.com/posts/qa",
		Summary:     "Answers to &quot;hard&quot; questions",
		PublishedAt: time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC),
		Categories:  []string{"tips &amp; tricks"},
	}}

	output, err := encoder.Encode(items)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if !strings.Contains(output, "<title>Q&amp;A: 10 &lt;strong&gt; tips</title>") {
		t.Error("Expected pre-escaped title to pass through unchanged")
	}
	if strings.Contains(output, "&amp;amp;") || strings.Contains(output, "&amp;lt;") {
		t.Error("Expected no double escaping of item text")
	}
	if !strings.Contains(output, "<category>tips &amp; tricks</category>") {
		t.Error("Expected pre-escaped category to pass through unchanged")
	}
}

func TestRSSEncoderEscapesChannelMetadata(t *testing.T) {
	channel := testChannel()
	channel.Title = "News & Views"
	encoder := NewRSSEncoder(channel, ModeSummary)

	output, err := encoder.Encode(nil)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if !strings.Contains(output, "<title>News &amp; Views</title>") {
		t.Error("Expected channel title escaped at write time")
	}
}

func TestRSSEncoderSummaryMode(t *testing.T) {
	encoder := NewRSSEncoder(testChannel(), ModeSummary)

	output, err := encoder.Encode(testItems())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if strings.Contains(output, "content:encoded") {
		t.Error("Expected no content:encoded element in summary mode")
	}
	if strings.Contains(output, "xmlns:content") {
		t.Error("Expected no content namespace in summary mode")
	}
}

func TestRSSEncoderFullMode(t *testing.T) {
	encoder := NewRSSEncoder(testChannel(), ModeFull)

	output, err := encoder.Encode(testItems())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if !strings.Contains(output, `xmlns:content="http://purl.org/rss/1.0/modules/content/"`) {
		t.Error("Expected content namespace on the rss element in full mode")
	}
	if !strings.Contains(output, "<content:encoded>&lt;p&gt;Second body&lt;/p&gt;</content:encoded>") {
		t.Error("Expected escaped item body in content:encoded")
	}
	if strings.Contains(output, "CDATA") {
		t.Error("Expected no CDATA sections in the output")
	}
}

func TestRSSEncoderEnclosure(t *testing.T) {
	encoder := NewRSSEncoder(testChannel(), ModeSummary)

	items := []Item{{
		GUID:        "urn:uuid:55555555-5555-5555-8555-555555555555",
		Title:       "Covered",
		Link:        "https://blog.example.com/posts/covered",
		Summary:     "s",
		PublishedAt: time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC),
		Enclosure:   &Enclosure{URL: "https://cdn.example.com/covers/a.png", Type: "image/png"},
	}}

	output, err := encoder.Encode(items)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	want := `<enclosure url="https://cdn.example.com/covers/a.png" length="0" type="image/png" />`
	if !strings.Contains(output, want) {
		t.Errorf("Expected output to contain %q", want)
	}
}

func TestRSSEncoderRequiresGUID(t *testing.T) {
	encoder := NewRSSEncoder(testChannel(), ModeSummary)

	items := []Item{{
		Title:       "No identity",
		Link:        "https://blog.example.com/posts/x",
		Summary:     "s",
		PublishedAt: time.Date(2025, 5, 1, 8, 0, 0, 0, time.UTC),
	}}

	_, err := encoder.Encode(items)
	if err == nil {
		t.Fatal("Expected error for item without GUID")
	}

	var encodingErr *EncodingError
	if !errors.As(err, &encodingErr) {
		t.Fatalf("Expected EncodingError, got %T", err)
	}
	if encodingErr.Format != FormatRSS {
		t.Errorf("Expected format rss, got %s", encodingErr.Format)
	}
}

func TestRSSEncoderEmptyFeed(t *testing.T) {
	encoder := NewRSSEncoder(testChannel(), ModeSummary)

	output, err := encoder.Encode(nil)
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	if strings.Contains(output, "<item>") {
		t.Error("Expected no item elements for an empty feed")
	}
	if !strings.Contains(output, "<lastBuildDate>") {
		t.Error("Expected lastBuildDate to fall back to generation time")
	}
}

func TestRSSEncoderRoundTrip(t *testing.T) {
	encoder := NewRSSEncoder(testChannel(), ModeFull)

	output, err := encoder.Encode(testItems())
	if err != nil {
		t.Fatalf("Encode() error = %v", err)
	}

	parsed, err := gofeed.NewParser().ParseString(output)
	if err != nil {
		t.Fatalf("Generated RSS failed to parse: %v", err)
	}

	if parsed.FeedType != "rss" {
		t.Errorf("Expected feed type rss, got %s", parsed.FeedType)
	}
	if parsed.Title != "Example Blog" {
		t.Errorf("Expected channel title 'Example Blog', got %q", parsed.Title)
	}
	if len(parsed.Items) != 2 {
		t.Fatalf("Expected 2 items, got %d", len(parsed.Items))
	}
	if parsed.Items[0].Title != "Second post" {
		t.Errorf("Expected newest item first, got %q", parsed.Items[0].Title)
	}
	if parsed.Items[0].GUID != "urn:uuid:22222222-2222-5222-8222-222222222222" {
		t.Errorf("Unexpected GUID: %q", parsed.Items[0].GUID)
	}

	want := time.Date(2025, 6, 10, 9, 0, 0, 0, time.UTC)
	if parsed.Items[0].PublishedParsed == nil || !parsed.Items[0].PublishedParsed.Equal(want) {
		t.Errorf("Expected pubDate %v, got %v", want, parsed.Items[0].PublishedParsed)
	}

	if parsed.Items[0].Content != "<p>Second body</p>" {
		t.Errorf("Expected unescaped body after parsing, got %q", parsed.Items[0].Content)
	}
}
