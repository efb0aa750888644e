// Package syndication orchestrates content fetching and the
// generation of feeds, sitemaps and robots directives.
package syndication

import (
	"cmp"
	"context"
	"errors"
	"log/slog"
	"net/url"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/madink-frank/reddit-sub006/app/content"
	"github.com/madink-frank/reddit-sub006/app/feed"
	"github.com/madink-frank/reddit-sub006/app/robots"
	"github.com/madink-frank/reddit-sub006/app/site"
	"github.com/madink-frank/reddit-sub006/app/sitemap"
)

// ErrNoSuchDocument is returned for a sitemap chunk that does not
// exist in the current inventory split.
var ErrNoSuchDocument = errors.New("no such sitemap document")

const (
	contentTypeXML  = "application/xml; charset=utf-8"
	contentTypeText = "text/plain; charset=utf-8"
)

// ContentSource is the slice of the content API the service consumes.
type ContentSource interface {
	ListPosts(ctx context.Context, opts content.ListOptions) (*content.PostPage, error)
	ListAllPosts(ctx context.Context) ([]content.Post, error)
	ListCategories(ctx context.Context) ([]content.Category, error)
	ListTags(ctx context.Context) ([]content.Tag, error)
}

var _ ContentSource = (*content.Client)(nil)

// Artifact is a generated document ready to serve. ItemCount is set
// for feeds only.
type Artifact struct {
	Body        string
	ContentType string
	ItemCount   int
}

// Options carries the deployment configuration the service needs.
type Options struct {
	BaseURL      string
	DefaultLimit int
	MaxLimit     int
	FetchTimeout time.Duration
	Generator    string
}

// Service is the generation facade. It holds immutable configuration
// and stateless collaborators only, so one instance serves concurrent
// requests without locking.
type Service struct {
	source       ContentSource
	adapter      *feed.Adapter
	builder      *sitemap.Builder
	profile      site.Profile
	baseURL      string
	defaultLimit int
	maxLimit     int
	fetchTimeout time.Duration
	generator    string
}

func NewService(source ContentSource, profile site.Profile, opts Options) *Service {
	baseURL := strings.TrimRight(opts.BaseURL, "/")

	return &Service{
		source:  source,
		adapter: feed.NewAdapter(baseURL),
		builder: sitemap.NewBuilder(baseURL, sitemap.Publication{
			Name:     profile.News.PublicationName,
			Language: profile.News.PublicationLanguage,
		}),
		profile:      profile,
		baseURL:      baseURL,
		defaultLimit: opts.DefaultLimit,
		maxLimit:     opts.MaxLimit,
		fetchTimeout: opts.FetchTimeout,
		generator:    cmp.Or(profile.Channel.Generator, opts.Generator),
	}
}

// GenerateRSS renders the summary RSS 2.0 feed over the newest posts.
func (s *Service) GenerateRSS(ctx context.Context, limit int) (Artifact, error) {
	return s.generateFeed(ctx, feed.FormatRSS, feed.ModeSummary, scope{}, limit)
}

// GenerateEnhancedRSS renders the RSS feed carrying full post bodies.
func (s *Service) GenerateEnhancedRSS(ctx context.Context, limit int) (Artifact, error) {
	return s.generateFeed(ctx, feed.FormatRSS, feed.ModeFull, scope{}, limit)
}

// GenerateAtom renders the summary Atom 1.0 feed.
func (s *Service) GenerateAtom(ctx context.Context, limit int) (Artifact, error) {
	return s.generateFeed(ctx, feed.FormatAtom, feed.ModeSummary, scope{}, limit)
}

// GenerateEnhancedAtom renders the Atom feed carrying full post bodies.
func (s *Service) GenerateEnhancedAtom(ctx context.Context, limit int) (Artifact, error) {
	return s.generateFeed(ctx, feed.FormatAtom, feed.ModeFull, scope{}, limit)
}

// GenerateJSON renders the summary JSON Feed 1.1 document.
func (s *Service) GenerateJSON(ctx context.Context, limit int) (Artifact, error) {
	return s.generateFeed(ctx, feed.FormatJSON, feed.ModeSummary, scope{}, limit)
}

// GenerateEnhancedJSON renders the JSON Feed carrying full post bodies.
func (s *Service) GenerateEnhancedJSON(ctx context.Context, limit int) (Artifact, error) {
	return s.generateFeed(ctx, feed.FormatJSON, feed.ModeFull, scope{}, limit)
}

// GenerateCategoryRSS renders the RSS feed narrowed to one category.
func (s *Service) GenerateCategoryRSS(ctx context.Context, category string, limit int) (Artifact, error) {
	return s.generateFeed(ctx, feed.FormatRSS, feed.ModeSummary, scope{category: category}, limit)
}

// GenerateTagRSS renders the RSS feed narrowed to one tag.
func (s *Service) GenerateTagRSS(ctx context.Context, tag string, limit int) (Artifact, error) {
	return s.generateFeed(ctx, feed.FormatRSS, feed.ModeSummary, scope{tag: tag}, limit)
}

// GenerateSitemap renders the primary sitemap document: a urlset, or a
// sitemapindex over numbered chunks when the URL inventory exceeds the
// protocol caps.
func (s *Service) GenerateSitemap(ctx context.Context) (Artifact, error) {
	documents, err := s.sitemapDocuments(ctx)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Body: documents[0].XML, ContentType: contentTypeXML}, nil
}

// GenerateSitemapChunk renders the n-th child of a split sitemap,
// counting from 1.
func (s *Service) GenerateSitemapChunk(ctx context.Context, n int) (Artifact, error) {
	if n < 1 {
		return Artifact{}, ErrNoSuchDocument
	}

	documents, err := s.sitemapDocuments(ctx)
	if err != nil {
		return Artifact{}, err
	}

	path := sitemap.ChunkPath(n)
	for _, document := range documents {
		if document.Path == path {
			return Artifact{Body: document.XML, ContentType: contentTypeXML}, nil
		}
	}

	return Artifact{}, ErrNoSuchDocument
}

// GenerateNewsSitemap renders the Google News sitemap over posts
// published in the trailing 48 hours.
func (s *Service) GenerateNewsSitemap(ctx context.Context) (Artifact, error) {
	posts, err := s.fetchAllPosts(ctx)
	if err != nil {
		return Artifact{}, &feed.GenerationError{Artifact: "news sitemap", Err: err}
	}

	body, err := s.builder.News(posts, time.Now().UTC())
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Body: body, ContentType: contentTypeXML}, nil
}

// GenerateImageSitemap renders the image sitemap over posts that carry
// a cover image.
func (s *Service) GenerateImageSitemap(ctx context.Context) (Artifact, error) {
	posts, err := s.fetchAllPosts(ctx)
	if err != nil {
		return Artifact{}, &feed.GenerationError{Artifact: "image sitemap", Err: err}
	}

	body, err := s.builder.Images(posts)
	if err != nil {
		return Artifact{}, err
	}
	return Artifact{Body: body, ContentType: contentTypeXML}, nil
}

// GenerateSitemapIndex renders the aggregate discovery index over the
// published sitemap artifacts.
func (s *Service) GenerateSitemapIndex(ctx context.Context) (Artifact, error) {
	posts, err := s.fetchAllPosts(ctx)
	if err != nil {
		return Artifact{}, &feed.GenerationError{Artifact: "sitemap index", Err: err}
	}
	return Artifact{Body: s.builder.DiscoveryIndex(posts), ContentType: contentTypeXML}, nil
}

// GenerateRobotsTxt renders the crawl policy. It performs no
// collaborator call, so it cannot fail.
func (s *Service) GenerateRobotsTxt() Artifact {
	return Artifact{
		Body:        robots.Generate(s.baseURL, s.profile.Robots),
		ContentType: contentTypeText,
	}
}

// scope narrows a feed to one category or tag.
type scope struct {
	category string
	tag      string
}

func (sc scope) label() string {
	switch {
	case sc.category != "":
		return "category " + sc.category
	case sc.tag != "":
		return "tag " + sc.tag
	}
	return ""
}

func artifactName(format feed.Format, mode feed.Mode, sc scope) string {
	name := string(format) + " feed"
	if mode == feed.ModeFull {
		name = "enhanced " + name
	}
	if label := sc.label(); label != "" {
		name = label + " " + name
	}
	return name
}

func (s *Service) generateFeed(ctx context.Context, format feed.Format, mode feed.Mode, sc scope, limit int) (Artifact, error) {
	limit = s.clampLimit(limit)

	posts, err := s.fetchPosts(ctx, sc, limit)
	if err != nil {
		return Artifact{}, &feed.GenerationError{Artifact: artifactName(format, mode, sc), Err: err}
	}

	// A malformed post aborts the whole artifact. A feed with a
	// silent gap is harder to detect than one that fails loudly.
	items := make([]feed.Item, 0, len(posts))
	for _, post := range posts {
		item, err := s.adapter.Run(post, mode)
		if err != nil {
			return Artifact{}, err
		}
		items = append(items, item)
	}

	encoder, err := feed.NewEncoder(format, s.channelFor(format, mode, sc), mode)
	if err != nil {
		return Artifact{}, err
	}

	body, err := encoder.Encode(items)
	if err != nil {
		return Artifact{}, err
	}

	slog.Debug("Feed generated", "format", format, "mode", mode, "items", len(items))

	return Artifact{Body: body, ContentType: encoder.ContentType(), ItemCount: len(items)}, nil
}

func (s *Service) clampLimit(limit int) int {
	if limit <= 0 {
		limit = s.defaultLimit
	}
	if s.maxLimit > 0 && limit > s.maxLimit {
		limit = s.maxLimit
	}
	return limit
}

func (s *Service) fetchPosts(ctx context.Context, sc scope, limit int) ([]content.Post, error) {
	ctx, cancel := s.fetchContext(ctx)
	defer cancel()

	page, err := s.source.ListPosts(ctx, content.ListOptions{
		Page:     1,
		PageSize: limit,
		Category: sc.category,
		Tag:      sc.tag,
	})
	if err != nil {
		return nil, err
	}
	return page.Posts, nil
}

func (s *Service) fetchAllPosts(ctx context.Context) ([]content.Post, error) {
	ctx, cancel := s.fetchContext(ctx)
	defer cancel()

	return s.source.ListAllPosts(ctx)
}

// fetchContext bounds the collaborator call. Serialization never runs
// under the timeout.
func (s *Service) fetchContext(ctx context.Context) (context.Context, context.CancelFunc) {
	if s.fetchTimeout <= 0 {
		return ctx, func() {}
	}
	return context.WithTimeout(ctx, s.fetchTimeout)
}

func (s *Service) sitemapDocuments(ctx context.Context) ([]sitemap.Document, error) {
	posts, categories, tags, err := s.fetchSiteInventory(ctx)
	if err != nil {
		return nil, &feed.GenerationError{Artifact: "sitemap", Err: err}
	}

	documents, err := s.builder.Build(posts, categories, tags)
	if err != nil {
		return nil, err
	}

	slog.Debug("Sitemap built", "documents", len(documents))

	return documents, nil
}

// fetchSiteInventory loads posts, categories and tags concurrently.
// The first failure cancels the remaining fetches.
func (s *Service) fetchSiteInventory(ctx context.Context) ([]content.Post, []content.Category, []content.Tag, error) {
	ctx, cancel := s.fetchContext(ctx)
	defer cancel()

	var (
		posts      []content.Post
		categories []content.Category
		tags       []content.Tag
	)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		posts, err = s.source.ListAllPosts(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		categories, err = s.source.ListCategories(gctx)
		return err
	})
	g.Go(func() error {
		var err error
		tags, err = s.source.ListTags(gctx)
		return err
	})

	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}

	return posts, categories, tags, nil
}

// feedPath is the public path a feed variant is served under.
func feedPath(format feed.Format, mode feed.Mode, sc scope) string {
	switch {
	case sc.category != "":
		return "/feeds/category/" + url.PathEscape(sc.category) + "/rss.xml"
	case sc.tag != "":
		return "/feeds/tag/" + url.PathEscape(sc.tag) + "/rss.xml"
	}

	full := mode == feed.ModeFull
	switch format {
	case feed.FormatAtom:
		if full {
			return "/feeds/atom-full.xml"
		}
		return "/feeds/atom.xml"
	case feed.FormatJSON:
		if full {
			return "/feeds/feed-full.json"
		}
		return "/feeds/feed.json"
	default:
		if full {
			return "/feeds/rss-full.xml"
		}
		return "/feeds/rss.xml"
	}
}

// channelFor builds the channel metadata for one feed variant. Scoped
// feeds carry the scope in the channel title.
func (s *Service) channelFor(format feed.Format, mode feed.Mode, sc scope) feed.Channel {
	title := s.profile.Channel.Title
	if sc.category != "" {
		title += " - " + sc.category
	}
	if sc.tag != "" {
		title += " - " + sc.tag
	}

	return feed.Channel{
		Title:          title,
		Description:    s.profile.Channel.Description,
		Link:           s.baseURL,
		FeedURL:        s.baseURL + feedPath(format, mode, sc),
		Language:       s.profile.Channel.Language,
		Copyright:      s.profile.Channel.Copyright,
		ManagingEditor: s.profile.Channel.ManagingEditor,
		Generator:      s.generator,
	}
}
