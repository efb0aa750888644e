package api

import (
	"context"

	"github.com/madink-frank/reddit-sub006/app/syndication"
)

// Generator is the slice of the syndication service the handlers use.
type Generator interface {
	GenerateRSS(ctx context.Context, limit int) (syndication.Artifact, error)
	GenerateEnhancedRSS(ctx context.Context, limit int) (syndication.Artifact, error)
	GenerateAtom(ctx context.Context, limit int) (syndication.Artifact, error)
	GenerateEnhancedAtom(ctx context.Context, limit int) (syndication.Artifact, error)
	GenerateJSON(ctx context.Context, limit int) (syndication.Artifact, error)
	GenerateEnhancedJSON(ctx context.Context, limit int) (syndication.Artifact, error)
	GenerateCategoryRSS(ctx context.Context, category string, limit int) (syndication.Artifact, error)
	GenerateTagRSS(ctx context.Context, tag string, limit int) (syndication.Artifact, error)
	GenerateSitemap(ctx context.Context) (syndication.Artifact, error)
	GenerateSitemapChunk(ctx context.Context, n int) (syndication.Artifact, error)
	GenerateNewsSitemap(ctx context.Context) (syndication.Artifact, error)
	GenerateImageSitemap(ctx context.Context) (syndication.Artifact, error)
	GenerateSitemapIndex(ctx context.Context) (syndication.Artifact, error)
	GenerateRobotsTxt() syndication.Artifact
}

var _ Generator = (*syndication.Service)(nil)

type Handler struct {
	generator Generator
	version   string
}
