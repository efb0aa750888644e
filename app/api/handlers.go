package api

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/madink-frank/reddit-sub006/app/feed"
	"github.com/madink-frank/reddit-sub006/app/syndication"
)

func NewHandler(generator Generator, version string) *Handler {
	return &Handler{generator: generator, version: version}
}

func (h *Handler) GetRSS(c *gin.Context) {
	h.serveFeed(c, h.generator.GenerateRSS)
}

func (h *Handler) GetEnhancedRSS(c *gin.Context) {
	h.serveFeed(c, h.generator.GenerateEnhancedRSS)
}

func (h *Handler) GetAtom(c *gin.Context) {
	h.serveFeed(c, h.generator.GenerateAtom)
}

func (h *Handler) GetEnhancedAtom(c *gin.Context) {
	h.serveFeed(c, h.generator.GenerateEnhancedAtom)
}

func (h *Handler) GetJSONFeed(c *gin.Context) {
	h.serveFeed(c, h.generator.GenerateJSON)
}

func (h *Handler) GetEnhancedJSONFeed(c *gin.Context) {
	h.serveFeed(c, h.generator.GenerateEnhancedJSON)
}

func (h *Handler) GetCategoryRSS(c *gin.Context) {
	category := c.Param("category")
	if category == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	h.serveFeed(c, func(ctx context.Context, limit int) (syndication.Artifact, error) {
		return h.generator.GenerateCategoryRSS(ctx, category, limit)
	})
}

func (h *Handler) GetTagRSS(c *gin.Context) {
	tag := c.Param("tag")
	if tag == "" {
		c.Status(http.StatusBadRequest)
		return
	}

	h.serveFeed(c, func(ctx context.Context, limit int) (syndication.Artifact, error) {
		return h.generator.GenerateTagRSS(ctx, tag, limit)
	})
}

func (h *Handler) GetSitemap(c *gin.Context) {
	h.serveDocument(c, h.generator.GenerateSitemap)
}

// GetSitemapChunk serves one numbered child of a split sitemap. The
// route parameter carries the full file name, e.g. "sitemap-2.xml".
func (h *Handler) GetSitemapChunk(c *gin.Context) {
	n, ok := chunkNumber(c.Param("name"))
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	h.serveDocument(c, func(ctx context.Context) (syndication.Artifact, error) {
		return h.generator.GenerateSitemapChunk(ctx, n)
	})
}

func (h *Handler) GetNewsSitemap(c *gin.Context) {
	h.serveDocument(c, h.generator.GenerateNewsSitemap)
}

func (h *Handler) GetImageSitemap(c *gin.Context) {
	h.serveDocument(c, h.generator.GenerateImageSitemap)
}

func (h *Handler) GetSitemapIndex(c *gin.Context) {
	h.serveDocument(c, h.generator.GenerateSitemapIndex)
}

func (h *Handler) GetRobotsTxt(c *gin.Context) {
	artifact := h.generator.GenerateRobotsTxt()

	c.Header("Content-Type", artifact.ContentType)
	c.String(http.StatusOK, artifact.Body)
}

func (h *Handler) GetHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":    "ok",
		"version":   h.version,
		"timestamp": time.Now().In(time.Local).Format(time.RFC3339),
	})
}

func (h *Handler) serveFeed(c *gin.Context, generate func(context.Context, int) (syndication.Artifact, error)) {
	limit, err := parseLimit(c.Query("limit"))
	if err != nil {
		c.String(http.StatusBadRequest, "invalid limit parameter")
		return
	}

	artifact, err := generate(c.Request.Context(), limit)
	if err != nil {
		h.serveError(c, err)
		return
	}

	c.Header("Content-Type", artifact.ContentType)
	c.Header("X-Feed-Items", strconv.Itoa(artifact.ItemCount))
	c.Header("X-Generated-At", time.Now().UTC().Format(time.RFC3339))

	c.String(http.StatusOK, artifact.Body)
}

func (h *Handler) serveDocument(c *gin.Context, generate func(context.Context) (syndication.Artifact, error)) {
	artifact, err := generate(c.Request.Context())
	if err != nil {
		h.serveError(c, err)
		return
	}

	c.Header("Content-Type", artifact.ContentType)
	c.Header("X-Generated-At", time.Now().UTC().Format(time.RFC3339))

	c.String(http.StatusOK, artifact.Body)
}

// serveError maps generation failures to status codes: upstream fetch
// failures are a bad gateway, everything else is internal.
func (h *Handler) serveError(c *gin.Context, err error) {
	var genErr *feed.GenerationError

	switch {
	case errors.Is(err, syndication.ErrNoSuchDocument):
		c.Status(http.StatusNotFound)
	case errors.As(err, &genErr):
		slog.Error("Upstream fetch failed", "artifact", genErr.Artifact, "error", genErr.Err)
		c.Status(http.StatusBadGateway)
	default:
		slog.Error("Generation failed", "path", c.Request.URL.Path, "error", err)
		c.Status(http.StatusInternalServerError)
	}
}

// parseLimit reads the optional limit query parameter. Zero means the
// caller gets the configured default.
func parseLimit(raw string) (int, error) {
	if raw == "" {
		return 0, nil
	}

	limit, err := strconv.Atoi(raw)
	if err != nil || limit < 1 {
		return 0, fmt.Errorf("limit must be a positive integer")
	}
	return limit, nil
}

func chunkNumber(name string) (int, bool) {
	rest, ok := strings.CutPrefix(name, "sitemap-")
	if !ok {
		return 0, false
	}
	rest, ok = strings.CutSuffix(rest, ".xml")
	if !ok {
		return 0, false
	}

	n, err := strconv.Atoi(rest)
	if err != nil || n < 1 {
		return 0, false
	}
	return n, true
}
