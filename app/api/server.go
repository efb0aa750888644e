package api

import (
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
)

// NewServer creates a new HTTP server with all routes configured
func NewServer(handler *Handler) *gin.Engine {
	// Set Gin mode (can be controlled via GIN_MODE environment variable)
	gin.SetMode(gin.ReleaseMode)

	r := gin.New()

	// Middleware
	r.Use(gin.LoggerWithConfig(gin.LoggerConfig{
		Formatter: func(param gin.LogFormatterParams) string {
			return fmt.Sprintf("%s - [%s] \"%s %s %s %d %s \"%s\" %s\"\n",
				param.ClientIP,
				param.TimeStamp.Format(time.RFC3339),
				param.Method,
				param.Path,
				param.Request.Proto,
				param.StatusCode,
				param.Latency,
				param.Request.UserAgent(),
				param.ErrorMessage,
			)
		},
	}))

	r.Use(gin.Recovery())

	// CORS middleware, feed readers fetch from anywhere
	r.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Origin, Content-Type, Accept")

		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}

		c.Next()
	})

	// Routes
	setupRoutes(r, handler)

	return r
}

// setupRoutes configures all the application routes
func setupRoutes(r *gin.Engine, handler *Handler) {
	// Feed endpoints
	feeds := r.Group("/feeds")
	{
		feeds.GET("/rss.xml", handler.GetRSS)
		feeds.GET("/rss-full.xml", handler.GetEnhancedRSS)
		feeds.GET("/atom.xml", handler.GetAtom)
		feeds.GET("/atom-full.xml", handler.GetEnhancedAtom)
		feeds.GET("/feed.json", handler.GetJSONFeed)
		feeds.GET("/feed-full.json", handler.GetEnhancedJSONFeed)
		feeds.GET("/category/:category/rss.xml", handler.GetCategoryRSS)
		feeds.GET("/tag/:tag/rss.xml", handler.GetTagRSS)
	}

	// Discovery documents
	r.GET("/sitemap.xml", handler.GetSitemap)
	r.GET("/sitemaps/:name", handler.GetSitemapChunk)
	r.GET("/sitemap-news.xml", handler.GetNewsSitemap)
	r.GET("/sitemap-images.xml", handler.GetImageSitemap)
	r.GET("/sitemap-index.xml", handler.GetSitemapIndex)
	r.GET("/robots.txt", handler.GetRobotsTxt)

	// Health endpoint
	r.GET("/health", handler.GetHealth)

	// Root endpoint with basic information
	r.GET("/", func(c *gin.Context) {
		c.JSON(200, gin.H{
			"service":     "Feedsmith",
			"version":     handler.version,
			"description": "Feed, sitemap and robots generation for the blog content API",
			"endpoints": map[string]string{
				"rss":            "/feeds/rss.xml",
				"rss_full":       "/feeds/rss-full.xml",
				"atom":           "/feeds/atom.xml",
				"atom_full":      "/feeds/atom-full.xml",
				"json":           "/feeds/feed.json",
				"json_full":      "/feeds/feed-full.json",
				"category_rss":   "/feeds/category/<category>/rss.xml",
				"tag_rss":        "/feeds/tag/<tag>/rss.xml",
				"sitemap":        "/sitemap.xml",
				"sitemap_news":   "/sitemap-news.xml",
				"sitemap_images": "/sitemap-images.xml",
				"sitemap_index":  "/sitemap-index.xml",
				"robots":         "/robots.txt",
				"health":         "/health",
			},
		})
	})

	// Favicon handler (return 204 to avoid 404s)
	r.GET("/favicon.ico", func(c *gin.Context) {
		c.Status(204)
	})
}
