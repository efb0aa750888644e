package main

import (
	"context"
	"fmt"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/madink-frank/reddit-sub006/app/api"
	"github.com/madink-frank/reddit-sub006/app/cfg"
	"github.com/madink-frank/reddit-sub006/app/content"
	"github.com/madink-frank/reddit-sub006/app/site"
	"github.com/madink-frank/reddit-sub006/app/syndication"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lshortfile)

	// Load configuration from environment variables and command-line flags
	appCfg, err := cfg.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	if appCfg == nil {
		// Help was shown, exit gracefully
		return
	}

	if appCfg.Debug {
		slog.SetLogLoggerLevel(slog.LevelDebug)
	}

	log.Printf("Starting Feedsmith %s...", appCfg.Version)

	// Load the site profile
	log.Printf("Loading site profile from %s...", appCfg.SiteFile)
	profile, err := site.NewLoader(appCfg.SiteFile).Load()
	if err != nil {
		log.Fatalf("Failed to load site profile: %v", err)
	}
	log.Printf("Loaded site profile for %q", profile.Channel.Title)

	// Initialize core components
	httpClient := &http.Client{Timeout: time.Duration(appCfg.FetchTimeout) * time.Second}
	source := content.NewClient(httpClient, appCfg.ContentAPIURL, appCfg.UserAgent, appCfg.PageSize)

	service := syndication.NewService(source, *profile, syndication.Options{
		BaseURL:      appCfg.BaseUrl,
		DefaultLimit: appCfg.DefaultFeedLimit,
		MaxLimit:     appCfg.MaxFeedLimit,
		FetchTimeout: time.Duration(appCfg.FetchTimeout) * time.Second,
		Generator:    "Feedsmith/" + appCfg.Version,
	})

	// Initialize HTTP server
	log.Println("Initializing HTTP server...")
	handler := api.NewHandler(service, appCfg.Version)
	server := api.NewServer(handler)

	// Create HTTP server with timeouts
	httpServer := &http.Server{
		Addr:         ":" + appCfg.Port,
		Handler:      server,
		ReadTimeout:  30 * time.Second,
		WriteTimeout: 30 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	// Start HTTP server in a goroutine
	serverErrChan := make(chan error, 1)
	go func() {
		log.Printf("Starting HTTP server on port %s", appCfg.Port)
		log.Printf("Endpoints available:")
		log.Printf("  RSS feed:       http://localhost:%s/feeds/rss.xml", appCfg.Port)
		log.Printf("  Atom feed:      http://localhost:%s/feeds/atom.xml", appCfg.Port)
		log.Printf("  JSON feed:      http://localhost:%s/feeds/feed.json", appCfg.Port)
		log.Printf("  Sitemap:        http://localhost:%s/sitemap.xml", appCfg.Port)
		log.Printf("  News sitemap:   http://localhost:%s/sitemap-news.xml", appCfg.Port)
		log.Printf("  Image sitemap:  http://localhost:%s/sitemap-images.xml", appCfg.Port)
		log.Printf("  Sitemap index:  http://localhost:%s/sitemap-index.xml", appCfg.Port)
		log.Printf("  Robots:         http://localhost:%s/robots.txt", appCfg.Port)
		log.Printf("  Health check:   http://localhost:%s/health", appCfg.Port)

		if err := httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			serverErrChan <- fmt.Errorf("HTTP server error: %w", err)
		}
	}()

	// Wait for interrupt signal or server error
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	log.Println("Feedsmith started successfully!")
	log.Println("Press Ctrl+C to shutdown gracefully...")

	select {
	case sig := <-sigChan:
		log.Printf("Received signal: %v", sig)
	case err := <-serverErrChan:
		log.Printf("Server error: %v", err)
	}

	// Graceful shutdown
	log.Println("Shutting down server gracefully...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("HTTP server shutdown error: %v", err)
	} else {
		log.Println("HTTP server stopped")
	}

	log.Println("Feedsmith shutdown complete")
}
