package cfg

import (
	"cmp"
	"fmt"
	"strings"
	"time"

	"github.com/jessevdk/go-flags"
)

// Version is set at build time via -ldflags
var Version = "dev"

func GetVersion() string {
	return cmp.Or(Version, "unknown")
}

type rawCfg struct {
	// Content API configuration
	ContentAPIURL string `long:"content-api-url" env:"CONTENT_API_URL" description:"Base URL of the content API serving posts, categories and tags (required)" required:"true"`
	PageSize      int    `long:"page-size" env:"PAGE_SIZE" default:"100" description:"Page size used when fetching posts from the content API"`
	FetchTimeout  int    `long:"fetch-timeout" env:"FETCH_TIMEOUT" default:"15" description:"Timeout in seconds for content API fetches"`

	// Application configuration
	Port             string `long:"port" env:"PORT" default:"8080" description:"HTTP server port"`
	BaseUrl          string `long:"base-url" env:"BASE_URL" description:"Public base URL of the site (e.g., https://blog.example.com) (required)" required:"true"`
	SiteFile         string `long:"site-file" env:"SITE_FILE" default:"./site.yml" description:"Path to the site profile file (channel metadata, robots policy)"`
	DefaultFeedLimit int    `long:"default-feed-limit" env:"DEFAULT_FEED_LIMIT" default:"20" description:"Number of items in a feed when no limit is given"`
	MaxFeedLimit     int    `long:"max-feed-limit" env:"MAX_FEED_LIMIT" default:"100" description:"Upper bound for per-request feed limits"`

	// Application metadata
	UserAgent string `long:"user-agent" env:"USER_AGENT" default:"Feedsmith/1.0" description:"User agent string for content API requests"`
	Timezone  string `long:"timezone" env:"TZ" default:"UTC" description:"Timezone for timestamps (e.g., UTC, America/New_York)"`
	Debug     bool   `long:"debug" env:"DEBUG" description:"Enable debug logging"`
}

func Load() (*Cfg, error) {
	var raw rawCfg

	parser := flags.NewParser(&raw, flags.Default)

	if _, err := parser.Parse(); err != nil {
		if flagsErr, ok := err.(*flags.Error); ok {
			if flagsErr.Type == flags.ErrHelp {
				return nil, nil
			}
		}
		return nil, fmt.Errorf("failed to parse configuration: %w", err)
	}

	cfg := &Cfg{
		ContentAPIURL:    strings.TrimRight(raw.ContentAPIURL, "/"),
		PageSize:         raw.PageSize,
		FetchTimeout:     raw.FetchTimeout,
		Port:             raw.Port,
		BaseUrl:          strings.TrimRight(raw.BaseUrl, "/"),
		SiteFile:         raw.SiteFile,
		DefaultFeedLimit: raw.DefaultFeedLimit,
		MaxFeedLimit:     raw.MaxFeedLimit,
		UserAgent:        raw.UserAgent,
		Timezone:         raw.Timezone,
		Debug:            raw.Debug,
		Version:          GetVersion(),
	}

	if err := applyTimezone(cfg.Timezone); err != nil {
		fmt.Printf("Warning: Invalid timezone '%s', using system default: %v\n", cfg.Timezone, err)
	}

	return cfg, nil
}

func applyTimezone(timezone string) error {
	if timezone != "" {
		if loc, err := time.LoadLocation(timezone); err != nil {
			return err
		} else {
			time.Local = loc
		}
	}
	return nil
}
