package site

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/text/language"
	"gopkg.in/yaml.v3"
)

// defaultAICrawlers lists the user agents of known AI crawlers that get an
// explicit directive block in the robots file unless the profile overrides
// the list.
var defaultAICrawlers = []string{
	"GPTBot",
	"ChatGPT-User",
	"Google-Extended",
	"CCBot",
	"anthropic-ai",
	"ClaudeBot",
	"Claude-Web",
	"PerplexityBot",
	"Bytespider",
	"cohere-ai",
}

// Loader handles loading and validation of the site profile file.
type Loader struct {
	path string
}

// NewLoader creates a new site profile loader.
func NewLoader(path string) *Loader {
	return &Loader{path: path}
}

// Load reads, defaults and validates the site profile.
func (l *Loader) Load() (*Profile, error) {
	data, err := os.ReadFile(l.path)
	if err != nil {
		return nil, fmt.Errorf("failed to read site profile: %w", err)
	}

	var profile Profile
	if err := yaml.Unmarshal(data, &profile); err != nil {
		return nil, fmt.Errorf("failed to parse site profile: %w", err)
	}

	l.setDefaults(&profile)

	if err := l.validate(&profile); err != nil {
		return nil, fmt.Errorf("invalid site profile %s: %w", l.path, err)
	}

	return &profile, nil
}

func (l *Loader) setDefaults(profile *Profile) {
	if profile.Channel.Language == "" {
		profile.Channel.Language = "en"
	}
	if profile.News.PublicationName == "" {
		profile.News.PublicationName = profile.Channel.Title
	}
	if profile.News.PublicationLanguage == "" {
		// News sitemaps want the bare primary subtag ("en", not "en-US")
		profile.News.PublicationLanguage = primarySubtag(profile.Channel.Language)
	}
	if profile.Robots.AICrawlers == nil {
		profile.Robots.AICrawlers = defaultAICrawlers
	}
}

func (l *Loader) validate(profile *Profile) error {
	if profile.Channel.Title == "" {
		return fmt.Errorf("channel title is required")
	}
	if profile.Channel.Description == "" {
		return fmt.Errorf("channel description is required")
	}

	if _, err := language.Parse(profile.Channel.Language); err != nil {
		return fmt.Errorf("invalid channel language %q: %w", profile.Channel.Language, err)
	}
	if _, err := language.Parse(profile.News.PublicationLanguage); err != nil {
		return fmt.Errorf("invalid news publication language %q: %w", profile.News.PublicationLanguage, err)
	}

	for _, path := range profile.Robots.Allow {
		if !strings.HasPrefix(path, "/") {
			return fmt.Errorf("robots allow path must start with '/': %s", path)
		}
	}
	for _, path := range profile.Robots.Disallow {
		if !strings.HasPrefix(path, "/") {
			return fmt.Errorf("robots disallow path must start with '/': %s", path)
		}
	}

	return nil
}

func primarySubtag(tag string) string {
	if i := strings.IndexAny(tag, "-_"); i > 0 {
		return strings.ToLower(tag[:i])
	}
	return strings.ToLower(tag)
}
