// Package robots renders the robots.txt crawl policy for the site.
package robots

import (
	"strings"

	"github.com/madink-frank/reddit-sub006/app/site"
	"github.com/madink-frank/reddit-sub006/app/sitemap"
)

// Generate renders the robots directives: a catch-all block with the
// profile's allow/disallow rules, one Disallow block per listed AI
// crawler unless the profile opts them in, then a Sitemap line per
// published sitemap artifact. Pure and deterministic for a given base
// URL and policy.
func Generate(baseURL string, policy site.RobotsConfig) string {
	base := strings.TrimRight(baseURL, "/")

	var b strings.Builder

	b.WriteString("User-agent: *\n")
	if len(policy.Allow) == 0 && len(policy.Disallow) == 0 {
		b.WriteString("Allow: /\n")
	}
	for _, path := range policy.Allow {
		b.WriteString("Allow: " + path + "\n")
	}
	for _, path := range policy.Disallow {
		b.WriteString("Disallow: " + path + "\n")
	}
	b.WriteString("\n")

	if !policy.AllowAICrawlers {
		for _, agent := range policy.AICrawlers {
			b.WriteString("User-agent: " + agent + "\n")
			b.WriteString("Disallow: /\n")
			b.WriteString("\n")
		}
	}

	b.WriteString("Sitemap: " + base + sitemap.IndexPath + "\n")
	b.WriteString("Sitemap: " + base + sitemap.NewsPath + "\n")
	b.WriteString("Sitemap: " + base + sitemap.ImagesPath + "\n")

	return b.String()
}
