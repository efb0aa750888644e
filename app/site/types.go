package site

// Profile represents the per-deployment site profile: everything the
// generated artifacts need to know about the site that is not derived
// from post data.
type Profile struct {
	Channel ChannelInfo  `yaml:"channel"`
	News    NewsInfo     `yaml:"news"`
	Robots  RobotsConfig `yaml:"robots"`
}

// ChannelInfo contains the feed channel metadata shared by the RSS, Atom
// and JSON Feed encoders.
type ChannelInfo struct {
	Title          string `yaml:"title"`
	Description    string `yaml:"description"`
	Language       string `yaml:"language"`
	Copyright      string `yaml:"copyright"`
	ManagingEditor string `yaml:"managing_editor"`
	Generator      string `yaml:"generator"`
}

// NewsInfo contains the publication fields required by the Google News
// sitemap extension.
type NewsInfo struct {
	PublicationName     string `yaml:"publication_name"`
	PublicationLanguage string `yaml:"publication_language"`
}

// RobotsConfig contains the crawl policy emitted into the robots file.
type RobotsConfig struct {
	Allow           []string `yaml:"allow"`
	Disallow        []string `yaml:"disallow"`
	AllowAICrawlers bool     `yaml:"allow_ai_crawlers"`
	AICrawlers      []string `yaml:"ai_crawlers"`
}
