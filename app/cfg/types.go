package cfg

type Cfg struct {
	// Content API configuration
	ContentAPIURL string
	PageSize      int
	FetchTimeout  int

	// Application configuration
	Port             string
	BaseUrl          string
	SiteFile         string
	DefaultFeedLimit int
	MaxFeedLimit     int

	// Application metadata
	UserAgent string
	Timezone  string
	Debug     bool
	Version   string
}
