package config

// Default configuration values.
const (
	DefaultTitle    = "My Quill Site"
	DefaultURL      = "http://localhost:8000/"
	DefaultPostsDir = "posts"

	DefaultHistorySize = 1000

	DefaultLogLevel  = "warn"
	DefaultLogFormat = "text"

	// DefaultFileName is the configuration file looked up in the site directory.
	DefaultFileName = "conf.yaml"
)

// DefaultExtensions lists the file extensions treated as posts.
var DefaultExtensions = []string{".md", ".markdown", ".html", ".txt"}

// Default returns the default site configuration.
func Default() *SiteConfig {
	exts := make([]string, len(DefaultExtensions))
	copy(exts, DefaultExtensions)

	return &SiteConfig{
		Site: SiteSection{
			Title: DefaultTitle,
			URL:   DefaultURL,
		},
		Content: ContentSection{
			PostsDir:   DefaultPostsDir,
			Extensions: exts,
		},
		Console: ConsoleSection{
			HistorySize: DefaultHistorySize,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
