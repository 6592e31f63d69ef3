package config

// SiteConfig is the root configuration for a Quill site.
type SiteConfig struct {
	Site    SiteSection    `koanf:"site" json:"site" yaml:"site"`
	Content ContentSection `koanf:"content" json:"content" yaml:"content"`
	Console ConsoleSection `koanf:"console" json:"console" yaml:"console"`
	Metrics MetricsSection `koanf:"metrics" json:"metrics" yaml:"metrics"`
	Log     LogSection     `koanf:"log" json:"log" yaml:"log"`
}

// SiteSection describes the site itself.
type SiteSection struct {
	Title  string `koanf:"title" json:"title" yaml:"title"`
	URL    string `koanf:"url" json:"url" yaml:"url"`
	Author string `koanf:"author" json:"author" yaml:"author"`

	// DeployToken authenticates deployments. Never printed unmasked.
	DeployToken string `koanf:"deploy_token" json:"deploy_token" yaml:"deploy_token"`
}

// ContentSection configures where posts are read from.
type ContentSection struct {
	// PostsDir is resolved relative to the site directory.
	PostsDir   string   `koanf:"posts_dir" json:"posts_dir" yaml:"posts_dir"`
	Extensions []string `koanf:"extensions" json:"extensions" yaml:"extensions"`
	Drafts     bool     `koanf:"drafts" json:"drafts" yaml:"drafts"`
}

// ConsoleSection configures the interactive console.
type ConsoleSection struct {
	// HistoryFile is where the plain shell persists input lines.
	// Empty selects ~/.quill/console_history.
	HistoryFile string `koanf:"history_file" json:"history_file" yaml:"history_file"`
	HistorySize int    `koanf:"history_size" json:"history_size" yaml:"history_size"`
}

// MetricsSection configures metrics export.
type MetricsSection struct {
	// Textfile, when set, receives the metrics registry in Prometheus text
	// format when the command exits.
	Textfile string `koanf:"textfile" json:"textfile" yaml:"textfile"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level" json:"level" yaml:"level"`
	Format string `koanf:"format" json:"format" yaml:"format"`
}
