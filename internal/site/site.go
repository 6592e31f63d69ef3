package site

import (
	"errors"
	"fmt"
	"path/filepath"
	"sync"
	"time"

	"github.com/yndnr/quill/internal/config"
	"github.com/yndnr/quill/internal/infra/buildinfo"
	"github.com/yndnr/quill/internal/plugin"
	"github.com/yndnr/quill/internal/telemetry/logger"
	"github.com/yndnr/quill/internal/telemetry/metric"
)

// ErrNoScanner is returned by ScanPosts when no scan_posts task is registered.
var ErrNoScanner = errors.New("site: no scan_posts task registered")

// Site is a loaded Quill site.
type Site struct {
	dir     string
	cfg     *config.SiteConfig
	plugins *plugin.Manager
	metrics *metric.Registry
	logger  logger.Logger

	mu       sync.RWMutex
	posts    []*Post
	scanned  bool
	lastScan time.Time
}

// Option configures a Site.
type Option func(*Site)

// WithLogger sets the logger.
func WithLogger(l logger.Logger) Option {
	return func(s *Site) {
		s.logger = l
	}
}

// WithMetrics sets the metrics registry.
func WithMetrics(m *metric.Registry) Option {
	return func(s *Site) {
		s.metrics = m
	}
}

// WithPluginManager replaces the plugin manager.
func WithPluginManager(m *plugin.Manager) Option {
	return func(s *Site) {
		s.plugins = m
	}
}

// New creates a site rooted at dir. The built-in PostScanner is registered
// as the scan_posts task.
func New(dir string, cfg *config.SiteConfig, opts ...Option) (*Site, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	s := &Site{
		dir:     dir,
		cfg:     cfg,
		plugins: plugin.NewManager(),
		logger:  logger.Default(),
	}

	for _, opt := range opts {
		opt(s)
	}

	if err := s.plugins.Register(plugin.CategoryTask, PostScanner{}); err != nil {
		return nil, fmt.Errorf("register scanner: %w", err)
	}

	return s, nil
}

// Dir returns the site directory.
func (s *Site) Dir() string { return s.dir }

// Config returns the site configuration.
func (s *Site) Config() *config.SiteConfig { return s.cfg }

// Plugins returns the plugin manager.
func (s *Site) Plugins() *plugin.Manager { return s.plugins }

// Metrics returns the metrics registry, or nil.
func (s *Site) Metrics() *metric.Registry { return s.metrics }

// Version returns the engine version.
func (s *Site) Version() string { return buildinfo.Short() }

// Title returns the configured site title.
func (s *Site) Title() string { return s.cfg.Site.Title }

// PostsDir returns the absolute-or-site-relative posts directory.
func (s *Site) PostsDir() string {
	if filepath.IsAbs(s.cfg.Content.PostsDir) {
		return s.cfg.Content.PostsDir
	}
	return filepath.Join(s.dir, s.cfg.Content.PostsDir)
}

// ScanPosts runs the scan_posts task and replaces the site's posts.
func (s *Site) ScanPosts() error {
	p, ok := s.plugins.Lookup(plugin.CategoryTask, ScanPostsTask)
	if !ok {
		return ErrNoScanner
	}
	scanner, ok := p.(Scanner)
	if !ok {
		return fmt.Errorf("site: %s task %T is not a Scanner", ScanPostsTask, p)
	}

	start := time.Now()
	posts, err := scanner.Scan(s)
	elapsed := time.Since(start)
	if err != nil {
		s.logger.Error("post scan failed", "dir", s.PostsDir(), "error", err)
		return fmt.Errorf("scan posts: %w", err)
	}

	s.mu.Lock()
	s.posts = posts
	s.scanned = true
	s.lastScan = start
	s.mu.Unlock()

	if s.metrics != nil {
		s.metrics.SitePosts.Set(float64(len(posts)))
		s.metrics.ScanDuration.Observe(elapsed.Seconds())
	}
	s.logger.Debug("posts scanned", "count", len(posts), "elapsed", elapsed)

	return nil
}

// Posts returns the posts found by the last scan.
func (s *Site) Posts() []*Post {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*Post, len(s.posts))
	copy(out, s.posts)
	return out
}

// Post returns the post with the given slug.
func (s *Site) Post(slug string) (*Post, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, p := range s.posts {
		if p.Slug == slug {
			return p, true
		}
	}
	return nil, false
}

// Scanned reports whether ScanPosts has completed at least once.
func (s *Site) Scanned() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.scanned
}

// LastScan returns the start time of the last successful scan.
func (s *Site) LastScan() time.Time {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.lastScan
}
