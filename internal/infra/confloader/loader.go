package confloader

import (
	"fmt"
	"sort"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// DefaultEnvPrefix is the default environment variable prefix.
const DefaultEnvPrefix = "QUILL_"

// Source names the layer a configuration key was last set by.
type Source string

// Configuration sources, lowest priority first.
const (
	SourceDefault  Source = "default"
	SourceFile     Source = "file"
	SourceEnv      Source = "env"
	SourceOverride Source = "flag"
)

// Loader loads configuration from multiple sources and remembers which
// source set each key.
type Loader struct {
	k         *koanf.Koanf
	envPrefix string
	filePath  string
	envIgnore map[string]bool
	origins   map[string]Source
}

// Option is a function that configures the Loader.
type Option func(*Loader)

// WithEnvPrefix sets the environment variable prefix.
func WithEnvPrefix(prefix string) Option {
	return func(l *Loader) {
		l.envPrefix = prefix
	}
}

// WithEnvIgnore skips environment variables that share the prefix but
// are not configuration keys, such as flag variables.
func WithEnvIgnore(names ...string) Option {
	return func(l *Loader) {
		for _, n := range names {
			l.envIgnore[n] = true
		}
	}
}

// WithConfigFile sets the configuration file path.
func WithConfigFile(path string) Option {
	return func(l *Loader) {
		l.filePath = path
	}
}

// NewLoader creates a new configuration loader.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{
		k:         koanf.New("."),
		envPrefix: DefaultEnvPrefix,
		envIgnore: make(map[string]bool),
		origins:   make(map[string]Source),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads the file and environment layers and unmarshals the result
// into target. Values already present in target act as defaults.
// Command-line overrides are applied afterwards with LoadMap followed by
// Unmarshal.
func (l *Loader) Load(target any) error {
	if err := l.LoadFile(l.filePath); err != nil {
		return fmt.Errorf("load config file: %w", err)
	}
	if err := l.LoadEnv(); err != nil {
		return err
	}
	if err := l.Unmarshal(target); err != nil {
		return fmt.Errorf("unmarshal config: %w", err)
	}
	return nil
}

// LoadFile merges a YAML file. An empty path is a no-op.
func (l *Loader) LoadFile(path string) error {
	if path == "" {
		return nil
	}
	if err := l.merge(SourceFile, file.Provider(path), yaml.Parser()); err != nil {
		return fmt.Errorf("load file %s: %w", path, err)
	}
	return nil
}

// LoadEnv merges PREFIX_SECTION_KEY environment variables. Only the first
// underscore after the prefix separates section from key, so multi-word
// keys keep their underscores: QUILL_CONTENT_POSTS_DIR -> content.posts_dir.
// Names without a section part (QUILL_STARTUP) are skipped.
func (l *Loader) LoadEnv() error {
	keyFor := func(s string) string {
		if l.envIgnore[s] {
			return ""
		}
		s = strings.ToLower(strings.TrimPrefix(s, l.envPrefix))
		if !strings.Contains(s, "_") {
			return ""
		}
		return strings.Replace(s, "_", ".", 1)
	}
	if err := l.merge(SourceEnv, env.Provider(l.envPrefix, ".", keyFor), nil); err != nil {
		return fmt.Errorf("load env: %w", err)
	}
	return nil
}

// LoadMap merges dotted-key overrides, typically from command-line flags.
func (l *Loader) LoadMap(data map[string]any) error {
	if err := l.merge(SourceOverride, mapProvider(data), nil); err != nil {
		return fmt.Errorf("load map: %w", err)
	}
	return nil
}

// merge loads one layer on its own so its keys can be attributed, then
// folds it into the accumulated configuration.
func (l *Loader) merge(src Source, p koanf.Provider, pa koanf.Parser) error {
	layer := koanf.New(".")
	if err := layer.Load(p, pa); err != nil {
		return err
	}
	for _, key := range layer.Keys() {
		l.origins[key] = src
	}
	return l.k.Merge(layer)
}

// Unmarshal decodes the merged configuration into target using koanf
// struct tags.
func (l *Loader) Unmarshal(target any) error {
	return l.k.Unmarshal("", target)
}

// FilePath returns the configured file path, if any.
func (l *Loader) FilePath() string {
	return l.filePath
}

// Get returns the merged value for key, or nil.
func (l *Loader) Get(key string) any {
	return l.k.Get(key)
}

// GetString returns the merged value for key as a string.
func (l *Loader) GetString(key string) string {
	return l.k.String(key)
}

// Exists reports whether key is present in any loaded source.
func (l *Loader) Exists(key string) bool {
	return l.k.Exists(key)
}

// Origin reports which source last set key. Keys no source mentioned
// come from the defaults.
func (l *Loader) Origin(key string) Source {
	if src, ok := l.origins[key]; ok {
		return src
	}
	return SourceDefault
}

// Origins returns every key set by a non-default source, sorted by key.
func (l *Loader) Origins() []KeyOrigin {
	out := make([]KeyOrigin, 0, len(l.origins))
	for key, src := range l.origins {
		out = append(out, KeyOrigin{Key: key, Source: src})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// KeyOrigin pairs a configuration key with the source that set it.
type KeyOrigin struct {
	Key    string `json:"key" yaml:"key"`
	Source Source `json:"source" yaml:"source"`
}
