package config

import (
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.Site.Title != DefaultTitle {
		t.Errorf("Site.Title = %q, want %q", cfg.Site.Title, DefaultTitle)
	}
	if cfg.Site.URL != DefaultURL {
		t.Errorf("Site.URL = %q, want %q", cfg.Site.URL, DefaultURL)
	}
	if cfg.Content.PostsDir != DefaultPostsDir {
		t.Errorf("Content.PostsDir = %q, want %q", cfg.Content.PostsDir, DefaultPostsDir)
	}
	if len(cfg.Content.Extensions) != len(DefaultExtensions) {
		t.Errorf("Content.Extensions = %v, want %v", cfg.Content.Extensions, DefaultExtensions)
	}
	if cfg.Console.HistorySize != DefaultHistorySize {
		t.Errorf("Console.HistorySize = %d, want %d", cfg.Console.HistorySize, DefaultHistorySize)
	}
	if cfg.Log.Level != DefaultLogLevel {
		t.Errorf("Log.Level = %q, want %q", cfg.Log.Level, DefaultLogLevel)
	}
	if cfg.Log.Format != DefaultLogFormat {
		t.Errorf("Log.Format = %q, want %q", cfg.Log.Format, DefaultLogFormat)
	}
}

func TestDefault_ExtensionsNotShared(t *testing.T) {
	cfg := Default()
	cfg.Content.Extensions[0] = ".rst"

	if DefaultExtensions[0] == ".rst" {
		t.Error("Default() should copy DefaultExtensions")
	}
}

func TestSanitize(t *testing.T) {
	cfg := Default()
	cfg.Site.DeployToken = "deploy-token-1234567890"

	sanitized := Sanitize(cfg)

	if cfg.Site.DeployToken != "deploy-token-1234567890" {
		t.Error("Original config should not be modified")
	}
	if sanitized.Site.DeployToken == cfg.Site.DeployToken {
		t.Error("Sanitized config should mask the deploy token")
	}
	if len(sanitized.Site.DeployToken) != len(cfg.Site.DeployToken) {
		t.Errorf("Masked token length = %d, want %d", len(sanitized.Site.DeployToken), len(cfg.Site.DeployToken))
	}
}

func TestSanitize_EmptyToken(t *testing.T) {
	sanitized := Sanitize(Default())

	if sanitized.Site.DeployToken != "" {
		t.Error("Empty token should remain empty")
	}
}

func TestSanitize_ShortToken(t *testing.T) {
	cfg := Default()
	cfg.Site.DeployToken = "abc"

	sanitized := Sanitize(cfg)

	if sanitized.Site.DeployToken != "****" {
		t.Errorf("Short token should be fully masked, got %q", sanitized.Site.DeployToken)
	}
}

func TestMaskSecret(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"a", "****"},
		{"abcd", "****"},
		{"abcde", "ab*de"},
		{"abcdef", "ab**ef"},
		{"1234567890", "12******90"},
	}

	for _, tt := range tests {
		result := maskSecret(tt.input)
		if result != tt.expected {
			t.Errorf("maskSecret(%q) = %q, want %q", tt.input, result, tt.expected)
		}
	}
}

func TestVerify(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*SiteConfig)
		wantErr bool
	}{
		{"defaults", func(*SiteConfig) {}, false},
		{"empty title", func(c *SiteConfig) { c.Site.Title = "  " }, true},
		{"empty posts dir", func(c *SiteConfig) { c.Content.PostsDir = "" }, true},
		{"no extensions", func(c *SiteConfig) { c.Content.Extensions = nil }, true},
		{"extension without dot", func(c *SiteConfig) { c.Content.Extensions = []string{"md"} }, true},
		{"negative history", func(c *SiteConfig) { c.Console.HistorySize = -1 }, true},
		{"zero history", func(c *SiteConfig) { c.Console.HistorySize = 0 }, false},
		{"unknown level", func(c *SiteConfig) { c.Log.Level = "chatty" }, true},
		{"upper-case level", func(c *SiteConfig) { c.Log.Level = "DEBUG" }, false},
		{"unknown format", func(c *SiteConfig) { c.Log.Format = "xml" }, true},
		{"json format", func(c *SiteConfig) { c.Log.Format = "json" }, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)

			err := Verify(cfg)
			if (err != nil) != tt.wantErr {
				t.Errorf("Verify() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
