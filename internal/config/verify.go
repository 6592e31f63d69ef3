package config

import (
	"errors"
	"fmt"
	"strings"
)

var (
	validLogLevels  = []string{"debug", "info", "warn", "warning", "error"}
	validLogFormats = []string{"text", "console", "json"}
)

// Verify validates the configuration.
func Verify(cfg *SiteConfig) error {
	if err := verifySite(&cfg.Site); err != nil {
		return err
	}
	if err := verifyContent(&cfg.Content); err != nil {
		return err
	}
	if err := verifyConsole(&cfg.Console); err != nil {
		return err
	}
	return verifyLog(&cfg.Log)
}

func verifySite(cfg *SiteSection) error {
	if strings.TrimSpace(cfg.Title) == "" {
		return errors.New("site.title is required")
	}
	return nil
}

func verifyContent(cfg *ContentSection) error {
	if cfg.PostsDir == "" {
		return errors.New("content.posts_dir is required")
	}
	if len(cfg.Extensions) == 0 {
		return errors.New("content.extensions must list at least one extension")
	}
	for _, ext := range cfg.Extensions {
		if !strings.HasPrefix(ext, ".") {
			return fmt.Errorf("content.extensions: %q must start with a dot", ext)
		}
	}
	return nil
}

func verifyConsole(cfg *ConsoleSection) error {
	if cfg.HistorySize < 0 {
		return errors.New("console.history_size must not be negative")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	if !contains(validLogLevels, strings.ToLower(cfg.Level)) {
		return fmt.Errorf("log.level: unknown level %q", cfg.Level)
	}
	if !contains(validLogFormats, strings.ToLower(cfg.Format)) {
		return fmt.Errorf("log.format: unknown format %q", cfg.Format)
	}
	return nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}
