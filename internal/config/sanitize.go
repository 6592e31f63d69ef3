package config

import "strings"

// Sanitize returns a copy of the config with sensitive fields masked.
//
// This is used for displaying or logging configuration without exposing
// secrets.
func Sanitize(cfg *SiteConfig) *SiteConfig {
	sanitized := *cfg

	sanitized.Content.Extensions = append([]string(nil), cfg.Content.Extensions...)

	if sanitized.Site.DeployToken != "" {
		sanitized.Site.DeployToken = maskSecret(sanitized.Site.DeployToken)
	}

	return &sanitized
}

// maskSecret masks a secret value for safe logging.
func maskSecret(s string) string {
	if len(s) <= 4 {
		return "****"
	}
	return s[:2] + strings.Repeat("*", len(s)-4) + s[len(s)-2:]
}
