// Package config provides the site configuration for Quill.
//
//   - spec.go: SiteConfig struct definition
//   - default.go: Default configuration values
//   - verify.go: Validation of loaded values
//   - sanitize.go: Masking of secrets before display or logging
//
// Configuration is loaded through internal/infra/confloader from conf.yaml,
// QUILL_* environment variables, and command-line overrides.
package config
