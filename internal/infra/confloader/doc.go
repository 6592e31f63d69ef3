// Package confloader loads site configuration from layered sources.
//
// koanf is the underlying library. Sources, lowest to highest priority:
//
//  1. Defaults (the target struct as passed in)
//  2. The YAML configuration file
//  3. QUILL_* environment variables
//  4. Command-line overrides (LoadMap)
//
// The package also provides Watcher, an fsnotify-based change notifier used
// by long-running commands that rescan the site when files change.
package confloader
