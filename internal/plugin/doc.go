// Package plugin provides the plugin manager for Quill.
//
// Plugins are classified into categories:
//
//   - Command: user-facing commands (console, posts, version, ...)
//   - Task: build steps the site runs internally (scan_posts, ...)
//
// Registration order is preserved; lookups by name resolve to the most
// recent registration.
package plugin
