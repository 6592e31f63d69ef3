// Package command provides the quill command-line application.
//
// This package defines all CLI commands using urfave/cli/v2:
//
//   - root.go: application, global flags, config/site/logger wiring
//   - plugin.go: command plugins and the console host adapter
//   - console.go: interactive debugging console
//   - config.go: configuration subcommand group
//   - posts.go: post listing
//   - auto.go: rescan on change
//   - version.go: build information
//
// Every top-level command is registered with the site's plugin manager
// under the Command category, so the console can reach it as
// commands.<name>.
package command
