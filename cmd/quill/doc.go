// Package main provides the entry point for quill.
//
// quill is the command-line tool of the Quill site engine:
//
//   - Interactive debugging console (Go, Lua or plain shell)
//   - Post listing and rescan-on-change
//   - Configuration inspection
//
// Usage:
//
//	quill [global flags] command [flags]
//	quill console --lua
//	quill -o json posts
//	quill config get site.title
package main
