// Package repl implements the plain interactive shell of `quill console`.
//
//   - repl.go: line loop, built-ins and startup script
//   - eval.go: expression evaluator over the bound namespace
//   - completer.go: tab completion of names and members
//   - history.go: input history persistence
//
// The shell needs nothing beyond the standard library to run. Line
// editing (github.com/chzyer/readline) is enabled only when input is a
// terminal, and any failure to set it up falls back to buffered reads.
package repl
