// Package output provides output formatting for the quill CLI.
//
//   - formatter.go: Formatter interface, factory and format parsing
//   - table.go: table rendering with wide mode support
//   - json.go: JSON output
//   - yaml.go: YAML output
//
// The plain console shell uses the same formatters to print results, so
// `:format yaml` in the console and `-o yaml` on the command line agree.
package output
