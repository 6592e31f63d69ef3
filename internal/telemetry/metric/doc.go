// Package metric provides Prometheus metrics for Quill.
//
//   - prometheus.go: the registry, its metrics, and textfile export
//   - collector.go: a build-info collector
//
// A Quill command is short-lived, so metrics are not served over HTTP.
// When metrics.textfile is configured the registry is written in the
// Prometheus text format for the node exporter's textfile collector.
package metric
