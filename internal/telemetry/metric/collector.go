package metric

import (
	"github.com/prometheus/client_golang/prometheus"

	"github.com/yndnr/quill/internal/infra/buildinfo"
)

// Collector reports build information as a constant gauge, in the
// conventional *_build_info form.
type Collector struct {
	buildInfo *prometheus.Desc
}

// NewCollector creates a new build-info collector.
func NewCollector() *Collector {
	return &Collector{
		buildInfo: prometheus.NewDesc(
			prometheus.BuildFQName(namespace, "", "build_info"),
			"Build information of the running quill binary.",
			[]string{"version", "commit", "go_version"},
			nil,
		),
	}
}

// Describe implements prometheus.Collector.
func (c *Collector) Describe(ch chan<- *prometheus.Desc) {
	ch <- c.buildInfo
}

// Collect implements prometheus.Collector.
func (c *Collector) Collect(ch chan<- prometheus.Metric) {
	info := buildinfo.Get()
	ch <- prometheus.MustNewConstMetric(
		c.buildInfo,
		prometheus.GaugeValue,
		1,
		info.Version, info.Commit, info.GoVersion,
	)
}
