// pkg/integrity/metrics.go
package integrity

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Metrics 引擎指标采集器
type Metrics struct {
	blocks   prometheus.Counter
	bytes    prometheus.Counter
	duration prometheus.Histogram
}

// NewMetrics 创建指标采集器并注册到 reg
func NewMetrics(reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		blocks: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sm3fold",
			Name:      "blocks_total",
			Help:      "Total number of 4KiB blocks digested.",
		}),
		bytes: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "sm3fold",
			Name:      "bytes_total",
			Help:      "Total number of input bytes digested.",
		}),
		duration: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "sm3fold",
			Name:      "digest_duration_seconds",
			Help:      "Wall time of digest calls (single, batch or parallel).",
			Buckets:   prometheus.ExponentialBuckets(1e-6, 4, 12),
		}),
	}

	for _, c := range []prometheus.Collector{m.blocks, m.bytes, m.duration} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}
	return m, nil
}

// observe 记录一次摘要调用
func (m *Metrics) observe(blocks int, elapsed time.Duration) {
	m.blocks.Add(float64(blocks))
	m.bytes.Add(float64(blocks) * BlockSize)
	m.duration.Observe(elapsed.Seconds())
}
