package osenc

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	dto "github.com/prometheus/client_model/go"
)

// opMetric tracks counts and latencies of decode operations.
//
// It registers two metric sets on the default registry:
//   - a CounterVec with the given name and labels "result" and "op". Start
//     increments it with "result"="all", Failed with "result"="failed".
//   - a SummaryVec named name + "_latency" with label "op", observed by End
//     for operations that did not fail.
type opMetric struct {
	counters  *prometheus.CounterVec
	latencies *prometheus.SummaryVec
}

func newOpMetric(name, help string) *opMetric {
	return &opMetric{
		counters: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: name,
			Help: help,
		}, []string{"result", "op"}),
		latencies: promauto.NewSummaryVec(prometheus.SummaryOpts{
			Name:       name + "_latency",
			Help:       help + " (seconds)",
			Objectives: map[float64]float64{0.5: 0.05, 0.9: 0.01, 0.99: 0.001},
		}, []string{"op"}),
	}
}

// decodeMetrics covers every chart and outline decode done by this package.
var decodeMetrics = newOpMetric("osenc_decode_ops", "OSENC decode operations")

// start begins measuring one operation.
func (m *opMetric) start(op string) *opMeasurer {
	m.counters.WithLabelValues("all", op).Inc()
	return &opMeasurer{m: m, op: op, start: time.Now()}
}

// count returns the counter value for result and op.
func (m *opMetric) count(result, op string) uint64 {
	var value dto.Metric
	if m.counters.WithLabelValues(result, op).Write(&value) != nil {
		return 0
	}
	return uint64(value.GetCounter().GetValue())
}

// samples returns how many latencies were observed for op.
func (m *opMetric) samples(op string) uint64 {
	sum, ok := m.latencies.WithLabelValues(op).(prometheus.Summary)
	if !ok {
		return 0
	}
	var value dto.Metric
	if sum.Write(&value) != nil {
		return 0
	}
	return value.GetSummary().GetSampleCount()
}

type opMeasurer struct {
	m     *opMetric
	op    string
	start time.Time
}

// done ends the operation, recording a failure when err is non-nil.
func (o *opMeasurer) done(err error) {
	if err != nil {
		o.m.counters.WithLabelValues("failed", o.op).Inc()
		return
	}
	o.m.latencies.WithLabelValues(o.op).Observe(time.Since(o.start).Seconds())
}
