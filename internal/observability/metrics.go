// ABOUTME: Prometheus counters and histograms for store, query, and timer activity.
// ABOUTME: Collected in-process and printed on demand; sporttimer runs no metrics server.
package observability

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	dto "github.com/prometheus/client_model/go"
)

const namespace = "sporttimer"

var (
	storeOperations = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "store_operations_total",
		Help:      "Record store calls, labeled by operation and result.",
	}, []string{"op", "result"})

	queryDuration = prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Name:      "query_duration_seconds",
		Help:      "Time spent evaluating in-memory queries over the workout view.",
		Buckets:   prometheus.ExponentialBuckets(0.00005, 4, 8),
	}, []string{"kind"})

	timerTransitions = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "timer_transitions_total",
		Help:      "Timer state transitions, labeled by transition.",
	}, []string{"transition"})
)

func init() {
	prometheus.MustRegister(storeOperations, queryDuration, timerTransitions)
}

// StoreOperations exposes the store counter for tests.
func StoreOperations() *prometheus.CounterVec { return storeOperations }

// TimerTransitions exposes the timer counter for tests.
func TimerTransitions() *prometheus.CounterVec { return timerTransitions }

// QueryDuration exposes the query histogram for tests.
func QueryDuration() *prometheus.HistogramVec { return queryDuration }

// RecordStoreOp counts one store call.
func RecordStoreOp(op string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	storeOperations.WithLabelValues(op, result).Inc()
}

// ObserveQuery records how long a query of the given kind took since start.
func ObserveQuery(kind string, start time.Time) {
	queryDuration.WithLabelValues(kind).Observe(time.Since(start).Seconds())
}

// RecordTransition counts one timer transition.
func RecordTransition(transition string) {
	timerTransitions.WithLabelValues(transition).Inc()
}

// Dump writes every sporttimer metric family to w in a compact text form.
func Dump(w io.Writer) error {
	return DumpFrom(prometheus.DefaultGatherer, w)
}

// DumpFrom writes the sporttimer metric families gathered from g.
func DumpFrom(g prometheus.Gatherer, w io.Writer) error {
	families, err := g.Gather()
	if err != nil {
		return fmt.Errorf("gather metrics: %w", err)
	}

	for _, mf := range families {
		if !strings.HasPrefix(mf.GetName(), namespace+"_") {
			continue
		}
		if _, err := fmt.Fprintf(w, "# %s\n", mf.GetHelp()); err != nil {
			return err
		}
		lines := make([]string, 0, len(mf.GetMetric()))
		for _, m := range mf.GetMetric() {
			lines = append(lines, formatMetric(mf.GetName(), mf.GetType(), m))
		}
		sort.Strings(lines)
		for _, l := range lines {
			if _, err := fmt.Fprintln(w, l); err != nil {
				return err
			}
		}
	}
	return nil
}

func formatMetric(name string, typ dto.MetricType, m *dto.Metric) string {
	labels := make([]string, 0, len(m.GetLabel()))
	for _, lp := range m.GetLabel() {
		labels = append(labels, fmt.Sprintf("%s=%q", lp.GetName(), lp.GetValue()))
	}
	sel := name
	if len(labels) > 0 {
		sel += "{" + strings.Join(labels, ",") + "}"
	}

	switch typ {
	case dto.MetricType_COUNTER:
		return fmt.Sprintf("%s %g", sel, m.GetCounter().GetValue())
	case dto.MetricType_GAUGE:
		return fmt.Sprintf("%s %g", sel, m.GetGauge().GetValue())
	case dto.MetricType_HISTOGRAM:
		h := m.GetHistogram()
		avg := 0.0
		if h.GetSampleCount() > 0 {
			avg = h.GetSampleSum() / float64(h.GetSampleCount())
		}
		return fmt.Sprintf("%s count=%d avg=%s", sel, h.GetSampleCount(), time.Duration(avg*float64(time.Second)))
	default:
		return sel
	}
}
