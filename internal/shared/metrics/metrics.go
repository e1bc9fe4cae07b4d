package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
)

var (
	generationStarted   = newCounterVec()
	generationCompleted = newCounterVec()
	generationFailed    = newCounterVec()
	generationFallback  = newCounterVec()
	gatewayFailures     = newCounterVec()

	generationDuration = newHistogram([]float64{250, 500, 1000, 2000, 5000, 10000, 20000, 30000, 60000})
)

// IncGenerationStarted counts a pipeline run for the process type.
func IncGenerationStarted(process string) {
	generationStarted.inc(process)
}

// IncGenerationCompleted counts a pipeline run that produced a mapped result.
func IncGenerationCompleted(process string) {
	generationCompleted.inc(process)
}

// IncGenerationFailed counts a pipeline run that returned an error.
func IncGenerationFailed(process string) {
	generationFailed.inc(process)
}

// IncRecoveryStage counts which parse stage produced the result (direct, repaired, default).
func IncRecoveryStage(process, stage string) {
	generationFallback.inc(process + "|" + stage)
}

// IncGatewayFailure counts gateway failures by kind (transport, provider, empty).
func IncGatewayFailure(kind string) {
	gatewayFailures.inc(kind)
}

// ObserveGenerationDurationMs records a pipeline duration in milliseconds.
func ObserveGenerationDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	generationDuration.Observe(value)
}

// Handler exposes metrics in Prometheus text format.
func Handler() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Header("Content-Type", "text/plain; version=0.0.4")
		c.String(http.StatusOK, Render())
	}
}

// Render renders metrics in Prometheus text format.
func Render() string {
	var buf bytes.Buffer
	writeCounterVec(&buf, "generation_started_total", "Total generations started", []string{"process"}, generationStarted.snapshot())
	writeCounterVec(&buf, "generation_completed_total", "Total generations completed", []string{"process"}, generationCompleted.snapshot())
	writeCounterVec(&buf, "generation_failed_total", "Total generations failed", []string{"process"}, generationFailed.snapshot())
	writeCounterVec(&buf, "generation_recovery_stage_total", "Parse stage that produced each result", []string{"process", "stage"}, generationFallback.snapshot())
	writeCounterVec(&buf, "llm_gateway_failures_total", "LLM gateway failures by kind", []string{"kind"}, gatewayFailures.snapshot())
	writeHistogram(&buf, "generation_duration_ms", "Generation duration in milliseconds", generationDuration.Snapshot())
	return buf.String()
}

type counterVec struct {
	mu     sync.Mutex
	values map[string]uint64
}

func newCounterVec() *counterVec {
	return &counterVec{values: make(map[string]uint64)}
}

func (c *counterVec) inc(key string) {
	c.mu.Lock()
	c.values[key]++
	c.mu.Unlock()
}

func (c *counterVec) snapshot() map[string]uint64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make(map[string]uint64, len(c.values))
	for k, v := range c.values {
		out[k] = v
	}
	return out
}

type histogram struct {
	mu      sync.Mutex
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

type histogramSnapshot struct {
	buckets []float64
	counts  []uint64
	sum     float64
	count   uint64
}

func newHistogram(buckets []float64) *histogram {
	return &histogram{
		buckets: buckets,
		counts:  make([]uint64, len(buckets)),
	}
}

// Observe records value in the first bucket whose bound covers it.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			break
		}
	}
}

func (h *histogram) Snapshot() histogramSnapshot {
	h.mu.Lock()
	defer h.mu.Unlock()
	return histogramSnapshot{
		buckets: append([]float64(nil), h.buckets...),
		counts:  append([]uint64(nil), h.counts...),
		sum:     h.sum,
		count:   h.count,
	}
}

func writeCounterVec(buf *bytes.Buffer, name, help string, labels []string, values map[string]uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, key := range keys {
		fmt.Fprintf(buf, "%s{%s} %d\n", name, formatLabels(labels, key), values[key])
	}
}

func formatLabels(labels []string, key string) string {
	parts := splitKey(key, len(labels))
	var b bytes.Buffer
	for i, label := range labels {
		if i > 0 {
			b.WriteByte(',')
		}
		fmt.Fprintf(&b, "%s=%q", label, parts[i])
	}
	return b.String()
}

func splitKey(key string, n int) []string {
	out := make([]string, 0, n)
	start := 0
	for i := 0; i < len(key) && len(out) < n-1; i++ {
		if key[i] == '|' {
			out = append(out, key[start:i])
			start = i + 1
		}
	}
	out = append(out, key[start:])
	for len(out) < n {
		out = append(out, "")
	}
	return out
}

func writeHistogram(buf *bytes.Buffer, name, help string, snap histogramSnapshot) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s histogram\n", name)
	var cumulative uint64
	for i, bound := range snap.buckets {
		cumulative += snap.counts[i]
		fmt.Fprintf(buf, "%s_bucket{le=\"%s\"} %d\n", name, formatFloat(bound), cumulative)
	}
	fmt.Fprintf(buf, "%s_bucket{le=\"+Inf\"} %d\n", name, snap.count)
	fmt.Fprintf(buf, "%s_sum %s\n", name, formatFloat(snap.sum))
	fmt.Fprintf(buf, "%s_count %d\n", name, snap.count)
}

func formatFloat(value float64) string {
	if value == float64(int64(value)) {
		return strconv.FormatInt(int64(value), 10)
	}
	return strconv.FormatFloat(value, 'f', -1, 64)
}
