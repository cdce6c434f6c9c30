package metrics

import (
	"bytes"
	"fmt"
	"net/http"
	"sort"
	"strconv"
	"sync"
	"sync/atomic"

	"github.com/gin-gonic/gin"
)

var (
	sourceRenderedTotal atomic.Uint64
	cacheHitTotal       atomic.Uint64
	cacheMissTotal      atomic.Uint64

	compileTotal    = newLabeledCounter("template", "result")
	compileDuration = newHistogram([]float64{100, 250, 500, 1000, 2000, 5000, 10000, 30000, 60000})
)

// IncSourceRendered counts a rendered .tex source.
func IncSourceRendered() {
	sourceRenderedTotal.Add(1)
}

// IncCacheHit counts a document served from the artifact cache.
func IncCacheHit() {
	cacheHitTotal.Add(1)
}

// IncCacheMiss counts a document that had to be compiled.
func IncCacheMiss() {
	cacheMissTotal.Add(1)
}

// IncCompile counts one compilation. result is "ok" or the failure reason.
func IncCompile(template, result string) {
	compileTotal.Inc(template, result)
}

// ObserveCompileDurationMs records a compile duration in milliseconds.
func ObserveCompileDurationMs(value float64) {
	if value < 0 {
		value = 0
	}
	compileDuration.Observe(value)
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
	writeCounter(&buf, "resume_source_rendered_total", "Total LaTeX sources rendered", sourceRenderedTotal.Load())
	writeLabeledCounter(&buf, "resume_compile_total", "Total compilations by template and result", compileTotal)
	writeHistogram(&buf, "resume_compile_duration_ms", "Compilation duration in milliseconds", compileDuration.Snapshot())
	writeCounter(&buf, "resume_artifact_cache_hits_total", "Documents served from the artifact cache", cacheHitTotal.Load())
	writeCounter(&buf, "resume_artifact_cache_misses_total", "Documents not found in the artifact cache", cacheMissTotal.Load())
	return buf.String()
}

type labeledCounter struct {
	mu     sync.Mutex
	labels []string
	values map[string]uint64
}

func newLabeledCounter(labels ...string) *labeledCounter {
	return &labeledCounter{labels: labels, values: make(map[string]uint64)}
}

func (l *labeledCounter) Inc(values ...string) {
	var b bytes.Buffer
	for i, name := range l.labels {
		if i > 0 {
			b.WriteByte(',')
		}
		v := ""
		if i < len(values) {
			v = values[i]
		}
		fmt.Fprintf(&b, "%s=%s", name, strconv.Quote(v))
	}
	l.mu.Lock()
	l.values[b.String()]++
	l.mu.Unlock()
}

func (l *labeledCounter) snapshot() ([]string, map[string]uint64) {
	l.mu.Lock()
	defer l.mu.Unlock()
	keys := make([]string, 0, len(l.values))
	out := make(map[string]uint64, len(l.values))
	for k, v := range l.values {
		keys = append(keys, k)
		out[k] = v
	}
	sort.Strings(keys)
	return keys, out
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

// Observe adds value to the first bucket that holds it.
func (h *histogram) Observe(value float64) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.count++
	h.sum += value
	for i, bound := range h.buckets {
		if value <= bound {
			h.counts[i]++
			return
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

func writeCounter(buf *bytes.Buffer, name, help string, value uint64) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	fmt.Fprintf(buf, "%s %d\n", name, value)
}

func writeLabeledCounter(buf *bytes.Buffer, name, help string, c *labeledCounter) {
	fmt.Fprintf(buf, "# HELP %s %s\n", name, help)
	fmt.Fprintf(buf, "# TYPE %s counter\n", name)
	keys, values := c.snapshot()
	for _, k := range keys {
		fmt.Fprintf(buf, "%s{%s} %d\n", name, k, values[k])
	}
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
