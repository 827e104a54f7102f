package metrics

import (
	"fmt"
	"io"
	"sync/atomic"
	"time"
)

type Collector struct {
	requests    uint64
	errors      uint64
	inFlight    int64
	status2xx   uint64
	status4xx   uint64
	status5xx   uint64
	durationMic uint64
}

func NewCollector() *Collector {
	return &Collector{}
}

func (c *Collector) IncRequests() {
	atomic.AddUint64(&c.requests, 1)
}

func (c *Collector) IncErrors() {
	atomic.AddUint64(&c.errors, 1)
}

func (c *Collector) RequestStarted() {
	atomic.AddInt64(&c.inFlight, 1)
}

// RequestFinished records the status class and latency of a completed request.
func (c *Collector) RequestFinished(status int, elapsed time.Duration) {
	atomic.AddInt64(&c.inFlight, -1)
	atomic.AddUint64(&c.durationMic, uint64(elapsed.Microseconds()))
	switch {
	case status >= 500:
		atomic.AddUint64(&c.status5xx, 1)
	case status >= 400:
		atomic.AddUint64(&c.status4xx, 1)
	default:
		atomic.AddUint64(&c.status2xx, 1)
	}
}

type Snapshot struct {
	Requests        uint64
	Errors          uint64
	InFlight        int64
	Status2xx       uint64
	Status4xx       uint64
	Status5xx       uint64
	DurationSeconds float64
}

func (c *Collector) Snapshot() Snapshot {
	return Snapshot{
		Requests:        atomic.LoadUint64(&c.requests),
		Errors:          atomic.LoadUint64(&c.errors),
		InFlight:        atomic.LoadInt64(&c.inFlight),
		Status2xx:       atomic.LoadUint64(&c.status2xx),
		Status4xx:       atomic.LoadUint64(&c.status4xx),
		Status5xx:       atomic.LoadUint64(&c.status5xx),
		DurationSeconds: float64(atomic.LoadUint64(&c.durationMic)) / 1e6,
	}
}

// WriteText renders the snapshot in the Prometheus text exposition format.
func (s Snapshot) WriteText(w io.Writer) {
	_, _ = fmt.Fprintf(w, "# HELP jobboard_requests_total Total number of HTTP requests.\n")
	_, _ = fmt.Fprintf(w, "# TYPE jobboard_requests_total counter\n")
	_, _ = fmt.Fprintf(w, "jobboard_requests_total %d\n", s.Requests)
	_, _ = fmt.Fprintf(w, "# HELP jobboard_errors_total Total number of 5xx HTTP responses.\n")
	_, _ = fmt.Fprintf(w, "# TYPE jobboard_errors_total counter\n")
	_, _ = fmt.Fprintf(w, "jobboard_errors_total %d\n", s.Errors)
	_, _ = fmt.Fprintf(w, "# HELP jobboard_responses_total HTTP responses by status class.\n")
	_, _ = fmt.Fprintf(w, "# TYPE jobboard_responses_total counter\n")
	_, _ = fmt.Fprintf(w, "jobboard_responses_total{class=\"2xx\"} %d\n", s.Status2xx)
	_, _ = fmt.Fprintf(w, "jobboard_responses_total{class=\"4xx\"} %d\n", s.Status4xx)
	_, _ = fmt.Fprintf(w, "jobboard_responses_total{class=\"5xx\"} %d\n", s.Status5xx)
	_, _ = fmt.Fprintf(w, "# HELP jobboard_requests_in_flight HTTP requests being served.\n")
	_, _ = fmt.Fprintf(w, "# TYPE jobboard_requests_in_flight gauge\n")
	_, _ = fmt.Fprintf(w, "jobboard_requests_in_flight %d\n", s.InFlight)
	_, _ = fmt.Fprintf(w, "# HELP jobboard_request_duration_seconds_sum Total time spent serving requests.\n")
	_, _ = fmt.Fprintf(w, "# TYPE jobboard_request_duration_seconds_sum counter\n")
	_, _ = fmt.Fprintf(w, "jobboard_request_duration_seconds_sum %g\n", s.DurationSeconds)
}
