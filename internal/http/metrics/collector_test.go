package metrics

import (
	"bytes"
	"strings"
	"testing"
	"time"
)

func TestCollectorSnapshot(t *testing.T) {
	c := NewCollector()
	c.IncRequests()
	c.IncRequests()
	c.RequestStarted()
	c.RequestFinished(200, 2*time.Millisecond)
	c.RequestStarted()
	c.RequestFinished(404, time.Millisecond)
	c.RequestStarted()
	c.IncErrors()

	s := c.Snapshot()
	if s.Requests != 2 || s.Errors != 1 || s.InFlight != 1 {
		t.Fatalf("unexpected snapshot %+v", s)
	}
	if s.Status2xx != 1 || s.Status4xx != 1 || s.Status5xx != 0 {
		t.Fatalf("unexpected status classes %+v", s)
	}
	if s.DurationSeconds != 0.003 {
		t.Fatalf("expected 0.003s, got %v", s.DurationSeconds)
	}
}

func TestWriteText(t *testing.T) {
	c := NewCollector()
	c.IncRequests()
	var buf bytes.Buffer
	c.Snapshot().WriteText(&buf)

	out := buf.String()
	for _, line := range []string{
		"jobboard_requests_total 1",
		"jobboard_errors_total 0",
		`jobboard_responses_total{class="5xx"} 0`,
		"# TYPE jobboard_requests_in_flight gauge",
	} {
		if !strings.Contains(out, line) {
			t.Fatalf("expected %q in output:\n%s", line, out)
		}
	}
}
