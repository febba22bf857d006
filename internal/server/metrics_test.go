package server

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/abrunet/asynclab/internal/logging"
)

func TestNewMetrics(t *testing.T) {
	m := NewMetrics()

	if m == nil {
		t.Fatal("NewMetrics returned nil")
	}
	if m.handler == nil {
		t.Error("Metrics.handler should be initialized")
	}
}

func TestMetricsWritePrometheus(t *testing.T) {
	m := NewMetrics()

	m.IncrementActiveRequests()
	defer m.DecrementActiveRequests()
	m.ObserveRequest("/healthz", "GET", 2*time.Millisecond)
	m.ObserveJob("notify", 5*time.Millisecond, nil)
	m.ObserveJob("notify", 5*time.Millisecond, errors.New("boom"))

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	m.WritePrometheus(rec, req)
	body := rec.Body.String()

	t.Run("contains active requests metric", func(t *testing.T) {
		if !strings.Contains(body, "asynclab_active_requests 1") {
			t.Error("metrics output should contain asynclab_active_requests at 1")
		}
	})

	t.Run("contains total requests metric", func(t *testing.T) {
		if !strings.Contains(body, "asynclab_requests_total") {
			t.Error("metrics output should contain asynclab_requests_total")
		}
	})

	t.Run("contains job outcomes", func(t *testing.T) {
		if !strings.Contains(body, `asynclab_background_jobs_total{name="notify",outcome="success"} 1`) {
			t.Error("metrics output should count the successful job")
		}
		if !strings.Contains(body, `asynclab_background_jobs_total{name="notify",outcome="failure"} 1`) {
			t.Error("metrics output should count the failed job")
		}
		if !strings.Contains(body, `asynclab_background_job_duration_seconds_count{name="notify"} 2`) {
			t.Error("metrics output should record job durations")
		}
	})

	t.Run("contains Go runtime metrics", func(t *testing.T) {
		if !strings.Contains(body, "go_") {
			t.Error("metrics output should contain Go runtime metrics")
		}
	})
}

func TestMetricsAreIndependentPerInstance(t *testing.T) {
	// Two instances must not share a registry or panic on registration.
	a := NewMetrics()
	b := NewMetrics()

	a.IncrementActiveRequests()

	req := httptest.NewRequest("GET", "/metrics", http.NoBody)
	rec := httptest.NewRecorder()
	b.WritePrometheus(rec, req)

	if strings.Contains(rec.Body.String(), "asynclab_active_requests 1") {
		t.Error("second instance observed the first instance's gauge")
	}
}

func TestServerMetricsMiddleware(t *testing.T) {
	s := &Server{metrics: NewMetrics(), logger: logging.NopLogger{}}

	nextCalled := false
	next := func(w http.ResponseWriter, r *http.Request) {
		nextCalled = true
		w.WriteHeader(http.StatusOK)
	}

	handler := s.metricsMiddleware(next)
	req := httptest.NewRequest("GET", "/test", http.NoBody)
	rec := httptest.NewRecorder()
	handler(rec, req)

	if !nextCalled {
		t.Error("next handler was not called")
	}
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want %d", rec.Code, http.StatusOK)
	}

	mrec := httptest.NewRecorder()
	s.metrics.WritePrometheus(mrec, httptest.NewRequest("GET", "/metrics", http.NoBody))
	if !strings.Contains(mrec.Body.String(), `asynclab_requests_total{method="GET",path="/test"} 1`) {
		t.Errorf("request was not counted:\n%s", mrec.Body.String())
	}
}
