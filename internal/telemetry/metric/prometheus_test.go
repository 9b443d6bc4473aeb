package metric

import (
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestNewRegistry(t *testing.T) {
	r := NewRegistry()
	if r == nil {
		t.Fatal("NewRegistry() returned nil")
	}
	if r.registry == nil {
		t.Error("registry field is nil")
	}
	if r.RequestsTotal == nil {
		t.Error("RequestsTotal is nil")
	}
	if r.RequestDuration == nil {
		t.Error("RequestDuration is nil")
	}
}

func TestNewRegistry_Independent(t *testing.T) {
	// Two registries must not panic on duplicate registration.
	r1 := NewRegistry()
	r2 := NewRegistry()

	r1.ObserveRequest(http.MethodGet, http.StatusOK, 10, time.Millisecond)

	if got := testutil.ToFloat64(r1.RequestsTotal.WithLabelValues("GET", "200")); got != 1 {
		t.Errorf("r1 requests = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r2.RequestsTotal.WithLabelValues("GET", "200")); got != 0 {
		t.Errorf("r2 requests = %v, want 0", got)
	}
}

func TestObserveRequest(t *testing.T) {
	r := NewRegistry()

	r.ObserveRequest(http.MethodGet, http.StatusOK, 128, 5*time.Millisecond)
	r.ObserveRequest(http.MethodGet, http.StatusNotFound, 0, time.Millisecond)
	r.ObserveRequest(http.MethodHead, http.StatusOK, 0, time.Millisecond)

	if got := testutil.ToFloat64(r.RequestsTotal.WithLabelValues("GET", "200")); got != 1 {
		t.Errorf("GET 200 = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.RequestsTotal.WithLabelValues("GET", "404")); got != 1 {
		t.Errorf("GET 404 = %v, want 1", got)
	}
	if got := testutil.ToFloat64(r.ResponseBytes); got != 128 {
		t.Errorf("ResponseBytes = %v, want 128", got)
	}
}

func TestHandler(t *testing.T) {
	r := NewRegistry()
	r.MountedFolders.Set(2)

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	r.Handler().ServeHTTP(rec, req)

	if rec.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", rec.Code)
	}

	body, _ := io.ReadAll(rec.Body)
	if !strings.Contains(string(body), "staticserver_mounted_folders 2") {
		t.Errorf("metrics output missing mounted_folders gauge:\n%s", body)
	}
}
