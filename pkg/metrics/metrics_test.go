package metrics

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/psantana5/flexdash/pkg/models"
)

type fakeStats struct {
	stats *models.Stats
	err   error
}

func (f fakeStats) GetStats(ctx context.Context) (*models.Stats, error) {
	return f.stats, f.err
}

func scrape(t *testing.T, reg *prometheus.Registry) string {
	t.Helper()
	w := httptest.NewRecorder()
	Handler(reg).ServeHTTP(w, httptest.NewRequest("GET", "/metrics", nil))
	return w.Body.String()
}

func TestHubCollector(t *testing.T) {
	reg := prometheus.NewRegistry()
	stats := &models.Stats{
		Job:     models.JobStats{PendingJobs: 2, RunningJobs: 3},
		Flexlet: models.FlexletStats{OnlineFlexlets: 1, BusyCores: 3, IdleCores: 1},
	}
	reg.MustRegister(NewHubCollector(fakeStats{stats: stats}, time.Second))

	body := scrape(t, reg)
	for _, want := range []string{
		"flexdash_hub_up 1",
		"flexdash_hub_pending_jobs 2",
		"flexdash_hub_running_jobs 3",
		"flexdash_hub_busy_cores 3",
		"flexdash_hub_idle_cores 1",
	} {
		if !strings.Contains(body, want) {
			t.Errorf("Expected %q in metrics output:\n%s", want, body)
		}
	}
}

func TestHubCollectorDown(t *testing.T) {
	reg := prometheus.NewRegistry()
	reg.MustRegister(NewHubCollector(fakeStats{err: errors.New("unreachable")}, time.Second))

	body := scrape(t, reg)
	if !strings.Contains(body, "flexdash_hub_up 0") {
		t.Errorf("Expected hub_up 0, got:\n%s", body)
	}
	if strings.Contains(body, "flexdash_hub_pending_jobs") {
		t.Errorf("Expected no stats when hub is down, got:\n%s", body)
	}
}

func TestInstrumentTransport(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		io.WriteString(w, "ok")
	}))
	defer server.Close()

	reg := prometheus.NewRegistry()
	m := NewClientMetrics(reg)
	hc := &http.Client{Transport: m.InstrumentTransport(nil)}
	resp, err := hc.Get(server.URL)
	if err != nil {
		t.Fatalf("Request failed: %v", err)
	}
	resp.Body.Close()

	body := scrape(t, reg)
	if !strings.Contains(body, `flexdash_hub_requests_total{code="200",method="get"} 1`) {
		t.Errorf("Expected request counter, got:\n%s", body)
	}
}

func TestInstrumentHandler(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := NewHTTPMetrics(reg)
	h := m.Instrument("jobs", http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadGateway)
		io.WriteString(w, "hub down")
	}))
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/jobs/", nil))

	body := scrape(t, reg)
	if !strings.Contains(body, `flexdash_http_requests_total{code="502",handler="jobs"} 1`) {
		t.Errorf("Expected handler counter, got:\n%s", body)
	}
}
