package health

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestHandler() *Handler {
	return NewHandler("candleshop", Build{
		Version: "v1.0.0",
		Commit:  "abc1234",
		BuiltAt: "2026-08-31",
	})
}

func decodeReport(t *testing.T, w *httptest.ResponseRecorder) Report {
	t.Helper()
	var report Report
	if err := json.NewDecoder(w.Body).Decode(&report); err != nil {
		t.Fatalf("failed to decode report: %v", err)
	}
	return report
}

func TestHandler_AllProbesOK(t *testing.T) {
	handler := newTestHandler()
	handler.Register("storage", ProbeFunc(func() error { return nil }))
	handler.Register("events", ProbeFunc(func() error { return nil }))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}

	report := decodeReport(t, w)
	if report.Status != StatusOK {
		t.Errorf("expected overall status ok, got %s", report.Status)
	}
	if report.Service != "candleshop" {
		t.Errorf("expected service candleshop, got %s", report.Service)
	}
	if len(report.Components) != 2 {
		t.Errorf("expected 2 components, got %d", len(report.Components))
	}
	if _, ok := report.Components["storage"]; !ok {
		t.Error("expected storage component in report")
	}
}

func TestHandler_ReportCarriesBuildInfo(t *testing.T) {
	handler := newTestHandler()

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	report := decodeReport(t, w)
	if report.Build.Version != "v1.0.0" {
		t.Errorf("expected build version v1.0.0, got %s", report.Build.Version)
	}
	if report.Build.Commit != "abc1234" {
		t.Errorf("expected build commit abc1234, got %s", report.Build.Commit)
	}
	if report.Build.BuiltAt != "2026-08-31" {
		t.Errorf("expected build date 2026-08-31, got %s", report.Build.BuiltAt)
	}
}

func TestHandler_DownComponentGives503(t *testing.T) {
	handler := newTestHandler()
	handler.Register("storage", ProbeFunc(func() error {
		return errors.New("connection refused")
	}))

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}

	report := decodeReport(t, w)
	if report.Status != StatusDown {
		t.Errorf("expected overall status down, got %s", report.Status)
	}
	if report.Components["storage"].Error != "connection refused" {
		t.Errorf("expected component error, got %q", report.Components["storage"].Error)
	}
}

// degradedProbe имитирует компонент, который работает, но не в полную силу.
type degradedProbe struct{}

func (degradedProbe) Probe() Component {
	return Component{Status: StatusDegraded, Error: "replica lag"}
}

func TestHandler_DegradedStaysAvailable(t *testing.T) {
	handler := newTestHandler()
	handler.Register("storage", ProbeFunc(func() error { return nil }))
	handler.Register("events", degradedProbe{})

	w := httptest.NewRecorder()
	handler.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200 for degraded service, got %d", w.Code)
	}

	report := decodeReport(t, w)
	if report.Status != StatusDegraded {
		t.Errorf("expected overall status degraded, got %s", report.Status)
	}
}

func TestReadinessHandler(t *testing.T) {
	handler := newTestHandler()
	handler.Register("storage", ProbeFunc(func() error { return nil }))

	w := httptest.NewRecorder()
	handler.ReadinessHandler(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "ready" {
		t.Errorf("expected body 'ready', got %s", w.Body.String())
	}
}

func TestReadinessHandler_NotReady(t *testing.T) {
	handler := newTestHandler()
	handler.Register("storage", ProbeFunc(func() error {
		return errors.New("not ready")
	}))

	w := httptest.NewRecorder()
	handler.ReadinessHandler(w, httptest.NewRequest(http.MethodGet, "/readyz", nil))

	if w.Code != http.StatusServiceUnavailable {
		t.Errorf("expected status 503, got %d", w.Code)
	}
	if w.Body.String() != "not ready" {
		t.Errorf("expected body 'not ready', got %s", w.Body.String())
	}
}

func TestLivenessHandler(t *testing.T) {
	w := httptest.NewRecorder()
	LivenessHandler(w, httptest.NewRequest(http.MethodGet, "/livez", nil))

	if w.Code != http.StatusOK {
		t.Errorf("expected status 200, got %d", w.Code)
	}
	if w.Body.String() != "ok" {
		t.Errorf("expected body 'ok', got %s", w.Body.String())
	}
}

func TestProbeFunc_MeasuresLatency(t *testing.T) {
	probe := ProbeFunc(func() error {
		time.Sleep(15 * time.Millisecond)
		return nil
	})

	c := probe.Probe()

	if c.Status != StatusOK {
		t.Errorf("expected status ok, got %s", c.Status)
	}
	if c.LatencyMs < 10 {
		t.Errorf("expected latency >= 10ms, got %dms", c.LatencyMs)
	}
}

func TestProbeFunc_Error(t *testing.T) {
	probe := ProbeFunc(func() error {
		return errors.New("ping failed")
	})

	c := probe.Probe()

	if c.Status != StatusDown {
		t.Errorf("expected status down, got %s", c.Status)
	}
	if c.Error != "ping failed" {
		t.Errorf("expected error 'ping failed', got %q", c.Error)
	}
}
