package main

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/JaimeStill/pendakwaan/internal/config"
	"github.com/JaimeStill/pendakwaan/internal/infrastructure"
	"github.com/JaimeStill/pendakwaan/pkg/lifecycle"
)

func testRouter(t *testing.T) (http.Handler, *infrastructure.Infrastructure) {
	t.Helper()
	reg := prometheus.NewRegistry()
	probe := prometheus.NewCounter(prometheus.CounterOpts{Name: "probe_total", Help: "Probe."})
	reg.MustRegister(probe)
	probe.Inc()

	infra := &infrastructure.Infrastructure{
		Lifecycle: lifecycle.New(),
		Logger:    slog.New(slog.NewTextHandler(io.Discard, nil)),
		Registry:  reg,
	}
	cfg := &config.Config{
		Version: "0.1.0",
		API:     config.APIConfig{BasePath: "/api"},
	}

	router, err := buildRouter(infra, cfg)
	if err != nil {
		t.Fatalf("buildRouter: %v", err)
	}
	return router, infra
}

func TestNativeEndpoints(t *testing.T) {
	router, infra := testRouter(t)

	get := func(path string) *httptest.ResponseRecorder {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest("GET", path, nil))
		return rec
	}

	if rec := get("/healthz"); rec.Code != http.StatusOK {
		t.Errorf("healthz = %d", rec.Code)
	}

	if rec := get("/readyz"); rec.Code != http.StatusServiceUnavailable {
		t.Errorf("readyz before startup = %d, want 503", rec.Code)
	}

	if err := infra.Lifecycle.WaitForStartup(); err != nil {
		t.Fatalf("WaitForStartup: %v", err)
	}
	if rec := get("/readyz"); rec.Code != http.StatusOK {
		t.Errorf("readyz after startup = %d, want 200", rec.Code)
	}

	rec := get("/metrics")
	if rec.Code != http.StatusOK || !strings.Contains(rec.Body.String(), "probe_total 1") {
		t.Errorf("metrics = %d %s", rec.Code, rec.Body.String())
	}

	rec = get("/openapi.json")
	if rec.Code != http.StatusOK {
		t.Fatalf("openapi.json = %d", rec.Code)
	}
	var doc map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &doc); err != nil {
		t.Fatalf("openapi.json is not JSON: %v", err)
	}
	if _, ok := doc["paths"]; !ok {
		t.Error("openapi.json has no paths")
	}
}
