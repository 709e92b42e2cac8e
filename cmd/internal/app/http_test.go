package app

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"authd/cmd/identity"
)

// failingStore wraps the memory store with a Ping that always errors.
type failingStore struct {
	*identity.MemoryStore
}

func (failingStore) Ping(context.Context) error {
	return errors.New("connection refused")
}

func discardLogger() Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestRootProbeConnected(t *testing.T) {
	mux := http.NewServeMux()
	registerHTTP(mux, discardLogger(), Config{}, identity.NewMemoryStore(), false, nil, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
	if rr.Body.String() != dbProbeOK {
		t.Fatalf("body=%q want=%q", rr.Body.String(), dbProbeOK)
	}
}

func TestRootProbeFailure(t *testing.T) {
	mux := http.NewServeMux()
	registerHTTP(mux, discardLogger(), Config{}, failingStore{identity.NewMemoryStore()}, false, nil, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))

	if rr.Code != http.StatusInternalServerError {
		t.Fatalf("status=%d", rr.Code)
	}
	if strings.TrimSpace(rr.Body.String()) != dbProbeFail {
		t.Fatalf("body=%q want=%q", rr.Body.String(), dbProbeFail)
	}
}

func TestRootProbeIsNotACatchAll(t *testing.T) {
	mux := http.NewServeMux()
	registerHTTP(mux, discardLogger(), Config{}, identity.NewMemoryStore(), false, nil, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/nope", nil))

	if rr.Code != http.StatusNotFound {
		t.Fatalf("status=%d", rr.Code)
	}
}

func TestHealthz(t *testing.T) {
	mux := http.NewServeMux()
	registerHTTP(mux, discardLogger(), Config{}, identity.NewMemoryStore(), false, nil, nil)

	rr := httptest.NewRecorder()
	mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("status=%d", rr.Code)
	}
}

func TestReadyz(t *testing.T) {
	t.Run("ready", func(t *testing.T) {
		mux := http.NewServeMux()
		registerHTTP(mux, discardLogger(), Config{}, identity.NewMemoryStore(), false, nil, nil)

		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		if rr.Code != http.StatusOK {
			t.Fatalf("status=%d", rr.Code)
		}
	})

	t.Run("requires_db_but_memory_mode", func(t *testing.T) {
		mux := http.NewServeMux()
		cfg := Config{ReadinessRequireDB: true}
		registerHTTP(mux, discardLogger(), cfg, identity.NewMemoryStore(), false, nil, nil)

		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		if rr.Code != http.StatusServiceUnavailable {
			t.Fatalf("status=%d", rr.Code)
		}
	})

	t.Run("store_unreachable", func(t *testing.T) {
		mux := http.NewServeMux()
		registerHTTP(mux, discardLogger(), Config{}, failingStore{identity.NewMemoryStore()}, true, nil, nil)

		rr := httptest.NewRecorder()
		mux.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/readyz", nil))
		if rr.Code != http.StatusServiceUnavailable {
			t.Fatalf("status=%d", rr.Code)
		}
	})
}

func TestMetricsEndpoint(t *testing.T) {
	m := NewMetrics()
	mux := http.NewServeMux()
	registerHTTP(mux, discardLogger(), Config{}, identity.NewMemoryStore(), false, nil, m)

	h := WithMetrics(mux, m)

	// Drive one request through the instrumented chain, then scrape.
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	if rr.Code != http.StatusOK {
		t.Fatalf("healthz status=%d", rr.Code)
	}

	scrape := httptest.NewRecorder()
	h.ServeHTTP(scrape, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if scrape.Code != http.StatusOK {
		t.Fatalf("metrics status=%d", scrape.Code)
	}
	body := scrape.Body.String()
	if !strings.Contains(body, "authd_http_requests_total") {
		t.Fatalf("scrape missing request counter:\n%s", body)
	}
	if !strings.Contains(body, `route="/healthz"`) {
		t.Fatalf("scrape missing healthz route label")
	}
}

func TestMetricRouteCollapsesUnknownPaths(t *testing.T) {
	t.Parallel()

	if got := metricRoute("/login"); got != "/login" {
		t.Fatalf("known route mangled: %q", got)
	}
	if got := metricRoute("/login/../../etc/passwd"); got != "other" {
		t.Fatalf("unknown route must collapse: %q", got)
	}
}
