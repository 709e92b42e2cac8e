package app

import (
	"context"
	"net/http"
	"time"

	"authd/cmd/identity"
	authapi "authd/cmd/internal/auth/api"
)

// dbProbeOK and dbProbeFail are the exact bodies of the root connectivity
// probe; clients match on them verbatim.
const (
	dbProbeOK   = "Connected to the database"
	dbProbeFail = "Error connecting to the database"
)

func registerHTTP(
	mux *http.ServeMux,
	log Logger,
	cfg Config,
	store identity.Store,
	dbEnabled bool,
	auth *authapi.Handler,
	metrics *Metrics,
) {
	// Root is a store connectivity probe, not a catch-all: any other
	// unrouted path is a plain 404.
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/" {
			http.NotFound(w, r)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			log.Error("db.probe.fail", "err", err)
			http.Error(w, dbProbeFail, http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(dbProbeOK))
	})

	mux.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok\n"))
	})

	mux.HandleFunc("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if cfg.ReadinessRequireDB && !dbEnabled {
			http.Error(w, "db not configured", http.StatusServiceUnavailable)
			return
		}

		ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
		defer cancel()

		if err := store.Ping(ctx); err != nil {
			log.Info("readyz.db.not_ready", "err", err)
			http.Error(w, "db not ready", http.StatusServiceUnavailable)
			return
		}

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ready\n"))
	})

	if auth != nil {
		auth.Register(mux)
	}

	if metrics != nil {
		mux.Handle("/metrics", metrics.Handler())
	}
}
