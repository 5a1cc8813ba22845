package httpx

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/angelcm/hogdash-go/internal/dashboard"
	"github.com/angelcm/hogdash-go/internal/posthog"
	"github.com/angelcm/hogdash-go/internal/utils"
)

func NewRouter(log *slog.Logger, svc *dashboard.Service) http.Handler {
	mux := chi.NewRouter()
	mux.Use(utils.RequestID)
	mux.Use(utils.Logger(log))

	mux.Get("/healthz", func(w http.ResponseWriter, r *http.Request) { w.WriteHeader(200); w.Write([]byte("ok")) })
	mux.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		if err := svc.Ready(r.Context()); err != nil {
			http.Error(w, "gateway unreachable: "+err.Error(), http.StatusServiceUnavailable)
			return
		}
		w.WriteHeader(200)
		w.Write([]byte("ready"))
	})

	mux.Handle("/metrics", promhttp.Handler())

	mux.Get("/api/pageviews", func(w http.ResponseWriter, r *http.Request) {
		rep, err := svc.PageViews(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, rep)
	})

	mux.Get("/api/dau", func(w http.ResponseWriter, r *http.Request) {
		rep, err := svc.ActiveUsers(r.Context())
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, rep)
	})

	mux.Get("/api/errors", func(w http.ResponseWriter, r *http.Request) {
		days, _ := strconv.Atoi(r.URL.Query().Get("days"))
		rep, err := svc.Errors(r.Context(), days)
		if err != nil {
			writeErr(w, err)
			return
		}
		writeJSON(w, rep)
	})

	mux.Get("/api/errors/{id}", func(w http.ResponseWriter, r *http.Request) {
		det, err := svc.ErrorDetail(r.Context(), chi.URLParam(r, "id"))
		if err != nil {
			if errors.Is(err, dashboard.ErrNotFound) {
				http.Error(w, "error not found", http.StatusNotFound)
				return
			}
			writeErr(w, err)
			return
		}
		writeJSON(w, det)
	})

	mux.Post("/api/refresh", func(w http.ResponseWriter, r *http.Request) {
		svc.Refresh()
		writeJSON(w, map[string]any{"refreshed": true})
	})

	return mux
}

// fallos del gateway se reportan en la sección que los provocó, nunca tumban el proceso
func writeErr(w http.ResponseWriter, err error) {
	kind := "gateway_error"
	if posthog.IsAuthError(err) {
		kind = "auth_error"
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusBadGateway)
	json.NewEncoder(w).Encode(map[string]string{"error": kind, "message": err.Error()})
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	enc := json.NewEncoder(w)
	enc.SetIndent("", " ")
	enc.Encode(v)
}
