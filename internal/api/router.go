package api

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"github.com/harrylevesque/nfcnav/internal/nav"
	"github.com/harrylevesque/nfcnav/internal/scanlog"
)

// Deps are the collaborators of the HTTP surface.
type Deps struct {
	Navigator *nav.Navigator
	Scans     *scanlog.Store
	Log       *slog.Logger
}

// NewRouter registers every route under the navigator's base path.
//
// Paths are matched in their escaped form and never cleaned, so an escaped
// '/' inside a segment or an empty tech types segment keeps the eight
// segment layout of a detail path intact.
func NewRouter(d Deps) *mux.Router {
	if d.Log == nil {
		d.Log = slog.Default()
	}
	h := &handlers{nav: d.Navigator, scans: d.Scans, log: d.Log}
	routes := d.Navigator.Routes()
	base := routes.BasePath()

	r := mux.NewRouter().UseEncodedPath().SkipClean(true)
	r.Use(logRequests(d.Log))

	r.HandleFunc(base+"/", h.redirectHome).Methods(http.MethodGet).Name(nav.RouteRoot)
	if base != "" {
		r.HandleFunc(base, h.redirectHome).Methods(http.MethodGet)
	}
	r.HandleFunc(base+routes.HomePath(), h.home).Methods(http.MethodGet).Name(nav.RouteHome)
	r.HandleFunc(base+routes.DetailTemplate(), h.detail).Methods(http.MethodGet).Name(nav.RouteDetail)
	// Any other segment count under the detail prefix.
	r.HandleFunc(base+routes.DetailPrefix(), h.detailFallback).Methods(http.MethodGet)
	r.PathPrefix(base + routes.DetailPrefix() + "/").HandlerFunc(h.detailFallback).Methods(http.MethodGet)

	r.HandleFunc(base+"/scans", h.createScan).Methods(http.MethodPost)
	r.HandleFunc(base+"/scans", h.clearScans).Methods(http.MethodDelete)
	r.HandleFunc(base+"/scans/{id}", h.openScan).Methods(http.MethodGet)
	r.HandleFunc(base+"/health", func(w http.ResponseWriter, r *http.Request) {
		if _, err := fmt.Fprintln(w, "OK"); err != nil {
			d.Log.Debug("health write failed", "error", err)
		}
	}).Methods(http.MethodGet)

	return r
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (s *statusRecorder) WriteHeader(code int) {
	s.status = code
	s.ResponseWriter.WriteHeader(code)
}

func logRequests(log *slog.Logger) mux.MiddlewareFunc {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
			next.ServeHTTP(rec, r)
			log.Info("request",
				"method", r.Method,
				"path", r.URL.EscapedPath(),
				"status", rec.status,
				"duration", time.Since(start),
			)
		})
	}
}
