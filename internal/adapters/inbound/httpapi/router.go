// Package httpapi serves a generated report directory and a read-only JSON
// API over its snapshot.
package httpapi

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"sort"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/a11yaudit/a11yaudit/internal/application"
	"github.com/a11yaudit/a11yaudit/internal/domain"
)

// Router answers API requests from the report in dir.
type Router struct {
	query  *application.QueryService
	dir    string
	logger *slog.Logger
}

// NewRouter builds the HTTP handler: /api/* from the snapshot, everything
// else from the report directory.
func NewRouter(query *application.QueryService, dir string, logger *slog.Logger) http.Handler {
	if logger == nil {
		logger = slog.Default()
	}
	r := &Router{query: query, dir: dir, logger: logger}

	mux := chi.NewRouter()
	mux.Use(middleware.RequestID)
	mux.Use(middleware.Recoverer)
	mux.Use(requestLogger(logger))
	mux.Use(cors.Handler(cors.Options{
		AllowedOrigins: []string{"*"},
		AllowedMethods: []string{http.MethodGet, http.MethodHead, http.MethodOptions},
		MaxAge:         300,
	}))

	mux.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte("ok"))
	})

	mux.Route("/api", func(rt chi.Router) {
		rt.Get("/summary", r.wrap(r.handleSummary))
		rt.Get("/sites", r.wrap(r.handleSites))
		rt.Get("/sites/{site}/violations", r.wrap(r.handleSiteViolations))
		rt.Get("/browsers", r.wrap(r.handleBrowsers))
		rt.Get("/history", r.wrap(r.handleHistory))
	})

	mux.Handle("/*", http.FileServer(http.Dir(dir)))
	return mux
}

type handlerFunc func(http.ResponseWriter, *http.Request) error

func (r *Router) wrap(h handlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, req *http.Request) {
		if err := h(w, req); err != nil {
			switch {
			case errors.Is(err, domain.ErrSiteNotFound):
				http.Error(w, err.Error(), http.StatusNotFound)
			case errors.Is(err, os.ErrNotExist):
				http.Error(w, "no report generated yet", http.StatusNotFound)
			default:
				r.logger.Error("api request failed", "path", req.URL.Path, "error", err)
				http.Error(w, err.Error(), http.StatusInternalServerError)
			}
		}
	}
}

// GET /api/summary
func (r *Router) handleSummary(w http.ResponseWriter, _ *http.Request) error {
	ds, err := r.query.Dataset(r.dir)
	if err != nil {
		return err
	}
	return writeJSON(w, struct {
		Title        string               `json:"title"`
		GeneratedAt  time.Time            `json:"generatedAt"`
		RunID        string               `json:"runId,omitempty"`
		Commit       string               `json:"commit,omitempty"`
		Summary      domain.GlobalSummary `json:"summary"`
		PagesScanned int                  `json:"pagesScanned"`
	}{ds.Title, ds.GeneratedAt, ds.RunID, ds.Commit, ds.Global, ds.TotalPagesScanned()})
}

type siteEntry struct {
	Name         string `json:"name"`
	Total        int    `json:"total"`
	Critical     int    `json:"critical"`
	Serious      int    `json:"serious"`
	Moderate     int    `json:"moderate"`
	Minor        int    `json:"minor"`
	PagesScanned int    `json:"pagesScanned"`
}

// GET /api/sites
func (r *Router) handleSites(w http.ResponseWriter, _ *http.Request) error {
	ds, err := r.query.Dataset(r.dir)
	if err != nil {
		return err
	}
	sites := make([]siteEntry, 0, len(ds.Sites))
	for _, name := range ds.SiteNames() {
		s := ds.Sites[name]
		sites = append(sites, siteEntry{
			Name:         name,
			Total:        s.TotalViolations,
			Critical:     s.CriticalViolations,
			Serious:      s.SeriousViolations,
			Moderate:     s.ModerateViolations,
			Minor:        s.MinorViolations,
			PagesScanned: ds.PagesScanned[name],
		})
	}
	return writeJSON(w, sites)
}

// GET /api/sites/{site}/violations?impact=&browser=&tag=&page=
func (r *Router) handleSiteViolations(w http.ResponseWriter, req *http.Request) error {
	q := req.URL.Query()
	filter := application.ViolationFilter{
		Impact:  q.Get("impact"),
		Browser: q.Get("browser"),
		Tag:     q.Get("tag"),
		Page:    q.Get("page"),
	}
	violations, err := r.query.SiteViolations(r.dir, chi.URLParam(req, "site"), filter)
	if err != nil {
		return err
	}
	return writeJSON(w, violations)
}

type browserEntry struct {
	Name            string  `json:"name"`
	Total           int     `json:"total"`
	DurationSeconds float64 `json:"durationSeconds,omitempty"`
}

// GET /api/browsers
func (r *Router) handleBrowsers(w http.ResponseWriter, _ *http.Request) error {
	ds, err := r.query.Dataset(r.dir)
	if err != nil {
		return err
	}
	entries := make([]browserEntry, 0, len(ds.Browsers.Totals))
	for _, name := range ds.Browsers.Names() {
		entries = append(entries, browserEntry{
			Name:            name,
			Total:           ds.Browsers.Totals[name],
			DurationSeconds: ds.Browsers.Durations[name],
		})
	}
	sort.SliceStable(entries, func(i, j int) bool { return entries[i].Total > entries[j].Total })
	return writeJSON(w, struct {
		Browsers         []browserEntry `json:"browsers"`
		Unique           int            `json:"uniqueViolations"`
		MaxSingleBrowser int            `json:"maxSingleBrowser"`
	}{entries, ds.Global.TotalViolations, ds.Browsers.MaxSingleBrowser})
}

// GET /api/history
func (r *Router) handleHistory(w http.ResponseWriter, _ *http.Request) error {
	entries, err := r.query.History(r.dir)
	if err != nil {
		return err
	}
	if entries == nil {
		entries = []domain.RunEntry{}
	}
	return writeJSON(w, entries)
}

func writeJSON(w http.ResponseWriter, v any) error {
	w.Header().Set("Content-Type", "application/json")
	return json.NewEncoder(w).Encode(v)
}

func requestLogger(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, req *http.Request) {
			start := time.Now()
			ww := middleware.NewWrapResponseWriter(w, req.ProtoMajor)
			next.ServeHTTP(ww, req)
			logger.Debug("http request",
				"method", req.Method,
				"path", req.URL.Path,
				"status", ww.Status(),
				"bytes", ww.BytesWritten(),
				"duration", time.Since(start),
				"request_id", middleware.GetReqID(req.Context()),
			)
		})
	}
}
