package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"sync/atomic"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/rs/zerolog/log"

	"bc-combo-solver/internal/combo"
)

const maxRequestBody = 64 << 10

// searchServer answers search requests against the current Dataset. The
// dataset pointer is swapped whole on reload; in-flight searches keep the
// one they started with.
type searchServer struct {
	data    atomic.Pointer[Dataset]
	opts    combo.Options
	timeout time.Duration
}

func newSearchServer(ds *Dataset, opts combo.Options, timeout time.Duration) *searchServer {
	s := &searchServer{opts: opts, timeout: timeout}
	s.data.Store(ds)
	return s
}

// Swap installs a freshly loaded dataset.
func (s *searchServer) Swap(ds *Dataset) {
	s.data.Store(ds)
}

func (s *searchServer) routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(requestLogger)

	r.Get("/healthz", s.handleHealth)
	r.Get("/effects", s.handleEffects)
	r.Get("/forms/{unit}", s.handleForms)
	r.Post("/search", s.handleSearch)
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Dur("elapsed", time.Since(start)).
			Str("requestId", middleware.GetReqID(r.Context())).
			Msg("http request")
	})
}

type healthResponse struct {
	Status   string `json:"status"`
	Combos   int    `json:"combos"`
	Cats     int    `json:"cats"`
	LoadedAt string `json:"loadedAt"`
}

type effectsResponse struct {
	EffectTypes []string `json:"effectTypes"`
}

type formsResponse struct {
	Unit  string   `json:"unit"`
	Forms []string `json:"forms"`
}

func (s *searchServer) handleHealth(w http.ResponseWriter, _ *http.Request) {
	ds := s.data.Load()
	writeJSON(w, http.StatusOK, healthResponse{
		Status:   "ok",
		Combos:   ds.Catalog.Len(),
		Cats:     ds.Forms.Len(),
		LoadedAt: ds.LoadedAt.UTC().Format(time.RFC3339),
	})
}

func (s *searchServer) handleEffects(w http.ResponseWriter, _ *http.Request) {
	types := s.data.Load().Catalog.EffectTypes()
	if types == nil {
		types = []string{}
	}
	writeJSON(w, http.StatusOK, effectsResponse{EffectTypes: types})
}

func (s *searchServer) handleForms(w http.ResponseWriter, r *http.Request) {
	unit := chi.URLParam(r, "unit")
	forms := s.data.Load().Forms.Forms(unit)
	if forms == nil {
		writeError(w, http.StatusNotFound, fmt.Sprintf("unit %q not found", unit))
		return
	}
	writeJSON(w, http.StatusOK, formsResponse{Unit: unit, Forms: forms})
}

func (s *searchServer) handleSearch(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBody))
	if err != nil {
		writeError(w, http.StatusBadRequest, "read body: "+err.Error())
		return
	}
	var req combo.Request
	if err := sonic.Unmarshal(body, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		return
	}
	if err := req.Validate(); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	res, err := runSearch(r.Context(), s.data.Load(), req, s.opts, s.timeout)
	if err != nil {
		status := http.StatusInternalServerError
		if errors.Is(err, context.Canceled) {
			status = 499
		}
		writeError(w, status, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	body, err := sonic.Marshal(v)
	if err != nil {
		log.Error().Err(err).Msg("encode response")
		http.Error(w, `{"error":"encode response"}`, http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// serveHTTP runs the API until ctx ends, then shuts down gracefully.
func serveHTTP(ctx context.Context, addr string, h http.Handler) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", addr).Msg("listening")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		log.Info().Msg("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}
