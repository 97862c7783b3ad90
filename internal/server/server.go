package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"

	"github.com/cloud-ru/mcp-amortization-go/internal/config"
	"github.com/cloud-ru/mcp-amortization-go/internal/export"
	"github.com/cloud-ru/mcp-amortization-go/internal/logging"
	"github.com/cloud-ru/mcp-amortization-go/internal/metrics"
	"github.com/cloud-ru/mcp-amortization-go/internal/tools"
	"github.com/cloud-ru/mcp-amortization-go/internal/validators"
)

const (
	maxBodyBytes    = 1 << 20
	shutdownTimeout = 10 * time.Second
)

// Server HTTP сервер инструментов расчета кредита
type Server struct {
	cfg      *config.Config
	registry tools.Registry
	router   chi.Router
}

// New создает сервер и регистрирует маршруты
func New(cfg *config.Config, registry tools.Registry) *Server {
	s := &Server{
		cfg:      cfg,
		registry: registry,
	}
	s.router = s.routes()
	return s
}

// Handler возвращает корневой обработчик
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()

	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(logging.RequestLogger)
	r.Use(middleware.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   s.cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Content-Disposition"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", s.handleHealth)
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/api", func(r chi.Router) {
		r.Get("/tools", s.handleListTools)
		r.Post("/tools/{name}", s.handleCallTool)
		r.Post("/export/csv", s.handleExportCSV)
	})

	return r
}

// Run запускает сервер и останавливает его при отмене ctx
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("addr", srv.Addr).Msg("starting HTTP server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down HTTP server")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("http server shutdown: %w", err)
	}
	return nil
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListTools(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string][]string{"tools": s.registry.Names()})
}

func (s *Server) handleCallTool(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "name")
	handler, ok := s.registry[name]
	if !ok {
		metrics.APICalls.WithLabelValues("http", name, "not_found").Inc()
		writeError(w, http.StatusNotFound, fmt.Sprintf("unknown tool: %s", name))
		return
	}

	params, err := decodeParams(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := handler(r.Context(), params)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleExportCSV(w http.ResponseWriter, r *http.Request) {
	handler, ok := s.registry[tools.ToolAmortizationSchedule]
	if !ok {
		writeError(w, http.StatusNotFound, "schedule tool is not registered")
		return
	}

	params, err := decodeParams(w, r)
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	result, err := handler(r.Context(), params)
	if err != nil {
		writeError(w, statusFor(err), err.Error())
		return
	}
	response, ok := result.(tools.ScheduleResponse)
	if !ok {
		writeError(w, http.StatusInternalServerError, "unexpected schedule result")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", export.DefaultFilename))
	w.WriteHeader(http.StatusOK)

	writer := &export.ScheduleCSV{}
	if err := writer.Write(w, response.Schedule); err != nil {
		log.Error().Err(err).Msg("failed to stream CSV export")
	}
}

func decodeParams(w http.ResponseWriter, r *http.Request) (map[string]interface{}, error) {
	params := make(map[string]interface{})
	decoder := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := decoder.Decode(&params); err != nil {
		return nil, fmt.Errorf("invalid JSON body: %w", err)
	}
	return params, nil
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, tools.ErrInvalidParameter), errors.Is(err, validators.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, tools.ErrCalculation):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}
