// Package server wires the HTTP layer: router, middleware and the upload page.
package server

import (
	"context"
	"html/template"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dpereyra/historial-firmante/internal/domain/report/handler"
	"github.com/dpereyra/historial-firmante/internal/domain/report/service"
	"github.com/dpereyra/historial-firmante/pkg/config"
)

// Server is the HTTP server for the firmante report tool.
type Server struct {
	router *chi.Mux
	server *http.Server
	logger *slog.Logger
}

// New creates the server with all routes configured.
func New(cfg *config.Config, svc *service.Service, logger *slog.Logger) *Server {
	s := &Server{
		router: chi.NewRouter(),
		logger: logger,
	}

	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(60 * time.Second))
	s.router.Use(s.logRequests)

	reportHandler := handler.NewReportHandler(svc, logger, cfg.Server.MaxUploadBytes)

	s.router.Get("/", s.handleIndex)
	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", promhttp.Handler())
	s.router.Route("/api", func(r chi.Router) {
		r.Post("/report", reportHandler.GenerateReport)
	})

	s.server = &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

// Start begins serving HTTP requests. Blocks until the server stops.
func (s *Server) Start() error {
	s.logger.Info("http server listening", slog.String("addr", s.server.Addr))
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// Router exposes the mux for tests.
func (s *Server) Router() http.Handler {
	return s.router
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte("ok"))
}

func (s *Server) handleIndex(w http.ResponseWriter, _ *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := indexTemplate.Execute(w, nil); err != nil {
		s.logger.Error("render index page", slog.Any("error", err))
	}
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.Int("status", ww.Status()),
			slog.Duration("duration", time.Since(start)),
			slog.String("request_id", middleware.GetReqID(r.Context())),
		)
	})
}

var indexTemplate = template.Must(template.New("index").Parse(`<!doctype html>
<html lang="es">
<head>
  <meta charset="utf-8">
  <title>Historial Firmante</title>
</head>
<body>
  <h1>Historial Firmante</h1>
  <p>Subí el archivo exportado por el banco (Excel .xlsx, .xls, HTML o CSV).
     El sistema detecta el formato automáticamente.</p>
  <form method="post" action="/api/report" enctype="multipart/form-data">
    <input type="file" name="file" accept=".csv,.txt,.xls,.xlsx,.html" required>
    <button type="submit">Generar reporte</button>
  </form>
</body>
</html>
`))
