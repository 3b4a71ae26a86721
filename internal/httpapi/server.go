// Package httpapi serves a read-only JSON and PNG view of the ledger.
package httpapi

import (
	"context"
	"errors"
	"net/http"
	"time"

	"gitlab.com/yelinaung/freelance-ledger/internal/app"
	"gitlab.com/yelinaung/freelance-ledger/internal/logger"
	"gitlab.com/yelinaung/freelance-ledger/internal/models"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

const shutdownTimeout = 5 * time.Second

// Ledger is the read side of the application facade.
type Ledger interface {
	Projects() []models.Project
	Clients() []models.Client
	Currency() models.Currency
	IsLoading() bool
	Dashboard(now time.Time) app.DashboardView
	Report(period models.ReportPeriod) models.Report
}

// Server is the HTTP server for the local API.
type Server struct {
	http.Server
	ledger Ledger
	now    func() time.Time
}

// NewServer configures routes and returns a ready-to-run server.
func NewServer(addr string, ledger Ledger) *Server {
	s := &Server{
		Server: http.Server{
			Addr:              addr,
			ReadHeaderTimeout: 10 * time.Second,
		},
		ledger: ledger,
		now:    time.Now,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /api/projects", s.handleProjects)
	mux.HandleFunc("GET /api/clients", s.handleClients)
	mux.HandleFunc("GET /api/dashboard", s.handleDashboard)
	mux.HandleFunc("GET /api/reports", s.handleReport)
	mux.HandleFunc("GET /api/periods", s.handlePeriods)
	mux.HandleFunc("GET /api/charts/status.png", s.handleStatusChart)
	mux.HandleFunc("GET /api/charts/income.png", s.handleIncomeChart)
	mux.HandleFunc("GET /api/charts/report.png", s.handleReportChart)

	s.Handler = otelhttp.NewHandler(withLogging(mux), "freelance-ledger")
	return s
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Log.Info().Str("addr", s.Addr).Msg("HTTP API listening")
		errCh <- s.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := s.Shutdown(shutdownCtx); err != nil {
		return err
	}
	logger.Log.Info().Msg("HTTP API stopped")
	return nil
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func withLogging(next http.Handler) http.Handler {
	log := logger.Component("httpapi")
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)

		log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Dur("duration", time.Since(start)).
			Msg("HTTP request")
	})
}
