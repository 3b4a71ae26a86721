package httpapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"gitlab.com/yelinaung/freelance-ledger/internal/chart"
	"gitlab.com/yelinaung/freelance-ledger/internal/dashboard"
	"gitlab.com/yelinaung/freelance-ledger/internal/logger"
	"gitlab.com/yelinaung/freelance-ledger/internal/models"
	"gitlab.com/yelinaung/freelance-ledger/internal/report"
)

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	status := "ok"
	if s.ledger.IsLoading() {
		status = "loading"
	}
	writeJSON(w, http.StatusOK, map[string]string{"status": status})
}

func (s *Server) handleProjects(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	filter := dashboard.ProjectFilter{Query: q.Get("search")}

	if v := q.Get("status"); v != "" {
		status, err := models.ParseStatus(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		filter.Status = status
	}
	if v := q.Get("service"); v != "" {
		service, err := models.ParseServiceType(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, err)
			return
		}
		filter.ServiceType = service
	}

	writeJSON(w, http.StatusOK, dashboard.FilterProjects(s.ledger.Projects(), filter))
}

type clientView struct {
	models.Client
	ProjectCount int `json:"projectCount"`
}

func (s *Server) handleClients(w http.ResponseWriter, r *http.Request) {
	counts := dashboard.ProjectCountByClient(s.ledger.Projects())
	clients := dashboard.FilterClients(s.ledger.Clients(), r.URL.Query().Get("search"))

	out := make([]clientView, len(clients))
	for i := range clients {
		out[i] = clientView{Client: clients[i], ProjectCount: counts[clients[i].ID]}
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) handleDashboard(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, s.ledger.Dashboard(s.now()))
}

func (s *Server) handlePeriods(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, report.Periods(s.now()))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.report(w, r)
	if !ok {
		return
	}

	if strings.EqualFold(r.URL.Query().Get("format"), "csv") {
		data, err := report.CSV(rep)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		w.Header().Set("Content-Type", "text/csv")
		w.Header().Set("Content-Disposition", `attachment; filename="`+report.Filename(rep, s.now())+`"`)
		_, _ = w.Write(data)
		return
	}

	writeJSON(w, http.StatusOK, rep)
}

func (s *Server) handleStatusChart(w http.ResponseWriter, _ *http.Request) {
	s.writeChart(w, func() ([]byte, error) {
		return chart.StatusPNG(dashboard.StatusChart(s.ledger.Projects()))
	})
}

func (s *Server) handleIncomeChart(w http.ResponseWriter, _ *http.Request) {
	s.writeChart(w, func() ([]byte, error) {
		currency := s.ledger.Currency()
		return chart.IncomePNG(dashboard.MonthlyIncome(s.ledger.Projects(), currency, s.now()), currency)
	})
}

func (s *Server) handleReportChart(w http.ResponseWriter, r *http.Request) {
	rep, ok := s.report(w, r)
	if !ok {
		return
	}
	s.writeChart(w, func() ([]byte, error) { return chart.ReportPNG(rep) })
}

// report resolves the period query parameter, defaulting to this month.
func (s *Server) report(w http.ResponseWriter, r *http.Request) (models.Report, bool) {
	label := r.URL.Query().Get("period")
	if label == "" {
		label = report.ThisMonth
	}

	period, err := report.FindPeriod(label, s.now())
	if err != nil {
		writeError(w, http.StatusBadRequest, err)
		return models.Report{}, false
	}
	return s.ledger.Report(period), true
}

func (s *Server) writeChart(w http.ResponseWriter, render func() ([]byte, error)) {
	png, err := render()
	if errors.Is(err, chart.ErrNoData) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	if err != nil {
		logger.Log.Error().Err(err).Msg("Failed to render chart")
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = w.Write(png)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, errorResponse{Error: err.Error()})
}
