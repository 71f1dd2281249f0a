package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/bobmcallan/marketlens/internal/models"
	"github.com/bobmcallan/marketlens/internal/services/analysis"
)

// handleAnalyze runs an analysis.
//
// POST accepts {kind, query?, holdings?}. GET supports the legacy
// deep-link form /api/analyze?q=... which triggers an immediate market
// analysis. One contract for failures: upstream errors surface as HTTP
// errors with a cleaned message — there is no never-fail fallback shape.
func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost, http.MethodGet) {
		return
	}

	var req models.AnalysisRequest

	switch r.Method {
	case http.MethodGet:
		req = models.AnalysisRequest{
			Kind:  models.RequestKindMarket,
			Query: r.URL.Query().Get("q"),
		}
	default:
		if !DecodeJSON(w, r, &req) {
			return
		}
		if req.Kind == "" {
			req.Kind = models.RequestKindMarket
		}
	}

	// A portfolio audit with no holdings in the body falls back to the
	// persisted portfolio.
	if req.Kind == models.RequestKindPortfolio && len(req.Holdings) == 0 {
		items, err := s.app.PortfolioService.List(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		req.Holdings = items
	}

	result, err := s.app.AnalysisService.Analyze(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, analysis.ErrValidationSkip):
			// Nothing happened: no upstream call, no view transition.
			w.WriteHeader(http.StatusNoContent)
		case errors.Is(err, analysis.ErrAnalysisInFlight):
			WriteError(w, http.StatusConflict, "An analysis is already running")
		case errors.Is(err, analysis.ErrNoClient):
			WriteError(w, http.StatusServiceUnavailable, "AI analysis is not configured")
		default:
			WriteError(w, http.StatusBadGateway, analysis.CleanUpstreamMessage(err.Error()))
		}
		return
	}

	WriteJSON(w, http.StatusOK, result)
}

// handleAnalysisState returns the current session snapshot.
func (s *Server) handleAnalysisState(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	WriteJSON(w, http.StatusOK, s.app.AnalysisService.State())
}

// handleAnalysisReset clears all analysis state (the retry action).
func (s *Server) handleAnalysisReset(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	s.app.AnalysisService.Reset()
	WriteJSON(w, http.StatusOK, s.app.AnalysisService.State())
}

// handleReportList handles GET /api/reports with an optional limit param.
func (s *Server) handleReportList(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	limit := 0
	if l := strings.TrimSpace(r.URL.Query().Get("limit")); l != "" {
		if v, ok := parsePositiveInt(l); ok {
			limit = v
		}
	}

	reports, err := s.app.Storage.ReportStore().List(r.Context(), limit)
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, reports)
}

// handleReportGet handles GET /api/reports/{id}.
func (s *Server) handleReportGet(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	report, err := s.app.Storage.ReportStore().Get(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, report)
}

// handleReportChart handles GET /api/reports/{id}/chart, rendering the
// report's trend series as a PNG.
func (s *Server) handleReportChart(w http.ResponseWriter, r *http.Request, id string) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	report, err := s.app.Storage.ReportStore().Get(r.Context(), id)
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	png, err := analysis.RenderTrendChart(report.Result.StructuredData)
	if err != nil {
		WriteError(w, http.StatusNotFound, err.Error())
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	w.Write(png)
}

func parsePositiveInt(s string) (int, bool) {
	v := 0
	for _, c := range s {
		if c < '0' || c > '9' {
			return 0, false
		}
		v = v*10 + int(c-'0')
		if v > 1000 {
			return 0, false
		}
	}
	return v, v > 0
}
