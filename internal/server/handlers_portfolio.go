package server

import (
	"net/http"

	"github.com/bobmcallan/marketlens/internal/models"
)

// handlePortfolioRoot handles GET (list) and POST (add) on /api/portfolio.
func (s *Server) handlePortfolioRoot(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		items, err := s.app.PortfolioService.List(r.Context())
		if err != nil {
			WriteError(w, http.StatusInternalServerError, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, items)

	case http.MethodPost:
		var item models.PortfolioItem
		if !DecodeJSON(w, r, &item) {
			return
		}
		created, err := s.app.PortfolioService.Add(r.Context(), item)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusCreated, created)

	default:
		RequireMethod(w, r, http.MethodGet, http.MethodPost)
	}
}

// handlePortfolioItem handles PUT and DELETE on /api/portfolio/{id}.
func (s *Server) handlePortfolioItem(w http.ResponseWriter, r *http.Request, id string) {
	switch r.Method {
	case http.MethodPut:
		var item models.PortfolioItem
		if !DecodeJSON(w, r, &item) {
			return
		}
		item.ID = id
		updated, err := s.app.PortfolioService.Update(r.Context(), item)
		if err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		WriteJSON(w, http.StatusOK, updated)

	case http.MethodDelete:
		if err := s.app.PortfolioService.Delete(r.Context(), id); err != nil {
			WriteError(w, http.StatusBadRequest, err.Error())
			return
		}
		w.WriteHeader(http.StatusNoContent)

	default:
		RequireMethod(w, r, http.MethodPut, http.MethodDelete)
	}
}

// handlePortfolioSimulate handles POST /api/portfolio/simulate.
func (s *Server) handlePortfolioSimulate(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}
	items, err := s.app.PortfolioService.Simulate(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, items)
}

// handlePortfolioSummary handles GET /api/portfolio/summary.
func (s *Server) handlePortfolioSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}
	summary, err := s.app.PortfolioService.Summary(r.Context())
	if err != nil {
		WriteError(w, http.StatusInternalServerError, err.Error())
		return
	}
	WriteJSON(w, http.StatusOK, summary)
}
