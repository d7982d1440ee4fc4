package http

import (
	"net/http"
	"strings"

	"finboard/internal/core"
	applog "finboard/internal/log"
)

// handleDashboard serves every derived view for ?month=YYYY-MM, defaulting
// to the current month.
func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	ref := s.dashboard.CurrentMonth()
	if v := strings.TrimSpace(r.URL.Query().Get("month")); v != "" {
		m, err := core.ParseMonth(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, msgInvalidMonth)
			return
		}
		ref = m
	}

	d, err := s.dashboard.Build(r.Context(), ref)
	if err != nil {
		failure(w, r, applog.OpLoadDashboard, "Failed to load dashboard", err)
		return
	}
	writeJSON(w, http.StatusOK, d)
}

func (s *Server) handleCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.categories.Categories(r.Context())
	if err != nil {
		failure(w, r, applog.OpListCategories, "Failed to fetch categories", err)
		return
	}
	if cats == nil {
		cats = []string{}
	}
	writeJSON(w, http.StatusOK, cats)
}
