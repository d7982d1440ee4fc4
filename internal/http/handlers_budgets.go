package http

import (
	"net/http"

	"finboard/internal/core"
	applog "finboard/internal/log"
)

// handleListBudgets only ever returns the current month.
func (s *Server) handleListBudgets(w http.ResponseWriter, r *http.Request) {
	budgets, err := s.budgets.ListCurrent(r.Context())
	if err != nil {
		failure(w, r, applog.OpListBudgets, "Failed to fetch budgets", err)
		return
	}
	if budgets == nil {
		budgets = []core.Budget{}
	}
	writeJSON(w, http.StatusOK, budgets)
}

func (s *Server) handleUpsertBudget(w http.ResponseWriter, r *http.Request) {
	var in core.BudgetInput
	if !decodeJSON(w, r, &in) {
		return
	}
	saved, err := s.budgets.Upsert(r.Context(), in)
	if err != nil {
		failure(w, r, applog.OpUpsertBudget, "Failed to create budget", err)
		return
	}
	writeJSON(w, http.StatusCreated, saved)
}
