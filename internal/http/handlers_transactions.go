package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"finboard/internal/core"
	applog "finboard/internal/log"
)

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	txs, err := s.transactions.List(r.Context())
	if err != nil {
		failure(w, r, applog.OpListTransactions, "Failed to fetch transactions", err)
		return
	}
	if txs == nil {
		txs = []core.Transaction{}
	}
	writeJSON(w, http.StatusOK, txs)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var in core.TransactionInput
	if !decodeJSON(w, r, &in) {
		return
	}
	created, err := s.transactions.Create(r.Context(), in)
	if err != nil {
		failure(w, r, applog.OpCreateTransaction, "Failed to create transaction", err)
		return
	}
	writeJSON(w, http.StatusCreated, created)
}

func (s *Server) handleUpdateTransaction(w http.ResponseWriter, r *http.Request) {
	var in core.TransactionInput
	if !decodeJSON(w, r, &in) {
		return
	}
	updated, err := s.transactions.Update(r.Context(), chi.URLParam(r, "id"), in)
	if err != nil {
		failure(w, r, applog.OpUpdateTransaction, "Failed to update transaction", err)
		return
	}
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	if err := s.transactions.Delete(r.Context(), chi.URLParam(r, "id")); err != nil {
		failure(w, r, applog.OpDeleteTransaction, "Failed to delete transaction", err)
		return
	}
	writeJSON(w, http.StatusOK, successResponse{Success: true})
}
