package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/sohamkakraa/TabScape/internal/core"
	applog "github.com/sohamkakraa/TabScape/internal/log"
)

type tagPayload struct {
	Label string `json:"label"`
	Color string `json:"color,omitempty"`
}

type transactionRequest struct {
	TabID      string       `json:"tabId"`
	Date       string       `json:"date"`
	Merchant   string       `json:"merchant"`
	Memo       string       `json:"memo,omitempty"`
	Amount     float64      `json:"amount"`
	Category   string       `json:"category"`
	ReceiptURL string       `json:"receiptUrl,omitempty"`
	Type       string       `json:"type,omitempty"`
	Tags       []tagPayload `json:"tags,omitempty"`
}

type transactionResponse struct {
	ID         string       `json:"id"`
	TabID      string       `json:"tabId"`
	Date       string       `json:"date"`
	Merchant   string       `json:"merchant"`
	Memo       string       `json:"memo,omitempty"`
	Amount     float64      `json:"amount"`
	Category   string       `json:"category"`
	ReceiptURL string       `json:"receiptUrl,omitempty"`
	Type       string       `json:"type"`
	Tags       []tagPayload `json:"tags,omitempty"`
	CreatedAt  string       `json:"createdAt"`
}

func toTransactionResponse(t core.Transaction) transactionResponse {
	resp := transactionResponse{
		ID:         t.ID,
		TabID:      t.TabID,
		Date:       t.Date.Format("2006-01-02"),
		Merchant:   t.Merchant,
		Memo:       t.Memo,
		Amount:     t.Amount,
		Category:   string(t.Category),
		ReceiptURL: t.ReceiptURL,
		Type:       string(t.Type),
		CreatedAt:  t.CreatedAt.Format(time.RFC3339),
	}
	for _, tag := range t.Tags {
		resp.Tags = append(resp.Tags, tagPayload{Label: tag.Label, Color: tag.Color})
	}
	return resp
}

func (s *Server) handleListTransactions(w http.ResponseWriter, r *http.Request) {
	tabID := r.URL.Query().Get("tabId")
	txs, err := s.transactions.List(r.Context(), userID(r.Context()), tabID)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}
	out := make([]transactionResponse, 0, len(txs))
	for _, t := range txs {
		out = append(out, toTransactionResponse(t))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTransaction(w http.ResponseWriter, r *http.Request) {
	var req transactionRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid date %q, want YYYY-MM-DD", req.Date))
		return
	}

	tx := core.Transaction{
		TabID:      req.TabID,
		Date:       date,
		Merchant:   req.Merchant,
		Memo:       req.Memo,
		Amount:     req.Amount,
		Category:   core.Category(req.Category),
		ReceiptURL: req.ReceiptURL,
		Type:       core.TransactionType(req.Type),
	}
	for _, tag := range req.Tags {
		tx.Tags = append(tx.Tags, core.TransactionTag{Label: tag.Label, Color: tag.Color})
	}

	created, err := s.transactions.Create(r.Context(), userID(r.Context()), tx)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	s.logger.LogTransactionRecorded(r.Context(), created.ID, created.TabID,
		created.Merchant, created.Amount, string(created.Category))
	respondJSON(w, http.StatusCreated, toTransactionResponse(created))
}

func (s *Server) handleDeleteTransaction(w http.ResponseWriter, r *http.Request) {
	txID := r.PathValue("id")
	if err := s.transactions.Delete(r.Context(), userID(r.Context()), txID); err != nil {
		respondStorageError(w, r, err)
		return
	}
	slog.InfoContext(r.Context(), "Transaction deleted",
		applog.FieldComponent, applog.ComponentTab,
		applog.FieldOperation, applog.OpDelete,
		applog.FieldTransactionID, txID)
	respondJSON(w, http.StatusNoContent, nil)
}
