package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sohamkakraa/TabScape/internal/core"
	applog "github.com/sohamkakraa/TabScape/internal/log"
)

type tabRequest struct {
	Name     string  `json:"name"`
	Merchant string  `json:"merchant"`
	Category string  `json:"category"`
	DueDay   int     `json:"dueDay"`
	Limit    float64 `json:"limit"`
}

type tabResponse struct {
	ID            string  `json:"id"`
	Name          string  `json:"name"`
	Merchant      string  `json:"merchant"`
	Category      string  `json:"category"`
	DueDay        int     `json:"dueDay"`
	Limit         float64 `json:"limit"`
	CurrentAmount float64 `json:"currentAmount"`
	Status        string  `json:"status"`
	CreatedAt     string  `json:"createdAt"`
}

func toTabResponse(t core.Tab) tabResponse {
	return tabResponse{
		ID:            t.ID,
		Name:          t.Name,
		Merchant:      t.Merchant,
		Category:      string(t.Category),
		DueDay:        t.DueDay,
		Limit:         t.Limit,
		CurrentAmount: t.CurrentAmount,
		Status:        string(t.Status),
		CreatedAt:     t.CreatedAt.Format(time.RFC3339),
	}
}

func (s *Server) handleListTabs(w http.ResponseWriter, r *http.Request) {
	tabs, err := s.storage.ListTabs(r.Context(), userID(r.Context()))
	if err != nil {
		respondStorageError(w, r, err)
		return
	}
	out := make([]tabResponse, 0, len(tabs))
	for _, t := range tabs {
		out = append(out, toTabResponse(t))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTab(w http.ResponseWriter, r *http.Request) {
	var req tabRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	tab := core.Tab{
		ID:       uuid.NewString(),
		Name:     req.Name,
		Merchant: req.Merchant,
		Category: core.Category(req.Category),
		DueDay:   req.DueDay,
		Limit:    req.Limit,
		Status:   core.TabOpen,
	}
	if err := tab.Validate(); err != nil {
		respondStorageError(w, r, fmt.Errorf("validate tab: %w", err))
		return
	}

	uid := userID(r.Context())
	if err := s.storage.CreateTab(r.Context(), uid, tab); err != nil {
		respondStorageError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Tab created",
		applog.FieldComponent, applog.ComponentTab,
		applog.FieldUserID, uid,
		applog.FieldTabID, tab.ID,
		applog.FieldMerchant, tab.Merchant)

	created, err := s.storage.GetTab(r.Context(), uid, tab.ID)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toTabResponse(created))
}

// handleCloseTab settles a tab. Closing is terminal and zeroes the balance.
func (s *Server) handleCloseTab(w http.ResponseWriter, r *http.Request) {
	id := r.PathValue("id")
	uid := userID(r.Context())
	if err := s.storage.CloseTab(r.Context(), uid, id); err != nil {
		respondStorageError(w, r, err)
		return
	}
	slog.InfoContext(r.Context(), "Tab closed",
		applog.FieldComponent, applog.ComponentTab,
		applog.FieldUserID, uid,
		applog.FieldTabID, id)
	respondJSON(w, http.StatusNoContent, nil)
}
