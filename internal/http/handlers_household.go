package http

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"github.com/sohamkakraa/TabScape/internal/core"
	"github.com/sohamkakraa/TabScape/internal/storage"
)

type preferencesPayload struct {
	DashboardLayout string `json:"dashboardLayout"`
	Currency        string `json:"currency"`
	Location        string `json:"location"`
	Theme           string `json:"theme"`
}

func (s *Server) handleGetPreferences(w http.ResponseWriter, r *http.Request) {
	prefs, err := s.storage.GetPreferences(r.Context(), userID(r.Context()))
	if err != nil {
		respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, preferencesPayload{
		DashboardLayout: prefs.DashboardLayout,
		Currency:        prefs.Currency,
		Location:        prefs.Location,
		Theme:           prefs.Theme,
	})
}

func (s *Server) handleSavePreferences(w http.ResponseWriter, r *http.Request) {
	var req preferencesPayload
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if err := s.storage.SavePreferences(r.Context(), userID(r.Context()), core.UserPreference{
		DashboardLayout: req.DashboardLayout,
		Currency:        req.Currency,
		Location:        req.Location,
		Theme:           req.Theme,
	}); err != nil {
		respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, req)
}

type memberPayload struct {
	ID           string   `json:"id,omitempty"`
	Name         string   `json:"name"`
	Email        string   `json:"email,omitempty"`
	ShareDefault *float64 `json:"shareDefault,omitempty"`
}

type householdPayload struct {
	ID      string          `json:"id,omitempty"`
	Name    string          `json:"name"`
	Members []memberPayload `json:"members"`
}

func (s *Server) handleGetHousehold(w http.ResponseWriter, r *http.Request) {
	h, err := s.storage.GetHousehold(r.Context(), userID(r.Context()))
	if err != nil {
		respondStorageError(w, r, err)
		return
	}
	members, err := s.storage.ListMembers(r.Context(), h.ID)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}
	out := householdPayload{ID: h.ID, Name: h.Name, Members: make([]memberPayload, 0, len(members))}
	for _, m := range members {
		out.Members = append(out.Members, memberPayload{
			ID:           m.ID,
			Name:         m.Name,
			Email:        m.Email,
			ShareDefault: m.ShareDefault,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

// handleSaveHousehold upserts the household and its members. Members are
// upserted by ID so existing tab shares keep their references.
func (s *Server) handleSaveHousehold(w http.ResponseWriter, r *http.Request) {
	var req householdPayload
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		respondError(w, http.StatusBadRequest, "household name required")
		return
	}

	// The household ID is always the caller's own; an ID in the request
	// body is ignored so it can never collide with another user's row.
	uid := userID(r.Context())
	existing, err := s.storage.GetHousehold(r.Context(), uid)
	switch {
	case err == nil:
		req.ID = existing.ID
	case errors.Is(err, storage.ErrNotFound):
		req.ID = uuid.NewString()
	default:
		respondStorageError(w, r, err)
		return
	}
	if err := s.storage.SaveHousehold(r.Context(), uid, core.Household{ID: req.ID, Name: req.Name}); err != nil {
		respondStorageError(w, r, err)
		return
	}

	for i := range req.Members {
		m := &req.Members[i]
		if strings.TrimSpace(m.Name) == "" {
			respondError(w, http.StatusBadRequest, "member name required")
			return
		}
		if m.ID == "" {
			m.ID = uuid.NewString()
		}
		if err := s.storage.UpsertMember(r.Context(), req.ID, core.HouseholdMember{
			ID:           m.ID,
			Name:         m.Name,
			Email:        m.Email,
			ShareDefault: m.ShareDefault,
		}); err != nil {
			respondStorageError(w, r, err)
			return
		}
	}
	respondJSON(w, http.StatusOK, req)
}

// householdMemberIDs returns the IDs of the caller's household members. A
// user without a household yields an empty set.
func (s *Server) householdMemberIDs(r *http.Request) (map[string]bool, error) {
	h, err := s.storage.GetHousehold(r.Context(), userID(r.Context()))
	if errors.Is(err, storage.ErrNotFound) {
		return map[string]bool{}, nil
	}
	if err != nil {
		return nil, err
	}
	members, err := s.storage.ListMembers(r.Context(), h.ID)
	if err != nil {
		return nil, err
	}
	known := make(map[string]bool, len(members))
	for _, m := range members {
		known[m.ID] = true
	}
	return known, nil
}

type sharePayload struct {
	ID           string  `json:"id,omitempty"`
	TabID        string  `json:"tabId"`
	MemberID     string  `json:"memberId"`
	MemberName   string  `json:"memberName,omitempty"`
	SharePercent float64 `json:"sharePercent"`
	ShareAmount  float64 `json:"shareAmount"`
	PaidAmount   float64 `json:"paidAmount"`
	Status       string  `json:"status"`
}

type replaceSharesRequest struct {
	TabID  string `json:"tabId"`
	Shares []struct {
		MemberID     string  `json:"memberId"`
		SharePercent float64 `json:"sharePercent"`
	} `json:"shares"`
}

func (s *Server) handleListTabShares(w http.ResponseWriter, r *http.Request) {
	tabID := r.URL.Query().Get("tabId")
	shares, err := s.storage.ListTabShares(r.Context(), userID(r.Context()), tabID)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}
	out := make([]sharePayload, 0, len(shares))
	for _, sh := range shares {
		out = append(out, toSharePayload(sh))
	}
	respondJSON(w, http.StatusOK, out)
}

func toSharePayload(sh core.TabShare) sharePayload {
	return sharePayload{
		ID:           sh.ID,
		TabID:        sh.TabID,
		MemberID:     sh.MemberID,
		MemberName:   sh.MemberName,
		SharePercent: sh.SharePercent,
		ShareAmount:  sh.ShareAmount,
		PaidAmount:   sh.PaidAmount,
		Status:       string(sh.Status),
	}
}

// handleReplaceTabShares atomically replaces the split for a tab. The
// percentages must sum to 100 within a cent of tolerance; owed amounts come
// from largest-remainder apportionment so they always reconcile with the
// tab's balance.
func (s *Server) handleReplaceTabShares(w http.ResponseWriter, r *http.Request) {
	var req replaceSharesRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.TabID == "" {
		respondError(w, http.StatusBadRequest, "tabId required")
		return
	}
	if len(req.Shares) == 0 {
		respondError(w, http.StatusBadRequest, "at least one share required")
		return
	}

	var sumPct float64
	inputs := make([]core.ShareInput, 0, len(req.Shares))
	for _, sh := range req.Shares {
		if sh.MemberID == "" {
			respondError(w, http.StatusBadRequest, "memberId required on every share")
			return
		}
		if sh.SharePercent < 0 {
			respondError(w, http.StatusBadRequest, "share percent cannot be negative")
			return
		}
		sumPct += sh.SharePercent
		inputs = append(inputs, core.ShareInput{MemberID: sh.MemberID, SharePercent: sh.SharePercent})
	}
	if math.Abs(sumPct-100) > 0.01 {
		respondError(w, http.StatusBadRequest,
			fmt.Sprintf("share percentages must sum to 100, got %.2f", sumPct))
		return
	}

	uid := userID(r.Context())
	tab, err := s.storage.GetTab(r.Context(), uid, req.TabID)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	// Every share must reference a member of the caller's household;
	// anything else would otherwise surface as a foreign key failure.
	known, err := s.householdMemberIDs(r)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}
	for _, in := range inputs {
		if !known[in.MemberID] {
			respondError(w, http.StatusBadRequest,
				fmt.Sprintf("unknown household member %q", in.MemberID))
			return
		}
	}

	allocations := core.ComputeShares(tab.CurrentAmount, inputs)
	shares := make([]core.TabShare, 0, len(allocations))
	for _, alloc := range allocations {
		shares = append(shares, core.TabShare{
			ID:           uuid.NewString(),
			TabID:        req.TabID,
			MemberID:     alloc.MemberID,
			SharePercent: alloc.SharePercent,
			ShareAmount:  alloc.Amount,
			Status:       core.SharePending,
		})
	}
	if err := s.storage.ReplaceTabShares(r.Context(), uid, req.TabID, shares); err != nil {
		respondStorageError(w, r, err)
		return
	}

	saved, err := s.storage.ListTabShares(r.Context(), uid, req.TabID)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}
	out := make([]sharePayload, 0, len(saved))
	for _, sh := range saved {
		out = append(out, toSharePayload(sh))
	}
	respondJSON(w, http.StatusCreated, out)
}

type updateShareRequest struct {
	PaidAmount *float64 `json:"paidAmount,omitempty"`
	Status     *string  `json:"status,omitempty"`
}

// handleUpdateTabShare records a payment against a share. Status flips to
// paid automatically once the paid amount covers the owed amount; an
// explicit status in the request overrides the inference.
func (s *Server) handleUpdateTabShare(w http.ResponseWriter, r *http.Request) {
	var req updateShareRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	uid := userID(r.Context())
	share, err := s.storage.GetTabShare(r.Context(), uid, r.PathValue("id"))
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	paid := share.PaidAmount
	if req.PaidAmount != nil {
		if *req.PaidAmount < 0 {
			respondError(w, http.StatusBadRequest, "paid amount cannot be negative")
			return
		}
		paid = core.Round2(*req.PaidAmount)
	}

	var explicit *core.ShareStatus
	if req.Status != nil {
		status := core.ShareStatus(*req.Status)
		if status != core.SharePending && status != core.SharePaid {
			respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown status %q", *req.Status))
			return
		}
		explicit = &status
	}

	status := core.InferShareStatus(share.ShareAmount, paid, explicit)
	if err := s.storage.UpdateTabShare(r.Context(), uid, share.ID, paid, status); err != nil {
		respondStorageError(w, r, err)
		return
	}

	share.PaidAmount = paid
	share.Status = status
	respondJSON(w, http.StatusOK, toSharePayload(share))
}
