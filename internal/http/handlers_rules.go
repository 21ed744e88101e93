package http

import (
	"fmt"
	"net/http"

	"github.com/google/uuid"

	"github.com/sohamkakraa/TabScape/internal/core"
)

type ruleRequest struct {
	Type     string `json:"type"`
	Category string `json:"category"`

	// merchant rule
	Merchant string `json:"merchant,omitempty"`

	// recurring rule
	Title     string   `json:"title,omitempty"`
	DueDay    int      `json:"dueDay,omitempty"`
	Amount    float64  `json:"amount,omitempty"`
	MustPay   bool     `json:"mustPay,omitempty"`
	RangeLow  *float64 `json:"rangeLow,omitempty"`
	RangeHigh *float64 `json:"rangeHigh,omitempty"`
}

type ruleResponse struct {
	ID        string   `json:"id"`
	Type      string   `json:"type"`
	Category  string   `json:"category"`
	Merchant  string   `json:"merchant,omitempty"`
	Title     string   `json:"title,omitempty"`
	DueDay    int      `json:"dueDay,omitempty"`
	Amount    float64  `json:"amount,omitempty"`
	MustPay   bool     `json:"mustPay,omitempty"`
	RangeLow  *float64 `json:"rangeLow,omitempty"`
	RangeHigh *float64 `json:"rangeHigh,omitempty"`
}

func toRuleResponse(rule core.Rule) ruleResponse {
	switch v := rule.(type) {
	case core.MerchantRule:
		return ruleResponse{
			ID:       v.ID,
			Type:     "merchant",
			Category: string(v.Category),
			Merchant: v.Merchant,
		}
	case core.RecurringRule:
		return ruleResponse{
			ID:        v.ID,
			Type:      "recurring",
			Category:  string(v.Category),
			Title:     v.Title,
			DueDay:    v.DueDay,
			Amount:    v.Amount,
			MustPay:   v.MustPay,
			RangeLow:  v.RangeLow,
			RangeHigh: v.RangeHigh,
		}
	}
	return ruleResponse{ID: rule.RuleID(), Category: string(rule.RuleCategory())}
}

func (s *Server) handleListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := s.rules.List(r.Context(), userID(r.Context()))
	if err != nil {
		respondStorageError(w, r, err)
		return
	}
	out := make([]ruleResponse, 0, len(rules))
	for _, rule := range rules {
		out = append(out, toRuleResponse(rule))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateRule(w http.ResponseWriter, r *http.Request) {
	var req ruleRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	var rule core.Rule
	switch req.Type {
	case "merchant":
		rule = core.MerchantRule{
			ID:       uuid.NewString(),
			Merchant: req.Merchant,
			Category: core.Category(req.Category),
		}
	case "recurring":
		rule = core.RecurringRule{
			ID:        uuid.NewString(),
			Title:     req.Title,
			Category:  core.Category(req.Category),
			DueDay:    req.DueDay,
			Amount:    req.Amount,
			MustPay:   req.MustPay,
			RangeLow:  req.RangeLow,
			RangeHigh: req.RangeHigh,
		}
	default:
		respondError(w, http.StatusBadRequest, fmt.Sprintf("unknown rule type %q, want merchant or recurring", req.Type))
		return
	}

	if err := validateRule(rule); err != nil {
		respondStorageError(w, r, fmt.Errorf("validate rule: %w", err))
		return
	}
	if err := s.rules.Create(r.Context(), userID(r.Context()), rule); err != nil {
		respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusCreated, toRuleResponse(rule))
}

func validateRule(rule core.Rule) error {
	switch v := rule.(type) {
	case core.MerchantRule:
		return v.Validate()
	case core.RecurringRule:
		return v.Validate()
	}
	return fmt.Errorf("unknown rule variant")
}

func (s *Server) handleDeleteRule(w http.ResponseWriter, r *http.Request) {
	if err := s.rules.Delete(r.Context(), userID(r.Context()), r.PathValue("id")); err != nil {
		respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
