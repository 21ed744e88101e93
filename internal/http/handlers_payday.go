package http

import (
	"fmt"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/sohamkakraa/TabScape/internal/core"
)

type paydaySettingsPayload struct {
	SalaryDay         int      `json:"salaryDay"`
	CurrentBalance    float64  `json:"currentBalance"`
	Buffer            float64  `json:"buffer"`
	MustPayCategories []string `json:"mustPayCategories"`
}

func (s *Server) handleGetPaydaySettings(w http.ResponseWriter, r *http.Request) {
	settings, err := s.storage.GetPaydaySettings(r.Context(), userID(r.Context()))
	if err != nil {
		respondStorageError(w, r, err)
		return
	}
	out := paydaySettingsPayload{
		SalaryDay:         settings.SalaryDay,
		CurrentBalance:    settings.CurrentBalance,
		Buffer:            settings.Buffer,
		MustPayCategories: make([]string, 0, len(settings.MustPayCategories)),
	}
	for _, c := range settings.MustPayCategories {
		out.MustPayCategories = append(out.MustPayCategories, string(c))
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleSavePaydaySettings(w http.ResponseWriter, r *http.Request) {
	var req paydaySettingsPayload
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	settings := core.PaydaySettings{
		SalaryDay:      req.SalaryDay,
		CurrentBalance: req.CurrentBalance,
		Buffer:         req.Buffer,
	}
	for _, c := range req.MustPayCategories {
		settings.MustPayCategories = append(settings.MustPayCategories, core.Category(c))
	}
	if err := settings.Validate(); err != nil {
		respondStorageError(w, r, fmt.Errorf("validate payday settings: %w", err))
		return
	}

	if err := s.storage.SavePaydaySettings(r.Context(), userID(r.Context()), settings); err != nil {
		respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, req)
}

type planItemPayload struct {
	ID        string   `json:"id"`
	Name      string   `json:"name"`
	Amount    float64  `json:"amount"`
	RangeLow  *float64 `json:"rangeLow,omitempty"`
	RangeHigh *float64 `json:"rangeHigh,omitempty"`
	DueDay    int      `json:"dueDay"`
	DueDate   string   `json:"dueDate"`
	MustPay   bool     `json:"mustPay"`
	Source    string   `json:"source"`
	Category  string   `json:"category"`
}

type incomeEventPayload struct {
	ID     string  `json:"id"`
	Label  string  `json:"label"`
	Date   string  `json:"date"`
	Amount float64 `json:"amount"`
}

type planSummaryPayload struct {
	Payday              string              `json:"payday"`
	DaysToPayday        int                 `json:"daysToPayday"`
	MustPayTotal        float64             `json:"mustPayTotal"`
	IncomeBeforePayday  float64             `json:"incomeBeforePayday"`
	UpcomingIncomeTotal float64             `json:"upcomingIncomeTotal"`
	SafeToSpend         float64             `json:"safeToSpend"`
	NextIncome          *incomeEventPayload `json:"nextIncome,omitempty"`
}

type envelopePayload struct {
	Category string  `json:"category"`
	Amount   float64 `json:"amount"`
}

type planPayload struct {
	Items     []planItemPayload  `json:"items"`
	Summary   planSummaryPayload `json:"summary"`
	Envelopes []envelopePayload  `json:"envelopes"`
}

// handlePaydayPlan computes the plan fresh per request. Nothing is cached
// or persisted; two identical calls can differ only via the clock.
func (s *Server) handlePaydayPlan(w http.ResponseWriter, r *http.Request) {
	plan, err := s.planner.BuildPlan(r.Context(), userID(r.Context()), time.Now())
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	out := planPayload{
		Items:     make([]planItemPayload, 0, len(plan.Items)),
		Envelopes: make([]envelopePayload, 0, len(plan.Envelopes)),
	}
	for _, item := range plan.Items {
		out.Items = append(out.Items, planItemPayload{
			ID:        item.ID,
			Name:      item.Name,
			Amount:    item.Amount,
			RangeLow:  item.RangeLow,
			RangeHigh: item.RangeHigh,
			DueDay:    item.DueDay,
			DueDate:   item.DueDate.Format("2006-01-02"),
			MustPay:   item.MustPay,
			Source:    string(item.Source),
			Category:  string(item.Category),
		})
	}
	out.Summary = planSummaryPayload{
		Payday:              plan.Summary.Payday.Format("2006-01-02"),
		DaysToPayday:        plan.Summary.DaysToPayday,
		MustPayTotal:        plan.Summary.MustPayTotal,
		IncomeBeforePayday:  plan.Summary.IncomeBeforePayday,
		UpcomingIncomeTotal: plan.Summary.UpcomingIncomeTotal,
		SafeToSpend:         plan.Summary.SafeToSpend,
	}
	if ni := plan.Summary.NextIncome; ni != nil {
		out.Summary.NextIncome = &incomeEventPayload{
			ID:     ni.ID,
			Label:  ni.Label,
			Date:   ni.Date.Format("2006-01-02"),
			Amount: ni.Amount,
		}
	}
	for _, env := range plan.Envelopes {
		out.Envelopes = append(out.Envelopes, envelopePayload{
			Category: string(env.Category),
			Amount:   env.Amount,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

type incomeSchedulePayload struct {
	ID         string  `json:"id,omitempty"`
	Label      string  `json:"label"`
	DayOfMonth int     `json:"dayOfMonth"`
	Amount     float64 `json:"amount"`
	Active     bool    `json:"active"`
}

func (s *Server) handleListIncome(w http.ResponseWriter, r *http.Request) {
	schedules, err := s.storage.ListIncomeSchedules(r.Context(), userID(r.Context()))
	if err != nil {
		respondStorageError(w, r, err)
		return
	}
	// Deactivated schedules stay in storage for history but are not listed.
	out := make([]incomeSchedulePayload, 0, len(schedules))
	for _, in := range schedules {
		if !in.Active {
			continue
		}
		out = append(out, incomeSchedulePayload{
			ID:         in.ID,
			Label:      in.Label,
			DayOfMonth: in.DayOfMonth,
			Amount:     in.Amount,
			Active:     in.Active,
		})
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateIncome(w http.ResponseWriter, r *http.Request) {
	var req incomeSchedulePayload
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	schedule := core.IncomeSchedule{
		ID:         uuid.NewString(),
		Label:      req.Label,
		DayOfMonth: req.DayOfMonth,
		Amount:     req.Amount,
		Active:     req.Active,
	}
	if err := schedule.Validate(); err != nil {
		respondStorageError(w, r, fmt.Errorf("validate income schedule: %w", err))
		return
	}
	if err := s.storage.CreateIncomeSchedule(r.Context(), userID(r.Context()), schedule); err != nil {
		respondStorageError(w, r, err)
		return
	}
	req.ID = schedule.ID
	respondJSON(w, http.StatusCreated, req)
}

func (s *Server) handleDeleteIncome(w http.ResponseWriter, r *http.Request) {
	if err := s.storage.DeleteIncomeSchedule(r.Context(), userID(r.Context()), r.PathValue("id")); err != nil {
		respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
