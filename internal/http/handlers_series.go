package http

import (
	"net/http"
	"strconv"
	"time"

	"github.com/sohamkakraa/TabScape/internal/core"
)

type expensePointPayload struct {
	Month  string  `json:"month"`
	Amount float64 `json:"amount"`
}

func (s *Server) handleGetExpenseSeries(w http.ResponseWriter, r *http.Request) {
	series, err := s.storage.GetExpenseSeries(r.Context(), userID(r.Context()))
	if err != nil {
		respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toSeriesPayload(series))
}

func toSeriesPayload(series []core.ExpensePoint) []expensePointPayload {
	out := make([]expensePointPayload, 0, len(series))
	for _, p := range series {
		out = append(out, expensePointPayload{Month: p.Month, Amount: p.Amount})
	}
	return out
}

// handleSaveExpenseSeries replaces the stored history. The input is
// normalized first: malformed month labels drop out, duplicate months keep
// the last value, and the result sorts chronologically.
func (s *Server) handleSaveExpenseSeries(w http.ResponseWriter, r *http.Request) {
	var req []expensePointPayload
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}

	series := make([]core.ExpensePoint, 0, len(req))
	for _, p := range req {
		series = append(series, core.ExpensePoint{Month: p.Month, Amount: p.Amount})
	}
	normalized := core.NormalizeSeries(series)

	if err := s.storage.ReplaceExpenseSeries(r.Context(), userID(r.Context()), normalized); err != nil {
		respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, toSeriesPayload(normalized))
}

type forecastPointPayload struct {
	Month    string   `json:"month"`
	Actual   *float64 `json:"actual,omitempty"`
	Forecast *float64 `json:"forecast,omitempty"`
}

func (s *Server) handleForecast(w http.ResponseWriter, r *http.Request) {
	months := 3
	if v := r.URL.Query().Get("months"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 || n > 24 {
			respondError(w, http.StatusBadRequest, "months must be an integer between 1 and 24")
			return
		}
		months = n
	}

	series, err := s.storage.GetExpenseSeries(r.Context(), userID(r.Context()))
	if err != nil {
		respondStorageError(w, r, err)
		return
	}

	points := core.BuildForecastSeries(series, months)
	out := make([]forecastPointPayload, 0, len(points))
	for _, p := range points {
		out = append(out, forecastPointPayload{Month: p.Month, Actual: p.Actual, Forecast: p.Forecast})
	}
	respondJSON(w, http.StatusOK, out)
}

type notificationPayload struct {
	ID        string `json:"id"`
	Type      string `json:"type"`
	Title     string `json:"title"`
	Message   string `json:"message"`
	CreatedAt string `json:"createdAt"`
	ReadAt    string `json:"readAt,omitempty"`
}

func (s *Server) handleListNotifications(w http.ResponseWriter, r *http.Request) {
	unreadOnly := r.URL.Query().Get("unread") == "true"
	notifs, err := s.storage.ListNotifications(r.Context(), userID(r.Context()), unreadOnly)
	if err != nil {
		respondStorageError(w, r, err)
		return
	}
	out := make([]notificationPayload, 0, len(notifs))
	for _, n := range notifs {
		p := notificationPayload{
			ID:        n.ID,
			Type:      n.Type,
			Title:     n.Title,
			Message:   n.Message,
			CreatedAt: n.CreatedAt.Format(time.RFC3339),
		}
		if n.ReadAt != nil {
			p.ReadAt = n.ReadAt.Format(time.RFC3339)
		}
		out = append(out, p)
	}
	respondJSON(w, http.StatusOK, out)
}

type markReadRequest struct {
	ID string `json:"id"`
}

func (s *Server) handleMarkNotificationRead(w http.ResponseWriter, r *http.Request) {
	var req markReadRequest
	if err := decodeJSON(w, r, &req); err != nil {
		respondError(w, http.StatusBadRequest, err.Error())
		return
	}
	if req.ID == "" {
		respondError(w, http.StatusBadRequest, "id required")
		return
	}
	if err := s.storage.MarkNotificationRead(r.Context(), userID(r.Context()), req.ID); err != nil {
		respondStorageError(w, r, err)
		return
	}
	respondJSON(w, http.StatusNoContent, nil)
}
