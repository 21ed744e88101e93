package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sohamkakraa/TabScape/internal/core"
)

func (r *SQLiteRepository) SavePreferences(ctx context.Context, userID string, p core.UserPreference) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO user_preferences (user_id, dashboard_layout, currency, location, theme)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   dashboard_layout = excluded.dashboard_layout,
		   currency = excluded.currency,
		   location = excluded.location,
		   theme = excluded.theme`,
		userID, p.DashboardLayout, p.Currency, p.Location, p.Theme)
	if err != nil {
		return fmt.Errorf("save preferences: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetPreferences(ctx context.Context, userID string) (core.UserPreference, error) {
	var p core.UserPreference
	err := r.db.QueryRowContext(ctx,
		`SELECT dashboard_layout, currency, location, theme
		 FROM user_preferences WHERE user_id = ?`, userID).
		Scan(&p.DashboardLayout, &p.Currency, &p.Location, &p.Theme)
	if err == sql.ErrNoRows {
		return core.UserPreference{}, ErrNotFound
	}
	if err != nil {
		return core.UserPreference{}, fmt.Errorf("get preferences: %w", err)
	}
	return p, nil
}
