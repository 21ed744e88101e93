package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/sohamkakraa/TabScape/internal/core"
)

// SavePaydaySettings upserts the user's single payday settings row.
func (r *SQLiteRepository) SavePaydaySettings(ctx context.Context, userID string, s core.PaydaySettings) error {
	cats, err := json.Marshal(s.MustPayCategories)
	if err != nil {
		return fmt.Errorf("marshal must-pay categories: %w", err)
	}
	_, err = r.db.ExecContext(ctx,
		`INSERT INTO payday_settings (user_id, salary_day, current_balance, buffer, must_pay_categories)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET
		   salary_day = excluded.salary_day,
		   current_balance = excluded.current_balance,
		   buffer = excluded.buffer,
		   must_pay_categories = excluded.must_pay_categories`,
		userID, s.SalaryDay, s.CurrentBalance, s.Buffer, string(cats))
	if err != nil {
		return fmt.Errorf("save payday settings: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetPaydaySettings(ctx context.Context, userID string) (core.PaydaySettings, error) {
	var s core.PaydaySettings
	var cats string
	err := r.db.QueryRowContext(ctx,
		`SELECT salary_day, current_balance, buffer, must_pay_categories
		 FROM payday_settings WHERE user_id = ?`, userID).
		Scan(&s.SalaryDay, &s.CurrentBalance, &s.Buffer, &cats)
	if err == sql.ErrNoRows {
		return core.PaydaySettings{}, ErrNotFound
	}
	if err != nil {
		return core.PaydaySettings{}, fmt.Errorf("get payday settings: %w", err)
	}
	if err := json.Unmarshal([]byte(cats), &s.MustPayCategories); err != nil {
		return core.PaydaySettings{}, fmt.Errorf("unmarshal must-pay categories: %w", err)
	}
	return s, nil
}

func (r *SQLiteRepository) CreateIncomeSchedule(ctx context.Context, userID string, in core.IncomeSchedule) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO income_schedules (id, user_id, label, day_of_month, amount, active)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		in.ID, userID, in.Label, in.DayOfMonth, in.Amount, in.Active)
	if err != nil {
		return fmt.Errorf("create income schedule: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) ListIncomeSchedules(ctx context.Context, userID string) ([]core.IncomeSchedule, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, label, day_of_month, amount, active
		 FROM income_schedules WHERE user_id = ? ORDER BY day_of_month, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list income schedules: %w", err)
	}
	defer rows.Close()

	var schedules []core.IncomeSchedule
	for rows.Next() {
		var in core.IncomeSchedule
		if err := rows.Scan(&in.ID, &in.Label, &in.DayOfMonth, &in.Amount, &in.Active); err != nil {
			return nil, fmt.Errorf("scan income schedule: %w", err)
		}
		schedules = append(schedules, in)
	}
	return schedules, rows.Err()
}

func (r *SQLiteRepository) DeleteIncomeSchedule(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM income_schedules WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete income schedule: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete income schedule rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
