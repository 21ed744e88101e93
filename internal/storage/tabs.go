package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sohamkakraa/TabScape/internal/core"
)

func (r *SQLiteRepository) CreateTab(ctx context.Context, userID string, t core.Tab) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO tabs (id, user_id, name, merchant, category, due_day, spend_limit, current_amount, status)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		t.ID, userID, t.Name, t.Merchant, string(t.Category), t.DueDay, t.Limit, t.CurrentAmount, string(t.Status))
	if err != nil {
		return fmt.Errorf("create tab: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetTab(ctx context.Context, userID, id string) (core.Tab, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, name, merchant, category, due_day, spend_limit, current_amount, status, created_at
		 FROM tabs WHERE id = ? AND user_id = ?`, id, userID)
	return scanTab(row)
}

func (r *SQLiteRepository) ListTabs(ctx context.Context, userID string) ([]core.Tab, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, merchant, category, due_day, spend_limit, current_amount, status, created_at
		 FROM tabs WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list tabs: %w", err)
	}
	defer rows.Close()

	var tabs []core.Tab
	for rows.Next() {
		t, err := scanTab(rows)
		if err != nil {
			return nil, err
		}
		tabs = append(tabs, t)
	}
	return tabs, rows.Err()
}

// CloseTab marks the tab closed and zeroes its balance. Closing is terminal;
// an already-closed tab returns ErrNotFound.
func (r *SQLiteRepository) CloseTab(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tabs SET status = 'closed', current_amount = 0
		 WHERE id = ? AND user_id = ? AND status = 'open'`, id, userID)
	if err != nil {
		return fmt.Errorf("close tab: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("close tab rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanTab(row rowScanner) (core.Tab, error) {
	var t core.Tab
	var category, status string
	err := row.Scan(&t.ID, &t.Name, &t.Merchant, &category, &t.DueDay,
		&t.Limit, &t.CurrentAmount, &status, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return core.Tab{}, ErrNotFound
	}
	if err != nil {
		return core.Tab{}, fmt.Errorf("scan tab: %w", err)
	}
	t.Category = core.Category(category)
	t.Status = core.TabStatus(status)
	return t, nil
}
