package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sohamkakraa/TabScape/internal/core"
)

// ReplaceExpenseSeries swaps the user's full expense history atomically.
// Callers normalize the series first; rows land here already deduped and
// sorted.
func (r *SQLiteRepository) ReplaceExpenseSeries(ctx context.Context, userID string, series []core.ExpensePoint) error {
	return r.inTx(func(tx *sql.Tx) error {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM expense_points WHERE user_id = ?`, userID); err != nil {
			return fmt.Errorf("delete expense points: %w", err)
		}
		for _, p := range series {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO expense_points (user_id, month, amount) VALUES (?, ?, ?)`,
				userID, p.Month, p.Amount); err != nil {
				return fmt.Errorf("insert expense point: %w", err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) GetExpenseSeries(ctx context.Context, userID string) ([]core.ExpensePoint, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT month, amount FROM expense_points WHERE user_id = ? ORDER BY month`, userID)
	if err != nil {
		return nil, fmt.Errorf("get expense series: %w", err)
	}
	defer rows.Close()

	var series []core.ExpensePoint
	for rows.Next() {
		var p core.ExpensePoint
		if err := rows.Scan(&p.Month, &p.Amount); err != nil {
			return nil, fmt.Errorf("scan expense point: %w", err)
		}
		series = append(series, p)
	}
	return series, rows.Err()
}
