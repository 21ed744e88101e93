package storage

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/sohamkakraa/TabScape/internal/core"
)

// Sync statuses for the ledger export pipeline.
const (
	SyncPending = "pending"
	SyncSynced  = "synced"
	SyncError   = "error"
)

// CreateTransaction inserts the transaction, moves the tab's balance by the
// signed amount, stores the tags, and raises a limit notification when the
// new balance crosses the tab's limit (or 90% of it). All in one database
// transaction.
func (r *SQLiteRepository) CreateTransaction(ctx context.Context, userID string, t core.Transaction) error {
	return r.inTx(func(tx *sql.Tx) error {
		var tabName string
		var limit, current float64
		err := tx.QueryRowContext(ctx,
			`SELECT name, spend_limit, current_amount FROM tabs
			 WHERE id = ? AND user_id = ? AND status = 'open'`,
			t.TabID, userID).Scan(&tabName, &limit, &current)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("load tab for transaction: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`INSERT INTO transactions (id, user_id, tab_id, tx_date, merchant, memo, amount, category, receipt_url, tx_type, sync_status)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			t.ID, userID, t.TabID, t.Date, t.Merchant, t.Memo, t.Amount,
			string(t.Category), t.ReceiptURL, string(t.Type), SyncPending); err != nil {
			return fmt.Errorf("insert transaction: %w", err)
		}

		newAmount := core.Round2(current + t.Amount)
		if _, err := tx.ExecContext(ctx,
			`UPDATE tabs SET current_amount = ? WHERE id = ?`, newAmount, t.TabID); err != nil {
			return fmt.Errorf("update tab balance: %w", err)
		}

		for _, tag := range t.Tags {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO transaction_tags (id, transaction_id, label, color) VALUES (?, ?, ?, ?)`,
				tag.ID, t.ID, tag.Label, tag.Color); err != nil {
				return fmt.Errorf("insert transaction tag: %w", err)
			}
		}

		if limit > 0 {
			var notifType, title string
			switch {
			case newAmount >= limit:
				notifType = "limit_exceeded"
				title = fmt.Sprintf("%s is over its limit", tabName)
			case newAmount >= 0.9*limit:
				notifType = "limit_warning"
				title = fmt.Sprintf("%s is at 90%% of its limit", tabName)
			}
			if notifType != "" {
				message := fmt.Sprintf("Balance %.2f of %.2f", newAmount, limit)
				if _, err := tx.ExecContext(ctx,
					`INSERT INTO notifications (id, user_id, notif_type, title, message) VALUES (?, ?, ?, ?, ?)`,
					uuid.NewString(), userID, notifType, title, message); err != nil {
					return fmt.Errorf("insert limit notification: %w", err)
				}
			}
		}

		return nil
	})
}

// DeleteTransaction removes the transaction and its tags and backs its amount
// out of the tab's balance, floored at zero, in one database transaction.
func (r *SQLiteRepository) DeleteTransaction(ctx context.Context, userID, id string) error {
	return r.inTx(func(tx *sql.Tx) error {
		var tabID string
		var amount float64
		err := tx.QueryRowContext(ctx,
			`SELECT tab_id, amount FROM transactions WHERE id = ? AND user_id = ?`,
			id, userID).Scan(&tabID, &amount)
		if err == sql.ErrNoRows {
			return ErrNotFound
		}
		if err != nil {
			return fmt.Errorf("load transaction for delete: %w", err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM transaction_tags WHERE transaction_id = ?`, id); err != nil {
			return fmt.Errorf("delete transaction tags: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM transactions WHERE id = ?`, id); err != nil {
			return fmt.Errorf("delete transaction: %w", err)
		}
		if _, err := tx.ExecContext(ctx,
			`UPDATE tabs SET current_amount = MAX(0, ROUND(current_amount - ?, 2)) WHERE id = ?`,
			amount, tabID); err != nil {
			return fmt.Errorf("restore tab balance: %w", err)
		}
		return nil
	})
}

func (r *SQLiteRepository) ListTransactions(ctx context.Context, userID, tabID string) ([]core.Transaction, error) {
	query := `SELECT id, tab_id, tx_date, merchant, memo, amount, category, receipt_url, tx_type, created_at
	          FROM transactions WHERE user_id = ?`
	args := []any{userID}
	if tabID != "" {
		query += ` AND tab_id = ?`
		args = append(args, tabID)
	}
	query += ` ORDER BY tx_date DESC, created_at DESC`

	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list transactions: %w", err)
	}
	defer rows.Close()

	var txs []core.Transaction
	for rows.Next() {
		t, err := scanTransaction(rows)
		if err != nil {
			return nil, err
		}
		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	for i := range txs {
		tags, err := r.listTags(ctx, txs[i].ID)
		if err != nil {
			return nil, err
		}
		txs[i].Tags = tags
	}
	return txs, nil
}

// GetTransaction loads a transaction without user scoping, for the export
// worker.
func (r *SQLiteRepository) GetTransaction(ctx context.Context, id string) (core.Transaction, error) {
	row := r.db.QueryRowContext(ctx,
		`SELECT id, tab_id, tx_date, merchant, memo, amount, category, receipt_url, tx_type, created_at
		 FROM transactions WHERE id = ?`, id)
	t, err := scanTransaction(row)
	if err != nil {
		return core.Transaction{}, err
	}
	tags, err := r.listTags(ctx, t.ID)
	if err != nil {
		return core.Transaction{}, err
	}
	t.Tags = tags
	return t, nil
}

// PendingSyncTransaction is the minimal row the export worker queues on.
type PendingSyncTransaction struct {
	ID        string
	CreatedAt time.Time
}

func (r *SQLiteRepository) GetPendingSyncTransactions(ctx context.Context, limit int) ([]PendingSyncTransaction, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, created_at FROM transactions WHERE sync_status = ?
		 ORDER BY created_at LIMIT ?`, SyncPending, limit)
	if err != nil {
		return nil, fmt.Errorf("get pending sync transactions: %w", err)
	}
	defer rows.Close()

	var pending []PendingSyncTransaction
	for rows.Next() {
		var p PendingSyncTransaction
		if err := rows.Scan(&p.ID, &p.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan pending sync transaction: %w", err)
		}
		pending = append(pending, p)
	}
	return pending, rows.Err()
}

func (r *SQLiteRepository) MarkSynced(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = ?, synced_at = ? WHERE id = ?`,
		SyncSynced, time.Now(), id)
	if err != nil {
		return fmt.Errorf("mark transaction synced: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) MarkSyncError(ctx context.Context, id string) error {
	_, err := r.db.ExecContext(ctx,
		`UPDATE transactions SET sync_status = ? WHERE id = ?`, SyncError, id)
	if err != nil {
		return fmt.Errorf("mark transaction sync error: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) listTags(ctx context.Context, txID string) ([]core.TransactionTag, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, label, color FROM transaction_tags WHERE transaction_id = ? ORDER BY id`, txID)
	if err != nil {
		return nil, fmt.Errorf("list transaction tags: %w", err)
	}
	defer rows.Close()

	var tags []core.TransactionTag
	for rows.Next() {
		var tag core.TransactionTag
		if err := rows.Scan(&tag.ID, &tag.Label, &tag.Color); err != nil {
			return nil, fmt.Errorf("scan transaction tag: %w", err)
		}
		tags = append(tags, tag)
	}
	return tags, rows.Err()
}

func scanTransaction(row rowScanner) (core.Transaction, error) {
	var t core.Transaction
	var category, txType string
	err := row.Scan(&t.ID, &t.TabID, &t.Date, &t.Merchant, &t.Memo, &t.Amount,
		&category, &t.ReceiptURL, &txType, &t.CreatedAt)
	if err == sql.ErrNoRows {
		return core.Transaction{}, ErrNotFound
	}
	if err != nil {
		return core.Transaction{}, fmt.Errorf("scan transaction: %w", err)
	}
	t.Category = core.Category(category)
	t.Type = core.TransactionType(txType)
	return t, nil
}
