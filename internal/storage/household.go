package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sohamkakraa/TabScape/internal/core"
)

func (r *SQLiteRepository) SaveHousehold(ctx context.Context, userID string, h core.Household) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO households (id, user_id, name) VALUES (?, ?, ?)
		 ON CONFLICT(user_id) DO UPDATE SET name = excluded.name`,
		h.ID, userID, h.Name)
	if err != nil {
		return fmt.Errorf("save household: %w", err)
	}
	return nil
}

func (r *SQLiteRepository) GetHousehold(ctx context.Context, userID string) (core.Household, error) {
	var h core.Household
	err := r.db.QueryRowContext(ctx,
		`SELECT id, name FROM households WHERE user_id = ?`, userID).
		Scan(&h.ID, &h.Name)
	if err == sql.ErrNoRows {
		return core.Household{}, ErrNotFound
	}
	if err != nil {
		return core.Household{}, fmt.Errorf("get household: %w", err)
	}
	return h, nil
}

// UpsertMember inserts or updates a member in place. Updating rather than
// replacing keeps existing tab shares attached to the member. The update arm
// only fires when the existing row belongs to householdID; a member ID taken
// from another household skips the update and reports ErrNotFound.
func (r *SQLiteRepository) UpsertMember(ctx context.Context, householdID string, m core.HouseholdMember) error {
	res, err := r.db.ExecContext(ctx,
		`INSERT INTO household_members (id, household_id, name, email, share_default)
		 VALUES (?, ?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET
		   name = excluded.name,
		   email = excluded.email,
		   share_default = excluded.share_default
		 WHERE household_members.household_id = excluded.household_id`,
		m.ID, householdID, m.Name, m.Email, m.ShareDefault)
	if err != nil {
		return fmt.Errorf("upsert household member: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("upsert household member rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *SQLiteRepository) ListMembers(ctx context.Context, householdID string) ([]core.HouseholdMember, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, name, email, share_default FROM household_members
		 WHERE household_id = ? ORDER BY name, id`, householdID)
	if err != nil {
		return nil, fmt.Errorf("list household members: %w", err)
	}
	defer rows.Close()

	var members []core.HouseholdMember
	for rows.Next() {
		var m core.HouseholdMember
		var shareDefault sql.NullFloat64
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &shareDefault); err != nil {
			return nil, fmt.Errorf("scan household member: %w", err)
		}
		if shareDefault.Valid {
			v := shareDefault.Float64
			m.ShareDefault = &v
		}
		members = append(members, m)
	}
	return members, rows.Err()
}

// ReplaceTabShares swaps the tab's full share set atomically: all prior shares
// are deleted and the new set inserted in one database transaction.
func (r *SQLiteRepository) ReplaceTabShares(ctx context.Context, userID, tabID string, shares []core.TabShare) error {
	return r.inTx(func(tx *sql.Tx) error {
		var owned int
		err := tx.QueryRowContext(ctx,
			`SELECT COUNT(1) FROM tabs WHERE id = ? AND user_id = ?`, tabID, userID).Scan(&owned)
		if err != nil {
			return fmt.Errorf("check tab ownership: %w", err)
		}
		if owned == 0 {
			return ErrNotFound
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM tab_shares WHERE tab_id = ?`, tabID); err != nil {
			return fmt.Errorf("delete tab shares: %w", err)
		}
		for _, s := range shares {
			if _, err := tx.ExecContext(ctx,
				`INSERT INTO tab_shares (id, tab_id, member_id, share_percent, share_amount, paid_amount, status)
				 VALUES (?, ?, ?, ?, ?, ?, ?)`,
				s.ID, tabID, s.MemberID, s.SharePercent, s.ShareAmount, s.PaidAmount, string(s.Status)); err != nil {
				return fmt.Errorf("insert tab share: %w", err)
			}
		}
		return nil
	})
}

func (r *SQLiteRepository) ListTabShares(ctx context.Context, userID, tabID string) ([]core.TabShare, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT s.id, s.tab_id, s.member_id, m.name, s.share_percent, s.share_amount, s.paid_amount, s.status
		 FROM tab_shares s
		 JOIN household_members m ON m.id = s.member_id
		 JOIN tabs t ON t.id = s.tab_id
		 WHERE s.tab_id = ? AND t.user_id = ?
		 ORDER BY m.name, s.id`, tabID, userID)
	if err != nil {
		return nil, fmt.Errorf("list tab shares: %w", err)
	}
	defer rows.Close()

	var shares []core.TabShare
	for rows.Next() {
		var s core.TabShare
		var status string
		if err := rows.Scan(&s.ID, &s.TabID, &s.MemberID, &s.MemberName,
			&s.SharePercent, &s.ShareAmount, &s.PaidAmount, &status); err != nil {
			return nil, fmt.Errorf("scan tab share: %w", err)
		}
		s.Status = core.ShareStatus(status)
		shares = append(shares, s)
	}
	return shares, rows.Err()
}

func (r *SQLiteRepository) GetTabShare(ctx context.Context, userID, id string) (core.TabShare, error) {
	var s core.TabShare
	var status string
	err := r.db.QueryRowContext(ctx,
		`SELECT s.id, s.tab_id, s.member_id, m.name, s.share_percent, s.share_amount, s.paid_amount, s.status
		 FROM tab_shares s
		 JOIN household_members m ON m.id = s.member_id
		 JOIN tabs t ON t.id = s.tab_id
		 WHERE s.id = ? AND t.user_id = ?`, id, userID).
		Scan(&s.ID, &s.TabID, &s.MemberID, &s.MemberName,
			&s.SharePercent, &s.ShareAmount, &s.PaidAmount, &status)
	if err == sql.ErrNoRows {
		return core.TabShare{}, ErrNotFound
	}
	if err != nil {
		return core.TabShare{}, fmt.Errorf("get tab share: %w", err)
	}
	s.Status = core.ShareStatus(status)
	return s, nil
}

func (r *SQLiteRepository) UpdateTabShare(ctx context.Context, userID, id string, paidAmount float64, status core.ShareStatus) error {
	res, err := r.db.ExecContext(ctx,
		`UPDATE tab_shares SET paid_amount = ?, status = ?
		 WHERE id = ? AND tab_id IN (SELECT id FROM tabs WHERE user_id = ?)`,
		paidAmount, string(status), id, userID)
	if err != nil {
		return fmt.Errorf("update tab share: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("update tab share rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
