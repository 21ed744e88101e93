package storage

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/sohamkakraa/TabScape/internal/core"
)

const (
	ruleTypeMerchant  = "merchant"
	ruleTypeRecurring = "recurring"
)

func (r *SQLiteRepository) CreateRule(ctx context.Context, userID string, rule core.Rule) error {
	switch v := rule.(type) {
	case core.MerchantRule:
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO rules (id, user_id, rule_type, category, merchant) VALUES (?, ?, ?, ?, ?)`,
			v.ID, userID, ruleTypeMerchant, string(v.Category), v.Merchant)
		if err != nil {
			return fmt.Errorf("create merchant rule: %w", err)
		}
	case core.RecurringRule:
		_, err := r.db.ExecContext(ctx,
			`INSERT INTO rules (id, user_id, rule_type, category, title, due_day, amount, must_pay, range_low, range_high)
			 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			v.ID, userID, ruleTypeRecurring, string(v.Category), v.Title,
			v.DueDay, v.Amount, v.MustPay, v.RangeLow, v.RangeHigh)
		if err != nil {
			return fmt.Errorf("create recurring rule: %w", err)
		}
	default:
		return fmt.Errorf("unknown rule variant %T", rule)
	}
	return nil
}

func (r *SQLiteRepository) ListRules(ctx context.Context, userID string) ([]core.Rule, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, rule_type, category, merchant, title, due_day, amount, must_pay, range_low, range_high
		 FROM rules WHERE user_id = ? ORDER BY created_at, id`, userID)
	if err != nil {
		return nil, fmt.Errorf("list rules: %w", err)
	}
	defer rows.Close()

	var rules []core.Rule
	for rows.Next() {
		var (
			id, ruleType, category string
			merchant, title        sql.NullString
			dueDay                 sql.NullInt64
			amount                 sql.NullFloat64
			mustPay                sql.NullBool
			rangeLow, rangeHigh    sql.NullFloat64
		)
		if err := rows.Scan(&id, &ruleType, &category, &merchant, &title,
			&dueDay, &amount, &mustPay, &rangeLow, &rangeHigh); err != nil {
			return nil, fmt.Errorf("scan rule: %w", err)
		}

		switch ruleType {
		case ruleTypeMerchant:
			rules = append(rules, core.MerchantRule{
				ID:       id,
				Merchant: merchant.String,
				Category: core.Category(category),
			})
		case ruleTypeRecurring:
			rr := core.RecurringRule{
				ID:       id,
				Title:    title.String,
				Category: core.Category(category),
				DueDay:   int(dueDay.Int64),
				Amount:   amount.Float64,
				MustPay:  mustPay.Bool,
			}
			if rangeLow.Valid {
				v := rangeLow.Float64
				rr.RangeLow = &v
			}
			if rangeHigh.Valid {
				v := rangeHigh.Float64
				rr.RangeHigh = &v
			}
			rules = append(rules, rr)
		default:
			return nil, fmt.Errorf("unknown rule type %q in row %s", ruleType, id)
		}
	}
	return rules, rows.Err()
}

func (r *SQLiteRepository) DeleteRule(ctx context.Context, userID, id string) error {
	res, err := r.db.ExecContext(ctx,
		`DELETE FROM rules WHERE id = ? AND user_id = ?`, id, userID)
	if err != nil {
		return fmt.Errorf("delete rule: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("delete rule rows affected: %w", err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}
