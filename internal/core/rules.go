package core

import (
	"strings"
)

// Rule is the closed set of categorization and recurrence rules. The two
// variants share nothing beyond an ID and a category, so invalid combinations
// (a merchant rule with a due day, say) are unrepresentable.
type Rule interface {
	RuleID() string
	RuleCategory() Category
	isRule()
}

// MerchantRule maps a merchant name substring to a category for
// auto-categorization of incoming transactions.
type MerchantRule struct {
	ID       string
	Merchant string
	Category Category
}

// RecurringRule is a recurring obligation that may exist independently of any
// open tab. RangeLow/RangeHigh are an optional forecast band.
type RecurringRule struct {
	ID        string
	Title     string
	Category  Category
	DueDay    int
	Amount    float64
	MustPay   bool
	RangeLow  *float64
	RangeHigh *float64
}

func (r MerchantRule) RuleID() string         { return r.ID }
func (r MerchantRule) RuleCategory() Category { return r.Category }
func (MerchantRule) isRule()                  {}

func (r RecurringRule) RuleID() string         { return r.ID }
func (r RecurringRule) RuleCategory() Category { return r.Category }
func (RecurringRule) isRule()                  {}

func (r MerchantRule) Validate() error {
	if strings.TrimSpace(r.Merchant) == "" {
		return ErrEmptyMerchant
	}
	if !r.Category.Valid() {
		return ErrInvalidCategory
	}
	return nil
}

func (r RecurringRule) Validate() error {
	if strings.TrimSpace(r.Title) == "" {
		return ErrEmptyName
	}
	if !r.Category.Valid() {
		return ErrInvalidCategory
	}
	if r.DueDay < 1 || r.DueDay > 31 {
		return ErrInvalidDueDay
	}
	if r.Amount < 0 {
		return ErrInvalidAmount
	}
	if r.RangeLow != nil && r.RangeHigh != nil && *r.RangeLow > *r.RangeHigh {
		return ErrInvalidRange
	}
	return nil
}

// RecurringRules filters the recurring variant out of a mixed rule list,
// preserving order.
func RecurringRules(rules []Rule) []RecurringRule {
	var out []RecurringRule
	for _, r := range rules {
		if rr, ok := r.(RecurringRule); ok {
			out = append(out, rr)
		}
	}
	return out
}

// MerchantRules filters the merchant variant out of a mixed rule list,
// preserving order.
func MerchantRules(rules []Rule) []MerchantRule {
	var out []MerchantRule
	for _, r := range rules {
		if mr, ok := r.(MerchantRule); ok {
			out = append(out, mr)
		}
	}
	return out
}

// ResolveCategory applies merchant rules to a transaction's merchant and memo.
// The first rule whose merchant appears as a case-insensitive substring of
// either field wins; fallback is the caller-provided category.
func ResolveCategory(rules []MerchantRule, merchant, memo string, fallback Category) Category {
	m := strings.ToLower(merchant)
	note := strings.ToLower(memo)
	for _, r := range rules {
		rm := strings.ToLower(strings.TrimSpace(r.Merchant))
		if rm == "" {
			continue
		}
		if strings.Contains(m, rm) || strings.Contains(note, rm) {
			return r.Category
		}
	}
	return fallback
}
