package core

import (
	"math"
	"sort"
	"time"
)

const (
	PlanSourceTab  PlanSource = "tab"
	PlanSourceRule PlanSource = "rule"
)

type (
	PlanSource string

	// PlanItem is one upcoming obligation in a payday plan. Items are derived
	// fresh on every request and carry no persistent identity.
	PlanItem struct {
		ID        string
		Name      string
		Amount    float64
		RangeLow  *float64
		RangeHigh *float64
		DueDay    int
		DueDate   time.Time
		MustPay   bool
		Source    PlanSource
		Category  Category
	}

	// IncomeEvent is the next concrete occurrence of an income schedule.
	IncomeEvent struct {
		ID     string
		Label  string
		Date   time.Time
		Amount float64
	}

	// PlanSummary describes financial safety until the next payday.
	PlanSummary struct {
		Payday              time.Time
		DaysToPayday        int
		MustPayTotal        float64
		IncomeBeforePayday  float64
		UpcomingIncomeTotal float64
		SafeToSpend         float64
		NextIncome          *IncomeEvent
	}

	// EnvelopeTarget is a per-category forecast budget summed over plan items.
	EnvelopeTarget struct {
		Category Category
		Amount   float64
	}
)

// NextOccurrence resolves a day-of-month to its next concrete date: the
// current month's day if that falls on or after today, otherwise next
// month's. Days past the end of a month clamp to the month's last day, so a
// due day of 31 lands on April 30 rather than rolling into May.
func NextOccurrence(day int, now time.Time) time.Time {
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	candidate := clampedDate(now.Year(), now.Month(), day, now.Location())
	if !candidate.Before(today) {
		return candidate
	}
	firstOfNext := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location()).AddDate(0, 1, 0)
	return clampedDate(firstOfNext.Year(), firstOfNext.Month(), day, now.Location())
}

func clampedDate(year int, month time.Month, day int, loc *time.Location) time.Time {
	last := time.Date(year, month+1, 0, 0, 0, 0, 0, loc).Day()
	if day > last {
		day = last
	}
	if day < 1 {
		day = 1
	}
	return time.Date(year, month, day, 0, 0, 0, 0, loc)
}

// BuildPlan merges open tabs with recurring-rule forecasts into a prioritized
// list of upcoming payment items.
//
// Every open tab yields an item: the outstanding amount (or the tab's limit
// when nothing has posted yet), the next due date, and the must-pay flag and
// forecast range inherited from the first recurring rule sharing the tab's
// category. A tab is also must-pay when its category is listed in the user's
// must-pay categories. Recurring rules not covered by an open tab with the
// same category and due day surface as forecasted items of their own.
//
// Ordering is a stable two-key sort: must-pay items first, then earlier due
// dates; remaining ties keep input order.
func BuildPlan(tabs []Tab, rules []Rule, settings PaydaySettings, now time.Time) []PlanItem {
	recurring := RecurringRules(rules)

	var openTabs []Tab
	for _, t := range tabs {
		if t.Status == TabOpen {
			openTabs = append(openTabs, t)
		}
	}

	items := make([]PlanItem, 0, len(openTabs)+len(recurring))
	for _, tab := range openTabs {
		var matched *RecurringRule
		for i := range recurring {
			if recurring[i].Category == tab.Category {
				matched = &recurring[i]
				break
			}
		}

		amount := tab.CurrentAmount
		if amount == 0 {
			amount = tab.Limit
		}

		item := PlanItem{
			ID:       "tab_" + tab.ID,
			Name:     tab.Name,
			Amount:   amount,
			DueDay:   tab.DueDay,
			DueDate:  NextOccurrence(tab.DueDay, now),
			MustPay:  mustPayCategory(settings, tab.Category),
			Source:   PlanSourceTab,
			Category: tab.Category,
		}
		if matched != nil {
			item.RangeLow = matched.RangeLow
			item.RangeHigh = matched.RangeHigh
			item.MustPay = item.MustPay || matched.MustPay
		}
		items = append(items, item)
	}

	for _, rule := range recurring {
		covered := false
		for _, t := range openTabs {
			if t.Category == rule.Category && t.DueDay == rule.DueDay {
				covered = true
				break
			}
		}
		if covered {
			continue
		}
		items = append(items, PlanItem{
			ID:        "rule_" + rule.ID,
			Name:      rule.Title,
			Amount:    rule.Amount,
			RangeLow:  rule.RangeLow,
			RangeHigh: rule.RangeHigh,
			DueDay:    rule.DueDay,
			DueDate:   NextOccurrence(rule.DueDay, now),
			MustPay:   rule.MustPay,
			Source:    PlanSourceRule,
			Category:  rule.Category,
		})
	}

	sort.SliceStable(items, func(i, j int) bool {
		if items[i].MustPay != items[j].MustPay {
			return items[i].MustPay
		}
		return items[i].DueDate.Before(items[j].DueDate)
	})
	return items
}

func mustPayCategory(settings PaydaySettings, c Category) bool {
	for _, mc := range settings.MustPayCategories {
		if mc == c {
			return true
		}
	}
	return false
}

// HighEstimate is the amount a plan item is budgeted at: the forecast range
// high when present, the plain amount otherwise.
func (p PlanItem) HighEstimate() float64 {
	if p.RangeHigh != nil {
		return *p.RangeHigh
	}
	return p.Amount
}

// Summarize computes the safety picture until the next payday. Must-pay items
// due on or before payday are reserved at their high estimate; items already
// overdue stay counted, which errs on the side of a wider safety margin.
// Safe-to-spend never goes negative.
func Summarize(plan []PlanItem, settings PaydaySettings, income []IncomeSchedule, now time.Time) PlanSummary {
	payday := NextOccurrence(settings.SalaryDay, now)

	var mustPayTotal float64
	for _, item := range plan {
		if item.MustPay && !item.DueDate.After(payday) {
			mustPayTotal += item.HighEstimate()
		}
	}

	var incomeBefore, upcomingTotal float64
	var next *IncomeEvent
	for _, i := range income {
		if !i.Active {
			continue
		}
		upcomingTotal += i.Amount
		occurrence := NextOccurrence(i.DayOfMonth, now)
		if !occurrence.After(payday) {
			incomeBefore += i.Amount
		}
		if next == nil || occurrence.Before(next.Date) {
			next = &IncomeEvent{ID: i.ID, Label: i.Label, Date: occurrence, Amount: i.Amount}
		}
	}

	safe := settings.CurrentBalance + incomeBefore - settings.Buffer - mustPayTotal
	if safe < 0 {
		safe = 0
	}

	days := int(math.Ceil(payday.Sub(now).Hours() / 24))
	if days < 0 {
		days = 0
	}

	return PlanSummary{
		Payday:              payday,
		DaysToPayday:        days,
		MustPayTotal:        Round2(mustPayTotal),
		IncomeBeforePayday:  Round2(incomeBefore),
		UpcomingIncomeTotal: Round2(upcomingTotal),
		SafeToSpend:         Round2(safe),
		NextIncome:          next,
	}
}

// EnvelopeTargets groups plan items by category, summing high estimates.
// Categories keep first-appearance order.
func EnvelopeTargets(plan []PlanItem) []EnvelopeTarget {
	index := make(map[Category]int)
	var out []EnvelopeTarget
	for _, item := range plan {
		if i, ok := index[item.Category]; ok {
			out[i].Amount += item.HighEstimate()
			continue
		}
		index[item.Category] = len(out)
		out = append(out, EnvelopeTarget{Category: item.Category, Amount: item.HighEstimate()})
	}
	for i := range out {
		out[i].Amount = Round2(out[i].Amount)
	}
	return out
}
