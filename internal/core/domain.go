package core

import (
	"errors"
	"strings"
	"time"
)

const (
	Groceries    Category = "Groceries"
	FoodDelivery Category = "FoodDelivery"
	Utilities    Category = "Utilities"
	Rent         Category = "Rent"
	Other        Category = "Other"
)

const (
	TabOpen   TabStatus = "open"
	TabClosed TabStatus = "closed"
)

const (
	TxCharge  TransactionType = "charge"
	TxRefund  TransactionType = "refund"
	TxPayment TransactionType = "payment"
)

const (
	SharePending ShareStatus = "pending"
	SharePaid    ShareStatus = "paid"
)

type (
	Category        string
	TabStatus       string
	TransactionType string
	ShareStatus     string

	// Tab is an open running balance against a merchant/category.
	// CurrentAmount moves additively with each transaction's signed amount;
	// closing a tab is terminal and zeroes the balance.
	Tab struct {
		ID            string
		Name          string
		Merchant      string
		Category      Category
		DueDay        int
		Limit         float64
		CurrentAmount float64
		Status        TabStatus
		CreatedAt     time.Time
	}

	Transaction struct {
		ID         string
		TabID      string
		Date       time.Time
		Merchant   string
		Memo       string
		Amount     float64 // signed: refunds and payments are negative
		Category   Category
		ReceiptURL string
		Type       TransactionType
		Tags       []TransactionTag
		CreatedAt  time.Time
	}

	TransactionTag struct {
		ID    string
		Label string
		Color string
	}

	// PaydaySettings is the per-user planning configuration.
	PaydaySettings struct {
		SalaryDay         int
		CurrentBalance    float64
		Buffer            float64
		MustPayCategories []Category
	}

	IncomeSchedule struct {
		ID         string
		Label      string
		DayOfMonth int
		Amount     float64
		Active     bool
	}

	UserPreference struct {
		DashboardLayout string
		Currency        string
		Location        string
		Theme           string
	}

	Household struct {
		ID   string
		Name string
	}

	HouseholdMember struct {
		ID           string
		Name         string
		Email        string
		ShareDefault *float64
	}

	// TabShare binds a household member to a tab. Status flips to paid when
	// PaidAmount covers ShareAmount; the transition is reversible.
	TabShare struct {
		ID           string
		TabID        string
		MemberID     string
		MemberName   string
		SharePercent float64
		ShareAmount  float64
		PaidAmount   float64
		Status       ShareStatus
	}

	Notification struct {
		ID        string
		Type      string
		Title     string
		Message   string
		CreatedAt time.Time
		ReadAt    *time.Time
	}

	// ExpensePoint is one month of historical spend, keyed by a "YYYY-MM" label.
	ExpensePoint struct {
		Month  string
		Amount float64
	}
)

var (
	ErrInvalidCategory = errors.New("invalid category")
	ErrInvalidDueDay   = errors.New("due day must be between 1 and 31")
	ErrInvalidAmount   = errors.New("invalid amount")
	ErrEmptyName       = errors.New("empty name")
	ErrEmptyMerchant   = errors.New("empty merchant")
	ErrEmptyLabel      = errors.New("empty label")
	ErrInvalidDate     = errors.New("transaction date cannot be zero")
	ErrInvalidTxType   = errors.New("invalid transaction type")
	ErrInvalidRange    = errors.New("range low exceeds range high")
)

// Categories lists every valid tab category in display order.
func Categories() []Category {
	return []Category{Groceries, FoodDelivery, Utilities, Rent, Other}
}

func (c Category) Valid() bool {
	switch c {
	case Groceries, FoodDelivery, Utilities, Rent, Other:
		return true
	}
	return false
}

func (t TransactionType) Valid() bool {
	switch t {
	case TxCharge, TxRefund, TxPayment:
		return true
	}
	return false
}

// SignedAmount applies the transaction type's sign convention: refunds and
// payments reduce a tab's balance, charges increase it.
func SignedAmount(amount float64, txType TransactionType) float64 {
	if txType == TxRefund || txType == TxPayment {
		if amount < 0 {
			return amount
		}
		return -amount
	}
	return amount
}

func (t Tab) Validate() error {
	if strings.TrimSpace(t.Name) == "" {
		return ErrEmptyName
	}
	if strings.TrimSpace(t.Merchant) == "" {
		return ErrEmptyMerchant
	}
	if !t.Category.Valid() {
		return ErrInvalidCategory
	}
	if t.DueDay < 1 || t.DueDay > 31 {
		return ErrInvalidDueDay
	}
	if t.Limit < 0 {
		return ErrInvalidAmount
	}
	return nil
}

func (tx Transaction) Validate() error {
	if strings.TrimSpace(tx.Merchant) == "" {
		return ErrEmptyMerchant
	}
	if !tx.Category.Valid() {
		return ErrInvalidCategory
	}
	if tx.Date.IsZero() {
		return ErrInvalidDate
	}
	if !tx.Type.Valid() {
		return ErrInvalidTxType
	}
	return nil
}

func (s PaydaySettings) Validate() error {
	if s.SalaryDay < 1 || s.SalaryDay > 31 {
		return ErrInvalidDueDay
	}
	if s.CurrentBalance < 0 || s.Buffer < 0 {
		return ErrInvalidAmount
	}
	for _, c := range s.MustPayCategories {
		if !c.Valid() {
			return ErrInvalidCategory
		}
	}
	return nil
}

func (i IncomeSchedule) Validate() error {
	if strings.TrimSpace(i.Label) == "" {
		return ErrEmptyLabel
	}
	if i.DayOfMonth < 1 || i.DayOfMonth > 31 {
		return ErrInvalidDueDay
	}
	if i.Amount <= 0 {
		return ErrInvalidAmount
	}
	return nil
}
