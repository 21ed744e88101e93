package core

import (
	"testing"
	"time"
)

func TestTabValidate(t *testing.T) {
	valid := Tab{Name: "Groceries", Merchant: "Local Supermarket", Category: Groceries, DueDay: 30, Limit: 240}
	if err := valid.Validate(); err != nil {
		t.Fatalf("valid tab rejected: %v", err)
	}

	tests := []struct {
		name   string
		mutate func(Tab) Tab
	}{
		{"empty name", func(tb Tab) Tab { tb.Name = " "; return tb }},
		{"empty merchant", func(tb Tab) Tab { tb.Merchant = ""; return tb }},
		{"bad category", func(tb Tab) Tab { tb.Category = "Snacks"; return tb }},
		{"due day zero", func(tb Tab) Tab { tb.DueDay = 0; return tb }},
		{"due day 32", func(tb Tab) Tab { tb.DueDay = 32; return tb }},
		{"negative limit", func(tb Tab) Tab { tb.Limit = -1; return tb }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.mutate(valid).Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestSignedAmount(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		txType TransactionType
		want   float64
	}{
		{"charge keeps sign", 42.5, TxCharge, 42.5},
		{"refund negates", 42.5, TxRefund, -42.5},
		{"payment negates", 10, TxPayment, -10},
		{"already negative refund untouched", -10, TxRefund, -10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := SignedAmount(tt.amount, tt.txType); got != tt.want {
				t.Errorf("got %.2f, want %.2f", got, tt.want)
			}
		})
	}
}

func TestTransactionValidate(t *testing.T) {
	tx := Transaction{
		Merchant: "Local Supermarket",
		Category: Groceries,
		Date:     time.Date(2026, time.March, 15, 0, 0, 0, 0, time.UTC),
		Type:     TxCharge,
	}
	if err := tx.Validate(); err != nil {
		t.Fatalf("valid transaction rejected: %v", err)
	}

	tx.Type = "transfer"
	if err := tx.Validate(); err == nil {
		t.Error("unknown transaction type should fail validation")
	}
}

func TestRound2(t *testing.T) {
	tests := []struct{ in, want float64 }{
		{1.004, 1.0},
		{1.006, 1.01},
		{-1.006, -1.01},
		{129.99999999999, 130},
	}
	for _, tt := range tests {
		if got := Round2(tt.in); got != tt.want {
			t.Errorf("Round2(%v) = %v, want %v", tt.in, got, tt.want)
		}
	}
}
