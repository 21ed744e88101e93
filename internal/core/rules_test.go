package core

import "testing"

func TestResolveCategory(t *testing.T) {
	rules := []MerchantRule{
		{ID: "m1", Merchant: "Local Supermarket", Category: Groceries},
		{ID: "m2", Merchant: "delivery app", Category: FoodDelivery},
		{ID: "m3", Merchant: "  ", Category: Rent},
	}

	tests := []struct {
		name     string
		merchant string
		memo     string
		fallback Category
		want     Category
	}{
		{"merchant substring match is case-insensitive", "LOCAL SUPERMARKET GmbH", "", Other, Groceries},
		{"memo can match instead of merchant", "Misc", "paid via Delivery App", Other, FoodDelivery},
		{"blank rule merchants are skipped", "anything", "", Utilities, Utilities},
		{"no match keeps the fallback", "Landlord", "", Rent, Rent},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := ResolveCategory(rules, tt.merchant, tt.memo, tt.fallback)
			if got != tt.want {
				t.Errorf("got %s, want %s", got, tt.want)
			}
		})
	}
}

func TestRuleVariantFilters(t *testing.T) {
	rules := []Rule{
		MerchantRule{ID: "m1", Merchant: "shop", Category: Groceries},
		RecurringRule{ID: "r1", Title: "Rent", Category: Rent, DueDay: 1, Amount: 1100},
		RecurringRule{ID: "r2", Title: "Power", Category: Utilities, DueDay: 28, Amount: 180},
	}

	if got := RecurringRules(rules); len(got) != 2 || got[0].ID != "r1" || got[1].ID != "r2" {
		t.Errorf("RecurringRules = %+v, want r1 then r2", got)
	}
	if got := MerchantRules(rules); len(got) != 1 || got[0].ID != "m1" {
		t.Errorf("MerchantRules = %+v, want only m1", got)
	}
}

func TestRuleValidation(t *testing.T) {
	t.Run("merchant rule requires merchant and category", func(t *testing.T) {
		if err := (MerchantRule{Merchant: "", Category: Groceries}).Validate(); err == nil {
			t.Error("blank merchant should fail validation")
		}
		if err := (MerchantRule{Merchant: "shop", Category: "Nope"}).Validate(); err == nil {
			t.Error("unknown category should fail validation")
		}
		if err := (MerchantRule{Merchant: "shop", Category: Groceries}).Validate(); err != nil {
			t.Errorf("valid rule rejected: %v", err)
		}
	})

	t.Run("recurring rule range must be ordered", func(t *testing.T) {
		low, high := 200.0, 100.0
		r := RecurringRule{Title: "Power", Category: Utilities, DueDay: 28, Amount: 150, RangeLow: &low, RangeHigh: &high}
		if err := r.Validate(); err == nil {
			t.Error("inverted range should fail validation")
		}
	})

	t.Run("recurring rule due day bounds", func(t *testing.T) {
		r := RecurringRule{Title: "Power", Category: Utilities, DueDay: 32, Amount: 150}
		if err := r.Validate(); err == nil {
			t.Error("due day 32 should fail validation")
		}
	})
}
