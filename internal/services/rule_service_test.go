package services

import (
	"context"
	"testing"

	"github.com/sohamkakraa/TabScape/internal/core"
	"github.com/sohamkakraa/TabScape/internal/storage"
)

func TestRuleService_ListCaches(t *testing.T) {
	repo := newTestStorage(t)
	svc := NewRuleService(repo)
	ctx := context.Background()
	if err := repo.CreateUser(ctx, storage.User{ID: "u-1", Email: "u-1@example.com", PasswordHash: "x"}); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if err := repo.CreateRule(ctx, "u-1", core.MerchantRule{ID: "r-1", Merchant: "rewe", Category: core.Groceries}); err != nil {
		t.Fatalf("CreateRule() error = %v", err)
	}

	rules, err := svc.List(ctx, "u-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("List() returned %d rules, want 1", len(rules))
	}

	// A write that bypasses the service is invisible until invalidation.
	if err := repo.CreateRule(ctx, "u-1", core.MerchantRule{ID: "r-2", Merchant: "aldi", Category: core.Groceries}); err != nil {
		t.Fatalf("CreateRule() error = %v", err)
	}
	rules, err = svc.List(ctx, "u-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(rules) != 1 {
		t.Errorf("List() returned %d rules, want 1 from cache", len(rules))
	}
}

func TestRuleService_MutationsInvalidate(t *testing.T) {
	repo := newTestStorage(t)
	svc := NewRuleService(repo)
	ctx := context.Background()
	if err := repo.CreateUser(ctx, storage.User{ID: "u-1", Email: "u-1@example.com", PasswordHash: "x"}); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}

	if _, err := svc.List(ctx, "u-1"); err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if err := svc.Create(ctx, "u-1", core.MerchantRule{ID: "r-1", Merchant: "rewe", Category: core.Groceries}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}
	rules, err := svc.List(ctx, "u-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(rules) != 1 {
		t.Fatalf("List() after Create returned %d rules, want 1", len(rules))
	}

	if err := svc.Delete(ctx, "u-1", "r-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	rules, err = svc.List(ctx, "u-1")
	if err != nil {
		t.Fatalf("List() error = %v", err)
	}
	if len(rules) != 0 {
		t.Errorf("List() after Delete returned %d rules, want 0", len(rules))
	}
}

func TestRuleService_ResolveCategory(t *testing.T) {
	repo := newTestStorage(t)
	svc := NewRuleService(repo)
	ctx := context.Background()
	if err := repo.CreateUser(ctx, storage.User{ID: "u-1", Email: "u-1@example.com", PasswordHash: "x"}); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	if err := svc.Create(ctx, "u-1", core.MerchantRule{ID: "r-1", Merchant: "lieferando", Category: core.FoodDelivery}); err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	got, err := svc.ResolveCategory(ctx, "u-1", "Lieferando Berlin", "", core.Other)
	if err != nil {
		t.Fatalf("ResolveCategory() error = %v", err)
	}
	if got != core.FoodDelivery {
		t.Errorf("ResolveCategory() = %v, want %v", got, core.FoodDelivery)
	}

	got, err = svc.ResolveCategory(ctx, "u-1", "Unknown Shop", "", core.Other)
	if err != nil {
		t.Fatalf("ResolveCategory() error = %v", err)
	}
	if got != core.Other {
		t.Errorf("ResolveCategory() fallback = %v, want %v", got, core.Other)
	}
}
