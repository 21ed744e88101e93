package services

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sohamkakraa/TabScape/internal/core"
	"github.com/sohamkakraa/TabScape/internal/storage"
)

func newTestStorage(t *testing.T) *storage.SQLiteRepository {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "svc.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func seedUserWithTab(t *testing.T, repo *storage.SQLiteRepository, userID, tabID string) {
	t.Helper()
	ctx := context.Background()
	if err := repo.CreateUser(ctx, storage.User{ID: userID, Email: userID + "@example.com", PasswordHash: "x"}); err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	tab := core.Tab{
		ID: tabID, Name: "Delivery", Merchant: "Lieferando",
		Category: core.Other, DueDay: 10, Status: core.TabOpen,
	}
	if err := repo.CreateTab(ctx, userID, tab); err != nil {
		t.Fatalf("CreateTab() error = %v", err)
	}
}

func TestTransactionService_Create(t *testing.T) {
	repo := newTestStorage(t)
	svc := NewTransactionService(repo, nil, nil) // nil AMQP: publish is skipped
	ctx := context.Background()
	seedUserWithTab(t, repo, "u-1", "tab-1")

	t.Run("charge gets ID and moves balance", func(t *testing.T) {
		created, err := svc.Create(ctx, "u-1", core.Transaction{
			TabID: "tab-1", Date: time.Now(), Merchant: "Somewhere",
			Amount: 18.90, Category: core.Other,
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if created.ID == "" {
			t.Error("Create() left ID empty")
		}
		if created.Type != core.TxCharge {
			t.Errorf("Create() Type = %v, want charge default", created.Type)
		}
		tab, _ := repo.GetTab(ctx, "u-1", "tab-1")
		if tab.CurrentAmount != 18.90 {
			t.Errorf("tab balance = %v, want 18.90", tab.CurrentAmount)
		}
	})

	t.Run("refund amount signed negative", func(t *testing.T) {
		created, err := svc.Create(ctx, "u-1", core.Transaction{
			TabID: "tab-1", Date: time.Now(), Merchant: "Somewhere",
			Amount: 5, Category: core.Other, Type: core.TxRefund,
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if created.Amount != -5 {
			t.Errorf("Create() Amount = %v, want -5", created.Amount)
		}
	})

	t.Run("merchant rule recategorizes", func(t *testing.T) {
		if err := repo.CreateRule(ctx, "u-1", core.MerchantRule{
			ID: "rule-1", Merchant: "lieferando", Category: core.FoodDelivery,
		}); err != nil {
			t.Fatalf("CreateRule() error = %v", err)
		}
		created, err := svc.Create(ctx, "u-1", core.Transaction{
			TabID: "tab-1", Date: time.Now(), Merchant: "Lieferando Berlin",
			Amount: 22, Category: core.Other,
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if created.Category != core.FoodDelivery {
			t.Errorf("Create() Category = %v, want FoodDelivery via rule", created.Category)
		}
	})

	t.Run("memo match also recategorizes", func(t *testing.T) {
		created, err := svc.Create(ctx, "u-1", core.Transaction{
			TabID: "tab-1", Date: time.Now(), Merchant: "PayPal",
			Memo: "lieferando order", Amount: 15, Category: core.Other,
		})
		if err != nil {
			t.Fatalf("Create() error = %v", err)
		}
		if created.Category != core.FoodDelivery {
			t.Errorf("Create() Category = %v, want FoodDelivery via memo", created.Category)
		}
	})

	t.Run("invalid transaction rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, "u-1", core.Transaction{
			TabID: "tab-1", Date: time.Now(), Merchant: "",
			Amount: 10, Category: core.Other,
		})
		if !errors.Is(err, core.ErrEmptyMerchant) {
			t.Errorf("Create() error = %v, want ErrEmptyMerchant", err)
		}
	})

	t.Run("unknown tab rejected", func(t *testing.T) {
		_, err := svc.Create(ctx, "u-1", core.Transaction{
			TabID: "no-such-tab", Date: time.Now(), Merchant: "Somewhere",
			Amount: 10, Category: core.Other,
		})
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Create() error = %v, want ErrNotFound", err)
		}
	})
}

func TestTransactionService_Delete(t *testing.T) {
	repo := newTestStorage(t)
	svc := NewTransactionService(repo, nil, nil)
	ctx := context.Background()
	seedUserWithTab(t, repo, "u-1", "tab-1")

	created, err := svc.Create(ctx, "u-1", core.Transaction{
		TabID: "tab-1", Date: time.Now(), Merchant: "Somewhere",
		Amount: 30, Category: core.Other,
	})
	if err != nil {
		t.Fatalf("Create() error = %v", err)
	}

	if err := svc.Delete(ctx, "u-1", created.ID); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	tab, _ := repo.GetTab(ctx, "u-1", "tab-1")
	if tab.CurrentAmount != 0 {
		t.Errorf("tab balance after delete = %v, want 0", tab.CurrentAmount)
	}

	if err := svc.Delete(ctx, "u-1", created.ID); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("second Delete() error = %v, want ErrNotFound", err)
	}
}
