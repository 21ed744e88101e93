package storage

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/sohamkakraa/TabScape/internal/core"
)

func newTestRepo(t *testing.T) *SQLiteRepository {
	t.Helper()
	repo, err := NewSQLiteRepository(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("NewSQLiteRepository() error = %v", err)
	}
	t.Cleanup(func() { repo.Close() })
	return repo
}

func newTestUser(t *testing.T, repo *SQLiteRepository, email string) string {
	t.Helper()
	id := "user-" + email
	err := repo.CreateUser(context.Background(), User{
		ID:           id,
		Email:        email,
		PasswordHash: "hash",
	})
	if err != nil {
		t.Fatalf("CreateUser() error = %v", err)
	}
	return id
}

func newTestTab(t *testing.T, repo *SQLiteRepository, userID, id string, limit float64) core.Tab {
	t.Helper()
	tab := core.Tab{
		ID:       id,
		Name:     "Weekly groceries",
		Merchant: "Rewe",
		Category: core.Groceries,
		DueDay:   15,
		Limit:    limit,
		Status:   core.TabOpen,
	}
	if err := repo.CreateTab(context.Background(), userID, tab); err != nil {
		t.Fatalf("CreateTab() error = %v", err)
	}
	return tab
}

func TestUsersAndSessions(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()

	t.Run("duplicate email rejected", func(t *testing.T) {
		newTestUser(t, repo, "a@example.com")
		err := repo.CreateUser(ctx, User{ID: "other", Email: "a@example.com", PasswordHash: "x"})
		if !errors.Is(err, ErrDuplicateEmail) {
			t.Errorf("CreateUser() error = %v, want ErrDuplicateEmail", err)
		}
	})

	t.Run("lookup by email and id", func(t *testing.T) {
		id := newTestUser(t, repo, "b@example.com")
		u, err := repo.GetUserByEmail(ctx, "b@example.com")
		if err != nil {
			t.Fatalf("GetUserByEmail() error = %v", err)
		}
		if u.ID != id {
			t.Errorf("GetUserByEmail() ID = %v, want %v", u.ID, id)
		}
		if _, err := repo.GetUserByID(ctx, id); err != nil {
			t.Errorf("GetUserByID() error = %v", err)
		}
		if _, err := repo.GetUserByEmail(ctx, "missing@example.com"); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetUserByEmail(missing) error = %v, want ErrNotFound", err)
		}
	})

	t.Run("one session per user", func(t *testing.T) {
		id := newTestUser(t, repo, "c@example.com")
		exp := time.Now().Add(24 * time.Hour)
		if err := repo.CreateSession(ctx, Session{TokenHash: "h1", UserID: id, ExpiresAt: exp}); err != nil {
			t.Fatalf("CreateSession() error = %v", err)
		}
		if err := repo.CreateSession(ctx, Session{TokenHash: "h2", UserID: id, ExpiresAt: exp}); err != nil {
			t.Fatalf("CreateSession() error = %v", err)
		}
		if _, err := repo.GetSession(ctx, "h1"); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetSession(h1) error = %v, want ErrNotFound after replacement", err)
		}
		s, err := repo.GetSession(ctx, "h2")
		if err != nil {
			t.Fatalf("GetSession(h2) error = %v", err)
		}
		if s.UserID != id {
			t.Errorf("GetSession() UserID = %v, want %v", s.UserID, id)
		}
	})

	t.Run("expired sessions swept", func(t *testing.T) {
		id := newTestUser(t, repo, "d@example.com")
		past := time.Now().Add(-time.Hour)
		if err := repo.CreateSession(ctx, Session{TokenHash: "old", UserID: id, ExpiresAt: past}); err != nil {
			t.Fatalf("CreateSession() error = %v", err)
		}
		if err := repo.DeleteExpiredSessions(ctx, time.Now()); err != nil {
			t.Fatalf("DeleteExpiredSessions() error = %v", err)
		}
		if _, err := repo.GetSession(ctx, "old"); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetSession(old) error = %v, want ErrNotFound", err)
		}
	})
}

func TestTabs(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	userID := newTestUser(t, repo, "tabs@example.com")

	t.Run("round trip", func(t *testing.T) {
		want := newTestTab(t, repo, userID, "tab-1", 200)
		got, err := repo.GetTab(ctx, userID, "tab-1")
		if err != nil {
			t.Fatalf("GetTab() error = %v", err)
		}
		if got.Name != want.Name || got.Category != want.Category || got.Limit != want.Limit {
			t.Errorf("GetTab() = %+v, want fields of %+v", got, want)
		}
		if got.Status != core.TabOpen {
			t.Errorf("GetTab() Status = %v, want open", got.Status)
		}
	})

	t.Run("user scoping", func(t *testing.T) {
		otherID := newTestUser(t, repo, "other-tabs@example.com")
		if _, err := repo.GetTab(ctx, otherID, "tab-1"); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetTab() for other user error = %v, want ErrNotFound", err)
		}
	})

	t.Run("close zeroes balance and is terminal", func(t *testing.T) {
		newTestTab(t, repo, userID, "tab-close", 0)
		tx := core.Transaction{
			ID: "tx-close", TabID: "tab-close", Date: time.Now(),
			Merchant: "Rewe", Amount: 42.50, Category: core.Groceries, Type: core.TxCharge,
		}
		if err := repo.CreateTransaction(ctx, userID, tx); err != nil {
			t.Fatalf("CreateTransaction() error = %v", err)
		}
		if err := repo.CloseTab(ctx, userID, "tab-close"); err != nil {
			t.Fatalf("CloseTab() error = %v", err)
		}
		got, err := repo.GetTab(ctx, userID, "tab-close")
		if err != nil {
			t.Fatalf("GetTab() error = %v", err)
		}
		if got.Status != core.TabClosed || got.CurrentAmount != 0 {
			t.Errorf("after close: status = %v, amount = %v; want closed, 0", got.Status, got.CurrentAmount)
		}
		if err := repo.CloseTab(ctx, userID, "tab-close"); !errors.Is(err, ErrNotFound) {
			t.Errorf("second CloseTab() error = %v, want ErrNotFound", err)
		}
	})
}

func TestTransactions(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	userID := newTestUser(t, repo, "tx@example.com")

	t.Run("charge moves balance and stores tags", func(t *testing.T) {
		newTestTab(t, repo, userID, "tab-tx", 0)
		tx := core.Transaction{
			ID: "tx-1", TabID: "tab-tx", Date: time.Now(),
			Merchant: "Rewe", Memo: "weekly shop", Amount: 31.40,
			Category: core.Groceries, Type: core.TxCharge,
			Tags: []core.TransactionTag{{ID: "tag-1", Label: "food", Color: "#aaa"}},
		}
		if err := repo.CreateTransaction(ctx, userID, tx); err != nil {
			t.Fatalf("CreateTransaction() error = %v", err)
		}

		tab, err := repo.GetTab(ctx, userID, "tab-tx")
		if err != nil {
			t.Fatalf("GetTab() error = %v", err)
		}
		if tab.CurrentAmount != 31.40 {
			t.Errorf("tab balance = %v, want 31.40", tab.CurrentAmount)
		}

		list, err := repo.ListTransactions(ctx, userID, "tab-tx")
		if err != nil {
			t.Fatalf("ListTransactions() error = %v", err)
		}
		if len(list) != 1 || len(list[0].Tags) != 1 || list[0].Tags[0].Label != "food" {
			t.Errorf("ListTransactions() = %+v, want one transaction with tag food", list)
		}
	})

	t.Run("refund reduces balance", func(t *testing.T) {
		tx := core.Transaction{
			ID: "tx-2", TabID: "tab-tx", Date: time.Now(),
			Merchant: "Rewe", Amount: core.SignedAmount(10, core.TxRefund),
			Category: core.Groceries, Type: core.TxRefund,
		}
		if err := repo.CreateTransaction(ctx, userID, tx); err != nil {
			t.Fatalf("CreateTransaction() error = %v", err)
		}
		tab, _ := repo.GetTab(ctx, userID, "tab-tx")
		if tab.CurrentAmount != 21.40 {
			t.Errorf("tab balance = %v, want 21.40", tab.CurrentAmount)
		}
	})

	t.Run("delete backs amount out, floored at zero", func(t *testing.T) {
		if err := repo.DeleteTransaction(ctx, userID, "tx-1"); err != nil {
			t.Fatalf("DeleteTransaction() error = %v", err)
		}
		tab, _ := repo.GetTab(ctx, userID, "tab-tx")
		if tab.CurrentAmount != 0 {
			t.Errorf("tab balance = %v, want 0 (floored)", tab.CurrentAmount)
		}
		if err := repo.DeleteTransaction(ctx, userID, "tx-1"); !errors.Is(err, ErrNotFound) {
			t.Errorf("second DeleteTransaction() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("limit notification raised in same transaction", func(t *testing.T) {
		newTestTab(t, repo, userID, "tab-limit", 100)
		tx := core.Transaction{
			ID: "tx-3", TabID: "tab-limit", Date: time.Now(),
			Merchant: "Rewe", Amount: 95, Category: core.Groceries, Type: core.TxCharge,
		}
		if err := repo.CreateTransaction(ctx, userID, tx); err != nil {
			t.Fatalf("CreateTransaction() error = %v", err)
		}
		notifs, err := repo.ListNotifications(ctx, userID, true)
		if err != nil {
			t.Fatalf("ListNotifications() error = %v", err)
		}
		if len(notifs) != 1 || notifs[0].Type != "limit_warning" {
			t.Fatalf("notifications = %+v, want one limit_warning", notifs)
		}

		tx.ID = "tx-4"
		tx.Amount = 10
		if err := repo.CreateTransaction(ctx, userID, tx); err != nil {
			t.Fatalf("CreateTransaction() error = %v", err)
		}
		notifs, _ = repo.ListNotifications(ctx, userID, true)
		if len(notifs) != 2 {
			t.Fatalf("notifications = %+v, want two", notifs)
		}
		types := map[string]bool{notifs[0].Type: true, notifs[1].Type: true}
		if !types["limit_warning"] || !types["limit_exceeded"] {
			t.Errorf("notification types = %v, want limit_warning and limit_exceeded", types)
		}
	})

	t.Run("closed tab rejects transactions", func(t *testing.T) {
		newTestTab(t, repo, userID, "tab-done", 0)
		if err := repo.CloseTab(ctx, userID, "tab-done"); err != nil {
			t.Fatalf("CloseTab() error = %v", err)
		}
		tx := core.Transaction{
			ID: "tx-5", TabID: "tab-done", Date: time.Now(),
			Merchant: "Rewe", Amount: 5, Category: core.Groceries, Type: core.TxCharge,
		}
		if err := repo.CreateTransaction(ctx, userID, tx); !errors.Is(err, ErrNotFound) {
			t.Errorf("CreateTransaction() on closed tab error = %v, want ErrNotFound", err)
		}
	})

	t.Run("sync queue lifecycle", func(t *testing.T) {
		pending, err := repo.GetPendingSyncTransactions(ctx, 10)
		if err != nil {
			t.Fatalf("GetPendingSyncTransactions() error = %v", err)
		}
		if len(pending) == 0 {
			t.Fatal("GetPendingSyncTransactions() returned none, want pending rows")
		}
		if err := repo.MarkSynced(ctx, pending[0].ID); err != nil {
			t.Fatalf("MarkSynced() error = %v", err)
		}
		after, _ := repo.GetPendingSyncTransactions(ctx, 10)
		if len(after) != len(pending)-1 {
			t.Errorf("pending after MarkSynced = %d, want %d", len(after), len(pending)-1)
		}
		if err := repo.MarkSyncError(ctx, after[0].ID); err != nil {
			t.Fatalf("MarkSyncError() error = %v", err)
		}
	})
}

func TestRules(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	userID := newTestUser(t, repo, "rules@example.com")

	high := 120.0
	if err := repo.CreateRule(ctx, userID, core.MerchantRule{
		ID: "rule-m", Merchant: "lieferando", Category: core.FoodDelivery,
	}); err != nil {
		t.Fatalf("CreateRule(merchant) error = %v", err)
	}
	if err := repo.CreateRule(ctx, userID, core.RecurringRule{
		ID: "rule-r", Title: "Electricity", Category: core.Utilities,
		DueDay: 3, Amount: 90, MustPay: true, RangeHigh: &high,
	}); err != nil {
		t.Fatalf("CreateRule(recurring) error = %v", err)
	}

	rules, err := repo.ListRules(ctx, userID)
	if err != nil {
		t.Fatalf("ListRules() error = %v", err)
	}
	if len(rules) != 2 {
		t.Fatalf("ListRules() len = %d, want 2", len(rules))
	}

	mr, ok := rules[0].(core.MerchantRule)
	if !ok || mr.Merchant != "lieferando" {
		t.Errorf("rules[0] = %+v, want merchant rule lieferando", rules[0])
	}
	rr, ok := rules[1].(core.RecurringRule)
	if !ok || !rr.MustPay || rr.RangeHigh == nil || *rr.RangeHigh != 120 {
		t.Errorf("rules[1] = %+v, want must-pay recurring rule with range high 120", rules[1])
	}
	if rr.RangeLow != nil {
		t.Errorf("rules[1] RangeLow = %v, want nil", *rr.RangeLow)
	}

	if err := repo.DeleteRule(ctx, userID, "rule-m"); err != nil {
		t.Fatalf("DeleteRule() error = %v", err)
	}
	if err := repo.DeleteRule(ctx, userID, "rule-m"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second DeleteRule() error = %v, want ErrNotFound", err)
	}
}

func TestPaydayAndIncome(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	userID := newTestUser(t, repo, "payday@example.com")

	t.Run("settings upsert round trip", func(t *testing.T) {
		s := core.PaydaySettings{
			SalaryDay: 25, CurrentBalance: 1200, Buffer: 150,
			MustPayCategories: []core.Category{core.Rent, core.Utilities},
		}
		if err := repo.SavePaydaySettings(ctx, userID, s); err != nil {
			t.Fatalf("SavePaydaySettings() error = %v", err)
		}
		s.Buffer = 200
		if err := repo.SavePaydaySettings(ctx, userID, s); err != nil {
			t.Fatalf("SavePaydaySettings() upsert error = %v", err)
		}
		got, err := repo.GetPaydaySettings(ctx, userID)
		if err != nil {
			t.Fatalf("GetPaydaySettings() error = %v", err)
		}
		if got.Buffer != 200 || got.SalaryDay != 25 {
			t.Errorf("GetPaydaySettings() = %+v, want buffer 200 salary day 25", got)
		}
		if len(got.MustPayCategories) != 2 || got.MustPayCategories[0] != core.Rent {
			t.Errorf("MustPayCategories = %v, want [Rent Utilities]", got.MustPayCategories)
		}
	})

	t.Run("missing settings", func(t *testing.T) {
		other := newTestUser(t, repo, "no-settings@example.com")
		if _, err := repo.GetPaydaySettings(ctx, other); !errors.Is(err, ErrNotFound) {
			t.Errorf("GetPaydaySettings() error = %v, want ErrNotFound", err)
		}
	})

	t.Run("income schedules", func(t *testing.T) {
		in := core.IncomeSchedule{ID: "inc-1", Label: "Salary", DayOfMonth: 25, Amount: 3200, Active: true}
		if err := repo.CreateIncomeSchedule(ctx, userID, in); err != nil {
			t.Fatalf("CreateIncomeSchedule() error = %v", err)
		}
		list, err := repo.ListIncomeSchedules(ctx, userID)
		if err != nil {
			t.Fatalf("ListIncomeSchedules() error = %v", err)
		}
		if len(list) != 1 || !list[0].Active || list[0].Amount != 3200 {
			t.Errorf("ListIncomeSchedules() = %+v, want one active 3200 schedule", list)
		}
		if err := repo.DeleteIncomeSchedule(ctx, userID, "inc-1"); err != nil {
			t.Fatalf("DeleteIncomeSchedule() error = %v", err)
		}
		if err := repo.DeleteIncomeSchedule(ctx, userID, "inc-1"); !errors.Is(err, ErrNotFound) {
			t.Errorf("second DeleteIncomeSchedule() error = %v, want ErrNotFound", err)
		}
	})
}

func TestPreferences(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	userID := newTestUser(t, repo, "prefs@example.com")

	p := core.UserPreference{DashboardLayout: "cards", Currency: "EUR", Location: "Berlin, DE", Theme: "light"}
	if err := repo.SavePreferences(ctx, userID, p); err != nil {
		t.Fatalf("SavePreferences() error = %v", err)
	}
	p.Theme = "dark"
	if err := repo.SavePreferences(ctx, userID, p); err != nil {
		t.Fatalf("SavePreferences() upsert error = %v", err)
	}
	got, err := repo.GetPreferences(ctx, userID)
	if err != nil {
		t.Fatalf("GetPreferences() error = %v", err)
	}
	if got.Theme != "dark" || got.Currency != "EUR" {
		t.Errorf("GetPreferences() = %+v, want dark/EUR", got)
	}
}

func TestHouseholdAndShares(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	userID := newTestUser(t, repo, "household@example.com")

	if err := repo.SaveHousehold(ctx, userID, core.Household{ID: "hh-1", Name: "Home"}); err != nil {
		t.Fatalf("SaveHousehold() error = %v", err)
	}
	half := 50.0
	members := []core.HouseholdMember{
		{ID: "mem-1", Name: "You", ShareDefault: &half},
		{ID: "mem-2", Name: "Alex", Email: "alex@example.com", ShareDefault: &half},
	}
	for _, m := range members {
		if err := repo.UpsertMember(ctx, "hh-1", m); err != nil {
			t.Fatalf("UpsertMember() error = %v", err)
		}
	}

	t.Run("members round trip", func(t *testing.T) {
		got, err := repo.ListMembers(ctx, "hh-1")
		if err != nil {
			t.Fatalf("ListMembers() error = %v", err)
		}
		if len(got) != 2 {
			t.Fatalf("ListMembers() len = %d, want 2", len(got))
		}
		if got[0].Name != "Alex" || got[0].ShareDefault == nil || *got[0].ShareDefault != 50 {
			t.Errorf("ListMembers()[0] = %+v, want Alex with 50%% default", got[0])
		}
	})

	newTestTab(t, repo, userID, "tab-shared", 0)
	shares := []core.TabShare{
		{ID: "share-1", TabID: "tab-shared", MemberID: "mem-1", SharePercent: 60, ShareAmount: 120, Status: core.SharePending},
		{ID: "share-2", TabID: "tab-shared", MemberID: "mem-2", SharePercent: 40, ShareAmount: 80, Status: core.SharePending},
	}

	t.Run("replace is atomic and total", func(t *testing.T) {
		if err := repo.ReplaceTabShares(ctx, userID, "tab-shared", shares); err != nil {
			t.Fatalf("ReplaceTabShares() error = %v", err)
		}
		replacement := []core.TabShare{
			{ID: "share-3", TabID: "tab-shared", MemberID: "mem-1", SharePercent: 100, ShareAmount: 200, Status: core.SharePending},
		}
		if err := repo.ReplaceTabShares(ctx, userID, "tab-shared", replacement); err != nil {
			t.Fatalf("ReplaceTabShares() replacement error = %v", err)
		}
		got, err := repo.ListTabShares(ctx, userID, "tab-shared")
		if err != nil {
			t.Fatalf("ListTabShares() error = %v", err)
		}
		if len(got) != 1 || got[0].ID != "share-3" || got[0].MemberName != "You" {
			t.Errorf("ListTabShares() = %+v, want only share-3 for You", got)
		}
	})

	t.Run("update paid amount and status", func(t *testing.T) {
		if err := repo.UpdateTabShare(ctx, userID, "share-3", 200, core.SharePaid); err != nil {
			t.Fatalf("UpdateTabShare() error = %v", err)
		}
		got, err := repo.GetTabShare(ctx, userID, "share-3")
		if err != nil {
			t.Fatalf("GetTabShare() error = %v", err)
		}
		if got.PaidAmount != 200 || got.Status != core.SharePaid {
			t.Errorf("GetTabShare() = %+v, want paid 200", got)
		}
	})

	t.Run("foreign tab rejected", func(t *testing.T) {
		other := newTestUser(t, repo, "outsider@example.com")
		err := repo.ReplaceTabShares(ctx, other, "tab-shared", shares)
		if !errors.Is(err, ErrNotFound) {
			t.Errorf("ReplaceTabShares() for other user error = %v, want ErrNotFound", err)
		}
	})

	t.Run("foreign member not overwritten", func(t *testing.T) {
		other := newTestUser(t, repo, "neighbor@example.com")
		if err := repo.SaveHousehold(ctx, other, core.Household{ID: "hh-2", Name: "Next Door"}); err != nil {
			t.Fatalf("SaveHousehold() error = %v", err)
		}

		// mem-2 belongs to hh-1; upserting it under hh-2 must not touch it.
		err := repo.UpsertMember(ctx, "hh-2", core.HouseholdMember{
			ID: "mem-2", Name: "Hijacked", Email: "evil@example.com",
		})
		if !errors.Is(err, ErrNotFound) {
			t.Fatalf("UpsertMember() with foreign member ID error = %v, want ErrNotFound", err)
		}

		got, err := repo.ListMembers(ctx, "hh-1")
		if err != nil {
			t.Fatalf("ListMembers() error = %v", err)
		}
		if len(got) != 2 || got[0].Name != "Alex" || got[0].Email != "alex@example.com" {
			t.Errorf("ListMembers() = %+v, want Alex untouched", got)
		}
	})
}

func TestExpenseSeries(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	userID := newTestUser(t, repo, "series@example.com")

	first := []core.ExpensePoint{{Month: "2026-01", Amount: 100}, {Month: "2026-02", Amount: 110}}
	if err := repo.ReplaceExpenseSeries(ctx, userID, first); err != nil {
		t.Fatalf("ReplaceExpenseSeries() error = %v", err)
	}
	second := []core.ExpensePoint{{Month: "2026-03", Amount: 120}}
	if err := repo.ReplaceExpenseSeries(ctx, userID, second); err != nil {
		t.Fatalf("ReplaceExpenseSeries() replacement error = %v", err)
	}

	got, err := repo.GetExpenseSeries(ctx, userID)
	if err != nil {
		t.Fatalf("GetExpenseSeries() error = %v", err)
	}
	if len(got) != 1 || got[0].Month != "2026-03" {
		t.Errorf("GetExpenseSeries() = %+v, want only 2026-03", got)
	}
}

func TestNotifications(t *testing.T) {
	repo := newTestRepo(t)
	ctx := context.Background()
	userID := newTestUser(t, repo, "notif@example.com")

	n := core.Notification{ID: "n-1", Type: "limit_warning", Title: "Groceries is at 90% of its limit"}
	if err := repo.CreateNotification(ctx, userID, n); err != nil {
		t.Fatalf("CreateNotification() error = %v", err)
	}

	unread, err := repo.ListNotifications(ctx, userID, true)
	if err != nil {
		t.Fatalf("ListNotifications() error = %v", err)
	}
	if len(unread) != 1 || unread[0].ReadAt != nil {
		t.Fatalf("unread = %+v, want one unread notification", unread)
	}

	if err := repo.MarkNotificationRead(ctx, userID, "n-1"); err != nil {
		t.Fatalf("MarkNotificationRead() error = %v", err)
	}
	unread, _ = repo.ListNotifications(ctx, userID, true)
	if len(unread) != 0 {
		t.Errorf("unread after mark = %d, want 0", len(unread))
	}
	all, _ := repo.ListNotifications(ctx, userID, false)
	if len(all) != 1 || all[0].ReadAt == nil {
		t.Errorf("all = %+v, want one read notification", all)
	}
	if err := repo.MarkNotificationRead(ctx, userID, "n-1"); !errors.Is(err, ErrNotFound) {
		t.Errorf("second MarkNotificationRead() error = %v, want ErrNotFound", err)
	}
}
