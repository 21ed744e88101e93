// Package services orchestrates TabScape operations across storage, AMQP,
// and the core computations.
package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/sohamkakraa/TabScape/internal/amqp"
	"github.com/sohamkakraa/TabScape/internal/core"
	"github.com/sohamkakraa/TabScape/internal/storage"
)

// TransactionService records transactions against tabs and queues them for
// the ledger export.
type TransactionService struct {
	storage    *storage.SQLiteRepository
	rules      *RuleService
	amqpClient *amqp.Client
}

func NewTransactionService(storage *storage.SQLiteRepository, rules *RuleService, amqpClient *amqp.Client) *TransactionService {
	if rules == nil {
		rules = NewRuleService(storage)
	}
	return &TransactionService{
		storage:    storage,
		rules:      rules,
		amqpClient: amqpClient,
	}
}

// Create validates, auto-categorizes, and persists the transaction, then
// publishes a sync message. The publish is best-effort: the transaction is
// committed locally whether or not the broker is reachable.
func (s *TransactionService) Create(ctx context.Context, userID string, t core.Transaction) (core.Transaction, error) {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	if t.Type == "" {
		t.Type = core.TxCharge
	}
	t.Amount = core.Round2(core.SignedAmount(t.Amount, t.Type))
	for i := range t.Tags {
		if t.Tags[i].ID == "" {
			t.Tags[i].ID = uuid.NewString()
		}
	}

	if err := t.Validate(); err != nil {
		return core.Transaction{}, fmt.Errorf("validate transaction: %w", err)
	}

	category, err := s.rules.ResolveCategory(ctx, userID, t.Merchant, t.Memo, t.Category)
	if err != nil {
		return core.Transaction{}, err
	}
	t.Category = category

	if err := s.storage.CreateTransaction(ctx, userID, t); err != nil {
		return core.Transaction{}, fmt.Errorf("save transaction: %w", err)
	}

	if err := s.publishSyncMessage(ctx, t.ID); err != nil {
		// Don't fail the request, the transaction is committed locally
		slog.ErrorContext(ctx, "Failed to publish sync message", "id", t.ID, "error", err)
	}

	return t, nil
}

func (s *TransactionService) Delete(ctx context.Context, userID, id string) error {
	if err := s.storage.DeleteTransaction(ctx, userID, id); err != nil {
		return fmt.Errorf("delete transaction: %w", err)
	}
	return nil
}

func (s *TransactionService) List(ctx context.Context, userID, tabID string) ([]core.Transaction, error) {
	return s.storage.ListTransactions(ctx, userID, tabID)
}

func (s *TransactionService) publishSyncMessage(ctx context.Context, id string) error {
	if s.amqpClient == nil {
		slog.WarnContext(ctx, "AMQP client not available, skipping sync message")
		return nil
	}
	return s.amqpClient.PublishTransactionSync(ctx, id)
}

// Close closes both storage and AMQP connections
func (s *TransactionService) Close() error {
	var errs []string

	if s.storage != nil {
		if err := s.storage.Close(); err != nil {
			errs = append(errs, fmt.Sprintf("storage: %v", err))
		}
	}
	if s.amqpClient != nil {
		if err := s.amqpClient.Close(); err != nil {
			errs = append(errs, fmt.Sprintf("amqp: %v", err))
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("close transaction service: %s", strings.Join(errs, "; "))
	}
	return nil
}
