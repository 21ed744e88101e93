package worker

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/sohamkakraa/TabScape/internal/amqp"
	"github.com/sohamkakraa/TabScape/internal/core"
	"github.com/sohamkakraa/TabScape/internal/sheets"
	"github.com/sohamkakraa/TabScape/internal/storage"
)

// SyncWorker mirrors committed transactions from SQLite to the household
// ledger.
type SyncWorker struct {
	storage   *storage.SQLiteRepository
	ledger    sheets.LedgerAppender
	batchSize int
}

func NewSyncWorker(storage *storage.SQLiteRepository, ledger sheets.LedgerAppender, batchSize int) *SyncWorker {
	return &SyncWorker{
		storage:   storage,
		ledger:    ledger,
		batchSize: batchSize,
	}
}

// HandleSyncMessage processes a single transaction sync message from AMQP
func (w *SyncWorker) HandleSyncMessage(ctx context.Context, msg *amqp.TransactionSyncMessage) error {
	slog.InfoContext(ctx, "Processing sync message", "id", msg.ID)

	tx, err := w.storage.GetTransaction(ctx, msg.ID)
	if err != nil {
		return fmt.Errorf("get transaction from storage: %w", err)
	}

	if err := w.exportTransaction(ctx, tx); err != nil {
		return fmt.Errorf("export transaction: %w", err)
	}

	return nil
}

// ProcessPending exports transactions that never reached the ledger. This is
// a backup mechanism in case AMQP messages are lost.
func (w *SyncWorker) ProcessPending(ctx context.Context) error {
	pending, err := w.storage.GetPendingSyncTransactions(ctx, w.batchSize)
	if err != nil {
		return fmt.Errorf("get pending transactions: %w", err)
	}

	if len(pending) == 0 {
		return nil
	}

	slog.InfoContext(ctx, "Processing pending transactions", "count", len(pending))

	for _, p := range pending {
		tx, err := w.storage.GetTransaction(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get transaction", "id", p.ID, "error", err)
			if err := w.storage.MarkSyncError(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", p.ID, "error", err)
			}
			continue
		}

		if err := w.exportTransaction(ctx, tx); err != nil {
			slog.ErrorContext(ctx, "Failed to export transaction", "id", p.ID, "error", err)
			continue
		}
	}

	return nil
}

// StartupSyncCheck drains the pending backlog at worker startup, recovering
// from missed AMQP messages or worker downtime.
func (w *SyncWorker) StartupSyncCheck(ctx context.Context) error {
	pending, err := w.storage.GetPendingSyncTransactions(ctx, w.batchSize*5)
	if err != nil {
		return fmt.Errorf("get pending transactions for startup check: %w", err)
	}

	if len(pending) == 0 {
		slog.InfoContext(ctx, "No pending transactions found on startup")
		return nil
	}

	slog.InfoContext(ctx, "Found pending transactions on startup, processing...",
		"count", len(pending))

	successCount := 0
	errorCount := 0

	for _, p := range pending {
		tx, err := w.storage.GetTransaction(ctx, p.ID)
		if err != nil {
			slog.ErrorContext(ctx, "Failed to get transaction for startup sync",
				"id", p.ID, "error", err)
			if err := w.storage.MarkSyncError(ctx, p.ID); err != nil {
				slog.ErrorContext(ctx, "Failed to mark sync error", "id", p.ID, "error", err)
			}
			errorCount++
			continue
		}

		if err := w.exportTransaction(ctx, tx); err != nil {
			slog.ErrorContext(ctx, "Failed to export transaction during startup",
				"id", p.ID, "error", err)
			errorCount++
			continue
		}

		successCount++
	}

	slog.InfoContext(ctx, "Startup sync completed",
		"total", len(pending),
		"synced", successCount,
		"errors", errorCount)

	return nil
}

func (w *SyncWorker) exportTransaction(ctx context.Context, tx core.Transaction) error {
	row := sheets.LedgerRow{
		TransactionID: tx.ID,
		Date:          tx.Date.Format("2006-01-02"),
		Merchant:      tx.Merchant,
		Memo:          tx.Memo,
		Amount:        tx.Amount,
		Category:      string(tx.Category),
		Type:          string(tx.Type),
	}

	ref, err := w.ledger.AppendLedgerRow(ctx, row)
	if err != nil {
		if markErr := w.storage.MarkSyncError(ctx, tx.ID); markErr != nil {
			slog.ErrorContext(ctx, "Failed to mark sync error", "id", tx.ID, "error", markErr)
		}
		return fmt.Errorf("append to ledger: %w", err)
	}

	if err := w.storage.MarkSynced(ctx, tx.ID); err != nil {
		// The export itself worked; leave the row pending for the next sweep
		slog.ErrorContext(ctx, "Failed to mark as synced", "id", tx.ID, "error", err)
	}

	slog.InfoContext(ctx, "Transaction exported to ledger",
		"id", tx.ID,
		"sheets_ref", ref,
		"merchant", tx.Merchant,
		"amount", tx.Amount)

	return nil
}
