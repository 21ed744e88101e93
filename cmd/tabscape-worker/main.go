package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/sohamkakraa/TabScape/internal/amqp"
	"github.com/sohamkakraa/TabScape/internal/cli"
	gsheet "github.com/sohamkakraa/TabScape/internal/sheets/google"
	"github.com/sohamkakraa/TabScape/internal/worker"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()

	logger.Info("Starting tabscape-worker")

	cfg := cli.LoadAndValidateConfig(logger)
	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// Ledger export is optional; without a spreadsheet the worker idles and
	// transactions stay pending.
	var syncWorker *worker.SyncWorker
	if cfg.GoogleSpreadsheetID != "" {
		ledger, err := gsheet.NewClient(ctx, gsheet.Options{
			SpreadsheetID:   cfg.GoogleSpreadsheetID,
			SheetName:       cfg.GoogleSheetName,
			CredentialsFile: cfg.GoogleCredentialsFile,
			CredentialsJSON: cfg.GoogleCredentialsJSON,
		})
		if err != nil {
			logger.Error("Failed to initialize Google Sheets client", "error", err)
			os.Exit(1)
		}
		syncWorker = worker.NewSyncWorker(repo, ledger, cfg.SyncBatchSize)
		logger.Info("Ledger export enabled", "spreadsheet_id", cfg.GoogleSpreadsheetID, "sheet", cfg.GoogleSheetName)

		logger.Info("Performing startup sync check...")
		if err := syncWorker.StartupSyncCheck(ctx); err != nil {
			logger.Error("Startup sync check failed", "error", err)
			// keep running; the periodic sweep retries
		}
	} else {
		logger.Info("Ledger export disabled - no GOOGLE_SPREADSHEET_ID provided")
	}

	g, gctx := errgroup.WithContext(ctx)

	// Consume sync messages when both a broker and a ledger are configured.
	if syncWorker != nil && cfg.AMQPURL != "" {
		amqpClient, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		defer amqpClient.Close()

		g.Go(func() error {
			handler := func(msg *amqp.TransactionSyncMessage) error {
				return syncWorker.HandleSyncMessage(gctx, msg)
			}
			return amqpClient.ConsumeTransactionSync(gctx, handler)
		})
	} else if syncWorker != nil {
		logger.Info("AMQP disabled - relying on periodic sweep only")
	}

	if syncWorker != nil {
		g.Go(func() error {
			ticker := time.NewTicker(cfg.SyncInterval)
			defer ticker.Stop()
			for {
				select {
				case <-gctx.Done():
					return gctx.Err()
				case <-ticker.C:
					if err := syncWorker.ProcessPending(gctx); err != nil {
						logger.Error("Periodic sync failed", "error", err)
					}
				}
			}
		})
	}

	// gctx ends on a signal or on the first loop failure.
	<-gctx.Done()
	logger.Info("Shutting down")
	stop()

	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Worker loop error", "error", err)
	}
	logger.Info("Worker shutdown complete")
}
