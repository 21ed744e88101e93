package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sohamkakraa/TabScape/internal/amqp"
	"github.com/sohamkakraa/TabScape/internal/cache"
	"github.com/sohamkakraa/TabScape/internal/cli"
	apphttp "github.com/sohamkakraa/TabScape/internal/http"
	"github.com/sohamkakraa/TabScape/internal/services"
)

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	repo := cli.InitSQLite(logger, cfg.SQLiteDBPath)
	defer repo.Close()

	// AMQP is optional; without a broker transactions stay locally pending
	// until the worker sweeps them.
	var amqpClient *amqp.Client
	if cfg.AMQPURL != "" {
		client, err := amqp.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
		if err != nil {
			logger.Error("Failed to initialize AMQP client", "error", err)
			os.Exit(1)
		}
		amqpClient = client
		defer amqpClient.Close()
		logger.Info("AMQP publisher initialized", "exchange", cfg.AMQPExchange, "queue", cfg.AMQPQueue)
	} else {
		logger.Info("AMQP disabled - no AMQP_URL provided")
	}

	rules := services.NewRuleService(repo)

	cacheManager := cache.NewManager()
	cacheManager.Register(rules.Cache())
	cacheManager.StartCleanup(10 * time.Minute)
	defer cacheManager.Stop()

	srv := apphttp.NewServer(apphttp.Options{
		Addr:           ":" + cfg.Port,
		Storage:        repo,
		Transactions:   services.NewTransactionService(repo, rules, amqpClient),
		Planner:        services.NewPlannerService(repo),
		Rules:          rules,
		SessionTTL:     cfg.SessionTTL,
		BcryptCost:     cfg.BcryptCost,
		Logger:         logger,
		TrustedProxies: cfg.TrustedProxies,
	})
	srv.ReadTimeout = 10 * time.Second
	srv.WriteTimeout = 10 * time.Second
	srv.IdleTimeout = 60 * time.Second
	srv.MaxHeaderBytes = 1 << 16

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Hourly sweep keeps the sessions table from accumulating dead rows.
	go func() {
		ticker := time.NewTicker(time.Hour)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if err := repo.DeleteExpiredSessions(ctx, time.Now()); err != nil {
					slog.WarnContext(ctx, "Session cleanup failed", "error", err)
				}
			}
		}
	}()

	go func() {
		sigChan := make(chan os.Signal, 1)
		signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
		sig := <-sigChan
		logger.Info("Shutdown signal received", "signal", sig.String())

		shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer shutdownCancel()

		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error("Server shutdown error", "error", err)
		}
		cancel()
	}()

	logger.Info("Starting TabScape server", "port", cfg.Port, "db", cfg.SQLiteDBPath)
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("Server error", "error", err, "port", cfg.Port)
		os.Exit(1)
	}

	<-ctx.Done()
	logger.Info("Server stopped gracefully")
}
