//go:build !lambda
// +build !lambda

package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/unations/tax-engine/internal/config"
	"github.com/unations/tax-engine/internal/logger"
	"github.com/unations/tax-engine/internal/server"
	"go.uber.org/zap"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Printf("no .env loaded: %v", err)
	}

	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}

	logger.InitLogger(cfg.Stage)
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	engine, err := server.Connect(ctx, cfg)
	if err != nil {
		logger.Fatal("Tax engine unavailable", zap.Error(err))
	}
	defer engine.Close()

	router := server.NewRouter(engine)
	go server.RateLimiter().Run(ctx)
	go reloadRatesOnHangup(ctx, engine)

	srv := &http.Server{
		Addr:              fmt.Sprintf(":%s", cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 20 * time.Second,
	}
	go func() {
		logger.Info("Tax engine listening",
			zap.String("addr", srv.Addr),
			zap.String("stage", cfg.Stage),
			zap.Int("jurisdictions", len(engine.Rates.ListRates())))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Fatal("Listener stopped", zap.Error(err))
		}
	}()

	<-ctx.Done()
	drainCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(drainCtx); err != nil {
		logger.Error("In-flight requests abandoned", zap.Error(err))
	}
	logger.Info("Tax engine stopped")
}

// reloadRatesOnHangup swaps in a fresh rate table from RATE_TABLE_FILE on SIGHUP
func reloadRatesOnHangup(ctx context.Context, engine *server.Engine) {
	hup := make(chan os.Signal, 1)
	signal.Notify(hup, syscall.SIGHUP)
	defer signal.Stop(hup)

	for {
		select {
		case <-ctx.Done():
			return
		case <-hup:
			if err := engine.ReloadRates(); err != nil {
				logger.Error("Rate table reload failed", zap.Error(err))
				continue
			}
			logger.Info("Rate table reloaded", zap.String("file", engine.Config.Engine.RateTableFile))
		}
	}
}
