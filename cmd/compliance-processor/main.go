package main

import (
	"context"
	"fmt"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	"github.com/unations/tax-engine/internal/config"
	"github.com/unations/tax-engine/internal/logger"
	"github.com/unations/tax-engine/internal/server"
	"github.com/unations/tax-engine/internal/types/business"
	"go.uber.org/zap"
)

type Application struct {
	engine *server.Engine
	logger *zap.Logger
}

// HandleScheduledEvent runs one compliance assessment pass
func (app *Application) HandleScheduledEvent(ctx context.Context, event events.CloudWatchEvent) (*business.ComplianceRunResults, error) {
	app.logger.Info("Compliance processor triggered",
		zap.String("event_id", event.ID),
		zap.Time("scheduled_at", event.Time))

	results, err := app.engine.Compliance.RunAssessment(ctx)
	if err != nil {
		return results, fmt.Errorf("compliance assessment failed: %w", err)
	}

	app.logger.Info("Compliance assessment completed",
		zap.Int("entities", results.Entities),
		zap.Int("assessed", results.Assessed),
		zap.Int("failed", results.Failed),
		zap.Int("overdue_remittances", results.OverdueRemittances),
		zap.Int("high_risk", results.HighRiskEntities),
		zap.Int("medium_risk", results.MediumRiskEntities))
	return results, nil
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logger.InitLogger(cfg.Stage)
	defer func() { _ = logger.Sync() }()

	engine, err := server.Connect(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to connect backends", zap.Error(err))
	}
	defer engine.Close()

	app := &Application{engine: engine, logger: logger.ForComponent(logger.ComponentWorker)}
	lambda.Start(app.HandleScheduledEvent)
}
