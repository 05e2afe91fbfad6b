package main

import (
	"context"
	"log"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambda"
	awsclient "github.com/unations/tax-engine/internal/client/aws"
	"github.com/unations/tax-engine/internal/config"
	"github.com/unations/tax-engine/internal/logger"
	"github.com/unations/tax-engine/internal/server"
	"github.com/unations/tax-engine/internal/services"
	"go.uber.org/zap"
)

type Application struct {
	processor *services.ReturnRequestProcessor
	logger    *zap.Logger
}

// HandleSQSEvent prepares a Draft return per queued request. Only records
// that failed with a retryable error are reported back for redelivery.
func (app *Application) HandleSQSEvent(ctx context.Context, event events.SQSEvent) (events.SQSEventResponse, error) {
	app.logger.Info("Return processor handling SQS event",
		zap.Int("record_count", len(event.Records)))

	var response events.SQSEventResponse
	for _, record := range event.Records {
		if err := app.processRecord(ctx, record); err != nil {
			app.logger.Error("Failed to process return request",
				zap.String("message_id", record.MessageId),
				zap.Error(err))
			response.BatchItemFailures = append(response.BatchItemFailures, events.SQSBatchItemFailure{
				ItemIdentifier: record.MessageId,
			})
		}
	}

	app.logger.Info("Processed return requests",
		zap.Int("count", len(event.Records)),
		zap.Int("failed", len(response.BatchItemFailures)))
	return response, nil
}

func (app *Application) processRecord(ctx context.Context, record events.SQSMessage) error {
	req, err := awsclient.DecodeReturnRequest(record.Body)
	if err != nil {
		app.logger.Warn("Dropping malformed return request",
			zap.String("message_id", record.MessageId),
			zap.Error(err))
		return nil
	}

	ret, err := app.processor.Process(ctx, req)
	if err != nil {
		return err
	}
	if ret != nil {
		app.logger.Info("Prepared draft return",
			zap.String("message_id", record.MessageId),
			zap.String("entity_id", ret.EntityID),
			zap.String("return_id", ret.ReturnID.String()))
	}
	return nil
}

func main() {
	cfg, err := config.Load("")
	if err != nil {
		log.Fatalf("Invalid configuration: %v", err)
	}
	logger.InitLogger(cfg.Stage)
	defer func() { _ = logger.Sync() }()

	// The worker files inline; it must not publish back to its own queue
	cfg.Queue.ReturnQueueURL = ""
	engine, err := server.Connect(context.Background(), cfg)
	if err != nil {
		logger.Fatal("Failed to connect backends", zap.Error(err))
	}
	defer engine.Close()

	app := &Application{processor: engine.Processor, logger: logger.ForComponent(logger.ComponentWorker)}
	lambda.Start(app.HandleSQSEvent)
}
