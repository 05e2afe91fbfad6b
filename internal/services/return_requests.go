package services

import (
	"context"
	"errors"

	"github.com/unations/tax-engine/internal/interfaces"
	"github.com/unations/tax-engine/internal/logger"
	"github.com/unations/tax-engine/internal/taxerr"
	"github.com/unations/tax-engine/internal/types/api/params"
	"github.com/unations/tax-engine/internal/types/business"
	"go.uber.org/zap"
)

// ReturnRequestProcessor prepares the Draft return a queued period-close
// request asks for.
type ReturnRequestProcessor struct {
	filing interfaces.FilingService
	logger *zap.Logger
}

// NewReturnRequestProcessor creates a processor over a filing service
func NewReturnRequestProcessor(filing interfaces.FilingService) *ReturnRequestProcessor {
	return &ReturnRequestProcessor{filing: filing, logger: logger.ForComponent(logger.ComponentWorker)}
}

// Process files the requested return. A period that is already covered by a
// return is treated as done, so redelivered messages are harmless. Only
// retryable failures are returned as errors worth redelivering; malformed
// requests are logged and dropped.
func (p *ReturnRequestProcessor) Process(ctx context.Context, req business.ReturnRequest) (*business.TaxReturn, error) {
	ret, err := p.filing.FileReturn(ctx, params.FileReturnParams{
		EntityID:   req.EntityID,
		ReturnType: req.ReturnType,
		Period:     req.Period,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
	})
	switch {
	case err == nil:
		return ret, nil
	case errors.Is(err, taxerr.ErrPeriodOverlap):
		p.logger.Info("Return already prepared for period",
			zap.String("entity_id", req.EntityID),
			zap.String("period", req.Period))
		return nil, nil
	case taxerr.IsRetryable(err):
		return nil, err
	default:
		p.logger.Error("Dropping unprocessable return request",
			zap.String("entity_id", req.EntityID),
			zap.String("period", req.Period),
			zap.Error(err))
		return nil, nil
	}
}

// InlineReturnRequestPublisher processes requests synchronously instead of
// queueing them. It serves local runs without a queue.
type InlineReturnRequestPublisher struct {
	processor *ReturnRequestProcessor
}

// NewInlineReturnRequestPublisher creates a publisher that files immediately
func NewInlineReturnRequestPublisher(processor *ReturnRequestProcessor) *InlineReturnRequestPublisher {
	return &InlineReturnRequestPublisher{processor: processor}
}

// PublishReturnRequest files the return in the caller's goroutine
func (p *InlineReturnRequestPublisher) PublishReturnRequest(ctx context.Context, req business.ReturnRequest) error {
	_, err := p.processor.Process(ctx, req)
	return err
}
