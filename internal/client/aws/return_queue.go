package aws

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/aws/aws-sdk-go-v2/service/sqs/types"
	"github.com/pkg/errors"
	"github.com/unations/tax-engine/internal/logger"
	"github.com/unations/tax-engine/internal/types/business"
	"go.uber.org/zap"
)

const (
	attrEntityID   = "EntityID"
	attrReturnType = "ReturnType"
	attrPeriod     = "Period"
)

// SQSAPI is the subset of the SQS client used here
type SQSAPI interface {
	SendMessage(ctx context.Context, params *sqs.SendMessageInput, optFns ...func(*sqs.Options)) (*sqs.SendMessageOutput, error)
}

// ReturnQueue publishes period-close requests to SQS
type ReturnQueue struct {
	client   SQSAPI
	queueURL string
	logger   *zap.Logger
}

// NewReturnQueue creates a queue publisher from an SDK configuration
func NewReturnQueue(cfg aws.Config, queueURL string) *ReturnQueue {
	return NewReturnQueueFromAPI(sqs.NewFromConfig(cfg), queueURL)
}

// NewReturnQueueFromAPI wraps an existing SQS API
func NewReturnQueueFromAPI(client SQSAPI, queueURL string) *ReturnQueue {
	return &ReturnQueue{client: client, queueURL: queueURL, logger: logger.ForComponent(logger.ComponentWorker)}
}

// PublishReturnRequest enqueues one entity's period close
func (q *ReturnQueue) PublishReturnRequest(ctx context.Context, req business.ReturnRequest) error {
	body, err := json.Marshal(req)
	if err != nil {
		return fmt.Errorf("failed to marshal return request: %w", err)
	}

	out, err := q.client.SendMessage(ctx, &sqs.SendMessageInput{
		QueueUrl:    aws.String(q.queueURL),
		MessageBody: aws.String(string(body)),
		MessageAttributes: map[string]types.MessageAttributeValue{
			attrEntityID:   {DataType: aws.String("String"), StringValue: aws.String(req.EntityID)},
			attrReturnType: {DataType: aws.String("String"), StringValue: aws.String(req.ReturnType)},
			attrPeriod:     {DataType: aws.String("String"), StringValue: aws.String(req.Period)},
		},
	})
	if err != nil {
		return errors.Wrapf(err, "failed to queue return request for %s", req.EntityID)
	}

	q.logger.Info("Queued return request",
		zap.String("entity_id", req.EntityID),
		zap.String("period", req.Period),
		zap.String("message_id", aws.ToString(out.MessageId)))
	return nil
}

// DecodeReturnRequest parses a queued message body
func DecodeReturnRequest(body string) (business.ReturnRequest, error) {
	var req business.ReturnRequest
	if err := json.Unmarshal([]byte(body), &req); err != nil {
		return req, fmt.Errorf("failed to unmarshal return request: %w", err)
	}
	if strings.TrimSpace(req.EntityID) == "" {
		return req, fmt.Errorf("return request is missing entity_id")
	}
	return req, nil
}
