package aws_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/aws/aws-sdk-go-v2/service/sqs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	awsclient "github.com/unations/tax-engine/internal/client/aws"
	"github.com/unations/tax-engine/internal/config"
	"github.com/unations/tax-engine/internal/types/business"
)

type fakeSecrets struct {
	values map[string]string
	calls  int
}

func (f *fakeSecrets) GetSecretValue(ctx context.Context, in *secretsmanager.GetSecretValueInput, _ ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error) {
	f.calls++
	v, ok := f.values[aws.ToString(in.SecretId)]
	if !ok {
		return nil, errors.New("ResourceNotFoundException")
	}
	return &secretsmanager.GetSecretValueOutput{SecretString: aws.String(v)}, nil
}

type fakeSQS struct {
	inputs []*sqs.SendMessageInput
	err    error
}

func (f *fakeSQS) SendMessage(ctx context.Context, in *sqs.SendMessageInput, _ ...func(*sqs.Options)) (*sqs.SendMessageOutput, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.inputs = append(f.inputs, in)
	return &sqs.SendMessageOutput{MessageId: aws.String("msg-1")}, nil
}

func TestSecretsManagerClient_DatabaseURL(t *testing.T) {
	ctx := context.Background()
	secrets := &fakeSecrets{values: map[string]string{
		"arn:rds":     `{"username":"tax","password":"p@ss"}`,
		"arn:broken":  `not json`,
		"arn:partial": `{"username":"tax"}`,
	}}
	client := awsclient.NewSecretsManagerClientFromAPI(secrets)
	base := config.DatabaseConfig{Host: "db:5432", Name: "tax", SSLMode: "require"}

	t.Run("explicit url wins", func(t *testing.T) {
		db := base
		db.URL = "postgres://local/tax"
		db.SecretARN = "arn:rds"
		dsn, err := client.DatabaseURL(ctx, db)
		require.NoError(t, err)
		assert.Equal(t, "postgres://local/tax", dsn)
		assert.Zero(t, secrets.calls)
	})

	t.Run("builds dsn from rds secret", func(t *testing.T) {
		db := base
		db.SecretARN = "arn:rds"
		dsn, err := client.DatabaseURL(ctx, db)
		require.NoError(t, err)
		assert.Equal(t, "postgres://tax:p%40ss@db:5432/tax?sslmode=require", dsn)
	})

	for _, arn := range []string{"arn:broken", "arn:partial", "arn:missing"} {
		t.Run("rejects "+arn, func(t *testing.T) {
			db := base
			db.SecretARN = arn
			_, err := client.DatabaseURL(ctx, db)
			assert.Error(t, err)
		})
	}

	t.Run("requires a location", func(t *testing.T) {
		_, err := client.DatabaseURL(ctx, config.DatabaseConfig{})
		assert.Error(t, err)
	})
}

func TestReturnQueue_PublishReturnRequest(t *testing.T) {
	ctx := context.Background()
	fake := &fakeSQS{}
	queue := awsclient.NewReturnQueueFromAPI(fake, "https://sqs.example/returns")

	req := business.ReturnRequest{
		EntityID:   "merchant-1",
		ReturnType: "monthly",
		Period:     "2025-03",
		StartDate:  time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC),
		EndDate:    time.Date(2025, 4, 1, 0, 0, 0, 0, time.UTC),
	}
	require.NoError(t, queue.PublishReturnRequest(ctx, req))
	require.Len(t, fake.inputs, 1)

	in := fake.inputs[0]
	assert.Equal(t, "https://sqs.example/returns", aws.ToString(in.QueueUrl))
	assert.Equal(t, "merchant-1", aws.ToString(in.MessageAttributes["EntityID"].StringValue))
	assert.Equal(t, "2025-03", aws.ToString(in.MessageAttributes["Period"].StringValue))

	decoded, err := awsclient.DecodeReturnRequest(aws.ToString(in.MessageBody))
	require.NoError(t, err)
	assert.Equal(t, req, decoded)

	fake.err = errors.New("throttled")
	assert.Error(t, queue.PublishReturnRequest(ctx, req))
}

func TestDecodeReturnRequest_Rejects(t *testing.T) {
	_, err := awsclient.DecodeReturnRequest(`{"period":"2025-03"}`)
	assert.Error(t, err)
	_, err = awsclient.DecodeReturnRequest(`{`)
	assert.Error(t, err)
}
