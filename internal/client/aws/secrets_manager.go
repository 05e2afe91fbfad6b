package aws

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/secretsmanager"
	"github.com/pkg/errors"
	"github.com/unations/tax-engine/internal/config"
	"github.com/unations/tax-engine/internal/logger"
	"go.uber.org/zap"
)

// SecretsAPI is the subset of the Secrets Manager client used here
type SecretsAPI interface {
	GetSecretValue(ctx context.Context, params *secretsmanager.GetSecretValueInput, optFns ...func(*secretsmanager.Options)) (*secretsmanager.GetSecretValueOutput, error)
}

// SecretsManagerClient reads engine secrets from AWS Secrets Manager
type SecretsManagerClient struct {
	svc    SecretsAPI
	logger *zap.Logger
}

// RDSSecret is the JSON layout of an RDS-managed credential secret
type RDSSecret struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// NewSecretsManagerClient creates a client from an SDK configuration
func NewSecretsManagerClient(cfg aws.Config) *SecretsManagerClient {
	return NewSecretsManagerClientFromAPI(secretsmanager.NewFromConfig(cfg))
}

// NewSecretsManagerClientFromAPI wraps an existing Secrets Manager API
func NewSecretsManagerClientFromAPI(svc SecretsAPI) *SecretsManagerClient {
	return &SecretsManagerClient{svc: svc, logger: logger.ForComponent(logger.ComponentDB)}
}

// GetSecretString fetches the plain string value of a secret
func (c *SecretsManagerClient) GetSecretString(ctx context.Context, secretARN string) (string, error) {
	result, err := c.svc.GetSecretValue(ctx, &secretsmanager.GetSecretValueInput{
		SecretId: aws.String(secretARN),
	})
	if err != nil {
		return "", errors.Wrapf(err, "failed to fetch secret %s", secretARN)
	}
	if result.SecretString == nil || *result.SecretString == "" {
		return "", fmt.Errorf("secret %s has no string value", secretARN)
	}
	return *result.SecretString, nil
}

// GetSecretJSON fetches a secret and unmarshals its JSON value into target
func (c *SecretsManagerClient) GetSecretJSON(ctx context.Context, secretARN string, target interface{}) error {
	value, err := c.GetSecretString(ctx, secretARN)
	if err != nil {
		return err
	}
	if err := json.Unmarshal([]byte(value), target); err != nil {
		return errors.Wrapf(err, "secret %s is not valid JSON", secretARN)
	}
	return nil
}

// DatabaseURL returns the configured DSN, or builds one from the RDS secret
func (c *SecretsManagerClient) DatabaseURL(ctx context.Context, db config.DatabaseConfig) (string, error) {
	if db.URL != "" {
		return db.URL, nil
	}
	if db.SecretARN == "" {
		return "", fmt.Errorf("neither DATABASE_URL nor RDS_SECRET_ARN is set")
	}
	if db.Host == "" || db.Name == "" {
		return "", fmt.Errorf("DB_HOST and DB_NAME are required with RDS_SECRET_ARN")
	}

	var secret RDSSecret
	if err := c.GetSecretJSON(ctx, db.SecretARN, &secret); err != nil {
		return "", err
	}
	if secret.Username == "" || secret.Password == "" {
		return "", fmt.Errorf("RDS secret %s is missing username or password", db.SecretARN)
	}
	c.logger.Info("Resolved database credentials from Secrets Manager",
		zap.String("db_host", db.Host),
		zap.String("db_name", db.Name))
	return db.DSN(secret.Username, secret.Password), nil
}
