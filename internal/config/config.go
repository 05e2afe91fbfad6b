// Package config loads runtime settings from the environment, with an
// optional .env file underneath and defaults underneath that.
package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"github.com/unations/tax-engine/internal/constants"
	"github.com/unations/tax-engine/internal/helpers"
)

type Config struct {
	Stage     string
	Port      string
	Database  DatabaseConfig
	Redis     RedisConfig
	Engine    EngineConfig
	Queue     QueueConfig
	CORS      CORSConfig
	RateLimit RateLimitConfig
	AWS       AWSConfig
}

// DatabaseConfig locates Postgres. URL wins; otherwise credentials come from
// the Secrets Manager secret at SecretARN and are combined with Host and Name.
// An empty config selects the in-memory store.
type DatabaseConfig struct {
	URL       string
	Host      string
	Name      string
	SecretARN string
	SSLMode   string
}

type RedisConfig struct {
	URL string
}

type EngineConfig struct {
	RateTableFile           string
	ExemptionCacheTTL       time.Duration
	StoreTimeout            time.Duration
	ITCRatio                decimal.Decimal
	ParallelThreshold       int
	StatusCardValidityYears int
}

type QueueConfig struct {
	ReturnQueueURL string
}

type CORSConfig struct {
	AllowedOrigins []string
	AllowedMethods []string
	AllowedHeaders []string
}

type RateLimitConfig struct {
	RequestsPerSecond float64
	Burst             int
}

type AWSConfig struct {
	Region      string
	EndpointURL string
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("STAGE", helpers.StageLocal)
	v.SetDefault("PORT", "8000")
	v.SetDefault("DB_SSLMODE", "require")
	v.SetDefault("EXEMPTION_CACHE_TTL", "5m")
	v.SetDefault("STORE_TIMEOUT", "3s")
	v.SetDefault("ITC_RATIO", constants.DefaultITCRatio)
	v.SetDefault("PARALLEL_THRESHOLD", 64)
	v.SetDefault("STATUS_CARD_VALIDITY_YEARS", 5)
	v.SetDefault("CORS_ALLOWED_ORIGINS", "http://localhost:3000")
	v.SetDefault("CORS_ALLOWED_METHODS", "GET,POST,PUT,PATCH,DELETE,OPTIONS")
	v.SetDefault("CORS_ALLOWED_HEADERS", "Origin,Content-Type,Accept,Authorization,X-API-Key,X-Correlation-ID")
	v.SetDefault("RATE_LIMIT_RPS", 100)
	v.SetDefault("RATE_LIMIT_BURST", 200)
	v.SetDefault("AWS_REGION", "ca-central-1")
}

// Load reads configuration from the process environment. envFile, when non
// empty and present, supplies values the environment does not set.
func Load(envFile string) (*Config, error) {
	v := viper.New()
	setDefaults(v)
	v.AutomaticEnv()

	if envFile != "" {
		if _, err := os.Stat(envFile); err == nil {
			v.SetConfigFile(envFile)
			v.SetConfigType("env")
			if err := v.ReadInConfig(); err != nil {
				return nil, fmt.Errorf("failed to read %s: %w", envFile, err)
			}
		}
	}

	return fromViper(v)
}

func fromViper(v *viper.Viper) (*Config, error) {
	stage := v.GetString("STAGE")
	if !helpers.IsValidStage(stage) {
		return nil, fmt.Errorf("invalid STAGE %q: must be one of %s", stage, strings.Join(helpers.ValidStages, ", "))
	}

	itcRatio, err := helpers.ParseRate(v.GetString("ITC_RATIO"))
	if err != nil {
		return nil, fmt.Errorf("invalid ITC_RATIO: %w", err)
	}

	cfg := &Config{
		Stage: stage,
		Port:  v.GetString("PORT"),
		Database: DatabaseConfig{
			URL:       v.GetString("DATABASE_URL"),
			Host:      v.GetString("DB_HOST"),
			Name:      v.GetString("DB_NAME"),
			SecretARN: v.GetString("RDS_SECRET_ARN"),
			SSLMode:   v.GetString("DB_SSLMODE"),
		},
		Redis: RedisConfig{URL: v.GetString("REDIS_URL")},
		Engine: EngineConfig{
			RateTableFile:           v.GetString("RATE_TABLE_FILE"),
			ExemptionCacheTTL:       v.GetDuration("EXEMPTION_CACHE_TTL"),
			StoreTimeout:            v.GetDuration("STORE_TIMEOUT"),
			ITCRatio:                itcRatio,
			ParallelThreshold:       v.GetInt("PARALLEL_THRESHOLD"),
			StatusCardValidityYears: v.GetInt("STATUS_CARD_VALIDITY_YEARS"),
		},
		Queue: QueueConfig{ReturnQueueURL: v.GetString("RETURN_QUEUE_URL")},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
			AllowedMethods: splitList(v.GetString("CORS_ALLOWED_METHODS")),
			AllowedHeaders: splitList(v.GetString("CORS_ALLOWED_HEADERS")),
		},
		RateLimit: RateLimitConfig{
			RequestsPerSecond: v.GetFloat64("RATE_LIMIT_RPS"),
			Burst:             v.GetInt("RATE_LIMIT_BURST"),
		},
		AWS: AWSConfig{
			Region:      v.GetString("AWS_REGION"),
			EndpointURL: v.GetString("AWS_ENDPOINT_URL"),
		},
	}

	if helpers.IsDeployedStage(stage) && !cfg.Database.UsesPostgres() {
		return nil, fmt.Errorf("STAGE %s requires DATABASE_URL or RDS_SECRET_ARN", stage)
	}
	if cfg.Engine.StoreTimeout <= 0 {
		return nil, fmt.Errorf("STORE_TIMEOUT must be positive, got %s", cfg.Engine.StoreTimeout)
	}
	if cfg.Engine.ExemptionCacheTTL < 0 {
		return nil, fmt.Errorf("EXEMPTION_CACHE_TTL must not be negative, got %s", cfg.Engine.ExemptionCacheTTL)
	}
	if cfg.Engine.ParallelThreshold < 1 {
		return nil, fmt.Errorf("PARALLEL_THRESHOLD must be at least 1, got %d", cfg.Engine.ParallelThreshold)
	}
	if cfg.Engine.StatusCardValidityYears < 1 {
		return nil, fmt.Errorf("STATUS_CARD_VALIDITY_YEARS must be at least 1, got %d", cfg.Engine.StatusCardValidityYears)
	}
	return cfg, nil
}

// IsDevelopment reports whether verbose request dumps are allowed
func (c *Config) IsDevelopment() bool {
	return c.Stage != helpers.StageProd
}

// UsesPostgres reports whether any database location is configured
func (c DatabaseConfig) UsesPostgres() bool {
	return c.URL != "" || c.SecretARN != ""
}

// DSN assembles a connection string from discrete credentials
func (c DatabaseConfig) DSN(username, password string) string {
	return fmt.Sprintf("postgres://%s:%s@%s/%s?sslmode=%s",
		url.QueryEscape(username), url.QueryEscape(password), c.Host, c.Name, c.SSLMode)
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
