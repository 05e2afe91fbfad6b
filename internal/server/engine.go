package server

import (
	"context"
	"fmt"
	"time"

	awsclient "github.com/unations/tax-engine/internal/client/aws"
	"github.com/unations/tax-engine/internal/config"
	"github.com/unations/tax-engine/internal/db"
	"github.com/unations/tax-engine/internal/db/memory"
	"github.com/unations/tax-engine/internal/interfaces"
	"github.com/unations/tax-engine/internal/logger"
	"github.com/unations/tax-engine/internal/services"
	"go.uber.org/zap"
)

// Engine is the wired set of services behind the API and the workers
type Engine struct {
	Config         *config.Config
	Rates          *services.RateTable
	Tax            *services.TaxService
	StatusCards    *services.StatusCardRegistry
	Filing         *services.FilingService
	Compliance     *services.ComplianceTracker
	Processor      *services.ReturnRequestProcessor
	ReturnRequests interfaces.ReturnRequestPublisher

	closers []func()
}

// Backends are the collaborators an Engine runs on. Nil Cache disables
// decision caching; nil Publisher files batch requests inline.
type Backends struct {
	Store     interfaces.TaxStore
	Records   interfaces.ExemptionRecordStore
	Cache     interfaces.ExemptionCache
	Publisher interfaces.ReturnRequestPublisher
	Rates     *services.RateTable
	Now       func() time.Time
}

// NewEngine wires the engine services over the given backends
func NewEngine(cfg *config.Config, b Backends) *Engine {
	if b.Rates == nil {
		b.Rates = services.NewDefaultRateTable()
	}
	if b.Cache == nil {
		b.Cache = services.NoopExemptionCache{}
	}
	if b.Now == nil {
		b.Now = time.Now
	}
	engineCfg := cfg.Engine

	records := services.NewInvalidatingRecordStore(b.Records, b.Cache)
	resolver := services.NewExemptionResolver(records, b.Rates, b.Rates,
		services.WithExemptionCache(b.Cache, engineCfg.ExemptionCacheTTL),
		services.WithResolverStoreTimeout(engineCfg.StoreTimeout),
		services.WithResolverClock(b.Now),
	)
	calculator := services.NewTransactionCalculator(b.Rates, resolver,
		services.WithParallelThreshold(engineCfg.ParallelThreshold),
		services.WithCalculatorClock(b.Now),
	)
	compliance := services.NewComplianceTracker(b.Store, engineCfg.StoreTimeout, b.Now)
	filing := services.NewFilingService(services.FilingServiceConfig{
		Store:        b.Store,
		Aggregator:   services.NewReturnAggregator(services.FlatRatioITCPolicy(engineCfg.ITCRatio), b.Now),
		Compliance:   compliance,
		StoreTimeout: engineCfg.StoreTimeout,
		Now:          b.Now,
	})

	e := &Engine{
		Config: cfg,
		Rates:  b.Rates,
		Tax:    services.NewTaxService(calculator, b.Rates, b.Store, engineCfg.StoreTimeout),
		StatusCards: services.NewStatusCardRegistry(services.StatusCardRegistryConfig{
			Records:       records,
			ValidityYears: engineCfg.StatusCardValidityYears,
			StoreTimeout:  engineCfg.StoreTimeout,
			Now:           b.Now,
		}),
		Filing:         filing,
		Compliance:     compliance,
		Processor:      services.NewReturnRequestProcessor(filing),
		ReturnRequests: b.Publisher,
	}
	if e.ReturnRequests == nil {
		e.ReturnRequests = services.NewInlineReturnRequestPublisher(e.Processor)
	}
	return e
}

// Connect resolves the configured backends and builds an Engine: Postgres
// or the in-memory store, Redis or an in-process cache, and the SQS return
// queue when a queue URL is set.
func Connect(ctx context.Context, cfg *config.Config) (*Engine, error) {
	log := logger.ForComponent(logger.ComponentAPI)
	var b Backends
	var closers []func()
	fail := func(err error) (*Engine, error) {
		for _, c := range closers {
			c()
		}
		return nil, err
	}

	if cfg.Engine.RateTableFile != "" {
		rates, err := services.LoadRateTableFile(cfg.Engine.RateTableFile)
		if err != nil {
			return fail(err)
		}
		b.Rates = rates
		log.Info("Loaded rate table", zap.String("file", cfg.Engine.RateTableFile))
	}

	needsAWS := cfg.Queue.ReturnQueueURL != "" || (cfg.Database.URL == "" && cfg.Database.SecretARN != "")
	var secrets *awsclient.SecretsManagerClient
	if needsAWS {
		awsCfg, err := awsclient.LoadConfig(ctx, cfg.AWS)
		if err != nil {
			return fail(err)
		}
		secrets = awsclient.NewSecretsManagerClient(awsCfg)
		if cfg.Queue.ReturnQueueURL != "" {
			b.Publisher = awsclient.NewReturnQueue(awsCfg, cfg.Queue.ReturnQueueURL)
		}
	}

	if cfg.Database.UsesPostgres() {
		dsn := cfg.Database.URL
		if dsn == "" {
			var err error
			if dsn, err = secrets.DatabaseURL(ctx, cfg.Database); err != nil {
				return fail(err)
			}
		}
		store, err := db.NewStore(ctx, dsn, db.PoolConfig{
			MaxConns:        20,
			MinConns:        5,
			MaxConnLifetime: 30 * time.Minute,
			MaxConnIdleTime: 15 * time.Minute,
		})
		if err != nil {
			return fail(err)
		}
		closers = append(closers, store.Close)
		if err := store.Migrate(ctx); err != nil {
			return fail(fmt.Errorf("failed to apply schema: %w", err))
		}
		b.Store, b.Records = store, store
		log.Info("Using PostgreSQL store")
	} else {
		store := memory.New()
		b.Store, b.Records = store, store
		log.Warn("No database configured, using in-memory store")
	}

	if cfg.Redis.URL != "" {
		cache, err := services.NewRedisExemptionCache(ctx, cfg.Redis.URL)
		if err != nil {
			return fail(err)
		}
		closers = append(closers, func() { _ = cache.Close() })
		b.Cache = cache
		log.Info("Using Redis exemption cache")
	} else {
		b.Cache = services.NewMemoryExemptionCache()
	}

	e := NewEngine(cfg, b)
	e.closers = closers
	return e, nil
}

// ReloadRates re-reads the configured rate table file. The running table is
// kept when the file is missing or invalid.
func (e *Engine) ReloadRates() error {
	if e.Config.Engine.RateTableFile == "" {
		return fmt.Errorf("no rate table file configured")
	}
	entries, err := services.ReadRateTableFile(e.Config.Engine.RateTableFile)
	if err != nil {
		return err
	}
	return e.Rates.Replace(entries)
}

// Close releases database and cache connections
func (e *Engine) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
}
