package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/unations/tax-engine/internal/helpers"
	"github.com/unations/tax-engine/internal/interfaces"
	"github.com/unations/tax-engine/internal/types/business"
)

var (
	_ interfaces.TaxStore             = (*Store)(nil)
	_ interfaces.ExemptionRecordStore = (*Store)(nil)
)

// PoolConfig sizes the connection pool
type PoolConfig struct {
	MaxConns        int32
	MinConns        int32
	MaxConnLifetime time.Duration
	MaxConnIdleTime time.Duration
}

// Store is the PostgreSQL implementation of the tax and exemption record stores.
type Store struct {
	*Queries
	pool *pgxpool.Pool
}

// NewStore connects to dsn and verifies the connection.
func NewStore(ctx context.Context, dsn string, cfg PoolConfig) (*Store, error) {
	poolConfig, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to parse database DSN: %w", err)
	}
	if cfg.MaxConns > 0 {
		poolConfig.MaxConns = cfg.MaxConns
	}
	if cfg.MinConns > 0 {
		poolConfig.MinConns = cfg.MinConns
	}
	if cfg.MaxConnLifetime > 0 {
		poolConfig.MaxConnLifetime = cfg.MaxConnLifetime
	}
	if cfg.MaxConnIdleTime > 0 {
		poolConfig.MaxConnIdleTime = cfg.MaxConnIdleTime
	}

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, fmt.Errorf("unable to create connection pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("unable to ping database: %w", err)
	}
	return NewStoreFromPool(pool), nil
}

// NewStoreFromPool wraps an existing pool
func NewStoreFromPool(pool *pgxpool.Pool) *Store {
	return &Store{Queries: New(pool), pool: pool}
}

// Close releases the pool
func (s *Store) Close() {
	s.pool.Close()
}

// CreateTaxReturn checks the period is free, inserts the return and claims
// its calculations in one serializable transaction. Two overlapping drafts
// from different lineages cannot both commit.
func (s *Store) CreateTaxReturn(ctx context.Context, ret business.TaxReturn) error {
	return helpers.WithSerializableRetry(ctx, s.pool, 2, func(tx pgx.Tx) error {
		qtx := s.WithTx(tx)
		if err := qtx.checkPeriodFree(ctx, ret); err != nil {
			return err
		}
		if err := qtx.insertTaxReturn(ctx, ret); err != nil {
			return err
		}
		return qtx.claimCalculations(ctx, ret.LineageID, ret.CalculationIDs)
	})
}

// FileTaxReturn moves the return to filed and inserts its remittance atomically.
func (s *Store) FileTaxReturn(ctx context.Context, ret business.TaxReturn, expected business.ReturnStatus, remittance *business.Remittance) error {
	return helpers.WithTransaction(ctx, s.pool, func(tx pgx.Tx) error {
		qtx := s.WithTx(tx)
		if err := qtx.UpdateTaxReturnStatus(ctx, ret, expected); err != nil {
			return err
		}
		if remittance == nil {
			return nil
		}
		return qtx.insertRemittance(ctx, *remittance)
	})
}
