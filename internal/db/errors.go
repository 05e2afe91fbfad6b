package db

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrUniqueViolation reports a write rejected by a uniqueness constraint.
	ErrUniqueViolation = errors.New("unique constraint violation")
	// ErrStaleStatus reports a compare-and-set write whose expected status no longer holds.
	ErrStaleStatus = errors.New("record status changed concurrently")
)

const (
	uniqueViolationCode = "23505"
)

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode
}
