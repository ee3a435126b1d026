// internal/storage/postgres/store.go
package postgres

import (
	"context"
	"errors"
	"fmt"

	"faculty-jobs-api/internal/storage"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

// Querier is the subset of pgx operations shared by *pgxpool.Pool and pgx.Tx,
// so the same repositories work inside and outside a transaction.
type Querier interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements storage.Store on PostgreSQL.
type Store struct {
	pool *pgxpool.Pool
	db   Querier
}

// NewStore creates a Store backed by the given connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool, db: pool}
}

// Compile-time check to ensure Store implements storage.Store
var _ storage.Store = (*Store)(nil)

func (s *Store) Users() storage.UserRepository                { return &UserRepo{db: s.db} }
func (s *Store) Companies() storage.CompanyRepository         { return &CompanyRepo{db: s.db} }
func (s *Store) Jobs() storage.JobRepository                  { return &JobRepo{db: s.db} }
func (s *Store) Applications() storage.ApplicationRepository  { return &ApplicationRepo{db: s.db} }
func (s *Store) AuditLogs() storage.AuditLogRepository        { return &AuditLogRepo{db: s.db} }

// RunInTx runs fn against a transactional view of the store. A nested call
// reuses the surrounding transaction.
func (s *Store) RunInTx(ctx context.Context, fn func(storage.Store) error) error {
	if s.pool == nil {
		return fn(s)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(&Store{db: tx}); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}
	return nil
}

// isUniqueViolation reports whether err is a postgres unique constraint violation.
func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}

// isForeignKeyViolation reports whether err is a postgres FK violation.
func isForeignKeyViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23503"
}
