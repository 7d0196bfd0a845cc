package repositories

import (
	"context"

	"github.com/jackc/pgx/v4/pgxpool"
)

type pgStore struct {
	db   DB
	pool *pgxpool.Pool // nil inside a transaction
}

// NewPostgresStore returns a Store backed by the pool.
func NewPostgresStore(pool *pgxpool.Pool) Store {
	return &pgStore{db: pool, pool: pool}
}

func (s *pgStore) Users() UserRepository { return NewUserRepository(s.db) }
func (s *pgStore) Estates() EstateRepository { return NewEstateRepository(s.db) }
func (s *pgStore) Properties() PropertyRepository { return NewPropertyRepository(s.db) }
func (s *pgStore) Units() UnitRepository { return NewUnitRepository(s.db) }
func (s *pgStore) Tenants() TenantRepository { return NewTenantRepository(s.db) }
func (s *pgStore) Leases() LeaseRepository { return NewLeaseRepository(s.db) }
func (s *pgStore) Invoices() InvoiceRepository { return NewInvoiceRepository(s.db) }
func (s *pgStore) Payments() PaymentRepository { return NewPaymentRepository(s.db) }
func (s *pgStore) Tickets() MaintenanceTicketRepository { return NewMaintenanceTicketRepository(s.db) }

// WithTx runs fn in a transaction. Called on a transaction-scoped store it
// opens a savepoint.
func (s *pgStore) WithTx(ctx context.Context, fn func(tx Store) error) (err error) {
	tx, err := s.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer func() {
		if p := recover(); p != nil {
			_ = tx.Rollback(ctx)
			panic(p)
		}
		if err != nil {
			_ = tx.Rollback(ctx)
		} else {
			err = tx.Commit(ctx)
		}
	}()

	return fn(&pgStore{db: tx})
}

func (s *pgStore) Ping(ctx context.Context) error {
	if s.pool != nil {
		return s.pool.Ping(ctx)
	}
	_, err := s.db.Exec(ctx, "SELECT 1")
	return err
}
