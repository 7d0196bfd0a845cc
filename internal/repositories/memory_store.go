package repositories

import (
	"context"
	"fmt"
	"sync"

	"github.com/google/uuid"

	"github.com/AdelereKehinde/Estate-management/internal/models"
	"github.com/AdelereKehinde/Estate-management/internal/utils"
)

// MemoryStore implements Store on in-process tables. Transactions are
// serialised on a single mutex and work on a copy of every table that
// replaces the committed state only when the callback succeeds.
//
// Intended for tests and demos; constraint names and failure sentinels
// match the Postgres schema.
type MemoryStore struct {
	root *memRoot
	tx   *memData // non-nil inside WithTx
}

type memRoot struct {
	mu   sync.Mutex
	data *memData
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{root: &memRoot{data: newMemData()}}
}

func (s *MemoryStore) Users() UserRepository { return &memUserRepo{s} }
func (s *MemoryStore) Estates() EstateRepository { return &memEstateRepo{s} }
func (s *MemoryStore) Properties() PropertyRepository { return &memPropertyRepo{s} }
func (s *MemoryStore) Units() UnitRepository { return &memUnitRepo{s} }
func (s *MemoryStore) Tenants() TenantRepository { return &memTenantRepo{s} }
func (s *MemoryStore) Leases() LeaseRepository { return &memLeaseRepo{s} }
func (s *MemoryStore) Invoices() InvoiceRepository { return &memInvoiceRepo{s} }
func (s *MemoryStore) Payments() PaymentRepository { return &memPaymentRepo{s} }
func (s *MemoryStore) Tickets() MaintenanceTicketRepository { return &memTicketRepo{s} }

func (s *MemoryStore) WithTx(ctx context.Context, fn func(tx Store) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// Nested: behaves like a savepoint on the enclosing transaction.
	if s.tx != nil {
		work := s.tx.clone()
		if err := fn(&MemoryStore{root: s.root, tx: work}); err != nil {
			return err
		}
		*s.tx = *work
		return nil
	}

	s.root.mu.Lock()
	defer s.root.mu.Unlock()

	work := s.root.data.clone()
	if err := fn(&MemoryStore{root: s.root, tx: work}); err != nil {
		return err
	}
	s.root.data = work
	return nil
}

func (s *MemoryStore) Ping(ctx context.Context) error {
	return ctx.Err()
}

// read runs fn against the visible state without copying.
func (s *MemoryStore) read(ctx context.Context, fn func(d *memData) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.tx != nil {
		return fn(s.tx)
	}
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	return fn(s.root.data)
}

// write runs fn against a copy and keeps it only if fn succeeds, so a
// single statement never leaves a partial write behind.
func (s *MemoryStore) write(ctx context.Context, fn func(d *memData) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if s.tx != nil {
		return applyCopy(s.tx, fn)
	}
	s.root.mu.Lock()
	defer s.root.mu.Unlock()
	return applyCopy(s.root.data, fn)
}

func applyCopy(d *memData, fn func(d *memData) error) error {
	work := d.clone()
	if err := fn(work); err != nil {
		return err
	}
	*d = *work
	return nil
}

/* ───────────── tables ───────────── */

type table[T any] struct {
	rows  map[uuid.UUID]T
	order []uuid.UUID
}

func newTable[T any]() table[T] {
	return table[T]{rows: map[uuid.UUID]T{}}
}

func (t table[T]) clone() table[T] {
	rows := make(map[uuid.UUID]T, len(t.rows))
	for k, v := range t.rows {
		rows[k] = v
	}
	return table[T]{rows: rows, order: append([]uuid.UUID(nil), t.order...)}
}

func (t table[T]) get(id uuid.UUID) (T, bool) {
	v, ok := t.rows[id]
	return v, ok
}

func (t table[T]) has(id uuid.UUID) bool {
	_, ok := t.rows[id]
	return ok
}

func (t *table[T]) insert(id uuid.UUID, v T) error {
	if t.has(id) {
		return fmt.Errorf("%w: primary key %s", utils.ErrDuplicateKey, id)
	}
	t.rows[id] = v
	t.order = append(t.order, id)
	return nil
}

func (t *table[T]) put(id uuid.UUID, v T) {
	t.rows[id] = v
}

func (t *table[T]) remove(id uuid.UUID) {
	delete(t.rows, id)
	for i, o := range t.order {
		if o == id {
			t.order = append(t.order[:i], t.order[i+1:]...)
			return
		}
	}
}

// scan returns pointers to copies of matching rows in insertion order.
func (t table[T]) scan(match func(T) bool) []*T {
	out := []*T{}
	for _, id := range t.order {
		v := t.rows[id]
		if match == nil || match(v) {
			out = append(out, &v)
		}
	}
	return out
}

func (t table[T]) exists(match func(T) bool) bool {
	for _, v := range t.rows {
		if match(v) {
			return true
		}
	}
	return false
}

type memData struct {
	users      table[models.User]
	estates    table[models.Estate]
	properties table[models.Property]
	units      table[models.Unit]
	tenants    table[models.Tenant]
	leases     table[models.Lease]
	invoices   table[models.Invoice]
	payments   table[models.Payment]
	tickets    table[models.MaintenanceTicket]
}

func newMemData() *memData {
	return &memData{
		users:      newTable[models.User](),
		estates:    newTable[models.Estate](),
		properties: newTable[models.Property](),
		units:      newTable[models.Unit](),
		tenants:    newTable[models.Tenant](),
		leases:     newTable[models.Lease](),
		invoices:   newTable[models.Invoice](),
		payments:   newTable[models.Payment](),
		tickets:    newTable[models.MaintenanceTicket](),
	}
}

func (d *memData) clone() *memData {
	return &memData{
		users:      d.users.clone(),
		estates:    d.estates.clone(),
		properties: d.properties.clone(),
		units:      d.units.clone(),
		tenants:    d.tenants.clone(),
		leases:     d.leases.clone(),
		invoices:   d.invoices.clone(),
		payments:   d.payments.clone(),
		tickets:    d.tickets.clone(),
	}
}

func duplicate(constraint string) error {
	return fmt.Errorf("%w: %s", utils.ErrDuplicateKey, constraint)
}

func foreignKey(constraint string) error {
	return fmt.Errorf("%w: %s", utils.ErrForeignKeyViolation, constraint)
}

func page[T any](items []*T, opts ListOptions) []*T {
	if opts.Offset > 0 {
		if opts.Offset >= len(items) {
			return []*T{}
		}
		items = items[opts.Offset:]
	}
	if opts.Limit > 0 && opts.Limit < len(items) {
		items = items[:opts.Limit]
	}
	return items
}
