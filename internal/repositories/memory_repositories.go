package repositories

import (
	"context"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/AdelereKehinde/Estate-management/internal/models"
)

func now() time.Time { return time.Now().UTC() }

/* ───────────── users ───────────── */

type memUserRepo struct{ s *MemoryStore }

func (r *memUserRepo) Create(ctx context.Context, u *models.User) error {
	return r.s.write(ctx, func(d *memData) error {
		if d.users.exists(func(o models.User) bool { return strings.EqualFold(o.Email, u.Email) }) {
			return duplicate("users_email_key")
		}
		u.CreatedAt = now()
		return d.users.insert(u.ID, *u)
	})
}

func (r *memUserRepo) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var out *models.User
	err := r.s.read(ctx, func(d *memData) error {
		if m := d.users.scan(func(o models.User) bool { return strings.EqualFold(o.Email, email) }); len(m) > 0 {
			out = m[0]
		}
		return nil
	})
	return out, err
}

/* ───────────── estates ───────────── */

type memEstateRepo struct{ s *MemoryStore }

func (r *memEstateRepo) Create(ctx context.Context, e *models.Estate) error {
	return r.s.write(ctx, func(d *memData) error {
		if d.estates.exists(func(o models.Estate) bool { return o.Name == e.Name }) {
			return duplicate("estates_name_key")
		}
		e.CreatedAt = now()
		return d.estates.insert(e.ID, *e)
	})
}

func (r *memEstateRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Estate, error) {
	var out *models.Estate
	err := r.s.read(ctx, func(d *memData) error {
		if e, ok := d.estates.get(id); ok {
			out = &e
		}
		return nil
	})
	return out, err
}

func (r *memEstateRepo) List(ctx context.Context, opts ListOptions) ([]*models.Estate, error) {
	var out []*models.Estate
	err := r.s.read(ctx, func(d *memData) error {
		out = page(d.estates.scan(nil), opts)
		return nil
	})
	return out, err
}

func (r *memEstateRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(d *memData) error {
		if !d.estates.has(id) {
			return pgx.ErrNoRows
		}
		if d.properties.exists(func(p models.Property) bool { return p.EstateID == id }) {
			return foreignKey("properties_estate_id_fkey")
		}
		d.estates.remove(id)
		return nil
	})
}

/* ───────────── properties ───────────── */

type memPropertyRepo struct{ s *MemoryStore }

func (r *memPropertyRepo) Create(ctx context.Context, p *models.Property) error {
	return r.s.write(ctx, func(d *memData) error {
		if !d.estates.has(p.EstateID) {
			return foreignKey("properties_estate_id_fkey")
		}
		if d.properties.exists(func(o models.Property) bool { return o.Code == p.Code }) {
			return duplicate("properties_code_key")
		}
		p.CreatedAt = now()
		return d.properties.insert(p.ID, *p)
	})
}

func (r *memPropertyRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Property, error) {
	var out *models.Property
	err := r.s.read(ctx, func(d *memData) error {
		if p, ok := d.properties.get(id); ok {
			out = &p
		}
		return nil
	})
	return out, err
}

func (r *memPropertyRepo) List(ctx context.Context, f PropertyFilter) ([]*models.Property, error) {
	var out []*models.Property
	err := r.s.read(ctx, func(d *memData) error {
		out = page(d.properties.scan(func(p models.Property) bool {
			return f.EstateID == nil || p.EstateID == *f.EstateID
		}), f.ListOptions)
		return nil
	})
	return out, err
}

func (r *memPropertyRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(d *memData) error {
		if !d.properties.has(id) {
			return pgx.ErrNoRows
		}
		if d.units.exists(func(u models.Unit) bool { return u.PropertyID == id }) {
			return foreignKey("units_property_id_fkey")
		}
		d.properties.remove(id)
		return nil
	})
}

/* ───────────── units ───────────── */

type memUnitRepo struct{ s *MemoryStore }

func (r *memUnitRepo) Create(ctx context.Context, u *models.Unit) error {
	return r.s.write(ctx, func(d *memData) error {
		if !d.properties.has(u.PropertyID) {
			return foreignKey("units_property_id_fkey")
		}
		if d.units.exists(func(o models.Unit) bool { return o.PropertyID == u.PropertyID && o.Label == u.Label }) {
			return duplicate("units_property_id_label_key")
		}
		u.CreatedAt = now()
		return d.units.insert(u.ID, *u)
	})
}

func (r *memUnitRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	var out *models.Unit
	err := r.s.read(ctx, func(d *memData) error {
		if u, ok := d.units.get(id); ok {
			out = &u
		}
		return nil
	})
	return out, err
}

// GetByIDForUpdate needs no row lock here: WithTx already holds the store.
func (r *memUnitRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Unit, error) {
	return r.GetByID(ctx, id)
}

func (r *memUnitRepo) List(ctx context.Context, f UnitFilter) ([]*models.Unit, error) {
	var out []*models.Unit
	err := r.s.read(ctx, func(d *memData) error {
		out = page(d.units.scan(func(u models.Unit) bool {
			if f.PropertyID != nil && u.PropertyID != *f.PropertyID {
				return false
			}
			return f.Occupied == nil || u.Occupied == *f.Occupied
		}), f.ListOptions)
		return nil
	})
	return out, err
}

func (r *memUnitRepo) SetOccupied(ctx context.Context, id uuid.UUID, occupied bool) error {
	return r.s.write(ctx, func(d *memData) error {
		u, ok := d.units.get(id)
		if !ok {
			return pgx.ErrNoRows
		}
		u.Occupied = occupied
		d.units.put(id, u)
		return nil
	})
}

func (r *memUnitRepo) Delete(ctx context.Context, id uuid.UUID) error {
	return r.s.write(ctx, func(d *memData) error {
		if !d.units.has(id) {
			return pgx.ErrNoRows
		}
		if d.leases.exists(func(l models.Lease) bool { return l.UnitID == id }) {
			return foreignKey("leases_unit_id_fkey")
		}
		if d.tickets.exists(func(t models.MaintenanceTicket) bool { return t.UnitID == id }) {
			return foreignKey("maintenance_tickets_unit_id_fkey")
		}
		d.units.remove(id)
		return nil
	})
}

/* ───────────── tenants ───────────── */

type memTenantRepo struct{ s *MemoryStore }

func (r *memTenantRepo) Create(ctx context.Context, t *models.Tenant) error {
	return r.s.write(ctx, func(d *memData) error {
		if d.tenants.exists(func(o models.Tenant) bool { return strings.EqualFold(o.Email, t.Email) }) {
			return duplicate("tenants_email_key")
		}
		t.CreatedAt = now()
		return d.tenants.insert(t.ID, *t)
	})
}

func (r *memTenantRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Tenant, error) {
	var out *models.Tenant
	err := r.s.read(ctx, func(d *memData) error {
		if t, ok := d.tenants.get(id); ok {
			out = &t
		}
		return nil
	})
	return out, err
}

func (r *memTenantRepo) GetByEmail(ctx context.Context, email string) (*models.Tenant, error) {
	var out *models.Tenant
	err := r.s.read(ctx, func(d *memData) error {
		if m := d.tenants.scan(func(o models.Tenant) bool { return strings.EqualFold(o.Email, email) }); len(m) > 0 {
			out = m[0]
		}
		return nil
	})
	return out, err
}

func (r *memTenantRepo) List(ctx context.Context, f TenantFilter) ([]*models.Tenant, error) {
	q := strings.ToLower(f.Query)
	var out []*models.Tenant
	err := r.s.read(ctx, func(d *memData) error {
		out = page(d.tenants.scan(func(t models.Tenant) bool {
			return q == "" ||
				strings.Contains(strings.ToLower(t.FullName), q) ||
				strings.Contains(strings.ToLower(t.Email), q)
		}), f.ListOptions)
		return nil
	})
	return out, err
}

/* ───────────── leases ───────────── */

type memLeaseRepo struct{ s *MemoryStore }

func (r *memLeaseRepo) Create(ctx context.Context, l *models.Lease) error {
	return r.s.write(ctx, func(d *memData) error {
		if !d.units.has(l.UnitID) {
			return foreignKey("leases_unit_id_fkey")
		}
		if !d.tenants.has(l.TenantID) {
			return foreignKey("leases_tenant_id_fkey")
		}
		l.CreatedAt = now()
		return d.leases.insert(l.ID, *l)
	})
}

func (r *memLeaseRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Lease, error) {
	var out *models.Lease
	err := r.s.read(ctx, func(d *memData) error {
		if l, ok := d.leases.get(id); ok {
			out = &l
		}
		return nil
	})
	return out, err
}

func (r *memLeaseRepo) List(ctx context.Context, f LeaseFilter) ([]*models.Lease, error) {
	var out []*models.Lease
	err := r.s.read(ctx, func(d *memData) error {
		out = page(d.leases.scan(func(l models.Lease) bool {
			switch {
			case f.UnitID != nil && l.UnitID != *f.UnitID:
				return false
			case f.TenantID != nil && l.TenantID != *f.TenantID:
				return false
			case f.Active != nil && l.Active != *f.Active:
				return false
			}
			return true
		}), f.ListOptions)
		return nil
	})
	return out, err
}

func (r *memLeaseRepo) CountByUnitID(ctx context.Context, unitID uuid.UUID) (int, error) {
	var n int
	err := r.s.read(ctx, func(d *memData) error {
		n = len(d.leases.scan(func(l models.Lease) bool { return l.UnitID == unitID }))
		return nil
	})
	return n, err
}

/* ───────────── invoices ───────────── */

type memInvoiceRepo struct{ s *MemoryStore }

func (r *memInvoiceRepo) CreateMany(ctx context.Context, invoices []*models.Invoice) error {
	return r.s.write(ctx, func(d *memData) error {
		for _, inv := range invoices {
			if !d.leases.has(inv.LeaseID) {
				return foreignKey("invoices_lease_id_fkey")
			}
			if inv.Ref != nil && d.invoices.exists(func(o models.Invoice) bool {
				return o.Ref != nil && *o.Ref == *inv.Ref
			}) {
				return duplicate("invoices_ref_key")
			}
			inv.CreatedAt = now()
			if err := d.invoices.insert(inv.ID, *inv); err != nil {
				return err
			}
		}
		return nil
	})
}

func (r *memInvoiceRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	var out *models.Invoice
	err := r.s.read(ctx, func(d *memData) error {
		if inv, ok := d.invoices.get(id); ok {
			out = &inv
		}
		return nil
	})
	return out, err
}

func (r *memInvoiceRepo) GetByIDForUpdate(ctx context.Context, id uuid.UUID) (*models.Invoice, error) {
	return r.GetByID(ctx, id)
}

func (r *memInvoiceRepo) List(ctx context.Context, f InvoiceFilter) ([]*models.Invoice, error) {
	var out []*models.Invoice
	err := r.s.read(ctx, func(d *memData) error {
		matched := d.invoices.scan(func(inv models.Invoice) bool {
			switch {
			case f.Status != nil && inv.Status != *f.Status:
				return false
			case f.LeaseID != nil && inv.LeaseID != *f.LeaseID:
				return false
			}
			if f.TenantID != nil {
				l, ok := d.leases.get(inv.LeaseID)
				return ok && l.TenantID == *f.TenantID
			}
			return true
		})
		sort.SliceStable(matched, func(i, j int) bool {
			return matched[i].DueDate.Before(matched[j].DueDate)
		})
		out = page(matched, f.ListOptions)
		return nil
	})
	return out, err
}

func (r *memInvoiceRepo) ListDueDatesByLeaseID(ctx context.Context, leaseID uuid.UUID) ([]models.Date, error) {
	var out []models.Date
	err := r.s.read(ctx, func(d *memData) error {
		for _, inv := range d.invoices.scan(func(inv models.Invoice) bool { return inv.LeaseID == leaseID }) {
			out = append(out, inv.DueDate)
		}
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out, err
}

func (r *memInvoiceRepo) UpdateStatus(ctx context.Context, id uuid.UUID, status models.InvoiceStatus) error {
	return r.s.write(ctx, func(d *memData) error {
		inv, ok := d.invoices.get(id)
		if !ok {
			return pgx.ErrNoRows
		}
		inv.Status = status
		d.invoices.put(id, inv)
		return nil
	})
}

func (r *memInvoiceRepo) CountOverdue(ctx context.Context, asOf models.Date) (int, error) {
	var n int
	err := r.s.read(ctx, func(d *memData) error {
		n = len(d.invoices.scan(func(inv models.Invoice) bool {
			return inv.Status == models.InvoiceStatusPending && inv.DueDate.Before(asOf)
		}))
		return nil
	})
	return n, err
}

/* ───────────── payments ───────────── */

type memPaymentRepo struct{ s *MemoryStore }

func (r *memPaymentRepo) Create(ctx context.Context, p *models.Payment) error {
	return r.s.write(ctx, func(d *memData) error {
		if !d.invoices.has(p.InvoiceID) {
			return foreignKey("payments_invoice_id_fkey")
		}
		if d.payments.exists(func(o models.Payment) bool { return o.TxnRef == p.TxnRef }) {
			return duplicate("payments_txn_ref_key")
		}
		return d.payments.insert(p.ID, *p)
	})
}

func (r *memPaymentRepo) ListByInvoiceID(ctx context.Context, invoiceID uuid.UUID) ([]*models.Payment, error) {
	var out []*models.Payment
	err := r.s.read(ctx, func(d *memData) error {
		out = d.payments.scan(func(p models.Payment) bool { return p.InvoiceID == invoiceID })
		return nil
	})
	sort.SliceStable(out, func(i, j int) bool { return out[i].PaidAt.Before(out[j].PaidAt) })
	return out, err
}

/* ───────────── maintenance tickets ───────────── */

type memTicketRepo struct{ s *MemoryStore }

func (r *memTicketRepo) Create(ctx context.Context, t *models.MaintenanceTicket) error {
	return r.s.write(ctx, func(d *memData) error {
		if !d.units.has(t.UnitID) {
			return foreignKey("maintenance_tickets_unit_id_fkey")
		}
		t.CreatedAt = now()
		return d.tickets.insert(t.ID, *t)
	})
}

func (r *memTicketRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceTicket, error) {
	var out *models.MaintenanceTicket
	err := r.s.read(ctx, func(d *memData) error {
		if t, ok := d.tickets.get(id); ok {
			out = &t
		}
		return nil
	})
	return out, err
}

func (r *memTicketRepo) List(ctx context.Context, f TicketFilter) ([]*models.MaintenanceTicket, error) {
	var out []*models.MaintenanceTicket
	err := r.s.read(ctx, func(d *memData) error {
		matched := d.tickets.scan(func(t models.MaintenanceTicket) bool {
			if f.UnitID != nil && t.UnitID != *f.UnitID {
				return false
			}
			return f.Status == nil || t.Status == *f.Status
		})
		// newest first
		for i, j := 0, len(matched)-1; i < j; i, j = i+1, j-1 {
			matched[i], matched[j] = matched[j], matched[i]
		}
		out = page(matched, f.ListOptions)
		return nil
	})
	return out, err
}

func (r *memTicketRepo) Update(ctx context.Context, t *models.MaintenanceTicket) error {
	return r.s.write(ctx, func(d *memData) error {
		cur, ok := d.tickets.get(t.ID)
		if !ok {
			return pgx.ErrNoRows
		}
		cur.Title = t.Title
		cur.Description = t.Description
		cur.Priority = t.Priority
		cur.Status = t.Status
		d.tickets.put(t.ID, cur)
		return nil
	})
}

func (r *memTicketRepo) DeleteByUnitID(ctx context.Context, unitID uuid.UUID) error {
	return r.s.write(ctx, func(d *memData) error {
		for _, t := range d.tickets.scan(func(t models.MaintenanceTicket) bool { return t.UnitID == unitID }) {
			d.tickets.remove(t.ID)
		}
		return nil
	})
}
