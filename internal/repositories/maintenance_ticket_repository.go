package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v4"

	"github.com/AdelereKehinde/Estate-management/internal/models"
)

type MaintenanceTicketRepository interface {
	Create(ctx context.Context, t *models.MaintenanceTicket) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceTicket, error)
	List(ctx context.Context, f TicketFilter) ([]*models.MaintenanceTicket, error)
	// Update persists title, description, priority and status.
	Update(ctx context.Context, t *models.MaintenanceTicket) error
	DeleteByUnitID(ctx context.Context, unitID uuid.UUID) error
}

type ticketRepo struct {
	db DB
}

func NewMaintenanceTicketRepository(db DB) MaintenanceTicketRepository {
	return &ticketRepo{db: db}
}

func (r *ticketRepo) Create(ctx context.Context, t *models.MaintenanceTicket) error {
	row := r.db.QueryRow(ctx, `
		INSERT INTO maintenance_tickets (id, unit_id, title, description, priority, status, created_at)
		VALUES ($1,$2,$3,$4,$5,$6, NOW())
		RETURNING created_at
	`, t.ID, t.UnitID, t.Title, t.Description, t.Priority, t.Status)
	return translateError(row.Scan(&t.CreatedAt))
}

func (r *ticketRepo) GetByID(ctx context.Context, id uuid.UUID) (*models.MaintenanceTicket, error) {
	t, err := scanTicket(r.db.QueryRow(ctx, baseSelectTicket()+" WHERE id=$1", id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	return t, err
}

func (r *ticketRepo) List(ctx context.Context, f TicketFilter) ([]*models.MaintenanceTicket, error) {
	var q queryBuilder
	if f.UnitID != nil {
		q.add("unit_id=?", *f.UnitID)
	}
	if f.Status != nil {
		q.add("status=?", *f.Status)
	}
	sql := baseSelectTicket() + q.where() + " ORDER BY created_at DESC, id" + q.page(f.ListOptions)
	rows, err := r.db.Query(ctx, sql, q.args...)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanTicket)
}

func (r *ticketRepo) Update(ctx context.Context, t *models.MaintenanceTicket) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE maintenance_tickets
		SET title=$1, description=$2, priority=$3, status=$4
		WHERE id=$5
	`, t.Title, t.Description, t.Priority, t.Status, t.ID)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *ticketRepo) DeleteByUnitID(ctx context.Context, unitID uuid.UUID) error {
	_, err := r.db.Exec(ctx, `DELETE FROM maintenance_tickets WHERE unit_id=$1`, unitID)
	return err
}

func baseSelectTicket() string {
	return `
		SELECT id, unit_id, title, description, priority, status, created_at
		FROM maintenance_tickets`
}

func scanTicket(row pgx.Row) (*models.MaintenanceTicket, error) {
	var t models.MaintenanceTicket
	if err := row.Scan(
		&t.ID,
		&t.UnitID,
		&t.Title,
		&t.Description,
		&t.Priority,
		&t.Status,
		&t.CreatedAt,
	); err != nil {
		return nil, err
	}
	return &t, nil
}
