package booking

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines the interface for booking data access
type Repository interface {
	Create(ctx context.Context, b *Booking) error
	GetByID(ctx context.Context, id int64) (*Booking, error)
	List(ctx context.Context) ([]*Booking, error)
	ListByRequester(ctx context.Context, requesterID int64) ([]*Booking, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
	Delete(ctx context.Context, id int64) error
	CountByStatus(ctx context.Context, status string) (int, error)
	CountByRequester(ctx context.Context, requesterID int64) (int, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewRepository creates a new PostgreSQL booking repository
func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, b *Booking) error {
	query := `
		INSERT INTO bookings (name, email, phone, service_type, requested_date, message, status, requester_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		b.Name, b.Email, b.Phone, b.ServiceType, b.RequestedDate, b.Message, b.Status, b.RequesterID,
	).Scan(&b.ID, &b.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create booking: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Booking, error) {
	var b Booking
	query := `SELECT * FROM bookings WHERE id = $1`

	err := r.db.GetContext(ctx, &b, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get booking: %w", err)
	}

	return &b, nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*Booking, error) {
	bookings := []*Booking{}
	query := `SELECT * FROM bookings ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &bookings, query); err != nil {
		return nil, fmt.Errorf("failed to list bookings: %w", err)
	}

	return bookings, nil
}

func (r *postgresRepository) ListByRequester(ctx context.Context, requesterID int64) ([]*Booking, error) {
	bookings := []*Booking{}
	query := `SELECT * FROM bookings WHERE requester_id = $1 ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &bookings, query, requesterID); err != nil {
		return nil, fmt.Errorf("failed to list bookings by requester: %w", err)
	}

	return bookings, nil
}

func (r *postgresRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE bookings SET status = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, status, id)
	if err != nil {
		return fmt.Errorf("failed to update booking status: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM bookings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete booking: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrBookingNotFound
	}

	return nil
}

func (r *postgresRepository) CountByStatus(ctx context.Context, status string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM bookings WHERE status = $1`

	if err := r.db.GetContext(ctx, &count, query, status); err != nil {
		return 0, fmt.Errorf("failed to count bookings: %w", err)
	}

	return count, nil
}

func (r *postgresRepository) CountByRequester(ctx context.Context, requesterID int64) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM bookings WHERE requester_id = $1`

	if err := r.db.GetContext(ctx, &count, query, requesterID); err != nil {
		return 0, fmt.Errorf("failed to count bookings by requester: %w", err)
	}

	return count, nil
}
