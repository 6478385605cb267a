package contact

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines the interface for contact data access
type Repository interface {
	Create(ctx context.Context, c *Contact) error
	List(ctx context.Context) ([]*Contact, error)
	Count(ctx context.Context) (int, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewRepository creates a new PostgreSQL contact repository
func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, c *Contact) error {
	query := `
		INSERT INTO contacts (name, email, phone, message)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query, c.Name, c.Email, c.Phone, c.Message).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create contact: %w", err)
	}

	return nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*Contact, error) {
	contacts := []*Contact{}
	query := `SELECT * FROM contacts ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &contacts, query); err != nil {
		return nil, fmt.Errorf("failed to list contacts: %w", err)
	}

	return contacts, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM contacts`); err != nil {
		return 0, fmt.Errorf("failed to count contacts: %w", err)
	}
	return count, nil
}
