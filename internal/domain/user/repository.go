package user

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

// Repository defines the interface for user data access
type Repository interface {
	Create(ctx context.Context, u *User) error
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)
	Update(ctx context.Context, u *User) error
	UpdateRole(ctx context.Context, id int64, role string) error
	List(ctx context.Context) ([]*User, error)
	Delete(ctx context.Context, id int64) ([]string, error)
	CountByRole(ctx context.Context, role string) (int, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewRepository creates a new PostgreSQL user repository
func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, u *User) error {
	query := `
		INSERT INTO users (name, email, phone, password_hash, role)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		u.Name, u.Email, u.Phone, u.PasswordHash, u.Role,
	).Scan(&u.ID, &u.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return ErrEmailTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*User, error) {
	var u User
	query := `SELECT * FROM users WHERE id = $1`

	err := r.db.GetContext(ctx, &u, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &u, nil
}

func (r *postgresRepository) GetByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	query := `SELECT * FROM users WHERE email = $1`

	err := r.db.GetContext(ctx, &u, query, email)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get user by email: %w", err)
	}

	return &u, nil
}

func (r *postgresRepository) Update(ctx context.Context, u *User) error {
	query := `
		UPDATE users
		SET name = $1, phone = $2, password_hash = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, u.Name, u.Phone, u.PasswordHash, u.ID)
	if err != nil {
		return fmt.Errorf("failed to update user: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *postgresRepository) UpdateRole(ctx context.Context, id int64, role string) error {
	query := `UPDATE users SET role = $1 WHERE id = $2`

	result, err := r.db.ExecContext(ctx, query, role, id)
	if err != nil {
		return fmt.Errorf("failed to update user role: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrUserNotFound
	}

	return nil
}

func (r *postgresRepository) List(ctx context.Context) ([]*User, error) {
	users := []*User{}
	query := `SELECT * FROM users ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &users, query); err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}

	return users, nil
}

// Delete removes the user together with their photos and comments in a
// single transaction, so concurrent readers never observe orphaned rows.
// Bookings made by the user are kept with the requester cleared. The
// returned slice holds storage keys of the deleted photos (including
// thumbnails) for the caller to clean up after commit.
func (r *postgresRepository) Delete(ctx context.Context, id int64) ([]string, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	var keys []string
	rows, err := tx.QueryxContext(ctx,
		`SELECT filename, thumb_filename FROM photos WHERE owner_id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to list owned photos: %w", err)
	}
	for rows.Next() {
		var filename string
		var thumb sql.NullString
		if err := rows.Scan(&filename, &thumb); err != nil {
			rows.Close()
			return nil, fmt.Errorf("failed to scan photo filenames: %w", err)
		}
		keys = append(keys, filename)
		if thumb.Valid && thumb.String != "" {
			keys = append(keys, thumb.String)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate photo filenames: %w", err)
	}

	// Comments on the user's photos, then comments the user wrote elsewhere.
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM comments WHERE photo_id IN (SELECT id FROM photos WHERE owner_id = $1)`, id); err != nil {
		return nil, fmt.Errorf("failed to delete comments on owned photos: %w", err)
	}
	if _, err := tx.ExecContext(ctx,
		`DELETE FROM comments WHERE author_id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to delete authored comments: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`UPDATE bookings SET requester_id = NULL WHERE requester_id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to detach bookings: %w", err)
	}

	if _, err := tx.ExecContext(ctx,
		`DELETE FROM photos WHERE owner_id = $1`, id); err != nil {
		return nil, fmt.Errorf("failed to delete owned photos: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM users WHERE id = $1`, id)
	if err != nil {
		return nil, fmt.Errorf("failed to delete user: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return nil, ErrUserNotFound
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit transaction: %w", err)
	}

	return keys, nil
}

func (r *postgresRepository) CountByRole(ctx context.Context, role string) (int, error) {
	var count int
	query := `SELECT COUNT(*) FROM users WHERE role = $1`

	if err := r.db.GetContext(ctx, &count, query, role); err != nil {
		return 0, fmt.Errorf("failed to count users: %w", err)
	}

	return count, nil
}
