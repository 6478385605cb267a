package photo

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// Repository defines the interface for photo data access
type Repository interface {
	Create(ctx context.Context, p *Photo) error
	GetByID(ctx context.Context, id int64) (*Photo, error)
	List(ctx context.Context, category string) ([]*Photo, error)
	ListByOwner(ctx context.Context, ownerID int64) ([]*Photo, error)
	TopByViews(ctx context.Context, limit int) ([]*Photo, error)
	Update(ctx context.Context, p *Photo) error
	Delete(ctx context.Context, id int64) error
	IncrementViews(ctx context.Context, id int64) (int, error)
	IncrementLikes(ctx context.Context, id int64) (int, error)
	Count(ctx context.Context) (int, error)
	SumViewsByOwner(ctx context.Context, ownerID int64) (int, error)
}

type postgresRepository struct {
	db *sqlx.DB
}

// NewRepository creates a new PostgreSQL photo repository
func NewRepository(db *sqlx.DB) Repository {
	return &postgresRepository{db: db}
}

func (r *postgresRepository) Create(ctx context.Context, p *Photo) error {
	query := `
		INSERT INTO photos (title, description, category, filename, thumb_filename, owner_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, views, likes, created_at`

	err := r.db.QueryRowxContext(ctx, query,
		p.Title, p.Description, p.Category, p.Filename, p.ThumbFilename, p.OwnerID,
	).Scan(&p.ID, &p.Views, &p.Likes, &p.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create photo: %w", err)
	}

	return nil
}

func (r *postgresRepository) GetByID(ctx context.Context, id int64) (*Photo, error) {
	var p Photo
	query := `SELECT * FROM photos WHERE id = $1`

	err := r.db.GetContext(ctx, &p, query, id)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to get photo: %w", err)
	}

	return &p, nil
}

func (r *postgresRepository) List(ctx context.Context, category string) ([]*Photo, error) {
	photos := []*Photo{}

	if category == "" {
		query := `SELECT * FROM photos ORDER BY created_at DESC`
		if err := r.db.SelectContext(ctx, &photos, query); err != nil {
			return nil, fmt.Errorf("failed to list photos: %w", err)
		}
		return photos, nil
	}

	query := `SELECT * FROM photos WHERE category = $1 ORDER BY created_at DESC`
	if err := r.db.SelectContext(ctx, &photos, query, category); err != nil {
		return nil, fmt.Errorf("failed to list photos by category: %w", err)
	}
	return photos, nil
}

func (r *postgresRepository) ListByOwner(ctx context.Context, ownerID int64) ([]*Photo, error) {
	photos := []*Photo{}
	query := `SELECT * FROM photos WHERE owner_id = $1 ORDER BY created_at DESC`

	if err := r.db.SelectContext(ctx, &photos, query, ownerID); err != nil {
		return nil, fmt.Errorf("failed to list photos by owner: %w", err)
	}

	return photos, nil
}

func (r *postgresRepository) TopByViews(ctx context.Context, limit int) ([]*Photo, error) {
	photos := []*Photo{}
	query := `SELECT * FROM photos ORDER BY views DESC, id DESC LIMIT $1`

	if err := r.db.SelectContext(ctx, &photos, query, limit); err != nil {
		return nil, fmt.Errorf("failed to list top photos: %w", err)
	}

	return photos, nil
}

func (r *postgresRepository) Update(ctx context.Context, p *Photo) error {
	query := `
		UPDATE photos
		SET title = $1, description = $2, category = $3
		WHERE id = $4`

	result, err := r.db.ExecContext(ctx, query, p.Title, p.Description, p.Category, p.ID)
	if err != nil {
		return fmt.Errorf("failed to update photo: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if rows == 0 {
		return ErrPhotoNotFound
	}

	return nil
}

// Delete removes the photo and its comments in one transaction so a
// concurrent reader never sees a comment pointing at a missing photo.
func (r *postgresRepository) Delete(ctx context.Context, id int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, `DELETE FROM comments WHERE photo_id = $1`, id); err != nil {
		return fmt.Errorf("failed to delete photo comments: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM photos WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("failed to delete photo: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}
	if affected == 0 {
		return ErrPhotoNotFound
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// IncrementViews bumps the counter in a single statement; concurrent
// increments never lose updates.
func (r *postgresRepository) IncrementViews(ctx context.Context, id int64) (int, error) {
	var views int
	query := `UPDATE photos SET views = views + 1 WHERE id = $1 RETURNING views`

	err := r.db.QueryRowxContext(ctx, query, id).Scan(&views)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrPhotoNotFound
		}
		return 0, fmt.Errorf("failed to increment views: %w", err)
	}

	return views, nil
}

func (r *postgresRepository) IncrementLikes(ctx context.Context, id int64) (int, error) {
	var likes int
	query := `UPDATE photos SET likes = likes + 1 WHERE id = $1 RETURNING likes`

	err := r.db.QueryRowxContext(ctx, query, id).Scan(&likes)
	if err != nil {
		if err == sql.ErrNoRows {
			return 0, ErrPhotoNotFound
		}
		return 0, fmt.Errorf("failed to increment likes: %w", err)
	}

	return likes, nil
}

func (r *postgresRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM photos`); err != nil {
		return 0, fmt.Errorf("failed to count photos: %w", err)
	}
	return count, nil
}

func (r *postgresRepository) SumViewsByOwner(ctx context.Context, ownerID int64) (int, error) {
	var views int
	query := `SELECT COALESCE(SUM(views), 0) FROM photos WHERE owner_id = $1`

	if err := r.db.GetContext(ctx, &views, query, ownerID); err != nil {
		return 0, fmt.Errorf("failed to sum views: %w", err)
	}

	return views, nil
}
