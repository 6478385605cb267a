package photo

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
)

// CommentRepository defines the interface for comment data access
type CommentRepository interface {
	Create(ctx context.Context, c *Comment) error
	ListByPhoto(ctx context.Context, photoID int64) ([]*Comment, error)
	Count(ctx context.Context) (int, error)
}

type postgresCommentRepository struct {
	db *sqlx.DB
}

// NewCommentRepository creates a new PostgreSQL comment repository
func NewCommentRepository(db *sqlx.DB) CommentRepository {
	return &postgresCommentRepository{db: db}
}

func (r *postgresCommentRepository) Create(ctx context.Context, c *Comment) error {
	query := `
		INSERT INTO comments (photo_id, author_id, content)
		VALUES ($1, $2, $3)
		RETURNING id, created_at`

	err := r.db.QueryRowxContext(ctx, query, c.PhotoID, c.AuthorID, c.Content).
		Scan(&c.ID, &c.CreatedAt)
	if err != nil {
		return fmt.Errorf("failed to create comment: %w", err)
	}

	return nil
}

func (r *postgresCommentRepository) ListByPhoto(ctx context.Context, photoID int64) ([]*Comment, error) {
	comments := []*Comment{}
	query := `
		SELECT c.id, c.photo_id, c.author_id, u.name AS author_name, c.content, c.created_at
		FROM comments c
		JOIN users u ON u.id = c.author_id
		WHERE c.photo_id = $1
		ORDER BY c.created_at ASC`

	if err := r.db.SelectContext(ctx, &comments, query, photoID); err != nil {
		return nil, fmt.Errorf("failed to list comments: %w", err)
	}

	return comments, nil
}

func (r *postgresCommentRepository) Count(ctx context.Context) (int, error) {
	var count int
	if err := r.db.GetContext(ctx, &count, `SELECT COUNT(*) FROM comments`); err != nil {
		return 0, fmt.Errorf("failed to count comments: %w", err)
	}
	return count, nil
}
