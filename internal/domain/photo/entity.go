package photo

import (
	"database/sql"
	"time"
)

// Photo represents a portfolio entry. Views and Likes only ever grow;
// both counters are bumped with single atomic statements.
type Photo struct {
	ID            int64          `db:"id" json:"id"`
	Title         string         `db:"title" json:"title"`
	Description   string         `db:"description" json:"description,omitempty"`
	Category      string         `db:"category" json:"category"`
	Filename      string         `db:"filename" json:"-"`
	ThumbFilename sql.NullString `db:"thumb_filename" json:"-"`
	OwnerID       int64          `db:"owner_id" json:"owner_id"`
	Views         int            `db:"views" json:"views"`
	Likes         int            `db:"likes" json:"likes"`
	CreatedAt     time.Time      `db:"created_at" json:"created_at"`
}

// Comment is a visitor remark attached to a photo. AuthorName is joined
// from users at read time.
type Comment struct {
	ID         int64     `db:"id" json:"id"`
	PhotoID    int64     `db:"photo_id" json:"photo_id"`
	AuthorID   int64     `db:"author_id" json:"author_id"`
	AuthorName string    `db:"author_name" json:"author_name"`
	Content    string    `db:"content" json:"content"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}
