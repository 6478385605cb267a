package database

import (
	"github.com/jmoiron/sqlx"
	"github.com/rs/zerolog/log"
)

// schema holds the full relational schema. Statements are idempotent so the
// bootstrap can run on every start.
var schema = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            BIGSERIAL PRIMARY KEY,
		name          TEXT NOT NULL,
		email         TEXT NOT NULL UNIQUE,
		phone         TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL,
		role          TEXT NOT NULL DEFAULT 'user' CHECK (role IN ('user', 'admin')),
		created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE TABLE IF NOT EXISTS photos (
		id             BIGSERIAL PRIMARY KEY,
		title          TEXT NOT NULL DEFAULT 'Untitled',
		description    TEXT NOT NULL DEFAULT '',
		filename       TEXT NOT NULL,
		thumb_filename TEXT,
		category       TEXT NOT NULL DEFAULT 'general',
		views          INTEGER NOT NULL DEFAULT 0 CHECK (views >= 0),
		likes          INTEGER NOT NULL DEFAULT 0 CHECK (likes >= 0),
		owner_id       BIGINT NOT NULL REFERENCES users(id),
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_photos_owner ON photos(owner_id)`,
	`CREATE INDEX IF NOT EXISTS idx_photos_category ON photos(category)`,
	`CREATE TABLE IF NOT EXISTS comments (
		id         BIGSERIAL PRIMARY KEY,
		content    TEXT NOT NULL,
		author_id  BIGINT NOT NULL REFERENCES users(id),
		photo_id   BIGINT NOT NULL REFERENCES photos(id),
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_comments_photo ON comments(photo_id)`,
	`CREATE TABLE IF NOT EXISTS bookings (
		id             BIGSERIAL PRIMARY KEY,
		name           TEXT NOT NULL,
		email          TEXT NOT NULL,
		phone          TEXT NOT NULL DEFAULT '',
		service_type   TEXT NOT NULL,
		requested_date DATE NOT NULL,
		message        TEXT NOT NULL DEFAULT '',
		status         TEXT NOT NULL DEFAULT 'pending'
			CHECK (status IN ('pending', 'confirmed', 'cancelled', 'completed')),
		requester_id   BIGINT REFERENCES users(id) ON DELETE SET NULL,
		created_at     TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_bookings_status ON bookings(status)`,
	`CREATE TABLE IF NOT EXISTS contacts (
		id         BIGSERIAL PRIMARY KEY,
		name       TEXT NOT NULL,
		email      TEXT NOT NULL,
		phone      TEXT NOT NULL DEFAULT '',
		message    TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	)`,
}

// Migrate creates the schema if it does not exist yet.
func Migrate(db *sqlx.DB) error {
	for _, stmt := range schema {
		if _, err := db.Exec(stmt); err != nil {
			return err
		}
	}
	log.Info().Msg("Database schema is up to date")
	return nil
}
