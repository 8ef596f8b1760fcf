package schema

import (
	"context"
	"fmt"

	"jobquest/internal/database"
)

// statements are idempotent so Ensure can run on every boot. The unique
// index on (user_id, job_id) is what makes favorite adds safe under
// concurrent requests from two tabs.
var statements = []string{
	`CREATE TABLE IF NOT EXISTS users (
		id            UUID PRIMARY KEY,
		google_id     TEXT,
		email         TEXT NOT NULL,
		name          TEXT NOT NULL DEFAULT '',
		avatar_url    TEXT NOT NULL DEFAULT '',
		password_hash TEXT NOT NULL DEFAULT '',
		created_at    TIMESTAMPTZ NOT NULL DEFAULT now(),
		updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_email_key ON users (email)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS users_google_id_key ON users (google_id) WHERE google_id IS NOT NULL`,
	`CREATE TABLE IF NOT EXISTS user_favorites (
		id              UUID PRIMARY KEY,
		user_id         UUID NOT NULL REFERENCES users (id) ON DELETE CASCADE,
		job_id          TEXT NOT NULL,
		title           TEXT NOT NULL,
		company         TEXT NOT NULL,
		location        TEXT NOT NULL,
		employment_type TEXT NOT NULL,
		apply_link      TEXT NOT NULL,
		company_logo    TEXT,
		description     TEXT NOT NULL DEFAULT '',
		salary          TEXT NOT NULL DEFAULT '',
		saved_at        TIMESTAMPTZ NOT NULL DEFAULT now(),
		seq             BIGINT GENERATED ALWAYS AS IDENTITY
	)`,
	`CREATE UNIQUE INDEX IF NOT EXISTS user_favorites_user_job_key ON user_favorites (user_id, job_id)`,
	`CREATE INDEX IF NOT EXISTS user_favorites_user_idx ON user_favorites (user_id)`,
}

func Ensure(ctx context.Context, db database.DB) error {
	if db == nil {
		return fmt.Errorf("nil db")
	}
	for _, stmt := range statements {
		if _, err := db.Exec(ctx, stmt); err != nil {
			return fmt.Errorf("schema ensure: %w", err)
		}
	}
	return nil
}
