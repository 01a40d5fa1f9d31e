package migration

import (
	"context"
	"log/slog"

	"github.com/jackc/pgx/v4/pgxpool"
)

// Migration represents a database migration
type Migration struct {
	Name string
	Up   func(ctx context.Context, pool *pgxpool.Pool) error
}

// Migrations lists every schema change in the order it must be applied.
// Each step is idempotent so the whole list runs on every startup.
func Migrations() []Migration {
	return []Migration{
		{Name: "create_users", Up: createUsers},
		{Name: "create_resumes", Up: createResumes},
		{Name: "index_resumes_owner_recency", Up: indexResumesOwnerRecency},
		{Name: "resumes_sections_as_json", Up: resumesSectionsAsJSON},
	}
}

// RunMigrations executes all necessary database migrations on startup
func RunMigrations(ctx context.Context, pool *pgxpool.Pool) error {
	slog.Info("Starting database migrations")

	for _, m := range Migrations() {
		if err := m.Up(ctx, pool); err != nil {
			slog.Error("Migration failed", "name", m.Name, "error", err)
			return err
		}
		slog.Info("Migration completed", "name", m.Name)
	}

	slog.Info("All migrations completed successfully")
	return nil
}

func createUsers(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS users (
			username TEXT PRIMARY KEY,
			password TEXT NOT NULL
		);
	`)
	return err
}

func createResumes(ctx context.Context, pool *pgxpool.Pool) error {
	_, err := pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS resumes (
			id BIGSERIAL PRIMARY KEY,
			username TEXT NOT NULL,
			name TEXT NOT NULL,
			title TEXT,
			email TEXT,
			phone TEXT,
			location TEXT,
			linkedin TEXT,
			sections JSON,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
			updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
		);
	`)
	return err
}

// indexResumesOwnerRecency backs the list-by-owner query.
func indexResumesOwnerRecency(ctx context.Context, pool *pgxpool.Pool) error {
	query := `
		CREATE INDEX IF NOT EXISTS resumes_username_updated_at_idx
		ON resumes (username, updated_at DESC);
	`

	if _, err := pool.Exec(ctx, query); err != nil {
		// The table is usable without the index, so keep starting up.
		slog.Warn("Error creating resumes owner index", "error", err)
		return nil
	}
	return nil
}

// resumesSectionsAsJSON moves tables created with a JSONB sections column to
// JSON. JSONB rejects the \u0000 escape, JSON keeps the text as sent.
func resumesSectionsAsJSON(ctx context.Context, pool *pgxpool.Pool) error {
	var dataType string
	err := pool.QueryRow(ctx, `
		SELECT data_type FROM information_schema.columns
		WHERE table_schema = current_schema() AND table_name = 'resumes' AND column_name = 'sections'
	`).Scan(&dataType)
	if err != nil {
		return err
	}
	if dataType != "jsonb" {
		return nil
	}
	_, err = pool.Exec(ctx, `ALTER TABLE resumes ALTER COLUMN sections TYPE JSON USING sections::json`)
	return err
}
