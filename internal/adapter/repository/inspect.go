package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
)

// ColumnInfo describes one column as reported by information_schema.
type ColumnInfo struct {
	Name       string
	Type       string
	NotNull    bool
	PrimaryKey bool
}

// ResumeSummary is the short form of a resume used in reports.
type ResumeSummary struct {
	ID        int64
	Username  string
	Name      string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableReport is a snapshot of one table's shape and contents.
type TableReport struct {
	Table   string
	Exists  bool
	Columns []ColumnInfo
	Count   int64
	Recent  []ResumeSummary
}

// Inspector reads schema and row statistics for operators. It never writes.
type Inspector struct {
	pool *pgxpool.Pool
}

func NewInspector(pool *pgxpool.Pool) *Inspector {
	return &Inspector{pool: pool}
}

func (i *Inspector) TableExists(ctx context.Context, table string) (bool, error) {
	var exists bool
	err := i.pool.QueryRow(ctx, `SELECT EXISTS (
		SELECT 1 FROM information_schema.tables
		WHERE table_schema = current_schema() AND table_name = $1
	)`, table).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check table %q: %w", table, err)
	}
	return exists, nil
}

// Columns lists table columns in declaration order.
func (i *Inspector) Columns(ctx context.Context, table string) ([]ColumnInfo, error) {
	rows, err := i.pool.Query(ctx, `
		SELECT c.column_name, c.data_type, c.is_nullable = 'NO',
			EXISTS (
				SELECT 1 FROM information_schema.table_constraints tc
				JOIN information_schema.key_column_usage k
					ON k.constraint_name = tc.constraint_name AND k.table_schema = tc.table_schema
				WHERE tc.constraint_type = 'PRIMARY KEY'
					AND tc.table_schema = c.table_schema
					AND tc.table_name = c.table_name
					AND k.column_name = c.column_name
			)
		FROM information_schema.columns c
		WHERE c.table_schema = current_schema() AND c.table_name = $1
		ORDER BY c.ordinal_position`, table)
	if err != nil {
		return nil, fmt.Errorf("list columns of %q: %w", table, err)
	}
	defer rows.Close()

	out := []ColumnInfo{}
	for rows.Next() {
		var c ColumnInfo
		if err := rows.Scan(&c.Name, &c.Type, &c.NotNull, &c.PrimaryKey); err != nil {
			return nil, fmt.Errorf("scan column: %w", err)
		}
		out = append(out, c)
	}
	return out, rows.Err()
}

func (i *Inspector) CountResumes(ctx context.Context) (int64, error) {
	var n int64
	if err := i.pool.QueryRow(ctx, `SELECT COUNT(*) FROM resumes`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count resumes: %w", err)
	}
	return n, nil
}

// RecentResumes returns the most recently updated resumes across all owners.
func (i *Inspector) RecentResumes(ctx context.Context, limit int) ([]ResumeSummary, error) {
	rows, err := i.pool.Query(ctx, `SELECT id, username, name, created_at, updated_at
		FROM resumes
		ORDER BY updated_at DESC, id DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("recent resumes: %w", err)
	}
	defer rows.Close()

	out := []ResumeSummary{}
	for rows.Next() {
		var s ResumeSummary
		if err := rows.Scan(&s.ID, &s.Username, &s.Name, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan resume summary: %w", err)
		}
		out = append(out, s)
	}
	return out, rows.Err()
}

// ResumesReport gathers everything about the resumes table. A missing table
// is not an error; the report just says so.
func (i *Inspector) ResumesReport(ctx context.Context, recent int) (*TableReport, error) {
	rep := &TableReport{Table: "resumes"}
	exists, err := i.TableExists(ctx, rep.Table)
	if err != nil {
		return nil, err
	}
	if !exists {
		return rep, nil
	}
	rep.Exists = true

	if rep.Columns, err = i.Columns(ctx, rep.Table); err != nil {
		return nil, err
	}
	if rep.Count, err = i.CountResumes(ctx); err != nil {
		return nil, err
	}
	if rep.Recent, err = i.RecentResumes(ctx, recent); err != nil {
		return nil, err
	}
	return rep, nil
}
