package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"resume-builder/internal/domain"

	"github.com/jackc/pgx/v4"
	"github.com/jackc/pgx/v4/pgxpool"
)

const resumeColumns = `id, username, name, title, email, phone, location, linkedin, sections, created_at, updated_at`

// ownerClause restricts id-addressed statements to one owner when the owner
// argument is non-empty and matches any owner otherwise.
const ownerClause = `($2::text = '' OR username = $2::text)`

type ResumeRepo struct {
	pool *pgxpool.Pool
}

func NewResumeRepo(pool *pgxpool.Pool) *ResumeRepo {
	return &ResumeRepo{pool: pool}
}

// Create inserts r and fills in its generated id.
func (r *ResumeRepo) Create(ctx context.Context, res *domain.Resume) error {
	sections, err := encodeSections(res.Sections)
	if err != nil {
		return fmt.Errorf("encode sections: %w", err)
	}
	err = r.pool.QueryRow(ctx, `INSERT INTO resumes (username, name, title, email, phone, location, linkedin, sections, created_at, updated_at)
		VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10)
		RETURNING id`,
		res.Username, res.Name, res.Title, res.Email, res.Phone, res.Location, res.LinkedIn, sections, res.CreatedAt, res.UpdatedAt).
		Scan(&res.ID)
	if err != nil {
		return fmt.Errorf("insert resume: %w", err)
	}
	return nil
}

func (r *ResumeRepo) ListByOwner(ctx context.Context, username string) ([]domain.Resume, error) {
	rows, err := r.pool.Query(ctx, `SELECT `+resumeColumns+` FROM resumes
		WHERE username = $1
		ORDER BY updated_at DESC, id DESC`, username)
	if err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	defer rows.Close()

	out := []domain.Resume{}
	for rows.Next() {
		res, err := scanResume(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *res)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list resumes: %w", err)
	}
	return out, nil
}

func (r *ResumeRepo) Get(ctx context.Context, id int64, owner string) (*domain.Resume, error) {
	row := r.pool.QueryRow(ctx, `SELECT `+resumeColumns+` FROM resumes WHERE id = $1 AND `+ownerClause, id, owner)
	res, err := scanResume(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("resume %d: %w", id, domain.ErrNotFound)
	}
	if err != nil {
		return nil, fmt.Errorf("select resume: %w", err)
	}
	return res, nil
}

// Update replaces every mutable column and stamps updated_at.
func (r *ResumeRepo) Update(ctx context.Context, id int64, owner string, f domain.ResumeFields, at time.Time) error {
	sections, err := encodeSections(f.Sections)
	if err != nil {
		return fmt.Errorf("encode sections: %w", err)
	}
	tag, err := r.pool.Exec(ctx, `UPDATE resumes
		SET name = $3, title = $4, email = $5, phone = $6, location = $7, linkedin = $8, sections = $9, updated_at = $10
		WHERE id = $1 AND `+ownerClause,
		id, owner, f.Name, f.Title, f.Email, f.Phone, f.Location, f.LinkedIn, sections, at)
	if err != nil {
		return fmt.Errorf("update resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("resume %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

func (r *ResumeRepo) Delete(ctx context.Context, id int64, owner string) error {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resumes WHERE id = $1 AND `+ownerClause, id, owner)
	if err != nil {
		return fmt.Errorf("delete resume: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("resume %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// DeleteAllByOwner never reports not-found; it returns how many rows went.
func (r *ResumeRepo) DeleteAllByOwner(ctx context.Context, username string) (int64, error) {
	tag, err := r.pool.Exec(ctx, `DELETE FROM resumes WHERE username = $1`, username)
	if err != nil {
		return 0, fmt.Errorf("delete resumes for %q: %w", username, err)
	}
	return tag.RowsAffected(), nil
}

func scanResume(row pgx.Row) (*domain.Resume, error) {
	var (
		res      domain.Resume
		sections []byte
	)
	err := row.Scan(&res.ID, &res.Username, &res.Name, &res.Title, &res.Email, &res.Phone,
		&res.Location, &res.LinkedIn, &sections, &res.CreatedAt, &res.UpdatedAt)
	if err != nil {
		return nil, err
	}
	res.Sections = decodeSections(sections)
	return &res, nil
}
