package usecase

import (
	"context"
	"fmt"
	"time"

	"resume-builder/internal/domain"
)

// Resumes owns resume timestamps and owner rules on top of the record store.
//
// Id-addressed operations take an optional owner. When it is empty the id is
// a bearer capability and any caller who knows it may read or change the row.
// When it is set, rows owned by someone else are reported as not found.
type Resumes struct {
	repo ResumeRepo
	now  func() time.Time
}

func NewResumes(repo ResumeRepo) *Resumes {
	return &Resumes{repo: repo, now: storageNow}
}

// storageNow is truncated to the microsecond precision postgres keeps, so a
// timestamp handed back to a client equals the one later read from storage.
func storageNow() time.Time {
	return time.Now().UTC().Truncate(time.Microsecond)
}

func (s *Resumes) Create(ctx context.Context, owner string, f domain.ResumeFields) (*domain.Resume, error) {
	if owner == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	if f.Name == "" {
		return nil, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	now := s.now()
	r := &domain.Resume{Username: owner, CreatedAt: now, UpdatedAt: now}
	f.Apply(r)
	if err := s.repo.Create(ctx, r); err != nil {
		return nil, err
	}
	return r, nil
}

// List returns the owner's resumes, most recently updated first.
func (s *Resumes) List(ctx context.Context, owner string) ([]domain.Resume, error) {
	if owner == "" {
		return nil, fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	return s.repo.ListByOwner(ctx, owner)
}

func (s *Resumes) Get(ctx context.Context, id int64, owner string) (*domain.Resume, error) {
	return s.repo.Get(ctx, id, owner)
}

// Update replaces all mutable fields and returns the new updated_at.
func (s *Resumes) Update(ctx context.Context, id int64, owner string, f domain.ResumeFields) (time.Time, error) {
	if f.Name == "" {
		return time.Time{}, fmt.Errorf("%w: name is required", domain.ErrValidation)
	}
	at := s.now()
	if err := s.repo.Update(ctx, id, owner, f, at); err != nil {
		return time.Time{}, err
	}
	return at, nil
}

func (s *Resumes) Delete(ctx context.Context, id int64, owner string) error {
	return s.repo.Delete(ctx, id, owner)
}

// DeleteAll removes every resume of owner. Zero matches is still a success.
func (s *Resumes) DeleteAll(ctx context.Context, owner string) (int64, error) {
	if owner == "" {
		return 0, fmt.Errorf("%w: username is required", domain.ErrValidation)
	}
	return s.repo.DeleteAllByOwner(ctx, owner)
}
