package usecase

import (
	"context"
	"time"

	"resume-builder/internal/domain"
)

type Renderer interface {
	RenderHTMLToPDF(ctx context.Context, html string, setup domain.PageSetup) ([]byte, error)
}

type AccountRepo interface {
	Insert(ctx context.Context, a domain.Account) error
	Find(ctx context.Context, username string) (*domain.Account, error)
}

// ResumeRepo is the record store. An empty owner on id-addressed calls
// matches any owner.
type ResumeRepo interface {
	Create(ctx context.Context, r *domain.Resume) error
	ListByOwner(ctx context.Context, username string) ([]domain.Resume, error)
	Get(ctx context.Context, id int64, owner string) (*domain.Resume, error)
	Update(ctx context.Context, id int64, owner string, f domain.ResumeFields, at time.Time) error
	Delete(ctx context.Context, id int64, owner string) error
	DeleteAllByOwner(ctx context.Context, username string) (int64, error)
}
