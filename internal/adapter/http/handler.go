package http

import (
	"context"

	"resume-builder/internal/usecase"
)

// Pinger reports storage reachability for the health endpoint.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Settings carries the deployment values handlers need at request time.
type Settings struct {
	Environment string
	// Development exposes raw error messages and panic stack traces.
	Development bool
	Version     string
	UploadDir   string
}

type Handler struct {
	accounts *usecase.Accounts
	resumes  *usecase.Resumes
	exporter *usecase.Exporter
	db       Pinger
	settings Settings
}

func NewHandler(a *usecase.Accounts, r *usecase.Resumes, e *usecase.Exporter, db Pinger, s Settings) *Handler {
	return &Handler{accounts: a, resumes: r, exporter: e, db: db, settings: s}
}
