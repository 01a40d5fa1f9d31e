// Package testutil provides in-memory stand-ins for the stores and the
// renderer so use cases and handlers can be tested without postgres or Chrome.
package testutil

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"sync"
	"time"

	"resume-builder/internal/domain"
)

// PDFMagic is what a stub render starts with.
var PDFMagic = []byte("%PDF-1.4\n")

type AccountStore struct {
	mu    sync.Mutex
	users map[string]string
}

func NewAccountStore() *AccountStore {
	return &AccountStore{users: map[string]string{}}
}

func (s *AccountStore) Insert(_ context.Context, a domain.Account) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.users[a.Username]; ok {
		return fmt.Errorf("username %q: %w", a.Username, domain.ErrConflict)
	}
	s.users[a.Username] = a.PasswordHash
	return nil
}

func (s *AccountStore) Find(_ context.Context, username string) (*domain.Account, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	h, ok := s.users[username]
	if !ok {
		return nil, fmt.Errorf("user %q: %w", username, domain.ErrNotFound)
	}
	return &domain.Account{Username: username, PasswordHash: h}, nil
}

// StoredHash exposes what was persisted for a user.
func (s *AccountStore) StoredHash(username string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.users[username]
}

// ResumeStore keeps rows in memory. Sections go through a JSON round trip on
// write, like the JSON column does.
type ResumeStore struct {
	mu     sync.Mutex
	nextID int64
	rows   map[int64]domain.Resume
	// Err, when set, is returned by every call.
	Err error
}

func NewResumeStore() *ResumeStore {
	return &ResumeStore{rows: map[int64]domain.Resume{}}
}

func (s *ResumeStore) Create(_ context.Context, r *domain.Resume) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	sections, err := jsonCopy(r.Sections)
	if err != nil {
		return err
	}
	s.nextID++
	r.ID = s.nextID
	row := *r
	row.Sections = sections
	s.rows[row.ID] = row
	return nil
}

func (s *ResumeStore) ListByOwner(_ context.Context, username string) ([]domain.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	out := []domain.Resume{}
	for _, r := range s.rows {
		if r.Username == username {
			out = append(out, r)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].ID > out[j].ID
	})
	return out, nil
}

func (s *ResumeStore) Get(_ context.Context, id int64, owner string) (*domain.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return nil, s.Err
	}
	r, ok := s.lookup(id, owner)
	if !ok {
		return nil, fmt.Errorf("resume %d: %w", id, domain.ErrNotFound)
	}
	return &r, nil
}

func (s *ResumeStore) Update(_ context.Context, id int64, owner string, f domain.ResumeFields, at time.Time) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	r, ok := s.lookup(id, owner)
	if !ok {
		return fmt.Errorf("resume %d: %w", id, domain.ErrNotFound)
	}
	sections, err := jsonCopy(f.Sections)
	if err != nil {
		return err
	}
	f.Apply(&r)
	r.Sections = sections
	r.UpdatedAt = at
	s.rows[id] = r
	return nil
}

func (s *ResumeStore) Delete(_ context.Context, id int64, owner string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.lookup(id, owner); !ok {
		return fmt.Errorf("resume %d: %w", id, domain.ErrNotFound)
	}
	delete(s.rows, id)
	return nil
}

func (s *ResumeStore) DeleteAllByOwner(_ context.Context, username string) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return 0, s.Err
	}
	var n int64
	for id, r := range s.rows {
		if r.Username == username {
			delete(s.rows, id)
			n++
		}
	}
	return n, nil
}

func (s *ResumeStore) lookup(id int64, owner string) (domain.Resume, bool) {
	r, ok := s.rows[id]
	if !ok || (owner != "" && r.Username != owner) {
		return domain.Resume{}, false
	}
	return r, true
}

func jsonCopy(sections []interface{}) ([]interface{}, error) {
	if sections == nil {
		return []interface{}{}, nil
	}
	b, err := json.Marshal(sections)
	if err != nil {
		return nil, err
	}
	var out []interface{}
	if err := json.Unmarshal(b, &out); err != nil {
		return nil, err
	}
	return out, nil
}

// Renderer records calls and returns a fixed PDF or Err. A non-empty Panic
// makes every call panic with that value.
type Renderer struct {
	mu    sync.Mutex
	Calls []RenderCall
	Err   error
	Panic string
}

type RenderCall struct {
	HTML  string
	Setup domain.PageSetup
}

func (r *Renderer) RenderHTMLToPDF(_ context.Context, html string, setup domain.PageSetup) ([]byte, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.Calls = append(r.Calls, RenderCall{HTML: html, Setup: setup})
	if r.Panic != "" {
		panic(r.Panic)
	}
	if r.Err != nil {
		return nil, r.Err
	}
	return append(append([]byte{}, PDFMagic...), []byte(html)...), nil
}

func (r *Renderer) CallCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.Calls)
}
