// Package store owns the authoritative set of resumes for a session and keeps a
// persisted copy in a key-value Backend in sync with it.
package store

import (
	"context"
	"errors"
	"log/slog"
	"slices"
	"sync"

	"github.com/jonathan/career-pulse/internal/observability"
	"github.com/jonathan/career-pulse/internal/types"
)

// ErrNotFound is returned by Update and Modify when no resume has the given identifier.
var ErrNotFound = errors.New("resume not found")

// Store holds resumes in insertion order. Every successful create, update and
// delete writes the whole list to the backend before returning. A failed write
// is logged and the in-memory state stays authoritative.
//
// All methods are safe for concurrent use. Values going in and coming out are
// deep copies.
type Store struct {
	mu      sync.RWMutex
	resumes []types.Resume
	backend Backend
	key     string
	log     *slog.Logger

	// suspended is set when the backend failed to load at startup.
	suspended bool
}

// Option configures a Store.
type Option func(*Store)

// WithKey overrides the key the resume list is persisted under.
func WithKey(key string) Option {
	return func(s *Store) {
		if key != "" {
			s.key = key
		}
	}
}

// WithLogger sets the logger used for persistence failures.
func WithLogger(log *slog.Logger) Option {
	return func(s *Store) {
		s.log = observability.OrDefault(log)
	}
}

// Open builds a store from whatever the backend holds under the key.
//
// A missing key or malformed data is logged and replaced by one sample resume,
// which is persisted right away. When the backend itself cannot be read the
// sample is kept in memory only and writes stay suspended for the life of the
// store, so the stored list is never overwritten with data that was not read
// from it. Open itself never fails on stored data.
func Open(ctx context.Context, backend Backend, opts ...Option) *Store {
	s := &Store{
		backend: backend,
		key:     DefaultKey,
		log:     slog.Default(),
	}
	for _, opt := range opts {
		opt(s)
	}

	data, err := s.backend.Load(ctx, s.key)
	switch {
	case errors.Is(err, ErrKeyNotFound):
		s.log.Info("no stored resumes, starting with sample", "key", s.key)
		s.seed(ctx)
		return s
	case err != nil:
		s.log.Error("failed to read stored resumes, starting with sample and writes suspended", "key", s.key, "error", err)
		s.suspended = true
		s.resumes = []types.Resume{types.NewSampleResume()}
		return s
	}

	resumes, err := Decode(data)
	if err != nil {
		s.log.Error("failed to load stored resumes, starting with sample", "key", s.key, "error", err)
		s.seed(ctx)
		return s
	}

	s.resumes = resumes
	s.log.Debug("loaded stored resumes", "key", s.key, "count", len(resumes))
	return s
}

func (s *Store) seed(ctx context.Context) {
	s.resumes = []types.Resume{types.NewSampleResume()}
	s.persist(ctx)
}

// Suspended reports whether writes are off because the backend could not be
// read at startup.
func (s *Store) Suspended() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.suspended
}

// persist writes the current list. Callers hold s.mu. The write is not
// cancelled with the caller's context.
func (s *Store) persist(ctx context.Context) {
	if s.suspended {
		s.log.Warn("writes suspended, change kept in memory only", "key", s.key)
		return
	}
	data, err := Encode(s.resumes)
	if err == nil {
		err = s.backend.Save(context.WithoutCancel(ctx), s.key, data)
	}
	if err != nil {
		observability.PersistFailures.Inc()
		s.log.Error("failed to persist resumes", "key", s.key, "error", err)
	}
}

// List returns every resume in insertion order.
func (s *Store) List() []types.Resume {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]types.Resume, len(s.resumes))
	for i, r := range s.resumes {
		out[i] = r.Clone()
	}
	return out
}

// Len returns the number of resumes.
func (s *Store) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.resumes)
}

// Get returns the resume with the given identifier.
func (s *Store) Get(id string) (types.Resume, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if i := s.index(id); i >= 0 {
		return s.resumes[i].Clone(), true
	}
	return types.Resume{}, false
}

// Create appends a blank resume and returns its identifier.
func (s *Store) Create(ctx context.Context) string {
	return s.CreateFrom(ctx, types.NewBlankResume())
}

// CreateFrom appends a copy of template under a fresh identifier and returns it.
func (s *Store) CreateFrom(ctx context.Context, template types.Resume) string {
	r := template.Clone()
	r.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	r.ID = types.NewID()
	for s.index(r.ID) >= 0 {
		r.ID = types.NewID()
	}
	s.resumes = append(s.resumes, r)
	s.persist(ctx)
	observability.StoreMutations.WithLabelValues("create").Inc()
	return r.ID
}

// Update replaces the stored resume that has r's identifier. When there is none,
// nothing changes, nothing is written and ErrNotFound is returned.
func (s *Store) Update(ctx context.Context, r types.Resume) error {
	next := r.Clone()
	next.Normalize()

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(r.ID)
	if i < 0 {
		return ErrNotFound
	}
	s.resumes[i] = next
	s.persist(ctx)
	observability.StoreMutations.WithLabelValues("update").Inc()
	return nil
}

// Modify applies edit to the resume with the given identifier and stores the
// result, all under one lock, so concurrent edits of the same resume never
// overwrite each other. The identifier cannot be changed by edit. When edit
// fails nothing is stored and its error is returned. The stored resume is
// returned on success.
func (s *Store) Modify(ctx context.Context, id string, edit func(types.Resume) (types.Resume, error)) (types.Resume, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return types.Resume{}, ErrNotFound
	}
	next, err := edit(s.resumes[i].Clone())
	if err != nil {
		return types.Resume{}, err
	}
	next = next.Clone()
	next.ID = id
	next.Normalize()

	s.resumes[i] = next
	s.persist(ctx)
	observability.StoreMutations.WithLabelValues("update").Inc()
	return next.Clone(), nil
}

// Delete removes the resume with the given identifier and reports whether it existed.
// Deleting an unknown identifier is a no-op.
func (s *Store) Delete(ctx context.Context, id string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(id)
	if i < 0 {
		return false
	}
	s.resumes = slices.Delete(s.resumes, i, i+1)
	s.persist(ctx)
	observability.StoreMutations.WithLabelValues("delete").Inc()
	return true
}

// Close closes the backend. Writes are synchronous, so there is nothing to flush.
func (s *Store) Close() error {
	return s.backend.Close()
}

func (s *Store) index(id string) int {
	return slices.IndexFunc(s.resumes, func(r types.Resume) bool { return r.ID == id })
}
