package store

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// MirrorBackend writes every save to all of its backends and loads from the first
// backend that holds the key. The first backend is the primary.
type MirrorBackend struct {
	backends []Backend
}

// NewMirrorBackend returns a backend mirroring writes across backends.
func NewMirrorBackend(backends ...Backend) (*MirrorBackend, error) {
	if len(backends) == 0 {
		return nil, fmt.Errorf("mirror needs at least one backend")
	}
	return &MirrorBackend{backends: backends}, nil
}

func (m *MirrorBackend) Load(ctx context.Context, key string) ([]byte, error) {
	var errs []error
	for _, b := range m.backends {
		data, err := b.Load(ctx, key)
		if err == nil {
			return data, nil
		}
		if !errors.Is(err, ErrKeyNotFound) {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return nil, errors.Join(errs...)
	}
	return nil, ErrKeyNotFound
}

// Save writes to every backend concurrently. It fails if any write fails; the
// backends that succeeded keep the new value.
func (m *MirrorBackend) Save(ctx context.Context, key string, value []byte) error {
	g, gCtx := errgroup.WithContext(ctx)
	for i, b := range m.backends {
		g.Go(func() error {
			if err := b.Save(gCtx, key, value); err != nil {
				return fmt.Errorf("mirror backend %d: %w", i, err)
			}
			return nil
		})
	}
	return g.Wait()
}

func (m *MirrorBackend) Close() error {
	var errs []error
	for _, b := range m.backends {
		if err := b.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}
