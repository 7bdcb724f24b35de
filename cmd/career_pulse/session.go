package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/jonathan/career-pulse/internal/assistant"
	"github.com/jonathan/career-pulse/internal/config"
	"github.com/jonathan/career-pulse/internal/llm"
	"github.com/jonathan/career-pulse/internal/observability"
	"github.com/jonathan/career-pulse/internal/store"
	"github.com/jonathan/career-pulse/internal/types"
)

// session holds what every command needs: configuration, the opened store and
// the writing assistant.
type session struct {
	cfg     *config.Config
	log     *slog.Logger
	store   *store.Store
	gateway *assistant.Gateway
}

// openSession loads configuration, connects the storage backends and opens the store.
func openSession(ctx context.Context) (*session, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	log := observability.NewLogger(cfg.Env, os.Stderr)

	backend, err := openBackend(ctx, cfg)
	if err != nil {
		return nil, err
	}
	st := store.Open(ctx, backend, store.WithKey(cfg.StorageKey), store.WithLogger(log))

	var client llm.Client
	if cfg.AIEnabled() {
		llmConfig := llm.DefaultConfig().WithModel(llm.TierStandard, cfg.Model)
		client, err = llm.NewClient(ctx, llmConfig, cfg.APIKey)
		if err != nil {
			_ = st.Close()
			return nil, fmt.Errorf("failed to create LLM client: %w", err)
		}
	} else {
		log.Debug("no API key configured, writing assistant disabled")
	}

	return &session{
		cfg:     cfg,
		log:     log,
		store:   st,
		gateway: assistant.New(client, log),
	}, nil
}

// openBackend connects every configured backend. Several backends are mirrored,
// the first listed being the one reads prefer.
func openBackend(ctx context.Context, cfg *config.Config) (store.Backend, error) {
	var backends []store.Backend
	closeAll := func() {
		for _, b := range backends {
			_ = b.Close()
		}
	}

	for _, name := range cfg.Backends() {
		b, err := newBackend(ctx, cfg, name)
		if err != nil {
			closeAll()
			return nil, fmt.Errorf("failed to open %s backend: %w", name, err)
		}
		backends = append(backends, b)
	}

	if len(backends) == 1 {
		return backends[0], nil
	}
	mirror, err := store.NewMirrorBackend(backends...)
	if err != nil {
		closeAll()
		return nil, err
	}
	return mirror, nil
}

func newBackend(ctx context.Context, cfg *config.Config, name string) (store.Backend, error) {
	switch name {
	case config.BackendMemory:
		return store.NewMemoryBackend(), nil
	case config.BackendFile:
		return store.NewFileBackend(cfg.StorageDir)
	case config.BackendPostgres:
		return store.NewPostgresBackend(ctx, cfg.DatabaseURL)
	case config.BackendRedis:
		return store.NewRedisBackend(ctx, cfg.RedisAddr, cfg.RedisDB)
	case config.BackendS3:
		return store.NewS3Backend(ctx, store.S3Config{
			Bucket:    cfg.S3Bucket,
			Prefix:    cfg.S3Prefix,
			Region:    cfg.S3Region,
			Endpoint:  cfg.S3Endpoint,
			AccessKey: cfg.S3AccessKey,
			SecretKey: cfg.S3SecretKey,
		})
	}
	return nil, fmt.Errorf("unknown storage backend %q", name)
}

// Close releases the gateway and the store.
func (s *session) Close() {
	if err := s.gateway.Close(); err != nil {
		s.log.Warn("failed to close assistant", slog.Any("error", err))
	}
	if err := s.store.Close(); err != nil {
		s.log.Warn("failed to close store", slog.Any("error", err))
	}
}

// resume looks up id, failing with a not-found error the user can act on.
func (s *session) resume(id string) (types.Resume, error) {
	r, ok := s.store.Get(id)
	if !ok {
		return types.Resume{}, fmt.Errorf("resume %s: %w", id, store.ErrNotFound)
	}
	return r, nil
}

// modify applies edit to the resume with the given id and stores the result.
func (s *session) modify(ctx context.Context, id string, edit func(types.Resume) (types.Resume, error)) (types.Resume, error) {
	r, err := s.store.Modify(ctx, id, edit)
	if errors.Is(err, store.ErrNotFound) {
		return types.Resume{}, fmt.Errorf("resume %s: %w", id, err)
	}
	if err != nil {
		return types.Resume{}, fmt.Errorf("failed to save resume %s: %w", id, err)
	}
	return r, nil
}
