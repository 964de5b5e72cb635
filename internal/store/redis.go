package store

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/storage/redis/v3"
	"github.com/google/uuid"

	"keywordmatrix/internal/models"
)

const (
	runKeyPrefix = "keywordmatrix:run:"
	latestKey    = "keywordmatrix:latest"
	pingKey      = "keywordmatrix:ping"
)

// KVStore keeps runs as JSON in a fiber storage backend, relying on the
// backend's key expiry for the TTL.
type KVStore struct {
	storage fiber.Storage
	ttl     time.Duration
}

// NewKVStore wraps any fiber storage.
func NewKVStore(storage fiber.Storage, ttl time.Duration) *KVStore {
	return &KVStore{storage: storage, ttl: ttl}
}

// NewRedisStore connects to Redis at url.
func NewRedisStore(url string, ttl time.Duration) *KVStore {
	return NewKVStore(redis.New(redis.Config{URL: url}), ttl)
}

func runKey(id uuid.UUID) string {
	return runKeyPrefix + id.String()
}

// Save implements Store.
func (s *KVStore) Save(ctx context.Context, run *models.Run) error {
	if run == nil {
		return ErrNilRun
	}

	data, err := json.Marshal(run)
	if err != nil {
		return fmt.Errorf("failed to encode run: %w", err)
	}
	if err := s.storage.SetWithContext(ctx, runKey(run.ID), data, s.ttl); err != nil {
		return fmt.Errorf("failed to save run: %w", err)
	}
	if err := s.storage.SetWithContext(ctx, latestKey, []byte(run.ID.String()), s.ttl); err != nil {
		return fmt.Errorf("failed to save latest run id: %w", err)
	}
	return nil
}

// Get implements Store.
func (s *KVStore) Get(ctx context.Context, id uuid.UUID) (*models.Run, error) {
	data, err := s.storage.GetWithContext(ctx, runKey(id))
	if err != nil {
		return nil, fmt.Errorf("failed to load run: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrRunNotFound
	}

	var run models.Run
	if err := json.Unmarshal(data, &run); err != nil {
		return nil, fmt.Errorf("failed to decode run: %w", err)
	}
	return &run, nil
}

// Latest implements Store.
func (s *KVStore) Latest(ctx context.Context) (*models.Run, error) {
	data, err := s.storage.GetWithContext(ctx, latestKey)
	if err != nil {
		return nil, fmt.Errorf("failed to load latest run id: %w", err)
	}
	if len(data) == 0 {
		return nil, ErrRunNotFound
	}

	id, err := uuid.ParseBytes(data)
	if err != nil {
		return nil, ErrRunNotFound
	}
	return s.Get(ctx, id)
}

// Ping implements Store by writing a short-lived key.
func (s *KVStore) Ping(ctx context.Context) error {
	return s.storage.SetWithContext(ctx, pingKey, []byte("1"), time.Second)
}

// Close implements Store.
func (s *KVStore) Close() error {
	return s.storage.Close()
}
