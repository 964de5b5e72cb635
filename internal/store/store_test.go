package store

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"

	"keywordmatrix/internal/models"
)

// mapStorage is a fiber.Storage backed by a map, honouring expiry.
type mapStorage struct {
	mu   sync.Mutex
	data map[string][]byte
	exp  map[string]time.Time
}

func newMapStorage() *mapStorage {
	return &mapStorage{data: map[string][]byte{}, exp: map[string]time.Time{}}
}

func (m *mapStorage) GetWithContext(_ context.Context, key string) ([]byte, error) {
	return m.Get(key)
}

func (m *mapStorage) Get(key string) ([]byte, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if e, ok := m.exp[key]; ok && !time.Now().Before(e) {
		return nil, nil
	}
	return m.data[key], nil
}

func (m *mapStorage) SetWithContext(_ context.Context, key string, val []byte, exp time.Duration) error {
	return m.Set(key, val, exp)
}

func (m *mapStorage) Set(key string, val []byte, exp time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = val
	if exp > 0 {
		m.exp[key] = time.Now().Add(exp)
	}
	return nil
}

func (m *mapStorage) DeleteWithContext(_ context.Context, key string) error { return m.Delete(key) }

func (m *mapStorage) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	delete(m.exp, key)
	return nil
}

func (m *mapStorage) ResetWithContext(context.Context) error { return m.Reset() }

func (m *mapStorage) Reset() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data = map[string][]byte{}
	m.exp = map[string]time.Time{}
	return nil
}

func (m *mapStorage) Close() error { return nil }

func sampleRun() *models.Run {
	rec := models.ClassifiedRecord{
		KeywordRecord: models.KeywordRecord{
			RawKeyword:        "강남 초등 영어",
			Keyword:           "강남 초등 영어",
			SearchVolumePC:    1000,
			SearchVolumeMob:   1000,
			TotalSearchVolume: 2000,
		},
		ClassificationResult: models.ClassificationResult{
			Class:  models.ClassSuitable,
			Detail: "프리미엄 학군 유아/초등 영어",
			Bucket: models.BucketStrategicSweetSpot,
		},
	}
	return &models.Run{
		ID:        uuid.New(),
		Source:    models.SourceAPI,
		CreatedAt: time.Now().UTC().Truncate(time.Second),
		Records:   []models.ClassifiedRecord{rec},
		Stats: map[models.Bucket]models.CategoryStats{
			models.BucketStrategicSweetSpot: {Bucket: models.BucketStrategicSweetSpot, Count: 1, AvgSearchVolume: 2000},
		},
	}
}

func stores() map[string]func(ttl time.Duration) Store {
	return map[string]func(ttl time.Duration) Store{
		"memory": func(ttl time.Duration) Store { return NewMemoryStore(ttl) },
		"kv":     func(ttl time.Duration) Store { return NewKVStore(newMapStorage(), ttl) },
	}
}

func TestStore_SaveGetLatest(t *testing.T) {
	for name, newStore := range stores() {
		t.Run(name, func(t *testing.T) {
			ctx := context.Background()
			s := newStore(time.Hour)
			defer s.Close()

			if _, err := s.Latest(ctx); !errors.Is(err, ErrRunNotFound) {
				t.Fatalf("Latest() on empty store error = %v, want ErrRunNotFound", err)
			}

			first, second := sampleRun(), sampleRun()
			if err := s.Save(ctx, first); err != nil {
				t.Fatalf("Save() error = %v", err)
			}
			if err := s.Save(ctx, second); err != nil {
				t.Fatalf("Save() error = %v", err)
			}

			got, err := s.Get(ctx, first.ID)
			if err != nil {
				t.Fatalf("Get() error = %v", err)
			}
			if got.ID != first.ID || len(got.Records) != 1 {
				t.Errorf("Get() = %+v, want run %s with 1 record", got, first.ID)
			}
			if got.Records[0].Bucket != models.BucketStrategicSweetSpot {
				t.Errorf("Get() bucket = %q", got.Records[0].Bucket)
			}
			if got.Stats[models.BucketStrategicSweetSpot].AvgSearchVolume != 2000 {
				t.Errorf("Get() stats = %+v", got.Stats)
			}

			latest, err := s.Latest(ctx)
			if err != nil {
				t.Fatalf("Latest() error = %v", err)
			}
			if latest.ID != second.ID {
				t.Errorf("Latest() = %s, want %s", latest.ID, second.ID)
			}

			if _, err := s.Get(ctx, uuid.New()); !errors.Is(err, ErrRunNotFound) {
				t.Errorf("Get(unknown) error = %v, want ErrRunNotFound", err)
			}
			if err := s.Save(ctx, nil); !errors.Is(err, ErrNilRun) {
				t.Errorf("Save(nil) error = %v, want ErrNilRun", err)
			}
			if err := s.Ping(ctx); err != nil {
				t.Errorf("Ping() error = %v", err)
			}
		})
	}
}

func TestMemoryStore_Expiry(t *testing.T) {
	ctx := context.Background()
	s := NewMemoryStore(time.Minute)
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return base }

	run := sampleRun()
	if err := s.Save(ctx, run); err != nil {
		t.Fatalf("Save() error = %v", err)
	}

	s.now = func() time.Time { return base.Add(59 * time.Second) }
	if _, err := s.Get(ctx, run.ID); err != nil {
		t.Errorf("Get() before expiry error = %v", err)
	}

	s.now = func() time.Time { return base.Add(time.Minute) }
	if _, err := s.Get(ctx, run.ID); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Get() at expiry error = %v, want ErrRunNotFound", err)
	}
	if _, err := s.Latest(ctx); !errors.Is(err, ErrRunNotFound) {
		t.Errorf("Latest() at expiry error = %v, want ErrRunNotFound", err)
	}

	if n := s.Sweep(base.Add(30 * time.Second)); n != 0 {
		t.Errorf("Sweep() early = %d, want 0", n)
	}
	if n := s.Sweep(base.Add(time.Minute)); n != 1 {
		t.Errorf("Sweep() = %d, want 1", n)
	}
	if s.Len() != 0 {
		t.Errorf("Len() = %d, want 0", s.Len())
	}
}
