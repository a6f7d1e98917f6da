package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/labelforge/api/internal/model"
)

// ErrJobNotFound is returned when no record exists for a job id.
var ErrJobNotFound = errors.New("job not found")

// JobStore persists resolved print jobs for audit lookups.
type JobStore interface {
	Save(ctx context.Context, job *model.PrintJob) error
	Get(ctx context.Context, id string) (*model.PrintJob, error)
}

const jobRetention = 24 * time.Hour

// RedisJobStore keeps job records under job:<id> with a retention window.
type RedisJobStore struct {
	redis *redis.Client
}

func NewRedisJobStore(redisClient *redis.Client) *RedisJobStore {
	return &RedisJobStore{redis: redisClient}
}

func (s *RedisJobStore) Save(ctx context.Context, job *model.PrintJob) error {
	data, err := json.Marshal(job)
	if err != nil {
		return err
	}
	return s.redis.Set(ctx, jobKey(job.ID), data, jobRetention).Err()
}

func (s *RedisJobStore) Get(ctx context.Context, id string) (*model.PrintJob, error) {
	data, err := s.redis.Get(ctx, jobKey(id)).Bytes()
	if err != nil {
		if err == redis.Nil {
			return nil, ErrJobNotFound
		}
		return nil, err
	}

	var job model.PrintJob
	if err := json.Unmarshal(data, &job); err != nil {
		return nil, err
	}
	return &job, nil
}

func jobKey(id string) string {
	return fmt.Sprintf("job:%s", id)
}

// MemoryJobStore is an in-process store for tests and redis-less setups.
type MemoryJobStore struct {
	mu   sync.RWMutex
	jobs map[string]model.PrintJob
}

func NewMemoryJobStore() *MemoryJobStore {
	return &MemoryJobStore{jobs: make(map[string]model.PrintJob)}
}

func (s *MemoryJobStore) Save(_ context.Context, job *model.PrintJob) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = *job
	return nil
}

// IDs lists the stored job ids. Mainly useful in tests.
func (s *MemoryJobStore) IDs() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	ids := make([]string, 0, len(s.jobs))
	for id := range s.jobs {
		ids = append(ids, id)
	}
	return ids
}

func (s *MemoryJobStore) Get(_ context.Context, id string) (*model.PrintJob, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	if !ok {
		return nil, ErrJobNotFound
	}
	return &job, nil
}
