package store

import (
	"context"
	"sync"

	"github.com/nattycheck/api/internal/domain/jobs"
)

// JobStore is the in-memory implementation of jobs.Store. Development grade:
// records live until the process exits, there is no capacity bound.
type JobStore struct {
	mu   sync.RWMutex
	jobs map[jobs.JobID]*jobs.Job
}

func NewJobStore() *JobStore {
	return &JobStore{jobs: make(map[jobs.JobID]*jobs.Job)}
}

func (s *JobStore) Create(_ context.Context, j *jobs.Job) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.jobs[j.ID]; exists {
		return jobs.ErrDuplicateID
	}
	// store a copy so the caller can't alias the record
	s.jobs[j.ID] = j.Clone()
	return nil
}

func (s *JobStore) Get(_ context.Context, id jobs.JobID) (*jobs.Job, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	j, ok := s.jobs[id]
	if !ok {
		return nil, jobs.ErrNotFound
	}
	return j.Clone(), nil
}

func (s *JobStore) Update(_ context.Context, id jobs.JobID, mutate func(*jobs.Job)) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	j, ok := s.jobs[id]
	if !ok {
		return jobs.ErrNotFound
	}
	mutate(j)
	return nil
}

// Len reports how many jobs the store tracks.
func (s *JobStore) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.jobs)
}
