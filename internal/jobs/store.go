// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package jobs manages research jobs: an injectable in-memory registry, a
// bounded worker pool that runs each job's pipeline to a terminal status,
// and a periodic sweep that evicts expired terminal jobs.
package jobs

import (
	"sort"
	"sync"

	"github.com/meshintel/draftwright/pkg/types"
)

// Store is the job registry. Implementations must be safe for concurrent
// use by the submission handler, each job's worker, and the sweep.
type Store interface {
	// Get returns a snapshot of the job, if present.
	Get(id string) (types.ResearchJob, bool)

	// Put inserts or replaces the job.
	Put(job types.ResearchJob)

	// Update applies fn to the job under the store's lock and reports
	// whether the job was present.
	Update(id string, fn func(*types.ResearchJob)) bool

	// Delete removes the job.
	Delete(id string)

	// List returns snapshots of all jobs, ordered by creation time.
	List() []types.ResearchJob
}

// MemoryStore is a Store backed by a map under one coarse lock. Jobs are
// stored and returned by value: a caller polling a job observes a snapshot
// that is safe to read while the worker appends further fields.
type MemoryStore struct {
	mu   sync.RWMutex
	jobs map[string]types.ResearchJob
}

// NewMemoryStore returns an empty registry.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{jobs: make(map[string]types.ResearchJob)}
}

func (s *MemoryStore) Get(id string) (types.ResearchJob, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	job, ok := s.jobs[id]
	return job, ok
}

func (s *MemoryStore) Put(job types.ResearchJob) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.jobs[job.ID] = job
}

func (s *MemoryStore) Update(id string, fn func(*types.ResearchJob)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	job, ok := s.jobs[id]
	if !ok {
		return false
	}
	fn(&job)
	s.jobs[id] = job
	return true
}

func (s *MemoryStore) Delete(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.jobs, id)
}

func (s *MemoryStore) List() []types.ResearchJob {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]types.ResearchJob, 0, len(s.jobs))
	for _, job := range s.jobs {
		out = append(out, job)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out
}
