// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jobs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/meshintel/draftwright/internal/metrics"
	"github.com/meshintel/draftwright/internal/workflow"
	"github.com/meshintel/draftwright/pkg/types"
)

// Runner executes the research pipeline for one job. *workflow.Engine
// satisfies it; tests substitute a stub.
type Runner interface {
	Run(ctx context.Context, st types.ResearchState) (types.ResearchState, error)
}

// ContextProvider supplies retrieval context from uploaded documents for a
// query. A nil provider, or a provider error, yields no context.
type ContextProvider interface {
	RelevantContext(ctx context.Context, query string) (string, error)
}

// Manager owns the job registry and the worker pool. Submitted jobs are
// queued by ID; a fixed number of workers drain the queue and run each
// job's pipeline to a terminal status.
type Manager struct {
	cfg    types.JobsConfig
	store  Store
	runner Runner
	docs   ContextProvider
	log    *zap.Logger

	queue chan string
	wg    sync.WaitGroup

	stopOnce sync.Once
}

// NewManager builds a Manager. docs may be nil when no document store is
// configured. Workers are not started until Start is called.
func NewManager(cfg types.JobsConfig, store Store, runner Runner, docs ContextProvider, log *zap.Logger) *Manager {
	if cfg.Workers <= 0 {
		cfg.Workers = 4
	}
	if cfg.QueueSize <= 0 {
		cfg.QueueSize = 64
	}
	if cfg.Retention <= 0 {
		cfg.Retention = 24 * time.Hour
	}
	if cfg.SweepInterval <= 0 {
		cfg.SweepInterval = time.Hour
	}
	if log == nil {
		log = zap.NewNop()
	}
	return &Manager{
		cfg:    cfg,
		store:  store,
		runner: runner,
		docs:   docs,
		log:    log,
		queue:  make(chan string, cfg.QueueSize),
	}
}

// Start launches the worker pool.
func (m *Manager) Start() {
	for i := 0; i < m.cfg.Workers; i++ {
		m.wg.Add(1)
		go m.worker()
	}
}

// Stop closes the queue and waits for in-flight jobs to finish. Queued jobs
// still drain; no new submissions are accepted afterwards.
func (m *Manager) Stop() {
	m.stopOnce.Do(func() { close(m.queue) })
	m.wg.Wait()
}

// Submit registers a new queued job for the query and hands it to the
// worker pool. styleNumber selects the output style; out-of-range values
// fall back to the default style. It fails when the queue is full.
func (m *Manager) Submit(query string, styleNumber int) (types.ResearchJob, error) {
	job := types.ResearchJob{
		ID: uuid.NewString(),
		ResearchState: types.ResearchState{
			Query:        query,
			ContentStyle: workflow.SelectContentStyle(styleNumber),
		},
		Status:    types.StatusQueued,
		CreatedAt: time.Now(),
	}
	m.store.Put(job)

	select {
	case m.queue <- job.ID:
	default:
		m.store.Delete(job.ID)
		return types.ResearchJob{}, fmt.Errorf("job queue is full (%d pending)", m.cfg.QueueSize)
	}

	metrics.JobsSubmitted.Inc()
	m.log.Info("job submitted",
		zap.String("research_id", job.ID),
		zap.String("query", query),
		zap.String("content_style", job.ContentStyle),
	)
	return job, nil
}

// Get returns a snapshot of the job, if present.
func (m *Manager) Get(id string) (types.ResearchJob, bool) {
	return m.store.Get(id)
}

// List returns snapshots of all registered jobs.
func (m *Manager) List() []types.ResearchJob {
	return m.store.List()
}

func (m *Manager) worker() {
	defer m.wg.Done()
	for id := range m.queue {
		m.run(id)
	}
}

func (m *Manager) run(id string) {
	ctx := context.Background()

	job, ok := m.store.Get(id)
	if !ok {
		// Swept or deleted while queued.
		return
	}

	started := time.Now()
	m.store.Update(id, func(j *types.ResearchJob) {
		j.Status = types.StatusProcessing
		j.ProcessingStartedAt = started
	})

	st := job.ResearchState
	if m.docs != nil {
		docCtx, err := m.docs.RelevantContext(ctx, st.Query)
		if err != nil {
			m.log.Warn("document context unavailable",
				zap.String("research_id", id), zap.Error(err))
		} else {
			st.PDFContext = docCtx
		}
	}

	final, err := m.runner.Run(ctx, st)
	finished := time.Now()
	metrics.JobDuration.Observe(finished.Sub(started).Seconds())

	if err != nil {
		m.store.Update(id, func(j *types.ResearchJob) {
			j.ResearchState = final
			j.Status = types.StatusError
			j.Error = err.Error()
			j.ErrorAt = finished
		})
		metrics.JobsFinished.WithLabelValues(string(types.StatusError)).Inc()
		m.log.Error("job failed", zap.String("research_id", id), zap.Error(err))
		return
	}

	m.store.Update(id, func(j *types.ResearchJob) {
		j.ResearchState = final
		j.Status = types.StatusCompleted
		j.CompletedAt = finished
	})
	metrics.JobsFinished.WithLabelValues(string(types.StatusCompleted)).Inc()
	m.log.Info("job completed",
		zap.String("research_id", id),
		zap.Duration("duration", finished.Sub(started)),
	)
}

// SweepLoop deletes expired terminal jobs on the configured interval until
// ctx is cancelled. It always returns nil so it can run under an error
// group alongside the HTTP server.
func (m *Manager) SweepLoop(ctx context.Context) error {
	ticker := time.NewTicker(m.cfg.SweepInterval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case <-ticker.C:
			if n := m.Sweep(time.Now()); n > 0 {
				m.log.Info("swept expired jobs", zap.Int("removed", n))
			}
		}
	}
}

// Sweep removes terminal jobs whose terminal timestamp is older than the
// retention window as of now, and returns how many were removed. Queued and
// processing jobs are never swept.
func (m *Manager) Sweep(now time.Time) int {
	cutoff := now.Add(-m.cfg.Retention)
	removed := 0
	for _, job := range m.store.List() {
		if !job.Status.Terminal() {
			continue
		}
		if job.TerminalAt().Before(cutoff) {
			m.store.Delete(job.ID)
			removed++
		}
	}
	if removed > 0 {
		metrics.JobsSwept.Add(float64(removed))
	}
	return removed
}
