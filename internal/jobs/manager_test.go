// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jobs

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshintel/draftwright/internal/workflow"
	"github.com/meshintel/draftwright/pkg/types"
)

type stubRunner struct {
	run func(ctx context.Context, st types.ResearchState) (types.ResearchState, error)
}

func (r *stubRunner) Run(ctx context.Context, st types.ResearchState) (types.ResearchState, error) {
	return r.run(ctx, st)
}

type stubDocs struct {
	text string
	err  error
}

func (d *stubDocs) RelevantContext(ctx context.Context, query string) (string, error) {
	return d.text, d.err
}

func completingRunner() *stubRunner {
	return &stubRunner{run: func(ctx context.Context, st types.ResearchState) (types.ResearchState, error) {
		st.DraftContent = "draft for " + st.Query
		return st, nil
	}}
}

func waitTerminal(t *testing.T, m *Manager, id string) types.ResearchJob {
	t.Helper()
	var job types.ResearchJob
	require.Eventually(t, func() bool {
		got, ok := m.Get(id)
		if !ok || !got.Status.Terminal() {
			return false
		}
		job = got
		return true
	}, 5*time.Second, 10*time.Millisecond)
	return job
}

func TestSubmitRunsJobToCompletion(t *testing.T) {
	m := NewManager(types.JobsConfig{Workers: 2}, NewMemoryStore(), completingRunner(), nil, nil)
	m.Start()
	defer m.Stop()

	job, err := m.Submit("history of container shipping", 2)
	require.NoError(t, err)
	assert.NotEmpty(t, job.ID)
	assert.Equal(t, types.StatusQueued, job.Status)
	assert.Equal(t, workflow.StyleDetailedReport, job.ContentStyle)
	assert.False(t, job.CreatedAt.IsZero())

	done := waitTerminal(t, m, job.ID)
	assert.Equal(t, types.StatusCompleted, done.Status)
	assert.Equal(t, "draft for history of container shipping", done.DraftContent)
	assert.False(t, done.ProcessingStartedAt.IsZero())
	assert.False(t, done.CompletedAt.IsZero())
	assert.Empty(t, done.Error)
}

func TestSubmitDefaultStyleForOutOfRangeNumber(t *testing.T) {
	m := NewManager(types.JobsConfig{}, NewMemoryStore(), completingRunner(), nil, nil)
	m.Start()
	defer m.Stop()

	job, err := m.Submit("quantum networking", 9)
	require.NoError(t, err)
	assert.Equal(t, workflow.StyleBlogPost, job.ContentStyle)
}

func TestRunnerErrorMarksJobFailed(t *testing.T) {
	runner := &stubRunner{run: func(ctx context.Context, st types.ResearchState) (types.ResearchState, error) {
		st.OptimizedQuery = "partial progress"
		return st, errors.New("verify_claims: provider unavailable")
	}}
	m := NewManager(types.JobsConfig{Workers: 1}, NewMemoryStore(), runner, nil, nil)
	m.Start()
	defer m.Stop()

	job, err := m.Submit("anything", 1)
	require.NoError(t, err)

	done := waitTerminal(t, m, job.ID)
	assert.Equal(t, types.StatusError, done.Status)
	assert.Equal(t, "verify_claims: provider unavailable", done.Error)
	assert.Equal(t, "partial progress", done.OptimizedQuery)
	assert.False(t, done.ErrorAt.IsZero())
	assert.True(t, done.CompletedAt.IsZero())
}

func TestSubmitFailsWhenQueueFull(t *testing.T) {
	block := make(chan struct{})
	runner := &stubRunner{run: func(ctx context.Context, st types.ResearchState) (types.ResearchState, error) {
		<-block
		return st, nil
	}}
	store := NewMemoryStore()
	m := NewManager(types.JobsConfig{Workers: 1, QueueSize: 1}, store, runner, nil, nil)
	m.Start()
	defer func() {
		close(block)
		m.Stop()
	}()

	// First job occupies the worker, second fills the queue. With a queue
	// depth of one the third may still fit if the worker has already picked
	// up the first, so submit until rejection.
	var rejected error
	accepted := 0
	for i := 0; i < 4 && rejected == nil; i++ {
		if _, err := m.Submit("q", 1); err != nil {
			rejected = err
		} else {
			accepted++
		}
	}
	require.Error(t, rejected)
	assert.Contains(t, rejected.Error(), "queue is full")

	// The rejected job must not linger in the registry.
	assert.Len(t, store.List(), accepted)
}

func TestDocumentContextFlowsIntoPipeline(t *testing.T) {
	var seen string
	runner := &stubRunner{run: func(ctx context.Context, st types.ResearchState) (types.ResearchState, error) {
		seen = st.PDFContext
		return st, nil
	}}
	m := NewManager(types.JobsConfig{Workers: 1}, NewMemoryStore(), runner, &stubDocs{text: "chunked document text"}, nil)
	m.Start()
	defer m.Stop()

	job, err := m.Submit("q", 1)
	require.NoError(t, err)
	waitTerminal(t, m, job.ID)
	assert.Equal(t, "chunked document text", seen)
}

func TestDocumentContextErrorIsIgnored(t *testing.T) {
	var seen string
	runner := &stubRunner{run: func(ctx context.Context, st types.ResearchState) (types.ResearchState, error) {
		seen = st.PDFContext
		return st, nil
	}}
	m := NewManager(types.JobsConfig{Workers: 1}, NewMemoryStore(), runner, &stubDocs{err: errors.New("index offline")}, nil)
	m.Start()
	defer m.Stop()

	job, err := m.Submit("q", 1)
	require.NoError(t, err)
	done := waitTerminal(t, m, job.ID)
	assert.Equal(t, types.StatusCompleted, done.Status)
	assert.Empty(t, seen)
}

func TestSweepRemovesOnlyExpiredTerminalJobs(t *testing.T) {
	store := NewMemoryStore()
	m := NewManager(types.JobsConfig{Retention: 24 * time.Hour}, store, completingRunner(), nil, nil)

	now := time.Now()
	store.Put(types.ResearchJob{ID: "old-done", Status: types.StatusCompleted, CompletedAt: now.Add(-25 * time.Hour)})
	store.Put(types.ResearchJob{ID: "old-error", Status: types.StatusError, ErrorAt: now.Add(-30 * time.Hour)})
	store.Put(types.ResearchJob{ID: "fresh-done", Status: types.StatusCompleted, CompletedAt: now.Add(-time.Hour)})
	store.Put(types.ResearchJob{ID: "stale-running", Status: types.StatusProcessing, CreatedAt: now.Add(-48 * time.Hour)})
	store.Put(types.ResearchJob{ID: "queued", Status: types.StatusQueued, CreatedAt: now.Add(-48 * time.Hour)})

	removed := m.Sweep(now)
	assert.Equal(t, 2, removed)

	for _, id := range []string{"fresh-done", "stale-running", "queued"} {
		_, ok := store.Get(id)
		assert.True(t, ok, "job %s should survive the sweep", id)
	}
	for _, id := range []string{"old-done", "old-error"} {
		_, ok := store.Get(id)
		assert.False(t, ok, "job %s should be swept", id)
	}
}

func TestSweepLoopStopsOnContextCancel(t *testing.T) {
	m := NewManager(types.JobsConfig{SweepInterval: 10 * time.Millisecond}, NewMemoryStore(), completingRunner(), nil, nil)

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- m.SweepLoop(ctx) }()

	time.Sleep(30 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("sweep loop did not stop after cancel")
	}
}
