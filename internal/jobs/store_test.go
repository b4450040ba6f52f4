// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package jobs

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/meshintel/draftwright/pkg/types"
)

func TestMemoryStorePutGet(t *testing.T) {
	store := NewMemoryStore()

	_, ok := store.Get("missing")
	assert.False(t, ok)

	store.Put(types.ResearchJob{ID: "a", Status: types.StatusQueued})
	got, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, types.StatusQueued, got.Status)
}

func TestMemoryStoreGetReturnsSnapshot(t *testing.T) {
	store := NewMemoryStore()
	store.Put(types.ResearchJob{ID: "a", Status: types.StatusQueued})

	got, ok := store.Get("a")
	require.True(t, ok)
	got.Status = types.StatusError

	again, ok := store.Get("a")
	require.True(t, ok)
	assert.Equal(t, types.StatusQueued, again.Status)
}

func TestMemoryStoreUpdate(t *testing.T) {
	store := NewMemoryStore()
	store.Put(types.ResearchJob{ID: "a", Status: types.StatusQueued})

	ok := store.Update("a", func(j *types.ResearchJob) {
		j.Status = types.StatusProcessing
	})
	require.True(t, ok)

	got, _ := store.Get("a")
	assert.Equal(t, types.StatusProcessing, got.Status)

	assert.False(t, store.Update("missing", func(j *types.ResearchJob) {
		t.Fatal("update fn called for missing job")
	}))
}

func TestMemoryStoreListOrderedByCreation(t *testing.T) {
	store := NewMemoryStore()
	base := time.Now()
	store.Put(types.ResearchJob{ID: "c", CreatedAt: base.Add(2 * time.Second)})
	store.Put(types.ResearchJob{ID: "a", CreatedAt: base})
	store.Put(types.ResearchJob{ID: "b", CreatedAt: base.Add(time.Second)})

	jobs := store.List()
	require.Len(t, jobs, 3)
	assert.Equal(t, []string{"a", "b", "c"}, []string{jobs[0].ID, jobs[1].ID, jobs[2].ID})
}

func TestMemoryStoreDelete(t *testing.T) {
	store := NewMemoryStore()
	store.Put(types.ResearchJob{ID: "a"})
	store.Delete("a")
	_, ok := store.Get("a")
	assert.False(t, ok)

	// Deleting a missing job is a no-op.
	store.Delete("a")
}

func TestMemoryStoreConcurrentAccess(t *testing.T) {
	store := NewMemoryStore()
	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			id := fmt.Sprintf("job-%d", n)
			store.Put(types.ResearchJob{ID: id, CreatedAt: time.Now()})
			store.Update(id, func(j *types.ResearchJob) { j.Status = types.StatusCompleted })
			store.Get(id)
			store.List()
		}(i)
	}
	wg.Wait()
	assert.Len(t, store.List(), 16)
}
