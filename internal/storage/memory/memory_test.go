package memory

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aanand-mishra/students-web/internal/storage"
	"github.com/aanand-mishra/students-web/internal/storage/storagetest"
)

func TestMemory(t *testing.T) {
	storagetest.Run(t, func(t *testing.T) storage.Storage { return New() })
}

func TestConcurrentCreatesGetUniqueIDs(t *testing.T) {
	s := New()
	ctx := context.Background()

	const n = 50
	ids := make(chan int64, n)
	var wg sync.WaitGroup
	for i := 0; i < n; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			st, err := s.CreateStudent(ctx, "a", "b", "c", "d")
			assert.NoError(t, err)
			ids <- st.ID
		}()
	}
	wg.Wait()
	close(ids)

	seen := make(map[int64]bool)
	for id := range ids {
		require.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
	assert.Len(t, seen, n)
}

func TestIDsAreNotReused(t *testing.T) {
	s := New()
	ctx := context.Background()

	first, err := s.CreateStudent(ctx, "a", "b", "c", "d")
	require.NoError(t, err)
	require.NoError(t, s.DeleteStudentByID(ctx, first.ID))

	second, err := s.CreateStudent(ctx, "a", "b", "c", "d")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)
}
