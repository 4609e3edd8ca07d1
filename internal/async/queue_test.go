package async

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQueue_ProcessesAllJobs(t *testing.T) {
	var mu sync.Mutex
	seen := map[string]int{}

	q := NewQueue(func(_ context.Context, path string) error {
		mu.Lock()
		seen[path]++
		mu.Unlock()
		return nil
	}, nil, WithWorkers(3), WithQueueSize(16))

	for _, p := range []string{"a.txt", "b.pdf", "c.png"} {
		require.NoError(t, q.Enqueue(context.Background(), Job{Path: p, SubmittedAt: time.Now()}))
	}
	q.Shutdown(context.Background())

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, map[string]int{"a.txt": 1, "b.pdf": 1, "c.png": 1}, seen)
}

func TestQueue_EnqueueAfterShutdownIsNoop(t *testing.T) {
	q := NewQueue(func(context.Context, string) error { return nil }, nil, WithWorkers(1))
	q.Shutdown(context.Background())

	require.NoError(t, q.Enqueue(context.Background(), Job{Path: "late.txt"}))
}

func TestQueue_ShutdownTwiceIsSafe(t *testing.T) {
	q := NewQueue(func(context.Context, string) error { return nil }, nil)
	q.Shutdown(context.Background())
	assert.NotPanics(t, func() { q.Shutdown(context.Background()) })
}
