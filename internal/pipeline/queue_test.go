package pipeline_test

import (
	"errors"
	"testing"
	"time"

	"lading/internal/core/domain/model/commitment"
	"lading/internal/core/domain/model/kernel"
	"lading/internal/core/ports"
	"lading/internal/pipeline"
	"lading/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func defaultQueueConfig() pipeline.QueueConfig {
	return pipeline.QueueConfig{
		MaxDepth:            100,
		BatchThreshold:      10,
		TerminalGracePeriod: time.Minute,
	}
}

func newTestQueue(t *testing.T, cfg pipeline.QueueConfig) *pipeline.Queue {
	t.Helper()

	queue, err := pipeline.NewQueue(cfg)
	require.NoError(t, err)
	return queue
}

func newJobWithPriority(t *testing.T, priority commitment.Priority) *commitment.Job {
	t.Helper()

	job, err := commitment.NewJob(
		kernel.NewUUID(), kernel.NewUUID(), 2,
		commitment.JobTypeStatusTransition,
		map[string]any{"toState": "Approved"},
		priority,
	)
	require.NoError(t, err)
	return job
}

func TestQueueConfig_Validate(t *testing.T) {
	t.Run("should accept a sane configuration", func(t *testing.T) {
		require.NoError(t, defaultQueueConfig().Validate())
	})

	t.Run("should reject non positive max depth", func(t *testing.T) {
		cfg := defaultQueueConfig()
		cfg.MaxDepth = 0

		require.Error(t, cfg.Validate())
	})

	t.Run("should reject threshold above max depth", func(t *testing.T) {
		cfg := defaultQueueConfig()
		cfg.BatchThreshold = cfg.MaxDepth + 1

		err := cfg.Validate()
		require.Error(t, err)
		assert.IsType(t, &errs.ValueIsOutOfRangeError{}, err)
	})

	t.Run("should reject non positive grace period", func(t *testing.T) {
		cfg := defaultQueueConfig()
		cfg.TerminalGracePeriod = 0

		require.Error(t, cfg.Validate())
	})
}

func TestQueue_Enqueue(t *testing.T) {
	t.Run("should accept jobs up to max depth and reject beyond", func(t *testing.T) {
		cfg := defaultQueueConfig()
		cfg.MaxDepth = 3
		cfg.BatchThreshold = 3
		queue := newTestQueue(t, cfg)

		for range 3 {
			require.NoError(t, queue.Enqueue(newJobWithPriority(t, commitment.PriorityNormal)))
		}
		assert.Equal(t, 3, queue.Depth())

		err := queue.Enqueue(newJobWithPriority(t, commitment.PriorityNormal))
		require.Error(t, err)
		assert.ErrorIs(t, err, ports.ErrQueueFull)
		assert.Equal(t, 3, queue.Depth())
	})

	t.Run("should reject unconstructed jobs", func(t *testing.T) {
		queue := newTestQueue(t, defaultQueueConfig())

		var job commitment.Job
		require.Error(t, queue.Enqueue(&job))
	})

	t.Run("should nudge once the threshold is reached", func(t *testing.T) {
		cfg := defaultQueueConfig()
		cfg.BatchThreshold = 2
		queue := newTestQueue(t, cfg)

		require.NoError(t, queue.Enqueue(newJobWithPriority(t, commitment.PriorityNormal)))
		select {
		case <-queue.Nudge():
			t.Fatal("no nudge expected below the threshold")
		default:
		}

		require.NoError(t, queue.Enqueue(newJobWithPriority(t, commitment.PriorityNormal)))
		select {
		case <-queue.Nudge():
		case <-time.After(time.Second):
			t.Fatal("expected a nudge at the threshold")
		}
	})
}

func TestQueue_DequeueBatch(t *testing.T) {
	t.Run("should serve high priority before normal", func(t *testing.T) {
		queue := newTestQueue(t, defaultQueueConfig())

		normal := newJobWithPriority(t, commitment.PriorityNormal)
		high := newJobWithPriority(t, commitment.PriorityHigh)
		require.NoError(t, queue.Enqueue(normal))
		require.NoError(t, queue.Enqueue(high))

		batch := queue.DequeueBatch(10)

		require.Len(t, batch, 2)
		assert.True(t, batch[0].ID().IsEqual(high.ID()))
		assert.True(t, batch[1].ID().IsEqual(normal.ID()))
	})

	t.Run("should preserve FIFO order within a tier", func(t *testing.T) {
		queue := newTestQueue(t, defaultQueueConfig())

		first := newJobWithPriority(t, commitment.PriorityNormal)
		second := newJobWithPriority(t, commitment.PriorityNormal)
		require.NoError(t, queue.Enqueue(first))
		require.NoError(t, queue.Enqueue(second))

		batch := queue.DequeueBatch(10)

		require.Len(t, batch, 2)
		assert.True(t, batch[0].ID().IsEqual(first.ID()))
		assert.True(t, batch[1].ID().IsEqual(second.ID()))
	})

	t.Run("should respect the batch size limit", func(t *testing.T) {
		queue := newTestQueue(t, defaultQueueConfig())
		for range 5 {
			require.NoError(t, queue.Enqueue(newJobWithPriority(t, commitment.PriorityNormal)))
		}

		batch := queue.DequeueBatch(3)

		assert.Len(t, batch, 3)
		assert.Equal(t, 2, queue.Depth())
	})

	t.Run("should mark dequeued jobs as submitting", func(t *testing.T) {
		queue := newTestQueue(t, defaultQueueConfig())
		job := newJobWithPriority(t, commitment.PriorityNormal)
		require.NoError(t, queue.Enqueue(job))

		batch := queue.DequeueBatch(1)
		require.Len(t, batch, 1)
		assert.Equal(t, commitment.StatusSubmitting, batch[0].Status())

		snapshot, err := queue.Job(job.ID())
		require.NoError(t, err)
		assert.Equal(t, commitment.StatusSubmitting, snapshot.Status())
	})

	t.Run("should return snapshots not live jobs", func(t *testing.T) {
		queue := newTestQueue(t, defaultQueueConfig())
		job := newJobWithPriority(t, commitment.PriorityNormal)
		require.NoError(t, queue.Enqueue(job))

		batch := queue.DequeueBatch(1)
		require.NoError(t, queue.MarkCommitted(job.ID(), "ledger-ref"))

		// The committer's snapshot is unaffected by the registry update.
		assert.Equal(t, commitment.StatusSubmitting, batch[0].Status())
	})

	t.Run("should return empty batch from empty queue", func(t *testing.T) {
		queue := newTestQueue(t, defaultQueueConfig())

		assert.Empty(t, queue.DequeueBatch(10))
		assert.Empty(t, queue.DequeueBatch(0))
	})
}

func TestQueue_Job(t *testing.T) {
	t.Run("should return not found for unknown ids", func(t *testing.T) {
		queue := newTestQueue(t, defaultQueueConfig())

		_, err := queue.Job(kernel.NewUUID())

		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})
}

func TestQueue_Cancel(t *testing.T) {
	t.Run("should cancel a still queued job", func(t *testing.T) {
		queue := newTestQueue(t, defaultQueueConfig())
		job := newJobWithPriority(t, commitment.PriorityNormal)
		require.NoError(t, queue.Enqueue(job))

		require.NoError(t, queue.Cancel(job.ID()))

		assert.Equal(t, 0, queue.Depth())
		_, err := queue.Job(job.ID())
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should refuse cancelling an in flight job", func(t *testing.T) {
		queue := newTestQueue(t, defaultQueueConfig())
		job := newJobWithPriority(t, commitment.PriorityNormal)
		require.NoError(t, queue.Enqueue(job))
		queue.DequeueBatch(1)

		err := queue.Cancel(job.ID())

		require.Error(t, err)
		assert.ErrorIs(t, err, ports.ErrJobNotCancellable)
	})

	t.Run("should return not found for unknown ids", func(t *testing.T) {
		queue := newTestQueue(t, defaultQueueConfig())

		assert.ErrorIs(t, queue.Cancel(kernel.NewUUID()), errs.ErrObjectNotFound)
	})
}

func TestQueue_TransientFailureHandling(t *testing.T) {
	t.Run("should requeue while retry budget remains", func(t *testing.T) {
		queue := newTestQueue(t, defaultQueueConfig())
		job := newJobWithPriority(t, commitment.PriorityNormal)
		require.NoError(t, queue.Enqueue(job))
		queue.DequeueBatch(1)

		requeued, retryCount, err := queue.HandleTransientFailure(job.ID(), errors.New("timeout"), 3)

		require.NoError(t, err)
		assert.True(t, requeued)
		assert.Equal(t, 1, retryCount)

		// Requeued jobs wait out their backoff before re-entering the deque.
		assert.Equal(t, 0, queue.Depth())

		require.NoError(t, queue.Restore(job.ID()))
		assert.Equal(t, 1, queue.Depth())
	})

	t.Run("should dead letter once the budget is exhausted", func(t *testing.T) {
		queue := newTestQueue(t, defaultQueueConfig())
		job := newJobWithPriority(t, commitment.PriorityNormal)
		require.NoError(t, queue.Enqueue(job))
		queue.DequeueBatch(1)

		requeued, _, err := queue.HandleTransientFailure(job.ID(), errors.New("timeout"), 0)

		require.NoError(t, err)
		assert.False(t, requeued)

		snapshot, err := queue.Job(job.ID())
		require.NoError(t, err)
		assert.Equal(t, commitment.StatusFailedPermanent, snapshot.Status())
		assert.Len(t, queue.DeadLetters(), 1)
	})
}

func TestQueue_RequeueDeadLetter(t *testing.T) {
	deadLetter := func(t *testing.T, queue *pipeline.Queue) *commitment.Job {
		t.Helper()
		job := newJobWithPriority(t, commitment.PriorityNormal)
		require.NoError(t, queue.Enqueue(job))
		queue.DequeueBatch(1)
		require.NoError(t, queue.MarkFailedPermanent(job.ID(), errors.New("schema rejected")))
		return job
	}

	t.Run("should return a dead letter to the queue with fresh budget", func(t *testing.T) {
		queue := newTestQueue(t, defaultQueueConfig())
		job := deadLetter(t, queue)

		require.NoError(t, queue.RequeueDeadLetter(job.ID()))

		assert.Equal(t, 1, queue.Depth())
		assert.Empty(t, queue.DeadLetters())

		snapshot, err := queue.Job(job.ID())
		require.NoError(t, err)
		assert.Equal(t, commitment.StatusQueued, snapshot.Status())
		assert.Equal(t, 0, snapshot.RetryCount())
	})

	t.Run("should refuse requeueing a non dead letter", func(t *testing.T) {
		queue := newTestQueue(t, defaultQueueConfig())
		job := newJobWithPriority(t, commitment.PriorityNormal)
		require.NoError(t, queue.Enqueue(job))

		require.Error(t, queue.RequeueDeadLetter(job.ID()))
	})

	t.Run("should respect the depth bound", func(t *testing.T) {
		cfg := defaultQueueConfig()
		cfg.MaxDepth = 1
		cfg.BatchThreshold = 1
		queue := newTestQueue(t, cfg)
		dead := deadLetter(t, queue)
		require.NoError(t, queue.Enqueue(newJobWithPriority(t, commitment.PriorityNormal)))

		err := queue.RequeueDeadLetter(dead.ID())

		assert.ErrorIs(t, err, ports.ErrQueueFull)
	})
}

func TestQueue_TerminalGracePurge(t *testing.T) {
	t.Run("should purge committed jobs after the grace period", func(t *testing.T) {
		cfg := defaultQueueConfig()
		cfg.TerminalGracePeriod = 10 * time.Millisecond
		queue := newTestQueue(t, cfg)

		job := newJobWithPriority(t, commitment.PriorityNormal)
		require.NoError(t, queue.Enqueue(job))
		queue.DequeueBatch(1)
		require.NoError(t, queue.MarkCommitted(job.ID(), "ledger-ref"))

		time.Sleep(20 * time.Millisecond)
		queue.DequeueBatch(1) // drains trigger the purge

		_, err := queue.Job(job.ID())
		assert.ErrorIs(t, err, errs.ErrObjectNotFound)
	})

	t.Run("should keep dead letters past the grace period", func(t *testing.T) {
		cfg := defaultQueueConfig()
		cfg.TerminalGracePeriod = 10 * time.Millisecond
		queue := newTestQueue(t, cfg)

		job := newJobWithPriority(t, commitment.PriorityNormal)
		require.NoError(t, queue.Enqueue(job))
		queue.DequeueBatch(1)
		require.NoError(t, queue.MarkFailedPermanent(job.ID(), errors.New("schema rejected")))

		time.Sleep(20 * time.Millisecond)
		queue.DequeueBatch(1)

		snapshot, err := queue.Job(job.ID())
		require.NoError(t, err)
		assert.Equal(t, commitment.StatusFailedPermanent, snapshot.Status())
	})
}
