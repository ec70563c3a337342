package jobs

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"smart-upi.backend/pkg/logger"
)

// SettleFunc settles one attempt. It must be idempotent: the worker gives no
// guarantee that an attempt is still in its expected state at fire time.
type SettleFunc func(ctx context.Context, attemptID uuid.UUID)

type settleTask struct {
	attemptID uuid.UUID
	runAt     time.Time
}

// SettlementWorker consumes delayed settlement tasks on a single goroutine,
// serializing all settlement side effects.
type SettlementWorker struct {
	settle SettleFunc
	tasks  chan settleTask
	stop   chan struct{}
}

// NewSettlementWorker creates a new settlement worker
func NewSettlementWorker(settle SettleFunc) *SettlementWorker {
	return &SettlementWorker{
		settle: settle,
		tasks:  make(chan settleTask, 256),
		stop:   make(chan struct{}),
	}
}

// Schedule queues a settlement to run after the given delay. Non-blocking;
// if the queue is full the task is dropped with a warning (the attempt stays
// PENDING and can be re-driven by a later sync).
func (w *SettlementWorker) Schedule(attemptID uuid.UUID, delay time.Duration) {
	task := settleTask{attemptID: attemptID, runAt: time.Now().Add(delay)}
	select {
	case w.tasks <- task:
	default:
		logger.Warn(context.Background(), "settlement queue full, dropping task",
			zap.String("attempt_id", attemptID.String()))
	}
}

// Start runs the worker loop until the context is cancelled or Stop is called.
func (w *SettlementWorker) Start(ctx context.Context) {
	logger.Info(ctx, "settlement worker started")

	for {
		select {
		case <-ctx.Done():
			logger.Info(ctx, "settlement worker stopped (context cancelled)")
			return
		case <-w.stop:
			logger.Info(ctx, "settlement worker stopped")
			return
		case task := <-w.tasks:
			if !w.wait(ctx, task.runAt) {
				return
			}
			w.settle(ctx, task.attemptID)
		}
	}
}

// Stop stops the worker
func (w *SettlementWorker) Stop() {
	close(w.stop)
}

func (w *SettlementWorker) wait(ctx context.Context, runAt time.Time) bool {
	d := time.Until(runAt)
	if d <= 0 {
		return true
	}

	timer := time.NewTimer(d)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return false
	case <-w.stop:
		return false
	case <-timer.C:
		return true
	}
}
