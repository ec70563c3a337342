package usecases

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
	"go.uber.org/zap"

	"smart-upi.backend/internal/domain/entities"
	domainerrors "smart-upi.backend/internal/domain/errors"
	domainRepos "smart-upi.backend/internal/domain/repositories"
	"smart-upi.backend/pkg/logger"
	"smart-upi.backend/pkg/metrics"
	"smart-upi.backend/pkg/utils"
)

// SettlementScheduler schedules a delayed settlement for an attempt.
// Implemented by jobs.SettlementWorker in production.
type SettlementScheduler interface {
	Schedule(attemptID uuid.UUID, delay time.Duration)
}

// LedgerUsecase is the payment ledger engine: the order/attempt state
// machine, the offline queue and the connectivity flag. All mutations are
// serialized behind one mutex, since settlement callbacks race with
// merchant reconciliation and customer-initiated creation. Every mutating
// call persists the full four-record snapshot before returning.
type LedgerUsecase struct {
	mu           sync.Mutex
	orders       []*entities.Order
	attempts     []*entities.UPIAttempt
	offlineQueue []uuid.UUID
	online       bool

	store     domainRepos.StateStore
	decider   SettlementDecider
	scheduler SettlementScheduler

	settleDelay time.Duration
	syncDelay   time.Duration
}

// NewLedgerUsecase restores the ledger from the store and returns the engine.
// The four records are loaded as one consistent snapshot; absent records
// initialize empty with connectivity online.
func NewLedgerUsecase(
	ctx context.Context,
	store domainRepos.StateStore,
	decider SettlementDecider,
	settleDelay, syncDelay time.Duration,
) (*LedgerUsecase, error) {
	state, err := store.Load(ctx)
	if err != nil {
		return nil, domainerrors.Internal("failed to restore ledger state", err)
	}

	uc := &LedgerUsecase{
		orders:       state.Orders,
		attempts:     state.Attempts,
		offlineQueue: state.OfflineQueue,
		online:       state.Online,
		store:        store,
		decider:      decider,
		settleDelay:  settleDelay,
		syncDelay:    syncDelay,
	}
	metrics.OfflineQueueDepth.Set(float64(len(uc.offlineQueue)))

	logger.Info(ctx, "ledger restored",
		zap.Int("orders", len(uc.orders)),
		zap.Int("attempts", len(uc.attempts)),
		zap.Int("queued", len(uc.offlineQueue)),
		zap.Bool("online", uc.online),
	)
	return uc, nil
}

// SetScheduler attaches the settlement scheduler. Must be called before any
// attempt is created; kept separate from the constructor because the worker
// needs the engine's SettleAttempt as its callback.
func (uc *LedgerUsecase) SetScheduler(s SettlementScheduler) {
	uc.scheduler = s
}

// CreateOrder creates a PENDING order for a customer
func (uc *LedgerUsecase) CreateOrder(ctx context.Context, input entities.CreateOrderInput) (*entities.Order, error) {
	if input.CustomerName == "" {
		return nil, domainerrors.BadRequest("customer name is required")
	}
	if !input.Amount.IsPositive() {
		return nil, domainerrors.BadRequest("amount must be positive")
	}

	order := &entities.Order{
		ID:           utils.GenerateUUIDv7(),
		CustomerName: input.CustomerName,
		Amount:       input.Amount,
		Status:       entities.OrderStatusPending,
		CreatedAt:    time.Now(),
	}

	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.orders = append(uc.orders, order)
	metrics.OrdersCreated.Inc()

	if err := uc.persistLocked(ctx); err != nil {
		return nil, err
	}

	snapshot := *order
	return &snapshot, nil
}

// CreateAttempt creates a payment attempt for an order. While online the
// attempt starts PENDING and a delayed settlement is scheduled; while offline
// it starts OFFLINE and joins the offline queue. A zero amount copies the
// order's amount.
func (uc *LedgerUsecase) CreateAttempt(ctx context.Context, orderID uuid.UUID, amount decimal.Decimal, payerVPA string) (*entities.UPIAttempt, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	order := uc.findOrderLocked(orderID)
	if order == nil {
		return nil, domainerrors.NotFound("order not found")
	}
	if amount.IsZero() {
		amount = order.Amount
	}

	attempt := &entities.UPIAttempt{
		ID:               utils.GenerateUUIDv7(),
		OrderID:          orderID,
		Amount:           amount,
		PayerVPA:         payerVPA,
		ProvisionalTxnID: utils.GenerateTxnRef(),
		CreatedAt:        time.Now(),
	}

	if uc.online {
		attempt.Status = entities.AttemptStatusPending
		metrics.AttemptsCreated.WithLabelValues(metrics.ModeOnline).Inc()
	} else {
		attempt.Status = entities.AttemptStatusOffline
		uc.offlineQueue = append(uc.offlineQueue, attempt.ID)
		metrics.AttemptsCreated.WithLabelValues(metrics.ModeOffline).Inc()
		metrics.OfflineQueueDepth.Set(float64(len(uc.offlineQueue)))
	}
	uc.attempts = append(uc.attempts, attempt)

	if err := uc.persistLocked(ctx); err != nil {
		return nil, err
	}

	if attempt.Status == entities.AttemptStatusPending {
		uc.scheduleLocked(ctx, attempt.ID, uc.settleDelay)
	}

	snapshot := *attempt
	return &snapshot, nil
}

// SettleAttempt resolves a PENDING attempt to SUCCESS or FAILED using the
// settlement decider. Runs from the settlement worker; it re-checks state at
// fire time, so a missing attempt or one already terminal (for example
// reconciled by the merchant while the task was queued) is left untouched.
func (uc *LedgerUsecase) SettleAttempt(ctx context.Context, attemptID uuid.UUID) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	attempt := uc.findAttemptLocked(attemptID)
	if attempt == nil {
		// Data may have been cleared while the task was in flight.
		logger.Debug(ctx, "settlement target not found", zap.String("attempt_id", attemptID.String()))
		return
	}
	if attempt.Status != entities.AttemptStatusPending {
		metrics.Settlements.WithLabelValues(metrics.OutcomeSkipped).Inc()
		return
	}

	if uc.decider.Decide(attempt) {
		attempt.Status = entities.AttemptStatusSuccess
		uc.markOrderPaidLocked(attempt.OrderID)
		metrics.Settlements.WithLabelValues(metrics.OutcomeSuccess).Inc()
	} else {
		attempt.Status = entities.AttemptStatusFailed
		metrics.Settlements.WithLabelValues(metrics.OutcomeFailed).Inc()
	}

	logger.Info(ctx, "attempt settled",
		zap.String("attempt_id", attemptID.String()),
		zap.String("status", string(attempt.Status)),
	)

	// No caller to report to; degrade to a warning.
	if err := uc.persistLocked(ctx); err != nil {
		logger.Warn(ctx, "failed to persist settlement", zap.Error(err))
	}
}

// ReconcileAttempt is the merchant-initiated confirmation of an OFFLINE
// attempt. Returns false without mutating anything when the attempt is
// missing or not OFFLINE.
func (uc *LedgerUsecase) ReconcileAttempt(ctx context.Context, attemptID uuid.UUID) (bool, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	attempt := uc.findAttemptLocked(attemptID)
	if attempt == nil || attempt.Status != entities.AttemptStatusOffline {
		metrics.Reconciliations.WithLabelValues(metrics.ResultRejected).Inc()
		return false, nil
	}

	attempt.Status = entities.AttemptStatusSuccess
	attempt.ReconciledAt = null.TimeFrom(time.Now())
	uc.markOrderPaidLocked(attempt.OrderID)
	metrics.Reconciliations.WithLabelValues(metrics.ResultOK).Inc()

	logger.Info(ctx, "attempt reconciled", zap.String("attempt_id", attemptID.String()))

	if err := uc.persistLocked(ctx); err != nil {
		return true, err
	}
	return true, nil
}

// SetOnlineStatus toggles the connectivity flag. Coming online drains the
// offline queue.
func (uc *LedgerUsecase) SetOnlineStatus(ctx context.Context, online bool) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.online = online
	logger.Info(ctx, "connectivity changed", zap.Bool("online", online))

	if err := uc.persistLocked(ctx); err != nil {
		return err
	}

	if online {
		return uc.syncLocked(ctx)
	}
	return nil
}

// SyncWithServer drains the offline queue. No-op while offline. Every queued
// attempt still OFFLINE moves to PENDING and gets a delayed settlement; ids
// whose attempt was already reconciled (or otherwise terminal) are skipped so
// the drain can never overwrite a completed reconciliation. The queue is
// cleared atomically with the status transitions.
func (uc *LedgerUsecase) SyncWithServer(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	if !uc.online {
		return nil
	}
	return uc.syncLocked(ctx)
}

func (uc *LedgerUsecase) syncLocked(ctx context.Context) error {
	if len(uc.offlineQueue) == 0 {
		return nil
	}

	var drained []uuid.UUID
	for _, id := range uc.offlineQueue {
		attempt := uc.findAttemptLocked(id)
		if attempt == nil || attempt.Status != entities.AttemptStatusOffline {
			// Reconciled out-of-band before the drain, or stale id.
			continue
		}
		attempt.Status = entities.AttemptStatusPending
		drained = append(drained, id)
	}

	uc.offlineQueue = nil
	metrics.OfflineQueueDepth.Set(0)

	logger.Info(ctx, "offline queue drained", zap.Int("dispatched", len(drained)))

	if err := uc.persistLocked(ctx); err != nil {
		return err
	}

	for _, id := range drained {
		uc.scheduleLocked(ctx, id, uc.syncDelay)
	}
	return nil
}

// ClearAllData resets every collection, restores connectivity to online and
// purges durable storage. Irreversible; intended for test and debug use.
func (uc *LedgerUsecase) ClearAllData(ctx context.Context) error {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	uc.orders = nil
	uc.attempts = nil
	uc.offlineQueue = nil
	uc.online = true
	metrics.OfflineQueueDepth.Set(0)

	logger.Warn(ctx, "all ledger data cleared")

	if err := uc.store.Purge(ctx); err != nil {
		return domainerrors.Internal("failed to purge durable storage", err)
	}
	return nil
}

// ListOrders returns snapshots of all orders in insertion order
func (uc *LedgerUsecase) ListOrders(ctx context.Context) []*entities.Order {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	out := make([]*entities.Order, 0, len(uc.orders))
	for _, o := range uc.orders {
		snapshot := *o
		out = append(out, &snapshot)
	}
	return out
}

// GetOrder returns a snapshot of one order
func (uc *LedgerUsecase) GetOrder(ctx context.Context, id uuid.UUID) (*entities.Order, error) {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	order := uc.findOrderLocked(id)
	if order == nil {
		return nil, domainerrors.NotFound("order not found")
	}
	snapshot := *order
	return &snapshot, nil
}

// ListAttempts returns snapshots of all attempts in insertion order
func (uc *LedgerUsecase) ListAttempts(ctx context.Context) []*entities.UPIAttempt {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	out := make([]*entities.UPIAttempt, 0, len(uc.attempts))
	for _, a := range uc.attempts {
		snapshot := *a
		out = append(out, &snapshot)
	}
	return out
}

// ListAttemptsByOrder returns snapshots of the attempts for one order
func (uc *LedgerUsecase) ListAttemptsByOrder(ctx context.Context, orderID uuid.UUID) []*entities.UPIAttempt {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	var out []*entities.UPIAttempt
	for _, a := range uc.attempts {
		if a.OrderID == orderID {
			snapshot := *a
			out = append(out, &snapshot)
		}
	}
	return out
}

// OfflineQueue returns the ids currently awaiting sync
func (uc *LedgerUsecase) OfflineQueue(ctx context.Context) []uuid.UUID {
	uc.mu.Lock()
	defer uc.mu.Unlock()

	out := make([]uuid.UUID, len(uc.offlineQueue))
	copy(out, uc.offlineQueue)
	return out
}

// IsOnline reports the connectivity flag
func (uc *LedgerUsecase) IsOnline(ctx context.Context) bool {
	uc.mu.Lock()
	defer uc.mu.Unlock()
	return uc.online
}

// Export produces the full-ledger export document
func (uc *LedgerUsecase) Export(ctx context.Context) *entities.ExportDocument {
	return &entities.ExportDocument{
		Orders:     uc.ListOrders(ctx),
		Attempts:   uc.ListAttempts(ctx),
		ExportedAt: time.Now(),
	}
}

func (uc *LedgerUsecase) findOrderLocked(id uuid.UUID) *entities.Order {
	for _, o := range uc.orders {
		if o.ID == id {
			return o
		}
	}
	return nil
}

func (uc *LedgerUsecase) findAttemptLocked(id uuid.UUID) *entities.UPIAttempt {
	for _, a := range uc.attempts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// markOrderPaidLocked flips a PENDING order to PAID. Idempotent: an order
// already paid (or failed) is left as is, so duplicate successes never
// double-count. A missing order is tolerated as a stale reference.
func (uc *LedgerUsecase) markOrderPaidLocked(orderID uuid.UUID) {
	order := uc.findOrderLocked(orderID)
	if order == nil {
		logger.Debug(context.Background(), "paid order not found", zap.String("order_id", orderID.String()))
		return
	}
	if order.Status != entities.OrderStatusPending {
		return
	}
	order.Status = entities.OrderStatusPaid
}

func (uc *LedgerUsecase) scheduleLocked(ctx context.Context, attemptID uuid.UUID, delay time.Duration) {
	if uc.scheduler == nil {
		logger.Warn(ctx, "no settlement scheduler attached, attempt stays pending",
			zap.String("attempt_id", attemptID.String()))
		return
	}
	uc.scheduler.Schedule(attemptID, delay)
}

// persistLocked writes the full snapshot. The mutation stays applied in
// memory on failure so the caller can retry the save on a later operation.
func (uc *LedgerUsecase) persistLocked(ctx context.Context) error {
	state := &domainRepos.LedgerState{
		Orders:       uc.orders,
		Attempts:     uc.attempts,
		OfflineQueue: uc.offlineQueue,
		Online:       uc.online,
	}
	if err := uc.store.Save(ctx, state); err != nil {
		logger.Warn(ctx, "failed to persist ledger state", zap.Error(err))
		return domainerrors.Internal("failed to persist ledger state", err)
	}
	return nil
}
