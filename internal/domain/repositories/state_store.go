package repositories

import (
	"context"

	"github.com/google/uuid"
	"smart-upi.backend/internal/domain/entities"
)

// Record keys of the durable store. The four records form one logical
// snapshot: they are always written together and loaded together.
const (
	RecordOrders       = "orders"
	RecordAttempts     = "attempts"
	RecordOfflineQueue = "offline_queue"
	RecordOnlineStatus = "online_status"
)

// LedgerState is the full persisted state of the payment ledger.
type LedgerState struct {
	Orders       []*entities.Order
	Attempts     []*entities.UPIAttempt
	OfflineQueue []uuid.UUID
	Online       bool
}

// NewLedgerState returns the state a fresh ledger starts from.
func NewLedgerState() *LedgerState {
	return &LedgerState{Online: true}
}

// StateStore defines durable storage for the ledger snapshot
type StateStore interface {
	// Load reads all four records. Absent records initialize empty,
	// online_status defaults to true.
	Load(ctx context.Context) (*LedgerState, error)
	// Save writes all four records. Called synchronously after every
	// mutation.
	Save(ctx context.Context, state *LedgerState) error
	// Purge removes all records from durable storage.
	Purge(ctx context.Context) error
}
