package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/volatiletech/null/v8"
)

// AttemptStatus represents UPI attempt status
type AttemptStatus string

const (
	AttemptStatusOffline AttemptStatus = "OFFLINE"
	AttemptStatusPending AttemptStatus = "PENDING"
	AttemptStatusSuccess AttemptStatus = "SUCCESS"
	AttemptStatusFailed  AttemptStatus = "FAILED"
)

// IsTerminal reports whether the status admits no further transitions.
func (s AttemptStatus) IsTerminal() bool {
	return s == AttemptStatusSuccess || s == AttemptStatusFailed
}

// UPIAttempt represents one payment try against an order.
//
// Allowed transitions:
//
//	OFFLINE -> SUCCESS (merchant reconciliation)
//	OFFLINE -> PENDING (queue drain on reconnection)
//	PENDING -> SUCCESS | FAILED (simulated settlement)
//
// ReconciledAt is set if and only if the attempt reached SUCCESS through the
// reconciliation path, never through simulated settlement.
type UPIAttempt struct {
	ID               uuid.UUID       `json:"id"`
	OrderID          uuid.UUID       `json:"orderId"`
	Amount           decimal.Decimal `json:"amount"`
	PayerVPA         string          `json:"payerVpa"`
	Status           AttemptStatus   `json:"status"`
	ProvisionalTxnID string          `json:"provisionalTxnId"`
	CreatedAt        time.Time       `json:"createdAt"`
	ReconciledAt     null.Time       `json:"reconciledAt,omitempty"`
}

// CreateAttemptInput represents input for creating a payment attempt
type CreateAttemptInput struct {
	OrderID  string `json:"orderId" binding:"required"`
	PayerVPA string `json:"payerVpa" binding:"required"`
}
