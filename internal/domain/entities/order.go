package entities

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// OrderStatus represents order status
type OrderStatus string

const (
	OrderStatusPending OrderStatus = "PENDING"
	OrderStatusPaid    OrderStatus = "PAID"
	OrderStatusFailed  OrderStatus = "FAILED"
)

// Order represents a customer order awaiting payment.
// Status starts at PENDING and only ever moves forward to PAID or FAILED.
type Order struct {
	ID           uuid.UUID       `json:"id"`
	CustomerName string          `json:"customerName"`
	Amount       decimal.Decimal `json:"amount"`
	Status       OrderStatus     `json:"status"`
	CreatedAt    time.Time       `json:"createdAt"`
}

// CreateOrderInput represents input for creating an order
type CreateOrderInput struct {
	CustomerName string          `json:"customerName" binding:"required"`
	Amount       decimal.Decimal `json:"amount" binding:"required"`
}

// ExportDocument is the full-ledger export produced for manual backup.
type ExportDocument struct {
	Orders     []*Order      `json:"orders"`
	Attempts   []*UPIAttempt `json:"attempts"`
	ExportedAt time.Time     `json:"exportedAt"`
}
