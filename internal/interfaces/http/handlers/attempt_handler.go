package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	domainerrors "smart-upi.backend/internal/domain/errors"
	"smart-upi.backend/internal/interfaces/http/response"
	"smart-upi.backend/internal/usecases"
)

type AttemptHandler struct {
	ledger *usecases.LedgerUsecase
}

func NewAttemptHandler(ledger *usecases.LedgerUsecase) *AttemptHandler {
	return &AttemptHandler{ledger: ledger}
}

type CreateAttemptRequest struct {
	OrderID  string          `json:"orderId" binding:"required"`
	PayerVPA string          `json:"payerVpa" binding:"required"`
	Amount   decimal.Decimal `json:"amount"`
}

// CreateAttempt creates a payment attempt for an order
// POST /api/v1/attempts
func (h *AttemptHandler) CreateAttempt(c *gin.Context) {
	var req CreateAttemptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid order ID"))
		return
	}

	attempt, err := h.ledger.CreateAttempt(c.Request.Context(), orderID, req.Amount, req.PayerVPA)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, attempt)
}

// ListAttempts lists all payment attempts
// GET /api/v1/attempts
func (h *AttemptHandler) ListAttempts(c *gin.Context) {
	attempts := h.ledger.ListAttempts(c.Request.Context())
	response.Success(c, http.StatusOK, gin.H{"attempts": attempts})
}

// ReconcileAttempt confirms an offline attempt (merchant only)
// POST /api/v1/attempts/:id/reconcile
func (h *AttemptHandler) ReconcileAttempt(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid attempt ID"))
		return
	}

	ok, err := h.ledger.ReconcileAttempt(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}
	if !ok {
		response.Error(c, domainerrors.Conflict("attempt is not reconcilable"))
		return
	}

	response.Success(c, http.StatusOK, gin.H{"reconciled": true})
}
