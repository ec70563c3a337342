package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"smart-upi.backend/internal/domain/entities"
	domainerrors "smart-upi.backend/internal/domain/errors"
	"smart-upi.backend/internal/interfaces/http/response"
	"smart-upi.backend/internal/usecases"
)

type OrderHandler struct {
	ledger *usecases.LedgerUsecase
}

func NewOrderHandler(ledger *usecases.LedgerUsecase) *OrderHandler {
	return &OrderHandler{ledger: ledger}
}

// CreateOrder creates a new order
// POST /api/v1/orders
func (h *OrderHandler) CreateOrder(c *gin.Context) {
	var req entities.CreateOrderInput
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	order, err := h.ledger.CreateOrder(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusCreated, order)
}

// ListOrders lists all orders
// GET /api/v1/orders
func (h *OrderHandler) ListOrders(c *gin.Context) {
	orders := h.ledger.ListOrders(c.Request.Context())
	response.Success(c, http.StatusOK, gin.H{"orders": orders})
}

// GetOrder gets one order by ID
// GET /api/v1/orders/:id
func (h *OrderHandler) GetOrder(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid order ID"))
		return
	}

	order, err := h.ledger.GetOrder(c.Request.Context(), id)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, order)
}

// ListOrderAttempts lists the payment attempts for one order
// GET /api/v1/orders/:id/attempts
func (h *OrderHandler) ListOrderAttempts(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, domainerrors.BadRequest("invalid order ID"))
		return
	}

	attempts := h.ledger.ListAttemptsByOrder(c.Request.Context(), id)
	response.Success(c, http.StatusOK, gin.H{"attempts": attempts})
}
