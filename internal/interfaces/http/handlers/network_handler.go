package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	domainerrors "smart-upi.backend/internal/domain/errors"
	"smart-upi.backend/internal/interfaces/http/response"
	"smart-upi.backend/internal/usecases"
)

type NetworkHandler struct {
	ledger *usecases.LedgerUsecase
}

func NewNetworkHandler(ledger *usecases.LedgerUsecase) *NetworkHandler {
	return &NetworkHandler{ledger: ledger}
}

type SetOnlineStatusRequest struct {
	Online *bool `json:"online" binding:"required"`
}

// GetStatus reports the connectivity flag
// GET /api/v1/network/status
func (h *NetworkHandler) GetStatus(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"online": h.ledger.IsOnline(c.Request.Context()),
	})
}

// SetStatus toggles the connectivity flag (merchant only)
// POST /api/v1/network/status
func (h *NetworkHandler) SetStatus(c *gin.Context) {
	var req SetOnlineStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, domainerrors.BadRequest(err.Error()))
		return
	}

	if err := h.ledger.SetOnlineStatus(c.Request.Context(), *req.Online); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"online": *req.Online})
}

// Sync drains the offline queue (merchant only)
// POST /api/v1/network/sync
func (h *NetworkHandler) Sync(c *gin.Context) {
	if err := h.ledger.SyncWithServer(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{
		"online": h.ledger.IsOnline(c.Request.Context()),
		"queued": len(h.ledger.OfflineQueue(c.Request.Context())),
	})
}

// GetQueue lists the attempt ids awaiting sync (merchant only)
// GET /api/v1/network/queue
func (h *NetworkHandler) GetQueue(c *gin.Context) {
	response.Success(c, http.StatusOK, gin.H{
		"queue": h.ledger.OfflineQueue(c.Request.Context()),
	})
}
