package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"smart-upi.backend/internal/interfaces/http/response"
	"smart-upi.backend/internal/usecases"
)

type AdminHandler struct {
	ledger *usecases.LedgerUsecase
}

func NewAdminHandler(ledger *usecases.LedgerUsecase) *AdminHandler {
	return &AdminHandler{ledger: ledger}
}

// Export produces the full-ledger export document (merchant only)
// GET /api/v1/admin/export
func (h *AdminHandler) Export(c *gin.Context) {
	response.Success(c, http.StatusOK, h.ledger.Export(c.Request.Context()))
}

// ClearAllData wipes the whole store (merchant only, for test/debug)
// POST /api/v1/admin/clear
func (h *AdminHandler) ClearAllData(c *gin.Context) {
	if err := h.ledger.ClearAllData(c.Request.Context()); err != nil {
		response.Error(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"cleared": true})
}
