package handler

import (
	"time"

	"wager-settlement/internal/adapter/http/dto"
	"wager-settlement/internal/core/domain"
	"wager-settlement/internal/core/ports"
	"wager-settlement/pkg/response"

	"github.com/gin-gonic/gin"
)

// AccountHandler serves the ledger balance and the process mode.
type AccountHandler struct {
	settlementSvc ports.SettlementService
	normalizer    ports.AmountNormalizer
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(settlementSvc ports.SettlementService, normalizer ports.AmountNormalizer) *AccountHandler {
	return &AccountHandler{settlementSvc: settlementSvc, normalizer: normalizer}
}

// GetBalance handles GET /api/v1/balance. It never calls the ledger.
func (h *AccountHandler) GetBalance(c *gin.Context) {
	response.OK(c, h.toBalanceResponse(h.settlementSvc.GetCachedBalance()))
}

// RefreshBalance handles POST /api/v1/balance/refresh.
func (h *AccountHandler) RefreshBalance(c *gin.Context) {
	acct, err := h.settlementSvc.RefreshBalance(c.Request.Context())
	if err != nil {
		response.ErrorWithDetails(c, err, h.toBalanceResponse(acct))
		return
	}
	response.OK(c, h.toBalanceResponse(acct))
}

// GetMode handles GET /api/v1/mode.
func (h *AccountHandler) GetMode(c *gin.Context) {
	response.OK(c, dto.ModeResponse{Mode: string(h.settlementSvc.GetMode())})
}

// Reconnect handles POST /api/v1/mode/reconnect.
func (h *AccountHandler) Reconnect(c *gin.Context) {
	mode, err := h.settlementSvc.Reconnect(c.Request.Context())
	if err != nil {
		response.ErrorWithDetails(c, err, dto.ModeResponse{Mode: string(mode)})
		return
	}
	response.OK(c, dto.ModeResponse{Mode: string(mode)})
}

func (h *AccountHandler) toBalanceResponse(acct domain.LedgerAccount) dto.BalanceResponse {
	resp := dto.BalanceResponse{
		AccountID:   acct.AccountID,
		Balance:     int64(acct.Balance),
		Display:     h.normalizer.Denormalize(acct.Balance).Value.String(),
		ScaleFactor: acct.ScaleFactor,
	}
	if !acct.LastSyncedAt.IsZero() {
		resp.LastSyncedAt = acct.LastSyncedAt.Format(time.RFC3339)
	}
	return resp
}
