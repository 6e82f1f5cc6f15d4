package handler

import (
	"time"

	"wager-settlement/internal/adapter/http/dto"
	"wager-settlement/internal/core/domain"
	"wager-settlement/internal/core/ports"
	"wager-settlement/pkg/apperror"
	"wager-settlement/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// WagerHandler handles the wager lifecycle endpoints.
type WagerHandler struct {
	settlementSvc ports.SettlementService
}

// NewWagerHandler creates a new WagerHandler.
func NewWagerHandler(settlementSvc ports.SettlementService) *WagerHandler {
	return &WagerHandler{settlementSvc: settlementSvc}
}

// PlaceWager handles POST /api/v1/wagers.
func (h *WagerHandler) PlaceWager(c *gin.Context) {
	var req dto.PlaceWagerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	var wagerID *uuid.UUID
	if req.WagerID != nil {
		id, err := uuid.Parse(*req.WagerID)
		if err != nil {
			response.Error(c, apperror.Validation("wager_id must be a UUID"))
			return
		}
		wagerID = &id
	}

	handle, err := h.settlementSvc.PlaceWager(c.Request.Context(), ports.PlaceWagerRequest{
		WagerID:    wagerID,
		Stake:      req.RawStake(),
		Variant:    domain.GameVariant(req.Variant),
		Params:     req.Params.DomainParams(),
		ClientSeed: req.ClientSeed,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, handle)
}

// GetWager handles GET /api/v1/wagers/:id.
func (h *WagerHandler) GetWager(c *gin.Context) {
	wagerID, ok := wagerParam(c)
	if !ok {
		return
	}

	w, err := h.settlementSvc.GetWager(c.Request.Context(), wagerID)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, toWagerResponse(w))
}

// ApplyAction handles POST /api/v1/wagers/:id/actions.
func (h *WagerHandler) ApplyAction(c *gin.Context) {
	wagerID, ok := wagerParam(c)
	if !ok {
		return
	}

	var req dto.PlayerActionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	if req.Kind == string(domain.PlayerActionReveal) && req.Index == nil {
		response.Error(c, apperror.Validation("index is required for REVEAL"))
		return
	}

	snap, err := h.settlementSvc.ApplyPlayerAction(c.Request.Context(), wagerID, req.DomainAction())
	if err != nil {
		// A round that ended but could not be settled still reports the round.
		if snap != nil {
			response.ErrorWithDetails(c, err, snap)
			return
		}
		response.Error(c, err)
		return
	}

	response.OK(c, snap)
}

// CashOut handles POST /api/v1/wagers/:id/cashout.
func (h *WagerHandler) CashOut(c *gin.Context) {
	wagerID, ok := wagerParam(c)
	if !ok {
		return
	}

	result, err := h.settlementSvc.CashOut(c.Request.Context(), wagerID)
	respondSettlement(c, result, err)
}

// Reconcile handles POST /api/v1/wagers/:id/reconcile.
func (h *WagerHandler) Reconcile(c *gin.Context) {
	wagerID, ok := wagerParam(c)
	if !ok {
		return
	}

	result, err := h.settlementSvc.Reconcile(c.Request.Context(), wagerID)
	respondSettlement(c, result, err)
}

// respondSettlement reports a settlement attempt. An unconfirmed credit is an
// error carrying the result so the caller knows which wager to reconcile.
func respondSettlement(c *gin.Context, result *domain.SettlementResult, err error) {
	if err != nil {
		if result != nil {
			response.ErrorWithDetails(c, err, result)
			return
		}
		response.Error(c, err)
		return
	}
	response.OK(c, result)
}

func wagerParam(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		response.Error(c, apperror.Validation("invalid wager id"))
		return uuid.Nil, false
	}
	return id, true
}

// toWagerResponse converts domain.Wager to DTO.
func toWagerResponse(w *domain.Wager) dto.WagerResponse {
	resp := dto.WagerResponse{
		ID:             w.ID.String(),
		Variant:        string(w.Variant),
		Stake:          int64(w.Stake),
		Status:         string(w.Status),
		Outcome:        string(w.Outcome),
		Payout:         int64(w.Payout),
		ServerSeedHash: w.Seeds.ServerSeedHash,
		ServerSeed:     w.Seeds.ServerSeed,
		ClientSeed:     w.Seeds.ClientSeed,
		Nonce:          w.Seeds.Nonce,
		CreatedAt:      w.CreatedAt.Format(time.RFC3339),
	}
	if w.ResolvedAt != nil {
		s := w.ResolvedAt.Format(time.RFC3339)
		resp.ResolvedAt = &s
	}
	return resp
}
