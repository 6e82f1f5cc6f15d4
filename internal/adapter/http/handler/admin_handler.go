package handler

import (
	"errors"
	"io"

	"wager-settlement/internal/adapter/http/dto"
	"wager-settlement/internal/adapter/http/middleware"
	"wager-settlement/internal/core/ports"
	"wager-settlement/pkg/apperror"
	"wager-settlement/pkg/response"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
)

// AdminHandler handles operator-only endpoints.
type AdminHandler struct {
	settlementSvc ports.SettlementService
	log           zerolog.Logger
}

// NewAdminHandler creates a new AdminHandler.
func NewAdminHandler(settlementSvc ports.SettlementService, log zerolog.Logger) *AdminHandler {
	return &AdminHandler{settlementSvc: settlementSvc, log: log}
}

// ForceEnd handles POST /api/v1/admin/wagers/:id/force-end.
func (h *AdminHandler) ForceEnd(c *gin.Context) {
	operator := c.GetString(middleware.CtxOperator)
	if operator == "" {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}
	wagerID, ok := wagerParam(c)
	if !ok {
		return
	}

	// The body is optional.
	var req dto.ForceEndRequest
	if c.Request.ContentLength != 0 {
		if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
			response.Error(c, apperror.Validation(err.Error()))
			return
		}
	}

	result, err := h.settlementSvc.ForceEndSession(c.Request.Context(), wagerID, operator)
	if err != nil {
		response.Error(c, err)
		return
	}

	h.log.Warn().
		Str("wager_id", wagerID.String()).
		Str("operator", operator).
		Str("reason", req.Reason).
		Msg("operator force-ended wager")
	response.OK(c, result)
}
