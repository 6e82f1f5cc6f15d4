package middleware

import (
	"encoding/json"
	"net/http"
	"time"

	"wager-settlement/internal/core/domain"
	"wager-settlement/internal/core/ports"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// AuditLog creates an audit middleware that logs successful reconciliation
// and operator requests. Settlement effects are audited by the service itself.
func AuditLog(auditSvc ports.AuditService) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		// Only audit requests that were taken (2xx)
		if c.Writer.Status() < 200 || c.Writer.Status() >= 300 {
			return
		}
		if c.Request.Method == http.MethodGet || c.Request.Method == http.MethodHead || c.Request.Method == http.MethodOptions {
			return
		}

		action, resourceType := mapRouteToAction(c.FullPath(), c.Request.Method)
		if action == "" {
			return
		}

		var wagerID *uuid.UUID
		if id, err := uuid.Parse(c.Param("id")); err == nil {
			wagerID = &id
		}

		actor := "player"
		if op := c.GetString(CtxOperator); op != "" {
			actor = op
		}

		details, _ := json.Marshal(map[string]interface{}{
			"method":     c.Request.Method,
			"path":       c.Request.URL.Path,
			"status":     c.Writer.Status(),
			"request_id": c.GetString(CtxRequestID),
		})

		entry := &domain.AuditLog{
			ID:           uuid.New(),
			WagerID:      wagerID,
			Action:       action,
			ResourceType: resourceType,
			Details:      string(details),
			Actor:        actor,
			CreatedAt:    time.Now(),
		}
		if wagerID != nil {
			entry.ResourceID = wagerID.String()
		}
		auditSvc.Log(c.Request.Context(), entry)
	}
}

func mapRouteToAction(route, method string) (domain.AuditAction, string) {
	switch {
	case route == "/api/v1/wagers/:id/reconcile" && method == http.MethodPost:
		return domain.AuditActionReconcileRequested, "wager"
	case route == "/api/v1/admin/wagers/:id/force-end" && method == http.MethodPost:
		return domain.AuditActionOperatorRequest, "wager"
	}
	return "", ""
}
