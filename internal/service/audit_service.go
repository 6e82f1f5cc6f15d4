package service

import (
	"context"
	"encoding/json"
	"time"

	"wager-settlement/internal/core/domain"
	"wager-settlement/internal/core/ports"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

const (
	ActorSystem = "system"
	ActorPlayer = "player"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService creates a new audit service.
// If repo is nil, audit logs are only written to the logger.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Log records an audit entry asynchronously (fire-and-forget).
func (s *auditService) Log(ctx context.Context, entry *domain.AuditLog) {
	if entry.ID == uuid.Nil {
		entry.ID = uuid.New()
	}
	if entry.CreatedAt.IsZero() {
		entry.CreatedAt = time.Now().UTC()
	}

	go func() {
		ev := s.log.Info().
			Str("action", string(entry.Action)).
			Str("resource_type", entry.ResourceType).
			Str("resource_id", entry.ResourceID).
			Str("actor", entry.Actor)
		if entry.WagerID != nil {
			ev = ev.Str("wager_id", entry.WagerID.String())
		}
		ev.Msg("audit")

		if s.repo != nil {
			if err := s.repo.Create(context.WithoutCancel(ctx), entry); err != nil {
				s.log.Warn().Err(err).Str("action", string(entry.Action)).Msg("failed to persist audit log")
			}
		}
	}()
}

// wagerAudit builds an entry about one wager.
func wagerAudit(action domain.AuditAction, wagerID uuid.UUID, actor string, details map[string]interface{}) *domain.AuditLog {
	id := wagerID
	entry := &domain.AuditLog{
		ID:           uuid.New(),
		WagerID:      &id,
		Action:       action,
		ResourceType: "wager",
		ResourceID:   wagerID.String(),
		Actor:        actor,
		CreatedAt:    time.Now().UTC(),
	}
	return withDetails(entry, details)
}

// withDetails marshals details into entry. A marshalling failure drops the
// details, never the entry.
func withDetails(entry *domain.AuditLog, details map[string]interface{}) *domain.AuditLog {
	if len(details) == 0 {
		return entry
	}
	if b, err := json.Marshal(details); err == nil {
		entry.Details = string(b)
	}
	return entry
}
