package postgres

import (
	"context"
	"fmt"

	"wager-settlement/internal/core/domain"

	"github.com/google/uuid"
)

// AuditRepo implements ports.AuditRepository.
type AuditRepo struct {
	pool Pool
}

// NewAuditRepo creates a new AuditRepo.
func NewAuditRepo(pool Pool) *AuditRepo {
	return &AuditRepo{pool: pool}
}

func (r *AuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	var details *string
	if log.Details != "" {
		details = &log.Details
	}

	_, err := r.pool.Exec(ctx,
		`INSERT INTO audit_logs (id, wager_id, action, resource_type, resource_id, details, actor, created_at)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
		log.ID, log.WagerID, string(log.Action), log.ResourceType,
		log.ResourceID, details, log.Actor, log.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert audit log: %w", err)
	}
	return nil
}

// ListByWager returns a wager's audit trail in order.
func (r *AuditRepo) ListByWager(ctx context.Context, wagerID uuid.UUID) ([]domain.AuditLog, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT id, wager_id, action, resource_type, resource_id, COALESCE(details::text, ''), actor, created_at
		 FROM audit_logs WHERE wager_id = $1 ORDER BY created_at ASC`, wagerID)
	if err != nil {
		return nil, fmt.Errorf("list audit logs: %w", err)
	}
	defer rows.Close()

	var logs []domain.AuditLog
	for rows.Next() {
		var (
			l      domain.AuditLog
			action string
		)
		if err := rows.Scan(&l.ID, &l.WagerID, &action, &l.ResourceType, &l.ResourceID, &l.Details, &l.Actor, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan audit log: %w", err)
		}
		l.Action = domain.AuditAction(action)
		logs = append(logs, l)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate audit logs: %w", err)
	}
	return logs, nil
}
