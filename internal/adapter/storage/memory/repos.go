// Package memory holds process-local implementations of the storage ports.
// They back the service when PostgreSQL and Redis are disabled, and the
// end-to-end tests. Values are copied in and out so callers never share state
// with the store.
package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"wager-settlement/internal/core/domain"

	"github.com/google/uuid"
)

// --- Wager Repo ---

type WagerRepo struct {
	mu     sync.RWMutex
	wagers map[uuid.UUID]domain.Wager
}

func NewWagerRepo() *WagerRepo {
	return &WagerRepo{wagers: make(map[uuid.UUID]domain.Wager)}
}

func (r *WagerRepo) Create(ctx context.Context, w *domain.Wager) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.wagers[w.ID]; ok {
		return fmt.Errorf("wager already exists: %s", w.ID)
	}
	if w.BlocksNewWager() {
		for _, existing := range r.wagers {
			if existing.AccountID == w.AccountID && existing.BlocksNewWager() {
				return fmt.Errorf("account %s already has unresolved wager %s", w.AccountID, existing.ID)
			}
		}
	}
	r.wagers[w.ID] = *w
	return nil
}

func (r *WagerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wager, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	w, ok := r.wagers[id]
	if !ok {
		return nil, nil
	}
	return &w, nil
}

func (r *WagerRepo) GetUnresolvedByAccount(ctx context.Context, accountID string) (*domain.Wager, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, w := range r.wagers {
		if w.AccountID == accountID && w.BlocksNewWager() {
			return &w, nil
		}
	}
	return nil, nil
}

func (r *WagerRepo) Update(ctx context.Context, w *domain.Wager) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.wagers[w.ID]; !ok {
		return fmt.Errorf("wager not found: %s", w.ID)
	}
	r.wagers[w.ID] = *w
	return nil
}

func (r *WagerRepo) ListByStatus(ctx context.Context, status domain.WagerStatus, limit int) ([]domain.Wager, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.Wager
	for _, w := range r.wagers {
		if w.Status == status {
			out = append(out, w)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// --- Transaction Record Repo ---

type TransactionRecordRepo struct {
	mu      sync.RWMutex
	records map[string]domain.TransactionRecord
}

func NewTransactionRecordRepo() *TransactionRecordRepo {
	return &TransactionRecordRepo{records: make(map[string]domain.TransactionRecord)}
}

func (r *TransactionRecordRepo) Create(ctx context.Context, rec *domain.TransactionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[rec.IdempotencyKey]; !ok {
		r.records[rec.IdempotencyKey] = *rec
	}
	return nil
}

func (r *TransactionRecordRepo) Get(ctx context.Context, key string) (*domain.TransactionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rec, ok := r.records[key]
	if !ok {
		return nil, nil
	}
	return &rec, nil
}

func (r *TransactionRecordRepo) Update(ctx context.Context, rec *domain.TransactionRecord) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.records[rec.IdempotencyKey]; !ok {
		return fmt.Errorf("transaction record not found: %s", rec.IdempotencyKey)
	}
	r.records[rec.IdempotencyKey] = *rec
	return nil
}

func (r *TransactionRecordRepo) ListByWager(ctx context.Context, wagerID uuid.UUID) ([]domain.TransactionRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.TransactionRecord
	for _, rec := range r.records {
		if rec.WagerID == wagerID {
			out = append(out, rec)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

// --- Audit Repo ---

type AuditRepo struct {
	mu   sync.RWMutex
	logs []domain.AuditLog
}

func NewAuditRepo() *AuditRepo {
	return &AuditRepo{}
}

func (r *AuditRepo) Create(ctx context.Context, log *domain.AuditLog) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.logs = append(r.logs, *log)
	return nil
}

func (r *AuditRepo) ListByWager(ctx context.Context, wagerID uuid.UUID) ([]domain.AuditLog, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []domain.AuditLog
	for _, l := range r.logs {
		if l.WagerID != nil && *l.WagerID == wagerID {
			out = append(out, l)
		}
	}
	return out, nil
}

// Actions lists every recorded action in order.
func (r *AuditRepo) Actions() []domain.AuditAction {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]domain.AuditAction, len(r.logs))
	for i, l := range r.logs {
		out[i] = l.Action
	}
	return out
}
