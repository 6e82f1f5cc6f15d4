package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"wager-settlement/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const wagerColumns = `id, account_id, stake, variant, params, status, server_seed_hash, server_seed_encrypted,
		server_seed, client_seed, nonce, outcome, payout, pre_credit_balance, created_at, resolved_at`

// WagerRepo implements ports.WagerRepository.
type WagerRepo struct {
	pool Pool
}

// NewWagerRepo creates a new WagerRepo.
func NewWagerRepo(pool Pool) *WagerRepo {
	return &WagerRepo{pool: pool}
}

// Create inserts a new wager.
func (r *WagerRepo) Create(ctx context.Context, w *domain.Wager) error {
	params, err := json.Marshal(w.Params)
	if err != nil {
		return fmt.Errorf("marshal wager params: %w", err)
	}

	query := `INSERT INTO wagers (` + wagerColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`

	_, err = r.pool.Exec(ctx, query,
		w.ID, w.AccountID, int64(w.Stake), string(w.Variant), params, string(w.Status),
		w.Seeds.ServerSeedHash, w.Seeds.ServerSeedEncrypted, w.Seeds.ServerSeed, w.Seeds.ClientSeed,
		int64(w.Seeds.Nonce), string(w.Outcome), int64(w.Payout), int64(w.PreCreditBalance),
		w.CreatedAt, w.ResolvedAt,
	)
	if err != nil {
		return fmt.Errorf("insert wager: %w", err)
	}
	return nil
}

// GetByID fetches a wager by its UUID.
func (r *WagerRepo) GetByID(ctx context.Context, id uuid.UUID) (*domain.Wager, error) {
	query := `SELECT ` + wagerColumns + ` FROM wagers WHERE id = $1`
	return scanWager(r.pool.QueryRow(ctx, query, id))
}

// GetUnresolvedByAccount fetches the wager still holding the account's slot.
func (r *WagerRepo) GetUnresolvedByAccount(ctx context.Context, accountID string) (*domain.Wager, error) {
	query := `SELECT ` + wagerColumns + ` FROM wagers
		WHERE account_id = $1 AND status NOT IN ('RESOLVED', 'ABORTED')
		ORDER BY created_at DESC LIMIT 1`
	return scanWager(r.pool.QueryRow(ctx, query, accountID))
}

// Update writes the mutable settlement fields of a wager.
func (r *WagerRepo) Update(ctx context.Context, w *domain.Wager) error {
	query := `UPDATE wagers SET status = $1, outcome = $2, payout = $3, pre_credit_balance = $4,
		server_seed = $5, resolved_at = $6 WHERE id = $7`

	tag, err := r.pool.Exec(ctx, query,
		string(w.Status), string(w.Outcome), int64(w.Payout), int64(w.PreCreditBalance),
		w.Seeds.ServerSeed, w.ResolvedAt, w.ID,
	)
	if err != nil {
		return fmt.Errorf("update wager: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("wager not found: %s", w.ID)
	}
	return nil
}

// ListByStatus returns up to limit wagers in a status, oldest first.
func (r *WagerRepo) ListByStatus(ctx context.Context, status domain.WagerStatus, limit int) ([]domain.Wager, error) {
	query := `SELECT ` + wagerColumns + ` FROM wagers WHERE status = $1 ORDER BY created_at ASC LIMIT $2`

	rows, err := r.pool.Query(ctx, query, string(status), limit)
	if err != nil {
		return nil, fmt.Errorf("list wagers: %w", err)
	}
	defer rows.Close()

	var wagers []domain.Wager
	for rows.Next() {
		w, err := scanWager(rows)
		if err != nil {
			return nil, err
		}
		wagers = append(wagers, *w)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate wagers: %w", err)
	}
	return wagers, nil
}

func scanWager(row pgx.Row) (*domain.Wager, error) {
	var (
		w                               domain.Wager
		stake, nonce, payout, preCredit int64
		variant, status, outcome        string
		params                          []byte
	)
	err := row.Scan(
		&w.ID, &w.AccountID, &stake, &variant, &params, &status,
		&w.Seeds.ServerSeedHash, &w.Seeds.ServerSeedEncrypted, &w.Seeds.ServerSeed, &w.Seeds.ClientSeed,
		&nonce, &outcome, &payout, &preCredit, &w.CreatedAt, &w.ResolvedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan wager: %w", err)
	}
	if len(params) > 0 {
		if err := json.Unmarshal(params, &w.Params); err != nil {
			return nil, fmt.Errorf("unmarshal wager params: %w", err)
		}
	}

	w.Stake = domain.FixedPoint(stake)
	w.Variant = domain.GameVariant(variant)
	w.Status = domain.WagerStatus(status)
	w.Seeds.Nonce = uint64(nonce)
	w.Outcome = domain.TerminalState(outcome)
	w.Payout = domain.FixedPoint(payout)
	w.PreCreditBalance = domain.FixedPoint(preCredit)
	return &w, nil
}
