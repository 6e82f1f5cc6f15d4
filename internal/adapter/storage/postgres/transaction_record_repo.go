package postgres

import (
	"context"
	"errors"
	"fmt"

	"wager-settlement/internal/core/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

const recordColumns = `idempotency_key, wager_id, kind, amount, status, remote_reference, attempts, created_at, updated_at`

// TransactionRecordRepo implements ports.TransactionRecordRepository. It is
// the durable idempotency layer for settlement legs.
type TransactionRecordRepo struct {
	pool Pool
}

// NewTransactionRecordRepo creates a new TransactionRecordRepo.
func NewTransactionRecordRepo(pool Pool) *TransactionRecordRepo {
	return &TransactionRecordRepo{pool: pool}
}

// Create inserts a record. A record already present under the key is kept as is.
func (r *TransactionRecordRepo) Create(ctx context.Context, rec *domain.TransactionRecord) error {
	query := `INSERT INTO transaction_records (` + recordColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (idempotency_key) DO NOTHING`

	_, err := r.pool.Exec(ctx, query,
		rec.IdempotencyKey, rec.WagerID, string(rec.Kind), int64(rec.Amount), string(rec.Status),
		rec.RemoteReference, rec.Attempts, rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert transaction record: %w", err)
	}
	return nil
}

// Get fetches a record by idempotency key.
func (r *TransactionRecordRepo) Get(ctx context.Context, key string) (*domain.TransactionRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM transaction_records WHERE idempotency_key = $1`
	return scanRecord(r.pool.QueryRow(ctx, query, key))
}

// Update writes the status, reference and attempt count of a record.
func (r *TransactionRecordRepo) Update(ctx context.Context, rec *domain.TransactionRecord) error {
	query := `UPDATE transaction_records SET status = $1, remote_reference = $2, attempts = $3, updated_at = $4
		WHERE idempotency_key = $5`

	tag, err := r.pool.Exec(ctx, query,
		string(rec.Status), rec.RemoteReference, rec.Attempts, rec.UpdatedAt, rec.IdempotencyKey,
	)
	if err != nil {
		return fmt.Errorf("update transaction record: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("transaction record not found: %s", rec.IdempotencyKey)
	}
	return nil
}

// ListByWager returns the records of a wager, debit first.
func (r *TransactionRecordRepo) ListByWager(ctx context.Context, wagerID uuid.UUID) ([]domain.TransactionRecord, error) {
	query := `SELECT ` + recordColumns + ` FROM transaction_records WHERE wager_id = $1 ORDER BY created_at ASC`

	rows, err := r.pool.Query(ctx, query, wagerID)
	if err != nil {
		return nil, fmt.Errorf("list transaction records: %w", err)
	}
	defer rows.Close()

	var records []domain.TransactionRecord
	for rows.Next() {
		rec, err := scanRecord(rows)
		if err != nil {
			return nil, err
		}
		records = append(records, *rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transaction records: %w", err)
	}
	return records, nil
}

func scanRecord(row pgx.Row) (*domain.TransactionRecord, error) {
	var (
		rec          domain.TransactionRecord
		kind, status string
		amount       int64
	)
	err := row.Scan(
		&rec.IdempotencyKey, &rec.WagerID, &kind, &amount, &status,
		&rec.RemoteReference, &rec.Attempts, &rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("scan transaction record: %w", err)
	}
	rec.Kind = domain.LegKind(kind)
	rec.Status = domain.LegStatus(status)
	rec.Amount = domain.FixedPoint(amount)
	return &rec, nil
}
