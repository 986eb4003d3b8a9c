package ledgerrepo

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"go.uber.org/zap"

	"github.com/GlebRadaev/duelhub/internal/domain"
	"github.com/GlebRadaev/duelhub/internal/pg"
)

// SQLSTATE raised by the ledger_entries immutability trigger.
const immutableCode = "LG001"

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) LastEntry(ctx context.Context, walletID int) (*domain.LedgerEntry, error) {
	query := `
        SELECT id, wallet_id, amount, balance_after, type, reference_type, reference_id, description, meta, created_at
        FROM ledger_entries
        WHERE wallet_id = $1
        ORDER BY created_at DESC, id DESC
        LIMIT 1
    `
	entry, err := scanEntry(r.db.QueryRow(ctx, query, walletID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get last ledger entry", zap.Int("walletID", walletID), zap.Error(err))
		return nil, mapErr(err)
	}
	return entry, nil
}

func (r *Repository) Insert(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error) {
	query := `
        INSERT INTO ledger_entries (wallet_id, amount, balance_after, type, reference_type, reference_id, description, meta)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at
    `
	var refType *string
	var refID *int
	if entry.Reference != nil {
		kind := string(entry.Reference.Kind)
		refType, refID = &kind, &entry.Reference.ID
	}
	entry.Meta = entry.Meta.OrEmpty()
	err := r.db.QueryRow(ctx, query,
		entry.WalletID, entry.Amount, entry.BalanceAfter, string(entry.Type),
		refType, refID, entry.Description, entry.Meta,
	).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		zap.L().Error("failed to insert ledger entry", zap.Int("walletID", entry.WalletID), zap.Error(err))
		return nil, mapErr(err)
	}
	return entry, nil
}

func (r *Repository) ListByWallet(ctx context.Context, walletID int, limit int) ([]domain.LedgerEntry, error) {
	query := `
        SELECT id, wallet_id, amount, balance_after, type, reference_type, reference_id, description, meta, created_at
        FROM ledger_entries
        WHERE wallet_id = $1
        ORDER BY created_at DESC, id DESC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, walletID, limit)
	if err != nil {
		zap.L().Error("failed to fetch ledger entries", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var entries []domain.LedgerEntry
	for rows.Next() {
		entry, err := scanEntry(rows)
		if err != nil {
			zap.L().Error("failed to scan ledger entry row", zap.Error(err))
			return nil, err
		}
		entries = append(entries, *entry)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return entries, nil
}

func scanEntry(row pgx.Row) (*domain.LedgerEntry, error) {
	var (
		e       domain.LedgerEntry
		txType  string
		refType *string
		refID   *int
	)
	err := row.Scan(&e.ID, &e.WalletID, &e.Amount, &e.BalanceAfter, &txType, &refType, &refID, &e.Description, &e.Meta, &e.CreatedAt)
	if err != nil {
		return nil, err
	}
	e.Type = domain.TransactionType(txType)
	if refType != nil && refID != nil {
		e.Reference = &domain.Reference{Kind: domain.RefKind(*refType), ID: *refID}
	}
	return &e, nil
}

func mapErr(err error) error {
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == immutableCode {
		return fmt.Errorf("%w: %s", domain.ErrImmutabilityViolation, pgErr.Message)
	}
	return err
}
