package walletrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/duelhub/internal/domain"
	"github.com/GlebRadaev/duelhub/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) FindByUserID(ctx context.Context, userID int) (*domain.Wallet, error) {
	query := `
        SELECT id, user_id, balance, currency, created_at, updated_at
        FROM wallets
        WHERE user_id = $1
    `
	return r.scanOne(ctx, "failed to get wallet", query, userID)
}

// LockByUserID takes a row-level exclusive lock on the wallet. It must run
// inside a transaction; the lock is held until that transaction ends.
func (r *Repository) LockByUserID(ctx context.Context, userID int) (*domain.Wallet, error) {
	query := `
        SELECT id, user_id, balance, currency, created_at, updated_at
        FROM wallets
        WHERE user_id = $1
        FOR UPDATE
    `
	return r.scanOne(ctx, "failed to lock wallet", query, userID)
}

func (r *Repository) Create(ctx context.Context, userID int, currency string) (*domain.Wallet, error) {
	query := `
        INSERT INTO wallets (user_id, balance, currency)
        VALUES ($1, 0, $2)
        RETURNING id, user_id, balance, currency, created_at, updated_at
    `
	var w domain.Wallet
	err := r.db.QueryRow(ctx, query, userID, currency).
		Scan(&w.ID, &w.UserID, &w.Balance, &w.Currency, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		zap.L().Error("failed to create wallet", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	return &w, nil
}

func (r *Repository) UpdateBalance(ctx context.Context, walletID int, balance int64) error {
	query := `
        UPDATE wallets
        SET balance = $1, updated_at = NOW()
        WHERE id = $2
    `
	tag, err := r.db.Exec(ctx, query, balance, walletID)
	if err != nil {
		zap.L().Error("failed to update wallet balance", zap.Int("walletID", walletID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) scanOne(ctx context.Context, msg, query string, args ...any) (*domain.Wallet, error) {
	var w domain.Wallet
	err := r.db.QueryRow(ctx, query, args...).
		Scan(&w.ID, &w.UserID, &w.Balance, &w.Currency, &w.CreatedAt, &w.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error(msg, zap.Error(err))
		return nil, err
	}
	return &w, nil
}
