package ledgerservice

import (
	"context"
	"errors"
	"fmt"

	"go.uber.org/zap"

	"github.com/GlebRadaev/duelhub/internal/domain"
	"github.com/GlebRadaev/duelhub/internal/pg"
)

//go:generate mockgen -source=ledgerservice.go -destination=mock_ledgerservice.go -package=ledgerservice

type Repo interface {
	LastEntry(ctx context.Context, walletID int) (*domain.LedgerEntry, error)
	Insert(ctx context.Context, entry *domain.LedgerEntry) (*domain.LedgerEntry, error)
	ListByWallet(ctx context.Context, walletID int, limit int) ([]domain.LedgerEntry, error)
}

type WalletWriter interface {
	UpdateBalance(ctx context.Context, walletID int, balance int64) error
}

var (
	ErrImmutabilityViolation = domain.ErrImmutabilityViolation
	ErrZeroAmount            = errors.New("ledger entry amount must be non-zero")
	ErrUnknownType           = errors.New("unknown transaction type")
	ErrNegativeBalance       = errors.New("ledger entry would make balance negative")
)

const DefaultHistoryLimit = 50

type Service struct {
	repo      Repo
	wallets   WalletWriter
	txManager pg.TXManager
}

func New(repo Repo, wallets WalletWriter, txManager pg.TXManager) *Service {
	return &Service{
		repo:      repo,
		wallets:   wallets,
		txManager: txManager,
	}
}

// Append records a signed balance change for wallet and moves the wallet's
// stored balance to the entry's balance_after in the same transaction. When
// ctx already carries a transaction (a locked wallet), Append joins it.
func (s *Service) Append(ctx context.Context, wallet *domain.Wallet, amount int64, p domain.Posting) (*domain.LedgerEntry, error) {
	if amount == 0 {
		return nil, ErrZeroAmount
	}
	if !p.Type.Valid() {
		return nil, fmt.Errorf("%w: %q", ErrUnknownType, p.Type)
	}

	var entry *domain.LedgerEntry
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		last, err := s.repo.LastEntry(ctx, wallet.ID)
		if err != nil {
			return fmt.Errorf("can't read last ledger entry: %w", err)
		}

		var previous int64
		if last != nil {
			previous = last.BalanceAfter
		}
		if previous != wallet.Balance {
			zap.L().Error("wallet balance diverged from ledger",
				zap.Int("walletID", wallet.ID),
				zap.Int64("walletBalance", wallet.Balance),
				zap.Int64("ledgerBalance", previous),
			)
		}

		next := previous + amount
		if next < 0 {
			return ErrNegativeBalance
		}

		entry, err = s.repo.Insert(ctx, &domain.LedgerEntry{
			WalletID:     wallet.ID,
			Amount:       amount,
			BalanceAfter: next,
			Type:         p.Type,
			Reference:    p.Reference,
			Description:  p.Description,
			Meta:         p.Meta,
		})
		if err != nil {
			return fmt.Errorf("can't insert ledger entry: %w", err)
		}

		if err := s.wallets.UpdateBalance(ctx, wallet.ID, next); err != nil {
			return fmt.Errorf("can't update wallet balance: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	wallet.Balance = entry.BalanceAfter
	return entry, nil
}

// History returns the wallet's entries newest first.
func (s *Service) History(ctx context.Context, walletID int, limit int) ([]domain.LedgerEntry, error) {
	if limit <= 0 {
		limit = DefaultHistoryLimit
	}
	entries, err := s.repo.ListByWallet(ctx, walletID, limit)
	if err != nil {
		zap.L().Error("failed to fetch ledger history", zap.Int("walletID", walletID), zap.Error(err))
		return nil, err
	}
	return entries, nil
}

func (s *Service) Update(_ context.Context, entryID int) error {
	return fmt.Errorf("%w: update of entry %d", ErrImmutabilityViolation, entryID)
}

func (s *Service) Delete(_ context.Context, entryID int) error {
	return fmt.Errorf("%w: delete of entry %d", ErrImmutabilityViolation, entryID)
}
