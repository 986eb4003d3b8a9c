package walletservice

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/GlebRadaev/duelhub/internal/domain"
	"github.com/GlebRadaev/duelhub/internal/pg"
	"github.com/GlebRadaev/duelhub/pkg/tracing"
)

//go:generate mockgen -source=walletservice.go -destination=mock_walletservice.go -package=walletservice

type WalletRepo interface {
	FindByUserID(ctx context.Context, userID int) (*domain.Wallet, error)
	LockByUserID(ctx context.Context, userID int) (*domain.Wallet, error)
	Create(ctx context.Context, userID int, currency string) (*domain.Wallet, error)
}

type Ledger interface {
	Append(ctx context.Context, wallet *domain.Wallet, amount int64, p domain.Posting) (*domain.LedgerEntry, error)
	History(ctx context.Context, walletID int, limit int) ([]domain.LedgerEntry, error)
}

const DefaultCurrency = "CRD"

var (
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrInsufficientBalance = errors.New("insufficient balance")
	ErrWalletNotFound      = errors.New("wallet not found")
	ErrWalletExists        = errors.New("wallet already exists")
	ErrDepositTooLarge     = fmt.Errorf("deposit exceeds %d credits", MaxDeposit)
)

type Service struct {
	walletRepo WalletRepo
	ledger     Ledger
	txManager  pg.TXManager
}

func New(walletRepo WalletRepo, ledger Ledger, txManager pg.TXManager) *Service {
	return &Service{
		walletRepo: walletRepo,
		ledger:     ledger,
		txManager:  txManager,
	}
}

func (s *Service) CreateWallet(ctx context.Context, userID int, currency string) (*domain.Wallet, error) {
	if currency == "" {
		currency = DefaultCurrency
	}
	existing, err := s.walletRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get wallet", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	if existing != nil {
		return nil, ErrWalletExists
	}
	wallet, err := s.walletRepo.Create(ctx, userID, currency)
	if err != nil {
		zap.L().Error("failed to create wallet", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	return wallet, nil
}

func (s *Service) GetWallet(ctx context.Context, userID int) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.FindByUserID(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get wallet", zap.Int("userID", userID), zap.Error(err))
		return nil, err
	}
	if wallet == nil {
		return nil, ErrWalletNotFound
	}
	return wallet, nil
}

func (s *Service) Credit(ctx context.Context, userID int, amount int64, p domain.Posting) (*domain.LedgerEntry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return s.mutate(ctx, userID, amount, p)
}

// MaxDeposit caps a single inbound top-up.
const MaxDeposit int64 = 1_000_000

// Deposit tops up the user's wallet from outside the duel economy.
func (s *Service) Deposit(ctx context.Context, userID int, amount int64, description string) (*domain.LedgerEntry, error) {
	if amount > MaxDeposit {
		return nil, ErrDepositTooLarge
	}
	if description == "" {
		description = "Deposit"
	}
	return s.Credit(ctx, userID, amount, domain.Posting{
		Type:        domain.TxDeposit,
		Description: description,
		Meta:        domain.Meta{"source": "api"},
	})
}

func (s *Service) Debit(ctx context.Context, userID int, amount int64, p domain.Posting) (*domain.LedgerEntry, error) {
	if amount <= 0 {
		return nil, ErrInvalidAmount
	}
	return s.mutate(ctx, userID, -amount, p)
}

// mutate locks the wallet row, re-reads the balance under that lock and
// appends the ledger entry before the lock is released.
func (s *Service) mutate(ctx context.Context, userID int, signed int64, p domain.Posting) (entry *domain.LedgerEntry, err error) {
	ctx, span := tracing.Start(ctx, "walletservice.mutate",
		attribute.Int("user.id", userID),
		attribute.Int64("amount", signed),
		attribute.String("ledger.type", string(p.Type)),
	)
	defer func() { tracing.End(span, err) }()

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		wallet, err := s.walletRepo.LockByUserID(ctx, userID)
		if err != nil {
			return fmt.Errorf("can't lock wallet: %w", err)
		}
		if wallet == nil {
			return ErrWalletNotFound
		}
		if signed < 0 && wallet.Balance < -signed {
			return ErrInsufficientBalance
		}

		entry, err = s.ledger.Append(ctx, wallet, signed, p)
		return err
	})
	if err != nil {
		if !errors.Is(err, ErrInsufficientBalance) {
			zap.L().Error("wallet mutation failed",
				zap.Int("userID", userID),
				zap.Int64("amount", signed),
				zap.String("type", string(p.Type)),
				zap.Error(err),
			)
		}
		return nil, err
	}
	return entry, nil
}

// CanDebit is advisory: it takes no lock, so a later Debit may still fail
// with ErrInsufficientBalance.
func (s *Service) CanDebit(ctx context.Context, userID int, amount int64) (bool, error) {
	if amount <= 0 {
		return false, ErrInvalidAmount
	}
	wallet, err := s.GetWallet(ctx, userID)
	if err != nil {
		return false, err
	}
	return wallet.Balance >= amount, nil
}

// LockWallets locks the given users' wallets in ascending user order so
// transfers in opposite directions cannot deadlock. Must run inside a
// transaction that outlives the transfer.
func (s *Service) LockWallets(ctx context.Context, userIDs ...int) error {
	ids := slices.Clone(userIDs)
	slices.Sort(ids)
	ids = slices.Compact(ids)
	for _, id := range ids {
		wallet, err := s.walletRepo.LockByUserID(ctx, id)
		if err != nil {
			return fmt.Errorf("can't lock wallet: %w", err)
		}
		if wallet == nil {
			return fmt.Errorf("%w: user %d", ErrWalletNotFound, id)
		}
	}
	return nil
}

func (s *Service) History(ctx context.Context, userID int, limit int) ([]domain.LedgerEntry, error) {
	wallet, err := s.GetWallet(ctx, userID)
	if err != nil {
		return nil, err
	}
	return s.ledger.History(ctx, wallet.ID, limit)
}
