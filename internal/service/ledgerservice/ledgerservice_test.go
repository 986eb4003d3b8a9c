package ledgerservice

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	gomock "go.uber.org/mock/gomock"

	"github.com/GlebRadaev/duelhub/internal/domain"
	"github.com/GlebRadaev/duelhub/internal/pg"
)

var errDB = errors.New("db down")

func NewMock(t *testing.T) (*Service, *MockRepo, *MockWalletWriter) {
	ctrl := gomock.NewController(t)
	repo := NewMockRepo(ctrl)
	wallets := NewMockWalletWriter(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, fn pg.TransactionalFn) error { return fn(ctx) }).
		AnyTimes()
	return New(repo, wallets, txManager), repo, wallets
}

func TestService_Append(t *testing.T) {
	ctx := context.Background()
	posting := domain.Posting{Type: domain.TxGiftSent, Reference: domain.SessionRef(12), Description: "Sent Rose"}

	tests := []struct {
		name        string
		wallet      domain.Wallet
		amount      int64
		posting     domain.Posting
		prepareMock func(repo *MockRepo, wallets *MockWalletWriter)
		wantErr     error
		wantBalance int64
	}{
		{
			name:    "First entry starts from zero",
			wallet:  domain.Wallet{ID: 5, Balance: 0},
			amount:  100,
			posting: domain.Posting{Type: domain.TxDeposit},
			prepareMock: func(repo *MockRepo, wallets *MockWalletWriter) {
				repo.EXPECT().LastEntry(gomock.Any(), 5).Return(nil, nil)
				repo.EXPECT().Insert(gomock.Any(), &domain.LedgerEntry{WalletID: 5, Amount: 100, BalanceAfter: 100, Type: domain.TxDeposit}).
					DoAndReturn(func(_ context.Context, e *domain.LedgerEntry) (*domain.LedgerEntry, error) {
						e.ID = 1
						return e, nil
					})
				wallets.EXPECT().UpdateBalance(gomock.Any(), 5, int64(100)).Return(nil)
			},
			wantBalance: 100,
		},
		{
			name:    "Debit chains from previous balance",
			wallet:  domain.Wallet{ID: 5, Balance: 100},
			amount:  -5,
			posting: posting,
			prepareMock: func(repo *MockRepo, wallets *MockWalletWriter) {
				repo.EXPECT().LastEntry(gomock.Any(), 5).Return(&domain.LedgerEntry{ID: 1, BalanceAfter: 100}, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *domain.LedgerEntry) (*domain.LedgerEntry, error) {
						assert.Equal(t, int64(95), e.BalanceAfter)
						assert.Equal(t, domain.SessionRef(12), e.Reference)
						e.ID = 2
						return e, nil
					})
				wallets.EXPECT().UpdateBalance(gomock.Any(), 5, int64(95)).Return(nil)
			},
			wantBalance: 95,
		},
		{
			name:        "Zero amount",
			wallet:      domain.Wallet{ID: 5},
			amount:      0,
			posting:     posting,
			prepareMock: func(*MockRepo, *MockWalletWriter) {},
			wantErr:     ErrZeroAmount,
		},
		{
			name:        "Unknown type",
			wallet:      domain.Wallet{ID: 5},
			amount:      10,
			posting:     domain.Posting{Type: "bonus"},
			prepareMock: func(*MockRepo, *MockWalletWriter) {},
			wantErr:     ErrUnknownType,
		},
		{
			name:    "Would go negative",
			wallet:  domain.Wallet{ID: 5, Balance: 3},
			amount:  -5,
			posting: posting,
			prepareMock: func(repo *MockRepo, _ *MockWalletWriter) {
				repo.EXPECT().LastEntry(gomock.Any(), 5).Return(&domain.LedgerEntry{BalanceAfter: 3}, nil)
			},
			wantErr: ErrNegativeBalance,
		},
		{
			name:    "Immutability violation from store",
			wallet:  domain.Wallet{ID: 5, Balance: 0},
			amount:  10,
			posting: domain.Posting{Type: domain.TxDeposit},
			prepareMock: func(repo *MockRepo, _ *MockWalletWriter) {
				repo.EXPECT().LastEntry(gomock.Any(), 5).Return(nil, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).Return(nil, domain.ErrImmutabilityViolation)
			},
			wantErr: ErrImmutabilityViolation,
		},
		{
			name:    "Balance update fails",
			wallet:  domain.Wallet{ID: 5, Balance: 0},
			amount:  10,
			posting: domain.Posting{Type: domain.TxDeposit},
			prepareMock: func(repo *MockRepo, wallets *MockWalletWriter) {
				repo.EXPECT().LastEntry(gomock.Any(), 5).Return(nil, nil)
				repo.EXPECT().Insert(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, e *domain.LedgerEntry) (*domain.LedgerEntry, error) { return e, nil })
				wallets.EXPECT().UpdateBalance(gomock.Any(), 5, int64(10)).Return(errDB)
			},
			wantErr: errDB,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, repo, wallets := NewMock(t)
			tt.prepareMock(repo, wallets)

			wallet := tt.wallet
			entry, err := svc.Append(ctx, &wallet, tt.amount, tt.posting)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, entry)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantBalance, entry.BalanceAfter)
			assert.Equal(t, tt.wantBalance, wallet.Balance)
		})
	}
}

func TestService_AppendSequence(t *testing.T) {
	svc, repo, wallets := NewMock(t)
	ctx := context.Background()

	var stored []domain.LedgerEntry
	repo.EXPECT().LastEntry(gomock.Any(), 5).DoAndReturn(func(context.Context, int) (*domain.LedgerEntry, error) {
		if len(stored) == 0 {
			return nil, nil
		}
		last := stored[len(stored)-1]
		return &last, nil
	}).AnyTimes()
	repo.EXPECT().Insert(gomock.Any(), gomock.Any()).DoAndReturn(func(_ context.Context, e *domain.LedgerEntry) (*domain.LedgerEntry, error) {
		e.ID = len(stored) + 1
		stored = append(stored, *e)
		return e, nil
	}).AnyTimes()
	wallets.EXPECT().UpdateBalance(gomock.Any(), 5, gomock.Any()).Return(nil).AnyTimes()

	wallet := &domain.Wallet{ID: 5}
	amounts := []int64{100, -5, -5, 20, -30}
	for _, amount := range amounts {
		tp := domain.TxDeposit
		if amount < 0 {
			tp = domain.TxGiftSent
		}
		_, err := svc.Append(ctx, wallet, amount, domain.Posting{Type: tp})
		require.NoError(t, err)
	}

	var sum int64
	for i, e := range stored {
		sum += e.Amount
		assert.Equal(t, sum, e.BalanceAfter, "entry %d", i)
	}
	assert.Equal(t, int64(80), wallet.Balance)
	assert.Equal(t, sum, wallet.Balance)
}

func TestService_History(t *testing.T) {
	svc, repo, _ := NewMock(t)
	ctx := context.Background()

	repo.EXPECT().ListByWallet(gomock.Any(), 5, DefaultHistoryLimit).Return([]domain.LedgerEntry{{ID: 2}, {ID: 1}}, nil)
	entries, err := svc.History(ctx, 5, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)

	repo.EXPECT().ListByWallet(gomock.Any(), 5, 10).Return(nil, errDB)
	_, err = svc.History(ctx, 5, 10)
	assert.Error(t, err)
}

func TestService_UpdateAndDeleteRejected(t *testing.T) {
	svc, _, _ := NewMock(t)

	assert.ErrorIs(t, svc.Update(context.Background(), 1), ErrImmutabilityViolation)
	assert.ErrorIs(t, svc.Delete(context.Background(), 1), ErrImmutabilityViolation)
}
