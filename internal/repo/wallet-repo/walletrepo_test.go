package walletrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"

	"github.com/GlebRadaev/duelhub/internal/domain"
)

var walletColumns = []string{"id", "user_id", "balance", "currency", "created_at", "updated_at"}

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	t.Cleanup(mockDB.Close)
	return New(mockDB), mockDB
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		userID    int
		mockSetup func()
		expectErr bool
		result    *domain.Wallet
	}{
		{
			name:   "Existing wallet",
			userID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM wallets WHERE user_id = $1`)).
					WithArgs(1).
					WillReturnRows(pgxmock.NewRows(walletColumns).AddRow(5, 1, int64(1500), "CRD", now, now))
			},
			result: &domain.Wallet{ID: 5, UserID: 1, Balance: 1500, Currency: "CRD", CreatedAt: now, UpdatedAt: now},
		},
		{
			name:   "Missing wallet returns nil",
			userID: 99,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM wallets WHERE user_id = $1`)).
					WithArgs(99).
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name:   "Database error",
			userID: 1,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`FROM wallets WHERE user_id = $1`)).
					WithArgs(1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByUserID(context.Background(), tt.userID)
			if tt.expectErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
			assert.Equal(t, tt.result, result)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_LockByUserID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`FROM wallets WHERE user_id = $1 FOR UPDATE`)).
		WithArgs(1).
		WillReturnRows(pgxmock.NewRows(walletColumns).AddRow(5, 1, int64(20), "CRD", now, now))

	wallet, err := repo.LockByUserID(context.Background(), 1)
	assert.NoError(t, err)
	assert.Equal(t, int64(20), wallet.Balance)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Wallet created with zero balance",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO wallets (user_id, balance, currency) VALUES ($1, 0, $2)`)).
					WithArgs(1, "CRD").
					WillReturnRows(pgxmock.NewRows(walletColumns).AddRow(5, 1, int64(0), "CRD", now, now))
			},
		},
		{
			name: "Duplicate wallet",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO wallets`)).
					WithArgs(1, "CRD").
					WillReturnError(errors.New("duplicate key value violates unique constraint"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			wallet, err := repo.Create(context.Background(), 1, "CRD")
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, wallet)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, int64(0), wallet.Balance)
				assert.Equal(t, 5, wallet.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_UpdateBalance(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr error
	}{
		{
			name: "Balance updated",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE wallets SET balance = $1, updated_at = NOW() WHERE id = $2`)).
					WithArgs(int64(95), 5).
					WillReturnResult(pgxmock.NewResult("UPDATE", 1))
			},
		},
		{
			name: "Wallet missing",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta(`UPDATE wallets`)).
					WithArgs(int64(95), 5).
					WillReturnResult(pgxmock.NewResult("UPDATE", 0))
			},
			expectErr: pgx.ErrNoRows,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.UpdateBalance(context.Background(), 5, 95)
			assert.ErrorIs(t, err, tt.expectErr)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}
