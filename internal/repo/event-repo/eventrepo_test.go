package eventrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/duelhub/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	t.Cleanup(mockDB.Close)
	return New(mockDB), mockDB
}

func intPtr(i int) *int { return &i }

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Event saved",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO duel_events (session_id, type, actor_id, target_id, payload)`)).
					WithArgs(12, "gift_sent", intPtr(9), intPtr(7), domain.Meta{"total": int64(15)}).
					WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(88, now))
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta(`INSERT INTO duel_events`)).
					WithArgs(12, "gift_sent", intPtr(9), intPtr(7), domain.Meta{"total": int64(15)}).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			event, err := repo.Create(context.Background(), &domain.DuelEvent{
				SessionID: 12,
				Type:      domain.EventGiftSent,
				ActorID:   intPtr(9),
				TargetID:  intPtr(7),
				Payload:   domain.Meta{"total": int64(15)},
			})
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, event)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, 88, event.ID)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestRepository_ListBySession(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()

	mock.ExpectQuery(regexp.QuoteMeta(`WHERE session_id = $1 ORDER BY created_at ASC, id ASC`)).
		WithArgs(12).
		WillReturnRows(pgxmock.NewRows([]string{"id", "session_id", "type", "actor_id", "target_id", "payload", "created_at"}).
			AddRow(1, 12, "user_joined", intPtr(9), intPtr(7), domain.Meta{}, now).
			AddRow(2, 12, "duel_ended", intPtr(7), (*int)(nil), domain.Meta{"status": "completed"}, now))

	events, err := repo.ListBySession(context.Background(), 12)
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, domain.EventUserJoined, events[0].Type)
	assert.Equal(t, domain.EventDuelEnded, events[1].Type)
	assert.Nil(t, events[1].TargetID)
	assert.NoError(t, mock.ExpectationsWereMet())
}
