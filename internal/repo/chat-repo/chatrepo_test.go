package chatrepo

import (
	"context"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/GlebRadaev/duelhub/internal/domain"
)

func TestRepository_Create(t *testing.T) {
	mockDB, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mockDB.Close()
	repo := New(mockDB)
	now := time.Now()

	mockDB.ExpectQuery(regexp.QuoteMeta(`INSERT INTO chat_messages (room_id, user_id, type, body, meta)`)).
		WithArgs(3, 9, "gift", "sent Rose x3", domain.Meta{}).
		WillReturnRows(pgxmock.NewRows([]string{"id", "created_at"}).AddRow(41, now))

	msg, err := repo.Create(context.Background(), &domain.ChatMessage{RoomID: 3, UserID: 9, Type: "gift", Body: "sent Rose x3"})
	require.NoError(t, err)
	assert.Equal(t, 41, msg.ID)
	assert.Equal(t, now, msg.CreatedAt)
	assert.NoError(t, mockDB.ExpectationsWereMet())
}
