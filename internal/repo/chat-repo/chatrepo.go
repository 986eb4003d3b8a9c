package chatrepo

import (
	"context"

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

func (r *Repository) Create(ctx context.Context, m *domain.ChatMessage) (*domain.ChatMessage, error) {
	query := `
		INSERT INTO chat_messages (room_id, user_id, type, body, meta)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at
	`
	m.Meta = m.Meta.OrEmpty()
	err := r.db.QueryRow(ctx, query, m.RoomID, m.UserID, m.Type, m.Body, m.Meta).Scan(&m.ID, &m.CreatedAt)
	if err != nil {
		zap.L().Error("can't save chat message", zap.Int("roomID", m.RoomID), zap.Error(err))
		return nil, err
	}
	return m, nil
}
