package eventrepo

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

func (r *Repository) Create(ctx context.Context, e *domain.DuelEvent) (*domain.DuelEvent, error) {
	query := `
        INSERT INTO duel_events (session_id, type, actor_id, target_id, payload)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `
	e.Payload = e.Payload.OrEmpty()
	err := r.db.QueryRow(ctx, query, e.SessionID, string(e.Type), e.ActorID, e.TargetID, e.Payload).
		Scan(&e.ID, &e.CreatedAt)
	if err != nil {
		zap.L().Error("can't save duel event", zap.Int("sessionID", e.SessionID), zap.String("type", string(e.Type)), zap.Error(err))
		return nil, err
	}
	return e, nil
}

func (r *Repository) ListBySession(ctx context.Context, sessionID int) ([]domain.DuelEvent, error) {
	query := `
        SELECT id, session_id, type, actor_id, target_id, payload, created_at
        FROM duel_events
        WHERE session_id = $1
        ORDER BY created_at ASC, id ASC
    `
	rows, err := r.db.Query(ctx, query, sessionID)
	if err != nil {
		zap.L().Error("can't get duel events", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var events []domain.DuelEvent
	for rows.Next() {
		var (
			e     domain.DuelEvent
			eType string
		)
		if err := rows.Scan(&e.ID, &e.SessionID, &eType, &e.ActorID, &e.TargetID, &e.Payload, &e.CreatedAt); err != nil {
			zap.L().Error("can't scan duel event row", zap.Error(err))
			return nil, err
		}
		e.Type = domain.EventType(eType)
		events = append(events, e)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return events, nil
}
