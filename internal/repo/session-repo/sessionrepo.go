package sessionrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/GlebRadaev/duelhub/internal/domain"
	"github.com/GlebRadaev/duelhub/internal/pg"
)

const columns = `id, host_id, guest_id, status, host_score, guest_score, winner_id, chat_room_id,
        scheduled_at, started_at, ended_at, meta, created_at`

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, s *domain.LiveSession) (*domain.LiveSession, error) {
	query := `
        INSERT INTO live_sessions (host_id, status, chat_room_id, scheduled_at, meta)
        VALUES ($1, $2, $3, $4, $5)
        RETURNING id, created_at
    `
	s.Meta = s.Meta.OrEmpty()
	err := r.db.QueryRow(ctx, query, s.HostID, string(s.Status), s.ChatRoomID, s.ScheduledAt, s.Meta).
		Scan(&s.ID, &s.CreatedAt)
	if err != nil {
		zap.L().Error("can't save live session", zap.Int("hostID", s.HostID), zap.Error(err))
		return nil, err
	}
	return s, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.LiveSession, error) {
	query := `SELECT ` + columns + ` FROM live_sessions WHERE id = $1`
	return r.findOne(ctx, "can't find live session", query, id)
}

// LockByID selects the session FOR UPDATE so concurrent transitions on the
// same duel serialize. Must run inside a transaction.
func (r *Repository) LockByID(ctx context.Context, id int) (*domain.LiveSession, error) {
	query := `SELECT ` + columns + ` FROM live_sessions WHERE id = $1 FOR UPDATE`
	return r.findOne(ctx, "can't lock live session", query, id)
}

func (r *Repository) FindByStatus(ctx context.Context, statuses ...domain.SessionStatus) ([]domain.LiveSession, error) {
	query := `SELECT ` + columns + ` FROM live_sessions WHERE status = ANY($1) ORDER BY id`
	values := make([]string, len(statuses))
	for i, st := range statuses {
		values[i] = string(st)
	}
	rows, err := r.db.Query(ctx, query, values)
	if err != nil {
		zap.L().Error("can't get live sessions by status", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var sessions []domain.LiveSession
	for rows.Next() {
		s, err := scanSession(rows)
		if err != nil {
			zap.L().Error("can't scan live session row", zap.Error(err))
			return nil, err
		}
		sessions = append(sessions, *s)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return sessions, nil
}

// Update writes every mutable column of the session in one statement.
func (r *Repository) Update(ctx context.Context, s *domain.LiveSession) error {
	query := `
        UPDATE live_sessions
        SET guest_id = $1, status = $2, host_score = $3, guest_score = $4, winner_id = $5,
            started_at = $6, ended_at = $7, meta = $8
        WHERE id = $9
    `
	tag, err := r.db.Exec(ctx, query,
		s.GuestID, string(s.Status), s.HostScore, s.GuestScore, s.WinnerID,
		s.StartedAt, s.EndedAt, s.Meta.OrEmpty(), s.ID,
	)
	if err != nil {
		zap.L().Error("failed to update live session", zap.Int("sessionID", s.ID), zap.Error(err))
		return err
	}
	if tag.RowsAffected() == 0 {
		return pgx.ErrNoRows
	}
	return nil
}

func (r *Repository) UpdateScores(ctx context.Context, id int, scores domain.Scores) error {
	query := `
        UPDATE live_sessions
        SET host_score = $1, guest_score = $2
        WHERE id = $3 AND status NOT IN ($4, $5)
    `
	tag, err := r.db.Exec(ctx, query, scores.Host, scores.Guest, id, domain.StatusCompleted, domain.StatusCancelled)
	if err != nil {
		zap.L().Error("failed to update session scores", zap.Int("sessionID", id), zap.Error(err))
		return err
	}
	// Missing and terminal rows are indistinguishable here; callers resolve
	// the session before writing.
	if tag.RowsAffected() == 0 {
		return domain.ErrSessionClosed
	}
	return nil
}

func (r *Repository) findOne(ctx context.Context, msg, query string, id int) (*domain.LiveSession, error) {
	s, err := scanSession(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error(msg, zap.Int("sessionID", id), zap.Error(err))
		return nil, err
	}
	return s, nil
}

func scanSession(row pgx.Row) (*domain.LiveSession, error) {
	var (
		s      domain.LiveSession
		status string
	)
	err := row.Scan(&s.ID, &s.HostID, &s.GuestID, &status, &s.HostScore, &s.GuestScore, &s.WinnerID,
		&s.ChatRoomID, &s.ScheduledAt, &s.StartedAt, &s.EndedAt, &s.Meta, &s.CreatedAt)
	if err != nil {
		return nil, err
	}
	s.Status = domain.SessionStatus(status)
	return &s, nil
}
