package scoreservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/GlebRadaev/duelhub/internal/broadcast"
	"github.com/GlebRadaev/duelhub/internal/domain"
	"github.com/GlebRadaev/duelhub/internal/service/duelservice"
	"github.com/GlebRadaev/duelhub/pkg/tracing"
)

//go:generate mockgen -source=scoreservice.go -destination=mock_scoreservice.go -package=scoreservice

// Cache is the fast score store. It is never authoritative on its own: a
// miss is always answered from the durable session columns.
type Cache interface {
	Get(ctx context.Context, sessionID int) (domain.Scores, bool, error)
	Set(ctx context.Context, sessionID int, scores domain.Scores, ttl time.Duration) error
	// Incr seeds the entry with seed when it is absent, adds points to party
	// and returns the totals after the increment, all atomically.
	Incr(ctx context.Context, sessionID int, party domain.Party, points int64, seed domain.Scores, ttl time.Duration) (domain.Scores, error)
	Delete(ctx context.Context, sessionID int) error
}

type SessionRepo interface {
	FindByID(ctx context.Context, id int) (*domain.LiveSession, error)
	UpdateScores(ctx context.Context, id int, scores domain.Scores) error
}

type Emitter interface {
	Emit(ctx context.Context, event string, payload any, channels ...string)
}

const DefaultTTL = 24 * time.Hour

var (
	ErrSessionNotFound = errors.New("live session not found")
	ErrInvalidPoints   = errors.New("points must be positive")
)

type Service struct {
	cache    Cache
	sessions SessionRepo
	emitter  Emitter
	ttl      time.Duration
}

func New(cache Cache, sessions SessionRepo, emitter Emitter, ttl time.Duration) *Service {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	return &Service{
		cache:    cache,
		sessions: sessions,
		emitter:  emitter,
		ttl:      ttl,
	}
}

func (s *Service) GetScores(ctx context.Context, sessionID int) (domain.Scores, error) {
	scores, ok, err := s.cache.Get(ctx, sessionID)
	if err != nil {
		zap.L().Warn("score cache read failed, using durable scores", zap.Int("sessionID", sessionID), zap.Error(err))
	}
	if ok && err == nil {
		return scores, nil
	}

	session, err := s.findSession(ctx, sessionID)
	if err != nil {
		return domain.Scores{}, err
	}
	scores = session.Scores()
	if err := s.cache.Set(ctx, sessionID, scores, s.ttl); err != nil {
		zap.L().Warn("can't repopulate score cache", zap.Int("sessionID", sessionID), zap.Error(err))
	}
	return scores, nil
}

// AddPoints increments the cached counter, then copies the totals it read
// back into the durable session row. Concurrent callers may write the
// durable row in any order; each writes a value the cache held at the time.
func (s *Service) AddPoints(ctx context.Context, sessionID int, party domain.Party, points int64) (_ domain.Scores, err error) {
	ctx, span := tracing.Start(ctx, "scoreservice.AddPoints",
		attribute.Int("session.id", sessionID),
		attribute.String("party", string(party)),
		attribute.Int64("points", points),
	)
	defer func() { tracing.End(span, err) }()

	if _, err := domain.ParseParty(string(party)); err != nil {
		return domain.Scores{}, err
	}
	if points <= 0 {
		return domain.Scores{}, ErrInvalidPoints
	}

	session, err := s.findSession(ctx, sessionID)
	if err != nil {
		return domain.Scores{}, err
	}
	if session.Status.Terminal() {
		return domain.Scores{}, &duelservice.TransitionError{Transition: "score", Status: session.Status}
	}

	scores, err := s.cache.Incr(ctx, sessionID, party, points, session.Scores(), s.ttl)
	if err != nil {
		zap.L().Error("score increment failed", zap.Int("sessionID", sessionID), zap.Error(err))
		return domain.Scores{}, fmt.Errorf("can't increment score: %w", err)
	}

	if err := s.sessions.UpdateScores(ctx, sessionID, scores); err != nil {
		if errors.Is(err, domain.ErrSessionClosed) {
			// The session ended between the read and the write; its final
			// scores are durable, so drop the increment we just cached.
			s.evict(ctx, sessionID)
			return domain.Scores{}, fmt.Errorf("%w: %w", duelservice.ErrInvalidSessionState, err)
		}
		zap.L().Error("durable score sync failed", zap.Int("sessionID", sessionID), zap.Error(err))
		return domain.Scores{}, fmt.Errorf("can't sync scores: %w", err)
	}

	s.emitter.Emit(ctx, broadcast.EventScoreUpdated, broadcast.ScorePayload{
		SessionID: sessionID,
		Host:      scores.Host,
		Guest:     scores.Guest,
		Party:     string(party),
		Points:    points,
	}, broadcast.ScoresChannel(sessionID))

	return scores, nil
}

// SetScores overwrites both tiers; used for initialisation and corrections.
func (s *Service) SetScores(ctx context.Context, sessionID int, scores domain.Scores) error {
	if err := s.sessions.UpdateScores(ctx, sessionID, scores); err != nil {
		zap.L().Error("failed to set durable scores", zap.Int("sessionID", sessionID), zap.Error(err))
		return err
	}
	if err := s.cache.Set(ctx, sessionID, scores, s.ttl); err != nil {
		zap.L().Error("failed to set cached scores", zap.Int("sessionID", sessionID), zap.Error(err))
		s.evict(ctx, sessionID)
		return err
	}
	return nil
}

func (s *Service) ResetScores(ctx context.Context, sessionID int) error {
	return s.SetScores(ctx, sessionID, domain.Scores{})
}

func (s *Service) ClearCache(ctx context.Context, sessionID int) error {
	if err := s.cache.Delete(ctx, sessionID); err != nil {
		zap.L().Error("failed to clear score cache", zap.Int("sessionID", sessionID), zap.Error(err))
		return err
	}
	return nil
}

// Reconcile copies cached totals into the durable row when they differ.
// It reports whether a write happened.
func (s *Service) Reconcile(ctx context.Context, session domain.LiveSession) (bool, error) {
	cached, ok, err := s.cache.Get(ctx, session.ID)
	if err != nil {
		return false, fmt.Errorf("can't read cached scores: %w", err)
	}
	if !ok || cached == session.Scores() {
		return false, nil
	}
	if err := s.sessions.UpdateScores(ctx, session.ID, cached); err != nil {
		if errors.Is(err, domain.ErrSessionClosed) {
			s.evict(ctx, session.ID)
			return false, nil
		}
		return false, fmt.Errorf("can't write durable scores: %w", err)
	}
	zap.L().Info("durable scores reconciled from cache",
		zap.Int("sessionID", session.ID),
		zap.Int64("host", cached.Host),
		zap.Int64("guest", cached.Guest),
	)
	return true, nil
}

func (s *Service) findSession(ctx context.Context, sessionID int) (*domain.LiveSession, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// evict drops a cache entry that may disagree with the durable row, so the
// next read rebuilds it from there.
func (s *Service) evict(ctx context.Context, sessionID int) {
	if err := s.cache.Delete(ctx, sessionID); err != nil {
		zap.L().Warn("can't evict stale cached scores", zap.Int("sessionID", sessionID), zap.Error(err))
	}
}
