package duelservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/GlebRadaev/duelhub/internal/broadcast"
	"github.com/GlebRadaev/duelhub/internal/domain"
	"github.com/GlebRadaev/duelhub/internal/pg"
	"github.com/GlebRadaev/duelhub/pkg/tracing"
)

//go:generate mockgen -source=duelservice.go -destination=mock_duelservice.go -package=duelservice

type SessionRepo interface {
	Create(ctx context.Context, s *domain.LiveSession) (*domain.LiveSession, error)
	FindByID(ctx context.Context, id int) (*domain.LiveSession, error)
	LockByID(ctx context.Context, id int) (*domain.LiveSession, error)
	Update(ctx context.Context, s *domain.LiveSession) error
}

type EventRepo interface {
	Create(ctx context.Context, e *domain.DuelEvent) (*domain.DuelEvent, error)
	ListBySession(ctx context.Context, sessionID int) ([]domain.DuelEvent, error)
}

type ScoreKeeper interface {
	GetScores(ctx context.Context, sessionID int) (domain.Scores, error)
	ClearCache(ctx context.Context, sessionID int) error
}

type Emitter interface {
	Emit(ctx context.Context, event string, payload any, channels ...string)
}

var (
	ErrInvalidSessionState = errors.New("invalid session state")
	ErrSessionNotFound     = errors.New("live session not found")
	ErrNotParticipant      = errors.New("user is not a participant of the session")
)

// TransitionError names the refused transition and the state it was tried from.
type TransitionError struct {
	Transition string
	Status     domain.SessionStatus
	Reason     string
}

func (e *TransitionError) Error() string {
	msg := fmt.Sprintf("%s: can't %s a %s session", ErrInvalidSessionState, e.Transition, e.Status)
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	return msg
}

func (e *TransitionError) Unwrap() error {
	return ErrInvalidSessionState
}

type CreateOptions struct {
	ChatRoomID  *int
	ScheduledAt *time.Time
	Meta        domain.Meta
}

type Service struct {
	sessions  SessionRepo
	events    EventRepo
	scores    ScoreKeeper
	emitter   Emitter
	txManager pg.TXManager
	now       func() time.Time
}

func New(sessions SessionRepo, events EventRepo, scores ScoreKeeper, emitter Emitter, txManager pg.TXManager) *Service {
	return &Service{
		sessions:  sessions,
		events:    events,
		scores:    scores,
		emitter:   emitter,
		txManager: txManager,
		now:       time.Now,
	}
}

func (s *Service) Create(ctx context.Context, hostID int, opts CreateOptions) (*domain.LiveSession, error) {
	session, err := s.sessions.Create(ctx, &domain.LiveSession{
		HostID:      hostID,
		Status:      domain.StatusWaiting,
		ChatRoomID:  opts.ChatRoomID,
		ScheduledAt: opts.ScheduledAt,
		Meta:        opts.Meta,
	})
	if err != nil {
		zap.L().Error("failed to create live session", zap.Int("hostID", hostID), zap.Error(err))
		return nil, err
	}
	return session, nil
}

func (s *Service) Get(ctx context.Context, sessionID int) (*domain.LiveSession, error) {
	session, err := s.sessions.FindByID(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

func (s *Service) Timeline(ctx context.Context, sessionID int) ([]domain.DuelEvent, error) {
	if _, err := s.Get(ctx, sessionID); err != nil {
		return nil, err
	}
	return s.events.ListBySession(ctx, sessionID)
}

func (s *Service) Join(ctx context.Context, sessionID, guestID int) (*domain.LiveSession, error) {
	session, err := s.transition(ctx, "join", sessionID, func(ctx context.Context, session *domain.LiveSession) error {
		if session.Status != domain.StatusWaiting {
			return &TransitionError{Transition: "join", Status: session.Status}
		}
		if session.GuestID != nil {
			return &TransitionError{Transition: "join", Status: session.Status, Reason: "guest already assigned"}
		}
		if guestID == session.HostID {
			return &TransitionError{Transition: "join", Status: session.Status, Reason: "host can't join as guest"}
		}

		now := s.now()
		session.GuestID = &guestID
		session.Status = domain.StatusActive
		session.StartedAt = &now
		if err := s.sessions.Update(ctx, session); err != nil {
			return err
		}
		return s.record(ctx, session.ID, domain.EventUserJoined, &guestID, &session.HostID, domain.Meta{"party": string(domain.PartyGuest)})
	})
	if err != nil {
		return nil, err
	}

	payload := sessionPayload(session, &guestID, session.StartedAt)
	s.emitter.Emit(ctx, broadcast.EventDuelJoined, payload, broadcast.DuelChannel(session.ID))
	s.emitter.Emit(ctx, broadcast.EventDuelStarted, payload, broadcast.DuelChannel(session.ID))
	s.emitter.Emit(ctx, broadcast.EventGuestJoined, payload, broadcast.NotificationsChannel(session.HostID))
	return session, nil
}

// End finalises the duel from its current scores. A duel that never got a
// guest is cancelled rather than completed.
func (s *Service) End(ctx context.Context, sessionID int, endedBy *int) (*domain.LiveSession, error) {
	session, err := s.transition(ctx, "end", sessionID, func(ctx context.Context, session *domain.LiveSession) error {
		if session.Status.Terminal() {
			return &TransitionError{Transition: "end", Status: session.Status}
		}
		if err := checkParticipant(session, endedBy); err != nil {
			return err
		}

		scores, err := s.scores.GetScores(ctx, session.ID)
		if err != nil {
			return fmt.Errorf("can't read final scores: %w", err)
		}

		now := s.now()
		session.HostScore, session.GuestScore = scores.Host, scores.Guest
		session.EndedAt = &now
		if session.GuestID == nil {
			session.Status = domain.StatusCancelled
			session.WinnerID = nil
		} else {
			session.Status = domain.StatusCompleted
			session.WinnerID = Winner(session.HostID, *session.GuestID, scores)
		}
		if err := s.sessions.Update(ctx, session); err != nil {
			return err
		}
		return s.record(ctx, session.ID, domain.EventDuelEnded, endedBy, session.WinnerID, domain.Meta{
			"status":      string(session.Status),
			"host_score":  scores.Host,
			"guest_score": scores.Guest,
		})
	})
	if err != nil {
		return nil, err
	}

	s.finish(ctx, session, endedBy)
	return session, nil
}

func (s *Service) Cancel(ctx context.Context, sessionID int, cancelledBy *int) (*domain.LiveSession, error) {
	session, err := s.transition(ctx, "cancel", sessionID, func(ctx context.Context, session *domain.LiveSession) error {
		if session.Status != domain.StatusWaiting {
			return &TransitionError{Transition: "cancel", Status: session.Status}
		}
		if cancelledBy != nil && *cancelledBy != session.HostID {
			return ErrNotParticipant
		}

		now := s.now()
		session.Status = domain.StatusCancelled
		session.EndedAt = &now
		if err := s.sessions.Update(ctx, session); err != nil {
			return err
		}
		return s.record(ctx, session.ID, domain.EventDuelCancelled, cancelledBy, nil, nil)
	})
	if err != nil {
		return nil, err
	}

	s.finish(ctx, session, cancelledBy)
	return session, nil
}

func (s *Service) Pause(ctx context.Context, sessionID int, by *int) (*domain.LiveSession, error) {
	return s.toggle(ctx, sessionID, by, "pause", domain.StatusActive, domain.StatusPaused, domain.EventDuelPaused, broadcast.EventDuelPaused)
}

func (s *Service) Resume(ctx context.Context, sessionID int, by *int) (*domain.LiveSession, error) {
	return s.toggle(ctx, sessionID, by, "resume", domain.StatusPaused, domain.StatusActive, domain.EventDuelResumed, broadcast.EventDuelResumed)
}

func (s *Service) toggle(ctx context.Context, sessionID int, by *int, name string, from, to domain.SessionStatus, eventType domain.EventType, event string) (*domain.LiveSession, error) {
	session, err := s.transition(ctx, name, sessionID, func(ctx context.Context, session *domain.LiveSession) error {
		if session.Status != from {
			return &TransitionError{Transition: name, Status: session.Status}
		}
		if err := checkParticipant(session, by); err != nil {
			return err
		}
		session.Status = to
		if err := s.sessions.Update(ctx, session); err != nil {
			return err
		}
		return s.record(ctx, session.ID, eventType, by, nil, nil)
	})
	if err != nil {
		return nil, err
	}

	s.emitter.Emit(ctx, event, sessionPayload(session, by, nil), broadcast.DuelChannel(session.ID))
	return session, nil
}

// transition runs apply on the locked session row inside one transaction,
// so a refused transition leaves nothing written.
func (s *Service) transition(ctx context.Context, name string, sessionID int, apply func(ctx context.Context, session *domain.LiveSession) error) (session *domain.LiveSession, err error) {
	ctx, span := tracing.Start(ctx, "duelservice."+name, attribute.Int("session.id", sessionID))
	defer func() { tracing.End(span, err) }()

	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		var err error
		session, err = s.sessions.LockByID(ctx, sessionID)
		if err != nil {
			return err
		}
		if session == nil {
			return ErrSessionNotFound
		}
		return apply(ctx, session)
	})
	if err != nil {
		if !errors.Is(err, ErrInvalidSessionState) && !errors.Is(err, ErrSessionNotFound) && !errors.Is(err, ErrNotParticipant) {
			zap.L().Error("session transition failed", zap.Int("sessionID", sessionID), zap.Error(err))
		}
		return nil, err
	}
	return session, nil
}

func (s *Service) record(ctx context.Context, sessionID int, t domain.EventType, actor, target *int, payload domain.Meta) error {
	_, err := s.events.Create(ctx, &domain.DuelEvent{
		SessionID: sessionID,
		Type:      t,
		ActorID:   actor,
		TargetID:  target,
		Payload:   payload,
	})
	return err
}

func (s *Service) finish(ctx context.Context, session *domain.LiveSession, actor *int) {
	if err := s.scores.ClearCache(ctx, session.ID); err != nil {
		zap.L().Warn("score cache not cleared after session end", zap.Int("sessionID", session.ID), zap.Error(err))
	}
	s.emitter.Emit(ctx, broadcast.EventDuelEnded, sessionPayload(session, actor, session.EndedAt), broadcast.DuelChannel(session.ID))
}

// Winner returns the strictly higher scorer. Equal scores, including 0:0,
// are a draw and yield nil.
func Winner(hostID, guestID int, scores domain.Scores) *int {
	switch {
	case scores.Host > scores.Guest:
		return &hostID
	case scores.Guest > scores.Host:
		return &guestID
	default:
		return nil
	}
}

func checkParticipant(session *domain.LiveSession, userID *int) error {
	if userID == nil {
		return nil
	}
	if _, ok := session.PartyOf(*userID); !ok {
		return ErrNotParticipant
	}
	return nil
}

func sessionPayload(session *domain.LiveSession, actor *int, at *time.Time) broadcast.SessionPayload {
	return broadcast.SessionPayload{
		SessionID: session.ID,
		Status:    string(session.Status),
		HostID:    session.HostID,
		GuestID:   session.GuestID,
		WinnerID:  session.WinnerID,
		Host:      session.HostScore,
		Guest:     session.GuestScore,
		ActorID:   actor,
		At:        at,
	}
}
