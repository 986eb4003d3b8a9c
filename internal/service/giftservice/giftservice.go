package giftservice

import (
	"context"
	"errors"
	"fmt"

	"go.opentelemetry.io/otel/attribute"
	"go.uber.org/zap"

	"github.com/GlebRadaev/duelhub/internal/broadcast"
	"github.com/GlebRadaev/duelhub/internal/domain"
	"github.com/GlebRadaev/duelhub/internal/pg"
	"github.com/GlebRadaev/duelhub/internal/service/duelservice"
	"github.com/GlebRadaev/duelhub/pkg/tracing"
)

//go:generate mockgen -source=giftservice.go -destination=mock_giftservice.go -package=giftservice

type SessionRepo interface {
	FindByID(ctx context.Context, id int) (*domain.LiveSession, error)
}

type Wallets interface {
	LockWallets(ctx context.Context, userIDs ...int) error
	Debit(ctx context.Context, userID int, amount int64, p domain.Posting) (*domain.LedgerEntry, error)
	Credit(ctx context.Context, userID int, amount int64, p domain.Posting) (*domain.LedgerEntry, error)
}

type Scores interface {
	AddPoints(ctx context.Context, sessionID int, party domain.Party, points int64) (domain.Scores, error)
}

type Catalog interface {
	IsValidGift(ctx context.Context, giftID int) (bool, error)
	GetGift(ctx context.Context, giftID int) (*domain.Gift, error)
}

type EventRepo interface {
	Create(ctx context.Context, e *domain.DuelEvent) (*domain.DuelEvent, error)
}

type ChatRepo interface {
	Create(ctx context.Context, msg *domain.ChatMessage) (*domain.ChatMessage, error)
}

type Emitter interface {
	Emit(ctx context.Context, event string, payload any, channels ...string)
}

// MaxQuantity bounds a single gift action; each unit is its own ledger pair.
const MaxQuantity = 1000

var (
	ErrUnknownGift      = errors.New("unknown gift")
	ErrInvalidRecipient = errors.New("recipient is not a participant of the session")
	ErrInvalidQuantity  = fmt.Errorf("quantity must be between 1 and %d", MaxQuantity)
	ErrScoreNotRecorded = errors.New("gift transferred but score update failed")
)

type SendGiftRequest struct {
	SessionID   int
	SenderID    int
	RecipientID int
	GiftID      int
	Quantity    int
}

type Result struct {
	Event  *domain.DuelEvent
	Gift   *domain.Gift
	Party  domain.Party
	Total  int64
	Scores domain.Scores
}

type Service struct {
	sessions  SessionRepo
	wallets   Wallets
	scores    Scores
	catalog   Catalog
	events    EventRepo
	chat      ChatRepo
	emitter   Emitter
	txManager pg.TXManager
}

func New(sessions SessionRepo, wallets Wallets, scores Scores, catalog Catalog, events EventRepo, chat ChatRepo, emitter Emitter, txManager pg.TXManager) *Service {
	return &Service{
		sessions:  sessions,
		wallets:   wallets,
		scores:    scores,
		catalog:   catalog,
		events:    events,
		chat:      chat,
		emitter:   emitter,
		txManager: txManager,
	}
}

// SendGift moves credits one unit at a time (quantity debit/credit pairs)
// and then scores the aggregate once. All units share one transaction: a
// failed unit rolls back the units before it.
func (s *Service) SendGift(ctx context.Context, req SendGiftRequest) (_ *Result, err error) {
	ctx, span := tracing.Start(ctx, "giftservice.SendGift",
		attribute.Int("session.id", req.SessionID),
		attribute.Int("gift.id", req.GiftID),
		attribute.Int("gift.quantity", req.Quantity),
	)
	defer func() { tracing.End(span, err) }()

	if req.Quantity < 1 || req.Quantity > MaxQuantity {
		return nil, ErrInvalidQuantity
	}

	session, err := s.sessions.FindByID(ctx, req.SessionID)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, duelservice.ErrSessionNotFound
	}
	if session.Status != domain.StatusActive {
		return nil, &duelservice.TransitionError{Transition: "send gift in", Status: session.Status}
	}
	party, ok := session.PartyOf(req.RecipientID)
	if !ok || req.SenderID == req.RecipientID {
		return nil, ErrInvalidRecipient
	}

	gift, err := s.resolveGift(ctx, req.GiftID)
	if err != nil {
		return nil, err
	}
	total := gift.CreditValue * int64(req.Quantity)

	var event *domain.DuelEvent
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if err := s.wallets.LockWallets(ctx, req.SenderID, req.RecipientID); err != nil {
			return err
		}
		for unit := 1; unit <= req.Quantity; unit++ {
			meta := domain.Meta{"gift_id": gift.ID, "gift_name": gift.Name, "unit": unit, "quantity": req.Quantity}
			if _, err := s.wallets.Debit(ctx, req.SenderID, gift.CreditValue, domain.Posting{
				Type:        domain.TxGiftSent,
				Reference:   domain.SessionRef(session.ID),
				Description: fmt.Sprintf("Sent %s", gift.Name),
				Meta:        meta,
			}); err != nil {
				return fmt.Errorf("debit unit %d: %w", unit, err)
			}
			if _, err := s.wallets.Credit(ctx, req.RecipientID, gift.CreditValue, domain.Posting{
				Type:        domain.TxGiftReceived,
				Reference:   domain.SessionRef(session.ID),
				Description: fmt.Sprintf("Received %s", gift.Name),
				Meta:        meta,
			}); err != nil {
				return fmt.Errorf("credit unit %d: %w", unit, err)
			}
		}

		var err error
		event, err = s.events.Create(ctx, &domain.DuelEvent{
			SessionID: session.ID,
			Type:      domain.EventGiftSent,
			ActorID:   &req.SenderID,
			TargetID:  &req.RecipientID,
			Payload: domain.Meta{
				"gift_id":      gift.ID,
				"gift_name":    gift.Name,
				"gift_icon":    gift.Icon,
				"credit_value": gift.CreditValue,
				"quantity":     req.Quantity,
				"total":        total,
				"party":        string(party),
			},
		})
		return err
	})
	if err != nil {
		zap.L().Warn("gift transfer failed",
			zap.Int("sessionID", req.SessionID),
			zap.Int("senderID", req.SenderID),
			zap.Int("giftID", req.GiftID),
			zap.Error(err),
		)
		return nil, err
	}

	scores, err := s.scores.AddPoints(ctx, session.ID, party, total)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrScoreNotRecorded, err)
	}

	s.postChatMessage(ctx, session, req, gift)

	payload := broadcast.GiftPayload{
		SessionID:   session.ID,
		SenderID:    req.SenderID,
		RecipientID: req.RecipientID,
		Party:       string(party),
		GiftID:      gift.ID,
		GiftName:    gift.Name,
		GiftIcon:    gift.Icon,
		Quantity:    req.Quantity,
		Total:       total,
		Host:        scores.Host,
		Guest:       scores.Guest,
	}
	s.emitter.Emit(ctx, broadcast.EventGiftSent, payload, broadcast.DuelChannel(session.ID))
	s.emitter.Emit(ctx, broadcast.EventGiftReceived, payload, broadcast.NotificationsChannel(req.RecipientID))

	return &Result{
		Event:  event,
		Gift:   gift,
		Party:  party,
		Total:  total,
		Scores: scores,
	}, nil
}

func (s *Service) resolveGift(ctx context.Context, giftID int) (*domain.Gift, error) {
	ok, err := s.catalog.IsValidGift(ctx, giftID)
	if err != nil {
		return nil, fmt.Errorf("can't check gift: %w", err)
	}
	if !ok {
		return nil, ErrUnknownGift
	}
	gift, err := s.catalog.GetGift(ctx, giftID)
	if err != nil {
		return nil, fmt.Errorf("can't load gift: %w", err)
	}
	if gift.CreditValue <= 0 {
		return nil, fmt.Errorf("%w: gift %d has no credit value", ErrUnknownGift, giftID)
	}
	return gift, nil
}

func (s *Service) postChatMessage(ctx context.Context, session *domain.LiveSession, req SendGiftRequest, gift *domain.Gift) {
	if session.ChatRoomID == nil {
		return
	}
	_, err := s.chat.Create(ctx, &domain.ChatMessage{
		RoomID: *session.ChatRoomID,
		UserID: req.SenderID,
		Type:   "gift",
		Body:   fmt.Sprintf("sent %s x%d", gift.Name, req.Quantity),
		Meta: domain.Meta{
			"gift_id":      gift.ID,
			"recipient_id": req.RecipientID,
			"quantity":     req.Quantity,
		},
	})
	if err != nil {
		zap.L().Warn("can't post gift chat message", zap.Int("sessionID", session.ID), zap.Error(err))
	}
}
