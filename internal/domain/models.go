package domain

import (
	"errors"
	"fmt"
	"time"
)

type Meta map[string]any

// OrEmpty keeps jsonb columns non-null.
func (m Meta) OrEmpty() Meta {
	if m == nil {
		return Meta{}
	}
	return m
}

var ErrImmutabilityViolation = errors.New("ledger entries are immutable")

type Wallet struct {
	ID        int       `db:"id"`
	UserID    int       `db:"user_id"`
	Balance   int64     `db:"balance"`
	Currency  string    `db:"currency"`
	CreatedAt time.Time `db:"created_at"`
	UpdatedAt time.Time `db:"updated_at"`
}

type TransactionType string

const (
	TxDeposit      TransactionType = "deposit"
	TxWithdrawal   TransactionType = "withdrawal"
	TxGiftSent     TransactionType = "gift_sent"
	TxGiftReceived TransactionType = "gift_received"
	TxPurchase     TransactionType = "purchase"
	TxRefund       TransactionType = "refund"
	TxAdjustment   TransactionType = "adjustment"
)

func (t TransactionType) Valid() bool {
	switch t {
	case TxDeposit, TxWithdrawal, TxGiftSent, TxGiftReceived, TxPurchase, TxRefund, TxAdjustment:
		return true
	}
	return false
}

type RefKind string

const (
	RefLiveSession RefKind = "live_session"
	RefDuelEvent   RefKind = "duel_event"
	RefGift        RefKind = "gift"
)

// Reference points at the entity that caused a ledger entry. A nil
// *Reference means no cause was recorded.
type Reference struct {
	Kind RefKind `json:"kind"`
	ID   int     `json:"id"`
}

func SessionRef(id int) *Reference { return &Reference{Kind: RefLiveSession, ID: id} }

func (r *Reference) String() string {
	if r == nil {
		return ""
	}
	return fmt.Sprintf("%s:%d", r.Kind, r.ID)
}

type LedgerEntry struct {
	ID           int             `db:"id"`
	WalletID     int             `db:"wallet_id"`
	Amount       int64           `db:"amount"`
	BalanceAfter int64           `db:"balance_after"`
	Type         TransactionType `db:"type"`
	Reference    *Reference      `db:"-"`
	Description  string          `db:"description"`
	Meta         Meta            `db:"meta"`
	CreatedAt    time.Time       `db:"created_at"`
}

type SessionStatus string

// ErrSessionClosed is returned by score writes against a completed or
// cancelled session.
var ErrSessionClosed = errors.New("live session is closed")

const (
	StatusWaiting   SessionStatus = "waiting"
	StatusActive    SessionStatus = "active"
	StatusPaused    SessionStatus = "paused"
	StatusCompleted SessionStatus = "completed"
	StatusCancelled SessionStatus = "cancelled"
)

func (s SessionStatus) Terminal() bool {
	switch s {
	case StatusCompleted, StatusCancelled:
		return true
	case StatusWaiting, StatusActive, StatusPaused:
		return false
	}
	return false
}

type LiveSession struct {
	ID          int           `db:"id"`
	HostID      int           `db:"host_id"`
	GuestID     *int          `db:"guest_id"`
	Status      SessionStatus `db:"status"`
	HostScore   int64         `db:"host_score"`
	GuestScore  int64         `db:"guest_score"`
	WinnerID    *int          `db:"winner_id"`
	ChatRoomID  *int          `db:"chat_room_id"`
	ScheduledAt *time.Time    `db:"scheduled_at"`
	StartedAt   *time.Time    `db:"started_at"`
	EndedAt     *time.Time    `db:"ended_at"`
	Meta        Meta          `db:"meta"`
	CreatedAt   time.Time     `db:"created_at"`
}

// PartyOf reports which side of the duel userID plays on.
func (s *LiveSession) PartyOf(userID int) (Party, bool) {
	if userID == s.HostID {
		return PartyHost, true
	}
	if s.GuestID != nil && *s.GuestID == userID {
		return PartyGuest, true
	}
	return "", false
}

func (s *LiveSession) Scores() Scores {
	return Scores{Host: s.HostScore, Guest: s.GuestScore}
}

type EventType string

const (
	EventGiftSent      EventType = "gift_sent"
	EventUserJoined    EventType = "user_joined"
	EventUserLeft      EventType = "user_left"
	EventScoreUpdated  EventType = "score_updated"
	EventDuelStarted   EventType = "duel_started"
	EventDuelPaused    EventType = "duel_paused"
	EventDuelResumed   EventType = "duel_resumed"
	EventDuelEnded     EventType = "duel_ended"
	EventDuelCancelled EventType = "duel_cancelled"
)

type DuelEvent struct {
	ID        int       `db:"id"`
	SessionID int       `db:"session_id"`
	Type      EventType `db:"type"`
	ActorID   *int      `db:"actor_id"`
	TargetID  *int      `db:"target_id"`
	Payload   Meta      `db:"payload"`
	CreatedAt time.Time `db:"created_at"`
}

type Party string

const (
	PartyHost  Party = "host"
	PartyGuest Party = "guest"
)

var ErrInvalidParty = errors.New("invalid party")

func ParseParty(s string) (Party, error) {
	switch Party(s) {
	case PartyHost, PartyGuest:
		return Party(s), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidParty, s)
}

type Scores struct {
	Host  int64 `json:"host"`
	Guest int64 `json:"guest"`
}

type Gift struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	CreditValue int64  `json:"credit_value"`
	Icon        string `json:"icon"`
}

type ChatMessage struct {
	ID        int       `db:"id"`
	RoomID    int       `db:"room_id"`
	UserID    int       `db:"user_id"`
	Type      string    `db:"type"`
	Body      string    `db:"body"`
	Meta      Meta      `db:"meta"`
	CreatedAt time.Time `db:"created_at"`
}

// Posting describes why a wallet balance changes; the amount travels separately.
type Posting struct {
	Type        TransactionType
	Reference   *Reference
	Description string
	Meta        Meta
}
