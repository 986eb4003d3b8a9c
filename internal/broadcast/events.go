package broadcast

import (
	"fmt"
	"time"
)

const (
	EventScoreUpdated = "score.updated"
	EventDuelJoined   = "duel.joined"
	EventDuelStarted  = "duel.started"
	EventDuelPaused   = "duel.paused"
	EventDuelResumed  = "duel.resumed"
	EventDuelEnded    = "duel.ended"
	EventGiftSent     = "gift.sent"
	EventGiftReceived = "gift.received"
	EventGuestJoined  = "duel.guest_joined"
)

func DuelChannel(sessionID int) string {
	return fmt.Sprintf("duel.%d", sessionID)
}

func ScoresChannel(sessionID int) string {
	return fmt.Sprintf("duel.%d.scores", sessionID)
}

func NotificationsChannel(userID int) string {
	return fmt.Sprintf("notifications.%d", userID)
}

// Envelope is what subscribers receive on every channel.
type Envelope struct {
	ID      string    `json:"id"`
	Event   string    `json:"event"`
	Payload any       `json:"payload"`
	SentAt  time.Time `json:"sent_at"`
}

type ScorePayload struct {
	SessionID int    `json:"session_id"`
	Host      int64  `json:"host"`
	Guest     int64  `json:"guest"`
	Party     string `json:"party,omitempty"`
	Points    int64  `json:"points,omitempty"`
}

type SessionPayload struct {
	SessionID int        `json:"session_id"`
	Status    string     `json:"status"`
	HostID    int        `json:"host_id"`
	GuestID   *int       `json:"guest_id,omitempty"`
	WinnerID  *int       `json:"winner_id,omitempty"`
	Host      int64      `json:"host_score"`
	Guest     int64      `json:"guest_score"`
	ActorID   *int       `json:"actor_id,omitempty"`
	At        *time.Time `json:"at,omitempty"`
}

type GiftPayload struct {
	SessionID   int    `json:"session_id"`
	SenderID    int    `json:"sender_id"`
	RecipientID int    `json:"recipient_id"`
	Party       string `json:"party"`
	GiftID      int    `json:"gift_id"`
	GiftName    string `json:"gift_name"`
	GiftIcon    string `json:"gift_icon,omitempty"`
	Quantity    int    `json:"quantity"`
	Total       int64  `json:"total"`
	Host        int64  `json:"host_score"`
	Guest       int64  `json:"guest_score"`
}
