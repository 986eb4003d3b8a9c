package dto

import "time"

type CreateDuelRequestDTO struct {
	ChatRoomID  *int           `json:"chat_room_id,omitempty" example:"3"`
	ScheduledAt *time.Time     `json:"scheduled_at,omitempty" example:"2024-12-09T16:00:00Z"`
	Meta        map[string]any `json:"meta,omitempty"`
}

type DuelResponseDTO struct {
	ID          int        `json:"id" example:"12"`
	HostID      int        `json:"host_id" example:"7"`
	GuestID     *int       `json:"guest_id,omitempty" example:"9"`
	Status      string     `json:"status" example:"active"`
	HostScore   int64      `json:"host_score" example:"15"`
	GuestScore  int64      `json:"guest_score" example:"10"`
	WinnerID    *int       `json:"winner_id,omitempty"`
	ChatRoomID  *int       `json:"chat_room_id,omitempty"`
	ScheduledAt *time.Time `json:"scheduled_at,omitempty"`
	StartedAt   *time.Time `json:"started_at,omitempty"`
	EndedAt     *time.Time `json:"ended_at,omitempty"`
}

type ScoresResponseDTO struct {
	SessionID int   `json:"session_id" example:"12"`
	Host      int64 `json:"host" example:"15"`
	Guest     int64 `json:"guest" example:"10"`
}

type DuelEventResponseDTO struct {
	ID        int            `json:"id" example:"88"`
	Type      string         `json:"type" example:"gift_sent"`
	ActorID   *int           `json:"actor_id,omitempty"`
	TargetID  *int           `json:"target_id,omitempty"`
	Payload   map[string]any `json:"payload,omitempty"`
	CreatedAt time.Time      `json:"created_at"`
}
