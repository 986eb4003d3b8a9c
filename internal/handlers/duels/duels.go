package duels

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/duelhub/internal/domain"
	"github.com/GlebRadaev/duelhub/internal/dto"
	"github.com/GlebRadaev/duelhub/internal/service/duelservice"
	"github.com/GlebRadaev/duelhub/internal/service/scoreservice"
	"github.com/GlebRadaev/duelhub/pkg/auth"
	"github.com/GlebRadaev/duelhub/pkg/utils"
)

//go:generate mockgen -source=duels.go -destination=mock_duels.go -package=duels

type Service interface {
	Create(ctx context.Context, hostID int, opts duelservice.CreateOptions) (*domain.LiveSession, error)
	Get(ctx context.Context, sessionID int) (*domain.LiveSession, error)
	Timeline(ctx context.Context, sessionID int) ([]domain.DuelEvent, error)
	Join(ctx context.Context, sessionID, guestID int) (*domain.LiveSession, error)
	End(ctx context.Context, sessionID int, endedBy *int) (*domain.LiveSession, error)
	Cancel(ctx context.Context, sessionID int, cancelledBy *int) (*domain.LiveSession, error)
	Pause(ctx context.Context, sessionID int, by *int) (*domain.LiveSession, error)
	Resume(ctx context.Context, sessionID int, by *int) (*domain.LiveSession, error)
}

type ScoreService interface {
	GetScores(ctx context.Context, sessionID int) (domain.Scores, error)
}

type DuelHandler struct {
	duelService  Service
	scoreService ScoreService
}

func New(duelService Service, scoreService ScoreService) *DuelHandler {
	return &DuelHandler{
		duelService:  duelService,
		scoreService: scoreService,
	}
}

// CreateDuel godoc
//
//	@Summary		Create duel
//	@Description	Open a live duel hosted by the authenticated user. The duel waits for a guest.
//	@Tags			Duels
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateDuelRequestDTO	false	"Duel options"
//	@Success		201		{object}	dto.DuelResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/duels [post]
func (h *DuelHandler) CreateDuel(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req dto.CreateDuelRequestDTO
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	session, err := h.duelService.Create(r.Context(), userID, duelservice.CreateOptions{
		ChatRoomID:  req.ChatRoomID,
		ScheduledAt: req.ScheduledAt,
		Meta:        req.Meta,
	})
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toDuelDTO(session))
}

// GetDuel godoc
//
//	@Summary		Get duel
//	@Tags			Duels
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Duel ID"
//	@Success		200	{object}	dto.DuelResponseDTO
//	@Failure		404	{object}	utils.Response	"Duel not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/duels/{id} [get]
func (h *DuelHandler) GetDuel(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}
	session, err := h.duelService.Get(r.Context(), sessionID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDuelDTO(session))
}

// JoinDuel godoc
//
//	@Summary		Join duel
//	@Description	Join a waiting duel as its guest. The duel starts immediately.
//	@Tags			Duels
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Duel ID"
//	@Success		200	{object}	dto.DuelResponseDTO
//	@Failure		404	{object}	utils.Response	"Duel not found"
//	@Failure		409	{object}	utils.Response	"Duel can't be joined"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/duels/{id}/join [post]
func (h *DuelHandler) JoinDuel(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}
	userID, _ := auth.UserID(r.Context())

	session, err := h.duelService.Join(r.Context(), sessionID, userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDuelDTO(session))
}

// EndDuel godoc
//
//	@Summary		End duel
//	@Description	Finish the duel and decide the winner from the current scores.
//	@Tags			Duels
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Duel ID"
//	@Success		200	{object}	dto.DuelResponseDTO
//	@Failure		403	{object}	utils.Response	"Not a participant"
//	@Failure		404	{object}	utils.Response	"Duel not found"
//	@Failure		409	{object}	utils.Response	"Duel already finished"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/duels/{id}/end [post]
func (h *DuelHandler) EndDuel(w http.ResponseWriter, r *http.Request) {
	h.actorTransition(w, r, h.duelService.End)
}

// CancelDuel godoc
//
//	@Summary		Cancel duel
//	@Description	Cancel a duel that is still waiting for a guest. Host only.
//	@Tags			Duels
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Duel ID"
//	@Success		200	{object}	dto.DuelResponseDTO
//	@Failure		403	{object}	utils.Response	"Not the host"
//	@Failure		404	{object}	utils.Response	"Duel not found"
//	@Failure		409	{object}	utils.Response	"Duel already started"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/duels/{id}/cancel [post]
func (h *DuelHandler) CancelDuel(w http.ResponseWriter, r *http.Request) {
	h.actorTransition(w, r, h.duelService.Cancel)
}

// PauseDuel godoc
//
//	@Summary		Pause duel
//	@Tags			Duels
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Duel ID"
//	@Success		200	{object}	dto.DuelResponseDTO
//	@Failure		403	{object}	utils.Response	"Not a participant"
//	@Failure		404	{object}	utils.Response	"Duel not found"
//	@Failure		409	{object}	utils.Response	"Duel is not active"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/duels/{id}/pause [post]
func (h *DuelHandler) PauseDuel(w http.ResponseWriter, r *http.Request) {
	h.actorTransition(w, r, h.duelService.Pause)
}

// ResumeDuel godoc
//
//	@Summary		Resume duel
//	@Tags			Duels
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Duel ID"
//	@Success		200	{object}	dto.DuelResponseDTO
//	@Failure		403	{object}	utils.Response	"Not a participant"
//	@Failure		404	{object}	utils.Response	"Duel not found"
//	@Failure		409	{object}	utils.Response	"Duel is not paused"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/duels/{id}/resume [post]
func (h *DuelHandler) ResumeDuel(w http.ResponseWriter, r *http.Request) {
	h.actorTransition(w, r, h.duelService.Resume)
}

// GetScores godoc
//
//	@Summary		Live scores
//	@Tags			Duels
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Duel ID"
//	@Success		200	{object}	dto.ScoresResponseDTO
//	@Failure		404	{object}	utils.Response	"Duel not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/duels/{id}/scores [get]
func (h *DuelHandler) GetScores(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}
	scores, err := h.scoreService.GetScores(r.Context(), sessionID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.ScoresResponseDTO{
		SessionID: sessionID,
		Host:      scores.Host,
		Guest:     scores.Guest,
	})
}

// GetEvents godoc
//
//	@Summary		Duel timeline
//	@Description	Events recorded for the duel in the order they happened.
//	@Tags			Duels
//	@Security		BearerAuth
//	@Produce		json
//	@Param			id	path		int	true	"Duel ID"
//	@Success		200	{array}		dto.DuelEventResponseDTO
//	@Success		204	{object}	utils.Response	"No events"
//	@Failure		404	{object}	utils.Response	"Duel not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/duels/{id}/events [get]
func (h *DuelHandler) GetEvents(w http.ResponseWriter, r *http.Request) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}
	events, err := h.duelService.Timeline(r.Context(), sessionID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	if len(events) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	response := make([]dto.DuelEventResponseDTO, len(events))
	for i, e := range events {
		response[i] = dto.DuelEventResponseDTO{
			ID:        e.ID,
			Type:      string(e.Type),
			ActorID:   e.ActorID,
			TargetID:  e.TargetID,
			Payload:   e.Payload,
			CreatedAt: e.CreatedAt,
		}
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func (h *DuelHandler) actorTransition(w http.ResponseWriter, r *http.Request, fn func(ctx context.Context, sessionID int, by *int) (*domain.LiveSession, error)) {
	sessionID, ok := sessionIDParam(w, r)
	if !ok {
		return
	}
	userID, _ := auth.UserID(r.Context())

	session, err := fn(r.Context(), sessionID, &userID)
	if err != nil {
		respondWithServiceError(w, err)
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toDuelDTO(session))
}

func sessionIDParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid duel id")
		return 0, false
	}
	return id, true
}

func respondWithServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, duelservice.ErrSessionNotFound), errors.Is(err, scoreservice.ErrSessionNotFound):
		utils.RespondWithError(w, http.StatusNotFound, "duel not found")
	case errors.Is(err, duelservice.ErrNotParticipant):
		utils.RespondWithError(w, http.StatusForbidden, err.Error())
	case errors.Is(err, duelservice.ErrInvalidSessionState):
		utils.RespondWithError(w, http.StatusConflict, err.Error())
	default:
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
	}
}

func toDuelDTO(s *domain.LiveSession) dto.DuelResponseDTO {
	return dto.DuelResponseDTO{
		ID:          s.ID,
		HostID:      s.HostID,
		GuestID:     s.GuestID,
		Status:      string(s.Status),
		HostScore:   s.HostScore,
		GuestScore:  s.GuestScore,
		WinnerID:    s.WinnerID,
		ChatRoomID:  s.ChatRoomID,
		ScheduledAt: s.ScheduledAt,
		StartedAt:   s.StartedAt,
		EndedAt:     s.EndedAt,
	}
}
