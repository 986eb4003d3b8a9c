package gifts

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/GlebRadaev/duelhub/internal/dto"
	"github.com/GlebRadaev/duelhub/internal/service/duelservice"
	"github.com/GlebRadaev/duelhub/internal/service/giftservice"
	"github.com/GlebRadaev/duelhub/internal/service/walletservice"
	"github.com/GlebRadaev/duelhub/pkg/auth"
	"github.com/GlebRadaev/duelhub/pkg/utils"
)

//go:generate mockgen -source=gifts.go -destination=mock_gifts.go -package=gifts

type Service interface {
	SendGift(ctx context.Context, req giftservice.SendGiftRequest) (*giftservice.Result, error)
}

type GiftHandler struct {
	giftService Service
}

func New(giftService Service) *GiftHandler {
	return &GiftHandler{
		giftService: giftService,
	}
}

// SendGift godoc
//
//	@Summary		Send gift
//	@Description	Buy gifts for a duel participant. The sender pays the gift value per unit and the recipient's side scores the total.
//	@Tags			Gifts
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"Duel ID"
//	@Param			request	body		dto.SendGiftRequestDTO	true	"Gift"
//	@Success		200		{object}	dto.SendGiftResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request"
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Failure		404		{object}	utils.Response	"Duel or wallet not found"
//	@Failure		409		{object}	utils.Response	"Duel is not active"
//	@Failure		422		{object}	utils.Response	"Unknown gift or recipient"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/duels/{id}/gifts [post]
func (h *GiftHandler) SendGift(w http.ResponseWriter, r *http.Request) {
	sessionID, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || sessionID <= 0 {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid duel id")
		return
	}
	userID, _ := auth.UserID(r.Context())

	var req dto.SendGiftRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}
	if req.Quantity < 0 || req.Quantity > giftservice.MaxQuantity {
		utils.RespondWithError(w, http.StatusBadRequest, giftservice.ErrInvalidQuantity.Error())
		return
	}

	result, err := h.giftService.SendGift(r.Context(), giftservice.SendGiftRequest{
		SessionID:   sessionID,
		SenderID:    userID,
		RecipientID: req.RecipientID,
		GiftID:      req.GiftID,
		Quantity:    req.Quantity,
	})
	if err != nil {
		switch {
		case errors.Is(err, giftservice.ErrInvalidQuantity):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, walletservice.ErrInsufficientBalance):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, duelservice.ErrSessionNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "duel not found")
		case errors.Is(err, walletservice.ErrWalletNotFound):
			utils.RespondWithError(w, http.StatusNotFound, "wallet not found")
		case errors.Is(err, duelservice.ErrInvalidSessionState):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		case errors.Is(err, giftservice.ErrUnknownGift), errors.Is(err, giftservice.ErrInvalidRecipient):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, giftservice.ErrScoreNotRecorded):
			utils.RespondWithError(w, http.StatusInternalServerError, giftservice.ErrScoreNotRecorded.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	response := dto.SendGiftResponseDTO{
		GiftName: result.Gift.Name,
		Party:    string(result.Party),
		Total:    result.Total,
		Host:     result.Scores.Host,
		Guest:    result.Scores.Guest,
	}
	if result.Event != nil {
		response.EventID = result.Event.ID
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
