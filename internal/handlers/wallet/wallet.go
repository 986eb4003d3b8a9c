package wallet

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/GlebRadaev/duelhub/internal/domain"
	"github.com/GlebRadaev/duelhub/internal/dto"
	"github.com/GlebRadaev/duelhub/internal/service/walletservice"
	"github.com/GlebRadaev/duelhub/pkg/auth"
	"github.com/GlebRadaev/duelhub/pkg/utils"
)

//go:generate mockgen -source=wallet.go -destination=mock_wallet.go -package=wallet

type Service interface {
	CreateWallet(ctx context.Context, userID int, currency string) (*domain.Wallet, error)
	GetWallet(ctx context.Context, userID int) (*domain.Wallet, error)
	History(ctx context.Context, userID int, limit int) ([]domain.LedgerEntry, error)
	Deposit(ctx context.Context, userID int, amount int64, description string) (*domain.LedgerEntry, error)
}

type WalletHandler struct {
	walletService Service
}

func New(walletService Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// CreateWallet godoc
//
//	@Summary		Create wallet
//	@Description	Provision the credits wallet of the authenticated user.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateWalletRequestDTO	false	"Wallet currency"
//	@Success		201		{object}	dto.WalletResponseDTO
//	@Failure		409		{object}	utils.Response	"Wallet already exists"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/wallet [post]
func (h *WalletHandler) CreateWallet(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req dto.CreateWalletRequestDTO
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
			return
		}
	}

	wallet, err := h.walletService.CreateWallet(r.Context(), userID, req.Currency)
	if err != nil {
		switch {
		case errors.Is(err, walletservice.ErrWalletExists):
			utils.RespondWithError(w, http.StatusConflict, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toWalletDTO(wallet))
}

// GetWallet godoc
//
//	@Summary		Get wallet
//	@Description	Current credits balance of the authenticated user.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.WalletResponseDTO
//	@Failure		404	{object}	utils.Response	"Wallet not found"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/wallet [get]
func (h *WalletHandler) GetWallet(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	wallet, err := h.walletService.GetWallet(r.Context(), userID)
	if err != nil {
		switch {
		case errors.Is(err, walletservice.ErrWalletNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, toWalletDTO(wallet))
}

// GetEntries godoc
//
//	@Summary		Ledger history
//	@Description	Ledger entries of the authenticated user's wallet, newest first.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Param			limit	query		int	false	"Max entries"
//	@Success		200		{array}		dto.LedgerEntryResponseDTO
//	@Success		204		{object}	utils.Response	"No entries"
//	@Failure		404		{object}	utils.Response	"Wallet not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/wallet/entries [get]
func (h *WalletHandler) GetEntries(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			utils.RespondWithError(w, http.StatusBadRequest, "invalid limit")
			return
		}
		limit = n
	}

	entries, err := h.walletService.History(r.Context(), userID, limit)
	if err != nil {
		switch {
		case errors.Is(err, walletservice.ErrWalletNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Failed to fetch ledger entries")
		}
		return
	}

	if len(entries) == 0 {
		w.WriteHeader(http.StatusNoContent)
		return
	}

	response := make([]dto.LedgerEntryResponseDTO, len(entries))
	for i := range entries {
		response[i] = toEntryDTO(&entries[i])
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// Deposit godoc
//
//	@Summary		Deposit credits
//	@Description	Top up the authenticated user's wallet.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.DepositRequestDTO	true	"Deposit amount"
//	@Success		201		{object}	dto.LedgerEntryResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid amount"
//	@Failure		404		{object}	utils.Response	"Wallet not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/wallet/deposits [post]
func (h *WalletHandler) Deposit(w http.ResponseWriter, r *http.Request) {
	userID, _ := auth.UserID(r.Context())

	var req dto.DepositRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	entry, err := h.walletService.Deposit(r.Context(), userID, req.Amount, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, walletservice.ErrInvalidAmount), errors.Is(err, walletservice.ErrDepositTooLarge):
			utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		case errors.Is(err, walletservice.ErrWalletNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}
	utils.RespondWithJSON(w, http.StatusCreated, toEntryDTO(entry))
}

func toEntryDTO(e *domain.LedgerEntry) dto.LedgerEntryResponseDTO {
	entry := dto.LedgerEntryResponseDTO{
		ID:           e.ID,
		Amount:       e.Amount,
		BalanceAfter: e.BalanceAfter,
		Type:         string(e.Type),
		Description:  e.Description,
		Meta:         e.Meta,
		CreatedAt:    e.CreatedAt,
	}
	if e.Reference != nil {
		entry.Reference = &dto.ReferenceDTO{Kind: string(e.Reference.Kind), ID: e.Reference.ID}
	}
	return entry
}

func toWalletDTO(w *domain.Wallet) dto.WalletResponseDTO {
	return dto.WalletResponseDTO{
		UserID:   w.UserID,
		Balance:  w.Balance,
		Currency: w.Currency,
	}
}
