package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	_ "github.com/GlebRadaev/duelhub/docs"
	duelhandlers "github.com/GlebRadaev/duelhub/internal/handlers/duels"
	gifthandlers "github.com/GlebRadaev/duelhub/internal/handlers/gifts"
	wallethandlers "github.com/GlebRadaev/duelhub/internal/handlers/wallet"
	"github.com/GlebRadaev/duelhub/internal/service"
	"github.com/GlebRadaev/duelhub/pkg/auth"
)

//go:generate mockgen -source=handlers.go -destination=mock_handlers.go -package=handlers

type WalletHandler interface {
	CreateWallet(w http.ResponseWriter, r *http.Request)
	GetWallet(w http.ResponseWriter, r *http.Request)
	GetEntries(w http.ResponseWriter, r *http.Request)
	Deposit(w http.ResponseWriter, r *http.Request)
}

type DuelHandler interface {
	CreateDuel(w http.ResponseWriter, r *http.Request)
	GetDuel(w http.ResponseWriter, r *http.Request)
	JoinDuel(w http.ResponseWriter, r *http.Request)
	EndDuel(w http.ResponseWriter, r *http.Request)
	CancelDuel(w http.ResponseWriter, r *http.Request)
	PauseDuel(w http.ResponseWriter, r *http.Request)
	ResumeDuel(w http.ResponseWriter, r *http.Request)
	GetScores(w http.ResponseWriter, r *http.Request)
	GetEvents(w http.ResponseWriter, r *http.Request)
}

type GiftHandler interface {
	SendGift(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	WalletHandler WalletHandler
	DuelHandler   DuelHandler
	GiftHandler   GiftHandler
	Identity      auth.IdentityProvider
}

func New(s *service.Services, identity auth.IdentityProvider) *Handlers {
	return &Handlers{
		WalletHandler: wallethandlers.New(s.WalletService),
		DuelHandler:   duelhandlers.New(s.DuelService, s.ScoreService),
		GiftHandler:   gifthandlers.New(s.GiftService),
		Identity:      identity,
	}
}

func (h *Handlers) InitRoutes(r chi.Router) chi.Router {
	r.Use(
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
	)
	r.Get("/swagger/*", httpSwagger.Handler(
		httpSwagger.URL("doc.json"),
	))
	r.Route("/api", func(r chi.Router) {
		r.Use(auth.Middleware(h.Identity))

		r.Route("/wallet", func(r chi.Router) {
			r.Get("/", h.WalletHandler.GetWallet)
			r.Post("/", h.WalletHandler.CreateWallet)
			r.Get("/entries", h.WalletHandler.GetEntries)
			r.Post("/deposits", h.WalletHandler.Deposit)
		})
		r.Route("/duels", func(r chi.Router) {
			r.Post("/", h.DuelHandler.CreateDuel)
			r.Route("/{id}", func(r chi.Router) {
				r.Get("/", h.DuelHandler.GetDuel)
				r.Post("/join", h.DuelHandler.JoinDuel)
				r.Post("/end", h.DuelHandler.EndDuel)
				r.Post("/cancel", h.DuelHandler.CancelDuel)
				r.Post("/pause", h.DuelHandler.PauseDuel)
				r.Post("/resume", h.DuelHandler.ResumeDuel)
				r.Get("/scores", h.DuelHandler.GetScores)
				r.Get("/events", h.DuelHandler.GetEvents)
				r.Post("/gifts", h.GiftHandler.SendGift)
			})
		})
	})

	return r
}
