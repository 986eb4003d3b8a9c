package service

import (
	"time"

	"github.com/GlebRadaev/duelhub/internal/handlers/duels"
	"github.com/GlebRadaev/duelhub/internal/handlers/gifts"
	"github.com/GlebRadaev/duelhub/internal/handlers/wallet"
	"github.com/GlebRadaev/duelhub/internal/reconciler"
	"github.com/GlebRadaev/duelhub/internal/repo"
	"github.com/GlebRadaev/duelhub/internal/service/duelservice"
	"github.com/GlebRadaev/duelhub/internal/service/giftservice"
	"github.com/GlebRadaev/duelhub/internal/service/ledgerservice"
	"github.com/GlebRadaev/duelhub/internal/service/scoreservice"
	"github.com/GlebRadaev/duelhub/internal/service/walletservice"
)

type ScoreService interface {
	duels.ScoreService
	reconciler.ScoreSyncer
}

type Services struct {
	WalletService wallet.Service
	DuelService   duels.Service
	ScoreService  ScoreService
	GiftService   gifts.Service
}

// Deps are the non-database collaborators shared by the services.
type Deps struct {
	Cache    scoreservice.Cache
	Emitter  scoreservice.Emitter
	Catalog  giftservice.Catalog
	ScoreTTL time.Duration
}

func New(repo *repo.Repositories, deps Deps) *Services {
	ledgerService := ledgerservice.New(repo.LedgerRepo, repo.WalletRepo, repo.TXManager)
	walletService := walletservice.New(repo.WalletRepo, ledgerService, repo.TXManager)
	scoreService := scoreservice.New(deps.Cache, repo.SessionRepo, deps.Emitter, deps.ScoreTTL)
	duelService := duelservice.New(repo.SessionRepo, repo.EventRepo, scoreService, deps.Emitter, repo.TXManager)
	giftService := giftservice.New(
		repo.SessionRepo,
		walletService,
		scoreService,
		deps.Catalog,
		repo.EventRepo,
		repo.ChatRepo,
		deps.Emitter,
		repo.TXManager,
	)

	return &Services{
		WalletService: walletService,
		DuelService:   duelService,
		ScoreService:  scoreService,
		GiftService:   giftService,
	}
}
