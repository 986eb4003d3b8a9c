package repo

import (
	"github.com/GlebRadaev/duelhub/internal/pg"
	chatrepo "github.com/GlebRadaev/duelhub/internal/repo/chat-repo"
	eventrepo "github.com/GlebRadaev/duelhub/internal/repo/event-repo"
	ledgerrepo "github.com/GlebRadaev/duelhub/internal/repo/ledger-repo"
	sessionrepo "github.com/GlebRadaev/duelhub/internal/repo/session-repo"
	walletrepo "github.com/GlebRadaev/duelhub/internal/repo/wallet-repo"
)

type Repositories struct {
	WalletRepo  *walletrepo.Repository
	LedgerRepo  *ledgerrepo.Repository
	SessionRepo *sessionrepo.Repository
	EventRepo   *eventrepo.Repository
	ChatRepo    *chatrepo.Repository
	TXManager   pg.TXManager
}

func New(conn pg.Database, txManager pg.TXManager) *Repositories {
	return &Repositories{
		WalletRepo:  walletrepo.New(conn),
		LedgerRepo:  ledgerrepo.New(conn),
		SessionRepo: sessionrepo.New(conn),
		EventRepo:   eventrepo.New(conn),
		ChatRepo:    chatrepo.New(conn),
		TXManager:   txManager,
	}
}
