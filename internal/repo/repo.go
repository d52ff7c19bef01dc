package repo

import (
	"github.com/appdotbuilder/kasir-digital/internal/pg"
	productrepo "github.com/appdotbuilder/kasir-digital/internal/repo/product-repo"
	sessionrepo "github.com/appdotbuilder/kasir-digital/internal/repo/session-repo"
	transactionrepo "github.com/appdotbuilder/kasir-digital/internal/repo/transaction-repo"
	userrepo "github.com/appdotbuilder/kasir-digital/internal/repo/user-repo"
	walletrepo "github.com/appdotbuilder/kasir-digital/internal/repo/wallet-repo"
)

type Repositories struct {
	UserRepo        *userrepo.Repository
	WalletRepo      *walletrepo.Repository
	ProductRepo     *productrepo.Repository
	TransactionRepo *transactionrepo.Repository
	SessionRepo     *sessionrepo.Repository
}

func New(conn pg.Database) *Repositories {
	return &Repositories{
		UserRepo:        userrepo.New(conn),
		WalletRepo:      walletrepo.New(conn),
		ProductRepo:     productrepo.New(conn),
		TransactionRepo: transactionrepo.New(conn),
		SessionRepo:     sessionrepo.New(conn),
	}
}
