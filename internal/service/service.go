package service

import (
	"github.com/appdotbuilder/kasir-digital/internal/handlers/admin"
	"github.com/appdotbuilder/kasir-digital/internal/handlers/auth"
	"github.com/appdotbuilder/kasir-digital/internal/handlers/catalog"
	"github.com/appdotbuilder/kasir-digital/internal/handlers/transactions"
	"github.com/appdotbuilder/kasir-digital/internal/handlers/wallet"

	pkgauth "github.com/appdotbuilder/kasir-digital/pkg/auth"

	"github.com/appdotbuilder/kasir-digital/internal/config"
	"github.com/appdotbuilder/kasir-digital/internal/pg"
	"github.com/appdotbuilder/kasir-digital/internal/provider"
	"github.com/appdotbuilder/kasir-digital/internal/repo"
	adminservice "github.com/appdotbuilder/kasir-digital/internal/service/adminservice"
	authservice "github.com/appdotbuilder/kasir-digital/internal/service/authservice"
	catalogservice "github.com/appdotbuilder/kasir-digital/internal/service/catalogservice"
	purchaseservice "github.com/appdotbuilder/kasir-digital/internal/service/purchaseservice"
	walletservice "github.com/appdotbuilder/kasir-digital/internal/service/walletservice"
)

type Services struct {
	AuthService     auth.Service
	WalletService   wallet.Service
	CatalogService  catalog.Service
	PurchaseService transactions.Service
	AdminService    admin.Service
}

func New(repo *repo.Repositories, txManager pg.TXManager, cfg *config.Config, fulfillment provider.Provider) *Services {
	authService := authservice.New(repo.UserRepo, repo.SessionRepo, repo.WalletRepo, &pkgauth.HashService{}, &pkgauth.TokenService{})
	walletService := walletservice.New(repo.WalletRepo, txManager)
	catalogService := catalogservice.New(repo.ProductRepo)
	purchaseService := purchaseservice.New(repo.ProductRepo, repo.WalletRepo, repo.TransactionRepo, txManager, fulfillment, cfg.ProviderTimeout)
	adminService := adminservice.New(repo.UserRepo, repo.TransactionRepo)

	return &Services{
		AuthService:     authService,
		WalletService:   walletService,
		CatalogService:  catalogService,
		PurchaseService: purchaseService,
		AdminService:    adminService,
	}
}
