package handlers

import (
	"net/http"

	_ "github.com/appdotbuilder/kasir-digital/docs"
	adminhandlers "github.com/appdotbuilder/kasir-digital/internal/handlers/admin"
	authhandlers "github.com/appdotbuilder/kasir-digital/internal/handlers/auth"
	cataloghandlers "github.com/appdotbuilder/kasir-digital/internal/handlers/catalog"
	transactionhandlers "github.com/appdotbuilder/kasir-digital/internal/handlers/transactions"
	wallethandlers "github.com/appdotbuilder/kasir-digital/internal/handlers/wallet"
	"github.com/appdotbuilder/kasir-digital/internal/service"
	"github.com/appdotbuilder/kasir-digital/pkg/auth"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"
)

type AuthHandler interface {
	Register(w http.ResponseWriter, r *http.Request)
	Login(w http.ResponseWriter, r *http.Request)
	Logout(w http.ResponseWriter, r *http.Request)
}

type WalletHandler interface {
	GetBalance(w http.ResponseWriter, r *http.Request)
	CreateDeposit(w http.ResponseWriter, r *http.Request)
}

type CatalogHandler interface {
	GetCategories(w http.ResponseWriter, r *http.Request)
	GetProducts(w http.ResponseWriter, r *http.Request)
}

type TransactionHandler interface {
	Create(w http.ResponseWriter, r *http.Request)
	List(w http.ResponseWriter, r *http.Request)
}

type AdminHandler interface {
	GetStats(w http.ResponseWriter, r *http.Request)
	GetUsers(w http.ResponseWriter, r *http.Request)
	UpdateUser(w http.ResponseWriter, r *http.Request)
	GetTransactions(w http.ResponseWriter, r *http.Request)
}

type Handlers struct {
	AuthHandler        AuthHandler
	WalletHandler      WalletHandler
	CatalogHandler     CatalogHandler
	TransactionHandler TransactionHandler
	AdminHandler       AdminHandler

	sessionValidator auth.SessionValidator
}

func New(s *service.Services) *Handlers {
	return &Handlers{
		AuthHandler:        authhandlers.New(s.AuthService),
		WalletHandler:      wallethandlers.New(s.WalletService),
		CatalogHandler:     cataloghandlers.New(s.CatalogService),
		TransactionHandler: transactionhandlers.New(s.PurchaseService),
		AdminHandler:       adminhandlers.New(s.AdminService),

		sessionValidator: s.AuthService,
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
		r.Route("/auth", func(r chi.Router) {
			r.Post("/register", h.AuthHandler.Register)
			r.Post("/login", h.AuthHandler.Login)

			r.Group(func(r chi.Router) {
				r.Use(auth.SessionMiddleware(h.sessionValidator))
				r.Post("/logout", h.AuthHandler.Logout)
			})
		})
		r.Route("/catalog", func(r chi.Router) {
			r.Get("/categories", h.CatalogHandler.GetCategories)
			r.Get("/products", h.CatalogHandler.GetProducts)
		})

		r.Group(func(r chi.Router) {
			r.Use(auth.SessionMiddleware(h.sessionValidator))
			r.Route("/wallet", func(r chi.Router) {
				r.Get("/balance", h.WalletHandler.GetBalance)
				r.Post("/deposit", h.WalletHandler.CreateDeposit)
			})
			r.Route("/transactions", func(r chi.Router) {
				r.Post("/", h.TransactionHandler.Create)
				r.Get("/", h.TransactionHandler.List)
			})
			r.Route("/admin", func(r chi.Router) {
				r.Use(auth.AdminMiddleware)
				r.Get("/stats", h.AdminHandler.GetStats)
				r.Get("/users", h.AdminHandler.GetUsers)
				r.Patch("/users/{id}", h.AdminHandler.UpdateUser)
				r.Get("/transactions", h.AdminHandler.GetTransactions)
			})
		})
	})

	return r
}
