package wallet

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
	"github.com/appdotbuilder/kasir-digital/internal/dto"
	"github.com/appdotbuilder/kasir-digital/pkg/auth"
	"github.com/appdotbuilder/kasir-digital/pkg/utils"
)

type Service interface {
	GetBalance(ctx context.Context, userID int) (*domain.Wallet, error)
	CreateDeposit(ctx context.Context, userID int, amount decimal.Decimal, paymentMethod string) (*domain.Deposit, error)
}

type WalletHandler struct {
	walletService Service
}

func New(walletService Service) *WalletHandler {
	return &WalletHandler{
		walletService: walletService,
	}
}

// GetBalance godoc
//
//	@Summary		Get wallet balance
//	@Description	Return the authenticated user's wallet balance, creating the wallet on first use.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.BalanceResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/wallet/balance [get]
func (h *WalletHandler) GetBalance(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	wallet, err := h.walletService.GetBalance(r.Context(), user.ID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.BalanceResponseDTO{
		Balance:  wallet.Balance,
		WalletID: wallet.ID,
	})
}

// CreateDeposit godoc
//
//	@Summary		Top up the wallet
//	@Description	Create a deposit and credit the wallet once payment is confirmed.
//	@Tags			Wallet
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateDepositRequestDTO	true	"Deposit request body"
//	@Success		200		{object}	dto.DepositDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/wallet/deposit [post]
func (h *WalletHandler) CreateDeposit(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	var req dto.CreateDepositRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}
	if !req.Amount.IsPositive() {
		utils.RespondWithError(w, http.StatusBadRequest, "Amount must be positive")
		return
	}

	deposit, err := h.walletService.CreateDeposit(r.Context(), user.ID, req.Amount, req.PaymentMethod)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewDepositDTO(*deposit))
}
