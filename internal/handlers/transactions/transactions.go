package transactions

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
	"github.com/appdotbuilder/kasir-digital/internal/dto"
	"github.com/appdotbuilder/kasir-digital/internal/service/purchaseservice"
	"github.com/appdotbuilder/kasir-digital/pkg/auth"
	"github.com/appdotbuilder/kasir-digital/pkg/utils"
)

type Service interface {
	Purchase(ctx context.Context, userID, productID int, customerNumber string, amount decimal.Decimal) (*domain.Transaction, error)
	ListByUser(ctx context.Context, userID, page, limit int, status *string) ([]domain.Transaction, int, error)
}

type TransactionHandler struct {
	purchaseService Service
}

func New(purchaseService Service) *TransactionHandler {
	return &TransactionHandler{
		purchaseService: purchaseService,
	}
}

// Create godoc
//
//	@Summary		Buy a digital product
//	@Description	Debit the wallet, fulfill through the provider, refund on failure.
//	@Tags			Transactions
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.CreateTransactionRequestDTO	true	"Purchase request body"
//	@Success		200		{object}	dto.TransactionDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		402		{object}	utils.Response	"Insufficient balance"
//	@Failure		404		{object}	utils.Response	"Product or wallet not found"
//	@Failure		422		{object}	utils.Response	"Amount does not match product price"
//	@Failure		502		{object}	utils.Response	"Provider unavailable"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/transactions [post]
func (h *TransactionHandler) Create(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())

	var req dto.CreateTransactionRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	transaction, err := h.purchaseService.Purchase(r.Context(), user.ID, req.ProductID, req.CustomerNumber, req.Amount)
	if err != nil {
		switch {
		case errors.Is(err, purchaseservice.ErrProductUnavailable),
			errors.Is(err, purchaseservice.ErrWalletNotFound):
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
		case errors.Is(err, purchaseservice.ErrInsufficientFunds):
			utils.RespondWithError(w, http.StatusPaymentRequired, err.Error())
		case errors.Is(err, purchaseservice.ErrAmountMismatch):
			utils.RespondWithError(w, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, purchaseservice.ErrProviderUnavailable):
			utils.RespondWithError(w, http.StatusBadGateway, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.NewTransactionDTO(*transaction))
}

// List godoc
//
//	@Summary		List own transactions
//	@Description	Paginated purchase history for the authenticated user, newest first.
//	@Tags			Transactions
//	@Security		BearerAuth
//	@Produce		json
//	@Param			page	query		int		false	"Page number"
//	@Param			limit	query		int		false	"Page size"
//	@Param			status	query		string	false	"Status filter"
//	@Success		200		{object}	dto.TransactionListResponseDTO
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/transactions [get]
func (h *TransactionHandler) List(w http.ResponseWriter, r *http.Request) {
	user := auth.UserFromContext(r.Context())
	page, limit, status := ParseListQuery(r)

	transactions, total, err := h.purchaseService.ListByUser(r.Context(), user.ID, page, limit, status)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := dto.TransactionListResponseDTO{
		Transactions: make([]dto.TransactionDTO, len(transactions)),
		TotalCount:   total,
		Page:         page,
		Limit:        limit,
	}
	for i, transaction := range transactions {
		response.Transactions[i] = dto.NewTransactionDTO(transaction)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// ParseListQuery normalizes pagination query parameters.
func ParseListQuery(r *http.Request) (page, limit int, status *string) {
	page = 1
	limit = 10
	if raw := r.URL.Query().Get("page"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			page = v
		}
	}
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil && v > 0 {
			limit = v
		}
	}
	if raw := r.URL.Query().Get("status"); raw != "" {
		status = &raw
	}
	return page, limit, status
}
