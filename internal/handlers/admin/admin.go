package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
	"github.com/appdotbuilder/kasir-digital/internal/dto"
	userrepo "github.com/appdotbuilder/kasir-digital/internal/repo/user-repo"
	"github.com/appdotbuilder/kasir-digital/internal/service/adminservice"
	"github.com/appdotbuilder/kasir-digital/pkg/utils"
)

type Service interface {
	Stats(ctx context.Context) (*domain.AdminStats, error)
	ListUsers(ctx context.Context) ([]domain.User, error)
	UpdateUser(ctx context.Context, id int, fields userrepo.UpdateFields) (*domain.User, error)
	ListTransactions(ctx context.Context, page, limit int, status *string, userID *int) ([]domain.TransactionDetail, int, error)
}

type AdminHandler struct {
	adminService Service
}

func New(adminService Service) *AdminHandler {
	return &AdminHandler{
		adminService: adminService,
	}
}

// GetStats godoc
//
//	@Summary		Platform statistics
//	@Description	Totals for users, transactions, revenue and recently active users.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.AdminStatsDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin access required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/stats [get]
func (h *AdminHandler) GetStats(w http.ResponseWriter, r *http.Request) {
	stats, err := h.adminService.Stats(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.AdminStatsDTO{
		TotalUsers:        stats.TotalUsers,
		TotalTransactions: stats.TotalTransactions,
		TotalRevenue:      stats.TotalRevenue,
		ActiveUsers:       stats.ActiveUsers,
	})
}

// GetUsers godoc
//
//	@Summary		List all users
//	@Description	Every registered user, without password hashes.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{array}		dto.UserDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		403	{object}	utils.Response	"Admin access required"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/users [get]
func (h *AdminHandler) GetUsers(w http.ResponseWriter, r *http.Request) {
	users, err := h.adminService.ListUsers(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.UserDTO, len(users))
	for i, user := range users {
		response[i] = dto.NewUserDTO(user)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// UpdateUser godoc
//
//	@Summary		Update a user
//	@Description	Partially update profile fields, activation flag or role.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int						true	"User ID"
//	@Param			request	body		dto.UpdateUserRequestDTO	true	"Fields to update"
//	@Success		200		{object}	dto.UserDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Admin access required"
//	@Failure		404		{object}	utils.Response	"User not found"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/users/{id} [patch]
func (h *AdminHandler) UpdateUser(w http.ResponseWriter, r *http.Request) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
		return
	}

	var req dto.UpdateUserRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, err := h.adminService.UpdateUser(r.Context(), id, userrepo.UpdateFields{
		FullName:    req.FullName,
		PhoneNumber: req.PhoneNumber,
		IsActive:    req.IsActive,
		Role:        req.Role,
	})
	if err != nil {
		if errors.Is(err, adminservice.ErrUserNotFound) {
			utils.RespondWithError(w, http.StatusNotFound, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.NewUserDTO(*user))
}

// GetTransactions godoc
//
//	@Summary		List all transactions
//	@Description	Paginated transactions across all users, with user and product details.
//	@Tags			Admin
//	@Security		BearerAuth
//	@Produce		json
//	@Param			page	query		int		false	"Page number"
//	@Param			limit	query		int		false	"Page size"
//	@Param			status	query		string	false	"Status filter"
//	@Param			user_id	query		int		false	"User filter"
//	@Success		200		{object}	dto.TransactionDetailListResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid user id"
//	@Failure		401		{object}	utils.Response	"User not authorized"
//	@Failure		403		{object}	utils.Response	"Admin access required"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/admin/transactions [get]
func (h *AdminHandler) GetTransactions(w http.ResponseWriter, r *http.Request) {
	page, limit, status := parseListQuery(r)

	var userID *int
	if raw := r.URL.Query().Get("user_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid user id")
			return
		}
		userID = &id
	}

	transactions, total, err := h.adminService.ListTransactions(r.Context(), page, limit, status, userID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := dto.TransactionDetailListResponseDTO{
		Transactions: make([]dto.TransactionDetailDTO, len(transactions)),
		TotalCount:   total,
		Page:         page,
		Limit:        limit,
	}
	for i, transaction := range transactions {
		response.Transactions[i] = dto.NewTransactionDetailDTO(transaction)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

func parseListQuery(r *http.Request) (page, limit int, status *string) {
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
