package auth

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
	"github.com/appdotbuilder/kasir-digital/internal/dto"
	"github.com/appdotbuilder/kasir-digital/internal/service/authservice"
	pkgauth "github.com/appdotbuilder/kasir-digital/pkg/auth"
	"github.com/appdotbuilder/kasir-digital/pkg/utils"
)

type Service interface {
	Register(ctx context.Context, email, password, fullName string, phoneNumber *string) (*domain.User, string, error)
	Login(ctx context.Context, email, password string) (*domain.User, string, error)
	Logout(ctx context.Context, sessionID string) error
	ValidateSession(ctx context.Context, sessionID string) (*domain.User, error)
}

type AuthHandler struct {
	authService Service
}

func New(authService Service) *AuthHandler {
	return &AuthHandler{
		authService: authService,
	}
}

// Register godoc
//
//	@Summary		Register a new user
//	@Description	Create a user account with an empty wallet and start a session
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.RegisterRequestDTO	true	"Register request body"
//	@Success		200		{object}	dto.AuthResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		409		{object}	utils.Response	"Email already registered"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/auth/register [post]
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, sessionID, err := h.authService.Register(r.Context(), req.Email, req.Password, req.FullName, req.PhoneNumber)
	if err != nil {
		if errors.Is(err, authservice.ErrEmailTaken) {
			utils.RespondWithError(w, http.StatusConflict, err.Error())
			return
		}
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.AuthResponseDTO{
		User:      dto.NewUserDTO(*user),
		SessionID: sessionID,
	})
}

// Login godoc
//
//	@Summary		Authenticate user
//	@Description	Log in with email and password and start a session
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		dto.LoginRequestDTO	true	"Login request body"
//	@Success		200		{object}	dto.AuthResponseDTO
//	@Failure		400		{object}	utils.Response	"Invalid request body"
//	@Failure		401		{object}	utils.Response	"Invalid credentials"
//	@Failure		403		{object}	utils.Response	"Account inactive"
//	@Failure		500		{object}	utils.Response	"Internal server error"
//	@Router			/api/auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := dto.Validate(&req); err != nil {
		utils.RespondWithError(w, http.StatusBadRequest, err.Error())
		return
	}

	user, sessionID, err := h.authService.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, authservice.ErrInvalidCredentials):
			utils.RespondWithError(w, http.StatusUnauthorized, err.Error())
		case errors.Is(err, authservice.ErrAccountInactive):
			utils.RespondWithError(w, http.StatusForbidden, err.Error())
		default:
			utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		}
		return
	}

	utils.RespondWithJSON(w, http.StatusOK, dto.AuthResponseDTO{
		User:      dto.NewUserDTO(*user),
		SessionID: sessionID,
	})
}

// Logout godoc
//
//	@Summary		End the current session
//	@Description	Delete the session. Succeeds even if the session is already gone.
//	@Tags			Auth
//	@Security		BearerAuth
//	@Produce		json
//	@Success		200	{object}	dto.LogoutResponseDTO
//	@Failure		401	{object}	utils.Response	"User not authorized"
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	sessionID, _ := r.Context().Value(pkgauth.SessionIDKey).(string)

	if err := h.authService.Logout(r.Context(), sessionID); err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}
	utils.RespondWithJSON(w, http.StatusOK, dto.LogoutResponseDTO{Success: true})
}
