package authservice

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
	"github.com/appdotbuilder/kasir-digital/pkg/auth"
)

type UserRepo interface {
	FindByEmail(ctx context.Context, email string) (*domain.User, error)
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
}

type SessionRepo interface {
	Create(ctx context.Context, session *domain.Session) (*domain.Session, error)
	Delete(ctx context.Context, sessionID string) error
	FindWithUser(ctx context.Context, sessionID string) (*domain.Session, *domain.User, error)
}

type WalletRepo interface {
	GetOrCreateWallet(ctx context.Context, userID int) (*domain.Wallet, error)
}

var (
	ErrEmailTaken = errors.New("email already registered")
	// ErrInvalidCredentials covers both unknown email and wrong password so
	// responses never reveal whether an account exists.
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrAccountInactive    = errors.New("account is inactive")
)

const (
	registerSessionTTL = 30 * 24 * time.Hour
	loginSessionTTL    = 24 * time.Hour
)

type Service struct {
	userRepo     UserRepo
	sessionRepo  SessionRepo
	walletRepo   WalletRepo
	hashService  auth.HashServiceInterface
	tokenService auth.TokenServiceInterface
}

func New(userRepo UserRepo, sessionRepo SessionRepo, walletRepo WalletRepo, hashService auth.HashServiceInterface, tokenService auth.TokenServiceInterface) *Service {
	return &Service{
		userRepo:     userRepo,
		sessionRepo:  sessionRepo,
		walletRepo:   walletRepo,
		hashService:  hashService,
		tokenService: tokenService,
	}
}

// Register creates the user, an empty wallet and a long-lived session.
func (s *Service) Register(ctx context.Context, email, password, fullName string, phoneNumber *string) (*domain.User, string, error) {
	existingUser, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, "", err
	}
	if existingUser != nil {
		zap.L().Info("email already registered", zap.String("email", email))
		return nil, "", ErrEmailTaken
	}

	hashedPassword, err := s.hashService.HashPassword(password)
	if err != nil {
		zap.L().Error("can't hash password: ", zap.Error(err))
		return nil, "", err
	}

	user := &domain.User{
		Email:        email,
		PasswordHash: hashedPassword,
		FullName:     fullName,
		PhoneNumber:  phoneNumber,
		Role:         domain.RoleUser,
		IsActive:     true,
	}
	newUser, err := s.userRepo.Create(ctx, user)
	if err != nil {
		zap.L().Error("can't create user: ", zap.Error(err))
		return nil, "", err
	}

	if _, err := s.walletRepo.GetOrCreateWallet(ctx, newUser.ID); err != nil {
		zap.L().Error("can't create wallet: ", zap.Error(err))
		return nil, "", err
	}

	sessionID, err := s.createSession(ctx, newUser.ID, registerSessionTTL)
	if err != nil {
		return nil, "", err
	}

	zap.L().Info("user successfully registered", zap.String("email", email))
	return newUser, sessionID, nil
}

func (s *Service) Login(ctx context.Context, email, password string) (*domain.User, string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		zap.L().Error("can't find user: ", zap.Error(err))
		return nil, "", err
	}
	if user == nil {
		return nil, "", ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, "", ErrAccountInactive
	}
	if ok := s.hashService.ComparePassword(user.PasswordHash, password); !ok {
		return nil, "", ErrInvalidCredentials
	}

	sessionID, err := s.createSession(ctx, user.ID, loginSessionTTL)
	if err != nil {
		return nil, "", err
	}

	zap.L().Info("user successfully authenticated", zap.String("email", email))
	return user, sessionID, nil
}

// Logout deletes the session. It is idempotent: unknown or empty session ids
// succeed too.
func (s *Service) Logout(ctx context.Context, sessionID string) error {
	if sessionID == "" {
		return nil
	}
	return s.sessionRepo.Delete(ctx, sessionID)
}

// ValidateSession returns the owning user for a live session, or nil when the
// session is unknown, expired or the user is inactive. Absence is not an
// error: it is the expected outcome for every unauthenticated request.
func (s *Service) ValidateSession(ctx context.Context, sessionID string) (*domain.User, error) {
	if sessionID == "" {
		return nil, nil
	}
	session, user, err := s.sessionRepo.FindWithUser(ctx, sessionID)
	if err != nil {
		zap.L().Error("can't validate session", zap.Error(err))
		return nil, err
	}
	if session == nil {
		return nil, nil
	}
	// expires_at equal to now counts as expired.
	if !session.ExpiresAt.After(time.Now()) {
		return nil, nil
	}
	if !user.IsActive {
		return nil, nil
	}
	return user, nil
}

func (s *Service) createSession(ctx context.Context, userID int, ttl time.Duration) (string, error) {
	sessionID, err := s.tokenService.GenerateSessionID()
	if err != nil {
		zap.L().Error("can't generate session id: ", zap.Error(err))
		return "", err
	}
	session := &domain.Session{
		ID:        sessionID,
		UserID:    userID,
		ExpiresAt: time.Now().Add(ttl),
	}
	if _, err := s.sessionRepo.Create(ctx, session); err != nil {
		zap.L().Error("can't create session: ", zap.Error(err))
		return "", err
	}
	return sessionID, nil
}
