package adminservice

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
	userrepo "github.com/appdotbuilder/kasir-digital/internal/repo/user-repo"
)

type UserRepo interface {
	FindAll(ctx context.Context) ([]domain.User, error)
	Update(ctx context.Context, id int, fields userrepo.UpdateFields) (*domain.User, error)
	Count(ctx context.Context) (int, error)
	CountActiveWithRecentSession(ctx context.Context, since time.Time) (int, error)
}

type TransactionRepo interface {
	FindAllDetailed(ctx context.Context, status *string, userID *int, limit, offset int) ([]domain.TransactionDetail, error)
	CountAll(ctx context.Context, status *string, userID *int) (int, error)
	SumSuccessAmount(ctx context.Context) (decimal.Decimal, error)
}

var ErrUserNotFound = errors.New("user not found")

// activeUserWindow is the lookback for the "active users" statistic.
const activeUserWindow = 30 * 24 * time.Hour

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type Service struct {
	userRepo        UserRepo
	transactionRepo TransactionRepo
}

func New(userRepo UserRepo, transactionRepo TransactionRepo) *Service {
	return &Service{
		userRepo:        userRepo,
		transactionRepo: transactionRepo,
	}
}

// Stats computes the platform-wide counters on demand. Nothing is cached.
func (s *Service) Stats(ctx context.Context) (*domain.AdminStats, error) {
	totalUsers, err := s.userRepo.Count(ctx)
	if err != nil {
		return nil, err
	}
	totalTransactions, err := s.transactionRepo.CountAll(ctx, nil, nil)
	if err != nil {
		return nil, err
	}
	totalRevenue, err := s.transactionRepo.SumSuccessAmount(ctx)
	if err != nil {
		return nil, err
	}
	activeUsers, err := s.userRepo.CountActiveWithRecentSession(ctx, time.Now().Add(-activeUserWindow))
	if err != nil {
		return nil, err
	}

	return &domain.AdminStats{
		TotalUsers:        totalUsers,
		TotalTransactions: totalTransactions,
		TotalRevenue:      totalRevenue,
		ActiveUsers:       activeUsers,
	}, nil
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		zap.L().Error("failed to list users", zap.Error(err))
		return nil, err
	}
	for i := range users {
		users[i] = users[i].Sanitized()
	}
	return users, nil
}

func (s *Service) UpdateUser(ctx context.Context, id int, fields userrepo.UpdateFields) (*domain.User, error) {
	user, err := s.userRepo.Update(ctx, id, fields)
	if err != nil {
		zap.L().Error("failed to update user", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	sanitized := user.Sanitized()
	return &sanitized, nil
}

func (s *Service) ListTransactions(ctx context.Context, page, limit int, status *string, userID *int) ([]domain.TransactionDetail, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	transactions, err := s.transactionRepo.FindAllDetailed(ctx, status, userID, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.transactionRepo.CountAll(ctx, status, userID)
	if err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}
