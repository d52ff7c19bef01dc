package adminservice

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
	userrepo "github.com/appdotbuilder/kasir-digital/internal/repo/user-repo"
)

func NewMock(t *testing.T) (*Service, *MockUserRepo, *MockTransactionRepo) {
	ctrl := gomock.NewController(t)
	userRepo := NewMockUserRepo(ctrl)
	transactionRepo := NewMockTransactionRepo(ctrl)

	service := New(userRepo, transactionRepo)
	defer ctrl.Finish()
	return service, userRepo, transactionRepo
}

func TestStats(t *testing.T) {
	service, userRepo, transactionRepo := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expected      *domain.AdminStats
		expectedError error
	}{
		{
			name: "Populated store",
			prepareMock: func() {
				userRepo.EXPECT().Count(context.Background()).Return(120, nil)
				transactionRepo.EXPECT().CountAll(context.Background(), nil, nil).Return(540, nil)
				transactionRepo.EXPECT().SumSuccessAmount(context.Background()).Return(decimal.NewFromInt(14310000), nil)
				userRepo.EXPECT().CountActiveWithRecentSession(context.Background(), gomock.Any()).Return(37, nil)
			},
			expected: &domain.AdminStats{
				TotalUsers:        120,
				TotalTransactions: 540,
				TotalRevenue:      decimal.NewFromInt(14310000),
				ActiveUsers:       37,
			},
		},
		{
			name: "Empty store yields zeros",
			prepareMock: func() {
				userRepo.EXPECT().Count(context.Background()).Return(0, nil)
				transactionRepo.EXPECT().CountAll(context.Background(), nil, nil).Return(0, nil)
				transactionRepo.EXPECT().SumSuccessAmount(context.Background()).Return(decimal.Zero, nil)
				userRepo.EXPECT().CountActiveWithRecentSession(context.Background(), gomock.Any()).Return(0, nil)
			},
			expected: &domain.AdminStats{
				TotalUsers:        0,
				TotalTransactions: 0,
				TotalRevenue:      decimal.Zero,
				ActiveUsers:       0,
			},
		},
		{
			name: "Error counting users",
			prepareMock: func() {
				userRepo.EXPECT().Count(context.Background()).Return(0, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
		{
			name: "Error summing revenue",
			prepareMock: func() {
				userRepo.EXPECT().Count(context.Background()).Return(120, nil)
				transactionRepo.EXPECT().CountAll(context.Background(), nil, nil).Return(540, nil)
				transactionRepo.EXPECT().SumSuccessAmount(context.Background()).Return(decimal.Zero, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			stats, err := service.Stats(context.Background())
			if tt.expectedError != nil {
				assert.Nil(t, stats)
				assert.EqualError(t, err, tt.expectedError.Error())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expected, stats)
		})
	}
}

func TestListUsers(t *testing.T) {
	service, userRepo, _ := NewMock(t)

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
		verify        func(t *testing.T, users []domain.User)
	}{
		{
			name: "Password hashes are stripped",
			prepareMock: func() {
				userRepo.EXPECT().FindAll(context.Background()).Return([]domain.User{
					{ID: 1, Email: "a@example.com", PasswordHash: "hash-a"},
					{ID: 2, Email: "b@example.com", PasswordHash: "hash-b"},
				}, nil)
			},
			verify: func(t *testing.T, users []domain.User) {
				assert.Len(t, users, 2)
				for _, user := range users {
					assert.Empty(t, user.PasswordHash)
				}
			},
		},
		{
			name: "Error listing users",
			prepareMock: func() {
				userRepo.EXPECT().FindAll(context.Background()).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			users, err := service.ListUsers(context.Background())
			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
				return
			}
			assert.NoError(t, err)
			tt.verify(t, users)
		})
	}
}

func TestUpdateUser(t *testing.T) {
	service, userRepo, _ := NewMock(t)

	fullName := "Jane Doe"
	isActive := false
	fields := userrepo.UpdateFields{FullName: &fullName, IsActive: &isActive}

	tests := []struct {
		name          string
		prepareMock   func()
		expectedError error
	}{
		{
			name: "Successful update",
			prepareMock: func() {
				userRepo.EXPECT().Update(context.Background(), 1, fields).
					Return(&domain.User{ID: 1, FullName: fullName, IsActive: isActive, PasswordHash: "hash"}, nil)
			},
		},
		{
			name: "User not found",
			prepareMock: func() {
				userRepo.EXPECT().Update(context.Background(), 1, fields).Return(nil, nil)
			},
			expectedError: ErrUserNotFound,
		},
		{
			name: "Error updating user",
			prepareMock: func() {
				userRepo.EXPECT().Update(context.Background(), 1, fields).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			user, err := service.UpdateUser(context.Background(), 1, fields)
			if tt.expectedError != nil {
				assert.Nil(t, user)
				assert.EqualError(t, err, tt.expectedError.Error())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, fullName, user.FullName)
			assert.Empty(t, user.PasswordHash)
		})
	}
}

func TestListTransactions(t *testing.T) {
	service, _, transactionRepo := NewMock(t)

	status := "success"
	userID := 3
	details := []domain.TransactionDetail{
		{Transaction: domain.Transaction{ID: 1, UserID: 3}, UserEmail: "user@example.com", ProductName: "Telkomsel 25K"},
	}

	tests := []struct {
		name          string
		page          int
		limit         int
		status        *string
		userID        *int
		prepareMock   func()
		expectedTotal int
		expectedError error
	}{
		{
			name:  "Defaults applied",
			page:  0,
			limit: 0,
			prepareMock: func() {
				transactionRepo.EXPECT().FindAllDetailed(context.Background(), nil, nil, 10, 0).Return(details, nil)
				transactionRepo.EXPECT().CountAll(context.Background(), nil, nil).Return(1, nil)
			},
			expectedTotal: 1,
		},
		{
			name:   "Filtered by status and user",
			page:   2,
			limit:  20,
			status: &status,
			userID: &userID,
			prepareMock: func() {
				transactionRepo.EXPECT().FindAllDetailed(context.Background(), &status, &userID, 20, 20).Return(details, nil)
				transactionRepo.EXPECT().CountAll(context.Background(), &status, &userID).Return(21, nil)
			},
			expectedTotal: 21,
		},
		{
			name:  "Error listing transactions",
			page:  1,
			limit: 10,
			prepareMock: func() {
				transactionRepo.EXPECT().FindAllDetailed(context.Background(), nil, nil, 10, 0).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			result, total, err := service.ListTransactions(context.Background(), tt.page, tt.limit, tt.status, tt.userID)
			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedTotal, total)
			assert.Equal(t, details, result)
		})
	}
}
