package wallet

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
	"github.com/appdotbuilder/kasir-digital/internal/dto"
	"github.com/appdotbuilder/kasir-digital/pkg/auth"
	"github.com/appdotbuilder/kasir-digital/pkg/utils"
)

func NewMock(t *testing.T) (*WalletHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func authorized(req *http.Request) *http.Request {
	user := &domain.User{ID: 1, Email: "user@example.com", Role: domain.RoleUser, IsActive: true}
	return req.WithContext(context.WithValue(req.Context(), auth.UserKey, user))
}

func TestGetBalanceHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
	}{
		{
			name: "Balance returned",
			prepareMock: func() {
				service.EXPECT().GetBalance(gomock.Any(), 1).Return(&domain.Wallet{
					ID:      7,
					UserID:  1,
					Balance: decimal.NewFromInt(150000),
				}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name: "Service failure",
			prepareMock: func() {
				service.EXPECT().GetBalance(gomock.Any(), 1).Return(nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := authorized(httptest.NewRequest("GET", "/api/wallet/balance", nil))
			rr := httptest.NewRecorder()

			handler.GetBalance(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedCode == http.StatusOK {
				var resp dto.BalanceResponseDTO
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, 7, resp.WalletID)
				assert.True(t, decimal.NewFromInt(150000).Equal(resp.Balance))
			}
		})
	}
}

func TestCreateDepositHandler(t *testing.T) {
	handler, service := NewMock(t)
	amount := decimal.NewFromInt(50000)

	tests := []struct {
		name          string
		body          string
		prepareMock   func()
		expectedCode  int
		expectedError string
	}{
		{
			name: "Successful deposit",
			body: `{"amount":"50000","payment_method":"bank_transfer"}`,
			prepareMock: func() {
				service.EXPECT().
					CreateDeposit(gomock.Any(), 1, amount, "bank_transfer").
					Return(&domain.Deposit{ID: 10, WalletID: 7, Amount: amount, Status: domain.DepositStatusCompleted, PaymentMethod: "bank_transfer"}, nil)
			},
			expectedCode: http.StatusOK,
		},
		{
			name:          "Invalid request body",
			body:          `{invalid json`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid request body",
		},
		{
			name:         "Missing payment method",
			body:         `{"amount":"50000"}`,
			prepareMock:  func() {},
			expectedCode: http.StatusBadRequest,
		},
		{
			name:          "Zero amount",
			body:          `{"amount":"0","payment_method":"bank_transfer"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Amount must be positive",
		},
		{
			name:          "Negative amount",
			body:          `{"amount":"-100","payment_method":"bank_transfer"}`,
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Amount must be positive",
		},
		{
			name: "Service failure",
			body: `{"amount":"50000","payment_method":"bank_transfer"}`,
			prepareMock: func() {
				service.EXPECT().
					CreateDeposit(gomock.Any(), 1, amount, "bank_transfer").
					Return(nil, errors.New("database error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := authorized(httptest.NewRequest("POST", "/api/wallet/deposit", bytes.NewReader([]byte(tt.body))))
			rr := httptest.NewRecorder()

			handler.CreateDeposit(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			}
			if tt.expectedCode == http.StatusOK {
				var resp dto.DepositDTO
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, domain.DepositStatusCompleted, resp.Status)
			}
		})
	}
}
