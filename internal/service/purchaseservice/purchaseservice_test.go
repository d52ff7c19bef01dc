package purchaseservice

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
	"github.com/appdotbuilder/kasir-digital/internal/pg"
	"github.com/appdotbuilder/kasir-digital/internal/provider"
	walletrepo "github.com/appdotbuilder/kasir-digital/internal/repo/wallet-repo"
)

func NewMock(t *testing.T) (*Service, *MockProductRepo, *MockWalletRepo, *MockTransactionRepo, *pg.MockTXManager, *provider.MockProvider) {
	ctrl := gomock.NewController(t)
	productRepo := NewMockProductRepo(ctrl)
	walletRepo := NewMockWalletRepo(ctrl)
	transactionRepo := NewMockTransactionRepo(ctrl)
	txManager := pg.NewMockTXManager(ctrl)
	fulfillment := provider.NewMockProvider(ctrl)

	service := New(productRepo, walletRepo, transactionRepo, txManager, fulfillment, 5*time.Second)
	defer ctrl.Finish()
	return service, productRepo, walletRepo, transactionRepo, txManager, fulfillment
}

func TestPurchase(t *testing.T) {
	service, productRepo, walletRepo, transactionRepo, txManager, fulfillment := NewMock(t)

	price := decimal.NewFromInt(26500)
	product := &domain.DigitalProduct{ID: 1, CategoryID: 1, Name: "Telkomsel 25K", Price: price, Provider: "Telkomsel", IsActive: true}
	wallet := &domain.Wallet{ID: 1, UserID: 1, Balance: decimal.NewFromInt(100000)}
	reference := "TELKOMSEL-1712345678901-abc123"

	inTX := func() *gomock.Call {
		return txManager.EXPECT().Begin(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		})
	}

	tests := []struct {
		name           string
		amount         decimal.Decimal
		prepareMock    func()
		expectedStatus string
		expectedError  error
	}{
		{
			name:   "Successful purchase",
			amount: price,
			prepareMock: func() {
				productRepo.EXPECT().FindByID(gomock.Any(), 1).Return(product, nil)
				walletRepo.EXPECT().GetByUserID(gomock.Any(), 1).Return(wallet, nil)
				inTX()
				transactionRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, tr *domain.Transaction) (*domain.Transaction, error) {
					assert.Equal(t, domain.TransactionStatusPending, tr.Status)
					assert.True(t, strings.HasPrefix(tr.TransactionCode, "TXN-1-"))
					tr.ID = 42
					return tr, nil
				})
				walletRepo.EXPECT().Debit(gomock.Any(), 1, price).Return(&domain.Wallet{ID: 1, UserID: 1, Balance: wallet.Balance.Sub(price)}, nil)
				fulfillment.EXPECT().TopUp(gomock.Any(), "Telkomsel", "081234567890", price).
					Return(&provider.Result{Success: true, Reference: reference}, nil)
				transactionRepo.EXPECT().SetOutcome(gomock.Any(), 42, domain.TransactionStatusSuccess, &reference).
					DoAndReturn(func(ctx context.Context, id int, status string, ref *string) (*domain.Transaction, error) {
						return &domain.Transaction{ID: id, UserID: 1, Status: status, ProviderReference: ref, TransactionCode: "TXN-1-x"}, nil
					})
			},
			expectedStatus: domain.TransactionStatusSuccess,
		},
		{
			name:   "Unknown product",
			amount: price,
			prepareMock: func() {
				productRepo.EXPECT().FindByID(gomock.Any(), 1).Return(nil, nil)
			},
			expectedError: ErrProductUnavailable,
		},
		{
			name:   "Inactive product",
			amount: price,
			prepareMock: func() {
				inactive := *product
				inactive.IsActive = false
				productRepo.EXPECT().FindByID(gomock.Any(), 1).Return(&inactive, nil)
			},
			expectedError: ErrProductUnavailable,
		},
		{
			name:   "Missing wallet",
			amount: price,
			prepareMock: func() {
				productRepo.EXPECT().FindByID(gomock.Any(), 1).Return(product, nil)
				walletRepo.EXPECT().GetByUserID(gomock.Any(), 1).Return(nil, nil)
			},
			expectedError: ErrWalletNotFound,
		},
		{
			name:   "Amount below price",
			amount: price.Sub(decimal.NewFromInt(500)),
			prepareMock: func() {
				productRepo.EXPECT().FindByID(gomock.Any(), 1).Return(product, nil)
				walletRepo.EXPECT().GetByUserID(gomock.Any(), 1).Return(wallet, nil)
			},
			expectedError: ErrAmountMismatch,
		},
		{
			name:   "Amount above price",
			amount: price.Add(decimal.NewFromInt(500)),
			prepareMock: func() {
				productRepo.EXPECT().FindByID(gomock.Any(), 1).Return(product, nil)
				walletRepo.EXPECT().GetByUserID(gomock.Any(), 1).Return(wallet, nil)
			},
			expectedError: ErrAmountMismatch,
		},
		{
			name:   "Insufficient balance",
			amount: price,
			prepareMock: func() {
				poor := *wallet
				poor.Balance = decimal.NewFromInt(100)
				productRepo.EXPECT().FindByID(gomock.Any(), 1).Return(product, nil)
				walletRepo.EXPECT().GetByUserID(gomock.Any(), 1).Return(&poor, nil)
			},
			expectedError: ErrInsufficientFunds,
		},
		{
			name:   "Concurrent debit loses the balance race",
			amount: price,
			prepareMock: func() {
				productRepo.EXPECT().FindByID(gomock.Any(), 1).Return(product, nil)
				walletRepo.EXPECT().GetByUserID(gomock.Any(), 1).Return(wallet, nil)
				inTX()
				transactionRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, tr *domain.Transaction) (*domain.Transaction, error) {
					tr.ID = 42
					return tr, nil
				})
				walletRepo.EXPECT().Debit(gomock.Any(), 1, price).Return(nil, walletrepo.ErrInsufficientFunds)
			},
			expectedError: ErrInsufficientFunds,
		},
		{
			name:   "Provider declines and debit is refunded",
			amount: price,
			prepareMock: func() {
				productRepo.EXPECT().FindByID(gomock.Any(), 1).Return(product, nil)
				walletRepo.EXPECT().GetByUserID(gomock.Any(), 1).Return(wallet, nil)
				inTX()
				transactionRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, tr *domain.Transaction) (*domain.Transaction, error) {
					tr.ID = 42
					return tr, nil
				})
				walletRepo.EXPECT().Debit(gomock.Any(), 1, price).Return(&domain.Wallet{ID: 1, Balance: wallet.Balance.Sub(price)}, nil)
				fulfillment.EXPECT().TopUp(gomock.Any(), "Telkomsel", "081234567890", price).
					Return(&provider.Result{Success: false}, nil)
				inTX()
				walletRepo.EXPECT().Credit(gomock.Any(), 1, price).Return(wallet, nil)
				transactionRepo.EXPECT().SetOutcome(gomock.Any(), 42, domain.TransactionStatusFailed, nil).
					Return(&domain.Transaction{ID: 42, UserID: 1, Status: domain.TransactionStatusFailed}, nil)
			},
			expectedStatus: domain.TransactionStatusFailed,
		},
		{
			name:   "Provider error refunds and reports unavailability",
			amount: price,
			prepareMock: func() {
				productRepo.EXPECT().FindByID(gomock.Any(), 1).Return(product, nil)
				walletRepo.EXPECT().GetByUserID(gomock.Any(), 1).Return(wallet, nil)
				inTX()
				transactionRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, tr *domain.Transaction) (*domain.Transaction, error) {
					tr.ID = 42
					return tr, nil
				})
				walletRepo.EXPECT().Debit(gomock.Any(), 1, price).Return(&domain.Wallet{ID: 1, Balance: wallet.Balance.Sub(price)}, nil)
				fulfillment.EXPECT().TopUp(gomock.Any(), "Telkomsel", "081234567890", price).
					Return(nil, context.DeadlineExceeded)
				inTX()
				walletRepo.EXPECT().Credit(gomock.Any(), 1, price).Return(wallet, nil)
				transactionRepo.EXPECT().SetOutcome(gomock.Any(), 42, domain.TransactionStatusFailed, nil).
					Return(&domain.Transaction{ID: 42, UserID: 1, Status: domain.TransactionStatusFailed}, nil)
			},
			expectedError: ErrProviderUnavailable,
		},
		{
			name:   "Refund failure keeps the row pending",
			amount: price,
			prepareMock: func() {
				productRepo.EXPECT().FindByID(gomock.Any(), 1).Return(product, nil)
				walletRepo.EXPECT().GetByUserID(gomock.Any(), 1).Return(wallet, nil)
				inTX()
				transactionRepo.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(func(ctx context.Context, tr *domain.Transaction) (*domain.Transaction, error) {
					tr.ID = 42
					return tr, nil
				})
				walletRepo.EXPECT().Debit(gomock.Any(), 1, price).Return(&domain.Wallet{ID: 1, Balance: wallet.Balance.Sub(price)}, nil)
				fulfillment.EXPECT().TopUp(gomock.Any(), "Telkomsel", "081234567890", price).
					Return(&provider.Result{Success: false}, nil)
				inTX()
				walletRepo.EXPECT().Credit(gomock.Any(), 1, price).Return(nil, errors.New("credit failed"))
			},
			expectedError: errors.New("credit failed"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			transaction, err := service.Purchase(context.Background(), 1, 1, "081234567890", tt.amount)
			if tt.expectedError != nil {
				assert.Nil(t, transaction)
				assert.EqualError(t, err, tt.expectedError.Error())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedStatus, transaction.Status)
			if tt.expectedStatus == domain.TransactionStatusSuccess {
				assert.NotNil(t, transaction.ProviderReference)
				assert.Equal(t, reference, *transaction.ProviderReference)
			} else {
				assert.Nil(t, transaction.ProviderReference)
			}
		})
	}
}

func TestListByUser(t *testing.T) {
	service, _, _, transactionRepo, _, _ := NewMock(t)

	transactions := []domain.Transaction{{ID: 2, UserID: 1}, {ID: 1, UserID: 1}}

	tests := []struct {
		name           string
		page           int
		limit          int
		status         *string
		prepareMock    func()
		expectedTotal  int
		expectedError  error
		expectedLength int
	}{
		{
			name:  "First page with defaults",
			page:  0,
			limit: 0,
			prepareMock: func() {
				transactionRepo.EXPECT().FindByUserID(context.Background(), 1, nil, 10, 0).Return(transactions, nil)
				transactionRepo.EXPECT().CountByUserID(context.Background(), 1, nil).Return(2, nil)
			},
			expectedTotal:  2,
			expectedLength: 2,
		},
		{
			name:  "Limit capped at maximum",
			page:  1,
			limit: 1000,
			prepareMock: func() {
				transactionRepo.EXPECT().FindByUserID(context.Background(), 1, nil, 100, 0).Return(transactions, nil)
				transactionRepo.EXPECT().CountByUserID(context.Background(), 1, nil).Return(2, nil)
			},
			expectedTotal:  2,
			expectedLength: 2,
		},
		{
			name:  "Offset follows the page",
			page:  3,
			limit: 5,
			prepareMock: func() {
				transactionRepo.EXPECT().FindByUserID(context.Background(), 1, nil, 5, 10).Return(nil, nil)
				transactionRepo.EXPECT().CountByUserID(context.Background(), 1, nil).Return(12, nil)
			},
			expectedTotal:  12,
			expectedLength: 0,
		},
		{
			name:  "Error listing transactions",
			page:  1,
			limit: 10,
			prepareMock: func() {
				transactionRepo.EXPECT().FindByUserID(context.Background(), 1, nil, 10, 0).Return(nil, errors.New("database error"))
			},
			expectedError: errors.New("database error"),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			result, total, err := service.ListByUser(context.Background(), 1, tt.page, tt.limit, tt.status)
			if tt.expectedError != nil {
				assert.EqualError(t, err, tt.expectedError.Error())
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedTotal, total)
			assert.Len(t, result, tt.expectedLength)
		})
	}
}

func TestGenerateTransactionCode(t *testing.T) {
	code := GenerateTransactionCode(7)
	assert.True(t, strings.HasPrefix(code, "TXN-7-"))
	assert.Len(t, strings.Split(code, "-"), 4)

	var mu sync.Mutex
	seen := make(map[string]struct{}, 1000)
	var wg sync.WaitGroup
	for i := 0; i < 1000; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			c := GenerateTransactionCode(1)
			mu.Lock()
			seen[c] = struct{}{}
			mu.Unlock()
		}()
	}
	wg.Wait()
	assert.Len(t, seen, 1000)
}
