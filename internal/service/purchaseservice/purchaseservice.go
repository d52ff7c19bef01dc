package purchaseservice

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
	"github.com/appdotbuilder/kasir-digital/internal/pg"
	"github.com/appdotbuilder/kasir-digital/internal/provider"
	walletrepo "github.com/appdotbuilder/kasir-digital/internal/repo/wallet-repo"
)

type ProductRepo interface {
	FindByID(ctx context.Context, productID int) (*domain.DigitalProduct, error)
}

type WalletRepo interface {
	GetByUserID(ctx context.Context, userID int) (*domain.Wallet, error)
	Debit(ctx context.Context, walletID int, amount decimal.Decimal) (*domain.Wallet, error)
	Credit(ctx context.Context, walletID int, amount decimal.Decimal) (*domain.Wallet, error)
}

type TransactionRepo interface {
	Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error)
	SetOutcome(ctx context.Context, transactionID int, status string, providerReference *string) (*domain.Transaction, error)
	FindByUserID(ctx context.Context, userID int, status *string, limit, offset int) ([]domain.Transaction, error)
	CountByUserID(ctx context.Context, userID int, status *string) (int, error)
}

var (
	ErrProductUnavailable = errors.New("product not found or inactive")
	ErrWalletNotFound     = errors.New("user wallet not found")
	ErrInsufficientFunds  = errors.New("insufficient wallet balance")
	// ErrAmountMismatch rejects purchases whose submitted amount differs from
	// the stored product price. The price on record is authoritative.
	ErrAmountMismatch = errors.New("amount does not match product price")
	// ErrProviderUnavailable signals that the provider call itself failed
	// (timeout, cancellation). The debit has already been refunded.
	ErrProviderUnavailable = errors.New("provider unavailable")
)

const (
	defaultPageLimit = 10
	maxPageLimit     = 100
)

type Service struct {
	productRepo     ProductRepo
	walletRepo      WalletRepo
	transactionRepo TransactionRepo
	txManager       pg.TXManager
	provider        provider.Provider
	providerTimeout time.Duration
}

func New(productRepo ProductRepo, walletRepo WalletRepo, transactionRepo TransactionRepo, txManager pg.TXManager, fulfillment provider.Provider, providerTimeout time.Duration) *Service {
	return &Service{
		productRepo:     productRepo,
		walletRepo:      walletRepo,
		transactionRepo: transactionRepo,
		txManager:       txManager,
		provider:        fulfillment,
		providerTimeout: providerTimeout,
	}
}

// Purchase runs the top-up saga: validate the product, debit the wallet
// together with inserting the pending transaction, call the provider, then
// settle. A declined or failed provider call refunds the debit, so a failed
// purchase never nets against the balance.
func (s *Service) Purchase(ctx context.Context, userID, productID int, customerNumber string, amount decimal.Decimal) (*domain.Transaction, error) {
	product, err := s.productRepo.FindByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil || !product.IsActive {
		return nil, ErrProductUnavailable
	}

	wallet, err := s.walletRepo.GetByUserID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if wallet == nil {
		return nil, ErrWalletNotFound
	}

	if !amount.Equal(product.Price) {
		zap.L().Warn("purchase amount mismatch",
			zap.Int("productID", productID),
			zap.String("submitted", amount.String()),
			zap.String("price", product.Price.String()),
		)
		return nil, ErrAmountMismatch
	}
	if wallet.Balance.LessThan(amount) {
		return nil, ErrInsufficientFunds
	}

	transaction := &domain.Transaction{
		UserID:          userID,
		ProductID:       productID,
		WalletID:        wallet.ID,
		Amount:          amount,
		CustomerNumber:  customerNumber,
		Status:          domain.TransactionStatusPending,
		TransactionCode: GenerateTransactionCode(userID),
	}

	// The pending row and the debit commit atomically. The balance guard in
	// Debit is the authoritative overdraft check; the read above is only a
	// fast path.
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := s.transactionRepo.Create(ctx, transaction); err != nil {
			return err
		}
		if _, err := s.walletRepo.Debit(ctx, wallet.ID, amount); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, walletrepo.ErrInsufficientFunds) {
			return nil, ErrInsufficientFunds
		}
		zap.L().Error("failed to record purchase", zap.Error(err))
		return nil, err
	}

	providerCtx, cancel := context.WithTimeout(ctx, s.providerTimeout)
	defer cancel()
	result, err := s.provider.TopUp(providerCtx, product.Provider, customerNumber, amount)
	if err != nil {
		zap.L().Error("provider call failed",
			zap.String("transactionCode", transaction.TransactionCode),
			zap.Error(err),
		)
		if _, rbErr := s.refundAndFail(ctx, transaction); rbErr != nil {
			return nil, rbErr
		}
		return nil, ErrProviderUnavailable
	}

	if !result.Success {
		return s.refundAndFail(ctx, transaction)
	}

	settled, err := s.transactionRepo.SetOutcome(ctx, transaction.ID, domain.TransactionStatusSuccess, &result.Reference)
	if err != nil {
		zap.L().Error("failed to settle transaction",
			zap.String("transactionCode", transaction.TransactionCode),
			zap.Error(err),
		)
		return nil, err
	}

	zap.L().Info("purchase fulfilled",
		zap.String("transactionCode", settled.TransactionCode),
		zap.String("providerReference", result.Reference),
	)
	return settled, nil
}

// refundAndFail reverses the debit and marks the purchase failed in one
// database transaction. If it does not commit, the row stays pending with the
// funds held and the reconciler picks it up later; the refund can never be
// applied twice.
func (s *Service) refundAndFail(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	var failed *domain.Transaction
	err := s.txManager.Begin(ctx, func(ctx context.Context) error {
		if _, err := s.walletRepo.Credit(ctx, transaction.WalletID, transaction.Amount); err != nil {
			return err
		}
		var err error
		failed, err = s.transactionRepo.SetOutcome(ctx, transaction.ID, domain.TransactionStatusFailed, nil)
		return err
	})
	if err != nil {
		zap.L().Error("failed to refund wallet",
			zap.Int("walletID", transaction.WalletID),
			zap.String("transactionCode", transaction.TransactionCode),
			zap.Error(err),
		)
		return nil, err
	}
	return failed, nil
}

func (s *Service) ListByUser(ctx context.Context, userID, page, limit int, status *string) ([]domain.Transaction, int, error) {
	if page < 1 {
		page = 1
	}
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	transactions, err := s.transactionRepo.FindByUserID(ctx, userID, status, limit, (page-1)*limit)
	if err != nil {
		return nil, 0, err
	}
	total, err := s.transactionRepo.CountByUserID(ctx, userID, status)
	if err != nil {
		return nil, 0, err
	}
	return transactions, total, nil
}

// GenerateTransactionCode builds a collision-free purchase code from the user
// id, a nanosecond timestamp and a random suffix.
func GenerateTransactionCode(userID int) string {
	return fmt.Sprintf("TXN-%d-%d-%s", userID, time.Now().UnixNano(), uuid.NewString()[:8])
}
