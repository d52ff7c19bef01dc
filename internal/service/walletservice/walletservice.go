package walletservice

import (
	"context"
	"errors"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
	"github.com/appdotbuilder/kasir-digital/internal/pg"
)

type WalletRepo interface {
	GetOrCreateWallet(ctx context.Context, userID int) (*domain.Wallet, error)
	Credit(ctx context.Context, walletID int, amount decimal.Decimal) (*domain.Wallet, error)
	CreateDeposit(ctx context.Context, walletID int, amount decimal.Decimal, paymentMethod string) (*domain.Deposit, error)
	SetDepositStatus(ctx context.Context, depositID int, status string) (*domain.Deposit, error)
}

var ErrInvalidAmount = errors.New("deposit amount must be positive")

type Service struct {
	walletRepo WalletRepo
	txManager  pg.TXManager
}

func New(walletRepo WalletRepo, txManager pg.TXManager) *Service {
	return &Service{
		walletRepo: walletRepo,
		txManager:  txManager,
	}
}

// GetBalance returns the user's wallet, creating an empty one on first use.
func (s *Service) GetBalance(ctx context.Context, userID int) (*domain.Wallet, error) {
	wallet, err := s.walletRepo.GetOrCreateWallet(ctx, userID)
	if err != nil {
		zap.L().Error("failed to get wallet", zap.Error(err))
		return nil, err
	}
	return wallet, nil
}

// CreateDeposit records a pending deposit, then completes it and credits the
// wallet in one database transaction. Payment confirmation is simulated as an
// immediate success; a real gateway would drive the completion asynchronously.
func (s *Service) CreateDeposit(ctx context.Context, userID int, amount decimal.Decimal, paymentMethod string) (*domain.Deposit, error) {
	if !amount.IsPositive() {
		return nil, ErrInvalidAmount
	}

	wallet, err := s.walletRepo.GetOrCreateWallet(ctx, userID)
	if err != nil {
		zap.L().Error("failed to resolve wallet", zap.Error(err))
		return nil, err
	}

	deposit, err := s.walletRepo.CreateDeposit(ctx, wallet.ID, amount, paymentMethod)
	if err != nil {
		zap.L().Error("failed to create deposit", zap.Error(err))
		return nil, err
	}

	var completed *domain.Deposit
	err = s.txManager.Begin(ctx, func(ctx context.Context) error {
		completed, err = s.walletRepo.SetDepositStatus(ctx, deposit.ID, domain.DepositStatusCompleted)
		if err != nil {
			return err
		}
		if _, err := s.walletRepo.Credit(ctx, wallet.ID, amount); err != nil {
			return err
		}
		return nil
	})
	if err != nil {
		zap.L().Error("failed to complete deposit", zap.Int("depositID", deposit.ID), zap.Error(err))
		return nil, err
	}

	zap.L().Info("deposit completed",
		zap.Int("depositID", completed.ID),
		zap.Int("walletID", wallet.ID),
		zap.String("amount", amount.String()),
	)
	return completed, nil
}
