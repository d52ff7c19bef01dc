package walletrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
	"github.com/appdotbuilder/kasir-digital/internal/pg"
)

// ErrInsufficientFunds is returned by Debit when the wallet balance would go
// below zero. The check and the write happen in one statement.
var ErrInsufficientFunds = errors.New("insufficient wallet balance")

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

// GetOrCreateWallet returns the user's wallet, creating an empty one if none
// exists. The ON CONFLICT guard on user_id makes concurrent calls settle on a
// single row.
func (r *Repository) GetOrCreateWallet(ctx context.Context, userID int) (*domain.Wallet, error) {
	query := `
        WITH ins AS (
            INSERT INTO wallets (user_id, balance)
            VALUES ($1, 0)
            ON CONFLICT (user_id) DO NOTHING
            RETURNING id, user_id, balance, created_at, updated_at
        )
        SELECT id, user_id, balance, created_at, updated_at FROM ins
        UNION ALL
        SELECT id, user_id, balance, created_at, updated_at FROM wallets WHERE user_id = $1
        LIMIT 1
    `
	row := r.db.QueryRow(ctx, query, userID)
	var wallet domain.Wallet
	err := row.Scan(&wallet.ID, &wallet.UserID, &wallet.Balance, &wallet.CreatedAt, &wallet.UpdatedAt)
	if err != nil {
		zap.L().Error("failed to get or create wallet", zap.Error(err))
		return nil, err
	}
	return &wallet, nil
}

func (r *Repository) GetByUserID(ctx context.Context, userID int) (*domain.Wallet, error) {
	query := `
        SELECT id, user_id, balance, created_at, updated_at
        FROM wallets
        WHERE user_id = $1
    `
	row := r.db.QueryRow(ctx, query, userID)
	var wallet domain.Wallet
	err := row.Scan(&wallet.ID, &wallet.UserID, &wallet.Balance, &wallet.CreatedAt, &wallet.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("failed to get wallet", zap.Error(err))
		return nil, err
	}
	return &wallet, nil
}

// Credit increases the wallet balance by amount.
func (r *Repository) Credit(ctx context.Context, walletID int, amount decimal.Decimal) (*domain.Wallet, error) {
	query := `
        UPDATE wallets
        SET balance = balance + $1, updated_at = NOW()
        WHERE id = $2
        RETURNING id, user_id, balance, created_at, updated_at
    `
	row := r.db.QueryRow(ctx, query, amount, walletID)
	var wallet domain.Wallet
	err := row.Scan(&wallet.ID, &wallet.UserID, &wallet.Balance, &wallet.CreatedAt, &wallet.UpdatedAt)
	if err != nil {
		zap.L().Error("failed to credit wallet", zap.Int("walletID", walletID), zap.Error(err))
		return nil, err
	}
	return &wallet, nil
}

// Debit decreases the wallet balance by amount. The balance guard is part of
// the UPDATE itself, so concurrent debits can never overdraw the wallet.
func (r *Repository) Debit(ctx context.Context, walletID int, amount decimal.Decimal) (*domain.Wallet, error) {
	query := `
        UPDATE wallets
        SET balance = balance - $1, updated_at = NOW()
        WHERE id = $2 AND balance >= $1
        RETURNING id, user_id, balance, created_at, updated_at
    `
	row := r.db.QueryRow(ctx, query, amount, walletID)
	var wallet domain.Wallet
	err := row.Scan(&wallet.ID, &wallet.UserID, &wallet.Balance, &wallet.CreatedAt, &wallet.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrInsufficientFunds
		}
		zap.L().Error("failed to debit wallet", zap.Int("walletID", walletID), zap.Error(err))
		return nil, err
	}
	return &wallet, nil
}

func (r *Repository) CreateDeposit(ctx context.Context, walletID int, amount decimal.Decimal, paymentMethod string) (*domain.Deposit, error) {
	query := `
        INSERT INTO deposits (wallet_id, amount, status, payment_method)
        VALUES ($1, $2, 'pending', $3)
        RETURNING id, wallet_id, amount, status, payment_method, created_at, updated_at
    `
	row := r.db.QueryRow(ctx, query, walletID, amount, paymentMethod)
	var deposit domain.Deposit
	err := row.Scan(&deposit.ID, &deposit.WalletID, &deposit.Amount, &deposit.Status, &deposit.PaymentMethod, &deposit.CreatedAt, &deposit.UpdatedAt)
	if err != nil {
		zap.L().Error("failed to create deposit", zap.Error(err))
		return nil, err
	}
	return &deposit, nil
}

func (r *Repository) SetDepositStatus(ctx context.Context, depositID int, status string) (*domain.Deposit, error) {
	query := `
        UPDATE deposits
        SET status = $1, updated_at = NOW()
        WHERE id = $2
        RETURNING id, wallet_id, amount, status, payment_method, created_at, updated_at
    `
	row := r.db.QueryRow(ctx, query, status, depositID)
	var deposit domain.Deposit
	err := row.Scan(&deposit.ID, &deposit.WalletID, &deposit.Amount, &deposit.Status, &deposit.PaymentMethod, &deposit.CreatedAt, &deposit.UpdatedAt)
	if err != nil {
		zap.L().Error("failed to set deposit status", zap.Int("depositID", depositID), zap.Error(err))
		return nil, err
	}
	return &deposit, nil
}
