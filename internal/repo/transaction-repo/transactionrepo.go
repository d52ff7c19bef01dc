package transactionrepo

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
	"github.com/appdotbuilder/kasir-digital/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

const transactionColumns = "id, user_id, product_id, wallet_id, amount, customer_number, status, transaction_code, provider_reference, created_at, updated_at"

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var t domain.Transaction
	err := row.Scan(&t.ID, &t.UserID, &t.ProductID, &t.WalletID, &t.Amount, &t.CustomerNumber,
		&t.Status, &t.TransactionCode, &t.ProviderReference, &t.CreatedAt, &t.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *Repository) Create(ctx context.Context, transaction *domain.Transaction) (*domain.Transaction, error) {
	query := `
        INSERT INTO transactions (user_id, product_id, wallet_id, amount, customer_number, status, transaction_code, provider_reference)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
        RETURNING id, created_at, updated_at
    `
	err := r.db.QueryRow(ctx, query,
		transaction.UserID, transaction.ProductID, transaction.WalletID, transaction.Amount,
		transaction.CustomerNumber, transaction.Status, transaction.TransactionCode, transaction.ProviderReference,
	).Scan(&transaction.ID, &transaction.CreatedAt, &transaction.UpdatedAt)
	if err != nil {
		zap.L().Error("can't save transaction", zap.Error(err))
		return nil, err
	}
	return transaction, nil
}

// SetOutcome records the terminal status and provider reference of a purchase.
func (r *Repository) SetOutcome(ctx context.Context, transactionID int, status string, providerReference *string) (*domain.Transaction, error) {
	query := `
        UPDATE transactions
        SET status = $1, provider_reference = $2, updated_at = NOW()
        WHERE id = $3
        RETURNING ` + transactionColumns
	transaction, err := scanTransaction(r.db.QueryRow(ctx, query, status, providerReference, transactionID))
	if err != nil {
		zap.L().Error("can't set transaction outcome", zap.Int("transactionID", transactionID), zap.Error(err))
		return nil, err
	}
	return transaction, nil
}

func (r *Repository) FindByUserID(ctx context.Context, userID int, status *string, limit, offset int) ([]domain.Transaction, error) {
	query := `
        SELECT ` + transactionColumns + `
        FROM transactions
        WHERE user_id = $1 AND ($2::text IS NULL OR status = $2)
        ORDER BY created_at DESC
        LIMIT $3 OFFSET $4
    `
	rows, err := r.db.Query(ctx, query, userID, status, limit, offset)
	if err != nil {
		zap.L().Error("can't get user transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func (r *Repository) CountByUserID(ctx context.Context, userID int, status *string) (int, error) {
	query := `
        SELECT COUNT(*)
        FROM transactions
        WHERE user_id = $1 AND ($2::text IS NULL OR status = $2)
    `
	var count int
	err := r.db.QueryRow(ctx, query, userID, status).Scan(&count)
	if err != nil {
		zap.L().Error("can't count user transactions", zap.Error(err))
		return 0, err
	}
	return count, nil
}

// FindAllDetailed lists transactions across all users with user/product
// display fields, newest first.
func (r *Repository) FindAllDetailed(ctx context.Context, status *string, userID *int, limit, offset int) ([]domain.TransactionDetail, error) {
	query := `
        SELECT t.id, t.user_id, t.product_id, t.wallet_id, t.amount, t.customer_number, t.status,
               t.transaction_code, t.provider_reference, t.created_at, t.updated_at,
               u.full_name, u.email, p.name, p.provider
        FROM transactions t
        INNER JOIN users u ON u.id = t.user_id
        INNER JOIN digital_products p ON p.id = t.product_id
        WHERE ($1::text IS NULL OR t.status = $1) AND ($2::int IS NULL OR t.user_id = $2)
        ORDER BY t.created_at DESC
        LIMIT $3 OFFSET $4
    `
	rows, err := r.db.Query(ctx, query, status, userID, limit, offset)
	if err != nil {
		zap.L().Error("can't get transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var details []domain.TransactionDetail
	for rows.Next() {
		var d domain.TransactionDetail
		err := rows.Scan(&d.ID, &d.UserID, &d.ProductID, &d.WalletID, &d.Amount, &d.CustomerNumber,
			&d.Status, &d.TransactionCode, &d.ProviderReference, &d.CreatedAt, &d.UpdatedAt,
			&d.UserFullName, &d.UserEmail, &d.ProductName, &d.ProductProvider)
		if err != nil {
			zap.L().Error("can't scan transaction detail row", zap.Error(err))
			return nil, err
		}
		details = append(details, d)
	}
	return details, nil
}

func (r *Repository) CountAll(ctx context.Context, status *string, userID *int) (int, error) {
	query := `
        SELECT COUNT(*)
        FROM transactions
        WHERE ($1::text IS NULL OR status = $1) AND ($2::int IS NULL OR user_id = $2)
    `
	var count int
	err := r.db.QueryRow(ctx, query, status, userID).Scan(&count)
	if err != nil {
		zap.L().Error("can't count transactions", zap.Error(err))
		return 0, err
	}
	return count, nil
}

// SumSuccessAmount totals the amount of all successful transactions.
func (r *Repository) SumSuccessAmount(ctx context.Context) (decimal.Decimal, error) {
	query := `SELECT COALESCE(SUM(amount), 0) FROM transactions WHERE status = 'success'`
	var sum decimal.Decimal
	err := r.db.QueryRow(ctx, query).Scan(&sum)
	if err != nil {
		zap.L().Error("can't sum successful transactions", zap.Error(err))
		return decimal.Zero, err
	}
	return sum, nil
}

// FindStalePending returns pending transactions older than the cutoff. These
// are purchases whose debit committed but whose provider outcome was never
// recorded, and they hold user funds until reconciled.
func (r *Repository) FindStalePending(ctx context.Context, cutoff time.Time, limit int) ([]domain.Transaction, error) {
	query := `
        SELECT ` + transactionColumns + `
        FROM transactions
        WHERE status = 'pending' AND created_at < $1
        ORDER BY created_at ASC
        LIMIT $2
    `
	rows, err := r.db.Query(ctx, query, cutoff, limit)
	if err != nil {
		zap.L().Error("can't get stale pending transactions", zap.Error(err))
		return nil, err
	}
	defer rows.Close()
	return collectTransactions(rows)
}

func collectTransactions(rows pgx.Rows) ([]domain.Transaction, error) {
	var transactions []domain.Transaction
	for rows.Next() {
		var t domain.Transaction
		err := rows.Scan(&t.ID, &t.UserID, &t.ProductID, &t.WalletID, &t.Amount, &t.CustomerNumber,
			&t.Status, &t.TransactionCode, &t.ProviderReference, &t.CreatedAt, &t.UpdatedAt)
		if err != nil {
			zap.L().Error("can't scan transaction row", zap.Error(err))
			return nil, err
		}
		transactions = append(transactions, t)
	}
	return transactions, nil
}
