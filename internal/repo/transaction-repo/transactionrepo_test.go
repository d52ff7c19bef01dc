package transactionrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/pashagolub/pgxmock/v3"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
)

func NewMock(t *testing.T) (*Repository, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

var transactionColumnList = []string{"id", "user_id", "product_id", "wallet_id", "amount", "customer_number", "status", "transaction_code", "provider_reference", "created_at", "updated_at"}

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	amount := decimal.NewFromInt(11000)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Successful creation",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"id", "created_at", "updated_at"}).
					AddRow(1, now, now)
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO transactions")).
					WithArgs(1, 2, 3, amount, "081234567890", domain.TransactionStatusPending, "TXN-1-abc", (*string)(nil)).
					WillReturnRows(rows)
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO transactions")).
					WithArgs(1, 2, 3, amount, "081234567890", domain.TransactionStatusPending, "TXN-1-abc", (*string)(nil)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			transaction := &domain.Transaction{
				UserID:          1,
				ProductID:       2,
				WalletID:        3,
				Amount:          amount,
				CustomerNumber:  "081234567890",
				Status:          domain.TransactionStatusPending,
				TransactionCode: "TXN-1-abc",
			}
			result, err := repo.Create(context.Background(), transaction)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, 1, result.ID)
			assert.Equal(t, now, result.CreatedAt)
		})
	}
}

func TestRepository_SetOutcome(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	amount := decimal.NewFromInt(11000)
	reference := "TELKOMSEL-1712000000000-abc123"

	tests := []struct {
		name      string
		status    string
		reference *string
		mockSetup func()
		expectErr bool
	}{
		{
			name:      "Successful outcome recorded",
			status:    domain.TransactionStatusSuccess,
			reference: &reference,
			mockSetup: func() {
				rows := pgxmock.NewRows(transactionColumnList).
					AddRow(1, 1, 2, 3, amount, "081234567890", domain.TransactionStatusSuccess, "TXN-1-abc", &reference, now, now)
				mock.ExpectQuery(regexp.QuoteMeta("SET status = $1, provider_reference = $2")).
					WithArgs(domain.TransactionStatusSuccess, &reference, 1).
					WillReturnRows(rows)
			},
		},
		{
			name:      "Failed outcome without reference",
			status:    domain.TransactionStatusFailed,
			reference: nil,
			mockSetup: func() {
				rows := pgxmock.NewRows(transactionColumnList).
					AddRow(1, 1, 2, 3, amount, "081234567890", domain.TransactionStatusFailed, "TXN-1-abc", nil, now, now)
				mock.ExpectQuery(regexp.QuoteMeta("SET status = $1, provider_reference = $2")).
					WithArgs(domain.TransactionStatusFailed, (*string)(nil), 1).
					WillReturnRows(rows)
			},
		},
		{
			name:      "Database error",
			status:    domain.TransactionStatusSuccess,
			reference: &reference,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SET status = $1, provider_reference = $2")).
					WithArgs(domain.TransactionStatusSuccess, &reference, 1).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.SetOutcome(context.Background(), 1, tt.status, tt.reference)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.status, result.Status)
			assert.Equal(t, tt.reference, result.ProviderReference)
		})
	}
}

func TestRepository_FindByUserID(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	amount := decimal.NewFromInt(11000)
	status := domain.TransactionStatusSuccess

	tests := []struct {
		name      string
		status    *string
		mockSetup func()
		expectErr bool
		length    int
	}{
		{
			name:   "All statuses",
			status: nil,
			mockSetup: func() {
				rows := pgxmock.NewRows(transactionColumnList).
					AddRow(2, 1, 2, 3, amount, "081234567890", domain.TransactionStatusSuccess, "TXN-1-b", nil, now, now).
					AddRow(1, 1, 2, 3, amount, "081234567890", domain.TransactionStatusFailed, "TXN-1-a", nil, now, now)
				mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 AND ($2::text IS NULL OR status = $2)")).
					WithArgs(1, (*string)(nil), 10, 0).
					WillReturnRows(rows)
			},
			length: 2,
		},
		{
			name:   "Filtered by status",
			status: &status,
			mockSetup: func() {
				rows := pgxmock.NewRows(transactionColumnList).
					AddRow(2, 1, 2, 3, amount, "081234567890", domain.TransactionStatusSuccess, "TXN-1-b", nil, now, now)
				mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 AND ($2::text IS NULL OR status = $2)")).
					WithArgs(1, &status, 10, 0).
					WillReturnRows(rows)
			},
			length: 1,
		},
		{
			name:   "Database error",
			status: nil,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE user_id = $1 AND ($2::text IS NULL OR status = $2)")).
					WithArgs(1, (*string)(nil), 10, 0).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindByUserID(context.Background(), 1, tt.status, 10, 0)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, result, tt.length)
		})
	}
}

func TestRepository_CountByUserID(t *testing.T) {
	repo, mock := NewMock(t)
	status := domain.TransactionStatusPending

	tests := []struct {
		name      string
		status    *string
		mockSetup func()
		expectErr bool
		count     int
	}{
		{
			name:   "Count all",
			status: nil,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
					WithArgs(1, (*string)(nil)).
					WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(5))
			},
			count: 5,
		},
		{
			name:   "Count filtered",
			status: &status,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
					WithArgs(1, &status).
					WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(2))
			},
			count: 2,
		},
		{
			name:   "Database error",
			status: nil,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
					WithArgs(1, (*string)(nil)).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			count, err := repo.CountByUserID(context.Background(), 1, tt.status)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Zero(t, count)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.count, count)
		})
	}
}

func TestRepository_FindAllDetailed(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	amount := decimal.NewFromInt(11000)
	userID := 1
	detailColumns := append(append([]string{}, transactionColumnList...), "full_name", "email", "name", "provider")

	tests := []struct {
		name      string
		userID    *int
		mockSetup func()
		expectErr bool
		length    int
	}{
		{
			name:   "All transactions",
			userID: nil,
			mockSetup: func() {
				rows := pgxmock.NewRows(detailColumns).
					AddRow(1, 1, 2, 3, amount, "081234567890", domain.TransactionStatusSuccess, "TXN-1-a", nil, now, now,
						"Jane Doe", "user@example.com", "Telkomsel 10K", "Telkomsel")
				mock.ExpectQuery(regexp.QuoteMeta("INNER JOIN digital_products p ON p.id = t.product_id")).
					WithArgs((*string)(nil), (*int)(nil), 20, 0).
					WillReturnRows(rows)
			},
			length: 1,
		},
		{
			name:   "Filtered by user",
			userID: &userID,
			mockSetup: func() {
				rows := pgxmock.NewRows(detailColumns).
					AddRow(1, 1, 2, 3, amount, "081234567890", domain.TransactionStatusSuccess, "TXN-1-a", nil, now, now,
						"Jane Doe", "user@example.com", "Telkomsel 10K", "Telkomsel")
				mock.ExpectQuery(regexp.QuoteMeta("INNER JOIN digital_products p ON p.id = t.product_id")).
					WithArgs((*string)(nil), &userID, 20, 0).
					WillReturnRows(rows)
			},
			length: 1,
		},
		{
			name:   "Database error",
			userID: nil,
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("INNER JOIN digital_products p ON p.id = t.product_id")).
					WithArgs((*string)(nil), (*int)(nil), 20, 0).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindAllDetailed(context.Background(), nil, tt.userID, 20, 0)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, result, tt.length)
			if tt.length > 0 {
				assert.Equal(t, "Jane Doe", result[0].UserFullName)
				assert.Equal(t, "Telkomsel", result[0].ProductProvider)
			}
		})
	}
}

func TestRepository_CountAll(t *testing.T) {
	repo, mock := NewMock(t)

	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*)")).
		WithArgs((*string)(nil), (*int)(nil)).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(12))

	count, err := repo.CountAll(context.Background(), nil, nil)
	assert.NoError(t, err)
	assert.Equal(t, 12, count)
}

func TestRepository_SumSuccessAmount(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		sum       decimal.Decimal
	}{
		{
			name: "Revenue summed",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("COALESCE(SUM(amount), 0)")).
					WillReturnRows(pgxmock.NewRows([]string{"coalesce"}).AddRow(decimal.NewFromInt(150000)))
			},
			sum: decimal.NewFromInt(150000),
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("COALESCE(SUM(amount), 0)")).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			sum, err := repo.SumSuccessAmount(context.Background())
			if tt.expectErr {
				assert.Error(t, err)
				assert.True(t, sum.IsZero())
				return
			}
			assert.NoError(t, err)
			assert.True(t, tt.sum.Equal(sum))
		})
	}
}

func TestRepository_FindStalePending(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	cutoff := now.Add(-5 * time.Minute)
	amount := decimal.NewFromInt(11000)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
		length    int
	}{
		{
			name: "Stale rows found",
			mockSetup: func() {
				rows := pgxmock.NewRows(transactionColumnList).
					AddRow(1, 1, 2, 3, amount, "081234567890", domain.TransactionStatusPending, "TXN-1-a", nil, now.Add(-time.Hour), now.Add(-time.Hour))
				mock.ExpectQuery(regexp.QuoteMeta("WHERE status = 'pending' AND created_at < $1")).
					WithArgs(cutoff, 1000).
					WillReturnRows(rows)
			},
			length: 1,
		},
		{
			name: "Nothing stale",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE status = 'pending' AND created_at < $1")).
					WithArgs(cutoff, 1000).
					WillReturnRows(pgxmock.NewRows(transactionColumnList))
			},
			length: 0,
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE status = 'pending' AND created_at < $1")).
					WithArgs(cutoff, 1000).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			result, err := repo.FindStalePending(context.Background(), cutoff, 1000)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Len(t, result, tt.length)
		})
	}
}
