package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	RoleUser  string = "user"
	RoleAdmin string = "admin"
)

type User struct {
	ID           int       `db:"id"`
	Email        string    `db:"email"`
	PasswordHash string    `db:"password_hash"`
	FullName     string    `db:"full_name"`
	PhoneNumber  *string   `db:"phone_number"`
	Role         string    `db:"role"`
	IsActive     bool      `db:"is_active"`
	CreatedAt    time.Time `db:"created_at"`
	UpdatedAt    time.Time `db:"updated_at"`
}

// Sanitized returns a copy with the password hash stripped.
func (u User) Sanitized() User {
	u.PasswordHash = ""
	return u
}

type Wallet struct {
	ID        int             `db:"id"`
	UserID    int             `db:"user_id"`
	Balance   decimal.Decimal `db:"balance"`
	CreatedAt time.Time       `db:"created_at"`
	UpdatedAt time.Time       `db:"updated_at"`
}

const (
	DepositStatusPending   string = "pending"
	DepositStatusCompleted string = "completed"
	DepositStatusFailed    string = "failed"
)

type Deposit struct {
	ID            int             `db:"id"`
	WalletID      int             `db:"wallet_id"`
	Amount        decimal.Decimal `db:"amount"`
	Status        string          `db:"status"`
	PaymentMethod string          `db:"payment_method"`
	CreatedAt     time.Time       `db:"created_at"`
	UpdatedAt     time.Time       `db:"updated_at"`
}

type ProductCategory struct {
	ID          int       `db:"id"`
	Name        string    `db:"name"`
	Description *string   `db:"description"`
	IsActive    bool      `db:"is_active"`
	CreatedAt   time.Time `db:"created_at"`
}

type DigitalProduct struct {
	ID          int             `db:"id"`
	CategoryID  int             `db:"category_id"`
	Name        string          `db:"name"`
	Description *string         `db:"description"`
	Price       decimal.Decimal `db:"price"`
	Provider    string          `db:"provider"`
	ProductCode string          `db:"product_code"`
	IsActive    bool            `db:"is_active"`
	CreatedAt   time.Time       `db:"created_at"`
	UpdatedAt   time.Time       `db:"updated_at"`
}

const (
	// TransactionStatusPending: debit committed, provider outcome not yet recorded.
	TransactionStatusPending string = "pending"
	// TransactionStatusProcessing is reserved for asynchronous fulfillment.
	TransactionStatusProcessing string = "processing"
	TransactionStatusSuccess    string = "success"
	TransactionStatusFailed     string = "failed"
)

type Transaction struct {
	ID                int             `db:"id"`
	UserID            int             `db:"user_id"`
	ProductID         int             `db:"product_id"`
	WalletID          int             `db:"wallet_id"`
	Amount            decimal.Decimal `db:"amount"`
	CustomerNumber    string          `db:"customer_number"`
	Status            string          `db:"status"`
	TransactionCode   string          `db:"transaction_code"`
	ProviderReference *string         `db:"provider_reference"`
	CreatedAt         time.Time       `db:"created_at"`
	UpdatedAt         time.Time       `db:"updated_at"`
}

// TransactionDetail is a Transaction joined with user/product display fields
// for admin listings.
type TransactionDetail struct {
	Transaction
	UserFullName    string `db:"user_full_name"`
	UserEmail       string `db:"user_email"`
	ProductName     string `db:"product_name"`
	ProductProvider string `db:"product_provider"`
}

type Session struct {
	ID        string    `db:"id"`
	UserID    int       `db:"user_id"`
	ExpiresAt time.Time `db:"expires_at"`
	CreatedAt time.Time `db:"created_at"`
}

type AdminStats struct {
	TotalUsers        int             `db:"total_users"`
	TotalTransactions int             `db:"total_transactions"`
	TotalRevenue      decimal.Decimal `db:"total_revenue"`
	ActiveUsers       int             `db:"active_users"`
}
