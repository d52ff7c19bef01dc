package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
)

type CreateTransactionRequestDTO struct {
	ProductID      int             `json:"product_id" validate:"required,gt=0" example:"1"`
	CustomerNumber string          `json:"customer_number" validate:"required,min=4,max=50" example:"081234567890"`
	Amount         decimal.Decimal `json:"amount" example:"26500.00"`
}

type TransactionDTO struct {
	ID                int             `json:"id" example:"1"`
	UserID            int             `json:"user_id" example:"1"`
	ProductID         int             `json:"product_id" example:"1"`
	WalletID          int             `json:"wallet_id" example:"1"`
	Amount            decimal.Decimal `json:"amount" example:"26500.00"`
	CustomerNumber    string          `json:"customer_number" example:"081234567890"`
	Status            string          `json:"status" example:"success"`
	TransactionCode   string          `json:"transaction_code" example:"TXN-1-1712345678901234567-a1b2c3d4"`
	ProviderReference *string         `json:"provider_reference"`
	CreatedAt         time.Time       `json:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at"`
}

func NewTransactionDTO(transaction domain.Transaction) TransactionDTO {
	return TransactionDTO{
		ID:                transaction.ID,
		UserID:            transaction.UserID,
		ProductID:         transaction.ProductID,
		WalletID:          transaction.WalletID,
		Amount:            transaction.Amount,
		CustomerNumber:    transaction.CustomerNumber,
		Status:            transaction.Status,
		TransactionCode:   transaction.TransactionCode,
		ProviderReference: transaction.ProviderReference,
		CreatedAt:         transaction.CreatedAt,
		UpdatedAt:         transaction.UpdatedAt,
	}
}

type TransactionListResponseDTO struct {
	Transactions []TransactionDTO `json:"transactions"`
	TotalCount   int              `json:"total_count" example:"42"`
	Page         int              `json:"page" example:"1"`
	Limit        int              `json:"limit" example:"10"`
}
