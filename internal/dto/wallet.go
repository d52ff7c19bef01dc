package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
)

type BalanceResponseDTO struct {
	Balance  decimal.Decimal `json:"balance" example:"1000.00"`
	WalletID int             `json:"wallet_id" example:"1"`
}

type CreateDepositRequestDTO struct {
	Amount        decimal.Decimal `json:"amount" example:"50000.00"`
	PaymentMethod string          `json:"payment_method" validate:"required,min=2,max=100" example:"bank_transfer"`
}

type DepositDTO struct {
	ID            int             `json:"id" example:"1"`
	WalletID      int             `json:"wallet_id" example:"1"`
	Amount        decimal.Decimal `json:"amount" example:"50000.00"`
	Status        string          `json:"status" example:"completed"`
	PaymentMethod string          `json:"payment_method" example:"bank_transfer"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func NewDepositDTO(deposit domain.Deposit) DepositDTO {
	return DepositDTO{
		ID:            deposit.ID,
		WalletID:      deposit.WalletID,
		Amount:        deposit.Amount,
		Status:        deposit.Status,
		PaymentMethod: deposit.PaymentMethod,
		CreatedAt:     deposit.CreatedAt,
		UpdatedAt:     deposit.UpdatedAt,
	}
}
