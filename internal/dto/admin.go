package dto

import (
	"github.com/shopspring/decimal"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
)

type AdminStatsDTO struct {
	TotalUsers        int             `json:"total_users" example:"120"`
	TotalTransactions int             `json:"total_transactions" example:"540"`
	TotalRevenue      decimal.Decimal `json:"total_revenue" example:"14310000.00"`
	ActiveUsers       int             `json:"active_users" example:"37"`
}

type UpdateUserRequestDTO struct {
	FullName    *string `json:"full_name,omitempty" validate:"omitempty,min=2"`
	PhoneNumber *string `json:"phone_number,omitempty" validate:"omitempty,min=6,max=20"`
	IsActive    *bool   `json:"is_active,omitempty"`
	Role        *string `json:"role,omitempty" validate:"omitempty,oneof=user admin"`
}

type TransactionDetailDTO struct {
	TransactionDTO
	UserFullName    string `json:"user_full_name" example:"Jane Doe"`
	UserEmail       string `json:"user_email" example:"user@example.com"`
	ProductName     string `json:"product_name" example:"Telkomsel 25K"`
	ProductProvider string `json:"product_provider" example:"Telkomsel"`
}

func NewTransactionDetailDTO(detail domain.TransactionDetail) TransactionDetailDTO {
	return TransactionDetailDTO{
		TransactionDTO:  NewTransactionDTO(detail.Transaction),
		UserFullName:    detail.UserFullName,
		UserEmail:       detail.UserEmail,
		ProductName:     detail.ProductName,
		ProductProvider: detail.ProductProvider,
	}
}

type TransactionDetailListResponseDTO struct {
	Transactions []TransactionDetailDTO `json:"transactions"`
	TotalCount   int                    `json:"total_count" example:"540"`
	Page         int                    `json:"page" example:"1"`
	Limit        int                    `json:"limit" example:"10"`
}
