package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
)

type ProductCategoryDTO struct {
	ID          int       `json:"id" example:"1"`
	Name        string    `json:"name" example:"Mobile Credit"`
	Description *string   `json:"description"`
	IsActive    bool      `json:"is_active" example:"true"`
	CreatedAt   time.Time `json:"created_at"`
}

func NewProductCategoryDTO(category domain.ProductCategory) ProductCategoryDTO {
	return ProductCategoryDTO{
		ID:          category.ID,
		Name:        category.Name,
		Description: category.Description,
		IsActive:    category.IsActive,
		CreatedAt:   category.CreatedAt,
	}
}

type DigitalProductDTO struct {
	ID          int             `json:"id" example:"1"`
	CategoryID  int             `json:"category_id" example:"1"`
	Name        string          `json:"name" example:"Telkomsel 25K"`
	Description *string         `json:"description"`
	Price       decimal.Decimal `json:"price" example:"26500.00"`
	Provider    string          `json:"provider" example:"Telkomsel"`
	ProductCode string          `json:"product_code" example:"TSEL-25"`
	IsActive    bool            `json:"is_active" example:"true"`
	CreatedAt   time.Time       `json:"created_at"`
	UpdatedAt   time.Time       `json:"updated_at"`
}

func NewDigitalProductDTO(product domain.DigitalProduct) DigitalProductDTO {
	return DigitalProductDTO{
		ID:          product.ID,
		CategoryID:  product.CategoryID,
		Name:        product.Name,
		Description: product.Description,
		Price:       product.Price,
		Provider:    product.Provider,
		ProductCode: product.ProductCode,
		IsActive:    product.IsActive,
		CreatedAt:   product.CreatedAt,
		UpdatedAt:   product.UpdatedAt,
	}
}
