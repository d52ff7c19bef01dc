package catalog

import (
	"context"
	"net/http"
	"strconv"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
	"github.com/appdotbuilder/kasir-digital/internal/dto"
	"github.com/appdotbuilder/kasir-digital/pkg/utils"
)

type Service interface {
	GetCategories(ctx context.Context) ([]domain.ProductCategory, error)
	GetProducts(ctx context.Context, categoryID *int) ([]domain.DigitalProduct, error)
}

type CatalogHandler struct {
	catalogService Service
}

func New(catalogService Service) *CatalogHandler {
	return &CatalogHandler{
		catalogService: catalogService,
	}
}

// GetCategories godoc
//
//	@Summary		List product categories
//	@Description	List all active product categories.
//	@Tags			Catalog
//	@Produce		json
//	@Success		200	{array}		dto.ProductCategoryDTO
//	@Failure		500	{object}	utils.Response	"Internal server error"
//	@Router			/api/catalog/categories [get]
func (h *CatalogHandler) GetCategories(w http.ResponseWriter, r *http.Request) {
	categories, err := h.catalogService.GetCategories(r.Context())
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.ProductCategoryDTO, len(categories))
	for i, category := range categories {
		response[i] = dto.NewProductCategoryDTO(category)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}

// GetProducts godoc
//
//	@Summary		List digital products
//	@Description	List active products in active categories, optionally filtered by category.
//	@Tags			Catalog
//	@Produce		json
//	@Param			category_id	query		int	false	"Category filter"
//	@Success		200			{array}		dto.DigitalProductDTO
//	@Failure		400			{object}	utils.Response	"Invalid category id"
//	@Failure		500			{object}	utils.Response	"Internal server error"
//	@Router			/api/catalog/products [get]
func (h *CatalogHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	var categoryID *int
	if raw := r.URL.Query().Get("category_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			utils.RespondWithError(w, http.StatusBadRequest, "Invalid category id")
			return
		}
		categoryID = &id
	}

	products, err := h.catalogService.GetProducts(r.Context(), categoryID)
	if err != nil {
		utils.RespondWithError(w, http.StatusInternalServerError, "Internal server error")
		return
	}

	response := make([]dto.DigitalProductDTO, len(products))
	for i, product := range products {
		response[i] = dto.NewDigitalProductDTO(product)
	}
	utils.RespondWithJSON(w, http.StatusOK, response)
}
