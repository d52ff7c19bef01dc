package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
	"github.com/appdotbuilder/kasir-digital/internal/dto"
	"github.com/appdotbuilder/kasir-digital/pkg/utils"
)

func NewMock(t *testing.T) (*CatalogHandler, *MockService) {
	ctrl := gomock.NewController(t)
	service := NewMockService(ctrl)
	handler := New(service)
	defer ctrl.Finish()
	return handler, service
}

func TestGetCategoriesHandler(t *testing.T) {
	handler, service := NewMock(t)

	tests := []struct {
		name         string
		prepareMock  func()
		expectedCode int
		length       int
	}{
		{
			name: "Categories returned",
			prepareMock: func() {
				service.EXPECT().GetCategories(context.Background()).Return([]domain.ProductCategory{
					{ID: 1, Name: "Pulsa", IsActive: true},
					{ID: 2, Name: "Data Packages", IsActive: true},
				}, nil)
			},
			expectedCode: http.StatusOK,
			length:       2,
		},
		{
			name: "Empty catalog",
			prepareMock: func() {
				service.EXPECT().GetCategories(context.Background()).Return(nil, nil)
			},
			expectedCode: http.StatusOK,
			length:       0,
		},
		{
			name: "Service failure",
			prepareMock: func() {
				service.EXPECT().GetCategories(context.Background()).Return(nil, errors.New("database error"))
			},
			expectedCode: http.StatusInternalServerError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("GET", "/api/catalog/categories", nil)
			rr := httptest.NewRecorder()

			handler.GetCategories(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedCode == http.StatusOK {
				var resp []dto.ProductCategoryDTO
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp, tt.length)
			}
		})
	}
}

func TestGetProductsHandler(t *testing.T) {
	handler, service := NewMock(t)
	categoryID := 1

	products := []domain.DigitalProduct{
		{ID: 1, CategoryID: 1, Name: "Telkomsel 10K", Price: decimal.NewFromInt(11000), Provider: "Telkomsel", ProductCode: "TSEL10", IsActive: true},
	}

	tests := []struct {
		name          string
		url           string
		prepareMock   func()
		expectedCode  int
		expectedError string
		length        int
	}{
		{
			name: "All products",
			url:  "/api/catalog/products",
			prepareMock: func() {
				service.EXPECT().GetProducts(context.Background(), nil).Return(products, nil)
			},
			expectedCode: http.StatusOK,
			length:       1,
		},
		{
			name: "Filtered by category",
			url:  "/api/catalog/products?category_id=1",
			prepareMock: func() {
				service.EXPECT().GetProducts(context.Background(), &categoryID).Return(products, nil)
			},
			expectedCode: http.StatusOK,
			length:       1,
		},
		{
			name:          "Invalid category id",
			url:           "/api/catalog/products?category_id=abc",
			prepareMock:   func() {},
			expectedCode:  http.StatusBadRequest,
			expectedError: "Invalid category id",
		},
		{
			name: "Service failure",
			url:  "/api/catalog/products",
			prepareMock: func() {
				service.EXPECT().GetProducts(context.Background(), nil).Return(nil, errors.New("database error"))
			},
			expectedCode:  http.StatusInternalServerError,
			expectedError: "Internal server error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.prepareMock()

			req := httptest.NewRequest("GET", tt.url, nil)
			rr := httptest.NewRecorder()

			handler.GetProducts(rr, req)

			assert.Equal(t, tt.expectedCode, rr.Code)

			if tt.expectedError != "" {
				var resp utils.Response
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Equal(t, tt.expectedError, resp.Message)
			}
			if tt.expectedCode == http.StatusOK {
				var resp []dto.DigitalProductDTO
				err := json.NewDecoder(rr.Body).Decode(&resp)
				assert.NoError(t, err)
				assert.Len(t, resp, tt.length)
			}
		})
	}
}
