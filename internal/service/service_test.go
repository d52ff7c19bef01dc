package service

import (
	"testing"
	"time"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	gomock "go.uber.org/mock/gomock"

	"github.com/appdotbuilder/kasir-digital/internal/config"
	"github.com/appdotbuilder/kasir-digital/internal/pg"
	"github.com/appdotbuilder/kasir-digital/internal/provider"
	"github.com/appdotbuilder/kasir-digital/internal/repo"
)

func TestNew(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	defer mockDB.Close()

	repos := repo.New(mockDB)
	txManager := pg.NewMockTXManager(ctrl)
	fulfillment := provider.NewMockProvider(ctrl)
	cfg := &config.Config{ProviderTimeout: 5 * time.Second}

	services := New(repos, txManager, cfg, fulfillment)

	assert.NotNil(t, services.AuthService)
	assert.NotNil(t, services.WalletService)
	assert.NotNil(t, services.CatalogService)
	assert.NotNil(t, services.PurchaseService)
	assert.NotNil(t, services.AdminService)
}
