package repo

import (
	"testing"

	pgxmock "github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"

	productrepo "github.com/appdotbuilder/kasir-digital/internal/repo/product-repo"
	sessionrepo "github.com/appdotbuilder/kasir-digital/internal/repo/session-repo"
	transactionrepo "github.com/appdotbuilder/kasir-digital/internal/repo/transaction-repo"
	userrepo "github.com/appdotbuilder/kasir-digital/internal/repo/user-repo"
	walletrepo "github.com/appdotbuilder/kasir-digital/internal/repo/wallet-repo"
)

func NewMock(t *testing.T) (*Repositories, pgxmock.PgxPoolIface) {
	mockDB, err := pgxmock.NewPool()
	assert.NoError(t, err)
	repo := New(mockDB)
	defer mockDB.Close()

	return repo, mockDB
}

func TestNew(t *testing.T) {
	repo, mock := NewMock(t)

	assert.NotNil(t, repo.UserRepo)
	assert.NotNil(t, repo.WalletRepo)
	assert.NotNil(t, repo.ProductRepo)
	assert.NotNil(t, repo.TransactionRepo)
	assert.NotNil(t, repo.SessionRepo)

	assert.IsType(t, &userrepo.Repository{}, repo.UserRepo)
	assert.IsType(t, &walletrepo.Repository{}, repo.WalletRepo)
	assert.IsType(t, &productrepo.Repository{}, repo.ProductRepo)
	assert.IsType(t, &transactionrepo.Repository{}, repo.TransactionRepo)
	assert.IsType(t, &sessionrepo.Repository{}, repo.SessionRepo)

	if err := mock.ExpectationsWereMet(); err != nil {
		t.Errorf("there were unmet expectations: %v", err)
	}
}
