package sessionrepo

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/pashagolub/pgxmock/v3"
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

func TestRepository_Create(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	expiresAt := now.Add(24 * time.Hour)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Successful creation",
			mockSetup: func() {
				rows := pgxmock.NewRows([]string{"created_at"}).AddRow(now)
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sessions")).
					WithArgs("sessionid", 1, expiresAt).
					WillReturnRows(rows)
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("INSERT INTO sessions")).
					WithArgs("sessionid", 1, expiresAt).
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			session := &domain.Session{ID: "sessionid", UserID: 1, ExpiresAt: expiresAt}
			result, err := repo.Create(context.Background(), session)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, result)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, now, result.CreatedAt)
		})
	}
}

func TestRepository_Delete(t *testing.T) {
	repo, mock := NewMock(t)

	tests := []struct {
		name      string
		mockSetup func()
		expectErr bool
	}{
		{
			name: "Existing session deleted",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sessions WHERE id = $1")).
					WithArgs("sessionid").
					WillReturnResult(pgxmock.NewResult("DELETE", 1))
			},
		},
		{
			name: "Unknown session is not an error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sessions WHERE id = $1")).
					WithArgs("unknown").
					WillReturnResult(pgxmock.NewResult("DELETE", 0))
			},
		},
		{
			name: "Database error",
			mockSetup: func() {
				mock.ExpectExec(regexp.QuoteMeta("DELETE FROM sessions WHERE id = $1")).
					WithArgs("sessionid").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	sessionIDs := []string{"sessionid", "unknown", "sessionid"}
	for i, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			err := repo.Delete(context.Background(), sessionIDs[i])
			if tt.expectErr {
				assert.Error(t, err)
				return
			}
			assert.NoError(t, err)
		})
	}
}

func TestRepository_FindWithUser(t *testing.T) {
	repo, mock := NewMock(t)
	now := time.Now()
	expiresAt := now.Add(24 * time.Hour)
	columns := []string{
		"id", "user_id", "expires_at", "created_at",
		"id", "email", "password_hash", "full_name", "phone_number", "role", "is_active", "created_at", "updated_at",
	}

	tests := []struct {
		name            string
		sessionID       string
		mockSetup       func()
		expectErr       bool
		expectedSession *domain.Session
		expectedUser    *domain.User
	}{
		{
			name:      "Session with user",
			sessionID: "sessionid",
			mockSetup: func() {
				rows := pgxmock.NewRows(columns).
					AddRow("sessionid", 1, expiresAt, now, 1, "user@example.com", "hash", "Jane Doe", nil, domain.RoleUser, true, now, now)
				mock.ExpectQuery(regexp.QuoteMeta("INNER JOIN users u ON u.id = s.user_id")).
					WithArgs("sessionid").
					WillReturnRows(rows)
			},
			expectedSession: &domain.Session{ID: "sessionid", UserID: 1, ExpiresAt: expiresAt, CreatedAt: now},
			expectedUser:    &domain.User{ID: 1, Email: "user@example.com", PasswordHash: "hash", FullName: "Jane Doe", Role: domain.RoleUser, IsActive: true, CreatedAt: now, UpdatedAt: now},
		},
		{
			name:      "Session does not exist",
			sessionID: "unknown",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("INNER JOIN users u ON u.id = s.user_id")).
					WithArgs("unknown").
					WillReturnError(pgx.ErrNoRows)
			},
		},
		{
			name:      "Database error",
			sessionID: "sessionid",
			mockSetup: func() {
				mock.ExpectQuery(regexp.QuoteMeta("INNER JOIN users u ON u.id = s.user_id")).
					WithArgs("sessionid").
					WillReturnError(errors.New("database error"))
			},
			expectErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.mockSetup()
			session, user, err := repo.FindWithUser(context.Background(), tt.sessionID)
			if tt.expectErr {
				assert.Error(t, err)
				assert.Nil(t, session)
				assert.Nil(t, user)
				return
			}
			assert.NoError(t, err)
			assert.Equal(t, tt.expectedSession, session)
			assert.Equal(t, tt.expectedUser, user)
		})
	}
}
