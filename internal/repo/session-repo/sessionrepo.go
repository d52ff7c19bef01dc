package sessionrepo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"github.com/appdotbuilder/kasir-digital/internal/domain"
	"github.com/appdotbuilder/kasir-digital/internal/pg"
)

type Repository struct {
	db pg.Database
}

func New(db pg.Database) *Repository {
	return &Repository{
		db: db,
	}
}

func (r *Repository) Create(ctx context.Context, session *domain.Session) (*domain.Session, error) {
	query := `
        INSERT INTO sessions (id, user_id, expires_at)
        VALUES ($1, $2, $3)
        RETURNING created_at
    `
	err := r.db.QueryRow(ctx, query, session.ID, session.UserID, session.ExpiresAt).Scan(&session.CreatedAt)
	if err != nil {
		zap.L().Error("can't save session", zap.Error(err))
		return nil, err
	}
	return session, nil
}

// Delete removes the session if present. Deleting an unknown id is not an error.
func (r *Repository) Delete(ctx context.Context, sessionID string) error {
	_, err := r.db.Exec(ctx, `DELETE FROM sessions WHERE id = $1`, sessionID)
	if err != nil {
		zap.L().Error("can't delete session", zap.Error(err))
		return err
	}
	return nil
}

// FindWithUser returns the session joined with its owning user, or nil, nil
// when the session does not exist.
func (r *Repository) FindWithUser(ctx context.Context, sessionID string) (*domain.Session, *domain.User, error) {
	query := `
        SELECT s.id, s.user_id, s.expires_at, s.created_at,
               u.id, u.email, u.password_hash, u.full_name, u.phone_number, u.role, u.is_active, u.created_at, u.updated_at
        FROM sessions s
        INNER JOIN users u ON u.id = s.user_id
        WHERE s.id = $1
    `
	row := r.db.QueryRow(ctx, query, sessionID)
	var session domain.Session
	var user domain.User
	err := row.Scan(
		&session.ID, &session.UserID, &session.ExpiresAt, &session.CreatedAt,
		&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.PhoneNumber,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil, nil
		}
		zap.L().Error("can't find session", zap.Error(err))
		return nil, nil, err
	}
	return &session, &user, nil
}
