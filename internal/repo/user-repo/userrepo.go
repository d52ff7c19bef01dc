package userrepo

import (
	"context"
	"errors"
	"time"

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

const userColumns = "id, email, password_hash, full_name, phone_number, role, is_active, created_at, updated_at"

func scanUser(row pgx.Row) (*domain.User, error) {
	var user domain.User
	err := row.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.PhoneNumber,
		&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *Repository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, email))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user by email", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (r *Repository) FindByID(ctx context.Context, id int) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	user, err := scanUser(r.db.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't find user by id", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (r *Repository) Create(ctx context.Context, user *domain.User) (*domain.User, error) {
	query := `
        INSERT INTO users (email, password_hash, full_name, phone_number, role, is_active)
        VALUES ($1, $2, $3, $4, $5, $6)
        RETURNING id, created_at, updated_at
    `
	err := r.db.QueryRow(ctx, query, user.Email, user.PasswordHash, user.FullName, user.PhoneNumber, user.Role, user.IsActive).
		Scan(&user.ID, &user.CreatedAt, &user.UpdatedAt)
	if err != nil {
		zap.L().Error("can't save user", zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (r *Repository) FindAll(ctx context.Context) ([]domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users ORDER BY id`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		zap.L().Error("can't list users", zap.Error(err))
		return nil, err
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		var user domain.User
		err := rows.Scan(&user.ID, &user.Email, &user.PasswordHash, &user.FullName, &user.PhoneNumber,
			&user.Role, &user.IsActive, &user.CreatedAt, &user.UpdatedAt)
		if err != nil {
			zap.L().Error("can't scan user row", zap.Error(err))
			return nil, err
		}
		users = append(users, user)
	}
	return users, nil
}

// UpdateFields holds the optional fields of a partial user update. Nil fields
// keep their stored value.
type UpdateFields struct {
	FullName    *string
	PhoneNumber *string
	IsActive    *bool
	Role        *string
}

// Update applies a partial update and always refreshes updated_at. Returns
// nil, nil when no user has the given id.
func (r *Repository) Update(ctx context.Context, id int, fields UpdateFields) (*domain.User, error) {
	query := `
        UPDATE users
        SET full_name    = COALESCE($1, full_name),
            phone_number = COALESCE($2, phone_number),
            is_active    = COALESCE($3, is_active),
            role         = COALESCE($4, role),
            updated_at   = NOW()
        WHERE id = $5
        RETURNING ` + userColumns
	user, err := scanUser(r.db.QueryRow(ctx, query, fields.FullName, fields.PhoneNumber, fields.IsActive, fields.Role, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		zap.L().Error("can't update user", zap.Int("id", id), zap.Error(err))
		return nil, err
	}
	return user, nil
}

func (r *Repository) Count(ctx context.Context) (int, error) {
	var count int
	err := r.db.QueryRow(ctx, `SELECT COUNT(*) FROM users`).Scan(&count)
	if err != nil {
		zap.L().Error("can't count users", zap.Error(err))
		return 0, err
	}
	return count, nil
}

// CountActiveWithRecentSession counts distinct active users with at least one
// session created since the given time.
func (r *Repository) CountActiveWithRecentSession(ctx context.Context, since time.Time) (int, error) {
	query := `
        SELECT COUNT(DISTINCT u.id)
        FROM users u
        INNER JOIN sessions s ON s.user_id = u.id
        WHERE u.is_active = TRUE AND s.created_at >= $1
    `
	var count int
	err := r.db.QueryRow(ctx, query, since).Scan(&count)
	if err != nil {
		zap.L().Error("can't count active users", zap.Error(err))
		return 0, err
	}
	return count, nil
}
