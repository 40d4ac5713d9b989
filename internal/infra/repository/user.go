package repository

import (
	"context"
	"errors"
	"time"

	"brow-studio-api/internal/domain/user"
	"brow-studio-api/internal/infra"
	"brow-studio-api/internal/infra/db"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
)

var userColumns = []string{
	"id", "email", "name", "password_hash", "role",
	"last_login", "is_active", "created_at", "updated_at",
}

type UserRepository struct {
	db db.DBTX
}

func NewUserRepository(dbtx db.DBTX) *UserRepository {
	return &UserRepository{db: dbtx}
}

func (r *UserRepository) Create(ctx context.Context, u *user.User) error {
	query, args, err := psql.Insert("users").
		Columns("id", "email", "name", "password_hash", "role", "is_active").
		Values(u.ID(), u.Email().Value(), u.Name(), u.PasswordHash(), u.Role(), u.IsActive()).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build user insert", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to create user", err)
	}
	return nil
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*user.User, error) {
	query, args, err := psql.Select(userColumns...).
		From("users").
		Where(sq.Eq{"email": email}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build user select", err)
	}

	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by email", err)
	}
	return u, nil
}

func (r *UserRepository) FindByID(ctx context.Context, id uuid.UUID) (*user.User, error) {
	query, args, err := psql.Select(userColumns...).
		From("users").
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build user select", err)
	}

	u, err := scanUser(r.db.QueryRow(ctx, query, args...))
	if err != nil {
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return u, nil
}

func (r *UserRepository) UpdateLastLogin(ctx context.Context, id uuid.UUID, at time.Time) error {
	query, args, err := psql.Update("users").
		Set("last_login", at).
		Set("updated_at", at).
		Where(sq.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build last login update", err)
	}
	if _, err := r.db.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to update user last login", err)
	}
	return nil
}

func scanUser(row rowScanner) (*user.User, error) {
	var (
		id                        uuid.UUID
		email, name, passwordHash string
		role                      string
		lastLogin                 *time.Time
		isActive                  bool
		createdAt, updatedAt      time.Time
	)
	if err := row.Scan(
		&id, &email, &name, &passwordHash, &role,
		&lastLogin, &isActive, &createdAt, &updatedAt,
	); err != nil {
		return nil, err
	}

	emailVO, err := user.NewEmail(email)
	if err != nil {
		return nil, err
	}
	roleVO, err := user.NewRole(role)
	if err != nil {
		return nil, err
	}

	return user.ReconstructUser(id, emailVO, name, passwordHash, roleVO, lastLogin, isActive, createdAt, updatedAt), nil
}
