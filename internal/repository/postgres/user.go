package postgres

import (
	"context"
	"database/sql"
	"time"

	"chamber-connect-backend/internal/domain"
	"chamber-connect-backend/internal/repository"
)

type userRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) repository.UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, u *domain.User) error {
	query := `INSERT INTO users (email, password_hash, name, phone_number, role, avatar_url, created_at)
	          VALUES ($1, $2, $3, $4, $5, $6, $7) RETURNING id`
	u.CreatedAt = time.Now().UTC()
	return r.db.QueryRowContext(ctx, query,
		u.Email, u.PasswordHash, u.Name, u.PhoneNumber, u.Role, u.AvatarURL, u.CreatedAt,
	).Scan(&u.ID)
}

const userColumns = `id, email, password_hash, name, phone_number, role, avatar_url, created_at`

func (r *userRepository) scanUser(row *sql.Row) (*domain.User, error) {
	u := &domain.User{}
	err := row.Scan(&u.ID, &u.Email, &u.PasswordHash, &u.Name, &u.PhoneNumber, &u.Role, &u.AvatarURL, &u.CreatedAt)
	if err != nil {
		return nil, err
	}
	return u, nil
}

func (r *userRepository) GetByID(ctx context.Context, id int32) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, id))
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1`
	return r.scanUser(r.db.QueryRowContext(ctx, query, email))
}

func (r *userRepository) Update(ctx context.Context, u *domain.User) error {
	query := `UPDATE users SET email = $1, name = $2, phone_number = $3, role = $4, avatar_url = $5 WHERE id = $6`
	_, err := r.db.ExecContext(ctx, query, u.Email, u.Name, u.PhoneNumber, u.Role, u.AvatarURL, u.ID)
	return err
}
