package store

import (
	"context"
	"errors"
	"fmt"

	"bokloftet/internal/entity"
	"bokloftet/internal/usecase"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type UserPG struct {
	db *pgxpool.Pool
}

func NewUserPG(db *pgxpool.Pool) *UserPG {
	return &UserPG{db: db}
}

func (r *UserPG) Create(ctx context.Context, user *entity.User) error {
	const query = `
	INSERT INTO users (id, first_name, last_name, email, address, phone_number, password, role)
	VALUES (gen_random_uuid(), $1, $2, $3, $4, $5, $6, COALESCE(NULLIF($7, ''), 'CUSTOMER'))
	RETURNING id, role, created_at, updated_at
	`
	err := r.db.QueryRow(ctx, query, user.FirstName, user.LastName, user.Email,
		user.Address, user.PhoneNumber, user.Password, user.Role).
		Scan(&user.ID, &user.Role, &user.CreatedAt, &user.UpdatedAt)
	if isUniqueViolation(err) {
		return fmt.Errorf("email %s: %w", user.Email, usecase.ErrAlreadyExists)
	}
	return err
}

const userColumns = `id, first_name, last_name, email, address, phone_number, password, role, created_at, updated_at`

func scanUser(row pgx.Row, u *entity.User) error {
	return row.Scan(&u.ID, &u.FirstName, &u.LastName, &u.Email, &u.Address,
		&u.PhoneNumber, &u.Password, &u.Role, &u.CreatedAt, &u.UpdatedAt)
}

func (r *UserPG) GetByEmail(ctx context.Context, email string) (entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE email = $1 LIMIT 1`
	var user entity.User
	if err := scanUser(r.db.QueryRow(ctx, query, email), &user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.User{}, usecase.ErrNotFound
		}
		return entity.User{}, err
	}
	return user, nil
}

func (r *UserPG) GetByID(ctx context.Context, id string) (entity.User, error) {
	query := `SELECT ` + userColumns + ` FROM users WHERE id = $1 LIMIT 1`
	var user entity.User
	if err := scanUser(r.db.QueryRow(ctx, query, id), &user); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return entity.User{}, usecase.ErrNotFound
		}
		return entity.User{}, err
	}
	return user, nil
}
