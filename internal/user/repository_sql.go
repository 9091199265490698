package user

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/wichananm65/user-registration/internal/database"
)

// SQLRepository stores users in the relational `users` table. Queries are
// written with `?` placeholders and rebound for the driver in use.
type SQLRepository struct {
	db *sqlx.DB
}

const (
	listUsersQuery = `
		SELECT id, name, gender, email, country, created_at
		FROM users
		ORDER BY created_at DESC, id DESC
	`
	getUserByIDQuery = `
		SELECT id, name, gender, email, country, created_at
		FROM users
		WHERE id = ?
	`
	insertUserQuery = `
		INSERT INTO users (name, gender, email, country)
		VALUES (?, ?, ?, ?)
		RETURNING id
	`
	deleteUserQuery = `DELETE FROM users WHERE id = ?`
)

var _ Repository = (*SQLRepository)(nil)

func NewSQLRepository(db *sqlx.DB) *SQLRepository {
	return &SQLRepository{db: db}
}

func (r *SQLRepository) List(ctx context.Context) ([]User, error) {
	users := make([]User, 0)
	if err := r.db.SelectContext(ctx, &users, r.db.Rebind(listUsersQuery)); err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}

func (r *SQLRepository) GetByID(ctx context.Context, id int64) (User, error) {
	var user User
	err := r.db.GetContext(ctx, &user, r.db.Rebind(getUserByIDQuery), id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return User{}, ErrNotFound
		}
		return User{}, fmt.Errorf("query user id=%d: %w", id, err)
	}
	return user, nil
}

func (r *SQLRepository) Create(ctx context.Context, user User) (User, error) {
	var id int64
	err := r.db.QueryRowxContext(ctx, r.db.Rebind(insertUserQuery),
		user.Name, user.Gender, user.Email, user.Country,
	).Scan(&id)
	if err != nil {
		if database.IsUniqueViolation(err) {
			return User{}, ErrEmailExists
		}
		return User{}, fmt.Errorf("insert user: %w", err)
	}

	// read back so created_at carries the store's own default
	created, err := r.GetByID(ctx, id)
	if err != nil {
		return User{}, fmt.Errorf("reload user id=%d: %w", id, err)
	}
	return created, nil
}

func (r *SQLRepository) Delete(ctx context.Context, id int64) error {
	res, err := r.db.ExecContext(ctx, r.db.Rebind(deleteUserQuery), id)
	if err != nil {
		return fmt.Errorf("delete user id=%d: %w", id, err)
	}

	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("rows affected for user id=%d: %w", id, err)
	}
	if affected == 0 {
		return ErrNotFound
	}
	return nil
}
