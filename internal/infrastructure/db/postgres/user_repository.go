package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/usercore/account-service/internal/core/domain"
)

const uniqueViolation = "23505"

const userColumns = `id, account, password_digest, username, avatar_id, gender,
	phone, email, created_at, updated_at, status, role, deleted`

// UserRepository is the pgx-backed implementation of ports.UserRepository.
// Soft-deleted rows are invisible to every query.
type UserRepository struct {
	pool *pgxpool.Pool
}

func NewUserRepository(pool *pgxpool.Pool) *UserRepository {
	return &UserRepository{pool: pool}
}

// CountByAccount returns the number of non-deleted users with the exact account.
func (r *UserRepository) CountByAccount(ctx context.Context, account string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE account = $1 AND NOT deleted`,
		account,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count by account: %w", err)
	}
	return count, nil
}

// FindByAccount returns the user with the exact account.
func (r *UserRepository) FindByAccount(ctx context.Context, account string) (*domain.User, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+userColumns+` FROM users WHERE account = $1 AND NOT deleted`,
		account,
	)

	user, err := scanUser(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAccountNotFound
		}
		return nil, fmt.Errorf("find by account: %w", err)
	}
	return user, nil
}

// Insert persists a new user and assigns its identifier. A unique index
// violation on account maps to domain.ErrAccountExists.
func (r *UserRepository) Insert(ctx context.Context, user *domain.User) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO users (account, password_digest, username, avatar_id, gender,
			phone, email, created_at, updated_at, status, role)
		 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
		 RETURNING id`,
		user.Account, user.PasswordDigest, user.Username, user.AvatarID, user.Gender,
		user.Phone, user.Email, user.CreatedAt, user.UpdatedAt, user.Status, user.Role,
	).Scan(&user.ID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return domain.ErrAccountExists
		}
		return fmt.Errorf("insert user: %w", err)
	}
	return nil
}

// PageByName returns one page of users whose username contains name, plus
// the total match count. An empty name matches every row. Rows are ordered
// by id so pages are stable between the count and the fetch.
func (r *UserRepository) PageByName(ctx context.Context, name string, page, pageSize int64) ([]domain.User, int64, error) {
	if page < 1 {
		page = 1
	}

	filter := `NOT deleted`
	args := []any{pageSize, (page - 1) * pageSize}
	countArgs := []any{}
	if name != "" {
		filter += ` AND username LIKE '%' || $3 || '%'`
		args = append(args, name)
		countArgs = append(countArgs, name)
	}

	countFilter := `NOT deleted`
	if name != "" {
		countFilter += ` AND username LIKE '%' || $1 || '%'`
	}

	var total int64
	err := r.pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM users WHERE `+countFilter,
		countArgs...,
	).Scan(&total)
	if err != nil {
		return nil, 0, fmt.Errorf("count by name: %w", err)
	}

	rows, err := r.pool.Query(ctx,
		`SELECT `+userColumns+` FROM users WHERE `+filter+`
		 ORDER BY id LIMIT $1 OFFSET $2`,
		args...,
	)
	if err != nil {
		return nil, 0, fmt.Errorf("page by name: %w", err)
	}
	defer rows.Close()

	var users []domain.User
	for rows.Next() {
		user, err := scanUser(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("page by name: %w", err)
		}
		users = append(users, *user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("page by name: %w", err)
	}

	return users, total, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	var u domain.User
	err := row.Scan(
		&u.ID, &u.Account, &u.PasswordDigest, &u.Username, &u.AvatarID, &u.Gender,
		&u.Phone, &u.Email, &u.CreatedAt, &u.UpdatedAt, &u.Status, &u.Role, &u.Deleted,
	)
	if err != nil {
		return nil, err
	}
	return &u, nil
}
