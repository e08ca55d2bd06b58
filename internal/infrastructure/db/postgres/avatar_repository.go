package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/usercore/account-service/internal/core/domain"
)

// AvatarRepository resolves avatar references from the user_avatars table.
type AvatarRepository struct {
	pool *pgxpool.Pool
}

func NewAvatarRepository(pool *pgxpool.Pool) *AvatarRepository {
	return &AvatarRepository{pool: pool}
}

func (r *AvatarRepository) FindByID(ctx context.Context, id int64) (*domain.UserAvatar, error) {
	var a domain.UserAvatar
	err := r.pool.QueryRow(ctx,
		`SELECT id, url, created_at FROM user_avatars WHERE id = $1`,
		id,
	).Scan(&a.ID, &a.URL, &a.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrAvatarNotFound
		}
		return nil, fmt.Errorf("find avatar: %w", err)
	}
	return &a, nil
}
