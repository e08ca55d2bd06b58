package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/usercore/account-service/internal/core/domain"
)

// AuditRepository persists auth events to the auth_events table.
type AuditRepository struct {
	pool *pgxpool.Pool
}

func NewAuditRepository(pool *pgxpool.Pool) *AuditRepository {
	return &AuditRepository{pool: pool}
}

func (r *AuditRepository) InsertEvent(ctx context.Context, event *domain.AuthEvent) error {
	err := r.pool.QueryRow(ctx,
		`INSERT INTO auth_events (account, action, success, reason, created_at)
		 VALUES ($1, $2, $3, $4, $5)
		 RETURNING id`,
		event.Account, event.Action, event.Success, event.Reason, event.CreatedAt,
	).Scan(&event.ID)
	if err != nil {
		return fmt.Errorf("insert auth event: %w", err)
	}
	return nil
}
