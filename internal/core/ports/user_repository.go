package ports

import (
	"context"

	"github.com/usercore/account-service/internal/core/domain"
)

// UserRepository is the persistence contract for account records. The
// store owns identifier assignment and enforces account uniqueness
// atomically; two concurrent Inserts for the same account must leave
// exactly one row, with the loser receiving domain.ErrAccountExists.
type UserRepository interface {
	// CountByAccount returns how many non-deleted users hold the exact account.
	CountByAccount(ctx context.Context, account string) (int64, error)
	// FindByAccount returns the user with the exact account, or
	// domain.ErrAccountNotFound when absent.
	FindByAccount(ctx context.Context, account string) (*domain.User, error)
	// Insert persists a new user and assigns user.ID. A uniqueness
	// violation surfaces as domain.ErrAccountExists.
	Insert(ctx context.Context, user *domain.User) error
	// PageByName returns one page of users whose display name contains
	// name as a substring, plus the total number of matching rows. An
	// empty name matches every row.
	PageByName(ctx context.Context, name string, page, pageSize int64) ([]domain.User, int64, error)
}

// AvatarRepository resolves stored avatar references.
type AvatarRepository interface {
	// FindByID returns the avatar with the given id, or
	// domain.ErrAvatarNotFound when absent.
	FindByID(ctx context.Context, id int64) (*domain.UserAvatar, error)
}
