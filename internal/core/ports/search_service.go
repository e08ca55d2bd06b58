package ports

import (
	"context"

	"github.com/usercore/account-service/internal/core/domain"
)

type SearchService interface {
	// SearchByName returns one page of users whose display name contains
	// name. A blank name matches all users. Requesting a page past the end
	// serves the last available page instead of an empty one.
	SearchByName(ctx context.Context, name string, page, pageSize int64) (*domain.UserPage, error)
}
