package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/usercore/account-service/internal/core/domain"
	"github.com/usercore/account-service/internal/core/ports"
)

const defaultPageSize = 10

// SearchService serves paginated, name-filtered user listings with every
// row sanitized.
type SearchService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

func NewSearchService(repo ports.UserRepository, log zerolog.Logger) *SearchService {
	return &SearchService{repo: repo, log: log}
}

// SearchByName pages through users whose display name contains name as a
// substring. A blank name, including whitespace-only, matches every user;
// that is deliberate, not a missing guard. When the requested page lies
// past the end and at least one row matches, the query is re-issued at the
// last available page.
func (s *SearchService) SearchByName(ctx context.Context, name string, page, pageSize int64) (*domain.UserPage, error) {
	if strings.TrimSpace(name) == "" {
		name = ""
	}
	if page < 1 {
		page = 1
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}

	rows, total, err := s.repo.PageByName(ctx, name, page, pageSize)
	if err != nil {
		return nil, fmt.Errorf("search users: %w", err)
	}

	totalPages := domain.PageCount(total, pageSize)
	if page > totalPages && totalPages > 0 {
		s.log.Debug().
			Int64("requested_page", page).
			Int64("last_page", totalPages).
			Msg("page past end, serving last page")
		page = totalPages
		rows, total, err = s.repo.PageByName(ctx, name, page, pageSize)
		if err != nil {
			return nil, fmt.Errorf("search users: %w", err)
		}
		totalPages = domain.PageCount(total, pageSize)
	}

	users := make([]domain.SanitizedUser, 0, len(rows))
	for i := range rows {
		users = append(users, *rows[i].Sanitize())
	}

	return &domain.UserPage{
		Users:      users,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
		TotalRows:  total,
	}, nil
}
