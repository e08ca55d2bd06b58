package ports

import (
	"context"

	"github.com/usercore/account-service/internal/core/domain"
)

type AuthService interface {
	// Register creates a new account and returns its assigned identifier.
	Register(ctx context.Context, account, password, checkPassword string) (int64, error)
	// Login authenticates the account, writes the sanitized user into the
	// session under domain.SessionKeyLoginState, and returns it.
	Login(ctx context.Context, account, password string, session Session) (*domain.SanitizedUser, error)
	// CurrentUser reads the logged-in user snapshot back from the session.
	CurrentUser(ctx context.Context, session Session) (*domain.SanitizedUser, error)
	// Logout drops the login state from the session.
	Logout(ctx context.Context, session Session) error
}
