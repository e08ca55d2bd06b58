package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/usercore/account-service/internal/core/domain"
	"github.com/usercore/account-service/internal/core/ports"
)

// AuthService implements registration, login, and session-backed reads of
// the current user. It holds no state of its own; all coordination lives
// in the repository and the session store.
type AuthService struct {
	repo  ports.UserRepository
	codec *PasswordCodec
	log   zerolog.Logger
}

func NewAuthService(repo ports.UserRepository, codec *PasswordCodec, log zerolog.Logger) *AuthService {
	return &AuthService{repo: repo, codec: codec, log: log}
}

// Register creates a new account after validating credentials and
// checking for duplicates. On success exactly one row is inserted and its
// assigned identifier returned; every failure path leaves the store
// untouched.
func (s *AuthService) Register(ctx context.Context, account, password, checkPassword string) (int64, error) {
	if account == "" || password == "" || checkPassword == "" {
		return 0, domain.ErrInvalidRequest
	}
	if password != checkPassword {
		return 0, &domain.ValidationError{
			Rule:    domain.RulePasswordMismatch,
			Message: "password and confirmation do not match",
		}
	}
	if err := domain.CheckAccount(account); err != nil {
		return 0, err
	}
	if err := domain.CheckPassword(password); err != nil {
		return 0, err
	}

	count, err := s.repo.CountByAccount(ctx, account)
	if err != nil {
		return 0, fmt.Errorf("register: %w", err)
	}
	if count > 0 {
		s.log.Debug().Str("account", account).Msg("account already taken")
		return 0, domain.ErrAccountExists
	}

	now := time.Now().UTC()
	user := &domain.User{
		Account:        account,
		PasswordDigest: s.codec.Encrypt(password),
		Status:         domain.StatusActive,
		Role:           domain.RoleNormal,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := s.repo.Insert(ctx, user); err != nil {
		// The count check above can race with a concurrent registration;
		// the unique index settles it and the loser sees ErrAccountExists.
		if errors.Is(err, domain.ErrAccountExists) {
			return 0, err
		}
		s.log.Error().Err(err).Str("account", account).Msg("user insert failed")
		return 0, fmt.Errorf("%w: %v", domain.ErrRegistrationFailed, err)
	}

	s.log.Info().Str("account", account).Int64("user_id", user.ID).Msg("account registered")
	return user.ID, nil
}

// Login authenticates an account and stores the sanitized user in the
// session under domain.SessionKeyLoginState. A missing account and a
// wrong password are distinct errors internally; the transport layer is
// expected to present them identically.
func (s *AuthService) Login(ctx context.Context, account, password string, session ports.Session) (*domain.SanitizedUser, error) {
	if account == "" || password == "" {
		return nil, domain.ErrInvalidRequest
	}
	if err := domain.CheckAccount(account); err != nil {
		return nil, err
	}
	if err := domain.CheckPassword(password); err != nil {
		return nil, err
	}

	digest := s.codec.Encrypt(password)

	user, err := s.repo.FindByAccount(ctx, account)
	if err != nil {
		if errors.Is(err, domain.ErrAccountNotFound) {
			s.log.Debug().Str("account", account).Msg("login for unknown account")
			return nil, err
		}
		return nil, fmt.Errorf("login: %w", err)
	}
	if user.PasswordDigest != digest {
		s.log.Debug().Str("account", account).Msg("password mismatch")
		return nil, domain.ErrBadCredentials
	}

	safe := user.Sanitize()

	if session == nil {
		return nil, domain.ErrSessionUnavailable
	}
	if err := session.Set(ctx, domain.SessionKeyLoginState, safe); err != nil {
		s.log.Error().Err(err).Str("account", account).Msg("session write failed")
		return nil, fmt.Errorf("%w: %v", domain.ErrSessionUnavailable, err)
	}

	s.log.Info().Str("account", account).Int64("user_id", user.ID).Msg("login succeeded")
	return safe, nil
}

// CurrentUser returns the snapshot stored at login, or
// domain.ErrNotAuthenticated when the session holds none.
func (s *AuthService) CurrentUser(ctx context.Context, session ports.Session) (*domain.SanitizedUser, error) {
	if session == nil {
		return nil, domain.ErrSessionUnavailable
	}
	user, err := session.Get(ctx, domain.SessionKeyLoginState)
	if err != nil {
		if errors.Is(err, domain.ErrNotAuthenticated) {
			return nil, err
		}
		return nil, fmt.Errorf("current user: %w", err)
	}
	return user, nil
}

// Logout drops the login state from the session. Logging out an already
// logged-out session is not an error.
func (s *AuthService) Logout(ctx context.Context, session ports.Session) error {
	if session == nil {
		return domain.ErrSessionUnavailable
	}
	if err := session.Delete(ctx, domain.SessionKeyLoginState); err != nil {
		return fmt.Errorf("logout: %w", err)
	}
	return nil
}
