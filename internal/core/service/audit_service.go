package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/usercore/account-service/internal/core/domain"
	"github.com/usercore/account-service/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists auth events.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

// Record persists one auth event. Storage failures are logged and
// returned so the caller can count them, but they never reach the request
// that produced the event.
func (s *auditService) Record(ctx context.Context, in ports.AuthEventInput) error {
	ts := in.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	event := &domain.AuthEvent{
		Account:   in.Account,
		Action:    in.Action,
		Success:   in.Success,
		Reason:    in.Reason,
		CreatedAt: ts,
	}
	if err := s.repo.InsertEvent(ctx, event); err != nil {
		s.log.Warn().Err(err).Str("account", in.Account).Str("action", string(in.Action)).Msg("failed to persist auth event")
		return fmt.Errorf("record auth event: %w", err)
	}
	return nil
}
