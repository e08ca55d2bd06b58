package ports

import (
	"context"
	"time"

	"github.com/usercore/account-service/internal/core/domain"
)

// AuthEventInput is the wire shape handlers hand to the audit pipeline.
type AuthEventInput struct {
	Account   string
	Action    domain.AuthEventAction
	Success   bool
	Reason    string
	Timestamp time.Time
}

// AuditRepository persists authentication audit records.
type AuditRepository interface {
	InsertEvent(ctx context.Context, event *domain.AuthEvent) error
}

// AuditService records one auth event. Implementations must not surface
// failures to the request path that produced the event.
type AuditService interface {
	Record(ctx context.Context, in AuthEventInput) error
}

// AuditSink accepts events for asynchronous recording.
type AuditSink interface {
	Enqueue(event AuthEventInput)
}
