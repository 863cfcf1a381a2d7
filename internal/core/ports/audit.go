package ports

import (
	"context"
	"time"

	"github.com/gatewise/auth-service/internal/core/domain"
)

// AuthEventInput is the DTO handed from producers (services, middleware) to
// the audit pipeline.
type AuthEventInput struct {
	Subject   string
	Action    string
	Outcome   string
	Reason    string
	Timestamp time.Time
}

// AuditSink accepts audit events for asynchronous recording. Enqueue must be
// cheap; delivery ordering is guaranteed per subject only.
type AuditSink interface {
	Enqueue(event AuthEventInput)
}

// AuditService records a single audit event.
type AuditService interface {
	Record(ctx context.Context, event AuthEventInput) error
}

// AuditRepository persists audit trail entries.
type AuditRepository interface {
	Insert(ctx context.Context, event *domain.AuthEvent) error
}
