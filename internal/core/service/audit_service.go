package service

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/gatewise/auth-service/internal/core/domain"
	"github.com/gatewise/auth-service/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists events to the audit
// repository.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Record(ctx context.Context, in ports.AuthEventInput) error {
	ts := in.Timestamp
	if ts.IsZero() {
		ts = time.Now().UTC()
	}

	event := &domain.AuthEvent{
		Subject:   in.Subject,
		Action:    in.Action,
		Outcome:   in.Outcome,
		Reason:    in.Reason,
		Timestamp: ts,
	}
	if err := s.repo.Insert(ctx, event); err != nil {
		return fmt.Errorf("record auth event: %w", err)
	}

	s.log.Debug().
		Str("subject", in.Subject).
		Str("action", in.Action).
		Str("outcome", in.Outcome).
		Msg("auth event recorded")

	return nil
}
