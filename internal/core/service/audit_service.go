package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/clinicore/patients-api/internal/api/metrics"
	"github.com/clinicore/patients-api/internal/core/domain"
	"github.com/clinicore/patients-api/internal/core/ports"
)

type auditService struct {
	repo ports.AuditRepository
	log  zerolog.Logger
}

// NewAuditService returns an AuditService that persists entries as they are
// drained from the dispatcher.
func NewAuditService(repo ports.AuditRepository, log zerolog.Logger) ports.AuditService {
	return &auditService{repo: repo, log: log}
}

func (s *auditService) Process(ctx context.Context, entry domain.AuditEntry) error {
	if err := s.repo.Insert(ctx, &entry); err != nil {
		metrics.AuditErrorsTotal.WithLabelValues(entry.Action).Inc()
		return fmt.Errorf("persist audit entry: %w", err)
	}
	metrics.AuditEntriesTotal.WithLabelValues(entry.Action).Inc()
	s.log.Debug().Str("action", entry.Action).Str("actor", entry.Actor).Msg("audit entry persisted")
	return nil
}
