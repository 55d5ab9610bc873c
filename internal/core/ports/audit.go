package ports

import (
	"context"

	"github.com/clinicore/patients-api/internal/core/domain"
)

// AuditRepository persists audit entries.
type AuditRepository interface {
	Insert(ctx context.Context, entry *domain.AuditEntry) error
	FindRecent(ctx context.Context, limit int64) ([]domain.AuditEntry, error)
}

// AuditService processes one entry end-to-end (called from dispatcher workers).
type AuditService interface {
	Process(ctx context.Context, entry domain.AuditEntry) error
}

// AuditRecorder is the producer side used by request-path services. The
// implementation enqueues and returns immediately.
type AuditRecorder interface {
	Record(entry domain.AuditEntry)
}
