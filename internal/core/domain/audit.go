package domain

import "time"

// Audit actions recorded for mutating operations.
const (
	AuditSignup        = "user.signup"
	AuditLogin         = "user.login"
	AuditPatientCreate = "patient.create"
	AuditPatientUpdate = "patient.update"
	AuditPatientDelete = "patient.delete"
)

// AuditEntry records who did what to which resource. Entries are written
// asynchronously and never block or fail the originating request.
type AuditEntry struct {
	Actor      string    `json:"actor"`
	Role       string    `json:"role"`
	Action     string    `json:"action"`
	Resource   string    `json:"resource"`
	ResourceID string    `json:"resource_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}
