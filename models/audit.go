package models

import "time"

// Audit operation kinds and statuses written to sync_audit_log.
const (
	AuditOpStateSync = "state_sync"
	AuditOpRunSync   = "run_sync"

	AuditStatusSuccess = "success"
	AuditStatusPartial = "partial"
	AuditStatusFailed  = "failed"
)

// AuditEntry is one row of the audit log sink. Writes are fire-and-forget:
// a failed insert is logged and never aborts the run that produced it.
type AuditEntry struct {
	ID         int64     `db:"id"`
	RunID      string    `db:"run_id"`
	Operation  string    `db:"operation"`
	State      *string   `db:"state"` // nil for run-level entries
	Status     string    `db:"status"`
	Processed  int       `db:"processed"`
	Updated    int       `db:"updated"`
	Failed     int       `db:"failed"`
	APICalls    int       `db:"api_calls"`
	APIErrors   int       `db:"api_errors"`
	ErrorDetail []string  `db:"-"` // stored as a JSON array in error_detail
	DurationMS  int64     `db:"duration_ms"`
	Source      string    `db:"source"` // provenance summary, e.g. "officials=congress.gov counties=none"
	CreatedAt   time.Time `db:"created_at"`
}
