package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/opencivicmap/civicsync/models"
)

// InsertAuditEntry writes one row into sync_audit_log. Callers treat this as
// fire-and-forget: the sync run logs and continues if the insert fails.
func (s *Store) InsertAuditEntry(ctx context.Context, e models.AuditEntry) error {
	var state sql.NullString
	if e.State != nil {
		state = sql.NullString{String: *e.State, Valid: true}
	}

	var errorDetail sql.NullString
	if len(e.ErrorDetail) > 0 {
		raw, err := json.Marshal(e.ErrorDetail)
		if err != nil {
			return fmt.Errorf("failed to marshal audit error detail: %w", err)
		}
		errorDetail = sql.NullString{String: string(raw), Valid: true}
	}

	query := `
		INSERT INTO sync_audit_log (
			run_id, operation, state, status,
			processed, updated, failed, api_calls, api_errors,
			error_detail, duration_ms, source, created_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, NOW())
	`

	_, err := s.db.ExecContext(ctx, query,
		e.RunID, e.Operation, state, e.Status,
		e.Processed, e.Updated, e.Failed, e.APICalls, e.APIErrors,
		errorDetail, e.DurationMS, e.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry (%s, run %s): %w", e.Operation, e.RunID, err)
	}
	return nil
}
