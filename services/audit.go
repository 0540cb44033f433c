package services

import (
	"context"
	"fmt"
	"time"

	"github.com/opencivicmap/civicsync/models"
)

// Audit writes are fire-and-forget: an insert failure is logged and the run
// carries on. The one exception to "never block the run" in the other
// direction is the failure entry, which is written on a fresh context
// because the run's own context may already be dead.

func (s *SyncService) writeStateAudit(ctx context.Context, runID string, result models.StateSyncResult) {
	state := result.State
	entry := models.AuditEntry{
		RunID:     runID,
		Operation: models.AuditOpStateSync,
		State:     &state,
		Status:    stateStatus(result),
		Processed: result.Officials.Processed + result.Counties.Processed,
		Updated:   result.Officials.Updated + result.Counties.Updated,
		Failed:    result.Officials.Failed + result.Counties.Failed,
		APICalls:  2,
		APIErrors: len(result.Errors),
		ErrorDetail: result.Errors,
		DurationMS:  int64(result.DurationSeconds * 1000),
		Source: fmt.Sprintf("officials=%s counties=%s",
			result.Officials.Source, result.Counties.Source),
	}
	if err := s.store.InsertAuditEntry(ctx, entry); err != nil {
		s.log.Warnf("Service: audit write failed for state %s: %v", result.State, err)
	}
}

func (s *SyncService) writeRunAudit(ctx context.Context, runID string, report *models.RunReport) {
	entry := models.AuditEntry{
		RunID:       runID,
		Operation:   models.AuditOpRunSync,
		Status:      runStatus(report),
		Processed:   report.TotalStates,
		Updated:     report.OfficialsUpdated + report.CountiesUpdated,
		Failed:      report.FailedStates,
		APICalls:    report.APICalls,
		APIErrors:   report.APIErrors,
		ErrorDetail: report.TopErrors,
		DurationMS:  int64(report.DurationSeconds * 1000),
		Source:      models.SourceCongress + "+" + models.SourceCensus,
	}
	if err := s.store.InsertAuditEntry(ctx, entry); err != nil {
		s.log.Warnf("Service: run-level audit write failed: %v", err)
	}
}

// writeRunFailure records the fatal-abort case: elapsed time so far plus the
// cause, status always failed.
func (s *SyncService) writeRunFailure(runID string, started time.Time, cause string) {
	entry := models.AuditEntry{
		RunID:       runID,
		Operation:   models.AuditOpRunSync,
		Status:      models.AuditStatusFailed,
		ErrorDetail: []string{cause},
		DurationMS:  time.Since(started).Milliseconds(),
		Source:      models.SourceCongress + "+" + models.SourceCensus,
	}
	if err := s.store.InsertAuditEntry(context.Background(), entry); err != nil {
		s.log.Errorf("Service: failed to write abort audit entry for run %s: %v", runID, err)
	}
}

// stateStatus classifies a state for the audit log: clean with both lanes
// served is success, every record lost is failed, anything in between
// (errors, or a lane with no provider data) is partial.
func stateStatus(result models.StateSyncResult) string {
	totalProcessed := result.Officials.Processed + result.Counties.Processed
	totalUpdated := result.Officials.Updated + result.Counties.Updated

	if len(result.Errors) == 0 &&
		result.Officials.Source != models.SourceNone &&
		result.Counties.Source != models.SourceNone {
		return models.AuditStatusSuccess
	}
	if totalProcessed > 0 && totalUpdated == 0 && len(result.Errors) > 0 {
		return models.AuditStatusFailed
	}
	return models.AuditStatusPartial
}

func runStatus(report *models.RunReport) string {
	switch {
	case report.FailedStates == 0:
		return models.AuditStatusSuccess
	case report.SuccessfulStates == 0:
		return models.AuditStatusFailed
	default:
		return models.AuditStatusPartial
	}
}
