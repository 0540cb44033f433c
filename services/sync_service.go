package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/opencivicmap/civicsync/models"
	"github.com/opencivicmap/civicsync/statecodes"
)

// OfficialSource resolves a roster state into normalized officials. An error
// means the provider was unavailable; the worker never treats it as fatal.
type OfficialSource interface {
	FetchByState(ctx context.Context, st statecodes.State) ([]models.Official, error)
}

// CountySource resolves a roster state into normalized counties.
type CountySource interface {
	FetchByState(ctx context.Context, st statecodes.State) ([]models.County, error)
}

// SyncStore is the slice of the database layer the engine writes through.
type SyncStore interface {
	UpsertOfficial(ctx context.Context, o models.Official) error
	UpsertCounty(ctx context.Context, c models.County) error
	SaveOfficialFallback(ctx context.Context, o models.Official, verifiedAt time.Time) error
	SaveCountyFallback(ctx context.Context, c models.County, verifiedAt time.Time) error
	InsertAuditEntry(ctx context.Context, e models.AuditEntry) error
}

// SyncService drives one full synchronization run: every state in the
// roster, officials and counties lanes each, sequentially, paced by a token
// bucket so the upstream providers never see a burst.
type SyncService struct {
	store     SyncStore
	officials OfficialSource
	counties  CountySource
	limiter   *rate.Limiter
	log       *zap.SugaredLogger
}

func NewSyncService(store SyncStore, officials OfficialSource, counties CountySource, paceInterval time.Duration, log *zap.SugaredLogger) *SyncService {
	limiter := rate.NewLimiter(rate.Inf, 1)
	if paceInterval > 0 {
		limiter = rate.NewLimiter(rate.Every(paceInterval), 1)
	}
	return &SyncService{
		store:     store,
		officials: officials,
		counties:  counties,
		limiter:   limiter,
		log:       log,
	}
}

// Run executes one full sync pass over the fixed state roster and returns
// the aggregated report. Per-record and per-lane failures are absorbed into
// the report; only a cancelled context or a panic escaping the loop aborts
// the run, and both still get a best-effort "failed" run-level audit row.
func (s *SyncService) Run(ctx context.Context) (report *models.RunReport, err error) {
	runID := uuid.NewString()
	started := time.Now()
	roster := statecodes.All()

	report = &models.RunReport{
		RunID:        runID,
		RunDate:      started.UTC(),
		TotalStates:  len(roster),
		SourceCounts: make(map[string]int),
	}

	s.log.Infof("Service: starting sync run %s over %d states", runID, len(roster))

	defer func() {
		if r := recover(); r != nil {
			s.log.Errorf("Service: sync run %s aborted by panic: %v", runID, r)
			s.writeRunFailure(runID, started, fmt.Sprintf("panic: %v", r))
			report = nil
			err = fmt.Errorf("sync run %s aborted: %v", runID, r)
		}
	}()

	for _, st := range roster {
		// Fixed pacing between states keeps us under the providers' rate
		// limits. Wait only errors when the context dies.
		if werr := s.limiter.Wait(ctx); werr != nil {
			s.writeRunFailure(runID, started, fmt.Sprintf("run cancelled before %s: %v", st.Abbr, werr))
			return nil, fmt.Errorf("sync run %s cancelled: %w", runID, werr)
		}

		result := s.syncState(ctx, st)
		s.accumulate(report, result)
		s.writeStateAudit(ctx, runID, result)
	}

	report.DurationSeconds = time.Since(started).Seconds()
	s.writeRunAudit(ctx, runID, report)

	s.log.Infof("Service: sync run %s finished in %.1fs: %d/%d states clean, %d officials, %d counties updated",
		runID, report.DurationSeconds, report.SuccessfulStates, report.TotalStates,
		report.OfficialsUpdated, report.CountiesUpdated)
	return report, nil
}

// syncState processes one state end to end: two independent lanes, each
// fetched once and upserted record by record. A record failure never stops
// the lane; a lane failure never stops the other lane.
func (s *SyncService) syncState(ctx context.Context, st statecodes.State) models.StateSyncResult {
	started := time.Now()
	result := models.StateSyncResult{
		State:     st.Abbr,
		Officials: models.LaneResult{Source: models.SourceNone},
		Counties:  models.LaneResult{Source: models.SourceNone},
	}

	officials, err := s.officials.FetchByState(ctx, st)
	switch {
	case err != nil:
		s.log.Warnf("Service: officials source unavailable for %s: %v", st.Abbr, err)
	case len(officials) == 0:
		s.log.Infof("Service: officials source returned nothing for %s", st.Abbr)
	default:
		result.Officials.Source = officials[0].Source
		result.Officials.Processed = len(officials)
		for _, o := range officials {
			if uerr := s.upsertOfficial(ctx, o); uerr != nil {
				result.Officials.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", o.Name, uerr))
			} else {
				result.Officials.Updated++
			}
		}
	}

	counties, err := s.counties.FetchByState(ctx, st)
	switch {
	case err != nil:
		s.log.Warnf("Service: county source unavailable for %s: %v", st.Abbr, err)
	case len(counties) == 0:
		s.log.Infof("Service: county source returned nothing for %s", st.Abbr)
	default:
		result.Counties.Source = counties[0].Source
		result.Counties.Processed = len(counties)
		for _, c := range counties {
			if uerr := s.upsertCounty(ctx, c); uerr != nil {
				result.Counties.Failed++
				result.Errors = append(result.Errors, fmt.Sprintf("%s: %v", c.Name, uerr))
			} else {
				result.Counties.Updated++
			}
		}
	}

	result.DurationSeconds = time.Since(started).Seconds()
	return result
}

// accumulate folds one state's result into the run report. Each state costs
// two upstream calls regardless of outcome.
func (s *SyncService) accumulate(report *models.RunReport, result models.StateSyncResult) {
	report.Results = append(report.Results, result)
	report.OfficialsUpdated += result.Officials.Updated
	report.CountiesUpdated += result.Counties.Updated
	report.APICalls += 2
	report.APIErrors += len(result.Errors)
	report.SourceCounts[result.Officials.Source]++
	report.SourceCounts[result.Counties.Source]++

	if len(result.Errors) == 0 {
		report.SuccessfulStates++
		return
	}
	report.FailedStates++
	sample := result.Errors
	if len(sample) > 3 {
		sample = sample[:3]
	}
	for _, e := range sample {
		report.TopErrors = append(report.TopErrors, fmt.Sprintf("%s: %s", result.State, e))
	}
}
