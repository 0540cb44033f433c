package services

import (
	"context"
	"time"

	"github.com/opencivicmap/civicsync/models"
)

// The upsert gateway is the unit of failure isolation: one canonical write
// per record, followed by a best-effort fallback write. The fallback tables
// only need to stay no worse than the canonical store, so a fallback failure
// is logged and swallowed; it must never count against the record.

func (s *SyncService) upsertOfficial(ctx context.Context, o models.Official) error {
	if err := s.store.UpsertOfficial(ctx, o); err != nil {
		return err
	}
	if err := s.store.SaveOfficialFallback(ctx, o, time.Now().UTC()); err != nil {
		s.log.Warnf("Service: fallback write failed for official %s (%s): %v", o.Name, o.State, err)
	}
	return nil
}

func (s *SyncService) upsertCounty(ctx context.Context, c models.County) error {
	if err := s.store.UpsertCounty(ctx, c); err != nil {
		return err
	}
	if err := s.store.SaveCountyFallback(ctx, c, time.Now().UTC()); err != nil {
		s.log.Warnf("Service: fallback write failed for county %s (%s): %v", c.Name, c.State, err)
	}
	return nil
}
