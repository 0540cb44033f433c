package database

import (
	"context"
	"fmt"
	"time"

	"github.com/opencivicmap/civicsync/models"
)

// The fallback tables are write-through shadows of the canonical tables,
// stamped with a read priority and a last-verified timestamp. They are only
// written after a successful canonical upsert, so they can serve
// stale-but-known-good rows but never run ahead of the canonical store.

// SaveOfficialFallback upserts the fallback shadow of one official.
func (s *Store) SaveOfficialFallback(ctx context.Context, o models.Official, verifiedAt time.Time) error {
	query := `
		INSERT INTO fallback_officials (
			name, office, party, state, state_abbr,
			bioguide_id, district, source, priority, last_verified_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			party = VALUES(party),
			state_abbr = VALUES(state_abbr),
			bioguide_id = VALUES(bioguide_id),
			district = VALUES(district),
			source = VALUES(source),
			priority = VALUES(priority),
			last_verified_at = VALUES(last_verified_at)
	`

	_, err := s.db.ExecContext(ctx, query,
		o.Name, o.Office, o.Party, o.State, o.StateAbbr,
		o.BioguideID, o.District, o.Source,
		models.FallbackPriority(o.Office), verifiedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save fallback official %s (%s): %w", o.Name, o.State, err)
	}
	return nil
}

// SaveCountyFallback upserts the fallback shadow of one county.
func (s *Store) SaveCountyFallback(ctx context.Context, c models.County, verifiedAt time.Time) error {
	query := `
		INSERT INTO fallback_counties (
			name, state, county_fips, state_fips, full_fips,
			population, source, priority, last_verified_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON DUPLICATE KEY UPDATE
			county_fips = VALUES(county_fips),
			state_fips = VALUES(state_fips),
			full_fips = VALUES(full_fips),
			population = VALUES(population),
			source = VALUES(source),
			priority = VALUES(priority),
			last_verified_at = VALUES(last_verified_at)
	`

	_, err := s.db.ExecContext(ctx, query,
		c.Name, c.State, c.CountyFIPS, c.StateFIPS, c.FullFIPS,
		c.Population, c.Source, models.PriorityCounty, verifiedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to save fallback county %s (%s): %w", c.Name, c.State, err)
	}
	return nil
}
