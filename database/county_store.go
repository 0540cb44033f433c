package database

import (
	"context"
	"fmt"

	"github.com/opencivicmap/civicsync/models"
)

// UpsertCounty writes one county into the canonical counties table. The
// unique key on (name, state) makes this idempotent.
func (s *Store) UpsertCounty(ctx context.Context, c models.County) error {
	query := `
		INSERT INTO counties (
			name, state, county_fips, state_fips, full_fips,
			population, source, last_updated
		) VALUES (?, ?, ?, ?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
			county_fips = VALUES(county_fips),
			state_fips = VALUES(state_fips),
			full_fips = VALUES(full_fips),
			population = VALUES(population),
			source = VALUES(source),
			last_updated = NOW()
	`

	_, err := s.db.ExecContext(ctx, query,
		c.Name, c.State, c.CountyFIPS, c.StateFIPS, c.FullFIPS,
		c.Population, c.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert county %s (%s): %w", c.Name, c.State, err)
	}
	return nil
}

// GetCountiesByState returns the canonical counties for one state by name.
func (s *Store) GetCountiesByState(ctx context.Context, stateName string) ([]models.County, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, state, county_fips, state_fips, full_fips,
		       population, source, last_updated
		FROM counties
		WHERE state = ?
		ORDER BY name
	`, stateName)
	if err != nil {
		return nil, fmt.Errorf("failed to query counties for %s: %w", stateName, err)
	}
	defer rows.Close()

	var counties []models.County
	for rows.Next() {
		var c models.County
		err := rows.Scan(
			&c.ID, &c.Name, &c.State, &c.CountyFIPS, &c.StateFIPS, &c.FullFIPS,
			&c.Population, &c.Source, &c.LastUpdated,
		)
		if err != nil {
			s.log.Errorf("Database: failed to scan county row: %v", err)
			continue
		}
		counties = append(counties, c)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating county rows: %w", err)
	}
	return counties, nil
}
