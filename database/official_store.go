package database

import (
	"context"
	"fmt"

	"github.com/opencivicmap/civicsync/models"
)

// UpsertOfficial writes one official into the canonical officials table.
// The table's unique key on (name, state, office) makes this idempotent: a
// conflicting row is overwritten, never duplicated.
func (s *Store) UpsertOfficial(ctx context.Context, o models.Official) error {
	query := `
		INSERT INTO officials (
			name, office, party, state, state_abbr,
			bioguide_id, district, source, last_updated
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, NOW())
		ON DUPLICATE KEY UPDATE
			party = VALUES(party),
			state_abbr = VALUES(state_abbr),
			bioguide_id = VALUES(bioguide_id),
			district = VALUES(district),
			source = VALUES(source),
			last_updated = NOW()
	`

	_, err := s.db.ExecContext(ctx, query,
		o.Name, o.Office, o.Party, o.State, o.StateAbbr,
		o.BioguideID, o.District, o.Source,
	)
	if err != nil {
		return fmt.Errorf("failed to upsert official %s (%s, %s): %w", o.Name, o.State, o.Office, err)
	}
	return nil
}

// GetOfficialsByState returns the canonical officials for one state,
// senators first.
func (s *Store) GetOfficialsByState(ctx context.Context, stateAbbr string) ([]models.Official, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT id, name, office, party, state, state_abbr,
		       bioguide_id, district, source, last_updated
		FROM officials
		WHERE state_abbr = ?
		ORDER BY office = ? DESC, name
	`, stateAbbr, models.OfficeSenator)
	if err != nil {
		return nil, fmt.Errorf("failed to query officials for %s: %w", stateAbbr, err)
	}
	defer rows.Close()

	var officials []models.Official
	for rows.Next() {
		var o models.Official
		err := rows.Scan(
			&o.ID, &o.Name, &o.Office, &o.Party, &o.State, &o.StateAbbr,
			&o.BioguideID, &o.District, &o.Source, &o.LastUpdated,
		)
		if err != nil {
			s.log.Errorf("Database: failed to scan official row: %v", err)
			continue
		}
		officials = append(officials, o)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating official rows: %w", err)
	}
	return officials, nil
}
