package models

import "time"

// County represents one county-level population record for a state.
// Natural key for upserts: (name, state).
type County struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`   // display name, "County"/"Parish" suffix stripped
	State       string    `db:"state" json:"state"` // full state name
	CountyFIPS  string    `db:"county_fips" json:"county_fips"` // 3-digit county code
	StateFIPS   string    `db:"state_fips" json:"state_fips"`   // 2-digit state code
	FullFIPS    string    `db:"full_fips" json:"full_fips"`     // state_fips + county_fips
	Population  int       `db:"population" json:"population"`
	Source      string    `db:"source" json:"source"`
	LastUpdated time.Time `db:"last_updated" json:"last_updated"`
}
