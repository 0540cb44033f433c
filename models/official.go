package models

import "time"

// Office labels derived from the chamber a member sits in.
const (
	OfficeSenator        = "Senator"
	OfficeRepresentative = "Representative"
)

// Provenance tags recorded with every write. SourceNone marks a lane whose
// provider returned nothing (outage or genuinely empty roster).
const (
	SourceCongress = "congress.gov"
	SourceCensus   = "census_acs"
	SourceNone     = "none"
)

// Official represents one elected federal official for a state.
// Natural key for upserts: (name, state, office).
type Official struct {
	ID          int64     `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Office      string    `db:"office" json:"office"` // OfficeSenator or OfficeRepresentative
	Party       string    `db:"party" json:"party"`
	State       string    `db:"state" json:"state"`           // full state name, e.g. "Vermont"
	StateAbbr   string    `db:"state_abbr" json:"state_abbr"` // USPS code, e.g. "VT"
	BioguideID  string    `db:"bioguide_id" json:"bioguide_id"`
	District    string    `db:"district" json:"district,omitempty"` // empty for senators
	Source      string    `db:"source" json:"source"`
	LastUpdated time.Time `db:"last_updated" json:"last_updated"`
}

// Fallback read-path priorities. Lower sorts first when the read API has to
// serve from the fallback tables.
const (
	PrioritySenator        = 10
	PriorityRepresentative = 20
	PriorityCounty         = 30
)

// FallbackPriority maps an office label to its fallback-store priority.
func FallbackPriority(office string) int {
	if office == OfficeSenator {
		return PrioritySenator
	}
	return PriorityRepresentative
}
