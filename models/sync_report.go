package models

import "time"

// LaneResult summarizes one domain (officials or counties) of a single
// state's sync pass. Updated+Failed never exceeds Processed; Processed is
// set from the provider's record count before any upserts are attempted.
type LaneResult struct {
	Processed int    `json:"processed"`
	Updated   int    `json:"updated"`
	Failed    int    `json:"failed"`
	Source    string `json:"source"` // provenance tag, SourceNone when the lane got nothing
}

// StateSyncResult is the per-state outcome produced by the sync worker.
type StateSyncResult struct {
	State           string     `json:"state"` // USPS code
	Officials       LaneResult `json:"officials"`
	Counties        LaneResult `json:"counties"`
	Errors          []string   `json:"errors,omitempty"` // "<record name>: <detail>", in upsert order
	DurationSeconds float64    `json:"duration_seconds"`
}

// RunReport is the aggregate returned by one full sync run. It is built
// incrementally by the orchestrator and immutable once returned.
type RunReport struct {
	RunID            string            `json:"run_id"`
	RunDate          time.Time         `json:"run_date"`
	TotalStates      int               `json:"total_states"`
	SuccessfulStates int               `json:"successful_states"` // states with an empty error list
	FailedStates     int               `json:"failed_states"`
	OfficialsUpdated int               `json:"officials_updated"`
	CountiesUpdated  int               `json:"counties_updated"`
	APICalls         int               `json:"api_calls"`
	APIErrors        int               `json:"api_errors"`
	DurationSeconds  float64           `json:"duration_seconds"`
	Results          []StateSyncResult `json:"results"`
	SourceCounts     map[string]int    `json:"source_counts"` // provenance tag -> lane count
	TopErrors        []string          `json:"top_errors,omitempty"` // up to 3 samples per failed state
}
