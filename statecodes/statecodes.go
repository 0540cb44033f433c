// Package statecodes holds the fixed 50-state sync roster. The roster lives
// in an embedded CSV asset so jurisdiction changes are a data edit, not a
// code change.
package statecodes

import (
	_ "embed"
	"fmt"

	"github.com/jszwec/csvutil"
)

//go:embed states.csv
var statesCSV []byte

// State is one top-level jurisdiction in the sync roster.
type State struct {
	Name string `csv:"name"` // full name, e.g. "New Hampshire"
	Abbr string `csv:"abbr"` // USPS code, e.g. "NH"
	FIPS string `csv:"fips"` // 2-digit Census state code, zero-padded
}

var (
	states []State
	byAbbr = make(map[string]State)
	byName = make(map[string]State)
)

func init() {
	if err := csvutil.Unmarshal(statesCSV, &states); err != nil {
		panic(fmt.Sprintf("statecodes: failed to decode states.csv: %v", err))
	}
	for _, st := range states {
		byAbbr[st.Abbr] = st
		byName[st.Name] = st
	}
}

// All returns the roster in declared (alphabetical) order. The caller gets a
// copy; the roster itself is immutable for the lifetime of the process.
func All() []State {
	out := make([]State, len(states))
	copy(out, states)
	return out
}

// ByAbbr looks a state up by its USPS code.
func ByAbbr(abbr string) (State, bool) {
	st, ok := byAbbr[abbr]
	return st, ok
}

// ByName looks a state up by its full name.
func ByName(name string) (State, bool) {
	st, ok := byName[name]
	return st, ok
}
