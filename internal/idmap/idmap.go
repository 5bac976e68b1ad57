// Package idmap tracks the identifiers assigned by the destination store
// during a migration run, so that later stages can resolve references to
// records inserted by earlier stages. The mapping is write-once, read-many
// and scoped to a single run.
package idmap

import (
	"errors"
	"fmt"
)

// ErrUnresolvedReference is returned when a required profile mapping was never
// recorded. Stages always copy profiles before any dependent record, so hitting
// this indicates source data referencing a profile that does not exist.
var ErrUnresolvedReference = errors.New("unresolved reference")

// Map holds the external-to-relational identifier mappings for one run.
type Map struct {
	profiles map[string]int64
	events   map[string]int64
}

// New returns an empty identifier map.
func New() *Map {
	return &Map{
		profiles: make(map[string]int64),
		events:   make(map[string]int64),
	}
}

// RecordProfile stores the relational id generated for a source profile.
func (m *Map) RecordProfile(externalID string, id int64) {
	m.profiles[externalID] = id
}

// Profile resolves a source profile reference to its generated relational id.
func (m *Map) Profile(externalID string) (int64, error) {
	id, ok := m.profiles[externalID]
	if !ok {
		return 0, fmt.Errorf("profile %s: %w", externalID, ErrUnresolvedReference)
	}
	return id, nil
}

// RecordEvent stores the numeric source-system id under which an event was
// migrated. Ineligible events are simply never recorded.
func (m *Map) RecordEvent(externalID string, id int64) {
	m.events[externalID] = id
}

// Event resolves a source event reference to its numeric id, or nil when the
// event was never recorded or recorded with a zero id. An absent event link is
// not an error; callers store null.
func (m *Map) Event(externalID string) *int64 {
	id, ok := m.events[externalID]
	if !ok || id == 0 {
		return nil
	}
	return &id
}
