package auth

import (
	"encoding/json"
	"fmt"
)

// Roster maps manager ids to display names. It is loaded from the MAN_IDS
// and MAN_NAMES env vars, two parallel JSON arrays.
type Roster struct {
	ids   []string
	names []string
}

// NewRoster parses the two parallel JSON arrays.
func NewRoster(idsJSON, namesJSON string) (*Roster, error) {
	var ids, names []string
	if err := json.Unmarshal([]byte(idsJSON), &ids); err != nil {
		return nil, fmt.Errorf("parse manager ids: %w", err)
	}
	if err := json.Unmarshal([]byte(namesJSON), &names); err != nil {
		return nil, fmt.Errorf("parse manager names: %w", err)
	}
	if len(ids) != len(names) {
		return nil, fmt.Errorf("manager roster mismatch: %d ids, %d names", len(ids), len(names))
	}
	return &Roster{ids: ids, names: names}, nil
}

// Name resolves a manager id to a display name.
func (r *Roster) Name(id string) (string, bool) {
	for i, known := range r.ids {
		if known == id {
			return r.names[i], true
		}
	}
	return "", false
}

// Knows reports whether id belongs to the roster.
func (r *Roster) Knows(id string) bool {
	_, ok := r.Name(id)
	return ok
}

// IDs returns the manager ids, in roster order.
func (r *Roster) IDs() []string {
	return r.ids
}
