// Package transfer implements the export/import/migrate data-transfer
// engine: collecting a consistent snapshot of an organization's resources,
// serializing it to a portable archive, and replaying it against a target
// organization.
package transfer

import "github.com/portctl/portctl/internal/port"

// Resource kind identifiers. KindOrder is also the mandatory replay order:
// entities, scorecards and actions reference blueprints and must never be
// attempted before them.
const (
	KindBlueprints   = "blueprints"
	KindEntities     = "entities"
	KindScorecards   = "scorecards"
	KindActions      = "actions"
	KindTeams        = "teams"
	KindAutomations  = "automations"
	KindPages        = "pages"
	KindIntegrations = "integrations"
)

// KindOrder lists every resource kind in dependency order.
var KindOrder = []string{
	KindBlueprints,
	KindEntities,
	KindScorecards,
	KindActions,
	KindTeams,
	KindAutomations,
	KindPages,
	KindIntegrations,
}

// Snapshot is the in-memory collection of all fetched resource records for
// one transfer operation. All eight kinds are always present, possibly as
// empty sequences. A snapshot is built fresh per operation and read-only
// once produced.
type Snapshot struct {
	Blueprints   []port.Record `json:"blueprints"`
	Entities     []port.Record `json:"entities"`
	Scorecards   []port.Record `json:"scorecards"`
	Actions      []port.Record `json:"actions"`
	Teams        []port.Record `json:"teams"`
	Automations  []port.Record `json:"automations"`
	Pages        []port.Record `json:"pages"`
	Integrations []port.Record `json:"integrations"`
}

// NewSnapshot returns a snapshot with every kind present and empty.
func NewSnapshot() *Snapshot {
	return &Snapshot{
		Blueprints:   []port.Record{},
		Entities:     []port.Record{},
		Scorecards:   []port.Record{},
		Actions:      []port.Record{},
		Teams:        []port.Record{},
		Automations:  []port.Record{},
		Pages:        []port.Record{},
		Integrations: []port.Record{},
	}
}

// Records returns the records of one kind. Unknown kinds return nil.
func (s *Snapshot) Records(kind string) []port.Record {
	switch kind {
	case KindBlueprints:
		return s.Blueprints
	case KindEntities:
		return s.Entities
	case KindScorecards:
		return s.Scorecards
	case KindActions:
		return s.Actions
	case KindTeams:
		return s.Teams
	case KindAutomations:
		return s.Automations
	case KindPages:
		return s.Pages
	case KindIntegrations:
		return s.Integrations
	}
	return nil
}

// setRecords replaces the records of one kind. Unknown kinds report false.
func (s *Snapshot) setRecords(kind string, records []port.Record) bool {
	if records == nil {
		records = []port.Record{}
	}
	switch kind {
	case KindBlueprints:
		s.Blueprints = records
	case KindEntities:
		s.Entities = records
	case KindScorecards:
		s.Scorecards = records
	case KindActions:
		s.Actions = records
	case KindTeams:
		s.Teams = records
	case KindAutomations:
		s.Automations = records
	case KindPages:
		s.Pages = records
	case KindIntegrations:
		s.Integrations = records
	default:
		return false
	}
	return true
}

// kindFilter selects which resource kinds an operation touches. A nil
// filter selects everything.
type kindFilter map[string]bool

func newKindFilter(kinds []string) kindFilter {
	if kinds == nil {
		return nil
	}
	f := make(kindFilter, len(kinds))
	for _, k := range kinds {
		f[k] = true
	}
	return f
}

func (f kindFilter) includes(kind string) bool {
	return f == nil || f[kind]
}
