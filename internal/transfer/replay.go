package transfer

import (
	"context"
	"fmt"
	"strings"

	"github.com/portctl/portctl/internal/port"
)

// serverManagedFields are set by the platform and rejected when echoed back
// on create or update.
var serverManagedFields = []string{"createdBy", "updatedBy", "createdAt", "updatedAt", "id"}

// pageReadOnlyFields are additional page fields owned by the platform.
var pageReadOnlyFields = []string{"protected", "after", "section", "sidebar"}

// systemPageTypes are platform-managed page types that cannot be created or
// updated through the API. Records of these types are filtered out before
// any call is attempted, not treated as errors.
var systemPageTypes = map[string]bool{
	"entity":             true,
	"blueprint-entities": true,
	"home":               true,
	"audit-log":          true,
	"runs-history":       true,
	"user":               true,
	"team":               true,
	"run":                true,
	"users-and-teams":    true,
}

// ReplayOptions controls which parts of a snapshot are replayed.
type ReplayOptions struct {
	// SkipEntities skips the entity pass.
	SkipEntities bool
	// IncludeKinds restricts replay to the listed kinds. Nil means all.
	IncludeKinds []string
}

// ReplayReport accumulates per-kind created/updated counters and the
// per-item errors collected during a replay. Item errors never abort the
// batch; the operation as a whole still succeeds.
type ReplayReport struct {
	Counts map[string]int `json:"counts"`
	Errors []string       `json:"errors"`
}

func newReplayReport() *ReplayReport {
	counts := make(map[string]int)
	for _, kind := range KindOrder {
		if kind != KindIntegrations {
			counts[kind+"_created"] = 0
		}
		counts[kind+"_updated"] = 0
	}
	return &ReplayReport{Counts: counts, Errors: []string{}}
}

func (r *ReplayReport) itemError(label, identifier string, err error) {
	r.Errors = append(r.Errors, fmt.Sprintf("%s %s: %v", label, identifier, err))
}

// transfer applies the create-then-update-on-conflict policy for one
// record: creation is attempted first, a 409 falls back to an update of the
// same body, and anything else becomes a report entry.
func (r *ReplayReport) transfer(kind, label, identifier string, create, update func() error) {
	err := create()
	if err == nil {
		r.Counts[kind+"_created"]++
		return
	}
	if !port.IsConflict(err) {
		r.itemError(label, identifier, err)
		return
	}
	if err := update(); err != nil {
		r.itemError(label, identifier, err)
		return
	}
	r.Counts[kind+"_updated"]++
}

// Replay applies a snapshot to a target organization, kind by kind in
// dependency order. Safe to repeat: existing items are updated rather than
// duplicated.
func Replay(ctx context.Context, api TargetAPI, snap *Snapshot, opts ReplayOptions) (*ReplayReport, error) {
	if snap == nil {
		return nil, fmt.Errorf("nil snapshot")
	}

	report := newReplayReport()
	include := newKindFilter(opts.IncludeKinds)

	if include.includes(KindBlueprints) {
		replayBlueprints(ctx, api, snap.Blueprints, report)
	}
	if !opts.SkipEntities && include.includes(KindEntities) {
		replayEntities(ctx, api, snap.Entities, report)
	}
	if include.includes(KindScorecards) {
		replayScorecards(ctx, api, snap.Scorecards, report)
	}
	if include.includes(KindActions) {
		replayActions(ctx, api, snap.Actions, report)
	}
	if include.includes(KindTeams) {
		replayTeams(ctx, api, snap.Teams, report)
	}
	if include.includes(KindAutomations) {
		replayAutomations(ctx, api, snap.Automations, report)
	}
	if include.includes(KindPages) {
		replayPages(ctx, api, snap.Pages, report)
	}
	if include.includes(KindIntegrations) {
		replayIntegrations(ctx, api, snap.Integrations, report)
	}

	return report, nil
}

func replayBlueprints(ctx context.Context, api TargetAPI, blueprints []port.Record, report *ReplayReport) {
	for _, bp := range blueprints {
		id := bp.String("identifier")
		if id == "" || isSystemBlueprint(id) {
			continue
		}
		bp := bp
		report.transfer(KindBlueprints, "Blueprint", id,
			func() error { _, err := api.CreateBlueprint(ctx, bp); return err },
			func() error { _, err := api.UpdateBlueprint(ctx, id, bp); return err })
	}
}

func replayEntities(ctx context.Context, api TargetAPI, entities []port.Record, report *ReplayReport) {
	for _, entity := range entities {
		blueprint := entity.String("blueprint")
		id := entity.String("identifier")
		if blueprint == "" || id == "" {
			continue
		}
		entity := entity
		report.transfer(KindEntities, "Entity", id,
			func() error { _, err := api.CreateEntity(ctx, blueprint, entity); return err },
			func() error { _, err := api.UpdateEntity(ctx, blueprint, id, entity); return err })
	}
}

func replayScorecards(ctx context.Context, api TargetAPI, scorecards []port.Record, report *ReplayReport) {
	for _, sc := range scorecards {
		blueprint := sc.String("blueprintIdentifier")
		id := sc.String("identifier")
		if blueprint == "" || id == "" {
			continue
		}
		body := sc.Without(serverManagedFields...)
		report.transfer(KindScorecards, "Scorecard", id,
			func() error { _, err := api.CreateScorecard(ctx, blueprint, body); return err },
			func() error { _, err := api.UpdateScorecard(ctx, blueprint, id, body); return err })
	}
}

func replayActions(ctx context.Context, api TargetAPI, actions []port.Record, report *ReplayReport) {
	for _, action := range actions {
		blueprint := action.String("blueprintIdentifier")
		id := action.String("identifier")
		if blueprint == "" || id == "" {
			continue
		}
		body := action.Without(serverManagedFields...)
		report.transfer(KindActions, "Action", id,
			func() error { _, err := api.CreateAction(ctx, blueprint, body); return err },
			func() error { _, err := api.UpdateAction(ctx, blueprint, id, body); return err })
	}
}

func replayTeams(ctx context.Context, api TargetAPI, teams []port.Record, report *ReplayReport) {
	for _, team := range teams {
		name := team.String("name")
		if name == "" {
			continue
		}
		team := team
		report.transfer(KindTeams, "Team", name,
			func() error { _, err := api.CreateTeam(ctx, team); return err },
			func() error { _, err := api.UpdateTeam(ctx, name, team); return err })
	}
}

func replayAutomations(ctx context.Context, api TargetAPI, automations []port.Record, report *ReplayReport) {
	for _, automation := range automations {
		id := automation.String("identifier")
		if id == "" {
			continue
		}
		body := automation.Without(serverManagedFields...)
		report.transfer(KindAutomations, "Automation", id,
			func() error { _, err := api.CreateAutomation(ctx, body); return err },
			func() error { _, err := api.UpdateAutomation(ctx, id, body); return err })
	}
}

func replayPages(ctx context.Context, api TargetAPI, pages []port.Record, report *ReplayReport) {
	for _, page := range pages {
		id := page.String("identifier")
		if id == "" || systemPageTypes[page.String("type")] {
			continue
		}
		body := page.Without(serverManagedFields...).Without(pageReadOnlyFields...)
		report.transfer(KindPages, "Page", id,
			func() error { _, err := api.CreatePage(ctx, body); return err },
			func() error { _, err := api.UpdatePage(ctx, id, body); return err })
	}
}

// replayIntegrations is update-only: integrations cannot be created through
// this interface, so a missing identifier on the target is an error, not a
// silent skip.
func replayIntegrations(ctx context.Context, api TargetAPI, integrations []port.Record, report *ReplayReport) {
	for _, integration := range integrations {
		id := integration.String("identifier")
		if id == "" {
			continue
		}
		if _, err := api.UpdateIntegrationConfig(ctx, id, integration); err != nil {
			report.itemError("Integration", id, err)
			continue
		}
		report.Counts[KindIntegrations+"_updated"]++
	}
}

// isSystemBlueprint reports whether the identifier names a reserved system
// blueprint. These are never created or overwritten.
func isSystemBlueprint(identifier string) bool {
	return strings.HasPrefix(identifier, "_")
}
