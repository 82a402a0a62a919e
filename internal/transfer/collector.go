package transfer

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/portctl/portctl/internal/port"
)

// CollectOptions controls what a collection run fetches.
type CollectOptions struct {
	// BlueprintFilter restricts collection to the named blueprints. Nil
	// means all. No dependency closure is applied here; that is migrate's
	// concern.
	BlueprintFilter []string
	// SkipEntities skips entity collection entirely.
	SkipEntities bool
	// IncludeKinds restricts which resource kinds end up in the snapshot.
	// Nil means all. Blueprints are still fetched internally when
	// entities, scorecards or actions are requested, since those are
	// addressed per blueprint.
	IncludeKinds []string
}

// Collect fetches a snapshot of one organization's resources. Failures for
// a single blueprint or a single org-wide kind are logged and leave that
// portion empty; only the initial blueprint listing is fatal.
func Collect(ctx context.Context, api SourceAPI, opts CollectOptions) (*Snapshot, error) {
	snap := NewSnapshot()
	include := newKindFilter(opts.IncludeKinds)

	var blueprints []port.Record
	if include.includes(KindBlueprints) {
		all, err := api.Blueprints(ctx)
		if err != nil {
			return nil, fmt.Errorf("list blueprints: %w", err)
		}
		blueprints = filterByIdentifier(all, opts.BlueprintFilter)
		snap.Blueprints = blueprints
	}

	// Entities, scorecards and actions are fetched per blueprint, so the
	// blueprint list is needed even when blueprints themselves are
	// excluded from the output.
	needsBlueprints := include.includes(KindEntities) ||
		include.includes(KindScorecards) ||
		include.includes(KindActions)
	if len(blueprints) == 0 && needsBlueprints {
		all, err := api.Blueprints(ctx)
		if err != nil {
			return nil, fmt.Errorf("list blueprints: %w", err)
		}
		blueprints = filterByIdentifier(all, opts.BlueprintFilter)
	}

	collectBlueprintScoped(ctx, api, snap, blueprints, opts.SkipEntities, include)
	collectOrgWide(ctx, api, snap, include)

	return snap, nil
}

// collectBlueprintScoped fetches entities, scorecards and actions for each
// blueprint. A failure for one blueprint is logged and does not abort
// collection of the others.
func collectBlueprintScoped(ctx context.Context, api SourceAPI, snap *Snapshot, blueprints []port.Record, skipEntities bool, include kindFilter) {
	for _, bp := range blueprints {
		id := bp.String("identifier")
		if id == "" {
			continue
		}
		if err := collectForBlueprint(ctx, api, snap, id, skipEntities, include); err != nil {
			slog.Warn("failed to collect blueprint data", "blueprint", id, "error", err)
		}
	}
}

func collectForBlueprint(ctx context.Context, api SourceAPI, snap *Snapshot, blueprint string, skipEntities bool, include kindFilter) error {
	if !skipEntities && include.includes(KindEntities) {
		entities, err := api.Entities(ctx, blueprint)
		if err != nil {
			return fmt.Errorf("entities: %w", err)
		}
		snap.Entities = append(snap.Entities, entities...)
	}

	if include.includes(KindScorecards) {
		scorecards, err := api.Scorecards(ctx, blueprint)
		if err != nil {
			return fmt.Errorf("scorecards: %w", err)
		}
		snap.Scorecards = append(snap.Scorecards, scorecards...)
	}

	if include.includes(KindActions) {
		actions, err := api.Actions(ctx, blueprint)
		if err != nil {
			// The actions endpoint answers 410 Gone for blueprints
			// with no actions configured. That is zero actions,
			// not an error.
			if port.IsGone(err) {
				return nil
			}
			return fmt.Errorf("actions: %w", err)
		}
		snap.Actions = append(snap.Actions, actions...)
	}

	return nil
}

// collectOrgWide fetches the kinds that are independent of blueprint
// filtering. Each is best-effort: a failure leaves that kind empty and is
// surfaced as a warning, never propagated.
func collectOrgWide(ctx context.Context, api SourceAPI, snap *Snapshot, include kindFilter) {
	if include.includes(KindTeams) {
		if teams, err := api.Teams(ctx); err != nil {
			slog.Warn("failed to collect teams", "error", err)
		} else {
			snap.Teams = teams
		}
	}

	if include.includes(KindAutomations) {
		// The org-wide actions endpoint covers automations as well;
		// blueprint-scoped actions were already collected above.
		if automations, err := api.AllActions(ctx); err != nil {
			slog.Warn("failed to collect automations", "error", err)
		} else {
			snap.Automations = automations
		}
	}

	if include.includes(KindPages) {
		if pages, err := api.Pages(ctx); err != nil {
			slog.Warn("failed to collect pages", "error", err)
		} else {
			snap.Pages = pages
		}
	}

	if include.includes(KindIntegrations) {
		if integrations, err := api.Integrations(ctx); err != nil {
			slog.Warn("failed to collect integrations", "error", err)
		} else {
			snap.Integrations = integrations
		}
	}
}

// filterByIdentifier keeps the records whose identifier is in the filter.
// A nil filter keeps everything.
func filterByIdentifier(records []port.Record, filter []string) []port.Record {
	if filter == nil {
		return records
	}
	wanted := make(map[string]bool, len(filter))
	for _, id := range filter {
		wanted[id] = true
	}
	kept := []port.Record{}
	for _, r := range records {
		if wanted[r.String("identifier")] {
			kept = append(kept, r)
		}
	}
	return kept
}
