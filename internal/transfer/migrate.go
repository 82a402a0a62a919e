package transfer

import (
	"context"
	"fmt"
)

// MigrateOptions controls a migration run.
type MigrateOptions struct {
	// BlueprintFilter restricts migration to the named blueprints plus
	// their dependency closure. Nil migrates everything.
	BlueprintFilter []string
	// DryRun collects from the source and reports counts without
	// touching the target.
	DryRun bool
}

// MigrateResult describes one migration run. Applied is nil for dry runs.
type MigrateResult struct {
	// Blueprints and Entities count what was collected from the source
	// after dependency resolution.
	Blueprints int `json:"blueprints"`
	Entities   int `json:"entities"`

	Applied *MigrateReport `json:"applied,omitempty"`
}

// MigrateReport accumulates the skip-if-exists counters for a migration.
// Unlike replay, migration never overwrites resources that already exist on
// a target that may be independently managed: existing blueprints and
// entities are counted as skipped. Automations, pages and integrations are
// collected for visibility only and reported as exported counts.
type MigrateReport struct {
	Counts map[string]int `json:"counts"`
	Errors []string       `json:"errors"`
}

// Migrate moves blueprints and entities from one organization to another
// within a single logical operation: collect from the source, expand the
// blueprint selection through the dependency closure, then create whatever
// is absent on the target.
func Migrate(ctx context.Context, source SourceAPI, target MigrateTargetAPI, opts MigrateOptions) (*MigrateResult, error) {
	snap, err := collectForMigration(ctx, source, opts.BlueprintFilter)
	if err != nil {
		return nil, err
	}

	result := &MigrateResult{
		Blueprints: len(snap.Blueprints),
		Entities:   len(snap.Entities),
	}
	if opts.DryRun {
		return result, nil
	}

	report, err := applyToTarget(ctx, target, snap)
	if err != nil {
		return nil, err
	}
	result.Applied = report
	return result, nil
}

// collectForMigration collects a source snapshot with the blueprint
// selection expanded through the dependency resolver. Unlike plain export,
// migrate always resolves dependencies so the target schema stays
// consistent.
func collectForMigration(ctx context.Context, source SourceAPI, blueprintFilter []string) (*Snapshot, error) {
	all, err := source.Blueprints(ctx)
	if err != nil {
		return nil, fmt.Errorf("list source blueprints: %w", err)
	}
	selected := filterByIdentifier(all, blueprintFilter)
	resolved := ResolveDependencies(all, selected)

	snap := NewSnapshot()
	snap.Blueprints = resolved
	collectBlueprintScoped(ctx, source, snap, resolved, false, nil)
	collectOrgWide(ctx, source, snap, nil)
	return snap, nil
}

func applyToTarget(ctx context.Context, target MigrateTargetAPI, snap *Snapshot) (*MigrateReport, error) {
	report := &MigrateReport{
		Counts: map[string]int{
			"blueprints_created":    0,
			"blueprints_skipped":    0,
			"entities_created":      0,
			"entities_skipped":      0,
			"automations_exported":  len(snap.Automations),
			"pages_exported":        len(snap.Pages),
			"integrations_exported": len(snap.Integrations),
		},
		Errors: []string{},
	}

	existing, err := target.Blueprints(ctx)
	if err != nil {
		return nil, fmt.Errorf("list target blueprints: %w", err)
	}
	existingIDs := make(map[string]bool, len(existing))
	for _, bp := range existing {
		if id := bp.String("identifier"); id != "" {
			existingIDs[id] = true
		}
	}

	for _, bp := range snap.Blueprints {
		id := bp.String("identifier")
		if id == "" {
			continue
		}
		// Reserved system blueprints exist in every organization and
		// must never be created on the target.
		if existingIDs[id] || isSystemBlueprint(id) {
			report.Counts["blueprints_skipped"]++
			continue
		}
		if _, err := target.CreateBlueprint(ctx, bp); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Blueprint %s: %v", id, err))
			continue
		}
		report.Counts["blueprints_created"]++
	}

	for _, entity := range snap.Entities {
		blueprint := entity.String("blueprint")
		id := entity.String("identifier")
		if blueprint == "" || id == "" {
			continue
		}
		// Lookup-by-identifier, then create only what is absent. The
		// check-then-act window is accepted; the platform offers no
		// stronger primitive.
		if _, err := target.Entity(ctx, blueprint, id); err == nil {
			report.Counts["entities_skipped"]++
			continue
		}
		if _, err := target.CreateEntity(ctx, blueprint, entity); err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Entity %s: %v", id, err))
			continue
		}
		report.Counts["entities_created"]++
	}

	return report, nil
}
