package transfer

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/portctl/portctl/internal/port"
)

// fakeMigrateTarget is an in-memory MigrateTargetAPI tracking what migration
// creates.
type fakeMigrateTarget struct {
	blueprints []port.Record
	entities   map[string]bool // "blueprint/identifier"

	createdBlueprints []string
	createdEntities   []string

	createBlueprintErr map[string]error
	blueprintsErr      error
}

func newFakeMigrateTarget() *fakeMigrateTarget {
	return &fakeMigrateTarget{entities: map[string]bool{}}
}

func (f *fakeMigrateTarget) Blueprints(ctx context.Context) ([]port.Record, error) {
	return f.blueprints, f.blueprintsErr
}

func (f *fakeMigrateTarget) Entity(ctx context.Context, blueprint, identifier string) (port.Record, error) {
	if f.entities[blueprint+"/"+identifier] {
		return port.Record{"identifier": identifier}, nil
	}
	return nil, &port.APIError{StatusCode: http.StatusNotFound, Method: "GET", Path: "/blueprints/" + blueprint + "/entities/" + identifier}
}

func (f *fakeMigrateTarget) CreateBlueprint(ctx context.Context, blueprint port.Record) (port.Record, error) {
	id := blueprint.String("identifier")
	if err := f.createBlueprintErr[id]; err != nil {
		return nil, err
	}
	f.createdBlueprints = append(f.createdBlueprints, id)
	return blueprint, nil
}

func (f *fakeMigrateTarget) CreateEntity(ctx context.Context, blueprint string, entity port.Record) (port.Record, error) {
	key := blueprint + "/" + entity.String("identifier")
	f.entities[key] = true
	f.createdEntities = append(f.createdEntities, key)
	return entity, nil
}

func migrateSource() *fakeSource {
	src := newFakeSource()
	src.blueprints = []port.Record{
		bp("service", "team"),
		bp("team"),
		bp("standalone"),
	}
	return src
}

func TestMigrate_DryRunCountsWithoutTargetWrites(t *testing.T) {
	src := migrateSource()
	src.blueprints = []port.Record{bp("a"), bp("b"), bp("c"), bp("d"), bp("e")}
	src.entities = map[string][]port.Record{}
	for i, blueprint := range []string{"a", "a", "a", "b", "b", "c", "c", "c", "c", "d", "d", "e"} {
		src.entities[blueprint] = append(src.entities[blueprint],
			port.Record{"identifier": fmt.Sprintf("ent-%d", i), "blueprint": blueprint})
	}
	target := newFakeMigrateTarget()

	result, err := Migrate(context.Background(), src, target, MigrateOptions{DryRun: true})
	require.NoError(t, err)

	assert.Equal(t, 5, result.Blueprints)
	assert.Equal(t, 12, result.Entities)
	assert.Nil(t, result.Applied)
	assert.Empty(t, target.createdBlueprints)
	assert.Empty(t, target.createdEntities)
}

func TestMigrate_CreatesAbsentResources(t *testing.T) {
	src := migrateSource()
	target := newFakeMigrateTarget()

	result, err := Migrate(context.Background(), src, target, MigrateOptions{})
	require.NoError(t, err)

	require.NotNil(t, result.Applied)
	counts := result.Applied.Counts
	assert.Equal(t, 3, counts["blueprints_created"])
	assert.Equal(t, 0, counts["blueprints_skipped"])
	assert.Equal(t, 3, counts["entities_created"])
	assert.Equal(t, 0, counts["entities_skipped"])
	assert.Empty(t, result.Applied.Errors)
}

func TestMigrate_SkipsExistingOnTarget(t *testing.T) {
	src := migrateSource()
	target := newFakeMigrateTarget()
	target.blueprints = []port.Record{bp("service")}
	target.entities["service/checkout"] = true

	result, err := Migrate(context.Background(), src, target, MigrateOptions{})
	require.NoError(t, err)

	counts := result.Applied.Counts
	assert.Equal(t, 2, counts["blueprints_created"])
	assert.Equal(t, 1, counts["blueprints_skipped"])
	assert.Equal(t, 2, counts["entities_created"])
	assert.Equal(t, 1, counts["entities_skipped"])
	assert.NotContains(t, target.createdBlueprints, "service")
	assert.NotContains(t, target.createdEntities, "service/checkout")
}

func TestMigrate_FilterExpandsDependencyClosure(t *testing.T) {
	src := migrateSource()
	target := newFakeMigrateTarget()

	result, err := Migrate(context.Background(), src, target, MigrateOptions{
		BlueprintFilter: []string{"service"},
	})
	require.NoError(t, err)

	// service pulls in team through its relation; standalone stays out.
	assert.Equal(t, 2, result.Blueprints)
	assert.Equal(t, []string{"service", "team"}, target.createdBlueprints)
	assert.NotContains(t, target.createdBlueprints, "standalone")
}

func TestMigrate_SystemBlueprintsCountAsSkipped(t *testing.T) {
	src := migrateSource()
	src.blueprints = append(src.blueprints, bp("_user"))
	target := newFakeMigrateTarget()

	result, err := Migrate(context.Background(), src, target, MigrateOptions{})
	require.NoError(t, err)

	counts := result.Applied.Counts
	assert.Equal(t, 3, counts["blueprints_created"])
	assert.Equal(t, 1, counts["blueprints_skipped"])
	assert.NotContains(t, target.createdBlueprints, "_user")
}

func TestMigrate_SourceListingFatal(t *testing.T) {
	src := migrateSource()
	src.blueprintsErr = errors.New("unauthorized")

	_, err := Migrate(context.Background(), src, newFakeMigrateTarget(), MigrateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list source blueprints")
}

func TestMigrate_TargetListingFatal(t *testing.T) {
	src := migrateSource()
	target := newFakeMigrateTarget()
	target.blueprintsErr = errors.New("unauthorized")

	_, err := Migrate(context.Background(), src, target, MigrateOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "list target blueprints")
}

func TestMigrate_BlueprintCreateErrorRecorded(t *testing.T) {
	src := migrateSource()
	target := newFakeMigrateTarget()
	target.createBlueprintErr = map[string]error{"team": errors.New("invalid schema")}

	result, err := Migrate(context.Background(), src, target, MigrateOptions{})
	require.NoError(t, err)

	counts := result.Applied.Counts
	assert.Equal(t, 2, counts["blueprints_created"])
	require.Len(t, result.Applied.Errors, 1)
	assert.Contains(t, result.Applied.Errors[0], "Blueprint team:")
}

func TestMigrate_ExportedCountsForVisibilityKinds(t *testing.T) {
	src := migrateSource()
	target := newFakeMigrateTarget()

	result, err := Migrate(context.Background(), src, target, MigrateOptions{})
	require.NoError(t, err)

	counts := result.Applied.Counts
	assert.Equal(t, 1, counts["automations_exported"])
	assert.Equal(t, 1, counts["pages_exported"])
	assert.Equal(t, 0, counts["integrations_exported"])
}
