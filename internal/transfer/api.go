package transfer

import (
	"context"

	"github.com/portctl/portctl/internal/port"
)

// SourceAPI is the read surface of the catalog API consumed by collection.
// *port.Client satisfies it.
type SourceAPI interface {
	Blueprints(ctx context.Context) ([]port.Record, error)
	Entities(ctx context.Context, blueprint string) ([]port.Record, error)
	Scorecards(ctx context.Context, blueprint string) ([]port.Record, error)
	Actions(ctx context.Context, blueprint string) ([]port.Record, error)
	Teams(ctx context.Context) ([]port.Record, error)
	AllActions(ctx context.Context) ([]port.Record, error)
	Pages(ctx context.Context) ([]port.Record, error)
	Integrations(ctx context.Context) ([]port.Record, error)
}

// TargetAPI is the write surface consumed by replay. *port.Client satisfies
// it.
type TargetAPI interface {
	CreateBlueprint(ctx context.Context, blueprint port.Record) (port.Record, error)
	UpdateBlueprint(ctx context.Context, identifier string, blueprint port.Record) (port.Record, error)
	CreateEntity(ctx context.Context, blueprint string, entity port.Record) (port.Record, error)
	UpdateEntity(ctx context.Context, blueprint, identifier string, entity port.Record) (port.Record, error)
	CreateScorecard(ctx context.Context, blueprint string, scorecard port.Record) (port.Record, error)
	UpdateScorecard(ctx context.Context, blueprint, identifier string, scorecard port.Record) (port.Record, error)
	CreateAction(ctx context.Context, blueprint string, action port.Record) (port.Record, error)
	UpdateAction(ctx context.Context, blueprint, identifier string, action port.Record) (port.Record, error)
	CreateTeam(ctx context.Context, team port.Record) (port.Record, error)
	UpdateTeam(ctx context.Context, name string, team port.Record) (port.Record, error)
	CreateAutomation(ctx context.Context, automation port.Record) (port.Record, error)
	UpdateAutomation(ctx context.Context, identifier string, automation port.Record) (port.Record, error)
	CreatePage(ctx context.Context, page port.Record) (port.Record, error)
	UpdatePage(ctx context.Context, identifier string, page port.Record) (port.Record, error)
	UpdateIntegrationConfig(ctx context.Context, identifier string, config port.Record) (port.Record, error)
}

// MigrateTargetAPI is the surface migration needs on the target
// organization: existence checks plus creation. Migration never updates,
// so existing resources on an independently managed target are left alone.
type MigrateTargetAPI interface {
	Blueprints(ctx context.Context) ([]port.Record, error)
	Entity(ctx context.Context, blueprint, identifier string) (port.Record, error)
	CreateBlueprint(ctx context.Context, blueprint port.Record) (port.Record, error)
	CreateEntity(ctx context.Context, blueprint string, entity port.Record) (port.Record, error)
}
