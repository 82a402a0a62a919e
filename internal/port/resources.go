package port

import (
	"context"
	"net/http"
	"net/url"
)

// Blueprint operations.

// Blueprints returns all blueprints in the organization.
func (c *Client) Blueprints(ctx context.Context) ([]Record, error) {
	return c.getList(ctx, "/blueprints", "blueprints")
}

// Blueprint returns a single blueprint by identifier.
func (c *Client) Blueprint(ctx context.Context, identifier string) (Record, error) {
	return c.object(ctx, http.MethodGet, "/blueprints/"+url.PathEscape(identifier), "blueprint", nil)
}

// CreateBlueprint creates a new blueprint.
func (c *Client) CreateBlueprint(ctx context.Context, blueprint Record) (Record, error) {
	return c.object(ctx, http.MethodPost, "/blueprints", "blueprint", blueprint)
}

// UpdateBlueprint replaces an existing blueprint.
func (c *Client) UpdateBlueprint(ctx context.Context, identifier string, blueprint Record) (Record, error) {
	return c.object(ctx, http.MethodPut, "/blueprints/"+url.PathEscape(identifier), "blueprint", blueprint)
}

// DeleteBlueprint deletes a blueprint.
func (c *Client) DeleteBlueprint(ctx context.Context, identifier string) error {
	return c.delete(ctx, "/blueprints/"+url.PathEscape(identifier))
}

// Entity operations. Entities are addressed per owning blueprint.

// Entities returns all entities of a blueprint.
func (c *Client) Entities(ctx context.Context, blueprint string) ([]Record, error) {
	return c.getList(ctx, "/blueprints/"+url.PathEscape(blueprint)+"/entities", "entities")
}

// Entity returns a single entity.
func (c *Client) Entity(ctx context.Context, blueprint, identifier string) (Record, error) {
	return c.object(ctx, http.MethodGet,
		"/blueprints/"+url.PathEscape(blueprint)+"/entities/"+url.PathEscape(identifier), "entity", nil)
}

// CreateEntity creates a new entity under a blueprint.
func (c *Client) CreateEntity(ctx context.Context, blueprint string, entity Record) (Record, error) {
	return c.object(ctx, http.MethodPost, "/blueprints/"+url.PathEscape(blueprint)+"/entities", "entity", entity)
}

// UpdateEntity replaces an existing entity.
func (c *Client) UpdateEntity(ctx context.Context, blueprint, identifier string, entity Record) (Record, error) {
	return c.object(ctx, http.MethodPut,
		"/blueprints/"+url.PathEscape(blueprint)+"/entities/"+url.PathEscape(identifier), "entity", entity)
}

// DeleteEntity deletes an entity.
func (c *Client) DeleteEntity(ctx context.Context, blueprint, identifier string) error {
	return c.delete(ctx, "/blueprints/"+url.PathEscape(blueprint)+"/entities/"+url.PathEscape(identifier))
}

// Scorecard operations.

// Scorecards returns the scorecards attached to a blueprint.
func (c *Client) Scorecards(ctx context.Context, blueprint string) ([]Record, error) {
	return c.getList(ctx, "/blueprints/"+url.PathEscape(blueprint)+"/scorecards", "scorecards")
}

// AllScorecards returns every scorecard in the organization.
func (c *Client) AllScorecards(ctx context.Context) ([]Record, error) {
	return c.getList(ctx, "/scorecards", "scorecards")
}

// CreateScorecard creates a scorecard under a blueprint.
func (c *Client) CreateScorecard(ctx context.Context, blueprint string, scorecard Record) (Record, error) {
	return c.object(ctx, http.MethodPost, "/blueprints/"+url.PathEscape(blueprint)+"/scorecards", "scorecard", scorecard)
}

// UpdateScorecard updates an existing scorecard.
func (c *Client) UpdateScorecard(ctx context.Context, blueprint, identifier string, scorecard Record) (Record, error) {
	return c.object(ctx, http.MethodPatch,
		"/blueprints/"+url.PathEscape(blueprint)+"/scorecards/"+url.PathEscape(identifier), "scorecard", scorecard)
}

// DeleteScorecard deletes a scorecard.
func (c *Client) DeleteScorecard(ctx context.Context, blueprint, identifier string) error {
	return c.delete(ctx, "/blueprints/"+url.PathEscape(blueprint)+"/scorecards/"+url.PathEscape(identifier))
}

// Action operations. Actions exist per blueprint; the org-wide /actions
// endpoint also covers automations.

// Actions returns the actions attached to a blueprint. Blueprints with no
// actions configured answer 410 Gone, surfaced as an *APIError.
func (c *Client) Actions(ctx context.Context, blueprint string) ([]Record, error) {
	return c.getList(ctx, "/blueprints/"+url.PathEscape(blueprint)+"/actions", "actions")
}

// AllActions returns every action and automation in the organization.
func (c *Client) AllActions(ctx context.Context) ([]Record, error) {
	return c.getList(ctx, "/actions", "actions")
}

// CreateAction creates an action under a blueprint.
func (c *Client) CreateAction(ctx context.Context, blueprint string, action Record) (Record, error) {
	return c.object(ctx, http.MethodPost, "/blueprints/"+url.PathEscape(blueprint)+"/actions", "action", action)
}

// UpdateAction updates an existing action.
func (c *Client) UpdateAction(ctx context.Context, blueprint, identifier string, action Record) (Record, error) {
	return c.object(ctx, http.MethodPatch,
		"/blueprints/"+url.PathEscape(blueprint)+"/actions/"+url.PathEscape(identifier), "action", action)
}

// DeleteAction deletes an action.
func (c *Client) DeleteAction(ctx context.Context, blueprint, identifier string) error {
	return c.delete(ctx, "/blueprints/"+url.PathEscape(blueprint)+"/actions/"+url.PathEscape(identifier))
}

// Team operations. Teams are keyed by name rather than identifier.

// Teams returns all teams.
func (c *Client) Teams(ctx context.Context) ([]Record, error) {
	return c.getList(ctx, "/teams", "teams")
}

// CreateTeam creates a new team.
func (c *Client) CreateTeam(ctx context.Context, team Record) (Record, error) {
	return c.object(ctx, http.MethodPost, "/teams", "team", team)
}

// UpdateTeam updates an existing team by name.
func (c *Client) UpdateTeam(ctx context.Context, name string, team Record) (Record, error) {
	return c.object(ctx, http.MethodPatch, "/teams/"+url.PathEscape(name), "team", team)
}

// DeleteTeam deletes a team.
func (c *Client) DeleteTeam(ctx context.Context, name string) error {
	return c.delete(ctx, "/teams/"+url.PathEscape(name))
}

// Automation operations. Automations share the org-wide /actions endpoint.

// CreateAutomation creates an organization-wide automation.
func (c *Client) CreateAutomation(ctx context.Context, automation Record) (Record, error) {
	return c.object(ctx, http.MethodPost, "/actions", "action", automation)
}

// UpdateAutomation replaces an existing automation.
func (c *Client) UpdateAutomation(ctx context.Context, identifier string, automation Record) (Record, error) {
	return c.object(ctx, http.MethodPut, "/actions/"+url.PathEscape(identifier), "action", automation)
}

// DeleteAutomation deletes an automation.
func (c *Client) DeleteAutomation(ctx context.Context, identifier string) error {
	return c.delete(ctx, "/actions/"+url.PathEscape(identifier))
}

// Page operations.

// Pages returns all pages.
func (c *Client) Pages(ctx context.Context) ([]Record, error) {
	return c.getList(ctx, "/pages", "pages")
}

// CreatePage creates a new page.
func (c *Client) CreatePage(ctx context.Context, page Record) (Record, error) {
	return c.object(ctx, http.MethodPost, "/pages", "page", page)
}

// UpdatePage updates an existing page.
func (c *Client) UpdatePage(ctx context.Context, identifier string, page Record) (Record, error) {
	return c.object(ctx, http.MethodPatch, "/pages/"+url.PathEscape(identifier), "page", page)
}

// DeletePage deletes a page.
func (c *Client) DeletePage(ctx context.Context, identifier string) error {
	return c.delete(ctx, "/pages/"+url.PathEscape(identifier))
}

// Integration operations. Integrations can only have their configuration
// updated; there is no creation endpoint.

// Integrations returns all installed integrations.
func (c *Client) Integrations(ctx context.Context) ([]Record, error) {
	return c.getList(ctx, "/integration", "integrations")
}

// UpdateIntegrationConfig updates an integration's configuration.
func (c *Client) UpdateIntegrationConfig(ctx context.Context, identifier string, config Record) (Record, error) {
	return c.object(ctx, http.MethodPatch, "/integration/"+url.PathEscape(identifier)+"/config", "integration", config)
}

// DeleteIntegration deletes an integration.
func (c *Client) DeleteIntegration(ctx context.Context, identifier string) error {
	return c.delete(ctx, "/integration/"+url.PathEscape(identifier))
}
