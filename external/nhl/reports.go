package nhl

import (
	"context"
	"fmt"
	"net/url"
)

// reportEnvelope is the shape every stats-report endpoint returns. Rows are
// kept as raw maps: each report carries a different column set and the
// canonical schema mapping happens downstream.
type reportEnvelope struct {
	Data  []map[string]any `json:"data"`
	Total int              `json:"total"`
}

// SkaterSummary returns the season-to-date summary report for every skater:
// goals, assists, points, special teams, shooting and faceoff percentages.
func (c *Client) SkaterSummary(ctx context.Context) ([]map[string]any, error) {
	return c.fetchReport(ctx, "/en/skater/summary", "points")
}

// SkaterRealtime returns the realtime report, the only report carrying hits
// and blocked shots.
func (c *Client) SkaterRealtime(ctx context.Context) ([]map[string]any, error) {
	return c.fetchReport(ctx, "/en/skater/realtime", "hits")
}

// SkaterPossession returns the percentages report with the shot-attempt
// possession columns (SAT%, USAT%).
func (c *Client) SkaterPossession(ctx context.Context) ([]map[string]any, error) {
	return c.fetchReport(ctx, "/en/skater/percentages", "satPct")
}

// GoalieSummary returns the season-to-date summary report for every goalie.
func (c *Client) GoalieSummary(ctx context.Context) ([]map[string]any, error) {
	return c.fetchReport(ctx, "/en/goalie/summary", "wins")
}

func (c *Client) fetchReport(ctx context.Context, path, sortProperty string) ([]map[string]any, error) {
	query := url.Values{}
	query.Set("isAggregate", "false")
	query.Set("isGame", "false")
	query.Set("sort", fmt.Sprintf(`[{"property":%q,"direction":"DESC"}]`, sortProperty))
	query.Set("start", "0")
	query.Set("limit", unboundedLimit)
	query.Set("cayenneExp", fmt.Sprintf("gameTypeId=%d and seasonId=%s", c.gameType, c.season))

	var envelope reportEnvelope
	if err := c.doJSON(ctx, c.statsURL(path, query), &envelope); err != nil {
		return nil, fmt.Errorf("fetch report %s: %w", path, err)
	}
	return envelope.Data, nil
}
