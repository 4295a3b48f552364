package client

import (
	"context"
	"errors"

	"github.com/psantana5/flexdash/pkg/models"
)

type getStatsResponse struct {
	Stats *models.Stats `json:"stats"`
}

// GetStats returns the hub's counters as reported. They are not
// cross-checked: the hub is authoritative.
func (c *Client) GetStats(ctx context.Context) (*models.Stats, error) {
	var res getStatsResponse
	if err := c.getJSON(ctx, "api/stats", nil, &res); err != nil {
		return nil, err
	}
	if res.Stats == nil {
		return nil, &DecodeError{URL: c.mustEndpoint("api/stats", nil), Err: errors.New("missing field stats")}
	}
	return res.Stats, nil
}
