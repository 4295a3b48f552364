package client

import (
	"context"

	"github.com/psantana5/flexdash/pkg/models"
)

type listFlexletsResponse struct {
	Flexlets []models.FlexletStatus `json:"flexlets"`
}

// ListFlexlets returns every flexlet known to the hub, online or not
func (c *Client) ListFlexlets(ctx context.Context) ([]models.FlexletStatus, error) {
	var res listFlexletsResponse
	if err := c.getJSON(ctx, "api/flexlets", nil, &res); err != nil {
		return nil, err
	}
	if err := validateFlexletStatuses("flexlets", res.Flexlets); err != nil {
		return nil, &DecodeError{URL: c.mustEndpoint("api/flexlets", nil), Err: err}
	}
	if res.Flexlets == nil {
		res.Flexlets = []models.FlexletStatus{}
	}
	return res.Flexlets, nil
}
