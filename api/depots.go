package api

import (
	"context"
	"net/url"

	"github.com/cementops/go-admin-client/client"
	"github.com/cementops/go-admin-client/querycache"
)

// ListDepotsParams filters the depot listing.
type ListDepotsParams struct {
	State string
}

func (p ListDepotsParams) query() url.Values {
	values := url.Values{}
	if p.State != "" {
		values.Set("state", p.State)
	}
	return values
}

// ListDepots returns the depots, optionally filtered by state.
func (c *Client) ListDepots(ctx context.Context, params ListDepotsParams) (Page[Depot], error) {
	return runListQuery(ctx, c, "ListDepots", client.Get("/depots", params.query()),
		querycache.EntityDepot, func(d Depot) string { return d.ID }, params)
}

// GetDepot returns a single depot by id.
func (c *Client) GetDepot(ctx context.Context, id string) (Depot, error) {
	return runQuery(ctx, c, "GetDepot", client.Get("/depots/"+id, nil),
		staticTags[Depot](querycache.EntityTag(querycache.EntityDepot, id)), id)
}

// CreateDepot registers a new warehouse location.
func (c *Client) CreateDepot(ctx context.Context, input DepotInput) (Depot, error) {
	return runMutation[Depot](ctx, c, "CreateDepot", client.Post("/depots", input),
		[]querycache.Tag{querycache.ListTag(querycache.EntityDepot)})
}

// UpdateDepot replaces a depot's fields.
func (c *Client) UpdateDepot(ctx context.Context, id string, input DepotInput) (Depot, error) {
	return runMutation[Depot](ctx, c, "UpdateDepot", client.Put("/depots/"+id, input),
		querycache.MutationTags(querycache.EntityDepot, id))
}

// DeleteDepot removes a depot.
func (c *Client) DeleteDepot(ctx context.Context, id string) error {
	_, err := runMutation[struct{}](ctx, c, "DeleteDepot", client.Delete("/depots/"+id),
		querycache.MutationTags(querycache.EntityDepot, id))
	return err
}
