package api

import (
	"context"
	"net/url"

	"github.com/cementops/go-admin-client/client"
	"github.com/cementops/go-admin-client/querycache"
)

// Delivery pricing is derived from routes: every nearest-price quote caches
// under a PRICING tag keyed by (state, product), and route mutations drop
// the whole PRICING list because any route change can reshuffle which route
// is cheapest for a quote.

func nearestPriceTag(state, productID string) querycache.Tag {
	return querycache.DerivedTag(querycache.EntityPricing, "NEAREST", state, productID)
}

func routeMutationTags(id string) []querycache.Tag {
	return append(querycache.MutationTags(querycache.EntityDeliveryRoute, id),
		querycache.ListTag(querycache.EntityPricing))
}

// ListRoutes returns every delivery route, optionally narrowed to a state.
func (c *Client) ListRoutes(ctx context.Context, state string) (Page[DeliveryRoute], error) {
	values := url.Values{}
	if state != "" {
		values.Set("state", state)
	}
	return runListQuery(ctx, c, "ListRoutes", client.Get("/routes", values),
		querycache.EntityDeliveryRoute, func(r DeliveryRoute) string { return r.ID }, state)
}

// GetRoute returns a single route by id.
func (c *Client) GetRoute(ctx context.Context, id string) (DeliveryRoute, error) {
	return runQuery(ctx, c, "GetRoute", client.Get("/routes/"+id, nil),
		staticTags[DeliveryRoute](querycache.EntityTag(querycache.EntityDeliveryRoute, id)), id)
}

// CreateRoute opens a new delivery corridor.
func (c *Client) CreateRoute(ctx context.Context, input DeliveryRouteInput) (DeliveryRoute, error) {
	return runMutation[DeliveryRoute](ctx, c, "CreateRoute", client.Post("/routes", input),
		[]querycache.Tag{
			querycache.ListTag(querycache.EntityDeliveryRoute),
			querycache.ListTag(querycache.EntityPricing),
		})
}

// UpdateRoute changes a route's corridor or price.
func (c *Client) UpdateRoute(ctx context.Context, id string, input DeliveryRouteInput) (DeliveryRoute, error) {
	return runMutation[DeliveryRoute](ctx, c, "UpdateRoute", client.Put("/routes/"+id, input),
		routeMutationTags(id))
}

// DeleteRoute retires a delivery corridor.
func (c *Client) DeleteRoute(ctx context.Context, id string) error {
	_, err := runMutation[struct{}](ctx, c, "DeleteRoute", client.Delete("/routes/"+id),
		routeMutationTags(id))
	return err
}

// NearestRoutePrice quotes the cheapest delivery fee for a product into a
// state. The quote caches under both its specific pricing tag and the
// pricing list tag, so route changes reach it.
func (c *Client) NearestRoutePrice(ctx context.Context, state, productID string) (RouteQuote, error) {
	values := url.Values{}
	values.Set("state", state)
	values.Set("productId", productID)
	return runQuery(ctx, c, "NearestRoutePrice", client.Get("/routes/nearest-price", values),
		staticTags[RouteQuote](
			querycache.ListTag(querycache.EntityPricing),
			nearestPriceTag(state, productID),
		),
		state, productID)
}
