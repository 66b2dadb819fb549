package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/cementops/go-admin-client/client"
	"github.com/cementops/go-admin-client/querycache"
)

// ListOrdersParams filters and paginates the order book.
type ListOrdersParams struct {
	Page    int
	Limit   int
	Status  string
	DepotID string
}

func (p ListOrdersParams) query() url.Values {
	values := url.Values{}
	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Status != "" {
		values.Set("status", p.Status)
	}
	if p.DepotID != "" {
		values.Set("depotId", p.DepotID)
	}
	return values
}

// ListOrders returns a page of orders.
func (c *Client) ListOrders(ctx context.Context, params ListOrdersParams) (Page[Order], error) {
	return runListQuery(ctx, c, "ListOrders", client.Get("/orders", params.query()),
		querycache.EntityOrder, func(o Order) string { return o.ID }, params)
}

// GetOrder returns a single order by id.
func (c *Client) GetOrder(ctx context.Context, id string) (Order, error) {
	return runQuery(ctx, c, "GetOrder", client.Get("/orders/"+id, nil),
		staticTags[Order](querycache.EntityTag(querycache.EntityOrder, id)), id)
}

// CreateOrder places an order on behalf of a customer. Only the collection
// is invalidated; the new order's id is unknowable before the call.
func (c *Client) CreateOrder(ctx context.Context, input OrderInput) (Order, error) {
	return runMutation[Order](ctx, c, "CreateOrder", client.Post("/orders", input),
		[]querycache.Tag{querycache.ListTag(querycache.EntityOrder)})
}

// UpdateOrderStatus moves an order through its fulfilment states.
func (c *Client) UpdateOrderStatus(ctx context.Context, id, status string) (Order, error) {
	return runMutation[Order](ctx, c, "UpdateOrderStatus",
		client.Patch("/orders/"+id+"/status", map[string]string{"status": status}),
		querycache.MutationTags(querycache.EntityOrder, id))
}

// CancelOrder cancels an order that has not shipped.
func (c *Client) CancelOrder(ctx context.Context, id string) (Order, error) {
	return runMutation[Order](ctx, c, "CancelOrder",
		client.Post("/orders/"+id+"/cancel", nil),
		querycache.MutationTags(querycache.EntityOrder, id))
}
