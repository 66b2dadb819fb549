package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/cementops/go-admin-client/client"
	"github.com/cementops/go-admin-client/querycache"
)

// ListPaymentsParams filters and paginates settlements.
type ListPaymentsParams struct {
	Page    int
	Limit   int
	Status  string
	OrderID string
}

func (p ListPaymentsParams) query() url.Values {
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
	if p.OrderID != "" {
		values.Set("orderId", p.OrderID)
	}
	return values
}

// ListPayments returns a page of payments.
func (c *Client) ListPayments(ctx context.Context, params ListPaymentsParams) (Page[Payment], error) {
	return runListQuery(ctx, c, "ListPayments", client.Get("/payments", params.query()),
		querycache.EntityPayment, func(p Payment) string { return p.ID }, params)
}

// GetPayment returns a single payment by id.
func (c *Client) GetPayment(ctx context.Context, id string) (Payment, error) {
	return runQuery(ctx, c, "GetPayment", client.Get("/payments/"+id, nil),
		staticTags[Payment](querycache.EntityTag(querycache.EntityPayment, id)), id)
}

// VerifyPayment confirms a pending settlement against its provider
// reference. The parent order's cached views are invalidated too, since
// verification can flip the order into a paid state.
func (c *Client) VerifyPayment(ctx context.Context, id string) (Payment, error) {
	payment, err := runMutation[Payment](ctx, c, "VerifyPayment",
		client.Post("/payments/"+id+"/verify", nil),
		querycache.MutationTags(querycache.EntityPayment, id))
	if err != nil {
		return Payment{}, err
	}
	if payment.OrderID != "" {
		if err := c.tags.Invalidate(ctx, querycache.MutationTags(querycache.EntityOrder, payment.OrderID)...); err != nil {
			return Payment{}, err
		}
	}
	return payment, nil
}

// RefundPayment reverses a settled payment.
func (c *Client) RefundPayment(ctx context.Context, id string, reason string) (Payment, error) {
	return runMutation[Payment](ctx, c, "RefundPayment",
		client.Post("/payments/"+id+"/refund", map[string]string{"reason": reason}),
		querycache.MutationTags(querycache.EntityPayment, id))
}
