package api

import (
	"context"
	"net/url"

	"github.com/cementops/go-admin-client/client"
	"github.com/cementops/go-admin-client/querycache"
)

// Reports are aggregates over other entities, so they cache under the
// REPORT list tag: any logout drops them, and callers that need fresher
// numbers after a mutation can invalidate ListTag(EntityReport) explicitly.

// SalesSummary returns the aggregated sales report for a period such as
// "7d" or "30d".
func (c *Client) SalesSummary(ctx context.Context, period string) (SalesSummary, error) {
	values := url.Values{}
	values.Set("period", period)
	return runQuery(ctx, c, "SalesSummary", client.Get("/reports/sales", values),
		staticTags[SalesSummary](
			querycache.ListTag(querycache.EntityReport),
			querycache.DerivedTag(querycache.EntityReport, "SALES", period),
		),
		period)
}

// InventorySummary returns the aggregated stock report across all depots.
func (c *Client) InventorySummary(ctx context.Context) (InventorySummary, error) {
	return runQuery(ctx, c, "InventorySummary", client.Get("/reports/inventory", nil),
		staticTags[InventorySummary](
			querycache.ListTag(querycache.EntityReport),
			querycache.EntityTag(querycache.EntityReport, "INVENTORY"),
		))
}
