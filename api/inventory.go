package api

import (
	"context"
	"fmt"

	"github.com/cementops/go-admin-client/client"
	"github.com/cementops/go-admin-client/querycache"
)

// Inventory uses derived tags throughout: stock is addressed by
// (depot, product) pairs rather than a single id, and the low-stock
// aggregate depends on every depot's levels.

func depotInventoryTag(depotID string) querycache.Tag {
	return querycache.DerivedTag(querycache.EntityInventory, "DEPOT", depotID)
}

func inventoryLevelTag(depotID, productID string) querycache.Tag {
	return querycache.DerivedTag(querycache.EntityInventory, depotID, productID)
}

func adjustmentHistoryTag(depotID, productID string) querycache.Tag {
	return querycache.DerivedTag(querycache.EntityInventory, "HISTORY", depotID, productID)
}

func lowStockTag() querycache.Tag {
	return querycache.EntityTag(querycache.EntityInventory, "LOW_STOCK")
}

// DepotInventory returns the stock levels across one depot.
func (c *Client) DepotInventory(ctx context.Context, depotID string) (Page[InventoryRecord], error) {
	provides := func(page Page[InventoryRecord]) []querycache.Tag {
		tags := []querycache.Tag{depotInventoryTag(depotID)}
		for _, record := range page.Items {
			tags = append(tags, inventoryLevelTag(depotID, record.ProductID))
		}
		return tags
	}

	return runPageQuery(ctx, c, "DepotInventory",
		client.Get("/depots/"+depotID+"/inventory", nil), provides, depotID)
}

// InventoryLevel returns the stock of one product at one depot.
func (c *Client) InventoryLevel(ctx context.Context, depotID, productID string) (InventoryRecord, error) {
	return runQuery(ctx, c, "InventoryLevel",
		client.Get(fmt.Sprintf("/depots/%s/inventory/%s", depotID, productID), nil),
		staticTags[InventoryRecord](inventoryLevelTag(depotID, productID)),
		depotID, productID)
}

// AdjustmentHistory returns the audited stock movements for a depot+product
// pair.
func (c *Client) AdjustmentHistory(ctx context.Context, depotID, productID string) (Page[InventoryAdjustment], error) {
	return runPageQuery(ctx, c, "AdjustmentHistory",
		client.Get(fmt.Sprintf("/depots/%s/inventory/%s/history", depotID, productID), nil),
		staticTags[Page[InventoryAdjustment]](adjustmentHistoryTag(depotID, productID)),
		depotID, productID)
}

// LowStock returns every record at or below its reorder level.
func (c *Client) LowStock(ctx context.Context) (Page[InventoryRecord], error) {
	return runPageQuery(ctx, c, "LowStock", client.Get("/inventory/low-stock", nil),
		staticTags[Page[InventoryRecord]](lowStockTag()))
}

// AdjustInventory applies a stock movement. On success it invalidates the
// depot's inventory view, the specific level, that pair's adjustment
// history, and the low-stock aggregate. Nothing else is touched.
func (c *Client) AdjustInventory(ctx context.Context, depotID, productID string, input InventoryAdjustmentInput) (InventoryRecord, error) {
	return runMutation[InventoryRecord](ctx, c, "AdjustInventory",
		client.Post(fmt.Sprintf("/depots/%s/inventory/%s/adjust", depotID, productID), input),
		[]querycache.Tag{
			depotInventoryTag(depotID),
			inventoryLevelTag(depotID, productID),
			adjustmentHistoryTag(depotID, productID),
			lowStockTag(),
		})
}
