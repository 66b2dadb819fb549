package api

import (
	"context"
	"net/url"
	"strconv"

	"github.com/cementops/go-admin-client/client"
	"github.com/cementops/go-admin-client/querycache"
)

// ListProductsParams filters and paginates the product catalog.
type ListProductsParams struct {
	Page    int
	Limit   int
	Search  string
	BrandID string
}

func (p ListProductsParams) query() url.Values {
	values := url.Values{}
	if p.Page > 0 {
		values.Set("page", strconv.Itoa(p.Page))
	}
	if p.Limit > 0 {
		values.Set("limit", strconv.Itoa(p.Limit))
	}
	if p.Search != "" {
		values.Set("search", p.Search)
	}
	if p.BrandID != "" {
		values.Set("brandId", p.BrandID)
	}
	return values
}

// ListProducts returns a page of the product catalog.
func (c *Client) ListProducts(ctx context.Context, params ListProductsParams) (Page[Product], error) {
	return runListQuery(ctx, c, "ListProducts", client.Get("/products", params.query()),
		querycache.EntityProduct, func(p Product) string { return p.ID }, params)
}

// GetProduct returns a single product by id.
func (c *Client) GetProduct(ctx context.Context, id string) (Product, error) {
	return runQuery(ctx, c, "GetProduct", client.Get("/products/"+id, nil),
		staticTags[Product](querycache.EntityTag(querycache.EntityProduct, id)), id)
}

// CreateProduct adds a catalog entry. Only the collection is invalidated;
// the new item's id is unknowable before the call.
func (c *Client) CreateProduct(ctx context.Context, input ProductInput) (Product, error) {
	return runMutation[Product](ctx, c, "CreateProduct", client.Post("/products", input),
		[]querycache.Tag{querycache.ListTag(querycache.EntityProduct)})
}

// UpdateProduct replaces a product's fields.
func (c *Client) UpdateProduct(ctx context.Context, id string, input ProductInput) (Product, error) {
	return runMutation[Product](ctx, c, "UpdateProduct", client.Put("/products/"+id, input),
		querycache.MutationTags(querycache.EntityProduct, id))
}

// DeleteProduct removes a product from the catalog.
func (c *Client) DeleteProduct(ctx context.Context, id string) error {
	_, err := runMutation[struct{}](ctx, c, "DeleteProduct", client.Delete("/products/"+id),
		querycache.MutationTags(querycache.EntityProduct, id))
	return err
}

// SetProductActive activates or deactivates a catalog entry.
func (c *Client) SetProductActive(ctx context.Context, id string, active bool) (Product, error) {
	return runMutation[Product](ctx, c, "SetProductActive",
		client.Patch("/products/"+id+"/active", map[string]bool{"active": active}),
		querycache.MutationTags(querycache.EntityProduct, id))
}
