package api

import (
	"context"

	"github.com/cementops/go-admin-client/client"
	"github.com/cementops/go-admin-client/querycache"
)

// ListBrands returns every brand the business distributes.
func (c *Client) ListBrands(ctx context.Context) (Page[Brand], error) {
	return runListQuery(ctx, c, "ListBrands", client.Get("/brands", nil),
		querycache.EntityBrand, func(b Brand) string { return b.ID })
}

// GetBrand returns a single brand by id.
func (c *Client) GetBrand(ctx context.Context, id string) (Brand, error) {
	return runQuery(ctx, c, "GetBrand", client.Get("/brands/"+id, nil),
		staticTags[Brand](querycache.EntityTag(querycache.EntityBrand, id)), id)
}

// CreateBrand registers a new brand.
func (c *Client) CreateBrand(ctx context.Context, input BrandInput) (Brand, error) {
	return runMutation[Brand](ctx, c, "CreateBrand", client.Post("/brands", input),
		[]querycache.Tag{querycache.ListTag(querycache.EntityBrand)})
}

// UpdateBrand replaces a brand's fields.
func (c *Client) UpdateBrand(ctx context.Context, id string, input BrandInput) (Brand, error) {
	return runMutation[Brand](ctx, c, "UpdateBrand", client.Put("/brands/"+id, input),
		querycache.MutationTags(querycache.EntityBrand, id))
}

// DeleteBrand removes a brand.
func (c *Client) DeleteBrand(ctx context.Context, id string) error {
	_, err := runMutation[struct{}](ctx, c, "DeleteBrand", client.Delete("/brands/"+id),
		querycache.MutationTags(querycache.EntityBrand, id))
	return err
}
