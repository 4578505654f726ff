package api

import (
	"context"
	"fmt"
	"net/http"

	"shopfront/internal/domain"
)

// Wishlist returns the saved products. This endpoint answers with the bare
// Wishlist record, not the usual envelope.
func (c *Client) Wishlist(ctx context.Context, sid string) ([]domain.Product, error) {
	var w domain.Wishlist
	if err := c.getJSON(ctx, sid, "/wishlist", nil, &w); err != nil {
		return nil, err
	}
	if w.Products == nil {
		return []domain.Product{}, nil
	}
	return w.Products, nil
}

// AddToWishlist propagates its error: the product page needs to tell the
// user whether saving worked.
func (c *Client) AddToWishlist(ctx context.Context, sid string, productID int) error {
	in := map[string]int{"product_id": productID}
	return c.writeJSON(ctx, sid, http.MethodPost, "/wishlist", nil, in, nil)
}

func (c *Client) RemoveFromWishlist(ctx context.Context, sid string, productID int) error {
	return c.delete(ctx, sid, fmt.Sprintf("/wishlist/%d", productID))
}
