package api

import (
	"context"
	"fmt"
	"net/http"

	"shopfront/internal/domain"
)

type cartPayload struct {
	Items []domain.CartItemRef `json:"cart_items"`
}

// UserCart fetches the visitor's cart. The backend lists carts for the
// current user; the first one is theirs. Nil with no error means no cart
// exists yet.
func (c *Client) UserCart(ctx context.Context, sid string) (*domain.Cart, error) {
	carts := []domain.Cart{}
	if err := c.getJSON(ctx, sid, "/carts", nil, &carts); err != nil {
		return nil, err
	}
	if len(carts) == 0 {
		return nil, nil
	}
	return &carts[0], nil
}

func (c *Client) CreateCart(ctx context.Context, sid string, items []domain.CartItemRef) (*domain.Cart, error) {
	var cart domain.Cart
	if err := c.writeJSON(ctx, sid, http.MethodPost, "/carts", nil, cartPayload{Items: items}, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}

// ReplaceCart sends the complete desired item list, never a delta. Totals in
// the returned cart are the server's; the client never recomputes them.
func (c *Client) ReplaceCart(ctx context.Context, sid string, cartID int, items []domain.CartItemRef) (*domain.Cart, error) {
	var cart domain.Cart
	path := fmt.Sprintf("/carts/%d", cartID)
	if err := c.writeJSON(ctx, sid, http.MethodPut, path, nil, cartPayload{Items: items}, &cart); err != nil {
		return nil, err
	}
	return &cart, nil
}
