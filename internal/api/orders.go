package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"shopfront/internal/domain"
)

// CheckoutRequest is the order creation body; the backend builds the order
// from the user's cart server-side.
type CheckoutRequest struct {
	Address       string `json:"address"`
	PaymentMethod string `json:"payment_method"`
}

// Checkout creates an order from the current cart. Errors propagate with the
// server's detail message; the checkout view must tell the user exactly why
// the order did not go through.
func (c *Client) Checkout(ctx context.Context, sid string, in CheckoutRequest) (*domain.Order, error) {
	var o domain.Order
	if err := c.writeJSON(ctx, sid, http.MethodPost, "/orders", nil, in, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) UserOrders(ctx context.Context, sid string) ([]domain.Order, error) {
	orders := []domain.Order{}
	if err := c.getJSON(ctx, sid, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

// OrderQuery filters the admin order listing.
type OrderQuery struct {
	Status string
	Limit  int
	Page   int
}

func (c *Client) AllOrders(ctx context.Context, sid string, q OrderQuery) ([]domain.Order, error) {
	v := url.Values{}
	if q.Status != "" {
		v.Set("status", q.Status)
	}
	if q.Limit > 0 {
		v.Set("limit", strconv.Itoa(q.Limit))
	}
	if q.Page > 0 {
		v.Set("page", strconv.Itoa(q.Page))
	}
	orders := []domain.Order{}
	if err := c.getJSON(ctx, sid, "/orders/all", v, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) UpdateOrderStatus(ctx context.Context, sid string, orderID int, status string) (*domain.Order, error) {
	v := url.Values{"new_status": {status}}
	var o domain.Order
	path := fmt.Sprintf("/orders/%d/status", orderID)
	if err := c.writeJSON(ctx, sid, http.MethodPut, path, v, nil, &o); err != nil {
		return nil, err
	}
	return &o, nil
}

func (c *Client) DeleteOrder(ctx context.Context, sid string, orderID int) error {
	return c.delete(ctx, sid, fmt.Sprintf("/orders/%d", orderID))
}
