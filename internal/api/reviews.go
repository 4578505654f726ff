package api

import (
	"context"
	"fmt"
	"net/http"

	"shopfront/internal/domain"
)

type ReviewCreate struct {
	ProductID int    `json:"product_id"`
	Rating    int    `json:"rating"`
	Comment   string `json:"comment,omitempty"`
}

// CreateReview propagates its error so the caller can distinguish the 409
// duplicate-review conflict from other failures.
func (c *Client) CreateReview(ctx context.Context, sid string, in ReviewCreate) (*domain.Review, error) {
	var r domain.Review
	if err := c.writeJSON(ctx, sid, http.MethodPost, "/reviews", nil, in, &r); err != nil {
		return nil, err
	}
	return &r, nil
}

func (c *Client) ProductReviews(ctx context.Context, sid string, productID int) ([]domain.Review, error) {
	reviews := []domain.Review{}
	path := fmt.Sprintf("/reviews/product/%d", productID)
	if err := c.getJSON(ctx, sid, path, nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}

func (c *Client) AllReviews(ctx context.Context, sid string) ([]domain.Review, error) {
	reviews := []domain.Review{}
	if err := c.getJSON(ctx, sid, "/reviews", nil, &reviews); err != nil {
		return nil, err
	}
	return reviews, nil
}
