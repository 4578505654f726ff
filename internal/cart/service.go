package cart

import (
	"context"
	"errors"

	"shopfront/internal/api"
	"shopfront/internal/domain"
)

// ErrNoCart means a quantity change or removal arrived for a visitor with no
// cart; the view just re-renders the empty cart page.
var ErrNoCart = errors.New("no cart")

// Service performs read-reconcile-replace cycles against the backend. There
// is no optimistic local state: callers render whatever cart the server
// returns. Two racing mutations can lose an update (last write wins); that
// is an accepted property of the full-replace protocol.
type Service struct {
	API *api.Client
}

func NewService(c *api.Client) *Service { return &Service{API: c} }

// Add puts one unit of the product in the visitor's cart, creating the cart
// on first use.
func (s *Service) Add(ctx context.Context, sid string, productID int) (*domain.Cart, error) {
	current, err := s.API.UserCart(ctx, sid)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return s.API.CreateCart(ctx, sid, []domain.CartItemRef{{ProductID: productID, Quantity: 1}})
	}
	return s.API.ReplaceCart(ctx, sid, current.ID, AddLine(current.Items, productID))
}

// ChangeQty applies a +/- delta to one line (floor 1).
func (s *Service) ChangeQty(ctx context.Context, sid string, productID, delta int) (*domain.Cart, error) {
	current, err := s.API.UserCart(ctx, sid)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNoCart
	}
	return s.API.ReplaceCart(ctx, sid, current.ID, AdjustQty(current.Items, productID, delta))
}

// Remove drops a line entirely.
func (s *Service) Remove(ctx context.Context, sid string, productID int) (*domain.Cart, error) {
	current, err := s.API.UserCart(ctx, sid)
	if err != nil {
		return nil, err
	}
	if current == nil {
		return nil, ErrNoCart
	}
	return s.API.ReplaceCart(ctx, sid, current.ID, RemoveLine(current.Items, productID))
}
