package cart_test

import (
	"reflect"
	"testing"

	"shopfront/internal/cart"
	"shopfront/internal/domain"
)

func lines(refs ...domain.CartItemRef) []domain.CartItem {
	items := make([]domain.CartItem, 0, len(refs))
	for _, r := range refs {
		items = append(items, domain.CartItem{ProductID: r.ProductID, Quantity: r.Quantity})
	}
	return items
}

func TestAddLineMergesIntoExistingLine(t *testing.T) {
	items := lines(domain.CartItemRef{ProductID: 7, Quantity: 1})
	got := cart.AddLine(items, 7)
	want := []domain.CartItemRef{{ProductID: 7, Quantity: 2}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want one merged line %+v", got, want)
	}
}

func TestAddLineAppendsNewProduct(t *testing.T) {
	items := lines(domain.CartItemRef{ProductID: 7, Quantity: 2})
	got := cart.AddLine(items, 9)
	want := []domain.CartItemRef{{ProductID: 7, Quantity: 2}, {ProductID: 9, Quantity: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestAdjustQtyFloorsAtOne(t *testing.T) {
	items := lines(domain.CartItemRef{ProductID: 7, Quantity: 1})
	got := cart.AdjustQty(items, 7, -1)
	if got[0].Quantity != 1 {
		t.Fatalf("quantity = %d, decrement below 1 must be a no-op", got[0].Quantity)
	}
	got = cart.AdjustQty(items, 7, -5)
	if got[0].Quantity != 1 {
		t.Fatalf("quantity = %d after large negative delta, want 1", got[0].Quantity)
	}
}

func TestAdjustQtyLeavesOtherLinesAlone(t *testing.T) {
	items := lines(
		domain.CartItemRef{ProductID: 7, Quantity: 2},
		domain.CartItemRef{ProductID: 9, Quantity: 1},
	)
	got := cart.AdjustQty(items, 7, 1)
	want := []domain.CartItemRef{{ProductID: 7, Quantity: 3}, {ProductID: 9, Quantity: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestRemoveLineFiltersProduct(t *testing.T) {
	items := lines(
		domain.CartItemRef{ProductID: 7, Quantity: 2},
		domain.CartItemRef{ProductID: 9, Quantity: 1},
	)
	got := cart.RemoveLine(items, 7)
	want := []domain.CartItemRef{{ProductID: 9, Quantity: 1}}
	if !reflect.DeepEqual(got, want) {
		t.Fatalf("got %+v, want %+v", got, want)
	}
}

func TestPreviewAddsTaxOnServerTotal(t *testing.T) {
	est := cart.Preview(&domain.Cart{TotalAmount: 100})
	if est.Subtotal != "100.00" || est.Tax != "8.00" || est.Total != "108.00" {
		t.Fatalf("estimate = %+v", est)
	}
}

func TestPreviewNilCartIsZero(t *testing.T) {
	est := cart.Preview(nil)
	if est.Subtotal != "0.00" || est.Tax != "0.00" || est.Total != "0.00" {
		t.Fatalf("estimate = %+v", est)
	}
}
