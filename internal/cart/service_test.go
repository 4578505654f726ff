package cart_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"shopfront/internal/api"
	"shopfront/internal/cart"
	"shopfront/internal/domain"
)

type staticStore struct{}

func (staticStore) Tokens(string) (string, string, error) { return "tok", "ref", nil }
func (staticStore) SetTokens(string, string, string) error { return nil }
func (staticStore) ClearTokens(string) error               { return nil }

type recordedReplace struct {
	method string
	path   string
	Items  []domain.CartItemRef `json:"cart_items"`
}

// cartBackend serves a fixed cart listing and records whatever replacement
// payload arrives.
func cartBackend(t *testing.T, existing []domain.Cart, rec *recordedReplace) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("GET /carts", func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(map[string]any{"message": "ok", "data": existing})
	})
	record := func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		rec.method = r.Method
		rec.path = r.URL.Path
		if err := json.Unmarshal(body, rec); err != nil {
			t.Errorf("decode replacement payload: %v", err)
		}
		w.Write([]byte(`{"message":"ok","data":{"id":1,"total_amount":10,"cart_items":[]}}`))
	}
	mux.HandleFunc("POST /carts", record)
	mux.HandleFunc("PUT /carts/{id}", record)
	return httptest.NewServer(mux)
}

func TestAddCreatesCartOnFirstUse(t *testing.T) {
	var rec recordedReplace
	backend := cartBackend(t, []domain.Cart{}, &rec)
	defer backend.Close()

	svc := cart.NewService(api.New(backend.URL, staticStore{}, nil))
	if _, err := svc.Add(context.Background(), "sid-1", 7); err != nil {
		t.Fatalf("add: %v", err)
	}
	if rec.method != http.MethodPost || rec.path != "/carts" {
		t.Fatalf("first add sent %s %s, want POST /carts", rec.method, rec.path)
	}
	if len(rec.Items) != 1 || rec.Items[0] != (domain.CartItemRef{ProductID: 7, Quantity: 1}) {
		t.Fatalf("payload = %+v", rec.Items)
	}
}

func TestAddResendsFullListToExistingCart(t *testing.T) {
	var rec recordedReplace
	existing := []domain.Cart{{
		ID: 5,
		Items: []domain.CartItem{
			{ProductID: 7, Quantity: 1},
			{ProductID: 9, Quantity: 3},
		},
	}}
	backend := cartBackend(t, existing, &rec)
	defer backend.Close()

	svc := cart.NewService(api.New(backend.URL, staticStore{}, nil))
	if _, err := svc.Add(context.Background(), "sid-1", 7); err != nil {
		t.Fatalf("add: %v", err)
	}
	if rec.method != http.MethodPut || rec.path != "/carts/5" {
		t.Fatalf("add sent %s %s, want PUT /carts/5", rec.method, rec.path)
	}
	want := []domain.CartItemRef{{ProductID: 7, Quantity: 2}, {ProductID: 9, Quantity: 3}}
	if len(rec.Items) != 2 || rec.Items[0] != want[0] || rec.Items[1] != want[1] {
		t.Fatalf("payload = %+v, want the complete merged list %+v", rec.Items, want)
	}
}

func TestChangeQtyWithoutCart(t *testing.T) {
	var rec recordedReplace
	backend := cartBackend(t, []domain.Cart{}, &rec)
	defer backend.Close()

	svc := cart.NewService(api.New(backend.URL, staticStore{}, nil))
	_, err := svc.ChangeQty(context.Background(), "sid-1", 7, 1)
	if err != cart.ErrNoCart {
		t.Fatalf("err = %v, want ErrNoCart", err)
	}
	if rec.method != "" {
		t.Fatalf("unexpected %s %s with no cart", rec.method, rec.path)
	}
}

func TestRemoveResendsRemainder(t *testing.T) {
	var rec recordedReplace
	existing := []domain.Cart{{
		ID: 5,
		Items: []domain.CartItem{
			{ProductID: 7, Quantity: 2},
			{ProductID: 9, Quantity: 1},
		},
	}}
	backend := cartBackend(t, existing, &rec)
	defer backend.Close()

	svc := cart.NewService(api.New(backend.URL, staticStore{}, nil))
	if _, err := svc.Remove(context.Background(), "sid-1", 9); err != nil {
		t.Fatalf("remove: %v", err)
	}
	if rec.method != http.MethodPut || rec.path != "/carts/5" {
		t.Fatalf("remove sent %s %s, want PUT /carts/5", rec.method, rec.path)
	}
	if len(rec.Items) != 1 || rec.Items[0] != (domain.CartItemRef{ProductID: 7, Quantity: 2}) {
		t.Fatalf("payload = %+v", rec.Items)
	}
}
