package api_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"shopfront/internal/api"
)

func listWithQuery(t *testing.T, q api.ProductQuery) url.Values {
	t.Helper()
	var got url.Values
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got = r.URL.Query()
		w.Write([]byte(`{"message":"ok","data":[]}`))
	}))
	defer backend.Close()

	c := api.New(backend.URL, &memStore{access: "tok"}, nil)
	if _, err := c.ListProducts(context.Background(), "sid-1", q); err != nil {
		t.Fatalf("list products: %v", err)
	}
	return got
}

func TestListProductsDefaultsToTenPerPage(t *testing.T) {
	got := listWithQuery(t, api.ProductQuery{})
	if got.Get("limit") != "10" {
		t.Fatalf("limit = %q, want 10", got.Get("limit"))
	}
}

func TestListProductsZeroLimitDisablesPagination(t *testing.T) {
	zero := 0
	got := listWithQuery(t, api.ProductQuery{Limit: &zero})
	if got.Has("limit") {
		t.Fatalf("limit param sent (%q), want omitted", got.Get("limit"))
	}
}

func TestListProductsFilterParams(t *testing.T) {
	five := 5
	got := listWithQuery(t, api.ProductQuery{
		Limit: &five, Search: "retro", CategoryID: 3, Page: 2,
		SortBy: "price", SortDir: "asc",
	})
	want := map[string]string{
		"limit": "5", "search": "retro", "category_id": "3",
		"page": "2", "sort_by": "price", "sort_dir": "asc",
	}
	for k, v := range want {
		if got.Get(k) != v {
			t.Fatalf("%s = %q, want %q", k, got.Get(k), v)
		}
	}
}
