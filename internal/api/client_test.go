package api_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"shopfront/internal/api"
)

// memStore is an in-memory TokenStore for exercising the client without a
// database.
type memStore struct {
	mu      sync.Mutex
	access  string
	refresh string
	cleared bool
}

func (m *memStore) Tokens(string) (string, string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.access, m.refresh, nil
}

func (m *memStore) SetTokens(_, access, refresh string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = access, refresh
	return nil
}

func (m *memStore) ClearTokens(string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.access, m.refresh = "", ""
	m.cleared = true
	return nil
}

func TestBearerAttachedToAuthenticatedCalls(t *testing.T) {
	var gotAuth string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{"message":"ok","data":[]}`))
	}))
	defer backend.Close()

	store := &memStore{access: "tok-a", refresh: "tok-r"}
	c := api.New(backend.URL, store, nil)

	if _, err := c.ListCategories(context.Background(), "sid-1"); err != nil {
		t.Fatalf("list categories: %v", err)
	}
	if gotAuth != "Bearer tok-a" {
		t.Fatalf("authorization header = %q, want Bearer tok-a", gotAuth)
	}
}

func TestExpiredTokenRefreshedOnceAndRetried(t *testing.T) {
	var catalogCalls, refreshCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/categories", func(w http.ResponseWriter, r *http.Request) {
		catalogCalls++
		if r.Header.Get("Authorization") != "Bearer fresh" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Token expired"}`))
			return
		}
		w.Write([]byte(`{"message":"ok","data":[{"id":1,"name":"Consoles"}]}`))
	})
	mux.HandleFunc("/api/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
		if r.Header.Get("refresh_token") != "ref-1" {
			w.WriteHeader(http.StatusUnauthorized)
			w.Write([]byte(`{"detail":"Invalid refresh token"}`))
			return
		}
		w.Write([]byte(`{"access_token":"fresh","refresh_token":"ref-2"}`))
	})
	backend := httptest.NewServer(mux)
	defer backend.Close()

	store := &memStore{access: "stale", refresh: "ref-1"}
	c := api.New(backend.URL, store, nil)

	cats, err := c.ListCategories(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("list categories after refresh: %v", err)
	}
	if len(cats) != 1 || cats[0].Name != "Consoles" {
		t.Fatalf("unexpected categories: %+v", cats)
	}
	if refreshCalls != 1 {
		t.Fatalf("refresh called %d times, want 1", refreshCalls)
	}
	if catalogCalls != 2 {
		t.Fatalf("catalog called %d times, want original + one retry", catalogCalls)
	}
	if store.access != "fresh" || store.refresh != "ref-2" {
		t.Fatalf("rotated pair not persisted: access=%q refresh=%q", store.access, store.refresh)
	}
}

func TestRefreshFailureClearsTokens(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/categories", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Token expired"}`))
	})
	mux.HandleFunc("/api/refresh", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Refresh token revoked"}`))
	})
	backend := httptest.NewServer(mux)
	defer backend.Close()

	store := &memStore{access: "stale", refresh: "revoked"}
	c := api.New(backend.URL, store, nil)

	_, err := c.ListCategories(context.Background(), "sid-1")
	if !errors.Is(err, api.ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
	if !store.cleared {
		t.Fatal("tokens were not cleared after failed refresh")
	}
}

func TestMissingRefreshTokenNeverHitsRefresh(t *testing.T) {
	var refreshCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/categories", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	})
	mux.HandleFunc("/api/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
	})
	backend := httptest.NewServer(mux)
	defer backend.Close()

	store := &memStore{access: "stale"}
	c := api.New(backend.URL, store, nil)

	_, err := c.ListCategories(context.Background(), "sid-1")
	if !errors.Is(err, api.ErrUnauthenticated) {
		t.Fatalf("err = %v, want ErrUnauthenticated", err)
	}
	if refreshCalls != 0 {
		t.Fatalf("refresh called %d times with no refresh token", refreshCalls)
	}
}

func TestLoginRejectionCarriesBackendDetail(t *testing.T) {
	var refreshCalls int
	mux := http.NewServeMux()
	mux.HandleFunc("/auth/login/user", func(w http.ResponseWriter, r *http.Request) {
		if ct := r.Header.Get("Content-Type"); ct != "application/x-www-form-urlencoded" {
			t.Errorf("login content type = %q", ct)
		}
		w.WriteHeader(http.StatusUnauthorized)
		w.Write([]byte(`{"detail":"Incorrect username or password"}`))
	})
	mux.HandleFunc("/api/refresh", func(w http.ResponseWriter, r *http.Request) {
		refreshCalls++
	})
	backend := httptest.NewServer(mux)
	defer backend.Close()

	c := api.New(backend.URL, &memStore{}, nil)
	_, err := c.Login(context.Background(), "alice", "wrong", "user")
	if err == nil {
		t.Fatal("expected login error")
	}
	if got := api.Detail(err); got != "Incorrect username or password" {
		t.Fatalf("detail = %q", got)
	}
	// a login 401 is a final answer; it must not trigger the refresh path
	if refreshCalls != 0 {
		t.Fatalf("refresh called %d times during login", refreshCalls)
	}
	if errors.Is(err, api.ErrUnauthenticated) {
		t.Fatal("login rejection should keep the backend error, not ErrUnauthenticated")
	}
}

func TestDuplicateReviewIsConflict(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
		w.Write([]byte(`{"detail":"You have already reviewed this product"}`))
	}))
	defer backend.Close()

	c := api.New(backend.URL, &memStore{access: "tok"}, nil)
	_, err := c.CreateReview(context.Background(), "sid-1", api.ReviewCreate{ProductID: 3, Rating: 5})
	if !api.IsConflict(err) {
		t.Fatalf("err = %v, want a 409 conflict", err)
	}
}

func TestBarePayloadDecodesWithoutEnvelope(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// wishlist answers with the bare record, no {message,data} wrapper
		w.Write([]byte(`{"id":1,"user_id":9,"products":[{"id":4,"title":"Handheld"}]}`))
	}))
	defer backend.Close()

	c := api.New(backend.URL, &memStore{access: "tok"}, nil)
	products, err := c.Wishlist(context.Background(), "sid-1")
	if err != nil {
		t.Fatalf("wishlist: %v", err)
	}
	if len(products) != 1 || products[0].Title != "Handheld" {
		t.Fatalf("unexpected products: %+v", products)
	}
}
