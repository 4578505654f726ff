package session_test

import (
	"testing"

	"shopfront/internal/domain"
	"shopfront/internal/session"
)

func openStore(t *testing.T) *session.Store {
	t.Helper()
	s, err := session.Open(":memory:")
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestTokensRoundTrip(t *testing.T) {
	s := openStore(t)
	if err := s.SetTokens("sid-1", "acc", "ref"); err != nil {
		t.Fatalf("set tokens: %v", err)
	}
	access, refresh, err := s.Tokens("sid-1")
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}
	if access != "acc" || refresh != "ref" {
		t.Fatalf("got %q/%q", access, refresh)
	}
}

func TestUnknownVisitorHasNoCredentials(t *testing.T) {
	s := openStore(t)
	access, refresh, err := s.Tokens("never-seen")
	if err != nil {
		t.Fatalf("tokens: %v", err)
	}
	if access != "" || refresh != "" {
		t.Fatalf("got %q/%q for unknown sid", access, refresh)
	}
	u, err := s.User("never-seen")
	if err != nil || u != nil {
		t.Fatalf("user = %v, %v; want nil, nil", u, err)
	}
}

func TestSetTokensRotatesExistingRow(t *testing.T) {
	s := openStore(t)
	if err := s.SetTokens("sid-1", "old-a", "old-r"); err != nil {
		t.Fatalf("set tokens: %v", err)
	}
	if err := s.SetTokens("sid-1", "new-a", "new-r"); err != nil {
		t.Fatalf("rotate tokens: %v", err)
	}
	access, refresh, _ := s.Tokens("sid-1")
	if access != "new-a" || refresh != "new-r" {
		t.Fatalf("got %q/%q after rotation", access, refresh)
	}
}

func TestSaveUserCachesDisplayCopy(t *testing.T) {
	s := openStore(t)
	in := &domain.User{ID: 9, Username: "alice", Role: domain.RoleAdmin, FullName: "Alice A"}
	if err := s.SaveUser("sid-1", in); err != nil {
		t.Fatalf("save user: %v", err)
	}
	out, err := s.User("sid-1")
	if err != nil {
		t.Fatalf("user: %v", err)
	}
	if out == nil || out.ID != 9 || out.Username != "alice" || !out.IsAdmin() {
		t.Fatalf("got %+v", out)
	}
}

func TestClearTokensKeepsRowButDropsEverything(t *testing.T) {
	s := openStore(t)
	_ = s.SetTokens("sid-1", "acc", "ref")
	_ = s.SaveUser("sid-1", &domain.User{ID: 1, Username: "alice"})

	if err := s.ClearTokens("sid-1"); err != nil {
		t.Fatalf("clear tokens: %v", err)
	}
	access, refresh, _ := s.Tokens("sid-1")
	if access != "" || refresh != "" {
		t.Fatalf("credentials survived: %q/%q", access, refresh)
	}
	u, _ := s.User("sid-1")
	if u != nil {
		t.Fatalf("stale user cache survived: %+v", u)
	}
}

func TestClearDeletesSession(t *testing.T) {
	s := openStore(t)
	_ = s.SetTokens("sid-1", "acc", "ref")
	if err := s.Clear("sid-1"); err != nil {
		t.Fatalf("clear: %v", err)
	}
	access, refresh, err := s.Tokens("sid-1")
	if err != nil || access != "" || refresh != "" {
		t.Fatalf("session survived logout: %q/%q, %v", access, refresh, err)
	}
}
