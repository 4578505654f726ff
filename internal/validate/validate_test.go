package validate_test

import (
	"testing"

	"shopfront/internal/validate"
)

func TestUsername(t *testing.T) {
	cases := []struct {
		in string
		ok bool
	}{
		{"alice", true},
		{"a.b-c_9", true},
		{"ab", false},
		{"has space", false},
		{"<script>", false},
	}
	for _, c := range cases {
		if _, ok := validate.Username(c.in); ok != c.ok {
			t.Errorf("Username(%q) ok = %v, want %v", c.in, ok, c.ok)
		}
	}
}

func TestEmail(t *testing.T) {
	if _, ok := validate.Email("alice@example.com"); !ok {
		t.Error("valid address rejected")
	}
	for _, bad := range []string{"", "not-an-email", "a@b", "alice@example.com<script>"} {
		if _, ok := validate.Email(bad); ok {
			t.Errorf("Email(%q) accepted", bad)
		}
	}
}

func TestID(t *testing.T) {
	if n, ok := validate.ID(" 42 "); !ok || n != 42 {
		t.Errorf("ID(\" 42 \") = %d, %v", n, ok)
	}
	for _, bad := range []string{"", "0", "-3", "abc", "1.5"} {
		if _, ok := validate.ID(bad); ok {
			t.Errorf("ID(%q) accepted", bad)
		}
	}
}

func TestRatingWindow(t *testing.T) {
	for _, good := range []string{"1", "3", "5"} {
		if _, ok := validate.Rating(good); !ok {
			t.Errorf("Rating(%q) rejected", good)
		}
	}
	for _, bad := range []string{"0", "6", "", "five"} {
		if _, ok := validate.Rating(bad); ok {
			t.Errorf("Rating(%q) accepted", bad)
		}
	}
}

func TestRoleNormalizes(t *testing.T) {
	if validate.Role(" Admin ") != "admin" {
		t.Error("admin toggle not recognized")
	}
	for _, in := range []string{"", "user", "superuser", "ADMINISTRATOR"} {
		if validate.Role(in) != "user" {
			t.Errorf("Role(%q) != user", in)
		}
	}
}

func TestQRejectsMarkup(t *testing.T) {
	if _, ok := validate.Q("zelda 64"); !ok {
		t.Error("plain keyword rejected")
	}
	if _, ok := validate.Q("<img src=x>"); ok {
		t.Error("markup accepted")
	}
}
