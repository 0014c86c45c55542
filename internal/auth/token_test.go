package auth

import (
	"errors"
	"testing"
)

func TestParseAuthHeader(t *testing.T) {
	cases := []struct {
		header string
		token  string
		ok     bool
	}{
		{"Token svc-reports-123", "svc-reports-123", true},
		{"token svc-reports-123", "svc-reports-123", true},
		{"TOKEN svc-reports-123", "svc-reports-123", true},
		{"Token  svc-reports-123", "svc-reports-123", true},
		{"Bearer svc-reports-123", "", false},
		{"Token", "", false},
		{"Token a b", "", false},
		{"", "", false},
		{"   ", "", false},
	}
	for _, tc := range cases {
		token, ok := ParseAuthHeader(tc.header)
		if ok != tc.ok || token != tc.token {
			t.Errorf("ParseAuthHeader(%q) = (%q, %v), want (%q, %v)",
				tc.header, token, ok, tc.token, tc.ok)
		}
	}
}

func TestAuthenticate(t *testing.T) {
	reg := NewRegistry(map[string]string{"svc-reports-123": "reports"})

	token, err := reg.Authenticate("Token svc-reports-123")
	if err != nil {
		t.Fatalf("valid token rejected: %v", err)
	}
	if token != "svc-reports-123" {
		t.Fatalf("expected token back, got %q", token)
	}
	if svc := reg.ServiceFor(token); svc != "reports" {
		t.Fatalf("expected bound service reports, got %q", svc)
	}

	if _, err := reg.Authenticate("Token svc-unknown-000"); !errors.Is(err, ErrAuthFailure) {
		t.Fatalf("unknown token: expected ErrAuthFailure, got %v", err)
	}
	if _, err := reg.Authenticate(""); !errors.Is(err, ErrAuthFailure) {
		t.Fatalf("missing header: expected ErrAuthFailure, got %v", err)
	}
	if _, err := reg.Authenticate("Bearer svc-reports-123"); !errors.Is(err, ErrAuthFailure) {
		t.Fatalf("wrong scheme: expected ErrAuthFailure, got %v", err)
	}
}

func TestRegistryCopiesInput(t *testing.T) {
	src := map[string]string{"tok": "svc"}
	reg := NewRegistry(src)
	src["tok"] = "other"
	if got := reg.ServiceFor("tok"); got != "svc" {
		t.Fatalf("registry shares caller map: got %q", got)
	}
}
