package services

import "testing"

func TestSessionToken(t *testing.T) {
	h := NewSessionHasher("salt")
	a := h.Token("192.0.2.1")
	if len(a) != 16 {
		t.Fatalf("Token() = %q, want 16 hex chars", a)
	}
	if h.Token(" 192.0.2.1 ") != a {
		t.Error("token not stable for the same address")
	}
	if h.Token("192.0.2.2") == a {
		t.Error("different addresses share a token")
	}
	if NewSessionHasher("other").Token("192.0.2.1") == a {
		t.Error("salt does not change the token")
	}
	if NewSessionHasher("").Token("192.0.2.1") == "" {
		t.Error("unsalted hasher returned empty token")
	}
	if h.Token("") != "" {
		t.Error("empty address produced a token")
	}
}
