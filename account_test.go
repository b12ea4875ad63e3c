package tally

import "testing"

func TestHashPassword(t *testing.T) {
	h := HashPassword("pw123")

	if len(h) != 64 {
		t.Errorf("digest length = %d, want 64 hex characters", len(h))
	}
	if h != HashPassword("pw123") {
		t.Error("digest must be deterministic")
	}
	if h == HashPassword("pw124") {
		t.Error("different passwords must not collide")
	}
	for _, r := range h {
		if (r < '0' || r > '9') && (r < 'a' || r > 'f') {
			t.Fatalf("digest %q contains non-hex character %q", h, r)
		}
	}
}

func TestAccount_VerifyPassword(t *testing.T) {
	a := Account{Name: "alice", PasswordHash: HashPassword("pw123")}

	if !a.VerifyPassword("pw123") {
		t.Error("correct password rejected")
	}
	if a.VerifyPassword("wrong") {
		t.Error("wrong password accepted")
	}
	if a.VerifyPassword("") {
		t.Error("empty password accepted")
	}
}
