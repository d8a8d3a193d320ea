package utils

import (
	"errors"
	"testing"
	"time"
)

func TestRememberTokenRoundTrip(t *testing.T) {
	tok, err := GenerateRememberToken("secret", 42, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	uid, err := ParseRememberToken("secret", tok)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if uid != 42 {
		t.Fatalf("got user %d, want 42", uid)
	}
}

func TestRememberTokenRejected(t *testing.T) {
	tok, err := GenerateRememberToken("secret", 42, time.Hour)
	if err != nil {
		t.Fatalf("generate: %v", err)
	}

	if _, err := ParseRememberToken("other-secret", tok); !errors.Is(err, ErrInvalidRememberToken) {
		t.Fatalf("expected ErrInvalidRememberToken for wrong secret, got %v", err)
	}
	if _, err := ParseRememberToken("secret", "not-a-token"); !errors.Is(err, ErrInvalidRememberToken) {
		t.Fatalf("expected ErrInvalidRememberToken for garbage, got %v", err)
	}

	expired, err := GenerateRememberToken("secret", 42, -time.Minute)
	if err != nil {
		t.Fatalf("generate expired: %v", err)
	}
	if _, err := ParseRememberToken("secret", expired); !errors.Is(err, ErrInvalidRememberToken) {
		t.Fatalf("expected ErrInvalidRememberToken for expired token, got %v", err)
	}
}
