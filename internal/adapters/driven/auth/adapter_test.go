package auth

import (
	"errors"
	"testing"
	"time"

	"github.com/meridian-labs/scanwatch-core/internal/core/domain"
)

func TestAdapter_StaticToken(t *testing.T) {
	hash, err := HashToken("scan-secret")
	if err != nil {
		t.Fatalf("HashToken failed: %v", err)
	}
	adapter := NewAdapter("", hash)

	subject, err := adapter.VerifyToken("scan-secret")
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if subject != StaticSubject {
		t.Errorf("expected subject %q, got %q", StaticSubject, subject)
	}

	if _, err := adapter.VerifyToken("wrong-secret"); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAdapter_JWT(t *testing.T) {
	adapter := NewAdapter("jwt-secret", "")

	token, err := adapter.GenerateToken("reader-1", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	subject, err := adapter.VerifyToken(token)
	if err != nil {
		t.Fatalf("VerifyToken failed: %v", err)
	}
	if subject != "reader-1" {
		t.Errorf("expected subject reader-1, got %q", subject)
	}
}

func TestAdapter_JWT_Expired(t *testing.T) {
	adapter := NewAdapter("jwt-secret", "")

	token, err := adapter.GenerateToken("reader-1", -time.Minute)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := adapter.VerifyToken(token); !errors.Is(err, domain.ErrTokenExpired) {
		t.Errorf("expected ErrTokenExpired, got %v", err)
	}
}

func TestAdapter_JWT_WrongSecret(t *testing.T) {
	issuer := NewAdapter("issuer-secret", "")
	verifier := NewAdapter("other-secret", "")

	token, err := issuer.GenerateToken("reader-1", time.Hour)
	if err != nil {
		t.Fatalf("GenerateToken failed: %v", err)
	}

	if _, err := verifier.VerifyToken(token); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}

func TestAdapter_EmptyToken(t *testing.T) {
	adapter := NewAdapter("jwt-secret", "")

	if _, err := adapter.VerifyToken(""); !errors.Is(err, domain.ErrTokenInvalid) {
		t.Errorf("expected ErrTokenInvalid, got %v", err)
	}
}
