package uploadauth

import (
	"crypto/hmac"
	"crypto/sha1"
	"encoding/hex"
	"strconv"
	"testing"
	"time"
)

func TestSignProducesVerifiableSignature(t *testing.T) {
	s := NewSigner("private_test_key", "public_test_key", 10*time.Minute)
	fixed := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return fixed }

	p, err := s.Sign()
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	if p.PublicKey != "public_test_key" {
		t.Errorf("publicKey = %q", p.PublicKey)
	}
	if want := fixed.Add(10 * time.Minute).Unix(); p.Expire != want {
		t.Errorf("expire = %d, want %d", p.Expire, want)
	}
	if p.Token == "" {
		t.Error("token is empty")
	}

	// recompute on the verifier side
	mac := hmac.New(sha1.New, []byte("private_test_key"))
	mac.Write([]byte(p.Token + strconv.FormatInt(p.Expire, 10)))
	if want := hex.EncodeToString(mac.Sum(nil)); p.Signature != want {
		t.Errorf("signature = %q, want %q", p.Signature, want)
	}
}

func TestSignTokensAreUnique(t *testing.T) {
	s := NewSigner("private_test_key", "public_test_key", time.Minute)
	a, _ := s.Sign()
	b, _ := s.Sign()
	if a.Token == b.Token {
		t.Error("two signed requests share a token")
	}
}

func TestSignWithoutKeysFails(t *testing.T) {
	s := NewSigner("", "", time.Minute)
	if _, err := s.Sign(); err == nil {
		t.Fatal("expected error with empty keys")
	}
}
