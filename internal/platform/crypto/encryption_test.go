package crypto

import (
	"bytes"
	"errors"
	"testing"
)

func TestEncryptDecryptRoundTrip(t *testing.T) {
	svc := New("correct horse battery staple")
	plain := []byte(`[{"kind":"agent","id":1}]`)

	sealed, err := svc.Encrypt(plain)
	if err != nil {
		t.Fatalf("encrypt error: %v", err)
	}
	if !IsSealed(sealed) {
		t.Fatal("expected sealed output")
	}
	if bytes.Contains(sealed, []byte("agent")) {
		t.Fatal("plaintext leaked into sealed output")
	}

	opened, err := svc.Decrypt(sealed)
	if err != nil {
		t.Fatalf("decrypt error: %v", err)
	}
	if !bytes.Equal(opened, plain) {
		t.Fatalf("expected %q, got %q", plain, opened)
	}
}

func TestDecryptWithWrongKeyFails(t *testing.T) {
	sealed, err := New("one").Encrypt([]byte("payload"))
	if err != nil {
		t.Fatalf("encrypt error: %v", err)
	}
	if _, err := New("two").Decrypt(sealed); err == nil {
		t.Fatal("expected authentication failure")
	}
}

func TestUnconfiguredServicePassesPlainData(t *testing.T) {
	svc := New("")
	if svc.Configured() {
		t.Fatal("expected unconfigured service")
	}
	out, err := svc.Encrypt([]byte("plain"))
	if err != nil || string(out) != "plain" {
		t.Fatalf("expected passthrough, got %q, %v", out, err)
	}
	out, err = svc.Decrypt([]byte("plain"))
	if err != nil || string(out) != "plain" {
		t.Fatalf("expected passthrough, got %q, %v", out, err)
	}
}

func TestSealedDataNeedsKey(t *testing.T) {
	sealed, err := New("secret").Encrypt([]byte("payload"))
	if err != nil {
		t.Fatalf("encrypt error: %v", err)
	}
	if _, err := New("").Decrypt(sealed); !errors.Is(err, ErrKeyRequired) {
		t.Fatalf("expected ErrKeyRequired, got %v", err)
	}
}

func TestDecryptTruncated(t *testing.T) {
	if _, err := New("secret").Decrypt(append([]byte{}, magic...)); !errors.Is(err, ErrCorrupted) {
		t.Fatalf("expected ErrCorrupted, got %v", err)
	}
}
