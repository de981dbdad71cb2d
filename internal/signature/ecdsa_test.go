package signature

import (
	"errors"
	"testing"

	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"

	"github.com/hazbase/kit/internal/domain"
)

func TestSignRecoverRoundTrip(t *testing.T) {
	key, err := crypto.GenerateKey()
	if err != nil {
		t.Fatalf("generating key: %v", err)
	}
	signer := crypto.PubkeyToAddress(key.PublicKey)
	digest := crypto.Keccak256Hash([]byte("round-trip digest"))

	sig, err := Sign(digest, key)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}
	if len(sig) != 65 {
		t.Fatalf("signature length = %d, want 65", len(sig))
	}

	authority := NewECDSAAuthority()
	recovered, err := authority.Recover(digest, sig)
	if err != nil {
		t.Fatalf("Recover: %v", err)
	}
	if recovered != signer {
		t.Fatalf("recovered %s, want %s", recovered.Hex(), signer.Hex())
	}
	if err := authority.Verify(digest, sig, signer); err != nil {
		t.Fatalf("Verify: %v", err)
	}
}

func TestVerifySignerMismatch(t *testing.T) {
	key, _ := crypto.GenerateKey()
	digest := crypto.Keccak256Hash([]byte("mismatch digest"))
	sig, err := Sign(digest, key)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	authority := NewECDSAAuthority()
	other := common.HexToAddress("0x9999999999999999999999999999999999999999")
	err = authority.Verify(digest, sig, other)
	if !errors.Is(err, domain.ErrSignerMismatch) {
		t.Fatalf("Verify with wrong signer = %v, want ErrSignerMismatch", err)
	}
}

func TestRecoverOnTamperedDigest(t *testing.T) {
	key, _ := crypto.GenerateKey()
	signer := crypto.PubkeyToAddress(key.PublicKey)
	digest := crypto.Keccak256Hash([]byte("original"))
	sig, err := Sign(digest, key)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	authority := NewECDSAAuthority()
	tampered := crypto.Keccak256Hash([]byte("tampered"))
	err = authority.Verify(tampered, sig, signer)
	if err == nil {
		t.Fatal("Verify accepted a signature over a different digest")
	}
}

func TestRecoverRejectsMalformedSignatures(t *testing.T) {
	authority := NewECDSAAuthority()
	digest := crypto.Keccak256Hash([]byte("some digest"))

	cases := map[string][]byte{
		"empty":     nil,
		"short":     make([]byte, 64),
		"long":      make([]byte, 66),
		"bad v=5":   append(make([]byte, 64), 5),
		"bad v=100": append(make([]byte, 64), 100),
	}
	for name, sig := range cases {
		if _, err := authority.Recover(digest, sig); !errors.Is(err, domain.ErrBadSignature) {
			t.Errorf("%s: Recover = %v, want ErrBadSignature", name, err)
		}
	}
}

// Wallets commonly emit V as 27/28 rather than 0/1; both forms must recover
// the same signer.
func TestRecoverAcceptsLegacyV(t *testing.T) {
	key, _ := crypto.GenerateKey()
	signer := crypto.PubkeyToAddress(key.PublicKey)
	digest := crypto.Keccak256Hash([]byte("legacy v digest"))
	sig, err := Sign(digest, key)
	if err != nil {
		t.Fatalf("Sign: %v", err)
	}

	legacy := append([]byte(nil), sig...)
	legacy[64] += 27

	authority := NewECDSAAuthority()
	recovered, err := authority.Recover(digest, legacy)
	if err != nil {
		t.Fatalf("Recover with legacy V: %v", err)
	}
	if recovered != signer {
		t.Fatalf("legacy V recovered %s, want %s", recovered.Hex(), signer.Hex())
	}
	// The caller's slice must not be normalized in place.
	if legacy[64] != sig[64]+27 {
		t.Fatal("Recover mutated the caller's signature slice")
	}
}
