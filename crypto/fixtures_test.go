package crypto

import (
	"testing"

	"github.com/tink-crypto/tink-go/v2/aead"
	"github.com/tink-crypto/tink-go/v2/daead"
	"github.com/tink-crypto/tink-go/v2/hybrid"
	"github.com/tink-crypto/tink-go/v2/keyset"
	"github.com/tink-crypto/tink-go/v2/mac"
	"github.com/tink-crypto/tink-go/v2/signature"
)

func testAEAD(t testing.TB) *AEAD {
	t.Helper()
	handle, err := keyset.NewHandle(aead.AES256GCMKeyTemplate())
	if err != nil {
		t.Fatalf("generating AEAD keyset: %v", err)
	}
	primitive, err := aead.New(handle)
	if err != nil {
		t.Fatalf("building AEAD: %v", err)
	}
	return &AEAD{name: "test-aead", primitive: primitive}
}

func testDAEAD(t testing.TB) *DeterministicAEAD {
	t.Helper()
	handle, err := keyset.NewHandle(daead.AESSIVKeyTemplate())
	if err != nil {
		t.Fatalf("generating DAEAD keyset: %v", err)
	}
	primitive, err := daead.New(handle)
	if err != nil {
		t.Fatalf("building DAEAD: %v", err)
	}
	return &DeterministicAEAD{name: "test-daead", primitive: primitive}
}

func testMAC(t testing.TB) *MAC {
	t.Helper()
	handle, err := keyset.NewHandle(mac.HMACSHA256Tag256KeyTemplate())
	if err != nil {
		t.Fatalf("generating MAC keyset: %v", err)
	}
	primitive, err := mac.New(handle)
	if err != nil {
		t.Fatalf("building MAC: %v", err)
	}
	return &MAC{name: "test-mac", primitive: primitive}
}

func testSignerVerifier(t testing.TB) (*Signer, *Verifier) {
	t.Helper()
	handle, err := keyset.NewHandle(signature.ED25519KeyTemplate())
	if err != nil {
		t.Fatalf("generating signing keyset: %v", err)
	}
	signer, err := signature.NewSigner(handle)
	if err != nil {
		t.Fatalf("building signer: %v", err)
	}
	public, err := handle.Public()
	if err != nil {
		t.Fatalf("extracting public keyset: %v", err)
	}
	verifier, err := signature.NewVerifier(public)
	if err != nil {
		t.Fatalf("building verifier: %v", err)
	}
	return &Signer{name: "test-signer", primitive: signer},
		&Verifier{name: "test-signer", primitive: verifier}
}

func testHybrid(t testing.TB) (*HybridEncrypt, *HybridDecrypt) {
	t.Helper()
	handle, err := keyset.NewHandle(hybrid.ECIESHKDFAES128GCMKeyTemplate())
	if err != nil {
		t.Fatalf("generating hybrid keyset: %v", err)
	}
	decrypt, err := hybrid.NewHybridDecrypt(handle)
	if err != nil {
		t.Fatalf("building hybrid decrypt: %v", err)
	}
	public, err := handle.Public()
	if err != nil {
		t.Fatalf("extracting public keyset: %v", err)
	}
	encrypt, err := hybrid.NewHybridEncrypt(public)
	if err != nil {
		t.Fatalf("building hybrid encrypt: %v", err)
	}
	return &HybridEncrypt{name: "test-hybrid", primitive: encrypt},
		&HybridDecrypt{name: "test-hybrid", primitive: decrypt}
}
