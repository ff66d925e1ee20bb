package crypto

import (
	"context"
	"fmt"

	"github.com/tink-crypto/tink-go/v2/tink"
)

// DeterministicAEAD is a deterministic AEAD primitive (AES-SIV) bound to the
// encryption-context contract. Equal (plaintext, context) pairs always
// produce equal ciphertext; callers relying on this for equality-searchable
// storage are trading leakage of plaintext equality for searchability, and
// should do so deliberately. It is safe for concurrent use.
type DeterministicAEAD struct {
	name      string
	primitive tink.DeterministicAEAD
}

// Name returns the key name the primitive was registered under.
func (d *DeterministicAEAD) Name() string { return d.name }

// EncryptDeterministically encrypts plaintext with ec bound into the
// associated data. The output is a pure function of the key, plaintext and
// context.
func (d *DeterministicAEAD) EncryptDeterministically(plaintext []byte, ec EncryptionContext) ([]byte, error) {
	aad := ec.encode()
	ciphertext, err := d.primitive.EncryptDeterministically(plaintext, aad)
	if err != nil {
		return nil, fmt.Errorf("crypto: daead %q encrypt: %w", d.name, err)
	}
	return writePacket(aad, ciphertext), nil
}

// DecryptDeterministically mirrors AEAD.Decrypt, including the
// ErrContextMismatch semantics and legacy raw-associated-data fallback.
func (d *DeterministicAEAD) DecryptDeterministically(data []byte, ec EncryptionContext) ([]byte, error) {
	aad, ciphertext, ok, err := parsePacket(data)
	if err != nil {
		return nil, err
	}
	if !ok {
		return d.DecryptDeterministicallyWithAssociatedData(data, ec.encode())
	}
	if !ec.matches(aad) {
		contextMismatchCounter.Add(context.Background(), 1)
		return nil, ErrContextMismatch
	}

	plaintext, err := d.primitive.DecryptDeterministically(ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("%w: daead %q", ErrDecryptionFailed, d.name)
	}
	return plaintext, nil
}

// EncryptDeterministicallyWithAssociatedData encrypts with caller-supplied
// raw associated data, the calling convention that predates encryption
// contexts.
func (d *DeterministicAEAD) EncryptDeterministicallyWithAssociatedData(plaintext, associatedData []byte) ([]byte, error) {
	ciphertext, err := d.primitive.EncryptDeterministically(plaintext, associatedData)
	if err != nil {
		return nil, fmt.Errorf("crypto: daead %q encrypt: %w", d.name, err)
	}
	return ciphertext, nil
}

// DecryptDeterministicallyWithAssociatedData decrypts a legacy ciphertext
// with raw associated data.
func (d *DeterministicAEAD) DecryptDeterministicallyWithAssociatedData(data, associatedData []byte) ([]byte, error) {
	plaintext, err := d.primitive.DecryptDeterministically(data, associatedData)
	if err != nil {
		return nil, fmt.Errorf("%w: daead %q", ErrDecryptionFailed, d.name)
	}
	return plaintext, nil
}
