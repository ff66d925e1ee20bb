package crypto

import (
	"context"
	"fmt"

	"github.com/tink-crypto/tink-go/v2/tink"
)

// AEAD is an authenticated-encryption primitive bound to the
// encryption-context contract. It is safe for concurrent use.
type AEAD struct {
	name      string
	primitive tink.AEAD
}

// Name returns the key name the primitive was registered under.
func (a *AEAD) Name() string { return a.name }

// Encrypt encrypts plaintext, binding ec into the ciphertext's associated
// data. A nil or empty context produces a ciphertext decryptable with any
// nil or empty context.
func (a *AEAD) Encrypt(plaintext []byte, ec EncryptionContext) ([]byte, error) {
	aad := ec.encode()
	ciphertext, err := a.primitive.Encrypt(plaintext, aad)
	if err != nil {
		return nil, fmt.Errorf("crypto: aead %q encrypt: %w", a.name, err)
	}
	return writePacket(aad, ciphertext), nil
}

// Decrypt decrypts a ciphertext produced by Encrypt. Supplying a context
// other than the one used at encryption time fails with ErrContextMismatch;
// a matching context with an undecryptable payload fails with
// ErrDecryptionFailed. Ciphertexts from the legacy raw-associated-data call
// convention are decrypted with ec's encoding as associated data, so a
// legacy ciphertext created without associated data decrypts under a nil or
// empty context.
func (a *AEAD) Decrypt(data []byte, ec EncryptionContext) ([]byte, error) {
	aad, ciphertext, ok, err := parsePacket(data)
	if err != nil {
		return nil, err
	}
	if !ok {
		return a.DecryptWithAssociatedData(data, ec.encode())
	}
	if !ec.matches(aad) {
		contextMismatchCounter.Add(context.Background(), 1)
		return nil, ErrContextMismatch
	}

	plaintext, err := a.primitive.Decrypt(ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("%w: aead %q", ErrDecryptionFailed, a.name)
	}
	return plaintext, nil
}

// EncryptWithAssociatedData encrypts with caller-supplied raw associated
// data, the calling convention that predates encryption contexts. New code
// should use Encrypt.
func (a *AEAD) EncryptWithAssociatedData(plaintext, associatedData []byte) ([]byte, error) {
	ciphertext, err := a.primitive.Encrypt(plaintext, associatedData)
	if err != nil {
		return nil, fmt.Errorf("crypto: aead %q encrypt: %w", a.name, err)
	}
	return ciphertext, nil
}

// DecryptWithAssociatedData decrypts a legacy ciphertext with raw associated
// data.
func (a *AEAD) DecryptWithAssociatedData(data, associatedData []byte) ([]byte, error) {
	plaintext, err := a.primitive.Decrypt(data, associatedData)
	if err != nil {
		return nil, fmt.Errorf("%w: aead %q", ErrDecryptionFailed, a.name)
	}
	return plaintext, nil
}
