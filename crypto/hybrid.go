package crypto

import (
	"context"
	"fmt"

	"github.com/tink-crypto/tink-go/v2/tink"
)

// HybridEncrypt encrypts with a public key, binding the encryption context
// as the hybrid context info. It requires no private material, so it can be
// distributed independently of HybridDecrypt. Safe for concurrent use.
type HybridEncrypt struct {
	name      string
	primitive tink.HybridEncrypt
}

// Name returns the key name the primitive was registered under.
func (h *HybridEncrypt) Name() string { return h.name }

// Encrypt encrypts plaintext for the key's private-side holder.
func (h *HybridEncrypt) Encrypt(plaintext []byte, ec EncryptionContext) ([]byte, error) {
	aad := ec.encode()
	ciphertext, err := h.primitive.Encrypt(plaintext, aad)
	if err != nil {
		return nil, fmt.Errorf("crypto: hybrid %q encrypt: %w", h.name, err)
	}
	return writePacket(aad, ciphertext), nil
}

// EncryptWithContextInfo encrypts with caller-supplied raw context info, the
// calling convention that predates encryption contexts.
func (h *HybridEncrypt) EncryptWithContextInfo(plaintext, contextInfo []byte) ([]byte, error) {
	ciphertext, err := h.primitive.Encrypt(plaintext, contextInfo)
	if err != nil {
		return nil, fmt.Errorf("crypto: hybrid %q encrypt: %w", h.name, err)
	}
	return ciphertext, nil
}

// HybridDecrypt holds the private-key side of a hybrid key pair. Safe for
// concurrent use.
type HybridDecrypt struct {
	name      string
	primitive tink.HybridDecrypt
}

// Name returns the key name the primitive was registered under.
func (h *HybridDecrypt) Name() string { return h.name }

// Decrypt decrypts a ciphertext produced by HybridEncrypt.Encrypt, with the
// same mismatch semantics as AEAD.Decrypt.
func (h *HybridDecrypt) Decrypt(data []byte, ec EncryptionContext) ([]byte, error) {
	aad, ciphertext, ok, err := parsePacket(data)
	if err != nil {
		return nil, err
	}
	if !ok {
		return h.DecryptWithContextInfo(data, ec.encode())
	}
	if !ec.matches(aad) {
		contextMismatchCounter.Add(context.Background(), 1)
		return nil, ErrContextMismatch
	}

	plaintext, err := h.primitive.Decrypt(ciphertext, aad)
	if err != nil {
		return nil, fmt.Errorf("%w: hybrid %q", ErrDecryptionFailed, h.name)
	}
	return plaintext, nil
}

// DecryptWithContextInfo decrypts a legacy ciphertext with raw context info.
func (h *HybridDecrypt) DecryptWithContextInfo(data, contextInfo []byte) ([]byte, error) {
	plaintext, err := h.primitive.Decrypt(data, contextInfo)
	if err != nil {
		return nil, fmt.Errorf("%w: hybrid %q", ErrDecryptionFailed, h.name)
	}
	return plaintext, nil
}
