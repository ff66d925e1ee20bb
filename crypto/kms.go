package crypto

import "context"

// KMSClient is the capability the core requires from a key management
// service: encrypt and decrypt under a master key identified at client
// construction time. The core never sees the master key itself; it is only
// used to unwrap key-encryption keys during Load.
//
// Implementations are provided by the awskms, gcpkms, azurekv and vault
// packages, and by cryptotest for tests and local development.
type KMSClient interface {
	// Encrypt encrypts plaintext under the master key, binding
	// associatedData when the backing service supports it.
	Encrypt(ctx context.Context, plaintext, associatedData []byte) ([]byte, error)

	// Decrypt reverses Encrypt. The same associatedData must be supplied.
	Decrypt(ctx context.Context, ciphertext, associatedData []byte) ([]byte, error)
}

// kmsAEAD exposes a KMSClient as a tink.AEAD so it can serve as the remote
// KEK of the envelope AEAD. The context is captured at load time; the core
// performs no KMS calls after Load returns.
type kmsAEAD struct {
	ctx    context.Context
	client KMSClient
}

func (k kmsAEAD) Encrypt(plaintext, associatedData []byte) ([]byte, error) {
	return k.client.Encrypt(k.ctx, plaintext, associatedData)
}

func (k kmsAEAD) Decrypt(ciphertext, associatedData []byte) ([]byte, error) {
	return k.client.Decrypt(k.ctx, ciphertext, associatedData)
}
