// Package vault provides a crypto.KMSClient backed by the HashiCorp Vault
// Transit secrets engine.
//
// Master-key encrypt and decrypt are forwarded to the Transit encrypt and
// decrypt endpoints of a named Transit key. The Client interface carries no
// Vault SDK dependency; wrap whichever Vault client library is in use.
//
// Usage:
//
//	client, err := vault.New(transitClient, "master-key")
//	loader, err := crypto.NewLoader(client)
package vault

import (
	"context"
	"fmt"

	mcrypto "github.com/Sethuraman/misk/crypto"
)

// Client abstracts the Vault Transit encrypt and decrypt operations.
// Ciphertexts are in Vault's string format (e.g. "vault:v1:base64data").
// The context parameter maps to Transit's key-derivation context and may be
// nil.
type Client interface {
	TransitEncrypt(ctx context.Context, keyName string, plaintext, context []byte) (string, error)
	TransitDecrypt(ctx context.Context, keyName string, ciphertext string, context []byte) ([]byte, error)
}

// KMS adapts a Vault Transit client to the crypto.KMSClient capability for a
// single Transit key.
type KMS struct {
	client  Client
	keyName string
}

var _ mcrypto.KMSClient = (*KMS)(nil)

// New creates a KMS bound to the named Transit key.
func New(client Client, keyName string) (*KMS, error) {
	if client == nil {
		return nil, fmt.Errorf("vault: client is nil")
	}
	if keyName == "" {
		return nil, fmt.Errorf("vault: key name is required")
	}
	return &KMS{client: client, keyName: keyName}, nil
}

// Encrypt encrypts plaintext with the Transit key. The returned bytes are
// Vault's ciphertext string.
func (k *KMS) Encrypt(ctx context.Context, plaintext, associatedData []byte) ([]byte, error) {
	ct, err := k.client.TransitEncrypt(ctx, k.keyName, plaintext, associatedData)
	if err != nil {
		return nil, fmt.Errorf("vault: encrypt with transit key %q: %w", k.keyName, err)
	}
	return []byte(ct), nil
}

// Decrypt decrypts a Vault ciphertext string produced by Encrypt.
func (k *KMS) Decrypt(ctx context.Context, ciphertext, associatedData []byte) ([]byte, error) {
	pt, err := k.client.TransitDecrypt(ctx, k.keyName, string(ciphertext), associatedData)
	if err != nil {
		return nil, fmt.Errorf("vault: decrypt with transit key %q: %w", k.keyName, err)
	}
	return pt, nil
}
