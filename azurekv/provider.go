// Package azurekv provides a crypto.KMSClient backed by Azure Key Vault.
//
// Master-key encrypt and decrypt are implemented with the WrapKey and
// UnwrapKey operations, RSA-OAEP-256 by default. Key Vault cannot bind
// associated data on RSA wrap operations, so non-empty associated data is
// rejected; the envelope machinery in the crypto package wraps key material
// without associated data, which is the only call pattern this client sees
// during a load.
//
// Usage:
//
//	cred, err := azidentity.NewDefaultAzureCredential(nil)
//	kvClient, err := azkeys.NewClient("https://my-vault.vault.azure.net/", cred, nil)
//
//	client, err := azurekv.New(kvClient, "master-key", "key-version")
//	loader, err := crypto.NewLoader(client)
package azurekv

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azkeys"

	mcrypto "github.com/Sethuraman/misk/crypto"
)

// Client is the subset of the Azure Key Vault API used by this package.
type Client interface {
	WrapKey(ctx context.Context, name string, version string, parameters azkeys.KeyOperationParameters, options *azkeys.WrapKeyOptions) (azkeys.WrapKeyResponse, error)
	UnwrapKey(ctx context.Context, name string, version string, parameters azkeys.KeyOperationParameters, options *azkeys.UnwrapKeyOptions) (azkeys.UnwrapKeyResponse, error)
}

// KMS adapts a Key Vault client to the crypto.KMSClient capability for a
// single vault key.
type KMS struct {
	client     Client
	keyName    string
	keyVersion string
	algorithm  azkeys.EncryptionAlgorithm
}

var _ mcrypto.KMSClient = (*KMS)(nil)

// Option configures a KMS.
type Option func(*KMS)

// WithAlgorithm overrides the wrap algorithm. Defaults to RSA-OAEP-256.
func WithAlgorithm(alg azkeys.EncryptionAlgorithm) Option {
	return func(k *KMS) { k.algorithm = alg }
}

// New creates a KMS bound to the named vault key and version.
func New(client Client, keyName, keyVersion string, opts ...Option) (*KMS, error) {
	if client == nil {
		return nil, fmt.Errorf("azurekv: client is nil")
	}
	if keyName == "" {
		return nil, fmt.Errorf("azurekv: key name is required")
	}
	k := &KMS{
		client:     client,
		keyName:    keyName,
		keyVersion: keyVersion,
		algorithm:  azkeys.EncryptionAlgorithmRSAOAEP256,
	}
	for _, opt := range opts {
		opt(k)
	}
	return k, nil
}

// Encrypt wraps plaintext with the vault key.
func (k *KMS) Encrypt(ctx context.Context, plaintext, associatedData []byte) ([]byte, error) {
	if len(associatedData) > 0 {
		return nil, fmt.Errorf("azurekv: associated data is not supported by Key Vault wrap operations")
	}
	resp, err := k.client.WrapKey(ctx, k.keyName, k.keyVersion, azkeys.KeyOperationParameters{
		Algorithm: &k.algorithm,
		Value:     plaintext,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("azurekv: wrap with key %q: %w", k.keyName, err)
	}
	return resp.Result, nil
}

// Decrypt unwraps ciphertext with the vault key.
func (k *KMS) Decrypt(ctx context.Context, ciphertext, associatedData []byte) ([]byte, error) {
	if len(associatedData) > 0 {
		return nil, fmt.Errorf("azurekv: associated data is not supported by Key Vault wrap operations")
	}
	resp, err := k.client.UnwrapKey(ctx, k.keyName, k.keyVersion, azkeys.KeyOperationParameters{
		Algorithm: &k.algorithm,
		Value:     ciphertext,
	}, nil)
	if err != nil {
		return nil, fmt.Errorf("azurekv: unwrap with key %q: %w", k.keyName, err)
	}
	return resp.Result, nil
}
