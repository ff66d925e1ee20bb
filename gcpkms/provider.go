// Package gcpkms provides a crypto.KMSClient backed by Google Cloud KMS.
//
// Master-key encrypt and decrypt calls are forwarded to the CryptoKeys
// Encrypt and Decrypt RPCs, with associated data passed through as
// additional authenticated data.
//
// Usage:
//
//	kmsClient, err := kms.NewKeyManagementClient(ctx)
//	client, err := gcpkms.New(kmsClient, "projects/p/locations/l/keyRings/r/cryptoKeys/k")
//	loader, err := crypto.NewLoader(client)
package gcpkms

import (
	"context"
	"fmt"

	kmspb "cloud.google.com/go/kms/apiv1/kmspb"

	mcrypto "github.com/Sethuraman/misk/crypto"
)

// Client is the subset of the GCP Cloud KMS API used by this package.
type Client interface {
	Encrypt(ctx context.Context, req *kmspb.EncryptRequest) (*kmspb.EncryptResponse, error)
	Decrypt(ctx context.Context, req *kmspb.DecryptRequest) (*kmspb.DecryptResponse, error)
}

// KMS adapts a Cloud KMS client to the crypto.KMSClient capability for a
// single crypto key resource.
type KMS struct {
	client       Client
	resourceName string // projects/*/locations/*/keyRings/*/cryptoKeys/*
}

var _ mcrypto.KMSClient = (*KMS)(nil)

// New creates a KMS bound to the given crypto key resource name.
func New(client Client, resourceName string) (*KMS, error) {
	if client == nil {
		return nil, fmt.Errorf("gcpkms: client is nil")
	}
	if resourceName == "" {
		return nil, fmt.Errorf("gcpkms: resource name is required")
	}
	return &KMS{client: client, resourceName: resourceName}, nil
}

// Encrypt encrypts plaintext under the master key.
func (k *KMS) Encrypt(ctx context.Context, plaintext, associatedData []byte) ([]byte, error) {
	resp, err := k.client.Encrypt(ctx, &kmspb.EncryptRequest{
		Name:                        k.resourceName,
		Plaintext:                   plaintext,
		AdditionalAuthenticatedData: associatedData,
	})
	if err != nil {
		return nil, fmt.Errorf("gcpkms: encrypt with %q: %w", k.resourceName, err)
	}
	return resp.Ciphertext, nil
}

// Decrypt decrypts ciphertext produced under the master key with the same
// associated data.
func (k *KMS) Decrypt(ctx context.Context, ciphertext, associatedData []byte) ([]byte, error) {
	resp, err := k.client.Decrypt(ctx, &kmspb.DecryptRequest{
		Name:                        k.resourceName,
		Ciphertext:                  ciphertext,
		AdditionalAuthenticatedData: associatedData,
	})
	if err != nil {
		return nil, fmt.Errorf("gcpkms: decrypt with %q: %w", k.resourceName, err)
	}
	return resp.Plaintext, nil
}
