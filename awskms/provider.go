// Package awskms provides a crypto.KMSClient backed by AWS KMS.
//
// Master-key encrypt and decrypt calls are forwarded to the KMS Encrypt and
// Decrypt APIs. Associated data is bound through the AWS encryption context,
// hex-encoded under a single well-known key, so ciphertexts are portable
// across any client using the same convention.
//
// Usage:
//
//	cfg, err := awsconfig.LoadDefaultConfig(ctx)
//	kmsClient := kms.NewFromConfig(cfg)
//
//	client, err := awskms.New(kmsClient, "arn:aws:kms:us-east-1:123456789012:key/abc")
//	loader, err := crypto.NewLoader(client)
package awskms

import (
	"context"
	"encoding/hex"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/kms"

	mcrypto "github.com/Sethuraman/misk/crypto"
)

// contextKey is the AWS encryption-context key carrying hex-encoded
// associated data.
const contextKey = "additionalData"

// Client is the subset of the AWS KMS API used by this package.
type Client interface {
	Encrypt(ctx context.Context, params *kms.EncryptInput, optFns ...func(*kms.Options)) (*kms.EncryptOutput, error)
	Decrypt(ctx context.Context, params *kms.DecryptInput, optFns ...func(*kms.Options)) (*kms.DecryptOutput, error)
}

// KMS adapts an AWS KMS client to the crypto.KMSClient capability for a
// single master key.
type KMS struct {
	client Client
	keyID  string
}

var _ mcrypto.KMSClient = (*KMS)(nil)

// New creates a KMS bound to the given key ARN or alias.
func New(client Client, keyID string) (*KMS, error) {
	if client == nil {
		return nil, fmt.Errorf("awskms: client is nil")
	}
	if keyID == "" {
		return nil, fmt.Errorf("awskms: key ID is required")
	}
	return &KMS{client: client, keyID: keyID}, nil
}

// Encrypt encrypts plaintext under the master key.
func (k *KMS) Encrypt(ctx context.Context, plaintext, associatedData []byte) ([]byte, error) {
	input := &kms.EncryptInput{
		KeyId:             &k.keyID,
		Plaintext:         plaintext,
		EncryptionContext: encryptionContext(associatedData),
	}
	out, err := k.client.Encrypt(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("awskms: encrypt with key %q: %w", k.keyID, err)
	}
	return out.CiphertextBlob, nil
}

// Decrypt decrypts ciphertext produced under the master key with the same
// associated data.
func (k *KMS) Decrypt(ctx context.Context, ciphertext, associatedData []byte) ([]byte, error) {
	input := &kms.DecryptInput{
		KeyId:             &k.keyID,
		CiphertextBlob:    ciphertext,
		EncryptionContext: encryptionContext(associatedData),
	}
	out, err := k.client.Decrypt(ctx, input)
	if err != nil {
		return nil, fmt.Errorf("awskms: decrypt with key %q: %w", k.keyID, err)
	}
	return out.Plaintext, nil
}

func encryptionContext(associatedData []byte) map[string]string {
	if len(associatedData) == 0 {
		return nil
	}
	return map[string]string{contextKey: hex.EncodeToString(associatedData)}
}
