// Package cryptotest provides an in-memory KMS client for tests and local
// development. It implements crypto.KMSClient with a tink AEAD master key
// held in process, plus helpers that wrap keysets the way a provisioning
// pipeline would, in both the enveloped and the obsolete wire formats.
package cryptotest

import (
	"bytes"
	"context"
	"fmt"

	"github.com/awnumar/memguard"
	"github.com/tink-crypto/tink-go/v2/aead"
	"github.com/tink-crypto/tink-go/v2/insecurecleartextkeyset"
	"github.com/tink-crypto/tink-go/v2/keyset"
	"github.com/tink-crypto/tink-go/v2/tink"
	"google.golang.org/protobuf/proto"

	aesgcmpb "github.com/tink-crypto/tink-go/v2/proto/aes_gcm_go_proto"
	tinkpb "github.com/tink-crypto/tink-go/v2/proto/tink_go_proto"

	"github.com/Sethuraman/misk/crypto"
)

// MasterKeySize is the AES-256 master key size for NewClientWithKey.
const MasterKeySize = 32

// Client is an in-memory crypto.KMSClient. The master key never leaves the
// process; Encrypt and Decrypt are local AEAD operations.
type Client struct {
	kek tink.AEAD
}

var _ crypto.KMSClient = (*Client)(nil)

// NewClient creates a Client with a fresh random master key.
func NewClient() (*Client, error) {
	handle, err := keyset.NewHandle(aead.AES256GCMKeyTemplate())
	if err != nil {
		return nil, fmt.Errorf("cryptotest: generating master key: %w", err)
	}
	kek, err := aead.New(handle)
	if err != nil {
		return nil, fmt.Errorf("cryptotest: building master AEAD: %w", err)
	}
	return &Client{kek: kek}, nil
}

// NewClientWithKey creates a Client whose master key is the given 32 raw
// bytes, so wrapped fixtures stay decryptable across process restarts. The
// client takes ownership of key and wipes it once the keyset is built.
func NewClientWithKey(key []byte) (*Client, error) {
	if len(key) != MasterKeySize {
		return nil, fmt.Errorf("cryptotest: master key must be %d bytes, got %d", MasterKeySize, len(key))
	}

	// Guard the raw key while it is being serialized into a keyset.
	guarded := memguard.NewBufferFromBytes(key)
	defer guarded.Destroy()

	handle, err := newAESGCMKeyHandle(guarded.Bytes())
	if err != nil {
		return nil, err
	}
	kek, err := aead.New(handle)
	if err != nil {
		return nil, fmt.Errorf("cryptotest: building master AEAD: %w", err)
	}
	return &Client{kek: kek}, nil
}

// Encrypt implements crypto.KMSClient.
func (c *Client) Encrypt(_ context.Context, plaintext, associatedData []byte) ([]byte, error) {
	return c.kek.Encrypt(plaintext, associatedData)
}

// Decrypt implements crypto.KMSClient.
func (c *Client) Decrypt(_ context.Context, ciphertext, associatedData []byte) ([]byte, error) {
	return c.kek.Decrypt(ciphertext, associatedData)
}

// WrapKeyset serializes handle as a JSON keyset in the current enveloped
// format: encrypted with a KEK that is itself wrapped by the master key.
// The output is valid crypto.KeyRecord material.
func (c *Client) WrapKeyset(handle *keyset.Handle) (string, error) {
	envelope := aead.NewKMSEnvelopeAEAD2(aead.AES256GCMKeyTemplate(), c.kek)
	var buf bytes.Buffer
	if err := handle.Write(keyset.NewJSONWriter(&buf), envelope); err != nil {
		return "", fmt.Errorf("cryptotest: wrapping keyset: %w", err)
	}
	return buf.String(), nil
}

// WrapKeysetObsolete serializes handle in the pre-envelope format, encrypted
// directly with the master key. Loading it exercises the fallback path and
// its "using obsolete key format" warning.
func (c *Client) WrapKeysetObsolete(handle *keyset.Handle) (string, error) {
	var buf bytes.Buffer
	if err := handle.Write(keyset.NewJSONWriter(&buf), c.kek); err != nil {
		return "", fmt.Errorf("cryptotest: wrapping keyset: %w", err)
	}
	return buf.String(), nil
}

// CleartextKeyset serializes handle as an unencrypted JSON keyset, the
// material of a Cleartext key record.
func CleartextKeyset(handle *keyset.Handle) (string, error) {
	var buf bytes.Buffer
	if err := insecurecleartextkeyset.Write(handle, keyset.NewJSONWriter(&buf)); err != nil {
		return "", fmt.Errorf("cryptotest: writing cleartext keyset: %w", err)
	}
	return buf.String(), nil
}

// newAESGCMKeyHandle builds a single-key AES-GCM keyset handle from raw key
// bytes.
func newAESGCMKeyHandle(key []byte) (*keyset.Handle, error) {
	aesGCMKey := &aesgcmpb.AesGcmKey{
		Version:  0,
		KeyValue: key,
	}
	serializedKey, err := proto.Marshal(aesGCMKey)
	if err != nil {
		return nil, fmt.Errorf("cryptotest: serializing AesGcmKey: %w", err)
	}

	keySet := &tinkpb.Keyset{
		PrimaryKeyId: 1,
		Key: []*tinkpb.Keyset_Key{
			{
				KeyData: &tinkpb.KeyData{
					TypeUrl:         "type.googleapis.com/google.crypto.tink.AesGcmKey",
					Value:           serializedKey,
					KeyMaterialType: tinkpb.KeyData_SYMMETRIC,
				},
				Status:           tinkpb.KeyStatusType_ENABLED,
				KeyId:            1,
				OutputPrefixType: tinkpb.OutputPrefixType_RAW,
			},
		},
	}

	serializedKeyset, err := proto.Marshal(keySet)
	if err != nil {
		return nil, fmt.Errorf("cryptotest: serializing keyset: %w", err)
	}

	handle, err := insecurecleartextkeyset.Read(
		keyset.NewBinaryReader(bytes.NewReader(serializedKeyset)))
	if err != nil {
		return nil, fmt.Errorf("cryptotest: creating keyset handle: %w", err)
	}
	return handle, nil
}
