package crypto_test

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tink-crypto/tink-go/v2/aead"
	"github.com/tink-crypto/tink-go/v2/daead"
	"github.com/tink-crypto/tink-go/v2/hybrid"
	"github.com/tink-crypto/tink-go/v2/keyset"
	"github.com/tink-crypto/tink-go/v2/mac"
	tinkpb "github.com/tink-crypto/tink-go/v2/proto/tink_go_proto"
	"github.com/tink-crypto/tink-go/v2/signature"

	"github.com/Sethuraman/misk/crypto"
	"github.com/Sethuraman/misk/crypto/cryptotest"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

// wrapRecord generates a keyset for the template and wraps it into a key
// record through the fake KMS.
func wrapRecord(t *testing.T, client *cryptotest.Client, name string, keyType crypto.KeyType, template *tinkpb.KeyTemplate) crypto.KeyRecord {
	t.Helper()
	handle, err := keyset.NewHandle(template)
	require.NoError(t, err)
	material, err := client.WrapKeyset(handle)
	require.NoError(t, err)
	return crypto.KeyRecord{Name: name, Type: keyType, Encrypted: material}
}

func TestLoadAllKeyTypes(t *testing.T) {
	client, err := cryptotest.NewClient()
	require.NoError(t, err)

	records := []crypto.KeyRecord{
		wrapRecord(t, client, "aead-key", crypto.KeyTypeAEAD, aead.AES256GCMKeyTemplate()),
		wrapRecord(t, client, "daead-key", crypto.KeyTypeDAEAD, daead.AESSIVKeyTemplate()),
		wrapRecord(t, client, "mac-key", crypto.KeyTypeMAC, mac.HMACSHA256Tag256KeyTemplate()),
		wrapRecord(t, client, "signing-key", crypto.KeyTypeDigitalSignature, signature.ED25519KeyTemplate()),
		wrapRecord(t, client, "hybrid-key", crypto.KeyTypeHybridEncryptDecrypt, hybrid.ECIESHKDFAES128GCMKeyTemplate()),
	}

	loader, err := crypto.NewLoader(client, crypto.WithLogger(discardLogger()))
	require.NoError(t, err)
	keys, err := loader.Load(context.Background(), records)
	require.NoError(t, err)

	// Every record is usable through its registry.
	a, err := keys.AEADs.Get("aead-key")
	require.NoError(t, err)
	ct, err := a.Encrypt([]byte("payload"), nil)
	require.NoError(t, err)
	pt, err := a.Decrypt(ct, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), pt)

	d, err := keys.DAEADs.Get("daead-key")
	require.NoError(t, err)
	ct, err = d.EncryptDeterministically([]byte("payload"), nil)
	require.NoError(t, err)
	pt, err = d.DecryptDeterministically(ct, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), pt)

	m, err := keys.MACs.Get("mac-key")
	require.NoError(t, err)
	tag, err := m.ComputeMAC([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, m.VerifyMAC(tag, []byte("payload")))

	signer, err := keys.Signers.Get("signing-key")
	require.NoError(t, err)
	verifier, err := keys.Verifiers.Get("signing-key")
	require.NoError(t, err)
	sig, err := signer.Sign([]byte("payload"))
	require.NoError(t, err)
	require.NoError(t, verifier.Verify(sig, []byte("payload")))

	he, err := keys.HybridEncrypts.Get("hybrid-key")
	require.NoError(t, err)
	hd, err := keys.HybridDecrypts.Get("hybrid-key")
	require.NoError(t, err)
	ct, err = he.Encrypt([]byte("payload"), nil)
	require.NoError(t, err)
	pt, err = hd.Decrypt(ct, nil)
	require.NoError(t, err)
	assert.Equal(t, []byte("payload"), pt)
}

func TestLoadHybridEncryptOnly(t *testing.T) {
	client, err := cryptotest.NewClient()
	require.NoError(t, err)

	// Distribute only the public half: encryption without decryption.
	private, err := keyset.NewHandle(hybrid.ECIESHKDFAES128GCMKeyTemplate())
	require.NoError(t, err)
	public, err := private.Public()
	require.NoError(t, err)
	material, err := client.WrapKeyset(public)
	require.NoError(t, err)

	loader, err := crypto.NewLoader(client, crypto.WithLogger(discardLogger()))
	require.NoError(t, err)
	keys, err := loader.Load(context.Background(), []crypto.KeyRecord{
		{Name: "notify", Type: crypto.KeyTypeHybridEncrypt, Encrypted: material},
	})
	require.NoError(t, err)

	assert.True(t, keys.HybridEncrypts.Contains("notify"))
	assert.False(t, keys.HybridDecrypts.Contains("notify"))
}

func TestLoadDuplicateNameFailsWholeLoad(t *testing.T) {
	client, err := cryptotest.NewClient()
	require.NoError(t, err)

	records := []crypto.KeyRecord{
		wrapRecord(t, client, "aead-key", crypto.KeyTypeAEAD, aead.AES256GCMKeyTemplate()),
		wrapRecord(t, client, "dup", crypto.KeyTypeMAC, mac.HMACSHA256Tag256KeyTemplate()),
		wrapRecord(t, client, "dup", crypto.KeyTypeMAC, mac.HMACSHA256Tag256KeyTemplate()),
	}

	loader, err := crypto.NewLoader(client, crypto.WithLogger(discardLogger()))
	require.NoError(t, err)
	keys, err := loader.Load(context.Background(), records)
	assert.True(t, crypto.IsDuplicateKeyName(err))
	// No partial registry state escapes a failed load.
	assert.Nil(t, keys)
}

func TestLoadSameNameDifferentTypes(t *testing.T) {
	client, err := cryptotest.NewClient()
	require.NoError(t, err)

	// Names are unique per key-type namespace, not globally.
	records := []crypto.KeyRecord{
		wrapRecord(t, client, "shared", crypto.KeyTypeAEAD, aead.AES256GCMKeyTemplate()),
		wrapRecord(t, client, "shared", crypto.KeyTypeMAC, mac.HMACSHA256Tag256KeyTemplate()),
	}

	loader, err := crypto.NewLoader(client, crypto.WithLogger(discardLogger()))
	require.NoError(t, err)
	keys, err := loader.Load(context.Background(), records)
	require.NoError(t, err)
	assert.True(t, keys.AEADs.Contains("shared"))
	assert.True(t, keys.MACs.Contains("shared"))
}

func TestLoadUnknownKeyType(t *testing.T) {
	client, err := cryptotest.NewClient()
	require.NoError(t, err)

	record := wrapRecord(t, client, "aead-key", crypto.KeyTypeAEAD, aead.AES256GCMKeyTemplate())
	record.Type = crypto.KeyType(99)

	loader, err := crypto.NewLoader(client, crypto.WithLogger(discardLogger()))
	require.NoError(t, err)
	_, err = loader.Load(context.Background(), []crypto.KeyRecord{record})
	assert.ErrorIs(t, err, crypto.ErrUnknownKeyType)
}

func TestLoadUndecryptableKey(t *testing.T) {
	client, err := cryptotest.NewClient()
	require.NoError(t, err)
	otherClient, err := cryptotest.NewClient()
	require.NoError(t, err)

	// Wrapped under a different master key.
	record := wrapRecord(t, otherClient, "aead-key", crypto.KeyTypeAEAD, aead.AES256GCMKeyTemplate())

	loader, err := crypto.NewLoader(client, crypto.WithLogger(discardLogger()))
	require.NoError(t, err)
	_, err = loader.Load(context.Background(), []crypto.KeyRecord{record})
	assert.True(t, crypto.IsEnvelopeDecryption(err))
	assert.ErrorContains(t, err, "aead-key")
}

func TestLoadObsoleteFormatWarnsOnce(t *testing.T) {
	client, err := cryptotest.NewClient()
	require.NoError(t, err)

	handle, err := keyset.NewHandle(aead.AES256GCMKeyTemplate())
	require.NoError(t, err)
	material, err := client.WrapKeysetObsolete(handle)
	require.NoError(t, err)

	var logBuf bytes.Buffer
	loader, err := crypto.NewLoader(client,
		crypto.WithLogger(slog.New(slog.NewTextHandler(&logBuf, nil))))
	require.NoError(t, err)

	keys, err := loader.Load(context.Background(), []crypto.KeyRecord{
		{Name: "old-key", Type: crypto.KeyTypeAEAD, Encrypted: material},
	})
	require.NoError(t, err)

	// The key still works.
	a, err := keys.AEADs.Get("old-key")
	require.NoError(t, err)
	ct, err := a.Encrypt([]byte("payload"), nil)
	require.NoError(t, err)
	_, err = a.Decrypt(ct, nil)
	require.NoError(t, err)

	// Exactly one warning, with the stable message.
	assert.Equal(t, 1, strings.Count(logBuf.String(), "using obsolete key format"))
}

func TestLoadCleartextKey(t *testing.T) {
	client, err := cryptotest.NewClient()
	require.NoError(t, err)

	handle, err := keyset.NewHandle(aead.AES256GCMKeyTemplate())
	require.NoError(t, err)
	material, err := cryptotest.CleartextKeyset(handle)
	require.NoError(t, err)

	loader, err := crypto.NewLoader(client, crypto.WithLogger(discardLogger()))
	require.NoError(t, err)
	keys, err := loader.Load(context.Background(), []crypto.KeyRecord{
		{Name: "dev-key", Type: crypto.KeyTypeAEAD, Encrypted: material, Cleartext: true},
	})
	require.NoError(t, err)
	assert.True(t, keys.AEADs.Contains("dev-key"))
}

func TestLoadPolicyRejection(t *testing.T) {
	client, err := cryptotest.NewClient()
	require.NoError(t, err)

	records := []crypto.KeyRecord{
		wrapRecord(t, client, "prod-key", crypto.KeyTypeAEAD, aead.AES256GCMKeyTemplate()),
		wrapRecord(t, client, "staging-key", crypto.KeyTypeAEAD, aead.AES256GCMKeyTemplate()),
	}

	policy := func(record crypto.KeyRecord) error {
		if strings.HasPrefix(record.Name, "staging-") {
			return fmt.Errorf("staging keys not allowed in this environment")
		}
		return nil
	}

	loader, err := crypto.NewLoader(client,
		crypto.WithLogger(discardLogger()), crypto.WithKeyPolicy(policy))
	require.NoError(t, err)
	keys, err := loader.Load(context.Background(), records)
	assert.ErrorContains(t, err, "staging-key")
	assert.Nil(t, keys)
}

func TestLookupUnregisteredName(t *testing.T) {
	client, err := cryptotest.NewClient()
	require.NoError(t, err)

	loader, err := crypto.NewLoader(client, crypto.WithLogger(discardLogger()))
	require.NoError(t, err)
	keys, err := loader.Load(context.Background(), nil)
	require.NoError(t, err)

	_, err = keys.AEADs.Get("never-configured")
	assert.True(t, crypto.IsKeyNotFound(err))
}

func TestNewLoaderNilClient(t *testing.T) {
	_, err := crypto.NewLoader(nil)
	assert.Error(t, err)
}

func TestLoadFixedMasterKeySurvivesRestart(t *testing.T) {
	key := bytes.Repeat([]byte{0x42}, cryptotest.MasterKeySize)
	client, err := cryptotest.NewClientWithKey(bytes.Clone(key))
	require.NoError(t, err)

	record := wrapRecord(t, client, "aead-key", crypto.KeyTypeAEAD, aead.AES256GCMKeyTemplate())

	// A new client with the same master key, as after a process restart.
	restarted, err := cryptotest.NewClientWithKey(bytes.Clone(key))
	require.NoError(t, err)

	loader, err := crypto.NewLoader(restarted, crypto.WithLogger(discardLogger()))
	require.NoError(t, err)
	keys, err := loader.Load(context.Background(), []crypto.KeyRecord{record})
	require.NoError(t, err)
	assert.True(t, keys.AEADs.Contains("aead-key"))
}
