package crypto

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/awnumar/memguard"
	"github.com/tink-crypto/tink-go/v2/aead"
	"github.com/tink-crypto/tink-go/v2/insecurecleartextkeyset"
	"github.com/tink-crypto/tink-go/v2/keyset"
	"github.com/tink-crypto/tink-go/v2/tink"
)

// keysetFormat tags which of the two supported wire formats a key record
// decrypted under.
type keysetFormat int

const (
	// formatEnveloped is the current format: the keyset is encrypted with a
	// KEK wrapped by the KMS master key.
	formatEnveloped keysetFormat = iota

	// formatObsolete is the pre-envelope format: the keyset is encrypted
	// directly with the master key.
	formatObsolete
)

// envelopeReader recovers plaintext keyset handles from wrapped key records.
// It builds the envelope AEAD once, from a fixed KEK template and the KMS
// client's master key, and reuses it for every record of a load.
type envelopeReader struct {
	kek      tink.AEAD
	envelope tink.AEAD
	log      *slog.Logger
}

func newEnvelopeReader(ctx context.Context, client KMSClient, log *slog.Logger) *envelopeReader {
	kek := kmsAEAD{ctx: ctx, client: client}
	return &envelopeReader{
		kek:      kek,
		envelope: aead.NewKMSEnvelopeAEAD2(aead.AES256GCMKeyTemplate(), kek),
		log:      log,
	}
}

// read deserializes the JSON keyset in material, trying the enveloped format
// first and falling back to direct master-key decryption for keys wrapped
// before envelope encryption existed. The fallback emits a warning; its
// message is a stable contract other tooling greps for.
func (r *envelopeReader) read(ctx context.Context, name string, material string) (*keyset.Handle, keysetFormat, error) {
	handle, envErr := keyset.Read(keyset.NewJSONReader(strings.NewReader(material)), r.envelope)
	if envErr == nil {
		return handle, formatEnveloped, nil
	}

	handle, legacyErr := keyset.Read(keyset.NewJSONReader(strings.NewReader(material)), r.kek)
	if legacyErr == nil {
		r.log.WarnContext(ctx, "using obsolete key format", "key", name)
		obsoleteKeyCounter.Add(ctx, 1)
		return handle, formatObsolete, nil
	}

	return nil, 0, fmt.Errorf("%w: key %q: %v", ErrEnvelopeDecryption, name, errors.Join(envErr, legacyErr))
}

// readCleartext parses an unencrypted JSON keyset. The material is moved
// into a locked buffer so the key bytes are wiped once parsing finishes.
// Only for tests and local development.
func readCleartext(material string) (*keyset.Handle, error) {
	buf := memguard.NewBufferFromBytes([]byte(material))
	defer buf.Destroy()

	handle, err := insecurecleartextkeyset.Read(keyset.NewJSONReader(bytes.NewReader(buf.Bytes())))
	if err != nil {
		return nil, fmt.Errorf("crypto: reading cleartext keyset: %w", err)
	}
	return handle, nil
}
