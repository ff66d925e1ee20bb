package crypto

import (
	"encoding/base64"
	"fmt"

	"github.com/tink-crypto/tink-go/v2/tink"
)

// MAC computes and verifies base64-encoded message authentication tags.
// Safe for concurrent use.
type MAC struct {
	name      string
	primitive tink.MAC
}

// Name returns the key name the primitive was registered under.
func (m *MAC) Name() string { return m.name }

// ComputeMAC returns a base64-encoded authentication tag for message.
func (m *MAC) ComputeMAC(message []byte) (string, error) {
	tag, err := m.primitive.ComputeMAC(message)
	if err != nil {
		return "", fmt.Errorf("crypto: mac %q compute: %w", m.name, err)
	}
	return base64.StdEncoding.EncodeToString(tag), nil
}

// VerifyMAC checks tag against message. A tag that is not valid base64 fails
// with ErrMalformedTag wrapping the offending input; a well-formed tag that
// does not verify fails with exactly ErrInvalidMAC, carrying no detail about
// why.
func (m *MAC) VerifyMAC(tag string, message []byte) error {
	raw, err := base64.StdEncoding.DecodeString(tag)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrMalformedTag, tag)
	}
	if err := m.primitive.VerifyMAC(raw, message); err != nil {
		return ErrInvalidMAC
	}
	return nil
}
