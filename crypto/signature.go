package crypto

import (
	"fmt"

	"github.com/tink-crypto/tink-go/v2/tink"
)

// Signer produces digital signatures. Safe for concurrent use.
type Signer struct {
	name      string
	primitive tink.Signer
}

// Name returns the key name the primitive was registered under.
func (s *Signer) Name() string { return s.name }

// Sign returns a signature over data.
func (s *Signer) Sign(data []byte) ([]byte, error) {
	sig, err := s.primitive.Sign(data)
	if err != nil {
		return nil, fmt.Errorf("crypto: signer %q sign: %w", s.name, err)
	}
	return sig, nil
}

// Verifier checks digital signatures. It is built from the public half of a
// signing key, so it can be distributed without signing capability. Safe for
// concurrent use.
type Verifier struct {
	name      string
	primitive tink.Verifier
}

// Name returns the key name the primitive was registered under.
func (v *Verifier) Name() string { return v.name }

// Verify returns nil when signature is valid over data.
func (v *Verifier) Verify(signature, data []byte) error {
	if err := v.primitive.Verify(signature, data); err != nil {
		return fmt.Errorf("crypto: verifier %q: invalid signature", v.name)
	}
	return nil
}
