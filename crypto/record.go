package crypto

import "fmt"

// KeyType identifies which primitive a key record materializes into.
type KeyType int

const (
	KeyTypeUnknown KeyType = iota

	// KeyTypeAEAD is authenticated encryption with associated data.
	KeyTypeAEAD

	// KeyTypeDAEAD is deterministic AEAD (AES-SIV). Equal plaintext and
	// context always produce equal ciphertext.
	KeyTypeDAEAD

	// KeyTypeMAC is a message authentication code key.
	KeyTypeMAC

	// KeyTypeDigitalSignature is an asymmetric signing key. It populates
	// both the signer and the verifier registries.
	KeyTypeDigitalSignature

	// KeyTypeHybridEncrypt is a public-key-only hybrid encryption key.
	KeyTypeHybridEncrypt

	// KeyTypeHybridEncryptDecrypt is a hybrid key with private material. It
	// populates both the hybrid-encrypt and hybrid-decrypt registries.
	KeyTypeHybridEncryptDecrypt
)

var keyTypeNames = map[KeyType]string{
	KeyTypeAEAD:                 "AEAD",
	KeyTypeDAEAD:                "DAEAD",
	KeyTypeMAC:                  "MAC",
	KeyTypeDigitalSignature:     "DIGITAL_SIGNATURE",
	KeyTypeHybridEncrypt:        "HYBRID_ENCRYPT",
	KeyTypeHybridEncryptDecrypt: "HYBRID_ENCRYPT_DECRYPT",
}

// String returns the configuration name of the key type.
func (t KeyType) String() string {
	if name, ok := keyTypeNames[t]; ok {
		return name
	}
	return fmt.Sprintf("KeyType(%d)", int(t))
}

// ParseKeyType converts a configuration string such as "AEAD" or
// "HYBRID_ENCRYPT_DECRYPT" into a KeyType.
func ParseKeyType(s string) (KeyType, error) {
	for t, name := range keyTypeNames {
		if name == s {
			return t, nil
		}
	}
	return KeyTypeUnknown, fmt.Errorf("%w: %q", ErrUnknownKeyType, s)
}

// KeyRecord describes one named key handed to the Loader at startup.
//
// Encrypted holds a JSON-serialized tink keyset, wrapped by the KMS envelope
// AEAD (or, for keys predating envelope wrapping, encrypted directly with
// the master key). Records are consumed during Load and not retained.
type KeyRecord struct {
	// Name is unique within the record's key-type namespace.
	Name string

	// Type selects the primitive to construct.
	Type KeyType

	// Encrypted is the wrapped keyset material.
	Encrypted string

	// Cleartext marks Encrypted as an unencrypted JSON keyset. Only for
	// tests and local development; production keys are always wrapped.
	Cleartext bool
}
