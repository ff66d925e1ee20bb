package crypto

import "errors"

var (
	// ErrDuplicateKeyName is returned at load time when two key records share
	// a name within the same key-type namespace. The whole load is aborted.
	ErrDuplicateKeyName = errors.New("crypto: duplicate key name")

	// ErrKeyNotFound is returned by registry lookups for a name that was
	// never configured.
	ErrKeyNotFound = errors.New("crypto: key not found")

	// ErrUnknownKeyType is returned at load time for a record whose key type
	// is not recognized.
	ErrUnknownKeyType = errors.New("crypto: unknown key type")

	// ErrEnvelopeDecryption is returned when a key record decrypts under
	// neither the enveloped nor the legacy master-key format.
	ErrEnvelopeDecryption = errors.New("crypto: envelope decryption failed")

	// ErrDecryptionFailed is returned when a ciphertext fails to decrypt
	// even though the supplied encryption context matches (wrong key,
	// tampered data).
	ErrDecryptionFailed = errors.New("crypto: decryption failed")

	// ErrInvalidFormat is returned when a context-bound ciphertext carries
	// the format magic but is otherwise malformed.
	ErrInvalidFormat = errors.New("crypto: invalid ciphertext format")

	// ErrContextMismatch is returned on decrypt when the supplied encryption
	// context does not match the one the ciphertext was produced under.
	// The message is a stable contract.
	ErrContextMismatch = errors.New("encryption context doesn't match")

	// ErrMalformedTag is returned when a MAC tag is not valid base64. It is
	// wrapped with the offending tag for diagnostics.
	ErrMalformedTag = errors.New("invalid tag")

	// ErrInvalidMAC is returned when a well-formed tag fails verification.
	// It carries no detail about why. The message is a stable contract.
	ErrInvalidMAC = errors.New("invalid MAC")
)

// IsKeyNotFound returns true if the error is or wraps ErrKeyNotFound.
func IsKeyNotFound(err error) bool {
	return errors.Is(err, ErrKeyNotFound)
}

// IsDuplicateKeyName returns true if the error is or wraps ErrDuplicateKeyName.
func IsDuplicateKeyName(err error) bool {
	return errors.Is(err, ErrDuplicateKeyName)
}

// IsContextMismatch returns true if the error is or wraps ErrContextMismatch.
func IsContextMismatch(err error) bool {
	return errors.Is(err, ErrContextMismatch)
}

// IsEnvelopeDecryption returns true if the error is or wraps ErrEnvelopeDecryption.
func IsEnvelopeDecryption(err error) bool {
	return errors.Is(err, ErrEnvelopeDecryption)
}

// IsDecryptionFailed returns true if the error is or wraps ErrDecryptionFailed.
func IsDecryptionFailed(err error) bool {
	return errors.Is(err, ErrDecryptionFailed)
}
