package crypto

import (
	"bytes"
	"encoding/binary"
	"slices"
)

// EncryptionContext is a set of caller-supplied key/value pairs bound into a
// ciphertext's associated data. A ciphertext produced under a context can
// only be decrypted by supplying an equal context. A nil context and an
// empty context are equivalent.
//
// The context is not encrypted: it is authenticated and stored alongside the
// ciphertext, so it must not contain secret values.
type EncryptionContext map[string]string

// encode serializes the context into deterministic associated-data bytes.
// Pairs are sorted by key and length-prefixed, so two contexts with the same
// entries encode identically regardless of insertion order, and no two
// distinct contexts share an encoding. Nil and empty contexts encode to nil,
// which is also the associated data of a legacy ciphertext created without
// any context.
func (ec EncryptionContext) encode() []byte {
	if len(ec) == 0 {
		return nil
	}

	keys := make([]string, 0, len(ec))
	for k := range ec {
		keys = append(keys, k)
	}
	slices.Sort(keys)

	var out []byte
	for _, k := range keys {
		out = binary.AppendUvarint(out, uint64(len(k)))
		out = append(out, k...)
		out = binary.AppendUvarint(out, uint64(len(ec[k])))
		out = append(out, ec[k]...)
	}
	return out
}

// matches reports whether the context re-encodes to the associated data a
// ciphertext was produced under.
func (ec EncryptionContext) matches(expected []byte) bool {
	return bytes.Equal(ec.encode(), expected)
}
