package crypto

import (
	"encoding/binary"
	"fmt"
)

// Context-bound ciphertext format constants.
const (
	// packetMagic is the 2-byte signature of a context-bound ciphertext.
	packetMagic = "CX"

	// packetVersion is the current format version.
	packetVersion = 0x01
)

const packetHeaderSize = len(packetMagic) + 1

// writePacket frames a raw primitive ciphertext together with the encoded
// encryption context it was produced under. The context bytes travel in the
// clear; they are already authenticated as the primitive's associated data.
func writePacket(aad, ciphertext []byte) []byte {
	out := make([]byte, 0, packetHeaderSize+binary.MaxVarintLen32+len(aad)+len(ciphertext))
	out = append(out, packetMagic...)
	out = append(out, packetVersion)
	out = binary.AppendUvarint(out, uint64(len(aad)))
	out = append(out, aad...)
	out = append(out, ciphertext...)
	return out
}

// parsePacket splits a context-bound ciphertext into its encoded context and
// the raw primitive ciphertext. ok is false when data does not carry the
// format signature, meaning it is a legacy ciphertext whose associated data
// was supplied directly by the caller.
func parsePacket(data []byte) (aad, ciphertext []byte, ok bool, err error) {
	if len(data) < packetHeaderSize || string(data[:len(packetMagic)]) != packetMagic {
		return nil, nil, false, nil
	}

	version := data[len(packetMagic)]
	if version != packetVersion {
		return nil, nil, false, fmt.Errorf("%w: unsupported version %d", ErrInvalidFormat, version)
	}

	rest := data[packetHeaderSize:]
	aadLen, n := binary.Uvarint(rest)
	if n <= 0 || aadLen > uint64(len(rest)-n) {
		return nil, nil, false, fmt.Errorf("%w: truncated context", ErrInvalidFormat)
	}
	rest = rest[n:]

	if aadLen > 0 {
		aad = rest[:aadLen]
	}
	return aad, rest[aadLen:], true, nil
}
