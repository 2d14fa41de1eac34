package driver

import (
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"fortio.org/safecast"
)

// Digest is a SHA-256 value.
type Digest [32]byte

// ContentDigest keys the token cache: the diagnostic limit is part of the
// key because lexer diagnostics beyond it are never recorded.
func ContentDigest(src []byte, maxDiagnostics int) (Digest, error) {
	limit, err := safecast.Conv[uint16](maxDiagnostics)
	if err != nil {
		return Digest{}, fmt.Errorf("diagnostic limit %d: %w", maxDiagnostics, err)
	}
	h := sha256.New()
	var hdr [4]byte
	binary.LittleEndian.PutUint16(hdr[:2], diskCacheSchemaVersion)
	binary.LittleEndian.PutUint16(hdr[2:], limit)
	_, _ = h.Write(hdr[:])
	_, _ = h.Write(src)
	var out Digest
	copy(out[:], h.Sum(nil))
	return out, nil
}
