// Package sampling provides a keyed, resettable pseudo-random byte stream
// backed by BLAKE3 in keyed mode — the same primitive family xhash builds
// its protocol-level hashes on, exposed here as a general utility PRNG for
// anything needing raw keyed randomness outside of H1/H2/Tag/BlockPRNG
// (benchmark fixtures, synthetic test-set generation).
package sampling

import (
	"github.com/zeebo/blake3"
)

// KeyedPRNG is a deterministic byte stream keyed on a fixed 32-byte key:
// two instances constructed with the same key produce identical output,
// and Reset rewinds a single instance back to the start of its stream.
type KeyedPRNG struct {
	hasher *blake3.Hasher
	digest *blake3.Digest
}

// NewKeyedPRNG returns a KeyedPRNG keyed with key, which must be exactly
// 32 bytes.
func NewKeyedPRNG(key []byte) (*KeyedPRNG, error) {
	h, err := blake3.NewKeyed(key)
	if err != nil {
		return nil, err
	}
	p := &KeyedPRNG{hasher: h}
	p.digest = h.Digest()
	return p, nil
}

// Read fills buf with the next len(buf) bytes of the keyed stream. It
// always returns len(buf), nil: the underlying BLAKE3 XOF never errors.
func (p *KeyedPRNG) Read(buf []byte) (int, error) {
	return p.digest.Read(buf)
}

// Reset rewinds the stream to its first byte.
func (p *KeyedPRNG) Reset() {
	p.digest = p.hasher.Digest()
}
