package interests

import (
	"encoding/hex"
	"fmt"

	"golang.org/x/crypto/blake2b"
)

// Hasher turns caller identifiers into the stored key. With a key set the
// digest is a keyed MAC, so the table alone cannot be used to confirm a
// guessed identifier.
type Hasher struct {
	key []byte
}

// NewHasher accepts an empty key or one of up to 64 bytes.
func NewHasher(key string) (*Hasher, error) {
	if len(key) > blake2b.Size {
		return nil, fmt.Errorf("interest hash key must be at most %d bytes, got %d", blake2b.Size, len(key))
	}
	return &Hasher{key: []byte(key)}, nil
}

// HashUserID returns the hex BLAKE2b-256 digest of id.
func (h *Hasher) HashUserID(id string) string {
	mac, err := blake2b.New256(h.key)
	if err != nil {
		// NewHasher has already bounded the key length.
		panic(err)
	}
	mac.Write([]byte(id))
	return hex.EncodeToString(mac.Sum(nil))
}
