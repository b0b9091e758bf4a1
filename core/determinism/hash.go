// Package determinism provides stable hashes and identifiers.
// Two runs over the same catalog and inputs must produce the same values.
package determinism

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"strings"
)

// ContentHash is a SHA-256 hash for content integrity
type ContentHash [32]byte

// ComputeHash computes a content hash from bytes
func ComputeHash(data []byte) ContentHash {
	return sha256.Sum256(data)
}

// HashJSON hashes the JSON encoding of v. Callers must only pass values
// whose encoding is ordered: structs, slices and decimals, not maps.
func HashJSON(v any) (ContentHash, error) {
	data, err := json.Marshal(v)
	if err != nil {
		return ContentHash{}, err
	}
	return ComputeHash(data), nil
}

// Hex returns the hash as a hex string
func (h ContentHash) Hex() string {
	return hex.EncodeToString(h[:])
}

// String implements Stringer
func (h ContentHash) String() string {
	return h.Hex()[:16] + "..."
}

// StableID is a hash-based identifier that's deterministic
type StableID string

// IDGenerator generates stable IDs within a namespace
type IDGenerator struct {
	namespace string
}

// NewIDGenerator creates an ID generator with a namespace
func NewIDGenerator(namespace string) *IDGenerator {
	return &IDGenerator{namespace: namespace}
}

// Generate creates a stable ID from inputs
func (g *IDGenerator) Generate(parts ...string) StableID {
	h := sha256.New()
	h.Write([]byte(g.namespace))
	h.Write([]byte{0})
	for _, part := range parts {
		h.Write([]byte(part))
		h.Write([]byte{0})
	}
	return StableID(hex.EncodeToString(h.Sum(nil))[:16])
}

// Reference formats the ID as an upper-case quote reference
func (id StableID) Reference(prefix string) string {
	s := strings.ToUpper(string(id))
	if len(s) > 8 {
		s = s[:8]
	}
	return prefix + "-" + s
}
