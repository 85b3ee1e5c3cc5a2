package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
)

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// DocumentHash identifies a diagram source. The syntax is part of the hash:
// the same bytes decoded as YAML and as JSON are different documents.
func DocumentHash(syntax string, source []byte) string {
	h := sha256.New()
	h.Write([]byte(syntax))
	h.Write([]byte{0})
	h.Write(source)
	return hex.EncodeToString(h.Sum(nil))
}

// hashKey returns "namespace:<hex>" where hex hashes the JSON encoding of
// parts. Parts are plain values (strings, option structs), so encoding
// cannot fail.
func hashKey(namespace string, parts ...any) string {
	data, _ := json.Marshal(parts)
	return namespace + ":" + Hash(data)
}
