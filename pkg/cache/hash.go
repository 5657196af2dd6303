package cache

import (
	"crypto/sha256"
	"encoding/binary"
	"encoding/hex"
	"encoding/json"
	"fmt"
)

// hashKey builds "prefix:sha256(json(parts))".
func hashKey(prefix string, parts ...any) string {
	data, _ := json.Marshal(parts)
	hash := sha256.Sum256(data)
	return fmt.Sprintf("%s:%s", prefix, hex.EncodeToString(hash[:]))
}

// Hash returns the hex SHA-256 of data.
func Hash(data []byte) string {
	hash := sha256.Sum256(data)
	return hex.EncodeToString(hash[:])
}

// HashItems hashes a word list. Items are length-prefixed so that
// ["ab", "c"] and ["a", "bc"] differ.
func HashItems(items []string) string {
	h := sha256.New()
	var n [8]byte
	for _, it := range items {
		binary.LittleEndian.PutUint64(n[:], uint64(len(it)))
		h.Write(n[:])
		h.Write([]byte(it))
	}
	return hex.EncodeToString(h.Sum(nil))
}
