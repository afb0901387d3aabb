package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"

	"github.com/matzehuels/eventlayout/pkg/field"
)

// Key kinds, the first segment of every key.
const (
	KindRecords  = "records"
	KindArtifact = "artifact"
)

// layoutKey builds "kind:format:digest", where digest covers the content
// hash and every option that changes the entry. The format segment keeps
// keys of one export format together in a shared Redis.
func layoutKey(kind, format, contentHash string, opts any) string {
	data, _ := json.Marshal([]any{contentHash, opts})
	return kind + ":" + format + ":" + Hash(data)
}

// Hash returns the hex SHA-256 of data (64 characters).
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// HashRecords returns the content hash of a working set: the hash of its
// JSON encoding. Any edit to a value, position or flag changes it.
func HashRecords(records []*field.Record) (string, error) {
	data, err := json.Marshal(records)
	if err != nil {
		return "", err
	}
	return Hash(data), nil
}
