package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"net/url"
	"strings"
)

// Signature builds a cache key from the request shape: method, normalized
// path, and sorted query string. Two requests that would hit the same
// endpoint with the same parameters share a signature regardless of query
// parameter order.
func Signature(method, path string, query url.Values) string {
	var b strings.Builder
	b.WriteString(strings.ToUpper(method))
	b.WriteByte(' ')
	b.WriteString(strings.TrimRight(path, "/"))
	if len(query) > 0 {
		b.WriteByte('?')
		b.WriteString(query.Encode()) // Encode sorts keys
	}

	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}
