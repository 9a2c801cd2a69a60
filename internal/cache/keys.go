package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

const (
	GlobalKeyPrefix = "videoquiz"
)

// GenerateCacheKey generates a cache key for a given service, object type, and identifier.
// If paramsKey are provided, they are joined by "_" and appended to the cache key.
func GenerateCacheKey(serviceName, objectType, identifier string, paramsKey ...string) string {
	baseKey := strings.Join([]string{GlobalKeyPrefix, serviceName, objectType, identifier}, ":")
	if len(paramsKey) > 0 {
		return strings.Join([]string{baseKey, strings.Join(paramsKey, "_")}, ":")
	}
	return baseKey
}

// MediaRecordKey is the key of a resolved record. URLs are hashed so that
// query strings and colons never leak into the key structure.
func MediaRecordKey(url, language string) string {
	sum := sha256.Sum256([]byte(url))
	return GenerateCacheKey("media", "record", hex.EncodeToString(sum[:]), language)
}
