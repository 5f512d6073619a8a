package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"

	"go-image-cache/internal/interfaces"
)

const (
	// KeyLength is the number of hex characters kept from the SHA-256 digest (160 bits)
	KeyLength = 40

	fieldSeparator   = "|"
	keywordSeparator = ","
)

// Ensure KeyBuilderImpl implements interfaces.KeyBuilder
var _ interfaces.KeyBuilder = (*KeyBuilderImpl)(nil)

// KeyBuilderImpl implements the KeyBuilder interface
type KeyBuilderImpl struct{}

// NewKeyBuilder creates a new KeyBuilder instance
func NewKeyBuilder() interfaces.KeyBuilder {
	return &KeyBuilderImpl{}
}

// Build creates a cache key for a single image request.
// Equal semantic requests always produce equal keys: every field is NFC
// normalized, trimmed and lowercased, and keywords are sorted.
func (kb *KeyBuilderImpl) Build(in interfaces.KeyInput) string {
	keywords := make([]string, 0, len(in.Keywords))
	for _, kw := range in.Keywords {
		if n := Normalize(kw); n != "" {
			keywords = append(keywords, n)
		}
	}
	sort.Strings(keywords)

	normalized := strings.Join([]string{
		Normalize(in.Era),
		Normalize(in.Topic),
		strings.Join(keywords, keywordSeparator),
		Normalize(in.Size),
		Normalize(in.Quality),
		Normalize(in.Version),
	}, fieldSeparator)

	sum := sha256.Sum256([]byte(normalized))
	return hex.EncodeToString(sum[:])[:KeyLength]
}

// StoragePath derives the object path for an image stored under key,
// sharded by the first two key characters
func (kb *KeyBuilderImpl) StoragePath(key, ext string) string {
	prefix := key
	if len(prefix) > 2 {
		prefix = prefix[:2]
	}
	return fmt.Sprintf("generated/%s/%s.%s", prefix, key, ext)
}

// Normalize applies the canonical form used for keys and table lookups
func Normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(norm.NFC.String(s)))
}
