// internal/transfer/paths.go
package transfer

import "strings"

// NormalizePrefix turns a folder path into a listing prefix: no leading
// slashes and exactly one trailing slash. Idempotent. Empty input stays empty;
// callers validate emptiness upstream.
func NormalizePrefix(p string) string {
	p = strings.Trim(p, "/")
	if p == "" {
		return ""
	}
	return p + "/"
}

// RelativeKey strips prefix from the front of key. Only a true prefix match is
// stripped; a key that merely contains prefix somewhere else comes back
// unchanged, so unrelated keys can never be corrupted by substitution.
func RelativeKey(prefix, key string) string {
	if strings.HasPrefix(key, prefix) {
		return key[len(prefix):]
	}
	return key
}
