package store

import "strings"

// NormalizeAddress lowercases an address and adds the 0x prefix. Stored addresses and
// hashes are always in this form so lookups compare plain strings.
func NormalizeAddress(addr string) string {
	return normalizeHex(addr)
}

// NormalizeHash is NormalizeAddress for transaction hashes.
func NormalizeHash(hash string) string {
	return normalizeHex(hash)
}

func normalizeHex(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || strings.HasPrefix(s, "0x") {
		return s
	}
	return "0x" + s
}
