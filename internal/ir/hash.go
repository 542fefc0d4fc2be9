package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// Domain prefixes for content digests.
// Version suffix enables future algorithm migration.
const (
	DomainTree  = "oort/tree/v1"
	DomainGraph = "oort/graph/v1"
)

// hashWithDomain computes SHA-256 hash with domain separation.
// Format: SHA256(domain + 0x00 + data)
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// Digest computes a content digest of v under the given domain.
// Two values have the same digest iff their canonical JSON is identical.
func Digest(domain string, v Value) (string, error) {
	canonical, err := MarshalCanonical(v)
	if err != nil {
		return "", fmt.Errorf("Digest: failed to marshal: %w", err)
	}
	return hashWithDomain(domain, canonical), nil
}

// TreeDigest is Digest under DomainTree.
func TreeDigest(tree Object) (string, error) {
	return Digest(DomainTree, tree)
}

// MustDigest is like Digest but panics on error.
// Use only in tests or when inputs are known to be valid.
func MustDigest(domain string, v Value) string {
	d, err := Digest(domain, v)
	if err != nil {
		panic(err)
	}
	return d
}
