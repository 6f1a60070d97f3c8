package ir

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// DomainTrace is the domain prefix for trace content hashes.
// The version suffix allows the encoding to change without silently
// colliding with older hashes.
const DomainTrace = "sortscope/trace/v1"

// hashWithDomain computes SHA256(domain + 0x00 + data).
// The null separator prevents domain/data boundary ambiguity.
func hashWithDomain(domain string, data []byte) string {
	h := sha256.New()
	h.Write([]byte(domain))
	h.Write([]byte{0x00})
	h.Write(data)
	return hex.EncodeToString(h.Sum(nil))
}

// TraceHash computes the content hash of an initial array and its trace.
// Two recordings with the same hash replay identically.
func TraceHash(initial []int, steps Trace) (string, error) {
	if initial == nil {
		initial = []int{}
	}
	if steps == nil {
		steps = Trace{}
	}
	canonical, err := MarshalCanonical(map[string]any{
		"initial": initial,
		"steps":   steps,
	})
	if err != nil {
		return "", fmt.Errorf("TraceHash: failed to marshal: %w", err)
	}
	return hashWithDomain(DomainTrace, canonical), nil
}
