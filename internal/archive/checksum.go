package archive

import (
	"crypto/sha256"
	"encoding/hex"
)

// Digest computes the SHA-256 checksum of an entry's kind and content as a hex string.
func Digest(e *Entry) string {
	h := sha256.New()
	h.Write([]byte{byte(e.Kind)})
	h.Write(e.content)
	return hex.EncodeToString(h.Sum(nil))
}

// Checksums maps every entry path to its digest.
func (a *Archive) Checksums() map[string]string {
	sums := make(map[string]string, len(a.entries))
	for _, e := range a.entries {
		sums[e.Path] = Digest(e)
	}
	return sums
}

// Changed returns the paths that differ between before and after: entries
// that were added, removed, or whose digest changed. Paths from before come
// first in before's order, followed by additions in after's order.
func Changed(before, after *Archive) []string {
	afterSums := after.Checksums()
	var changed []string
	seen := make(map[string]bool)

	for _, e := range before.entries {
		seen[e.Path] = true
		sum, ok := afterSums[e.Path]
		if !ok || sum != Digest(e) {
			changed = append(changed, e.Path)
		}
	}
	for _, e := range after.entries {
		if !seen[e.Path] {
			changed = append(changed, e.Path)
		}
	}
	return changed
}
