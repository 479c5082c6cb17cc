// Package fileid derives deterministic document IDs from corpus file paths.
package fileid

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"
)

const prefix = "doc:"

// DocID returns a stable document ID for the given absolute path.
// The same path always yields the same ID, so re-ingesting a changed file
// updates the existing document and the watcher can delete by path.
func DocID(absolutePath string) string {
	normalized := filepath.Clean(absolutePath)
	hash := sha256.Sum256([]byte(normalized))
	return prefix + hex.EncodeToString(hash[:])
}
