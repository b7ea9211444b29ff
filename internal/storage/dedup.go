// internal/storage/dedup.go
package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"sync"
)

// Deduplicator tracks previously-seen byte blocks by content hash. It is
// block-shape agnostic — callers decide what a "block" is, whether that's
// a fixed-size slice or a content-defined chunk.
type Deduplicator struct {
	blockSize int
	seen      map[string]bool
	mu        sync.RWMutex
}

// NewDeduplicator creates a new deduplicator. blockSize is advisory, used
// only by callers that want to report it back; the deduplicator itself
// accepts blocks of any size.
func NewDeduplicator(blockSize int) *Deduplicator {
	return &Deduplicator{
		blockSize: blockSize,
		seen:      make(map[string]bool),
	}
}

// CheckBlock hashes data and reports whether it has been seen before. The
// returned bool is true the first time a given hash is observed.
func (d *Deduplicator) CheckBlock(data []byte) (string, bool) {
	hash := sha256.Sum256(data)
	hashStr := hex.EncodeToString(hash[:])

	d.mu.Lock()
	defer d.mu.Unlock()

	if d.seen[hashStr] {
		return hashStr, false // duplicate
	}

	d.seen[hashStr] = true
	return hashStr, true // new block
}
