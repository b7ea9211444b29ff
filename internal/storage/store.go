// internal/storage/store.go
package storage

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"sync"

	"github.com/FairForge/cdcchunker/internal/chunker"
)

// ChunkRecord describes one content-defined chunk as seen by ContentStore:
// which file it came from, its offset within that file, its length, and
// the content hash under which its bytes are stored.
type ChunkRecord struct {
	File   string
	Hash   string
	Offset int64
	Length int
}

// ContentStore is a content-addressed block store built directly on top of
// internal/chunker: every file stored is run through the configured
// chunking algorithm, and each emitted chunk is deduplicated by its SHA-256
// content hash, regardless of which file or offset it came from.
type ContentStore struct {
	name           string
	algorithm      chunker.Algorithm
	bufferCapacity int

	mu         sync.RWMutex
	blocks     map[string][]byte
	references map[string][]ChunkRecord
}

// NewContentStore creates a content-addressed store that chunks every
// stored file with algo, using the chunker's default buffer capacity. An
// empty algo selects chunker.Default().
func NewContentStore(name string, algo chunker.Algorithm) (*ContentStore, error) {
	return NewContentStoreWithCapacity(name, algo, 0)
}

// NewContentStoreWithCapacity is like NewContentStore but allocates each
// chunker's internal buffer at bufferCapacity bytes instead of the package
// default. bufferCapacity <= 0 means "use the default" (chunker.Cap); this
// is how config.ChunkerOptions.BufferCapacityOverride reaches the core.
func NewContentStoreWithCapacity(name string, algo chunker.Algorithm, bufferCapacity int) (*ContentStore, error) {
	if algo == "" {
		algo = chunker.Default()
	}
	if !algo.Valid() {
		return nil, fmt.Errorf("storage: unknown algorithm %q", algo)
	}
	return &ContentStore{
		name:           name,
		algorithm:      algo,
		bufferCapacity: bufferCapacity,
		blocks:         make(map[string][]byte),
		references:     make(map[string][]ChunkRecord),
	}, nil
}

// hashingSink is the chunker.Sink ContentStore hands to the chunker: it
// hashes each emitted chunk, stores its bytes the first time that hash is
// seen, and always records a ChunkRecord against the owning file.
type hashingSink struct {
	store   *ContentStore
	file    string
	offset  int64
	records []ChunkRecord
}

func (h *hashingSink) Write(p []byte) (int, error) {
	sum := sha256.Sum256(p)
	hash := hex.EncodeToString(sum[:])

	h.store.mu.Lock()
	if _, exists := h.store.blocks[hash]; !exists {
		cp := make([]byte, len(p))
		copy(cp, p)
		h.store.blocks[hash] = cp
	}
	h.store.mu.Unlock()

	h.records = append(h.records, ChunkRecord{
		File:   h.file,
		Hash:   hash,
		Offset: h.offset,
		Length: len(p),
	})
	h.offset += int64(len(p))
	return len(p), nil
}

func (h *hashingSink) Seek(int64, int) (int64, error) {
	return 0, fmt.Errorf("storage: content-store ingestion does not support seeking")
}

func (h *hashingSink) Flush() error { return nil }

// Store chunks data using the store's configured algorithm, deduplicates
// each resulting chunk by content hash, and records the chunk sequence
// against filename. Storing the same content under a different filename
// reuses every block whose hash already exists and only adds new
// ChunkRecords, never new blocks.
func (s *ContentStore) Store(filename string, data []byte) ([]ChunkRecord, error) {
	strategy, err := s.newStrategy()
	if err != nil {
		return nil, fmt.Errorf("storage: build strategy: %w", err)
	}

	capacity := s.bufferCapacity
	if capacity <= 0 {
		capacity = chunker.Cap
	}

	sink := &hashingSink{store: s, file: filename}
	c := chunker.NewWithCapacity(sink, strategy, capacity)

	for written := 0; written < len(data); {
		n, werr := c.Write(data[written:])
		if werr != nil {
			return nil, fmt.Errorf("storage: chunk %s: %w", filename, werr)
		}
		written += n
		if n == 0 {
			break
		}
	}
	if err := c.Flush(); err != nil {
		return nil, fmt.Errorf("storage: flush %s: %w", filename, err)
	}

	s.mu.Lock()
	s.references[filename] = sink.records
	s.mu.Unlock()

	return sink.records, nil
}

// newStrategy builds a fresh Strategy for one Store call. Leap is
// constructed with a fixed seed so that repeated stores against the same
// corpus stay comparable; every other algorithm is already deterministic.
func (s *ContentStore) newStrategy() (chunker.Strategy, error) {
	if s.algorithm == chunker.AlgorithmLeap {
		return chunker.NewStrategyWithSeed(s.algorithm, 1)
	}
	return chunker.NewStrategy(s.algorithm)
}

// Get reconstructs a previously stored file's bytes from its chunk records.
func (s *ContentStore) Get(filename string) ([]byte, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	records, exists := s.references[filename]
	if !exists {
		return nil, fmt.Errorf("storage: file not found: %s", filename)
	}

	var out []byte
	for _, r := range records {
		block, ok := s.blocks[r.Hash]
		if !ok {
			return nil, fmt.Errorf("storage: missing block for hash %s", r.Hash)
		}
		out = append(out, block...)
	}
	return out, nil
}

// UniqueBlocks returns the count of distinct content-hashed blocks held by
// the store, across every file ever stored.
func (s *ContentStore) UniqueBlocks() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.blocks)
}

// Stats returns store-wide deduplication statistics.
func (s *ContentStore) Stats() DedupStats {
	s.mu.RLock()
	defer s.mu.RUnlock()

	totalSize := 0
	for _, data := range s.blocks {
		totalSize += len(data)
	}
	totalChunks := 0
	for _, records := range s.references {
		totalChunks += len(records)
	}

	ratio := 1.0
	if len(s.blocks) > 0 {
		ratio = float64(totalChunks) / float64(len(s.blocks))
	}

	return DedupStats{
		UniqueBlocks:    len(s.blocks),
		TotalReferences: totalChunks,
		StoredSize:      totalSize,
		DedupRatio:      ratio,
	}
}

// DedupStats summarises a ContentStore's deduplication effectiveness.
type DedupStats struct {
	UniqueBlocks    int
	TotalReferences int
	StoredSize      int
	DedupRatio      float64
}
